package report

import (
	"io"

	"github.com/jstemmer/go-junit-report/formatter"
	"github.com/jstemmer/go-junit-report/parser"

	"github.com/demos-qa/telerik-demos-tests/framework"
)

// WriteJUnit writes one test suite per group of tests, in the order groups first appear.
func WriteJUnit(w io.Writer, results framework.Results) error {
	report := &parser.Report{}
	index := make(map[string]int)
	for _, t := range results.Tests {
		group := t.TestID.Group()
		i, ok := index[group]
		if !ok {
			i = len(report.Packages)
			index[group] = i
			report.Packages = append(report.Packages, parser.Package{Name: group})
		}
		pkg := &report.Packages[i]
		pkg.Duration += t.Duration
		pkg.Tests = append(pkg.Tests, junitTest(t))
	}
	return formatter.JUnitReportXML(report, false, "", w)
}

func junitTest(t framework.TestResult) *parser.Test {
	test := &parser.Test{
		Name:     t.TestID.Name(),
		Duration: t.Duration,
		Result:   parser.PASS,
	}
	switch t.Status {
	case framework.StatusFailed:
		test.Result = parser.FAIL
		if t.Category != framework.CategoryNone {
			test.Output = append(test.Output, "failure type: "+string(t.Category))
		}
		test.Output = append(test.Output, errorStrings(t.Errors)...)
	case framework.StatusSkipped:
		test.Result = parser.SKIP
		test.Output = []string{t.SkipReason}
	}
	return test
}
