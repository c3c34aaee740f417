package framework

import (
	"fmt"
	"strings"
	"time"
)

// Status is the final outcome of a test after any retries.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
	// StatusFlaky means the test failed at least once but passed on a retry.
	StatusFlaky Status = "flaky"
)

// Category distinguishes why a test failed.
type Category string

const (
	CategoryNone      Category = ""
	CategoryAssertion Category = "assertion"
	CategoryTimeout   Category = "timeout"
	CategoryPanic     Category = "panic"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID      TestID
	Status      Status
	Category    Category
	Errors      []error
	SkipReason  string
	Duration    time.Duration
	Retries     int
	Attachments []string
	DebugOutput CapturedOutput
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Counts returns the number of tests with each status.
func (r Results) Counts() map[Status]int {
	ret := make(map[Status]int)
	for _, t := range r.Tests {
		ret[t.Status]++
	}
	return ret
}

func (r TestResult) Failed() bool {
	return r.Status == StatusFailed
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Name returns the last path element, which is the test's own name.
func (t TestID) Name() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[len(t.Path)-1]
}

// Group returns every path element except the last one, joined with "/".
func (t TestID) Group() string {
	if len(t.Path) < 2 {
		return ""
	}
	return strings.Join(t.Path[:len(t.Path)-1], "/")
}

// PrintResults writes a summary of the test run to standard output.
func PrintResults(results Results) {
	counts := results.Counts()
	fmt.Printf("Ran %d tests: %d passed, %d flaky, %d skipped, %d failed\n",
		len(results.Tests),
		counts[StatusPassed], counts[StatusFlaky], counts[StatusSkipped], counts[StatusFailed])
	if results.OK() {
		fmt.Println("All tests passed")
		return
	}
	fmt.Println("Failed tests:")
	for _, f := range results.Failures {
		fmt.Printf("  %s (%s)\n", f.TestID, f.Category)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Printf("    %s\n", line)
			}
		}
	}
}
