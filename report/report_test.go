package report

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/demos-qa/telerik-demos-tests/config"
	"github.com/demos-qa/telerik-demos-tests/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(path ...string) framework.TestID {
	return framework.TestID{Path: path}
}

func sampleResults() framework.Results {
	failed := framework.TestResult{
		TestID:      id("chromium", "Link Integrity", "TC058: Check for 404 errors"),
		Status:      framework.StatusFailed,
		Category:    framework.CategoryAssertion,
		Errors:      []error{errors.New("broken links: https://www.telerik.com/gone | x")},
		Duration:    2 * time.Second,
		Retries:     1,
		Attachments: []string{"test-results/screenshots/tc058-1.png"},
	}
	return framework.Results{
		Tests: []framework.TestResult{
			{TestID: id("chromium", "General Navigation", "TC001: Verify homepage loads"), Status: framework.StatusPassed, Duration: time.Second},
			{TestID: id("chromium", "General Navigation", "TC007: Main content"), Status: framework.StatusSkipped, SkipReason: "not critical"},
			{TestID: id("chromium", "Web Products", "TC012: Products"), Status: framework.StatusFlaky, Retries: 1},
			failed,
		},
		Failures: []framework.TestResult{failed},
	}
}

func sampleInfo() RunInfo {
	info := NewRunInfo(time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC))
	info.Duration = 90 * time.Second
	return info
}

func TestNewRunInfoHasUniqueIDs(t *testing.T) {
	a, b := NewRunInfo(time.Now()), NewRunInfo(time.Now())
	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	info := sampleInfo()
	require.NoError(t, WriteJSON(&buf, sampleResults(), config.Default(true), info))

	var doc jsonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, info.ID, doc.RunID)
	assert.Equal(t, int64(90000), doc.DurationMS)
	assert.True(t, doc.Config.CI)
	assert.Equal(t, 4, doc.Stats["total"])
	assert.Equal(t, 1, doc.Stats["failed"])
	assert.Equal(t, 1, doc.Stats["flaky"])
	require.Len(t, doc.Tests, 4)
	assert.Equal(t, "chromium/General Navigation", doc.Tests[0].Group)
	assert.Equal(t, "not critical", doc.Tests[1].SkipReason)
	assert.Equal(t, "assertion", doc.Tests[3].Category)
	assert.Equal(t, []string{"test-results/screenshots/tc058-1.png"}, doc.Tests[3].Attachments)
}

type junitSuites struct {
	Suites []struct {
		Name     string `xml:"name,attr"`
		Tests    int    `xml:"tests,attr"`
		Failures int    `xml:"failures,attr"`
		Cases    []struct {
			Name    string    `xml:"name,attr"`
			Failure *struct{} `xml:"failure"`
			Skipped *struct{} `xml:"skipped"`
		} `xml:"testcase"`
	} `xml:"testsuite"`
}

func TestWriteJUnitGroupsBySuite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJUnit(&buf, sampleResults()))

	var doc junitSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Suites, 3)
	assert.Equal(t, "chromium/General Navigation", doc.Suites[0].Name)
	assert.Equal(t, 2, doc.Suites[0].Tests)
	assert.NotNil(t, doc.Suites[0].Cases[1].Skipped)
	assert.Nil(t, doc.Suites[1].Cases[0].Failure)
	assert.Equal(t, 1, doc.Suites[2].Failures)
	assert.NotNil(t, doc.Suites[2].Cases[0].Failure)
	assert.Contains(t, buf.String(), "failure type: assertion")
}

func TestMarkdownSummary(t *testing.T) {
	md := Markdown(sampleResults(), config.Default(false), sampleInfo())
	assert.Contains(t, md, "| 4 | 1 | 1 | 1 | 1 |")
	assert.Contains(t, md, "| chromium/Web Products | TC012: Products | flaky |")
	assert.Contains(t, md, "### chromium/Link Integrity/TC058: Check for 404 errors")
	assert.Contains(t, md, `https://www.telerik.com/gone | x`)
	assert.Contains(t, md, "Failure type: **assertion**")
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, sampleResults(), config.Default(false), sampleInfo()))
	out := buf.String()
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<h1>Test report</h1>")
	assert.Contains(t, out, "<strong>failed</strong>")
}

func TestWriteAllHonorsReporters(t *testing.T) {
	cfg := config.Default(false)
	cfg.ResultsDir = filepath.Join(t.TempDir(), "results")
	cfg.ReportDir = filepath.Join(t.TempDir(), "report")
	cfg.Reporters = []string{config.ReporterList, config.ReporterJUnit}

	written, err := WriteAll(sampleResults(), cfg, sampleInfo())
	require.NoError(t, err)
	assert.Equal(t, []string{cfg.JUnitReportPath()}, written)

	_, err = os.Stat(cfg.JUnitReportPath())
	assert.NoError(t, err)
	_, err = os.Stat(cfg.JSONReportPath())
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(cfg.HTMLReportPath())
	assert.True(t, os.IsNotExist(err))
}

func TestWriteAllWritesEveryFileReport(t *testing.T) {
	cfg := config.Default(false)
	dir := t.TempDir()
	cfg.ResultsDir = filepath.Join(dir, "test-results")
	cfg.ReportDir = filepath.Join(dir, "playwright-report")

	written, err := WriteAll(sampleResults(), cfg, sampleInfo())
	require.NoError(t, err)
	assert.Equal(t, []string{cfg.JSONReportPath(), cfg.JUnitReportPath(), cfg.HTMLReportPath()}, written)
}
