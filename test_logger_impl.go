package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/demos-qa/telerik-demos-tests/framework"
)

var (
	passedColor  = color.New(color.FgGreen)
	failedColor  = color.New(color.FgRed, color.Bold)
	flakyColor   = color.New(color.FgYellow)
	skippedColor = color.New(color.FgCyan)
)

// ConsoleTestLogger is the "list" reporter: one line per finished test, with errors and
// optional debug output under failed tests.
type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
	// Verbose also prints tests as they start and errors as they happen. Concurrent tests
	// interleave these lines.
	Verbose bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	if c.Verbose {
		fmt.Printf("[%s]\n", id)
	}
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	if c.Verbose {
		fmt.Printf("  [%s] %s\n", id, firstLine(err.Error()))
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, result framework.TestResult) {
	duration := result.Duration.Round(10 * time.Millisecond)
	switch result.Status {
	case framework.StatusFailed:
		failedColor.Printf("  ✘ FAILED: %s (%s, %s)\n", id, result.Category, duration)
		for _, err := range result.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Printf("      %s\n", line)
			}
		}
	case framework.StatusFlaky:
		flakyColor.Printf("  ~ FLAKY: %s (passed after %d retries, %s)\n", id, result.Retries, duration)
	default:
		passedColor.Printf("  ✓ %s (%s)\n", id, duration)
	}
	for _, a := range result.Attachments {
		fmt.Printf("      attachment: %s\n", a)
	}
	failed := result.Status != framework.StatusPassed
	if len(result.DebugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		result.DebugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		skippedColor.Printf("  - SKIPPED: %s\n", id)
	} else {
		skippedColor.Printf("  - SKIPPED: %s (%s)\n", id, reason)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
