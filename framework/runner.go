package framework

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrFocusedTests is returned by Run if the plan contains focused tests and the run
// options forbid them.
var ErrFocusedTests = errors.New("focused tests are not allowed in this run")

type RunOptions struct {
	Filter Filter
	// Workers is the maximum number of tests running at once. Values below 1 mean 1.
	Workers int
	// Retries is how many times a failed test is run again.
	Retries int
	// Timeout limits each attempt of each test. Zero means no limit.
	Timeout       time.Duration
	ForbidFocused bool
}

// Run executes the tests and returns their results in the order they were given.
//
// Tests run concurrently on up to opts.Workers goroutines, but each test runs its actions
// strictly in sequence, and every attempt gets a fresh Context. A failure in one test
// never affects another.
func Run(tests []Test, opts RunOptions, testLogger TestLogger) (Results, error) {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	logger := &syncTestLogger{target: testLogger}

	if focused := focusedTests(tests); len(focused) > 0 {
		if opts.ForbidFocused {
			var names []string
			for _, t := range focused {
				names = append(names, t.ID.String())
			}
			return Results{}, fmt.Errorf("%w: %s", ErrFocusedTests, strings.Join(names, ", "))
		}
		tests = focused
	}

	var selected []Test
	for _, t := range tests {
		if opts.Filter != nil && !opts.Filter(t.ID) {
			logger.TestSkipped(t.ID, "excluded by filter parameters")
			continue
		}
		selected = append(selected, t)
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	queue := NewResultSortingQueue(len(selected))
	var results Results
	consumed := make(chan struct{})
	go func() {
		defer close(consumed)
		for r := range queue.C {
			results.Tests = append(results.Tests, r)
			if r.Failed() {
				results.Failures = append(results.Failures, r)
			}
			if r.Status == StatusSkipped {
				logger.TestSkipped(r.TestID, r.SkipReason)
			} else {
				logger.TestFinished(r.TestID, r)
			}
		}
	}()

	var g errgroup.Group
	g.SetLimit(workers)
	for i, t := range selected {
		counter, test := i+1, t
		g.Go(func() error {
			queue.Accept(counter, runTest(test, opts, logger))
			return nil
		})
	}
	_ = g.Wait()
	queue.Close()
	<-consumed

	return results, nil
}

func focusedTests(tests []Test) []Test {
	var ret []Test
	for _, t := range tests {
		if t.Focused {
			ret = append(ret, t)
		}
	}
	return ret
}

func runTest(test Test, opts RunOptions, logger TestLogger) TestResult {
	timeout := opts.Timeout
	if test.Timeout > 0 {
		timeout = test.Timeout
	}

	logger.TestStarted(test.ID)
	start := time.Now()
	var result TestResult
	attempt := 0
	for {
		result = runAttempt(test, attempt, timeout, logger)
		if result.Status != StatusFailed || attempt >= opts.Retries {
			break
		}
		attempt++
	}
	result.Retries = attempt
	if attempt > 0 && result.Status == StatusPassed {
		result.Status = StatusFlaky
	}
	result.Duration = time.Since(start)
	return result
}

func runAttempt(test Test, attempt int, timeout time.Duration, logger TestLogger) TestResult {
	var ctx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	defer cancel()

	c := newContext(ctx, test.ID, attempt, logger)
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.run(test.Action)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
	// A test that unwinds because its deadline passed may finish at the same moment the
	// deadline is seen, so the context decides, not whichever channel was picked.
	if ctx.Err() == context.DeadlineExceeded {
		c.fail(CategoryTimeout, fmt.Errorf("test timed out after %s", timeout))
	}
	// Cancellation is already visible through c.Context(), so resources watching it get
	// released and the test goroutine can unwind.
	<-done
	return c.result()
}
