package framework

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	started  []string
	finished []string
	skipped  map[string]string
	errors   map[string][]string
}

func newRecordingTestLogger() *recordingTestLogger {
	return &recordingTestLogger{skipped: make(map[string]string), errors: make(map[string][]string)}
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.started = append(r.started, id.String())
}

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.errors[id.String()] = append(r.errors[id.String()], err.Error())
}

func (r *recordingTestLogger) TestFinished(id TestID, result TestResult) {
	r.finished = append(r.finished, id.String())
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.skipped[id.String()] = reason
}

func runPlan(t *testing.T, opts RunOptions, build func(p *Plan)) (Results, *recordingTestLogger) {
	p := NewPlan()
	build(p)
	logger := newRecordingTestLogger()
	results, err := Run(p.Tests(), opts, logger)
	require.NoError(t, err)
	return results, logger
}

func resultByName(results Results, name string) TestResult {
	for _, r := range results.Tests {
		if r.TestID.Name() == name {
			return r
		}
	}
	return TestResult{}
}

func TestRunRecordsPassFailAndSkip(t *testing.T) {
	results, logger := runPlan(t, RunOptions{Workers: 1}, func(p *Plan) {
		p.Group("suite", func(p *Plan) {
			p.Test("passes", func(c *Context) {
				assert.True(c, true)
			})
			p.Test("fails", func(c *Context) {
				require.Equal(c, 1, 2)
				c.Errorf("should not get here")
			})
			p.Test("skips", func(c *Context) {
				c.SkipWithReason("feature not present")
			})
		})
	})

	require.Len(t, results.Tests, 3)
	assert.Equal(t, StatusPassed, resultByName(results, "passes").Status)

	failed := resultByName(results, "fails")
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Equal(t, CategoryAssertion, failed.Category)
	assert.Len(t, failed.Errors, 1)

	skipped := resultByName(results, "skips")
	assert.Equal(t, StatusSkipped, skipped.Status)
	assert.Equal(t, "feature not present", skipped.SkipReason)
	assert.Equal(t, "feature not present", logger.skipped["suite/skips"])

	require.Len(t, results.Failures, 1)
	assert.Equal(t, "suite/fails", results.Failures[0].TestID.String())
	assert.False(t, results.OK())
	assert.Equal(t, []string{"suite/passes", "suite/fails"}, logger.finished)
}

func TestRunReportsResultsInPlanOrder(t *testing.T) {
	results, logger := runPlan(t, RunOptions{Workers: 4}, func(p *Plan) {
		for i, delay := range []time.Duration{40, 30, 20, 10} {
			d := delay * time.Millisecond
			p.Test(string(rune('a'+i)), func(c *Context) {
				time.Sleep(d)
			})
		}
	})

	var names []string
	for _, r := range results.Tests {
		names = append(names, r.TestID.String())
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
	assert.Equal(t, names, logger.finished)
}

func TestRunNeverExceedsWorkerCount(t *testing.T) {
	var running, maxRunning int32
	_, _ = runPlan(t, RunOptions{Workers: 2}, func(p *Plan) {
		for i := 0; i < 8; i++ {
			p.Test(string(rune('a'+i)), func(c *Context) {
				n := atomic.AddInt32(&running, 1)
				for {
					m := atomic.LoadInt32(&maxRunning)
					if n <= m || atomic.CompareAndSwapInt32(&maxRunning, m, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				atomic.AddInt32(&running, -1)
			})
		}
	})
	assert.LessOrEqual(t, atomic.LoadInt32(&maxRunning), int32(2))
}

func TestRunRetriesFailedTestAndMarksItFlaky(t *testing.T) {
	var attempts []int
	results, _ := runPlan(t, RunOptions{Retries: 1}, func(p *Plan) {
		p.Test("unstable", func(c *Context) {
			attempts = append(attempts, c.Attempt())
			if c.Attempt() == 0 {
				c.Errorf("first attempt fails")
			}
		})
	})

	assert.Equal(t, []int{0, 1}, attempts)
	r := resultByName(results, "unstable")
	assert.Equal(t, StatusFlaky, r.Status)
	assert.Equal(t, 1, r.Retries)
	assert.Empty(t, r.Errors)
	assert.True(t, results.OK())
}

func TestRunDoesNotRetryWithoutRetryPolicy(t *testing.T) {
	count := 0
	results, _ := runPlan(t, RunOptions{}, func(p *Plan) {
		p.Test("broken", func(c *Context) {
			count++
			c.Errorf("always fails")
		})
	})
	assert.Equal(t, 1, count)
	assert.Equal(t, StatusFailed, resultByName(results, "broken").Status)
}

func TestRunDoesNotRetrySkippedTest(t *testing.T) {
	count := 0
	results, _ := runPlan(t, RunOptions{Retries: 3}, func(p *Plan) {
		p.Test("optional", func(c *Context) {
			count++
			c.Skip()
		})
	})
	assert.Equal(t, 1, count)
	assert.Equal(t, StatusSkipped, resultByName(results, "optional").Status)
}

func TestRunFailsTestThatExceedsTimeout(t *testing.T) {
	var cleanedUp bool
	var mu sync.Mutex
	results, _ := runPlan(t, RunOptions{Timeout: 50 * time.Millisecond}, func(p *Plan) {
		p.Test("hangs", func(c *Context) {
			c.Defer(func() {
				mu.Lock()
				cleanedUp = true
				mu.Unlock()
			})
			<-c.Context().Done()
		})
	})

	r := resultByName(results, "hangs")
	assert.Equal(t, StatusFailed, r.Status)
	assert.Equal(t, CategoryTimeout, r.Category)
	require.NotEmpty(t, r.Errors)
	assert.Contains(t, r.Errors[0].Error(), "timed out after 50ms")
	mu.Lock()
	assert.True(t, cleanedUp)
	mu.Unlock()
}

func TestPerTestTimeoutOverridesRunTimeout(t *testing.T) {
	results, _ := runPlan(t, RunOptions{Timeout: 20 * time.Millisecond}, func(p *Plan) {
		p.Test("slow but allowed", func(c *Context) {
			time.Sleep(60 * time.Millisecond)
		}, WithTimeout(time.Second))
	})
	assert.Equal(t, StatusPassed, resultByName(results, "slow but allowed").Status)
}

func TestRunReportsUnexpectedPanic(t *testing.T) {
	results, _ := runPlan(t, RunOptions{}, func(p *Plan) {
		p.Test("panics", func(c *Context) {
			panic("boom")
		})
	})
	r := resultByName(results, "panics")
	assert.Equal(t, StatusFailed, r.Status)
	assert.Equal(t, CategoryPanic, r.Category)
	require.Len(t, r.Errors, 1)
	assert.Contains(t, r.Errors[0].Error(), "unexpected panic in test: boom")
}

func TestRunAppliesFilter(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("TC002"))
	ran := map[string]bool{}
	results, logger := runPlan(t, RunOptions{Filter: filters.AsFilter}, func(p *Plan) {
		p.Test("TC001", func(c *Context) { ran["TC001"] = true })
		p.Test("TC002", func(c *Context) { ran["TC002"] = true })
	})
	assert.True(t, ran["TC001"])
	assert.False(t, ran["TC002"])
	assert.Len(t, results.Tests, 1)
	assert.Equal(t, "excluded by filter parameters", logger.skipped["TC002"])
}

func TestRunOnlyRunsFocusedTests(t *testing.T) {
	ran := map[string]bool{}
	results, _ := runPlan(t, RunOptions{}, func(p *Plan) {
		p.Test("normal", func(c *Context) { ran["normal"] = true })
		p.Only("focused", func(c *Context) { ran["focused"] = true })
	})
	assert.Equal(t, map[string]bool{"focused": true}, ran)
	assert.Len(t, results.Tests, 1)
}

func TestRunRejectsFocusedTestsWhenForbidden(t *testing.T) {
	p := NewPlan()
	p.Only("focused", func(c *Context) {})
	_, err := Run(p.Tests(), RunOptions{ForbidFocused: true}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFocusedTests))
	assert.Contains(t, err.Error(), "focused")
}

func TestDeferredFunctionsRunInReverseOrderAfterFailure(t *testing.T) {
	var order []string
	var sawFailure bool
	_, _ = runPlan(t, RunOptions{}, func(p *Plan) {
		p.Test("cleanup", func(c *Context) {
			c.Defer(func() { order = append(order, "first") })
			c.Defer(func() {
				order = append(order, "second")
				sawFailure = c.Failed()
			})
			require.Fail(c, "deliberate")
		})
	})
	assert.Equal(t, []string{"second", "first"}, order)
	assert.True(t, sawFailure)
}

func TestAttachmentsAndDebugOutputAreKept(t *testing.T) {
	results, _ := runPlan(t, RunOptions{}, func(p *Plan) {
		p.Test("artifacts", func(c *Context) {
			c.Attach("test-results/screenshots/a.png")
			c.Debug("navigated to %s", "/support/demos")
		})
	})
	r := resultByName(results, "artifacts")
	assert.Equal(t, []string{"test-results/screenshots/a.png"}, r.Attachments)
	require.Len(t, r.DebugOutput, 1)
	assert.Equal(t, "navigated to /support/demos", r.DebugOutput[0].Message)
}

func TestReformatErrorDropsErrorTrace(t *testing.T) {
	err := errors.New("\n\tError Trace:\t/src/framework/context.go:12\n\t            \t/src/demotests/tests.go:40\n\tError:      \tShould be true\n\tTest:       \tsuite/test\n")
	assert.Equal(t, "Error:      \tShould be true\nTest:       \tsuite/test", reformatError(err).Error())
}
