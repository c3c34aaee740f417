package framework

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
)

// Context is the state of one attempt of one test. It implements require.TestingT, so
// the assert and require packages can be used with it directly.
type Context struct {
	id          TestID
	attempt     int
	ctx         context.Context
	testLogger  TestLogger
	debugLogger CapturingLogger
	deferred    []func()
	lock        sync.Mutex
	failed      bool
	skipped     bool
	skipReason  string
	category    Category
	errors      []error
	attachments []string
}

func newContext(ctx context.Context, id TestID, attempt int, testLogger TestLogger) *Context {
	return &Context{
		id:         id,
		attempt:    attempt,
		ctx:        ctx,
		testLogger: testLogger,
	}
}

func (c *Context) run(action func(*Context)) {
	defer c.runDeferred()
	defer func() {
		if r := recover(); r != nil {
			if c.Skipped() {
				return
			}
			var addError error
			category := CategoryAssertion
			if _, ok := r.(*Context); ok {
				if len(c.Errors()) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				category = CategoryPanic
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			c.fail(category, addError)
		}
	}()

	action(c)
}

func (c *Context) runDeferred() {
	c.lock.Lock()
	deferred := c.deferred
	c.deferred = nil
	c.lock.Unlock()
	for i := len(deferred) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.Debug("cleanup function panicked: %+v", r)
				}
			}()
			deferred[i]()
		}()
	}
}

func (c *Context) fail(category Category, err error) {
	c.lock.Lock()
	c.failed = true
	if c.category == CategoryNone || category == CategoryTimeout {
		c.category = category
	}
	if err != nil {
		c.errors = append(c.errors, err)
	}
	c.lock.Unlock()
	if err != nil {
		c.testLogger.TestError(c.id, reformatError(err))
	}
}

func (c *Context) ID() TestID {
	return c.id
}

// Attempt is zero for the first run of a test and increases with every retry.
func (c *Context) Attempt() int {
	return c.attempt
}

// Context returns a context that is cancelled when the test's deadline expires. Anything
// blocking on behalf of the test should watch it.
func (c *Context) Context() context.Context {
	return c.ctx
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.fail(CategoryAssertion, fmt.Errorf(format, args...))
}

// Timeoutf records a failure caused by something not happening in time.
func (c *Context) Timeoutf(format string, args ...interface{}) {
	c.fail(CategoryTimeout, fmt.Errorf(format, args...))
}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.lock.Lock()
	c.skipped = true
	c.lock.Unlock()
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.lock.Lock()
	c.skipReason = reason
	c.lock.Unlock()
	c.Skip()
}

// Defer schedules a function to run when the test finishes, whether it passed, failed,
// was skipped, or timed out. Deferred functions run in reverse order.
func (c *Context) Defer(fn func()) {
	c.lock.Lock()
	c.deferred = append(c.deferred, fn)
	c.lock.Unlock()
}

// Attach records the path of a file produced by the test, such as a screenshot.
func (c *Context) Attach(path string) {
	c.lock.Lock()
	c.attachments = append(c.attachments, path)
	c.lock.Unlock()
}

func (c *Context) Failed() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.failed
}

func (c *Context) Skipped() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.skipped
}

func (c *Context) Errors() []error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]error(nil), c.errors...)
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

func (c *Context) result() TestResult {
	c.lock.Lock()
	defer c.lock.Unlock()
	r := TestResult{
		TestID:      c.id,
		Status:      StatusPassed,
		Category:    c.category,
		Errors:      append([]error(nil), c.errors...),
		Attachments: append([]string(nil), c.attachments...),
		DebugOutput: c.debugLogger.Output(),
	}
	switch {
	case c.skipped && !c.failed:
		r.Status = StatusSkipped
		r.SkipReason = c.skipReason
	case c.failed:
		r.Status = StatusFailed
	}
	return r
}

// reformatError drops the "Error Trace" section that testify adds to assertion failures,
// since it only points into framework code.
func reformatError(err error) error {
	lines := strings.Split(err.Error(), "\n")
	var kept []string
	inTrace := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Error Trace:") {
			inTrace = true
			continue
		}
		if inTrace {
			if !strings.Contains(trimmed, ":") || strings.HasPrefix(trimmed, "/") {
				continue
			}
			inTrace = false
		}
		if trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	if len(kept) == 0 {
		return err
	}
	return errors.New(strings.Join(kept, "\n"))
}
