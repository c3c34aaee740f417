package framework

import "time"

// Test is a single planned test case.
type Test struct {
	ID      TestID
	Focused bool
	// Timeout overrides RunOptions.Timeout for this test if it is non-zero.
	Timeout time.Duration
	Action  func(*Context)
}

// TestOption customizes a planned test.
type TestOption func(*Test)

// WithTimeout gives a test its own time limit.
func WithTimeout(timeout time.Duration) TestOption {
	return func(t *Test) { t.Timeout = timeout }
}

// Plan collects test declarations. Groups only contribute to test IDs; they have no
// behavior of their own.
type Plan struct {
	path  []string
	tests *[]Test
}

func NewPlan() *Plan {
	return &Plan{tests: new([]Test)}
}

// Group declares tests under an additional path element.
func (p *Plan) Group(name string, action func(*Plan)) {
	sub := &Plan{
		path:  append(append([]string(nil), p.path...), name),
		tests: p.tests,
	}
	action(sub)
}

// Test declares a test.
func (p *Plan) Test(name string, action func(*Context), options ...TestOption) {
	p.add(name, false, action, options)
}

// Only declares a focused test. If any test in a plan is focused, only focused tests run.
func (p *Plan) Only(name string, action func(*Context), options ...TestOption) {
	p.add(name, true, action, options)
}

func (p *Plan) add(name string, focused bool, action func(*Context), options []TestOption) {
	t := Test{
		ID:      TestID{Path: append(append([]string(nil), p.path...), name)},
		Focused: focused,
		Action:  action,
	}
	for _, o := range options {
		o(&t)
	}
	*p.tests = append(*p.tests, t)
}

// Tests returns the declared tests in declaration order.
func (p *Plan) Tests() []Test {
	return append([]Test(nil), (*p.tests)...)
}
