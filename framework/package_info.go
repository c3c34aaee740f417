// Package framework contains the low-level implementation of test harness infrastructure
// that can be reused for different kinds of UI tests.
//
// The general model is:
//
// 1. Tests are declared up front in a Plan, as named actions grouped under a path of
// group names. Nothing runs while the plan is being built.
//
// 2. Run executes the planned tests on a bounded pool of workers. Every attempt of a test
// gets its own Context, which is similar to Go's *testing.T: it accumulates failures,
// supports skipping, carries a deadline, and collects debug output.
//
// 3. Failed tests can be retried, and results are reported through a TestLogger in the
// order the tests were planned, regardless of which worker finished first.
//
// The domain-specific code that knows what is being tested is responsible for creating
// per-test resources (such as a browser session) on top of the Context, and for releasing
// them with Context.Defer.
package framework
