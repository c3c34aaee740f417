package framework

import "sync"

// TestLogger receives progress notifications from Run. Run never calls a TestLogger
// from more than one goroutine at a time.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, result TestResult)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)              {}
func (n nullTestLogger) TestError(TestID, error)         {}
func (n nullTestLogger) TestFinished(TestID, TestResult) {}
func (n nullTestLogger) TestSkipped(TestID, string)      {}

type syncTestLogger struct {
	target TestLogger
	lock   sync.Mutex
}

func (s *syncTestLogger) TestStarted(id TestID) {
	s.lock.Lock()
	s.target.TestStarted(id)
	s.lock.Unlock()
}

func (s *syncTestLogger) TestError(id TestID, err error) {
	s.lock.Lock()
	s.target.TestError(id, err)
	s.lock.Unlock()
}

func (s *syncTestLogger) TestFinished(id TestID, result TestResult) {
	s.lock.Lock()
	s.target.TestFinished(id, result)
	s.lock.Unlock()
}

func (s *syncTestLogger) TestSkipped(id TestID, reason string) {
	s.lock.Lock()
	s.target.TestSkipped(id, reason)
	s.lock.Unlock()
}
