package framework

import (
	"sort"
	"sync"
)

// ResultSortingQueue releases test results in plan order. Results are accepted with a
// 1-based sequence number; a result is held back until every result before it has been
// released on C.
type ResultSortingQueue struct {
	C           chan TestResult
	lastCounter int
	deferred    []deferredResult
	lock        sync.Mutex
	closeOnce   sync.Once
}

type deferredResult struct {
	counter int
	result  TestResult
}

// NewResultSortingQueue creates a queue. The channel must be large enough to hold every
// result that can be released before the consumer reads them, or Accept will block.
func NewResultSortingQueue(channelSize int) *ResultSortingQueue {
	return &ResultSortingQueue{C: make(chan TestResult, channelSize)}
}

func (q *ResultSortingQueue) Accept(counter int, result TestResult) {
	q.lock.Lock()
	if counter > q.lastCounter+1 {
		q.deferred = append(q.deferred, deferredResult{counter: counter, result: result})
		sort.Slice(q.deferred, func(i, j int) bool { return q.deferred[i].counter < q.deferred[j].counter })
		q.lock.Unlock()
		return
	}
	q.lastCounter = counter
	q.C <- result
	for len(q.deferred) > 0 {
		next := q.deferred[0]
		if next.counter != q.lastCounter+1 {
			break
		}
		q.deferred = q.deferred[1:]
		q.lastCounter++
		q.C <- next.result
	}
	q.lock.Unlock()
}

func (q *ResultSortingQueue) Deferred() []TestResult {
	q.lock.Lock()
	ret := make([]TestResult, 0, len(q.deferred))
	for _, d := range q.deferred {
		ret = append(ret, d.result)
	}
	q.lock.Unlock()
	return ret
}

func (q *ResultSortingQueue) Close() {
	q.closeOnce.Do(func() {
		close(q.C)
	})
}
