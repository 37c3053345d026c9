package golife

import "sync/atomic"

// CancelToken is a cooperative cancellation flag shared between a caller
// and a long-running step loop (SparseLife, the HashLife driver,
// Grid.Step, or SimulationWorker). The step loops check it between
// generations; SparseLife also checks it once per live cell and, when
// it fires mid-pass, returns its input unchanged. Either way observers
// only ever see a grid state that is pre-step or post a completed step.
type CancelToken struct {
	cancelled atomic.Bool
}

// NewCancelToken returns a token in the not-cancelled state.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel requests cancellation. Safe to call from any goroutine, any
// number of times.
func (t *CancelToken) Cancel() {
	if t == nil {
		return
	}
	t.cancelled.Store(true)
}

// Cancelled reports whether cancellation has been requested. A nil
// token is never cancelled, so callers may pass nil to mean "run to
// completion."
func (t *CancelToken) Cancelled() bool {
	if t == nil {
		return false
	}
	return t.cancelled.Load()
}
