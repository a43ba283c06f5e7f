package payroll

import (
	"context"
	"sync"

	"github.com/pmjgroup/rental-hr-backend-go/internal/domain/payroll"
)

// Tracker lets only the latest computation per key deliver a result.
// Starting a computation cancels the previous in-flight one for the same key.
type Tracker struct {
	mu       sync.Mutex
	seq      uint64
	inflight map[string]inflightRun
}

type inflightRun struct {
	seq    uint64
	cancel context.CancelCauseFunc
}

func NewTracker() *Tracker {
	return &Tracker{inflight: make(map[string]inflightRun)}
}

// Begin registers a computation for key. The returned context is cancelled
// with payroll.ErrSuperseded when a newer computation starts for key. end
// must be called exactly once and reports whether this computation is still
// the latest one.
func (t *Tracker) Begin(ctx context.Context, key string) (runCtx context.Context, end func() (current bool)) {
	runCtx, cancel := context.WithCancelCause(ctx)

	t.mu.Lock()
	t.seq++
	seq := t.seq
	if prev, ok := t.inflight[key]; ok {
		prev.cancel(payroll.ErrSuperseded)
	}
	t.inflight[key] = inflightRun{seq: seq, cancel: cancel}
	t.mu.Unlock()

	end = func() bool {
		t.mu.Lock()
		run, ok := t.inflight[key]
		current := ok && run.seq == seq
		if current {
			delete(t.inflight, key)
		}
		t.mu.Unlock()

		cancel(nil)
		return current
	}
	return runCtx, end
}

// InFlight returns the number of keys with a running computation.
func (t *Tracker) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inflight)
}
