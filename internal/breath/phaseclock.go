package breath

import (
	"time"

	"boxbreath/internal/clock"
)

// phaseClock keeps at most one pending callback. Every schedule cancels
// the previous handle, and a callback that fires after being superseded
// is dropped by the generation check in fire.
//
// phaseClock is not safe for concurrent use; the owner serializes access.
type phaseClock struct {
	clock   clock.Clock
	pending clock.Timer
	gen     uint64
}

func newPhaseClock(clk clock.Clock) *phaseClock {
	return &phaseClock{clock: clk}
}

// schedule replaces any pending callback with fn after d. fn receives the
// generation it was scheduled under and must pass it to current before
// acting.
func (pc *phaseClock) schedule(d time.Duration, fn func(gen uint64)) {
	pc.cancel()
	gen := pc.gen
	pc.pending = pc.clock.AfterFunc(d, func() {
		fn(gen)
	})
}

// cancel stops the pending callback, if any.
func (pc *phaseClock) cancel() {
	pc.gen++
	if pc.pending != nil {
		pc.pending.Stop()
		pc.pending = nil
	}
}

// current reports whether gen still identifies the pending callback, and
// if so marks it as fired.
func (pc *phaseClock) current(gen uint64) bool {
	if gen != pc.gen || pc.pending == nil {
		return false
	}
	pc.pending = nil
	return true
}

func (pc *phaseClock) isPending() bool {
	return pc.pending != nil
}
