package timer

import (
	"fmt"
	"sync"
	"time"

	"boxbreath/internal/clock"
)

// ZeroDisplay is shown before the first tick and after a reset.
const ZeroDisplay = "00:00:00"

// Timer tracks wall-clock time since Start and republishes it as an
// HH:MM:SS string on every tick while active.
type Timer struct {
	mu       sync.RWMutex
	clock    clock.Clock
	interval time.Duration
	onTick   func()

	startedAt time.Time
	running   bool
	closed    bool
	display   string
	tick      clock.Timer
	gen       uint64
}

// New returns an inactive timer. onTick, when non-nil, is called after the
// display changes, outside the timer's lock.
func New(clk clock.Clock, interval time.Duration, onTick func()) *Timer {
	if clk == nil {
		clk = clock.Real()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Timer{
		clock:    clk,
		interval: interval,
		onTick:   onTick,
		display:  ZeroDisplay,
	}
}

// Start captures the current instant and starts ticking. Starting an
// active timer restarts it from zero.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.stopTickLocked()
	t.startedAt = t.clock.Now()
	t.running = true
	t.scheduleLocked()
}

// Reset stops ticking and restores the zero display.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopTickLocked()
	t.running = false
	t.display = ZeroDisplay
}

// Close cancels the pending tick. A closed timer ignores Start.
func (t *Timer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopTickLocked()
	t.running = false
	t.closed = true
}

func (t *Timer) Display() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.display
}

func (t *Timer) Running() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.running
}

// Elapsed reports the time since Start, or zero when inactive.
func (t *Timer) Elapsed() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.running {
		return 0
	}
	return t.clock.Now().Sub(t.startedAt)
}

func (t *Timer) scheduleLocked() {
	t.gen++
	gen := t.gen
	t.tick = t.clock.AfterFunc(t.interval, func() {
		t.fire(gen)
	})
}

func (t *Timer) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || !t.running {
		t.mu.Unlock()
		return
	}
	t.display = Format(t.clock.Now().Sub(t.startedAt))
	t.scheduleLocked()
	onTick := t.onTick
	t.mu.Unlock()

	if onTick != nil {
		onTick()
	}
}

func (t *Timer) stopTickLocked() {
	t.gen++
	if t.tick != nil {
		t.tick.Stop()
		t.tick = nil
	}
}

// Format renders d as HH:MM:SS. Hours are not bounded to two digits.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
