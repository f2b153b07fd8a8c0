package breath

import (
	"log/slog"
	"sync"
	"time"

	"boxbreath/internal/clock"
	"boxbreath/internal/timer"
)

const (
	// DefaultPreRoll is the pause between Start and the cycle going live.
	DefaultPreRoll = 1500 * time.Millisecond
	// DefaultTickInterval is the elapsed timer's refresh period.
	DefaultTickInterval = time.Second
	// MinPhaseDelay is the shortest wait before an advance. Zero-length
	// phases still take this long, so an all-zero pattern cannot spin.
	MinPhaseDelay = 10 * time.Millisecond
)

// Options configures a Controller. Zero values take the defaults.
type Options struct {
	Clock        clock.Clock
	PreRoll      time.Duration
	TickInterval time.Duration
	// OnChange is called after any state change caused by a timer firing,
	// outside the controller's lock.
	OnChange func()
	Logger   *slog.Logger
}

// State is a point-in-time copy of everything the presentation layer
// reads on a render.
type State struct {
	Phase          Phase
	Active         bool
	StartTriggered bool
	Config         Config
	Elapsed        string
	TimerHidden    bool
	// PhaseStartedAt and PhaseDuration describe the pending advance;
	// both are zero while no advance is scheduled.
	PhaseStartedAt time.Time
	PhaseDuration  time.Duration
	Cycles         int
	ActiveSince    time.Time
}

// Progress reports how far through the current phase now is, in [0, 1].
func (s State) Progress(now time.Time) float64 {
	if s.PhaseStartedAt.IsZero() {
		return 0
	}
	if s.PhaseDuration <= 0 {
		return 1
	}
	p := float64(now.Sub(s.PhaseStartedAt)) / float64(s.PhaseDuration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Controller is the box breathing state machine:
// Idle -> PreRoll (Start) -> Running (pre-roll elapsed), and back to Idle
// on Reset from anywhere.
type Controller struct {
	mu       sync.RWMutex
	clock    clock.Clock
	preRoll  time.Duration
	onChange func()
	logger   *slog.Logger

	config         Config
	phase          Phase
	active         bool
	startTriggered bool
	timerHidden    bool
	closed         bool
	cycles         int
	activeSince    time.Time
	phaseStartedAt time.Time
	phaseDuration  time.Duration

	preRollClock *phaseClock
	advanceClock *phaseClock
	elapsed      *timer.Timer
}

// New returns an idle controller using cfg.
func New(cfg Config, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.PreRoll <= 0 {
		opts.PreRoll = DefaultPreRoll
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &Controller{
		clock:        opts.Clock,
		preRoll:      opts.PreRoll,
		onChange:     opts.OnChange,
		logger:       opts.Logger,
		config:       cfg,
		phase:        PhaseStart,
		preRollClock: newPhaseClock(opts.Clock),
		advanceClock: newPhaseClock(opts.Clock),
	}
	c.elapsed = timer.New(opts.Clock, opts.TickInterval, c.notify)
	return c
}

// Start begins the pre-roll. It is a no-op while a start is already in
// progress or running.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.startTriggered {
		return
	}
	c.startTriggered = true
	c.preRollClock.schedule(c.preRoll, c.activate)
	c.logger.Debug("start triggered", "pre_roll", c.preRoll)
}

// Reset cancels every pending callback and returns to the start phase.
// The elapsed timer is reset with it.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// Close disposes of the controller. Pending callbacks are cancelled and
// later calls are no-ops.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
	c.closed = true
	c.elapsed.Close()
}

func (c *Controller) resetLocked() {
	c.preRollClock.cancel()
	c.advanceClock.cancel()
	if c.startTriggered {
		c.logger.Debug("reset", "phase", c.phase.String(), "cycles", c.cycles)
	}
	c.active = false
	c.startTriggered = false
	c.phase = PhaseStart
	c.cycles = 0
	c.activeSince = time.Time{}
	c.phaseStartedAt = time.Time{}
	c.phaseDuration = 0
	c.elapsed.Reset()
}

func (c *Controller) activate(gen uint64) {
	c.mu.Lock()
	if c.closed || !c.preRollClock.current(gen) {
		c.mu.Unlock()
		return
	}
	c.active = true
	c.activeSince = c.clock.Now()
	c.scheduleAdvanceLocked()
	c.elapsed.Start()
	c.logger.Debug("cycle active")
	c.mu.Unlock()

	c.notify()
}

func (c *Controller) advance(gen uint64) {
	c.mu.Lock()
	if c.closed || !c.active || !c.advanceClock.current(gen) {
		c.mu.Unlock()
		return
	}
	if c.phase == PhaseHoldOut {
		c.cycles++
	}
	c.phase = c.phase.Next()
	c.scheduleAdvanceLocked()
	c.mu.Unlock()

	c.notify()
}

// scheduleAdvanceLocked reads the live configuration, so a duration set
// while an advance is pending applies from the next advance onwards.
func (c *Controller) scheduleAdvanceLocked() {
	d := c.config.Duration(c.phase)
	c.phaseStartedAt = c.clock.Now()
	c.phaseDuration = d
	c.advanceClock.schedule(max(d, MinPhaseDelay), c.advance)
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Controller) SetInDuration(seconds float64) error {
	return c.setDuration(PhaseBreatheIn, seconds)
}

func (c *Controller) SetHoldInDuration(seconds float64) error {
	return c.setDuration(PhaseHoldIn, seconds)
}

func (c *Controller) SetOutDuration(seconds float64) error {
	return c.setDuration(PhaseBreatheOut, seconds)
}

func (c *Controller) SetHoldOutDuration(seconds float64) error {
	return c.setDuration(PhaseHoldOut, seconds)
}

func (c *Controller) setDuration(p Phase, seconds float64) error {
	d, err := Seconds(seconds)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.set(p, d)
	return nil
}

// SetDurations replaces all four durations at once, leaving the color.
func (c *Controller) SetDurations(cfg Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.In = max(cfg.In, 0)
	c.config.HoldIn = max(cfg.HoldIn, 0)
	c.config.Out = max(cfg.Out, 0)
	c.config.HoldOut = max(cfg.HoldOut, 0)
}

func (c *Controller) SetGradientColor(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Color = value
}

func (c *Controller) SetTimerHidden(hidden bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timerHidden = hidden
}

func (c *Controller) TimerHidden() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timerHidden
}

func (c *Controller) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

func (c *Controller) Active() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

func (c *Controller) StartTriggered() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.startTriggered
}

func (c *Controller) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// Elapsed returns the elapsed timer's display string.
func (c *Controller) Elapsed() string {
	return c.elapsed.Display()
}

// Snapshot copies the state read by a render.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	s := State{
		Phase:          c.phase,
		Active:         c.active,
		StartTriggered: c.startTriggered,
		Config:         c.config,
		TimerHidden:    c.timerHidden,
		PhaseStartedAt: c.phaseStartedAt,
		PhaseDuration:  c.phaseDuration,
		Cycles:         c.cycles,
		ActiveSince:    c.activeSince,
	}
	c.mu.RUnlock()

	s.Elapsed = c.elapsed.Display()
	return s
}
