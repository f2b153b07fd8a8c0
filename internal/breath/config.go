package breath

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidDuration is returned by the duration setters for NaN and
// infinite values.
var ErrInvalidDuration = errors.New("duration must be a finite number of seconds")

const (
	DefaultPhaseDuration = 4 * time.Second
	DefaultColor         = "#4fb3bf"
)

// Config holds the user-tunable cycle settings.
type Config struct {
	In      time.Duration
	HoldIn  time.Duration
	Out     time.Duration
	HoldOut time.Duration
	// Color is an opaque display value, validated upstream.
	Color string
}

// DefaultConfig returns the classic four-by-four box.
func DefaultConfig() Config {
	return Config{
		In:      DefaultPhaseDuration,
		HoldIn:  DefaultPhaseDuration,
		Out:     DefaultPhaseDuration,
		HoldOut: DefaultPhaseDuration,
		Color:   DefaultColor,
	}
}

// Duration returns how long p lasts. PhaseStart waits as long as a
// breathe-in.
func (c Config) Duration(p Phase) time.Duration {
	switch p {
	case PhaseHoldIn:
		return c.HoldIn
	case PhaseBreatheOut:
		return c.Out
	case PhaseHoldOut:
		return c.HoldOut
	default:
		return c.In
	}
}

// Cycle returns the length of one full cycle.
func (c Config) Cycle() time.Duration {
	return c.In + c.HoldIn + c.Out + c.HoldOut
}

func (c *Config) set(p Phase, d time.Duration) {
	switch p {
	case PhaseBreatheIn:
		c.In = d
	case PhaseHoldIn:
		c.HoldIn = d
	case PhaseBreatheOut:
		c.Out = d
	case PhaseHoldOut:
		c.HoldOut = d
	}
}

// maxSeconds is the largest seconds value a Duration can hold.
const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

// Seconds converts a seconds value into a Duration. Negative values clamp
// to zero and values too large for a Duration clamp to the maximum.
func Seconds(seconds float64) (time.Duration, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, ErrInvalidDuration
	}
	if seconds < 0 {
		return 0, nil
	}
	if seconds >= maxSeconds {
		return time.Duration(math.MaxInt64), nil
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
