package breath

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPhaseNext(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected Phase
	}{
		{PhaseStart, PhaseBreatheIn},
		{PhaseBreatheIn, PhaseHoldIn},
		{PhaseHoldIn, PhaseBreatheOut},
		{PhaseBreatheOut, PhaseHoldOut},
		{PhaseHoldOut, PhaseBreatheIn},
	}

	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.Next())
		})
	}
}

func TestPhaseIndex(t *testing.T) {
	for i, p := range Phases {
		idx, ok := p.Index()
		assert.True(t, ok)
		assert.Equal(t, i, idx)
		assert.True(t, p.IsActive())
	}

	idx, ok := PhaseStart.Index()
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
	assert.False(t, PhaseStart.IsActive())
	assert.Empty(t, PhaseStart.String())
}

func TestConfigDuration(t *testing.T) {
	cfg := Config{In: 1 * time.Second, HoldIn: 2 * time.Second, Out: 3 * time.Second, HoldOut: 4 * time.Second}

	assert.Equal(t, 1*time.Second, cfg.Duration(PhaseStart))
	assert.Equal(t, 1*time.Second, cfg.Duration(PhaseBreatheIn))
	assert.Equal(t, 2*time.Second, cfg.Duration(PhaseHoldIn))
	assert.Equal(t, 3*time.Second, cfg.Duration(PhaseBreatheOut))
	assert.Equal(t, 4*time.Second, cfg.Duration(PhaseHoldOut))
	assert.Equal(t, 10*time.Second, cfg.Cycle())
}

func TestSeconds(t *testing.T) {
	d, err := Seconds(0.25)
	assert.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	d, err = Seconds(-3)
	assert.NoError(t, err)
	assert.Zero(t, d)

	for _, huge := range []float64{1e12, 1e300, math.MaxFloat64} {
		d, err = Seconds(huge)
		assert.NoError(t, err)
		assert.Equal(t, time.Duration(math.MaxInt64), d, "%g", huge)
	}
}
