package internal

import (
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxbreath/internal/breath"
	"boxbreath/internal/session"
)

func TestLabelFor(t *testing.T) {
	tests := []struct {
		label, current breath.Phase
		want           labelState
	}{
		{breath.PhaseBreatheIn, breath.PhaseStart, labelNone},
		{breath.PhaseHoldOut, breath.PhaseStart, labelNone},
		{breath.PhaseBreatheIn, breath.PhaseBreatheIn, labelActive},
		{breath.PhaseHoldOut, breath.PhaseBreatheIn, labelAfter},
		{breath.PhaseHoldIn, breath.PhaseBreatheIn, labelBefore},
		{breath.PhaseBreatheIn, breath.PhaseHoldIn, labelAfter},
		{breath.PhaseBreatheOut, breath.PhaseHoldOut, labelAfter},
		{breath.PhaseBreatheIn, breath.PhaseHoldOut, labelBefore},
	}

	for _, tt := range tests {
		t.Run(tt.label.String()+"/"+tt.current.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, labelFor(tt.label, tt.current))
		})
	}
}

func TestDotPositionFollowsEdges(t *testing.T) {
	assert.Equal(t, point{0, 0}, dotPosition(breath.PhaseBreatheIn, 0))
	assert.Equal(t, point{boxWidth - 1, 0}, dotPosition(breath.PhaseBreatheIn, 1))
	assert.Equal(t, point{boxWidth - 1, boxHeight - 1}, dotPosition(breath.PhaseHoldIn, 1))
	assert.Equal(t, point{0, boxHeight - 1}, dotPosition(breath.PhaseBreatheOut, 1))
	assert.Equal(t, point{0, 0}, dotPosition(breath.PhaseHoldOut, 1))
	assert.Equal(t, point{0, 0}, dotPosition(breath.PhaseStart, 0.5))

	// Each phase ends where the next begins.
	for _, p := range breath.Phases {
		end := edge(p)
		start := edge(p.Next())
		assert.Equal(t, end[len(end)-1], start[0], p.String())
	}
}

func TestGradientEndsAtBase(t *testing.T) {
	base, err := colorful.Hex("#ff0000")
	require.NoError(t, err)

	assert.Nil(t, gradient(base, 0))
	assert.Equal(t, []string{"#ff0000"}, gradient(base, 1))

	shades := gradient(base, 5)
	require.Len(t, shades, 5)
	assert.Equal(t, "#ff0000", shades[4])
	assert.NotEqual(t, shades[0], shades[4])
}

func TestRenderBoxIdleHasNoDot(t *testing.T) {
	s := breath.State{Phase: breath.PhaseStart, Config: breath.DefaultConfig()}
	assert.NotContains(t, renderBox(s, epoch), "●")

	s.StartTriggered = true
	assert.Contains(t, renderBox(s, epoch), "●")
}

func TestRenderBoxDrawsTrail(t *testing.T) {
	s := breath.State{
		Phase:          breath.PhaseBreatheIn,
		Active:         true,
		StartTriggered: true,
		Config:         breath.DefaultConfig(),
		PhaseStartedAt: epoch,
		PhaseDuration:  4 * time.Second,
	}
	out := renderBox(s, epoch.Add(2*time.Second))
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "━")
	assert.NotContains(t, out, "┃")
}

func TestAnimationViewHints(t *testing.T) {
	m, clk := newTestModel(t, false)
	assert.Contains(t, m.View(), "Press space to start")

	m.ctrl.Start()
	assert.Contains(t, m.View(), "Get ready")

	clk.Advance(breath.DefaultPreRoll)
	assert.Contains(t, m.View(), "Cycle 1")
	assert.Contains(t, m.View(), "Breathe in")
}

func TestFormatSessionEntry(t *testing.T) {
	s := session.Session{
		EndedAt:  time.Now().Add(-3 * time.Minute),
		Duration: 90 * time.Second,
		Cycles:   3,
		In:       4 * time.Second,
		HoldIn:   7 * time.Second,
		Out:      8 * time.Second,
		Color:    "not a color",
	}
	out := formatSessionEntry(s)
	assert.Contains(t, out, "3 minutes ago")
	assert.Contains(t, out, "00:01:30")
	assert.Contains(t, out, "3 cycles")
	assert.Contains(t, out, "4-7-8-0")
}
