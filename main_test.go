package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxbreath/internal/session"
	"boxbreath/internal/settings"
)

func TestApplyFlagsOverridesOnlyChanged(t *testing.T) {
	cmd := rootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--in", "5.5", "--color", "hsl(200, 50%, 50%)", "--hide-timer"}))

	var flags rootFlags
	flags.in, _ = cmd.Flags().GetFloat64("in")
	flags.color, _ = cmd.Flags().GetString("color")
	flags.hideTimer, _ = cmd.Flags().GetBool("hide-timer")

	s := settings.Defaults()
	require.NoError(t, applyFlags(cmd, &s, flags))
	assert.Equal(t, 5500*time.Millisecond, s.Breath.In)
	assert.Equal(t, settings.Defaults().Breath.Out, s.Breath.Out)
	assert.Equal(t, "hsl(200, 50%, 50%)", s.Breath.Color)
	assert.True(t, s.HideTimer)
}

func TestApplyFlagsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"zero duration", []string{"--hold-out", "0"}, "--hold-out 0: must be greater than zero"},
		{"bad color", []string{"--color", "plaid"}, `--color "plaid": must be a valid CSS color value`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := rootCmd()
			require.NoError(t, cmd.ParseFlags(tt.args))

			var flags rootFlags
			flags.holdOut, _ = cmd.Flags().GetFloat64("hold-out")
			flags.color, _ = cmd.Flags().GetString("color")

			s := settings.Defaults()
			assert.EqualError(t, applyFlags(cmd, &s, flags), tt.msg)
		})
	}
}

func TestResolveHistoryPath(t *testing.T) {
	path, err := resolveHistoryPath(rootFlags{noHistory: true, historyPath: "x.db"})
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = resolveHistoryPath(rootFlags{historyPath: "x.db"})
	require.NoError(t, err)
	assert.Equal(t, "x.db", path)
}

func TestPrintHistory(t *testing.T) {
	repo, err := session.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer repo.Close()

	var buf bytes.Buffer
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, printHistory(&buf, repo, 10, now))
	assert.Equal(t, "No sessions recorded.\n", buf.String())

	require.NoError(t, repo.Create(&session.Session{
		ID:        "s1",
		StartedAt: now.Add(-time.Hour - 5*time.Minute),
		EndedAt:   now.Add(-time.Hour),
		Duration:  5 * time.Minute,
		Cycles:    18,
		In:        4 * time.Second,
		HoldIn:    4 * time.Second,
		Out:       4 * time.Second,
		HoldOut:   4 * time.Second,
	}))

	buf.Reset()
	require.NoError(t, printHistory(&buf, repo, 10, now))
	out := buf.String()
	assert.Contains(t, out, "1 sessions, 18 cycles, 00:05:00 total")
	assert.Contains(t, out, "1 hour ago")
	assert.Contains(t, out, "4-4-4-4")
}
