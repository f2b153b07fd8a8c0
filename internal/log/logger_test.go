package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLogger() {
	logger = nil
	once = *new(sync.Once)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"info", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.in))
		})
	}
}

func TestSetupWritesJSON(t *testing.T) {
	resetLogger()
	t.Cleanup(resetLogger)

	var buf bytes.Buffer
	Setup("DEBUG", &buf)
	WithComponent("breath").Debug("cycle active", "cycles", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "cycle active", entry["msg"])
	assert.Equal(t, "breath", entry["component"])
	assert.Equal(t, float64(2), entry["cycles"])
}

func TestSetupRespectsLevel(t *testing.T) {
	resetLogger()
	t.Cleanup(resetLogger)

	var buf bytes.Buffer
	Setup("WARN", &buf)
	Get().Info("ignored")
	assert.Zero(t, buf.Len())

	WithSession("abc").Warn("kept")
	assert.Contains(t, buf.String(), `"session_id":"abc"`)
}

func TestGetWithoutSetup(t *testing.T) {
	resetLogger()
	t.Cleanup(resetLogger)

	assert.NotNil(t, Get())
}
