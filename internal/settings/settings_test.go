package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxbreath/internal/breath"
)

func TestValidateSeconds(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		err      error
	}{
		{"integer", "4", 4, nil},
		{"fraction", " 0.1 ", 0.1, nil},
		{"upper bound", "600", 600, nil},
		{"word", "four", 0, ErrNotNumber},
		{"empty", "", 0, ErrNotNumber},
		{"nan", "NaN", 0, ErrNotNumber},
		{"infinity", "Inf", 0, ErrNotNumber},
		{"zero", "0", 0, ErrNotPositive},
		{"negative", "-2", 0, ErrNotPositive},
		{"too long", "601", 0, ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ValidateSeconds(tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		hex   string
	}{
		{"red", "#ff0000"},
		{"  RebeccaPurple ", "#663399"},
		{"#0f0", "#00ff00"},
		{"#00FF00", "#00ff00"},
		{"#0f08", "#00ff00"},
		{"#4fb3bf80", "#4fb3bf"},
		{"rgb(255, 0, 0)", "#ff0000"},
		{"rgba(0,0,255,0.5)", "#0000ff"},
		{"rgb(0 128 0 / 50%)", "#008000"},
		{"rgb(100%, 0%, 0%)", "#ff0000"},
		{"hsl(120, 100%, 50%)", "#00ff00"},
		{"hsla(240deg 100% 50% / 0.3)", "#0000ff"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.hex, c.Hex())
		})
	}
}

func TestParseColorRejects(t *testing.T) {
	for _, input := range []string{
		"",
		"notacolor",
		"#12",
		"#ggg",
		"#12345z",
		"rgb(256, 0, 0)",
		"rgb(1, 2)",
		"rgba(1, 2, 3, 2)",
		"hsl(120, 100, 50)",
		"cmyk(0, 0, 0, 0)",
		"rgb(1, 2, 3",
		"hsl(inf, 50%, 50%)",
		"hsl(-inf, 50%, 50%)",
		"hsl(nan, 50%, 50%)",
		"hsl(120, nan%, 50%)",
		"rgb(nan, 0, 0)",
		"rgb(0, nan%, 0)",
		"rgba(0, 0, 0, nan)",
		"rgba(0, 0, 0, inf%)",
	} {
		t.Run(input, func(t *testing.T) {
			assert.ErrorIs(t, ValidateColor(input), ErrNotColor)
		})
	}
}

func TestParseColorWrapsHue(t *testing.T) {
	want, err := ParseColor("hsl(330, 50%, 50%)")
	require.NoError(t, err)

	for _, input := range []string{"hsl(-30, 50%, 50%)", "hsl(690deg, 50%, 50%)"} {
		got, err := ParseColor(input)
		require.NoError(t, err, input)
		assert.Equal(t, want.Hex(), got.Hex(), input)
	}

	_, err = ParseColor("hsl(1e300, 50%, 50%)")
	assert.NoError(t, err)
}

func TestHexFallback(t *testing.T) {
	assert.Equal(t, "#ff0000", Hex("red", "#ffffff"))
	assert.Equal(t, "#ffffff", Hex("nope", "#ffffff"))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
in_seconds: 5
hold_in_seconds: 2.5
out_seconds: -1
hold_out_seconds: 9000
color: tomato
hide_timer: true
pre_roll_ms: 500
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, s.Breath.In)
	assert.Equal(t, 2500*time.Millisecond, s.Breath.HoldIn)
	assert.Equal(t, breath.DefaultPhaseDuration, s.Breath.Out, "negative ignored")
	assert.Equal(t, breath.DefaultPhaseDuration, s.Breath.HoldOut, "too long ignored")
	assert.Equal(t, "tomato", s.Breath.Color)
	assert.True(t, s.HideTimer)
	assert.Equal(t, 500*time.Millisecond, s.PreRoll)
}

func TestLoadIgnoresInvalidColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("color: plaid\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, breath.DefaultColor, s.Breath.Color)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("in_seconds: [\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse settings yaml")
}

func TestCheckSeconds(t *testing.T) {
	assert.NoError(t, CheckSeconds(0.5))
	assert.ErrorIs(t, CheckSeconds(0), ErrNotPositive)
	assert.ErrorIs(t, CheckSeconds(MaxPhaseSeconds+1), ErrTooLong)
}
