package settings

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	ErrNotNumber   = errors.New("must be a number")
	ErrNotPositive = errors.New("must be greater than zero")
	ErrTooLong     = errors.New("must be at most 600 seconds")
	ErrNotColor    = errors.New("must be a valid CSS color value")
)

// MaxPhaseSeconds bounds a single phase so a typo cannot stall the cycle.
const MaxPhaseSeconds = 600

// ValidateSeconds parses a phase duration typed into the settings form.
func ValidateSeconds(input string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return 0, ErrNotNumber
	}
	if err := CheckSeconds(v); err != nil {
		return 0, err
	}
	return v, nil
}

// CheckSeconds applies the phase duration bounds to an already numeric
// value.
func CheckSeconds(v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return ErrNotNumber
	case v <= 0:
		return ErrNotPositive
	case v > MaxPhaseSeconds:
		return ErrTooLong
	}
	return nil
}

// ValidateColor reports whether input is a CSS color this program can
// render.
func ValidateColor(input string) error {
	_, err := ParseColor(input)
	return err
}
