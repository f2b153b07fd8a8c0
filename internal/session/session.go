package session

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"boxbreath/internal/breath"
)

// Session is one recorded run of the breathing cycle, from the moment it
// went live until it was reset or the program exited.
type Session struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
	Cycles    int
	In        time.Duration
	HoldIn    time.Duration
	Out       time.Duration
	HoldOut   time.Duration
	Color     string
}

// FromState builds a session from a controller snapshot taken just before
// a reset. It reports false when the cycle never went live.
func FromState(s breath.State, endedAt time.Time) (*Session, bool) {
	if !s.Active || s.ActiveSince.IsZero() {
		return nil, false
	}
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: s.ActiveSince,
		EndedAt:   endedAt,
		Duration:  endedAt.Sub(s.ActiveSince),
		Cycles:    s.Cycles,
		In:        s.Config.In,
		HoldIn:    s.Config.HoldIn,
		Out:       s.Config.Out,
		HoldOut:   s.Config.HoldOut,
		Color:     s.Config.Color,
	}, true
}

// Pattern renders the four durations as e.g. "4-4-4-4".
func (s Session) Pattern() string {
	return formatSeconds(s.In) + "-" + formatSeconds(s.HoldIn) + "-" +
		formatSeconds(s.Out) + "-" + formatSeconds(s.HoldOut)
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
