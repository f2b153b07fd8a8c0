package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width so ended_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Repository stores sessions in a SQLite file.
type Repository struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Repository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	repo := &Repository{db: db}
	if err := repo.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return repo, nil
}

func (r *Repository) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		ended_at TEXT NOT NULL,
		duration INTEGER NOT NULL,
		cycles INTEGER NOT NULL DEFAULT 0,
		in_ns INTEGER NOT NULL,
		hold_in_ns INTEGER NOT NULL,
		out_ns INTEGER NOT NULL,
		hold_out_ns INTEGER NOT NULL,
		color TEXT NOT NULL DEFAULT ''
	)
	`
	_, err := r.db.Exec(query)
	return err
}

func (r *Repository) Create(s *Session) error {
	_, err := r.db.Exec(
		`INSERT INTO sessions
		 (id, started_at, ended_at, duration, cycles, in_ns, hold_in_ns, out_ns, hold_out_ns, color)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID,
		s.StartedAt.UTC().Format(timeLayout),
		s.EndedAt.UTC().Format(timeLayout),
		int64(s.Duration),
		s.Cycles,
		int64(s.In), int64(s.HoldIn), int64(s.Out), int64(s.HoldOut),
		s.Color,
	)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", s.ID, err)
	}
	return nil
}

// Recent returns up to limit sessions, newest first. A limit <= 0 returns
// all of them.
func (r *Repository) Recent(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.Query(
		`SELECT id, started_at, ended_at, duration, cycles, in_ns, hold_in_ns, out_ns, hold_out_ns, color
		 FROM sessions
		 ORDER BY ended_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var startedAt, endedAt string
		var duration, in, holdIn, out, holdOut int64
		if err := rows.Scan(
			&s.ID, &startedAt, &endedAt, &duration, &s.Cycles,
			&in, &holdIn, &out, &holdOut, &s.Color,
		); err != nil {
			return nil, err
		}
		var err error
		if s.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("session %s: parse started_at: %w", s.ID, err)
		}
		if s.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
			return nil, fmt.Errorf("session %s: parse ended_at: %w", s.ID, err)
		}
		s.Duration = time.Duration(duration)
		s.In = time.Duration(in)
		s.HoldIn = time.Duration(holdIn)
		s.Out = time.Duration(out)
		s.HoldOut = time.Duration(holdOut)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Totals summarizes every recorded session.
type Totals struct {
	Sessions int
	Cycles   int
	Duration time.Duration
}

func (r *Repository) Totals() (Totals, error) {
	var t Totals
	var duration int64
	err := r.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(cycles), 0), COALESCE(SUM(duration), 0) FROM sessions",
	).Scan(&t.Sessions, &t.Cycles, &duration)
	if err != nil {
		return Totals{}, err
	}
	t.Duration = time.Duration(duration)
	return t, nil
}

func (r *Repository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	return err
}

func (r *Repository) Close() error {
	return r.db.Close()
}
