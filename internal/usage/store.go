// Package usage records which suggestions users accepted, without the
// message text, and aggregates them per day.
package usage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/TEJA0811/Rephrase.AI/internal/tone"
)

// ErrInvalidEvent is returned by Record for events missing a timestamp or
// user.
var ErrInvalidEvent = errors.New("usage: invalid event")

const schema = `
CREATE TABLE IF NOT EXISTS usage (
	id   INTEGER PRIMARY KEY,
	ts   INTEGER NOT NULL,
	user TEXT,
	tone TEXT
);
CREATE INDEX IF NOT EXISTS usage_ts ON usage (ts);
`

// Event is one accepted suggestion. An empty Tone is stored as NULL.
type Event struct {
	At   time.Time
	User string
	Tone tone.Category
}

type DailyCount struct {
	Day         string `json:"day"`
	Total       int    `json:"total"`
	UniqueUsers int    `json:"unique_users"`
}

type DailyToneCount struct {
	Day   string        `json:"day"`
	Tone  tone.Category `json:"tone"`
	Total int           `json:"total"`
}

// Store is a SQLite-backed usage log.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("usage: open %s: %w", path, err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("usage: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Record(ctx context.Context, e Event) error {
	if e.At.IsZero() || e.User == "" {
		return ErrInvalidEvent
	}

	var t sql.NullString
	if e.Tone != "" {
		t = sql.NullString{String: string(e.Tone), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO usage (ts, user, tone) VALUES (?, ?, ?)`,
		e.At.UnixMilli(), e.User, t,
	)
	if err != nil {
		return fmt.Errorf("usage: insert: %w", err)
	}
	return nil
}

// Daily returns accepted suggestions and distinct users per UTC day, oldest
// first.
func (s *Store) Daily(ctx context.Context) ([]DailyCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(ts/1000, 'unixepoch') AS day,
		       COUNT(*)                   AS total,
		       COUNT(DISTINCT user)       AS unique_users
		FROM usage
		GROUP BY day
		ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("usage: daily: %w", err)
	}
	defer rows.Close()

	out := []DailyCount{}
	for rows.Next() {
		var c DailyCount
		if err := rows.Scan(&c.Day, &c.Total, &c.UniqueUsers); err != nil {
			return nil, fmt.Errorf("usage: daily scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DailyByTone returns per-day counts split by tone. Rows recorded without a
// tone are reported as neutral.
func (s *Store) DailyByTone(ctx context.Context) ([]DailyToneCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(ts/1000, 'unixepoch') AS day,
		       COALESCE(tone, 'neutral')  AS tone,
		       COUNT(*)                   AS total
		FROM usage
		GROUP BY day, COALESCE(tone, 'neutral')
		ORDER BY day, tone`)
	if err != nil {
		return nil, fmt.Errorf("usage: daily by tone: %w", err)
	}
	defer rows.Close()

	out := []DailyToneCount{}
	for rows.Next() {
		var c DailyToneCount
		if err := rows.Scan(&c.Day, &c.Tone, &c.Total); err != nil {
			return nil, fmt.Errorf("usage: daily by tone scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
