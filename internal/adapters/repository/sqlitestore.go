package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/hillchallenge/hillboard/internal/domain/model"
	"github.com/hillchallenge/hillboard/pkg/metrics"
)

// schema creates the submission log table. Safe to run on every start; uses
// IF NOT EXISTS throughout.
const schema = `
CREATE TABLE IF NOT EXISTS submissions (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    location TEXT NOT NULL,
    repetitions INTEGER NOT NULL CHECK (repetitions >= 1),
    vertical_gain REAL NOT NULL,
    strava_link TEXT NOT NULL,
    date TEXT NOT NULL,
    submitted_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_email ON submissions(email);
CREATE INDEX IF NOT EXISTS idx_submissions_location ON submissions(location);
`

// SQLiteStore is the persistent Store adapter backed by a single SQLite file.
// Each append is one atomic insert; concurrency control lives in the database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// schema exists.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStore, path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %w", ErrStore, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create schema: %w", ErrStore, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append implements Store.Append.
func (s *SQLiteStore) Append(ctx context.Context, sub model.Submission) (model.Submission, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreAppendLatency(float64(time.Since(start).Milliseconds()))
	}()

	sub.ID = uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, name, email, location, repetitions, vertical_gain, strava_link, date, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.Email, sub.Location, sub.Repetitions,
		sub.VerticalGain, sub.StravaLink, sub.Date, sub.SubmittedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		metrics.RecordStoreFailure()
		return model.Submission{}, fmt.Errorf("%w: insert: %w", ErrStore, err)
	}
	return sub, nil
}

// All implements Store.All. Rows come back in append order.
func (s *SQLiteStore) All(ctx context.Context) ([]model.Submission, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreScanLatency(float64(time.Since(start).Milliseconds()))
	}()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, location, repetitions, vertical_gain, strava_link, date, submitted_at
		 FROM submissions ORDER BY rowid`)
	if err != nil {
		metrics.RecordStoreFailure()
		return nil, fmt.Errorf("%w: scan: %w", ErrStore, err)
	}
	defer rows.Close()

	var out []model.Submission
	for rows.Next() {
		var sub model.Submission
		var submittedAt string
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Location,
			&sub.Repetitions, &sub.VerticalGain, &sub.StravaLink, &sub.Date, &submittedAt); err != nil {
			metrics.RecordStoreFailure()
			return nil, fmt.Errorf("%w: scan row: %w", ErrStore, err)
		}
		ts, err := time.Parse(time.RFC3339Nano, submittedAt)
		if err != nil {
			metrics.RecordStoreFailure()
			return nil, fmt.Errorf("%w: parse submitted_at: %w", ErrStore, err)
		}
		sub.SubmittedAt = ts
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordStoreFailure()
		return nil, fmt.Errorf("%w: iterate: %w", ErrStore, err)
	}
	return out, nil
}

// Count implements Store.Count.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&n); err != nil {
		metrics.RecordStoreFailure()
		return 0, fmt.Errorf("%w: count: %w", ErrStore, err)
	}
	return n, nil
}

// Close implements Store.Close.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrStore, err)
	}
	return nil
}
