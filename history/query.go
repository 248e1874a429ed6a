package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

var nowFunc = time.Now

// Run is one row of the runs table
type Run struct {
	ID         string
	Root       string
	StartedAt  time.Time
	FinishedAt time.Time // zero while the run is in progress or if it crashed
	Backend    string
	DryRun     bool
	Scanned    int
	Converted  int
	Skipped    int
	Failed     int
}

// Entry is one processed file
type Entry struct {
	RunID       string
	Path        string
	Outcome     string
	Detail      string
	InputBytes  int64
	OutputBytes int64
	FinishedAt  time.Time
}

// RecentRuns returns up to limit runs, newest first
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, root, started_at, finished_at, backend, dry_run, scanned, converted, skipped, failed
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                 Run
			started, finished sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Root, &started, &finished, &r.Backend, &r.DryRun,
			&r.Scanned, &r.Converted, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = parseTime(started)
		r.FinishedAt = parseTime(finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Entries returns the files processed by a run in processing order.
// runID may be a unique prefix of the full ID.
func (s *Store) Entries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, path, outcome, detail, input_bytes, output_bytes, finished_at
		 FROM entries WHERE run_id LIKE ? || '%' ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			finished sql.NullString
		)
		if err := rows.Scan(&e.RunID, &e.Path, &e.Outcome, &e.Detail, &e.InputBytes, &e.OutputBytes, &finished); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.FinishedAt = parseTime(finished)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LastOutcome returns the most recent recorded outcome for path
func (s *Store) LastOutcome(ctx context.Context, path string) (Entry, bool, error) {
	var (
		e        Entry
		finished sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, path, outcome, detail, input_bytes, output_bytes, finished_at
		 FROM entries WHERE path = ? ORDER BY id DESC LIMIT 1`, path).
		Scan(&e.RunID, &e.Path, &e.Outcome, &e.Detail, &e.InputBytes, &e.OutputBytes, &finished)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("query last outcome: %w", err)
	}
	e.FinishedAt = parseTime(finished)
	return e, true, nil
}
