package history

import (
	"context"
	"fmt"

	"github.com/lepinkainen/videonormalizer/video"
)

var _ video.Recorder = (*Store)(nil)

// StartRun inserts the run row
func (s *Store) StartRun(ctx context.Context, run video.RunInfo) error {
	_, err := s.exec(ctx,
		`INSERT INTO runs (id, root, started_at, backend, dry_run) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Root, formatTime(run.StartedAt), string(run.Backend), run.DryRun)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

// RecordFile appends one file outcome to a run
func (s *Store) RecordFile(ctx context.Context, runID string, result video.FileResult) error {
	_, err := s.exec(ctx,
		`INSERT INTO entries (run_id, path, outcome, detail, input_bytes, output_bytes, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, result.Path, result.Outcome.String(), result.Detail,
		result.InputBytes, result.OutputBytes, formatTime(result.FinishedAt))
	if err != nil {
		return fmt.Errorf("insert entry for %s: %w", result.Path, err)
	}
	return nil
}

// FinishRun stores the final counters. Runs that never started are ignored.
func (s *Store) FinishRun(ctx context.Context, summary video.RunSummary) error {
	_, err := s.exec(ctx,
		`UPDATE runs SET finished_at = ?, scanned = ?, converted = ?, skipped = ?, failed = ?
		 WHERE id = ?`,
		formatTime(nowFunc()), summary.Scanned, summary.Converted, summary.Skipped, summary.Failed, summary.RunID)
	if err != nil {
		return fmt.Errorf("update run %s: %w", summary.RunID, err)
	}
	return nil
}
