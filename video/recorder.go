package video

import (
	"context"
	"time"
)

// RunInfo describes a run as it starts
type RunInfo struct {
	ID        string
	Root      string
	StartedAt time.Time
	Backend   Backend
	DryRun    bool
}

// FileResult is the persisted form of one processed candidate
type FileResult struct {
	Path        string
	Outcome     Outcome
	Detail      string
	InputBytes  int64
	OutputBytes int64
	FinishedAt  time.Time
}

// Recorder persists run history. Errors are logged by the caller and never fail a file.
type Recorder interface {
	StartRun(ctx context.Context, run RunInfo) error
	RecordFile(ctx context.Context, runID string, result FileResult) error
	FinishRun(ctx context.Context, summary RunSummary) error
}
