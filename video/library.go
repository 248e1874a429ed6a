package video

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Library converts every candidate under a root, one file at a time
type Library struct {
	cfg          Config
	prober       Prober
	encoder      Encoder
	logger       hclog.Logger
	events       EventSink
	recorder     Recorder
	discover     func(ctx context.Context, root string) ([]string, error)
	ffmpegBinary string
	checkSpace   bool
}

// Option customizes a Library
type Option func(*Library)

// WithProber replaces the default ffprobe prober
func WithProber(p Prober) Option {
	return func(l *Library) { l.prober = p }
}

// WithEncoder replaces the default ffmpeg encoder
func WithEncoder(e Encoder) Option {
	return func(l *Library) { l.encoder = e }
}

// WithLogger sets the diagnostics logger
func WithLogger(logger hclog.Logger) Option {
	return func(l *Library) { l.logger = logger }
}

// WithEvents sets the sink that receives status events
func WithEvents(sink EventSink) Option {
	return func(l *Library) { l.events = sink }
}

// WithRecorder persists every run and file outcome
func WithRecorder(r Recorder) Option {
	return func(l *Library) { l.recorder = r }
}

// WithFFmpegBinary sets the encoder binary shown in and used by synthesized commands
func WithFFmpegBinary(path string) Option {
	return func(l *Library) { l.ffmpegBinary = path }
}

// WithDiscovery replaces candidate discovery
func WithDiscovery(fn func(ctx context.Context, root string) ([]string, error)) Option {
	return func(l *Library) { l.discover = fn }
}

// WithSpaceCheck toggles the free-space warning before each encode
func WithSpaceCheck(enabled bool) Option {
	return func(l *Library) { l.checkSpace = enabled }
}

// NewLibrary validates cfg and returns an orchestrator using ffprobe/ffmpeg from PATH
// unless overridden by options
func NewLibrary(cfg Config, opts ...Option) (*Library, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	l := &Library{
		cfg:        cfg,
		logger:     hclog.NewNullLogger(),
		events:     discardSink{},
		discover:   DiscoverCandidates,
		checkSpace: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.prober == nil {
		l.prober = NewFFprobe("", l.logger.Named("ffprobe"))
	}
	if l.encoder == nil {
		l.encoder = NewFFmpeg(l.ffmpegBinary, l.logger.Named("ffmpeg"))
	}
	return l, nil
}

// Run converts every candidate under root in sorted order. Per-file failures are counted
// in the summary; the returned error is only set when the run itself was cut short
// (discovery failure, cancellation or a missing binary). RunCompleted is always emitted.
func (l *Library) Run(ctx context.Context, root string) (summary RunSummary, err error) {
	started := time.Now()
	summary = RunSummary{RunID: uuid.NewString(), Root: root}
	logger := l.logger.With("run_id", summary.RunID)

	defer func() {
		summary.Duration = time.Since(started)
		if l.recorder != nil {
			if recErr := l.recorder.FinishRun(context.WithoutCancel(ctx), summary); recErr != nil {
				logger.Warn("could not record run", "error", recErr)
			}
		}
		logger.Info("run complete", "summary", summary.String(), "duration", summary.Duration.Round(time.Second))
		l.events.Emit(RunCompleted{Summary: summary, Err: err})
	}()

	l.events.Emit(ScanStarted{Root: root})
	logger.Info("scanning", "root", root, "dry_run", l.cfg.DryRun)

	files, err := l.discover(ctx, root)
	if err != nil {
		return summary, fmt.Errorf("discover %q: %w", root, err)
	}
	l.events.Emit(PendingFiles{Paths: append([]string(nil), files...)})
	logger.Info("found candidates", "count", len(files))

	if l.recorder != nil {
		info := RunInfo{ID: summary.RunID, Root: root, StartedAt: started, Backend: l.cfg.Backend, DryRun: l.cfg.DryRun}
		if recErr := l.recorder.StartRun(ctx, info); recErr != nil {
			logger.Warn("could not record run start", "error", recErr)
		}
	}

	total := len(files)
	for i, path := range files {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return summary, ctxErr
		}

		l.events.Emit(FileStarted{Path: path, Index: i + 1, Total: total})
		res := l.convertFile(ctx, path)
		summary.Add(res.Outcome)

		logger.Info("file processed", "path", path, "outcome", res.Outcome.String())
		l.events.Emit(FileProcessed{Path: path, Outcome: res.Outcome, Detail: res.Detail, DryRun: l.cfg.DryRun})
		l.events.Emit(Progress{Current: i + 1, Total: total})
		l.record(ctx, logger, summary.RunID, path, res)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return summary, ctxErr
		}
		if isMissingBinary(res.Err) {
			logger.Error("stopping run, required binary is unavailable", "error", res.Err)
			return summary, errors.Join(ErrMissingBinary, res.Err)
		}
	}

	return summary, nil
}

func (l *Library) record(ctx context.Context, logger hclog.Logger, runID, path string, res fileResult) {
	if l.recorder == nil {
		return
	}
	err := l.recorder.RecordFile(context.WithoutCancel(ctx), runID, FileResult{
		Path:        path,
		Outcome:     res.Outcome,
		Detail:      res.Detail,
		InputBytes:  res.InputBytes,
		OutputBytes: res.OutputBytes,
		FinishedAt:  time.Now(),
	})
	if err != nil {
		logger.Warn("could not record file outcome", "path", path, "error", err)
	}
}
