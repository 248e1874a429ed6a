package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/videonormalizer/config"
	"github.com/lepinkainen/videonormalizer/history"
	"github.com/lepinkainen/videonormalizer/types"
	"github.com/lepinkainen/videonormalizer/ui"
	"github.com/lepinkainen/videonormalizer/utils"
	"github.com/lepinkainen/videonormalizer/video"
)

// session owns the resources of one library run: the root lock, the history store and
// the conversion config
type session struct {
	root    string
	cfg     video.Config
	flags   *ConversionFlags
	appCtx  *types.AppContext
	logger  hclog.InterceptLogger
	lock    *utils.RootLock
	store   *history.Store
	version string
}

// openSession runs every preflight check and takes the root lock. Dry runs skip the lock
// and the writability check since they never touch the library.
func openSession(appCtx *types.AppContext, flags *ConversionFlags, root string) (*session, error) {
	logger := appCtx.Log()

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	cfg, err := flags.VideoConfig()
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateFFmpegDependencies(flags.FFmpeg, flags.FFprobe); err != nil {
		return nil, errors.Join(video.ErrMissingBinary, err)
	}

	s := &session{
		root:    abs,
		cfg:     cfg,
		flags:   flags,
		appCtx:  appCtx,
		logger:  logger,
		version: appCtx.VersionString(),
	}

	if !cfg.DryRun {
		if err := utils.CheckRootWritable(abs); err != nil {
			return nil, err
		}
		if utils.IsNetworkDrive(abs) {
			logger.Warn("library is on a network drive, renames may not be atomic", "root", abs)
		}

		lockPath, err := config.LockPath(abs)
		if err != nil {
			return nil, err
		}
		if s.lock, err = utils.AcquireRootLock(lockPath); err != nil {
			return nil, err
		}
		logger.Debug("library locked", "root", abs, "lock", s.lock.Path())
	} else if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", abs, err)
	}

	if !flags.NoHistory {
		store, err := history.Open(flags.historyPath())
		if err != nil {
			// the ledger is optional; conversions still run
			logger.Warn("history disabled", "error", err)
		} else {
			s.store = store
		}
	}

	return s, nil
}

func (s *session) Close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("could not close history", "error", err)
		}
	}
	if s.lock != nil {
		if err := s.lock.Release(); err != nil {
			s.logger.Warn("could not release lock", "error", err)
		}
	}
}

func (s *session) library(events video.EventSink) (*video.Library, error) {
	opts := []video.Option{
		video.WithLogger(s.logger.Named("library")),
		video.WithEvents(events),
		video.WithFFmpegBinary(s.flags.FFmpeg),
		video.WithProber(video.NewFFprobe(s.flags.FFprobe, s.logger.Named("ffprobe"))),
	}
	if s.store != nil {
		opts = append(opts, video.WithRecorder(s.store))
	}
	return video.NewLibrary(s.cfg, opts...)
}

// run executes one pass over the library with an event consumer attached and prints the
// summary table. The returned error is non-nil when the run was cut short or any file failed.
func (s *session) run(ctx context.Context) (video.RunSummary, error) {
	out := s.appCtx.Stdout()
	mailbox := utils.NewMailbox[video.Event]()

	lib, err := s.library(video.SinkFunc(mailbox.Put))
	if err != nil {
		mailbox.Close()
		return video.RunSummary{}, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		summary video.RunSummary
		runErr  error
		records []ui.FileRecord
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		defer mailbox.Close()
		summary, runErr = lib.Run(ctx, s.root)
		return nil
	})
	g.Go(func() error {
		// drain whatever the consumer left so the mailbox can finish
		defer func() {
			for range mailbox.C() {
			}
		}()
		if useTUI(out, s.flags.NoTUI) {
			recs, err := s.runTUI(out, mailbox.C(), cancel)
			records = recs
			if err != nil {
				cancel()
				return fmt.Errorf("interactive view: %w", err)
			}
			return nil
		}
		records = s.runPlain(out, mailbox.C())
		return nil
	})
	if err := g.Wait(); err != nil {
		return summary, err
	}

	fmt.Fprintln(out, ui.RenderSummary(summary, records))
	if s.store != nil {
		fmt.Fprintln(out, ui.MutedStyle.Render(fmt.Sprintf("Run %s recorded in %s", summary.RunID, s.store.Path())))
	}

	if runErr != nil {
		return summary, runErr
	}
	if summary.Failed > 0 {
		return summary, fmt.Errorf("%d of %d files failed", summary.Failed, summary.Scanned)
	}
	return summary, nil
}

func (s *session) runTUI(out io.Writer, events <-chan video.Event, cancel func()) ([]ui.FileRecord, error) {
	sink := ui.NewLogSink(hclog.Info)
	s.logger.RegisterSink(sink)
	defer func() {
		s.logger.DeregisterSink(sink)
		sink.Close()
	}()

	model := ui.NewConversionModel(s.version, s.root, s.cfg.DryRun, events, sink.Lines(), cancel)
	final, err := tea.NewProgram(model, tea.WithOutput(out)).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(ui.ConversionModel)
	if !ok {
		return nil, nil
	}
	return m.Records(), nil
}

func (s *session) runPlain(out io.Writer, events <-chan video.Event) []ui.FileRecord {
	warnings := hclog.NewSinkAdapter(&hclog.LoggerOptions{
		Level:  hclog.Warn,
		Output: os.Stderr,
		Color:  hclog.AutoColor,
	})
	s.logger.RegisterSink(warnings)
	defer s.logger.DeregisterSink(warnings)

	reporter := ui.NewPlainReporter(out, isTerminal(out))
	reporter.Consume(events)
	return reporter.Records()
}

func useTUI(out io.Writer, noTUI bool) bool {
	return !noTUI && isTerminal(out)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
