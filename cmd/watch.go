package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"github.com/lepinkainen/videonormalizer/types"
	"github.com/lepinkainen/videonormalizer/ui"
	"github.com/lepinkainen/videonormalizer/video"
)

// WatchCmd converts the library once and then again whenever new videos settle in it
type WatchCmd struct {
	Root     string        `arg:"" name:"root" help:"Library directory to watch" type:"existingdir" default:"."`
	Debounce time.Duration `help:"Quiet period after the last change before converting" default:"30s"`

	ConversionFlags `embed:""`
}

func (cmd *WatchCmd) Run(ctx context.Context, appCtx *types.AppContext) error {
	// reruns rely on finished files being skipped; the TUI cannot span several runs
	cmd.SkipExisting = true
	cmd.NoTUI = true

	out := appCtx.Stdout()
	logger := appCtx.Log().Named("watch")

	s, err := openSession(appCtx, &cmd.ConversionFlags, cmd.Root)
	if err != nil {
		return err
	}
	defer s.Close()

	w, err := newLibraryWatcher(s.root, cmd.Debounce, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintln(out, ui.HeaderStyle.Render(fmt.Sprintf("Video Normalizer %s (watching)", s.version)))

	for {
		if _, err := s.run(ctx); err != nil {
			if errors.Is(err, video.ErrMissingBinary) {
				return err
			}
			if ctx.Err() != nil {
				return nil
			}
			logger.Warn("run finished with failures", "error", err)
		}

		fmt.Fprintln(out, ui.InfoStyle.Render(fmt.Sprintf("Watching %s for new videos...", s.root)))
		if err := w.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// libraryWatcher reports when candidate files under a root stop changing
type libraryWatcher struct {
	root     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   hclog.Logger
}

func newLibraryWatcher(root string, debounce time.Duration, logger hclog.Logger) (*libraryWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &libraryWatcher{root: root, debounce: debounce, watcher: watcher, logger: logger}
	if err := w.addRecursive(root); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

// addRecursive watches dir and every directory below it
func (w *libraryWatcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			w.logger.Debug("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			if path == dir {
				return fmt.Errorf("watch %s: %w", path, err)
			}
			w.logger.Debug("failed to add watch", "path", path, "error", err)
		}
		return nil
	})
}

// Wait blocks until a candidate file was created or written and then nothing relevant
// happened for the debounce period
func (w *libraryWatcher) Wait(ctx context.Context) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	arm := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			fire = timer.C
			return
		}
		timer.Reset(w.debounce)
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			if ev.Has(fsnotify.Create) && isDir(ev.Name) {
				if err := w.addRecursive(ev.Name); err != nil {
					w.logger.Warn("cannot watch new directory", "path", ev.Name, "error", err)
				}
				// files moved in with the directory produce no events of their own
				arm()
				continue
			}
			if !isTrigger(ev) {
				continue
			}
			w.logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			arm()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			w.logger.Error("watcher error", "error", err)

		case <-fire:
			return nil
		}
	}
}

func (w *libraryWatcher) Close() error {
	return w.watcher.Close()
}

// isTrigger reports whether ev can produce work. With skip-existing on, an .mp4 is always
// its own existing output, so only non-MP4 candidates count; this also ignores the files a
// run writes itself.
func isTrigger(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	return video.IsCandidate(ev.Name) && !video.IsMP4(ev.Name)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
