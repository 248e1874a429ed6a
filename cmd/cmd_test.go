package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/videonormalizer/history"
	"github.com/lepinkainen/videonormalizer/types"
	"github.com/lepinkainen/videonormalizer/video"
)

func defaultFlags() ConversionFlags {
	return ConversionFlags{
		Backend:      "nvidia",
		Quality:      23,
		Profile:      "main",
		AudioCodec:   "aac",
		AudioQuality: "2",
		Language:     "eng",
		FFmpeg:       "ffmpeg",
		FFprobe:      "ffprobe",
	}
}

func TestVideoConfig(t *testing.T) {
	flags := defaultFlags()
	flags.Backend = "cpu"
	flags.Profile = "main10"
	flags.Language = "fr"
	flags.DryRun = true

	cfg, err := flags.VideoConfig()
	require.NoError(t, err)
	assert.Equal(t, video.BackendCPU, cfg.Backend)
	assert.Equal(t, video.ProfileMain10, cfg.Profile)
	assert.Equal(t, "fre", cfg.Language)
	assert.True(t, cfg.DryRun)
}

func TestVideoConfigRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConversionFlags)
	}{
		{"backend", func(f *ConversionFlags) { f.Backend = "vulkan" }},
		{"profile", func(f *ConversionFlags) { f.Profile = "main12" }},
		{"quality", func(f *ConversionFlags) { f.Quality = 60 }},
		{"language", func(f *ConversionFlags) { f.Language = "zz-not-a-language" }},
		{"audio quality", func(f *ConversionFlags) { f.AudioQuality = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := defaultFlags()
			tt.mutate(&flags)
			_, err := flags.VideoConfig()
			assert.Error(t, err)
		})
	}
}

func TestHistoryPath(t *testing.T) {
	flags := defaultFlags()
	flags.HistoryDB = "/tmp/custom.db"
	assert.Equal(t, "/tmp/custom.db", flags.historyPath())

	flags.HistoryDB = ""
	assert.True(t, strings.HasSuffix(flags.historyPath(), "history.db"))
}

func TestOpenSessionMissingBinary(t *testing.T) {
	flags := defaultFlags()
	flags.FFmpeg = "/nonexistent/ffmpeg-binary"
	flags.FFprobe = "/nonexistent/ffprobe-binary"

	_, err := openSession(&types.AppContext{}, &flags, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, video.ErrMissingBinary))
}

func TestIsTrigger(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"new mkv", fsnotify.Event{Name: "/lib/a.mkv", Op: fsnotify.Create}, true},
		{"written avi", fsnotify.Event{Name: "/lib/a.avi", Op: fsnotify.Write}, true},
		{"mp4 output", fsnotify.Event{Name: "/lib/a.mp4", Op: fsnotify.Create}, false},
		{"temp file", fsnotify.Event{Name: "/lib/a.temp.mp4", Op: fsnotify.Create}, false},
		{"not a video", fsnotify.Event{Name: "/lib/a.nfo", Op: fsnotify.Create}, false},
		{"removed mkv", fsnotify.Event{Name: "/lib/a.mkv", Op: fsnotify.Remove}, false},
		{"chmod mkv", fsnotify.Event{Name: "/lib/a.mkv", Op: fsnotify.Chmod}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTrigger(tt.ev))
		})
	}
}

func TestLibraryWatcherFiresAfterQuietPeriod(t *testing.T) {
	root := t.TempDir()
	w, err := newLibraryWatcher(root, 50*time.Millisecond, hclog.NewNullLogger())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(root, "new.mkv"), []byte("x"), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, w.Wait(ctx))
}

func TestLibraryWatcherIgnoresOutputs(t *testing.T) {
	root := t.TempDir()
	w, err := newLibraryWatcher(root, 20*time.Millisecond, hclog.NewNullLogger())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(root, "done.mp4"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "work.temp.mp4"), []byte("x"), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, w.Wait(ctx), context.DeadlineExceeded)
}

func TestLibraryWatcherNewDirectory(t *testing.T) {
	root := t.TempDir()
	w, err := newLibraryWatcher(root, 50*time.Millisecond, hclog.NewNullLogger())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.Mkdir(filepath.Join(root, "season1"), 0o755))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, w.Wait(ctx))
}

func TestBackendReport(t *testing.T) {
	lines := backendReport(map[string]bool{"libx265": true})
	require.Len(t, lines, len(video.Backends))

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "✓ cpu")
	assert.Contains(t, joined, "hevc_nvenc (not available)")
}

func TestHistoryCmd(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(dbPath)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.StartRun(ctx, video.RunInfo{ID: "run-abcdef123456", Root: "/lib", StartedAt: time.Now(), Backend: video.BackendCPU}))
	require.NoError(t, store.RecordFile(ctx, "run-abcdef123456", video.FileResult{Path: "/lib/a.mkv", Outcome: video.OutcomeFailedProbe, Detail: "bad header", FinishedAt: time.Now()}))
	require.NoError(t, store.FinishRun(ctx, video.RunSummary{RunID: "run-abcdef123456", Scanned: 1, Failed: 1}))
	require.NoError(t, store.Close())

	run := func(c HistoryCmd) string {
		var out bytes.Buffer
		c.HistoryDB = dbPath
		require.NoError(t, c.Run(ctx, &types.AppContext{Out: &out}))
		return out.String()
	}

	assert.Contains(t, run(HistoryCmd{Limit: 5}), "/lib")
	assert.Contains(t, run(HistoryCmd{RunID: "run-abc"}), "bad header")
	assert.Contains(t, run(HistoryCmd{File: "/lib/a.mkv"}), "failed-probe")
	assert.Contains(t, run(HistoryCmd{File: "/lib/other.mkv"}), "no recorded outcome")
}

func TestHistoryCmdNoDatabase(t *testing.T) {
	var out bytes.Buffer
	c := HistoryCmd{HistoryDB: filepath.Join(t.TempDir(), "missing.db")}

	require.NoError(t, c.Run(context.Background(), &types.AppContext{Out: &out}))
	assert.Contains(t, out.String(), "No history recorded yet")
}

func TestUseTUI(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, useTUI(&buf, false))
	assert.False(t, useTUI(os.Stdout, true))
}
