package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/videonormalizer/video"
)

func runEvents(showBar bool, dryRun bool) (*PlainReporter, string) {
	var out bytes.Buffer
	p := NewPlainReporter(&out, showBar)

	events := make(chan video.Event, 16)
	events <- video.ScanStarted{Root: "/lib"}
	events <- video.PendingFiles{Paths: []string{"/lib/a.mkv", "/lib/b.avi"}}
	events <- video.FileStarted{Path: "/lib/a.mkv", Index: 1, Total: 2}
	events <- video.FileProcessed{Path: "/lib/a.mkv", Outcome: video.OutcomeConverted, Detail: "ffmpeg -i /lib/a.mkv", DryRun: dryRun}
	events <- video.Progress{Current: 1, Total: 2}
	events <- video.FileStarted{Path: "/lib/b.avi", Index: 2, Total: 2}
	events <- video.FileProcessed{Path: "/lib/b.avi", Outcome: video.OutcomeFailedProbe, Detail: "ffprobe failed", DryRun: dryRun}
	events <- video.Progress{Current: 2, Total: 2}
	events <- video.RunCompleted{Summary: video.RunSummary{Scanned: 2, Converted: 1, Failed: 1}}
	close(events)

	p.Consume(events)
	return p, out.String()
}

func TestPlainReporterCollectsRecords(t *testing.T) {
	p, out := runEvents(false, false)

	records := p.Records()
	require.Len(t, records, 2)
	assert.Equal(t, video.OutcomeConverted, records[0].Outcome)
	assert.Equal(t, video.OutcomeFailedProbe, records[1].Outcome)

	assert.NotContains(t, out, "Run stopped early")
	assert.Contains(t, out, "Found 2 candidate files")
	assert.Contains(t, out, "/lib/b.avi [failed-probe] ffprobe failed")
}

func TestPlainReporterDryRunShowsCommand(t *testing.T) {
	_, out := runEvents(false, true)

	assert.Contains(t, out, "→ /lib/a.mkv")
	assert.Contains(t, out, "    ffmpeg -i /lib/a.mkv")
}

func TestPlainReporterWithBar(t *testing.T) {
	p, out := runEvents(true, false)

	assert.Len(t, p.Records(), 2)
	assert.NotEmpty(t, out)
}

func TestPlainReporterStopsAtRunCompleted(t *testing.T) {
	p := NewPlainReporter(&bytes.Buffer{}, false)

	events := make(chan video.Event, 2)
	events <- video.RunCompleted{}
	// never closed; Consume must return on RunCompleted alone
	p.Consume(events)

	assert.Empty(t, p.Records())
}

func TestPlainReporterReportsStoppedRun(t *testing.T) {
	var out bytes.Buffer
	p := NewPlainReporter(&out, false)

	p.Handle(video.RunCompleted{Err: context.Canceled})

	assert.Contains(t, out.String(), "Run stopped early: context canceled")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	got := truncate(strings.Repeat("a", 20)+"tail", 10)
	assert.Equal(t, 10, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "tail"))
}
