package ui

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/videonormalizer/video"
)

// PlainReporter prints one line per finished file with a progress bar underneath.
// It is used when stdout is not a terminal or the TUI is disabled.
type PlainReporter struct {
	out     io.Writer
	showBar bool
	bar     *progressbar.ProgressBar
	records []FileRecord
}

// NewPlainReporter writes to out. showBar should be false when out is a pipe or a file.
func NewPlainReporter(out io.Writer, showBar bool) *PlainReporter {
	return &PlainReporter{out: out, showBar: showBar}
}

// Consume drains events until RunCompleted or the channel closes
func (p *PlainReporter) Consume(events <-chan video.Event) {
	for e := range events {
		p.Handle(e)
		if _, ok := e.(video.RunCompleted); ok {
			return
		}
	}
}

// Handle processes a single event
func (p *PlainReporter) Handle(e video.Event) {
	switch e := e.(type) {
	case video.ScanStarted:
		fmt.Fprintln(p.out, InfoStyle.Render(fmt.Sprintf("Scanning %s", e.Root)))

	case video.PendingFiles:
		fmt.Fprintln(p.out, InfoStyle.Render(fmt.Sprintf("Found %d candidate files", len(e.Paths))))
		if p.showBar && len(e.Paths) > 0 {
			p.bar = progressbar.NewOptions(len(e.Paths),
				progressbar.OptionSetWriter(p.out),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(30),
				progressbar.OptionSetPredictTime(true),
				progressbar.OptionClearOnFinish(),
			)
		}

	case video.FileStarted:
		if p.bar != nil {
			p.bar.Describe(truncate(e.Path, 40))
		}

	case video.FileProcessed:
		r := recordFrom(e)
		p.records = append(p.records, r)
		p.clearBar()
		fmt.Fprintln(p.out, formatRecord(r, e.DryRun))

	case video.Progress:
		if p.bar != nil {
			_ = p.bar.Set(e.Current)
		}

	case video.RunCompleted:
		if p.bar != nil {
			_ = p.bar.Finish()
			p.bar = nil
		}
		if e.Err != nil {
			fmt.Fprintln(p.out, WarningStyle.Render(fmt.Sprintf("Run stopped early: %v", e.Err)))
		}
	}
}

func (p *PlainReporter) clearBar() {
	if p.bar != nil {
		_ = p.bar.Clear()
	}
}

// Records returns the finished files in processing order
func (p *PlainReporter) Records() []FileRecord {
	return append([]FileRecord(nil), p.records...)
}

func formatRecord(r FileRecord, dryRun bool) string {
	if dryRun && r.Outcome == video.OutcomeConverted {
		// detail holds the command that would run
		return ProcessingStyle.Render("→ "+r.Path) + "\n    " + r.Detail
	}
	line := fmt.Sprintf("%s %s [%s]", OutcomeSymbol(r.Outcome), r.Path, r.Outcome)
	if r.Detail != "" {
		line += " " + r.Detail
	}
	return OutcomeStyle(r.Outcome).Render(line)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "…" + string(r[len(r)-n+1:])
}
