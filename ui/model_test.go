package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/videonormalizer/video"
)

func feed(m ConversionModel, events ...video.Event) (ConversionModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, e := range events {
		var next tea.Model
		next, cmd = m.Update(EventMsg{Event: e})
		m = next.(ConversionModel)
	}
	return m, cmd
}

func TestConversionModelTracksProgress(t *testing.T) {
	events := make(chan video.Event)
	model := NewConversionModel("test", "/lib", false, events, nil, nil)

	model, cmd := feed(model,
		video.ScanStarted{Root: "/lib"},
		video.PendingFiles{Paths: []string{"/lib/a.mkv", "/lib/b.avi"}},
		video.FileStarted{Path: "/lib/a.mkv", Index: 1, Total: 2},
	)
	if cmd == nil {
		t.Fatal("Expected a command waiting for the next event")
	}
	if model.total != 2 {
		t.Errorf("Expected total 2, got %d", model.total)
	}
	if model.current != "/lib/a.mkv" {
		t.Errorf("Expected current file /lib/a.mkv, got %q", model.current)
	}

	model, _ = feed(model,
		video.FileProcessed{Path: "/lib/a.mkv", Outcome: video.OutcomeConverted, Detail: "/lib/a.mp4"},
		video.Progress{Current: 1, Total: 2},
	)
	if model.done != 1 {
		t.Errorf("Expected 1 done, got %d", model.done)
	}
	if model.current != "" {
		t.Errorf("Expected no current file after progress, got %q", model.current)
	}

	records := model.Records()
	if len(records) != 1 || records[0].Outcome != video.OutcomeConverted {
		t.Fatalf("Unexpected records: %+v", records)
	}

	view := model.View()
	if !strings.Contains(view, "1/2") {
		t.Errorf("Expected view to show 1/2, got:\n%s", view)
	}
}

func TestConversionModelQuitsOnRunCompleted(t *testing.T) {
	model := NewConversionModel("test", "/lib", false, make(chan video.Event), nil, nil)

	runErr := errors.New("boom")
	summary := video.RunSummary{Scanned: 3, Converted: 1, Skipped: 1, Failed: 1}
	model, cmd := feed(model, video.RunCompleted{Summary: summary, Err: runErr})

	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg after RunCompleted")
	}

	if model.summary == nil {
		t.Fatal("Expected summary to be available")
	}
	if model.summary.Scanned != 3 || model.summary.Failed != 1 {
		t.Errorf("Unexpected summary: %+v", *model.summary)
	}
}

func TestConversionModelQuitCancelsRun(t *testing.T) {
	cancelled := 0
	model := NewConversionModel("test", "/lib", false, make(chan video.Event), nil, func() { cancelled++ })

	next, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	model = next.(ConversionModel)
	if cmd != nil {
		t.Error("Expected the model to keep running until RunCompleted")
	}
	if cancelled != 1 {
		t.Errorf("Expected cancel to be called once, got %d", cancelled)
	}
	if !strings.Contains(model.View(), "Stopping") {
		t.Error("Expected stopping notice in view")
	}

	// a second press does not cancel again
	next, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	model = next.(ConversionModel)
	if cancelled != 1 {
		t.Errorf("Expected cancel to stay at 1, got %d", cancelled)
	}
}

func TestConversionModelLogPane(t *testing.T) {
	model := NewConversionModel("test", "/lib", true, make(chan video.Event), make(chan string), nil)

	for i := 0; i < logPaneLines+3; i++ {
		next, _ := model.Update(LogLineMsg{Line: "line"})
		model = next.(ConversionModel)
	}
	if len(model.logLines) != logPaneLines {
		t.Errorf("Expected %d log lines, got %d", logPaneLines, len(model.logLines))
	}
	if !strings.Contains(model.View(), "dry run") {
		t.Error("Expected dry run marker in header")
	}
}

func TestConversionModelEventsClosed(t *testing.T) {
	model := NewConversionModel("test", "/lib", false, make(chan video.Event), nil, nil)

	next, cmd := model.Update(EventsClosedMsg{})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if next.(ConversionModel).View() != "" {
		t.Error("Expected empty view after quitting")
	}
}

func TestWaitForEventClosedChannel(t *testing.T) {
	events := make(chan video.Event)
	close(events)

	if _, ok := waitForEvent(events)().(EventsClosedMsg); !ok {
		t.Error("Expected EventsClosedMsg from a closed channel")
	}
	if waitForLog(nil) != nil {
		t.Error("Expected no command for a nil log channel")
	}
}

func TestFileRecordItem(t *testing.T) {
	r := FileRecord{Path: "/lib/show/a.mkv", Outcome: video.OutcomeFailedEncode, Detail: "exit status 1"}

	if r.FilterValue() != "/lib/show/a.mkv" {
		t.Errorf("Unexpected filter value %q", r.FilterValue())
	}
	if !strings.Contains(r.Title(), "a.mkv") {
		t.Errorf("Expected base name in title, got %q", r.Title())
	}
	if r.Description() != "failed-encode: exit status 1" {
		t.Errorf("Unexpected description %q", r.Description())
	}
}
