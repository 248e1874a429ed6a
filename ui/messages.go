package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/videonormalizer/video"
)

// EventMsg delivers one pipeline event to the TUI
type EventMsg struct {
	Event video.Event
}

// EventsClosedMsg means the event stream ended
type EventsClosedMsg struct{}

// LogLineMsg carries one formatted log line for the log pane
type LogLineMsg struct {
	Line string
}

// waitForEvent reads the next event. Each EventMsg re-arms it.
func waitForEvent(events <-chan video.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return EventsClosedMsg{}
		}
		return EventMsg{Event: e}
	}
}

// waitForLog reads the next log line. A nil channel disables the log pane.
func waitForLog(lines <-chan string) tea.Cmd {
	if lines == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-lines
		if !ok {
			return nil
		}
		return LogLineMsg{Line: line}
	}
}
