package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/videonormalizer/video"
)

const logPaneLines = 6

// ConversionModel is the TUI for a library run. It only consumes events; the run itself
// happens elsewhere and is stopped through the cancel function.
type ConversionModel struct {
	// Application state
	root       string
	dryRun     bool
	total      int
	done       int
	current    string
	records    []FileRecord
	logLines   []string
	summary    *video.RunSummary
	version    string
	events     <-chan video.Event
	logs       <-chan string
	cancel     func()
	cancelling bool

	// UI components
	progress progress.Model
	spinner  spinner.Model
	fileList list.Model

	// Layout
	width  int
	height int

	quitting bool
}

// NewConversionModel builds the model. logs may be nil.
func NewConversionModel(version, root string, dryRun bool, events <-chan video.Event, logs <-chan string, cancel func()) ConversionModel {
	fileList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	fileList.Title = "Processed Files"
	fileList.SetShowStatusBar(false)
	fileList.SetFilteringEnabled(false)
	fileList.SetShowHelp(false)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ProcessingStyle

	if cancel == nil {
		cancel = func() {}
	}

	return ConversionModel{
		root:     root,
		dryRun:   dryRun,
		version:  version,
		events:   events,
		logs:     logs,
		cancel:   cancel,
		progress: progress.New(progress.WithDefaultGradient()),
		spinner:  s,
		fileList: fileList,
	}
}

// Init implements tea.Model
func (m ConversionModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events), waitForLog(m.logs))
}

// Update implements tea.Model
func (m ConversionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.summary != nil {
				m.quitting = true
				return m, tea.Quit
			}
			// the run emits RunCompleted once the current encode is killed
			if !m.cancelling {
				m.cancelling = true
				m.cancel()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(msg.Width-20, 10)
		m.fileList.SetSize(msg.Width-4, max(msg.Height-14-logPaneLines, 5))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LogLineMsg:
		m.logLines = append(m.logLines, msg.Line)
		if len(m.logLines) > logPaneLines {
			m.logLines = m.logLines[len(m.logLines)-logPaneLines:]
		}
		return m, waitForLog(m.logs)

	case EventMsg:
		m = m.apply(msg.Event)
		if _, ok := msg.Event.(video.RunCompleted); ok {
			m.quitting = true
			return m, tea.Quit
		}
		return m, waitForEvent(m.events)

	case EventsClosedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// apply folds one pipeline event into the model
func (m ConversionModel) apply(e video.Event) ConversionModel {
	switch e := e.(type) {
	case video.ScanStarted:
		m.root = e.Root
	case video.PendingFiles:
		m.total = len(e.Paths)
	case video.FileStarted:
		m.current = e.Path
		m.total = e.Total
	case video.FileProcessed:
		m.records = append(m.records, recordFrom(e))
		// newest first
		items := make([]list.Item, len(m.records))
		for i, r := range m.records {
			items[len(m.records)-1-i] = r
		}
		m.fileList.SetItems(items)
	case video.Progress:
		m.done = e.Current
		m.total = e.Total
		m.current = ""
	case video.RunCompleted:
		s := e.Summary
		m.summary = &s
		m.current = ""
	}
	return m
}

// View implements tea.Model
func (m ConversionModel) View() string {
	if m.quitting {
		return ""
	}

	title := fmt.Sprintf("videonormalizer %s", m.version)
	if m.dryRun {
		title += " (dry run)"
	}
	header := HeaderStyle.Render(title)

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.done) / float64(m.total)
	}
	overall := fmt.Sprintf("%s %d/%d", m.progress.ViewAs(percent), m.done, m.total)

	var status string
	switch {
	case m.cancelling:
		status = WarningStyle.Render("Stopping after the current file is cancelled...")
	case m.current != "":
		status = fmt.Sprintf("%s %s", m.spinner.View(), ProcessingStyle.Render(filepath.Base(m.current)))
	case m.total == 0 && m.summary == nil:
		status = fmt.Sprintf("%s scanning %s", m.spinner.View(), m.root)
	default:
		status = MutedStyle.Render("idle")
	}

	sections := []string{header, overall, status, m.fileList.View()}

	if len(m.logLines) > 0 {
		sections = append(sections, MutedStyle.Render(strings.Join(m.logLines, "\n")))
	}
	sections = append(sections, MutedStyle.Render("Controls: [q] Stop"))

	return strings.Join(sections, "\n\n")
}

// Records returns the finished files in processing order
func (m ConversionModel) Records() []FileRecord {
	return append([]FileRecord(nil), m.records...)
}
