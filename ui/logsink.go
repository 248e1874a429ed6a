package ui

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/lepinkainen/videonormalizer/utils"
)

// LogSink forwards log lines at or above a level into a mailbox so the TUI can show
// them without hclog ever blocking on the UI.
type LogSink struct {
	level hclog.Level
	box   *utils.Mailbox[string]
}

// NewLogSink returns a sink accepting level and above
func NewLogSink(level hclog.Level) *LogSink {
	return &LogSink{level: level, box: utils.NewMailbox[string]()}
}

// Accept implements hclog.SinkAdapter
func (s *LogSink) Accept(name string, level hclog.Level, msg string, args ...interface{}) {
	if level < s.level {
		return
	}
	s.box.Put(formatLogLine(name, level, msg, args))
}

// Lines delivers formatted lines in order
func (s *LogSink) Lines() <-chan string {
	return s.box.C()
}

// Close ends the stream once queued lines are delivered
func (s *LogSink) Close() {
	s.box.Close()
}

func formatLogLine(name string, level hclog.Level, msg string, args []interface{}) string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(level.String()))
	if name != "" {
		b.WriteString(" ")
		b.WriteString(name)
		b.WriteString(":")
	}
	b.WriteString(" ")
	b.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	return b.String()
}
