// Package logging builds the application logger: an hclog intercept logger writing to
// a size-rotated file and optionally the console, with extra sinks for the TUI.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Options configures New
type Options struct {
	Name    string
	Level   string    // trace, debug, info, warn or error
	File    string    // empty disables the file sink
	Console io.Writer // nil when something else owns the terminal
	JSON    bool

	MaxSizeMB  int // rotation threshold, defaults to DefaultMaxSizeMB
	MaxBackups int // rotated files kept, defaults to DefaultMaxBackups
}

// ParseLevel maps a level name onto an hclog level
func ParseLevel(s string) (hclog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return hclog.Info, nil
	}
	level := hclog.LevelFromString(s)
	if level == hclog.NoLevel {
		return hclog.NoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// New returns the root logger and a Closer that flushes and closes the log file
func New(opts Options) (hclog.InterceptLogger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if opts.Name == "" {
		opts.Name = "videonormalizer"
	}

	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		fw, err := newFileWriter(opts.File, opts.MaxSizeMB, opts.MaxBackups)
		if err != nil {
			return nil, nil, err
		}
		writers = append(writers, fw)
		closer = fw
	}
	if opts.Console != nil {
		writers = append(writers, opts.Console)
	}

	var output io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		output = writers[0]
	default:
		output = io.MultiWriter(writers...)
	}

	logger := hclog.NewInterceptLogger(&hclog.LoggerOptions{
		Name:       opts.Name,
		Level:      level,
		Output:     output,
		JSONFormat: opts.JSON,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
