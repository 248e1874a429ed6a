package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DefaultMaxSizeMB  = 5
	DefaultMaxBackups = 5
)

// newFileWriter returns a size-rotated log file. Rotated files get a timestamp in their
// name and only the newest maxBackups are kept.
func newFileWriter(path string, maxSizeMB, maxBackups int) (*lumberjack.Logger, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxSizeMB
	}
	if maxBackups <= 0 {
		maxBackups = DefaultMaxBackups
	}
	// lumberjack opens lazily; fail at startup instead of on the first record
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		LocalTime:  true,
	}, nil
}
