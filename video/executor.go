package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// TailLines is how many trailing stderr lines are kept for diagnostics
const TailLines = 10

// Encoder runs a synthesized encoder command to completion
type Encoder interface {
	Encode(ctx context.Context, spec *CommandSpec) (ExecResult, error)
}

// ExecResult holds the outcome of a single encoder invocation
type ExecResult struct {
	ExitCode int
	Stderr   string
	Tail     []string
}

// FFmpeg executes CommandSpecs with the ffmpeg binary
type FFmpeg struct {
	Binary string // overrides CommandSpec.Binary when set
	Logger hclog.Logger
}

// NewFFmpeg returns an Encoder backed by binary
func NewFFmpeg(binary string, logger hclog.Logger) *FFmpeg {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &FFmpeg{Binary: binary, Logger: logger}
}

// Encode runs spec and waits for it. A stale output from an earlier crash is removed
// first. If ctx is cancelled the process is killed and the partial output deleted.
func (f *FFmpeg) Encode(ctx context.Context, spec *CommandSpec) (ExecResult, error) {
	binary := f.Binary
	if binary == "" {
		binary = spec.Binary
	}
	if binary == "" {
		binary = DefaultFFmpegBinary
	}

	if spec.Output != "" {
		if err := os.Remove(spec.Output); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return ExecResult{ExitCode: -1}, fmt.Errorf("remove stale output %q: %w", spec.Output, err)
		}
	}

	f.Logger.Debug("running encoder", "command", spec.String())

	cmd := exec.CommandContext(ctx, binary, spec.Args...)
	cmd.Stdin = nil
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	result := ExecResult{
		Stderr: stderr.String(),
		Tail:   tailLines(stderr.String(), TailLines),
	}
	if result.Stderr != "" {
		f.Logger.Debug("encoder stderr", "output", result.Stderr)
	}

	if runErr == nil {
		return result, nil
	}

	result.ExitCode = -1
	if errors.Is(runErr, exec.ErrNotFound) || isNotExistStart(runErr) {
		return result, fmt.Errorf("%w: %s", ErrEncoderNotFound, binary)
	}

	if ctx.Err() != nil {
		f.removeOutput(spec.Output)
		return result, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, &EncodeError{ExitCode: result.ExitCode, Tail: result.Tail}
	}
	return result, fmt.Errorf("run encoder: %w", runErr)
}

func (f *FFmpeg) removeOutput(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		f.Logger.Warn("could not remove partial output", "path", path, "error", err)
	}
}

// isNotExistStart matches the error exec returns for an explicit binary path that does not exist
func isNotExistStart(err error) bool {
	var pathErr *fs.PathError
	return errors.As(err, &pathErr) && errors.Is(pathErr.Err, fs.ErrNotExist)
}

// tailLines returns the last n non-empty lines of s
func tailLines(s string, n int) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
