package video

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoVideoStream is returned by BuildCommand when the source has nothing to encode
	ErrNoVideoStream = errors.New("no video stream found")

	// ErrEncoderNotFound means the encoder binary could not be located
	ErrEncoderNotFound = errors.New("encoder binary not found")

	// ErrMissingBinary is returned by Library.Run when a run was stopped because
	// ffprobe or ffmpeg disappeared mid-run
	ErrMissingBinary = errors.New("required binary unavailable")
)

// ProbeReason classifies why a probe failed
type ProbeReason string

const (
	ProbeBinaryNotFound  ProbeReason = "binary-not-found"
	ProbeNonzeroExit     ProbeReason = "nonzero-exit"
	ProbeMalformedOutput ProbeReason = "malformed-output"
)

// ProbeError is returned by a Prober when a file cannot be inspected
type ProbeError struct {
	Path   string
	Reason ProbeReason
	Err    error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %q: %s: %v", e.Path, e.Reason, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// CommandBuildError is returned when no encoder command can be synthesized
type CommandBuildError struct {
	Path string
	Err  error
}

func (e *CommandBuildError) Error() string {
	return fmt.Sprintf("build command for %q: %v", e.Path, e.Err)
}

func (e *CommandBuildError) Unwrap() error { return e.Err }

// EncodeError is returned when the encoder exits non-zero
type EncodeError struct {
	ExitCode int
	Tail     []string
}

func (e *EncodeError) Error() string {
	if len(e.Tail) == 0 {
		return fmt.Sprintf("encoder exited with code %d", e.ExitCode)
	}
	return fmt.Sprintf("encoder exited with code %d: %s", e.ExitCode, strings.Join(e.Tail, " | "))
}

// ReplaceError is returned when installing the converted file fails.
// OriginalRetained is set when the new file is in place but the original could not be removed.
type ReplaceError struct {
	Original         string
	Final            string
	OriginalRetained bool
	Err              error
}

func (e *ReplaceError) Error() string {
	if e.OriginalRetained {
		return fmt.Sprintf("installed %q but could not remove original %q: %v", e.Final, e.Original, e.Err)
	}
	return fmt.Sprintf("replace %q with %q: %v", e.Original, e.Final, e.Err)
}

func (e *ReplaceError) Unwrap() error { return e.Err }

// isMissingBinary reports whether err means ffprobe or ffmpeg is not installed
func isMissingBinary(err error) bool {
	if errors.Is(err, ErrEncoderNotFound) {
		return true
	}
	var pe *ProbeError
	return errors.As(err, &pe) && pe.Reason == ProbeBinaryNotFound
}
