package video

import (
	"context"
	"fmt"
	"os"
)

// fileResult is what the per-file pipeline reports back to Run
type fileResult struct {
	Outcome     Outcome
	Detail      string
	Err         error
	InputBytes  int64
	OutputBytes int64
}

func failed(outcome Outcome, err error) fileResult {
	return fileResult{Outcome: outcome, Detail: err.Error(), Err: err}
}

// convertFile runs one candidate through probe, select, build, encode, verify and replace.
// The first failing stage decides the outcome.
func (l *Library) convertFile(ctx context.Context, path string) fileResult {
	final := FinalPath(path)
	temp := TempPath(path)
	logger := l.logger.With("path", path)

	// name.temp.mkv would end up as name.temp.mp4, which a later encode of name.mkv
	// treats as its own stale temp file and deletes
	if IsWorkFile(final) {
		logger.Warn("refusing to convert, output would look like a temp file", "output", final)
		return fileResult{Outcome: OutcomeFailedCommandBuild, Detail: "output name collides with temp file pattern: " + final}
	}

	if l.cfg.SkipExisting && fileExists(final) {
		if sameFile(path, final) {
			return fileResult{Outcome: OutcomeSkippedAlreadyMP4, Detail: "already converted"}
		}
		return fileResult{Outcome: OutcomeSkippedOutputExists, Detail: "output exists: " + final}
	}

	inputSize, _ := GetFileSize(path)

	set, err := l.prober.Probe(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Warn("probe interrupted", "stage", "probe")
			return fileResult{Outcome: OutcomeError, Detail: "interrupted", Err: ctxErr}
		}
		logger.Error("probe failed", "stage", "probe", "error", err)
		return failed(OutcomeFailedProbe, err)
	}

	sel := SelectTracks(set, l.cfg.Language)
	logger.Debug("selected tracks", "audio", describeStream(set, sel.Audio), "subtitle", describeStream(set, sel.Subtitle))

	spec, err := BuildCommand(path, temp, set, sel, l.cfg)
	if err != nil {
		logger.Error("cannot build encoder command", "stage", "build", "error", err)
		return failed(OutcomeFailedCommandBuild, err)
	}
	if l.ffmpegBinary != "" {
		spec.Binary = l.ffmpegBinary
	}

	if l.cfg.DryRun {
		logger.Info("dry run", "command", spec.String())
		return fileResult{Outcome: OutcomeConverted, Detail: spec.String(), InputBytes: inputSize}
	}

	if l.checkSpace {
		warnIfLowSpace(ctx, logger, path, inputSize)
	}

	logger.Info("encoding", "backend", l.cfg.Backend, "output", temp)
	res, err := l.encoder.Encode(ctx, spec)
	if err != nil {
		removeQuietly(temp)
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Warn("encode interrupted", "stage", "encode")
			return fileResult{Outcome: OutcomeError, Detail: "interrupted", Err: ctxErr}
		}
		logger.Error("encode failed", "stage", "encode", "exit_code", res.ExitCode, "error", err)
		for _, line := range res.Tail {
			logger.Error("encoder: " + line)
		}
		return failed(OutcomeFailedEncode, err)
	}

	if !VerifyOutput(ctx, l.prober, temp) {
		removeQuietly(temp)
		logger.Error("output failed verification", "stage", "verify", "output", temp)
		return fileResult{Outcome: OutcomeFailedVerify, Detail: "output has no " + TargetCodec + " video stream"}
	}
	outputSize, _ := GetFileSize(temp)

	if fileExists(final) && !sameFile(path, final) {
		logger.Warn("overwriting existing output with a new conversion", "output", final)
	}

	if err := ReplaceOriginal(path, temp, final); err != nil {
		logger.Error("replace failed", "stage", "replace", "error", err)
		return fileResult{Outcome: OutcomeFailedReplace, Detail: err.Error(), Err: err,
			InputBytes: inputSize, OutputBytes: outputSize}
	}

	logger.Info("converted", "output", final)
	return fileResult{Outcome: OutcomeConverted, Detail: final, InputBytes: inputSize, OutputBytes: outputSize}
}

// describeStream renders a selected stream for logging
func describeStream(set *MediaDescriptorSet, index int) string {
	s, ok := set.Stream(index)
	if !ok {
		return "none"
	}
	if s.Language == "" {
		return fmt.Sprintf("%d:%s", s.Index, s.Codec)
	}
	return fmt.Sprintf("%d:%s (%s)", s.Index, s.Codec, s.Language)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// removeQuietly deletes a temp artifact; a missing file is fine
func removeQuietly(path string) {
	_ = os.Remove(path)
}
