package utils

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ValidateFFmpegDependencies checks that the configured ffmpeg and ffprobe binaries
// can be executed. Empty names fall back to looking them up in PATH.
func ValidateFFmpegDependencies(ffmpeg, ffprobe string) error {
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}

	// Check for ffprobe
	if _, err := exec.LookPath(ffprobe); err != nil {
		return fmt.Errorf("%s not found. %s", ffprobe, getInstallationInstructions())
	}

	// Check for ffmpeg
	if _, err := exec.LookPath(ffmpeg); err != nil {
		return fmt.Errorf("%s not found. %s", ffmpeg, getInstallationInstructions())
	}

	return nil
}

// SupportedEncoders lists the encoder names compiled into ffmpeg
func SupportedEncoders(ctx context.Context, ffmpeg string) (map[string]bool, error) {
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	out, err := exec.CommandContext(ctx, ffmpeg, "-hide_banner", "-encoders").Output()
	if err != nil {
		return nil, fmt.Errorf("list ffmpeg encoders: %w", err)
	}
	return parseEncoderList(out), nil
}

// parseEncoderList reads `ffmpeg -encoders` output. Entries follow a "------" separator
// and look like " V....D libx265   libx265 H.265 / HEVC".
func parseEncoderList(out []byte) map[string]bool {
	encoders := make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	inList := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !inList {
			inList = strings.HasPrefix(line, "------")
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			encoders[fields[1]] = true
		}
	}
	return encoders
}

// getInstallationInstructions returns platform-specific installation instructions
func getInstallationInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return "Install with: brew install ffmpeg"
	case "linux":
		return "Install with: apt-get install ffmpeg (Ubuntu/Debian) or dnf install ffmpeg (Fedora/RHEL)"
	case "windows":
		return "Download from https://ffmpeg.org/download.html and add to PATH"
	default:
		return "Download from https://ffmpeg.org/download.html"
	}
}
