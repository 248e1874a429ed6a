package cmd

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/lepinkainen/videonormalizer/types"
	"github.com/lepinkainen/videonormalizer/ui"
	"github.com/lepinkainen/videonormalizer/utils"
	"github.com/lepinkainen/videonormalizer/video"
)

// CheckCmd reports whether the external tools are installed and which backends ffmpeg supports
type CheckCmd struct {
	FFmpeg  string `name:"ffmpeg" help:"ffmpeg binary" default:"ffmpeg"`
	FFprobe string `name:"ffprobe" help:"ffprobe binary" default:"ffprobe"`
}

func (cmd *CheckCmd) Run(ctx context.Context, appCtx *types.AppContext) error {
	out := appCtx.Stdout()

	for _, bin := range []string{cmd.FFprobe, cmd.FFmpeg} {
		if path, err := exec.LookPath(bin); err != nil {
			fmt.Fprintln(out, ui.ErrorStyle.Render(fmt.Sprintf("✗ %s not found", bin)))
		} else {
			fmt.Fprintln(out, ui.SuccessStyle.Render(fmt.Sprintf("✓ %s", path)))
		}
	}
	if err := utils.ValidateFFmpegDependencies(cmd.FFmpeg, cmd.FFprobe); err != nil {
		return err
	}

	encoders, err := utils.SupportedEncoders(ctx, cmd.FFmpeg)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, ui.InfoStyle.Render("Backends:"))
	for _, line := range backendReport(encoders) {
		fmt.Fprintln(out, line)
	}
	return nil
}

// backendReport lists each backend with whether ffmpeg was built with its encoder
func backendReport(encoders map[string]bool) []string {
	lines := make([]string, 0, len(video.Backends))
	for _, b := range video.Backends {
		name := b.EncoderName()
		if encoders[name] {
			lines = append(lines, ui.SuccessStyle.Render(fmt.Sprintf("  ✓ %-7s %s", b, name)))
		} else {
			lines = append(lines, ui.MutedStyle.Render(fmt.Sprintf("  ✗ %-7s %s (not available)", b, name)))
		}
	}
	return lines
}
