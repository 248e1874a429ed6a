package cmd

import (
	"context"
	"fmt"

	"github.com/lepinkainen/videonormalizer/types"
	"github.com/lepinkainen/videonormalizer/ui"
	"github.com/lepinkainen/videonormalizer/video"
)

// VerifyCmd checks that files contain an H.265 video stream, the same gate a conversion
// passes before the original is replaced
type VerifyCmd struct {
	Files   []string `arg:"" name:"files" help:"Video files to verify" type:"existingfile"`
	FFprobe string   `name:"ffprobe" help:"ffprobe binary" default:"ffprobe"`
}

// Run probes every file and fails when any of them is not H.265
func (cmd *VerifyCmd) Run(ctx context.Context, appCtx *types.AppContext) error {
	out := appCtx.Stdout()
	prober := video.NewFFprobe(cmd.FFprobe, appCtx.Log().Named("ffprobe"))

	fmt.Fprintf(out, "%s\n", ui.InfoStyle.Render(fmt.Sprintf("Verifying %d files...", len(cmd.Files))))

	var verified, failed int

	for _, videoFile := range cmd.Files {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !video.IsVideoFile(videoFile) {
			fmt.Fprintf(out, "⚠️  %s is not a video file, skipping\n", videoFile)
			continue
		}

		if video.VerifyOutput(ctx, prober, videoFile) {
			fmt.Fprintf(out, "%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ %s", videoFile)))
			verified++
		} else {
			fmt.Fprintf(out, "%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %s (no %s video stream)", videoFile, video.TargetCodec)))
			failed++
		}
	}

	fmt.Fprintf(out, "\n%s\n", ui.InfoStyle.Render(fmt.Sprintf("✅ Verified: %d, ❌ Failed: %d", verified, failed)))
	if failed > 0 {
		return fmt.Errorf("%d files failed verification", failed)
	}
	return nil
}
