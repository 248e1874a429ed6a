package cmd

import (
	"context"
	"fmt"

	"github.com/lepinkainen/videonormalizer/types"
	"github.com/lepinkainen/videonormalizer/ui"
)

// ConvertCmd converts every video under a library root to H.265 MP4, one file at a time
type ConvertCmd struct {
	Root string `arg:"" name:"root" help:"Library directory to convert" type:"existingdir" default:"."`

	ConversionFlags `embed:""`
}

func (cmd *ConvertCmd) Run(ctx context.Context, appCtx *types.AppContext) error {
	out := appCtx.Stdout()

	s, err := openSession(appCtx, &cmd.ConversionFlags, cmd.Root)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprintln(out, ui.HeaderStyle.Render(fmt.Sprintf("Video Normalizer %s", s.version)))
	if s.cfg.DryRun {
		fmt.Fprintln(out, ui.ProcessingStyle.Render("DRY RUN MODE - No files will be modified"))
	}
	fmt.Fprintf(out, "Settings: backend=%s quality=%d profile=%s audio=%s language=%s\n",
		s.cfg.Backend, s.cfg.Quality, s.cfg.Profile, s.cfg.AudioCodec, s.cfg.Language)

	_, err = s.run(ctx)
	return err
}
