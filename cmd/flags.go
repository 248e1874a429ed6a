package cmd

import (
	"fmt"

	"github.com/lepinkainen/videonormalizer/config"
	"github.com/lepinkainen/videonormalizer/video"
)

// ConversionFlags are shared by convert and watch. Every flag can also be set in the
// config file under the same name.
type ConversionFlags struct {
	Backend      string `help:"H.265 encoder backend" enum:"cpu,nvidia,intel,amd" default:"nvidia"`
	Quality      int    `help:"Constant quality (0-51, lower=better)" default:"23"`
	Profile      string `help:"HEVC profile" enum:"main,main10" default:"main"`
	AudioCodec   string `help:"Audio codec, or 'copy' to keep the source audio" default:"aac"`
	AudioQuality string `help:"Audio quality passed to -q:a" default:"2"`
	SkipExisting bool   `help:"Skip files whose .mp4 output already exists"`
	DryRun       bool   `help:"Log the commands that would run without touching any file"`
	Language     string `help:"Preferred audio/subtitle language (ISO 639)" default:"eng"`

	FFmpeg  string `name:"ffmpeg" help:"ffmpeg binary" default:"ffmpeg"`
	FFprobe string `name:"ffprobe" help:"ffprobe binary" default:"ffprobe"`

	NoTUI     bool   `name:"no-tui" help:"Print plain progress lines instead of the interactive view"`
	NoHistory bool   `help:"Do not record the run in the history database"`
	HistoryDB string `name:"history-db" help:"History database location" type:"path"`
}

// VideoConfig converts the flags into a validated conversion config
func (f *ConversionFlags) VideoConfig() (video.Config, error) {
	backend, err := video.ParseBackend(f.Backend)
	if err != nil {
		return video.Config{}, err
	}
	profile, err := video.ParseProfile(f.Profile)
	if err != nil {
		return video.Config{}, err
	}
	language, err := config.NormalizeLanguage(f.Language)
	if err != nil {
		return video.Config{}, err
	}

	cfg := video.Config{
		Backend:      backend,
		Quality:      f.Quality,
		Profile:      profile,
		AudioCodec:   f.AudioCodec,
		AudioQuality: f.AudioQuality,
		SkipExisting: f.SkipExisting,
		DryRun:       f.DryRun,
		Language:     language,
	}
	if err := cfg.Validate(); err != nil {
		return video.Config{}, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

func (f *ConversionFlags) historyPath() string {
	if f.HistoryDB != "" {
		return f.HistoryDB
	}
	return config.DefaultHistoryPath()
}
