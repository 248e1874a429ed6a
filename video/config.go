package video

import (
	"errors"
	"fmt"
	"strings"
)

// AudioCopy is the AudioCodec value that stream-copies the audio track
const AudioCopy = "copy"

// Config holds the per-run conversion settings. It is passed by value and never
// mutated once a run starts.
type Config struct {
	Backend      Backend
	Quality      int
	Profile      Profile
	AudioCodec   string
	AudioQuality string
	SkipExisting bool
	DryRun       bool
	Language     string // ISO 639-2, e.g. "eng"
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Backend:      BackendNVIDIA,
		Quality:      23,
		Profile:      ProfileMain,
		AudioCodec:   "aac",
		AudioQuality: "2",
		Language:     DefaultLanguage,
	}
}

// Validate checks the settings once, before any file is touched
func (c Config) Validate() error {
	var errs []error
	if _, ok := backendSpecs[c.Backend]; !ok {
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if c.Profile != ProfileMain && c.Profile != ProfileMain10 {
		errs = append(errs, fmt.Errorf("unknown profile %q", c.Profile))
	}
	if c.Quality < 0 || c.Quality > 51 {
		errs = append(errs, fmt.Errorf("quality %d out of range 0-51", c.Quality))
	}
	if strings.TrimSpace(c.AudioCodec) == "" {
		errs = append(errs, errors.New("audio codec must not be empty"))
	}
	if c.AudioCodec != AudioCopy && strings.TrimSpace(c.AudioQuality) == "" {
		errs = append(errs, errors.New("audio quality must not be empty when re-encoding audio"))
	}
	if strings.TrimSpace(c.Language) == "" {
		errs = append(errs, errors.New("language must not be empty"))
	}
	return errors.Join(errs...)
}
