package video

import (
	"fmt"

	"github.com/kballard/go-shellquote"
)

// DefaultFFmpegBinary is used when CommandSpec.Binary is empty
const DefaultFFmpegBinary = "ffmpeg"

// CommandSpec is a fully resolved encoder invocation
type CommandSpec struct {
	Binary string
	Args   []string
	Input  string
	Output string
}

// String renders the command as a copy-pasteable shell line
func (c *CommandSpec) String() string {
	binary := c.Binary
	if binary == "" {
		binary = DefaultFFmpegBinary
	}
	return shellquote.Join(append([]string{binary}, c.Args...)...)
}

// BuildCommand synthesizes the ffmpeg arguments that convert input into an H.265 MP4
// at tempOutput. It performs no I/O.
func BuildCommand(input, tempOutput string, set *MediaDescriptorSet, sel TrackSelection, cfg Config) (*CommandSpec, error) {
	videoStream, ok := set.FirstOfKind(KindVideo)
	if !ok {
		return nil, &CommandBuildError{Path: input, Err: ErrNoVideoStream}
	}
	if _, ok := backendSpecs[cfg.Backend]; !ok {
		return nil, &CommandBuildError{Path: input, Err: fmt.Errorf("unknown backend %q", cfg.Backend)}
	}

	args := []string{"-hide_banner", "-nostdin", "-y", "-i", input}

	args = append(args, "-map", mapArg(videoStream.Index))
	args = append(args, cfg.Backend.videoArgs(cfg.Quality, cfg.Profile)...)
	args = append(args, "-tag:v", "hvc1")

	audioIndex := NoStream
	if sel.HasAudio() {
		audioIndex = sel.Audio
	} else if first, ok := set.FirstOfKind(KindAudio); ok {
		audioIndex = first.Index
	}
	if audioIndex != NoStream {
		args = append(args, "-map", mapArg(audioIndex))
		if cfg.AudioCodec == AudioCopy {
			args = append(args, "-c:a:0", AudioCopy)
		} else {
			args = append(args, "-c:a:0", cfg.AudioCodec, "-q:a:0", cfg.AudioQuality)
		}
		args = append(args, "-disposition:a:0", "default")
	}

	if sel.HasSubtitle() {
		args = append(args,
			"-map", mapArg(sel.Subtitle),
			"-c:s:0", "mov_text",
			"-disposition:s:0", "default",
		)
	}

	args = append(args, "-map_chapters", "0", "-movflags", "+faststart", tempOutput)

	return &CommandSpec{
		Binary: DefaultFFmpegBinary,
		Args:   args,
		Input:  input,
		Output: tempOutput,
	}, nil
}

func mapArg(index int) string {
	return fmt.Sprintf("0:%d", index)
}
