package video

import "strings"

// NoStream marks an absent track in a TrackSelection
const NoStream = -1

// DefaultLanguage is the ISO 639-2 code preferred when none is configured
const DefaultLanguage = "eng"

// textSubtitleCodecs convert cleanly to mov_text
var textSubtitleCodecs = map[string]bool{
	"srt":      true,
	"subrip":   true,
	"ass":      true,
	"ssa":      true,
	"mov_text": true,
}

// TrackSelection holds the absolute indexes of the preferred audio and subtitle tracks
type TrackSelection struct {
	Audio    int
	Subtitle int
}

// HasAudio reports whether a preferred-language audio track was found
func (t TrackSelection) HasAudio() bool { return t.Audio != NoStream }

// HasSubtitle reports whether a preferred-language text subtitle was found
func (t TrackSelection) HasSubtitle() bool { return t.Subtitle != NoStream }

// IsTextSubtitle reports whether codec can be muxed into MP4 as mov_text
func IsTextSubtitle(codec string) bool {
	return textSubtitleCodecs[strings.ToLower(codec)]
}

// SelectTracks picks the first audio and the first text subtitle whose language tag
// matches language (case-insensitive). It only reports matches: falling back to the
// first audio stream is BuildCommand's job.
func SelectTracks(set *MediaDescriptorSet, language string) TrackSelection {
	sel := TrackSelection{Audio: NoStream, Subtitle: NoStream}
	if set == nil {
		return sel
	}
	if language == "" {
		language = DefaultLanguage
	}

	for _, s := range set.Streams {
		if !strings.EqualFold(s.Language, language) {
			continue
		}
		switch s.Kind {
		case KindAudio:
			if !sel.HasAudio() {
				sel.Audio = s.Index
			}
		case KindSubtitle:
			if !sel.HasSubtitle() && IsTextSubtitle(s.Codec) {
				sel.Subtitle = s.Index
			}
		}
	}
	return sel
}
