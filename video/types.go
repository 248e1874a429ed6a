package video

import "strings"

// StreamKind is the codec_type reported by ffprobe, narrowed to the kinds the pipeline cares about
type StreamKind string

const (
	KindVideo    StreamKind = "video"
	KindAudio    StreamKind = "audio"
	KindSubtitle StreamKind = "subtitle"
	KindOther    StreamKind = "other"
)

// parseStreamKind maps an ffprobe codec_type onto a StreamKind
func parseStreamKind(codecType string) StreamKind {
	switch strings.ToLower(strings.TrimSpace(codecType)) {
	case "video":
		return KindVideo
	case "audio":
		return KindAudio
	case "subtitle":
		return KindSubtitle
	default:
		return KindOther
	}
}

// StreamDescriptor describes one elementary stream of a probed file
type StreamDescriptor struct {
	Index    int // absolute index within the file, as used by -map 0:<index>
	Kind     StreamKind
	Codec    string
	Language string // may be empty
}

// FormatInfo holds the container-level fields of a probe
type FormatInfo struct {
	Name     string
	Duration float64 // seconds
	Size     int64
}

// MediaDescriptorSet is the ordered stream list for one probed file.
// A failed probe is reported as an error, never as a partial set.
type MediaDescriptorSet struct {
	Path    string
	Format  FormatInfo
	Streams []StreamDescriptor
}

// FirstOfKind returns the first stream of the given kind in probe order
func (m *MediaDescriptorSet) FirstOfKind(kind StreamKind) (StreamDescriptor, bool) {
	if m == nil {
		return StreamDescriptor{}, false
	}
	for _, s := range m.Streams {
		if s.Kind == kind {
			return s, true
		}
	}
	return StreamDescriptor{}, false
}

// Stream looks up a stream by absolute index
func (m *MediaDescriptorSet) Stream(index int) (StreamDescriptor, bool) {
	if m == nil {
		return StreamDescriptor{}, false
	}
	for _, s := range m.Streams {
		if s.Index == index {
			return s, true
		}
	}
	return StreamDescriptor{}, false
}

// HasVideoCodec reports whether any video stream uses codec (case-insensitive)
func (m *MediaDescriptorSet) HasVideoCodec(codec string) bool {
	if m == nil {
		return false
	}
	for _, s := range m.Streams {
		if s.Kind == KindVideo && strings.EqualFold(s.Codec, codec) {
			return true
		}
	}
	return false
}
