package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Prober inspects a media file without decoding it
type Prober interface {
	Probe(ctx context.Context, path string) (*MediaDescriptorSet, error)
}

// FFprobe runs the ffprobe binary and parses its JSON output
type FFprobe struct {
	Binary string // defaults to "ffprobe"
	Logger hclog.Logger
}

// NewFFprobe returns a Prober backed by the given ffprobe binary
func NewFFprobe(binary string, logger hclog.Logger) *FFprobe {
	if binary == "" {
		binary = "ffprobe"
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &FFprobe{Binary: binary, Logger: logger}
}

// Probe runs a single ffprobe call covering format and all streams
func (p *FFprobe) Probe(ctx context.Context, path string) (*MediaDescriptorSet, error) {
	args := []string{"-v", "quiet", "-print_format", "json", "-show_format", "-show_streams", path}
	p.Logger.Debug("running ffprobe", "binary", p.Binary, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, p.Binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, &ProbeError{Path: path, Reason: ProbeBinaryNotFound, Err: err}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail := strings.TrimSpace(stderr.String())
			if detail != "" {
				err = fmt.Errorf("%w: %s", err, detail)
			}
			return nil, &ProbeError{Path: path, Reason: ProbeNonzeroExit, Err: err}
		}
		// Anything else means the process never ran, e.g. a non-executable path
		return nil, &ProbeError{Path: path, Reason: ProbeBinaryNotFound, Err: err}
	}

	set, err := ParseProbeJSON(out)
	if err != nil {
		return nil, &ProbeError{Path: path, Reason: ProbeMalformedOutput, Err: err}
	}
	set.Path = path
	return set, nil
}

// ParseProbeJSON converts raw ffprobe JSON into a MediaDescriptorSet.
// Exported so callers can test without an ffprobe binary.
func ParseProbeJSON(data []byte) (*MediaDescriptorSet, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	if raw.Streams == nil {
		return nil, errors.New("parse ffprobe JSON: missing streams section")
	}

	set := &MediaDescriptorSet{
		Format: FormatInfo{
			Name:     raw.Format.FormatName,
			Duration: parseFloat(raw.Format.Duration),
			Size:     parseInt64(raw.Format.Size),
		},
		Streams: make([]StreamDescriptor, 0, len(raw.Streams)),
	}
	for _, s := range raw.Streams {
		if s.Index == nil {
			return nil, errors.New("parse ffprobe JSON: stream without index")
		}
		set.Streams = append(set.Streams, StreamDescriptor{
			Index:    *s.Index,
			Kind:     parseStreamKind(s.CodecType),
			Codec:    s.CodecName,
			Language: strings.TrimSpace(s.Tags["language"]),
		})
	}
	return set, nil
}

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
}

type ffprobeStream struct {
	Index     *int              `json:"index"`
	CodecName string            `json:"codec_name"`
	CodecType string            `json:"codec_type"`
	Tags      map[string]string `json:"tags"`
}

// ffprobe reports numbers as strings
func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

// GetFileSize returns the size of a file in bytes
func GetFileSize(filePath string) (int64, error) {
	fi, err := os.Stat(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to get file size: %w", err)
	}
	return fi.Size(), nil
}
