package video

import (
	"fmt"
	"strconv"
	"strings"
)

// Backend selects the H.265 encoder implementation
type Backend string

const (
	BackendCPU    Backend = "cpu"
	BackendNVIDIA Backend = "nvidia"
	BackendIntel  Backend = "intel"
	BackendAMD    Backend = "amd"
)

// Profile is the HEVC profile requested from the encoder
type Profile string

const (
	ProfileMain   Profile = "main"
	ProfileMain10 Profile = "main10"
)

// Backends lists every supported backend in display order
var Backends = []Backend{BackendNVIDIA, BackendIntel, BackendAMD, BackendCPU}

// backendSpec describes how one encoder spells its flags
type backendSpec struct {
	Encoder      string
	Tuning       []string
	QualityFlags []string // each gets the quality value
	Extra        []string // emitted after the quality flags
	ProfileFlag  string
	TenBitPixFmt string
}

var backendSpecs = map[Backend]backendSpec{
	BackendCPU: {
		Encoder:      "libx265",
		Tuning:       []string{"-preset", "medium"},
		QualityFlags: []string{"-crf"},
		ProfileFlag:  "-profile:v",
		TenBitPixFmt: "yuv420p10le",
	},
	BackendNVIDIA: {
		Encoder:      "hevc_nvenc",
		Tuning:       []string{"-preset", "p5"},
		QualityFlags: []string{"-cq"},
		ProfileFlag:  "-profile:v",
		TenBitPixFmt: "p010le",
	},
	BackendIntel: {
		Encoder:      "hevc_qsv",
		Tuning:       []string{"-preset:v", "medium"},
		QualityFlags: []string{"-global_quality"},
		ProfileFlag:  "-profile:v",
		TenBitPixFmt: "p010le",
	},
	BackendAMD: {
		Encoder:      "hevc_amf",
		Tuning:       []string{"-rc", "cqp"},
		QualityFlags: []string{"-qp_i", "-qp_p", "-qp_b"},
		Extra:        []string{"-usage", "transcoding"},
		ProfileFlag:  "-profile",
		TenBitPixFmt: "p010le",
	},
}

// ParseBackend accepts a backend name case-insensitively
func ParseBackend(s string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := backendSpecs[b]; !ok {
		return "", fmt.Errorf("unknown backend %q (want cpu, nvidia, intel or amd)", s)
	}
	return b, nil
}

// ParseProfile accepts a profile name case-insensitively
func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case ProfileMain, ProfileMain10:
		return p, nil
	}
	return "", fmt.Errorf("unknown profile %q (want main or main10)", s)
}

// EncoderName returns the ffmpeg encoder used by the backend
func (b Backend) EncoderName() string {
	return backendSpecs[b].Encoder
}

// videoArgs renders the codec section for this backend
func (b Backend) videoArgs(quality int, profile Profile) []string {
	spec := backendSpecs[b]
	q := strconv.Itoa(quality)

	args := []string{"-c:v", spec.Encoder}
	args = append(args, spec.Tuning...)
	for _, flag := range spec.QualityFlags {
		args = append(args, flag, q)
	}
	args = append(args, spec.Extra...)
	args = append(args, spec.ProfileFlag, string(profile))
	if profile == ProfileMain10 {
		args = append(args, "-pix_fmt", spec.TenBitPixFmt)
	}
	return args
}
