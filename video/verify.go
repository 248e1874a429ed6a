package video

import "context"

// TargetCodec is the codec name ffprobe reports for H.265 streams
const TargetCodec = "hevc"

// VerifyOutput re-probes path and reports whether it carries an H.265 video stream.
// Any probe failure counts as a failed verification.
func VerifyOutput(ctx context.Context, prober Prober, path string) bool {
	if prober == nil {
		return false
	}
	set, err := prober.Probe(ctx, path)
	if err != nil {
		return false
	}
	return set.HasVideoCodec(TargetCodec)
}
