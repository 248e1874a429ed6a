package video

import (
	"context"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-hclog"
	"github.com/shirou/gopsutil/v4/disk"
)

// warnIfLowSpace logs a warning when the directory holding path has less free space
// than needed bytes. The encode still runs; an out-of-space ffmpeg fails on its own.
func warnIfLowSpace(ctx context.Context, logger hclog.Logger, path string, needed int64) {
	if needed <= 0 {
		return
	}
	dir := filepath.Dir(path)
	usage, err := disk.UsageWithContext(ctx, dir)
	if err != nil {
		logger.Debug("free space check unavailable", "dir", dir, "error", err)
		return
	}
	if usage.Free < uint64(needed) {
		logger.Warn("free space may be insufficient for the converted file",
			"dir", dir,
			"free", humanize.IBytes(usage.Free),
			"source_size", humanize.IBytes(uint64(needed)))
	}
}
