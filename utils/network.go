package utils

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
)

// networkFilesystems are mount types where rename atomicity is not guaranteed
var networkFilesystems = map[string]bool{
	"nfs": true, "nfs4": true, "cifs": true, "smb": true, "smb2": true, "smb3": true, "smbfs": true,
	"afpfs": true, "webdav": true, "davfs": true, "fuse.sshfs": true, "sshfs": true, "9p": true,
}

// Common network mount prefixes on different platforms
var networkPrefixes = []string{
	"/mnt/",     // Linux NFS/SMB mounts
	"/media/",   // Linux removable/network media
	"/Volumes/", // macOS network volumes
}

// IsNetworkDrive detects if a file path is on a network-mounted drive. The mount table
// is consulted first; path heuristics are used when it cannot be read.
func IsNetworkDrive(filePath string) bool {
	// Check Windows UNC paths first, before converting to absolute path
	if strings.HasPrefix(filePath, "//") || strings.HasPrefix(filePath, `\\`) {
		return true
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return false
	}

	if fstype, ok := mountFilesystem(context.Background(), absPath); ok && networkFilesystems[fstype] {
		return true
	}

	return looksLikeNetworkPath(absPath)
}

// mountFilesystem returns the filesystem type of the longest mount point containing path
func mountFilesystem(ctx context.Context, path string) (string, bool) {
	partitions, err := disk.PartitionsWithContext(ctx, true)
	if err != nil || len(partitions) == 0 {
		return "", false
	}

	best, fstype := -1, ""
	for _, p := range partitions {
		mp := p.Mountpoint
		if mp == "" || !isWithin(path, mp) {
			continue
		}
		if len(mp) > best {
			best, fstype = len(mp), strings.ToLower(p.Fstype)
		}
	}
	return fstype, best >= 0
}

func isWithin(path, mountpoint string) bool {
	if mountpoint == "/" || path == mountpoint {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(mountpoint, string(filepath.Separator))+string(filepath.Separator))
}

func looksLikeNetworkPath(absPath string) bool {
	for _, prefix := range networkPrefixes {
		if strings.HasPrefix(absPath, prefix) {
			return true
		}
	}

	// Check for network filesystem indicators in the path
	lowerPath := strings.ToLower(absPath)
	for _, indicator := range []string{"nfs", "cifs", "smb", "webdav", "ftp", "sftp"} {
		if strings.Contains(lowerPath, indicator) {
			return true
		}
	}
	return false
}
