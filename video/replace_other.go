//go:build !linux

package video

import "os"

// replaceInPlace overwrites final with temp. os.Rename replaces the target atomically
// on POSIX systems and uses MoveFileEx with MOVEFILE_REPLACE_EXISTING on Windows.
func replaceInPlace(temp, final string) (installed bool, err error) {
	if err := os.Rename(temp, final); err != nil {
		return false, err
	}
	return true, nil
}
