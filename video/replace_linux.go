//go:build linux

package video

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// replaceInPlace swaps temp and final with RENAME_EXCHANGE, then deletes the old
// content now living at temp. Filesystems without exchange support fall back to rename.
// installed reports whether final holds the new content.
func replaceInPlace(temp, final string) (installed bool, err error) {
	err = unix.Renameat2(unix.AT_FDCWD, temp, unix.AT_FDCWD, final, unix.RENAME_EXCHANGE)
	if err == nil {
		if rmErr := os.Remove(temp); rmErr != nil {
			return true, fmt.Errorf("remove retired original at %q: %w", temp, rmErr)
		}
		return true, nil
	}
	if errors.Is(err, unix.EINVAL) || errors.Is(err, unix.ENOSYS) || errors.Is(err, unix.ENOENT) {
		if err := os.Rename(temp, final); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, fmt.Errorf("exchange %q and %q: %w", temp, final, err)
}
