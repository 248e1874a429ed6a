package video

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// ReplaceOriginal installs temp as final and retires original.
//
// When original and final name the same file, temp is swapped in atomically and the
// old content discarded. Otherwise final is installed first and original removed only
// after that succeeded, so at every point at least one complete copy exists.
// On a rename failure temp is removed and original is left untouched.
func ReplaceOriginal(original, temp, final string) error {
	if sameFile(original, final) {
		installed, err := replaceInPlace(temp, final)
		if err != nil {
			if installed {
				return &ReplaceError{Original: original, Final: final, OriginalRetained: true, Err: err}
			}
			_ = os.Remove(temp)
			return &ReplaceError{Original: original, Final: final, Err: err}
		}
		return nil
	}

	if err := os.Rename(temp, final); err != nil {
		_ = os.Remove(temp)
		return &ReplaceError{Original: original, Final: final, Err: err}
	}
	if err := os.Remove(original); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &ReplaceError{Original: original, Final: final, OriginalRetained: true, Err: err}
	}
	return nil
}

// sameFile reports whether a and b refer to the same file, including
// case-only differences on case-insensitive filesystems
func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	fa, err := os.Stat(a)
	if err != nil {
		return false
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(fa, fb)
}
