package utils

import (
	"fmt"
	"os"
)

// CheckRootWritable verifies that root is a directory the current user can read,
// write and traverse, since conversions create and rename files next to the sources.
func CheckRootWritable(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s does not exist", root)
		}
		return fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}
	if err := checkAccess(root); err != nil {
		return fmt.Errorf("%s: insufficient permissions: %w", root, err)
	}
	return nil
}
