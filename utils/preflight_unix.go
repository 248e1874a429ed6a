//go:build unix

package utils

import "golang.org/x/sys/unix"

func checkAccess(path string) error {
	return unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK)
}
