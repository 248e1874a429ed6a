package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked means another process holds the lock
var ErrLocked = errors.New("another run is already processing this library")

// RootLock is an advisory lock that keeps two runs off the same library
type RootLock struct {
	path string
	lock *flock.Flock
}

// AcquireRootLock takes the lock at lockPath without waiting.
// Returns ErrLocked when it is held elsewhere.
func AcquireRootLock(lockPath string) (*RootLock, error) {
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	l := flock.New(lockPath)
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file %s)", ErrLocked, lockPath)
	}
	return &RootLock{path: lockPath, lock: l}, nil
}

// Path returns the lock file location
func (r *RootLock) Path() string { return r.path }

// Release drops the lock. The lock file itself is left in place.
func (r *RootLock) Release() error {
	if err := r.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
