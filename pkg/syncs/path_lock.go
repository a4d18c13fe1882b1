package syncs

import (
	"fmt"
	"path/filepath"
)

// PathLock is a [KeyLock] keyed by cleaned absolute file paths, so that
// `out.ts`, `./out.ts` and `/abs/dir/out.ts` share one lock.
type PathLock struct {
	keys KeyLock
}

// NewPathLock creates a new [PathLock].
func NewPathLock() *PathLock {
	return &PathLock{}
}

// Key returns the lock key for path.
func Key(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}

	return filepath.Clean(abs), nil
}

// Lock acquires the lock for path and returns a function releasing it.
func (pl *PathLock) Lock(path string) (func(), error) {
	key, err := Key(path)
	if err != nil {
		return nil, err
	}

	pl.keys.Lock(key)

	return func() { pl.keys.Unlock(key) }, nil
}
