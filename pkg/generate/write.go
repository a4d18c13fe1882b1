package generate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MacroPower/abischema/pkg/abierrors"
	"github.com/MacroPower/abischema/pkg/syncs"
)

// DefaultOutputBase is the output file name without extension.
const DefaultOutputBase = "contract_types"

var outputLocks = syncs.NewPathLock()

// DefaultOutputPath returns `./contract_types.<ext>`.
func DefaultOutputPath(ext string) string {
	return "./" + DefaultOutputBase + "." + ext
}

// WriteFile writes data to path, creating parent directories. Writes to the
// same path are serialized.
func WriteFile(path string, data []byte) error {
	unlock, err := outputLocks.Lock(path)
	if err != nil {
		return fmt.Errorf("%w: %w", abierrors.ErrWriteFile, err)
	}
	defer unlock()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%w: create directory %q: %w", abierrors.ErrWriteFile, dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %q: %w", abierrors.ErrWriteFile, path, err)
	}

	return nil
}
