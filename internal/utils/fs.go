package utils

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// EnsureParentDir creates the parent directory of path, recursively.
// It is safe to call repeatedly.
func EnsureParentDir(fs afero.Fs, path string) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return nil
}
