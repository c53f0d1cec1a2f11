// Package exportdir manages the target directory of a spell export.
package exportdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DirPerms  = 0o755
	FilePerms = 0o644
)

// Prepare creates the export directory if needed.
func Prepare(dir string) error {
	if dir == "" {
		return fmt.Errorf("export directory not set")
	}
	if err := os.MkdirAll(dir, DirPerms); err != nil {
		return fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}
	return nil
}

// BinaryPath is the path of the exported magic binary.
func BinaryPath(dir, baseName string) string {
	return filepath.Join(dir, baseName+".bin")
}

// ResourcePath is the path of one language's resource file.
func ResourcePath(dir, baseName, code string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.resources.bin", baseName, code))
}

// WriteFile writes data to path and returns the number of bytes written.
func WriteFile(path string, data []byte) (int64, error) {
	if err := os.WriteFile(path, data, FilePerms); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return int64(len(data)), nil
}
