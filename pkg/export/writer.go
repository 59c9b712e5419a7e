package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile drops rendered export bytes under the export directory,
// creating it on first use.
func WriteFile(dir, filename string, data []byte) (string, error) {
	if dir == "" {
		dir = "./exports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}
