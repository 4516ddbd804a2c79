// Package fsutil provides filesystem helpers for writing exported trees.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for newly created files.
const DefaultFileMode os.FileMode = 0644

// WriteAtomic writes content to path via a temp file and rename, so a
// partially written export is never observable at the target path. If mode
// is 0, DefaultFileMode is used.
func WriteAtomic(path string, content []byte, mode os.FileMode) error {
	if mode == 0 {
		mode = DefaultFileMode
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}
