// Package fileutil writes output documents to disk.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// OwnerReadWrite is the file permission mode for written documents. Merged
// pipelines may carry secrets supplied at runtime (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// WriteFile writes data to path with OwnerReadWrite permissions. The data
// goes to a temporary file in the same directory first and is renamed into
// place, so a failed write never leaves a truncated document behind.
func WriteFile(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmpFile.Chmod(OwnerReadWrite); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	success = true
	return nil
}
