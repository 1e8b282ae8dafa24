package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic write files.
	// The watcher ignores files carrying it.
	TempFilePrefix = ".pantry-tmp-"
)

// writeFileAtomic replaces filename with data by writing a sibling temp file,
// syncing it and renaming it over the target. Readers see either the old or
// the new content, never a truncated file.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmpFile.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(filename), err)
	}
	return nil
}

func isTempFile(name string) bool {
	return strings.HasPrefix(filepath.Base(name), TempFilePrefix)
}
