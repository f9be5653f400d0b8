package notes

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorewood/buildnotes/internal/output"
)

// FileMode is the permission of the written notes file.
const FileMode os.FileMode = 0o644

// Write replaces the file at path with content, creating parent directories.
// A failure here is the one error that aborts a run.
func Write(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return writeError(path, err)
		}
	}
	if err := atomicWrite(path, []byte(content)); err != nil {
		return writeError(path, err)
	}
	return nil
}

func writeError(path string, err error) error {
	return output.NewSystemErrorWithCause("cannot write notes file "+path, err)
}

// Read returns the current contents of the notes file.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", output.NewUserError("notes file not found: " + path)
		}
		return "", output.NewSystemErrorWithCause("cannot read notes file "+path, err)
	}
	return string(data), nil
}

// atomicWrite writes data to path using write-to-temp-then-rename.
// The temp file is created in the same directory as path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*.md")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Chmod(FileMode); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
