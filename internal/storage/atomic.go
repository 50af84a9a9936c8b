package storage

import (
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to a temp file in the target's directory and
// renames it over path, so readers see either the old or the new content.
// The final file gets perm; umask does not apply because of the explicit chmod.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return WrapIOError("create temp file", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return WrapIOError("write temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return WrapIOError("sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return WrapIOError("close temp file", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return WrapIOError("chmod temp file", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return WrapIOError("rename "+filepath.Base(path), err)
	}
	return nil
}

// ReadFileOrEmpty returns the file content, or "" with exists=false when the
// file is missing.
func ReadFileOrEmpty(path string) (content string, exists bool, err error) {
	// #nosec G304 -- callers pass paths derived from the repository control dir
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, WrapIOError("read "+filepath.Base(path), err)
	}
	return string(data), true, nil
}
