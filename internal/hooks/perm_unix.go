//go:build !windows

package hooks

import (
	"os"

	"github.com/git-pair/git-pair/internal/storage"
)

// makeExecutable adds the execute bit for owner, group and other.
func makeExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return storage.WrapIOError("stat "+HookName, err)
	}
	mode := info.Mode().Perm()
	if mode&0o111 == 0o111 {
		return nil
	}
	if err := os.Chmod(path, mode|0o111); err != nil {
		return storage.WrapIOError("chmod "+HookName, err)
	}
	return nil
}

func isExecutableMode(mode os.FileMode) bool {
	return mode&0o111 != 0
}
