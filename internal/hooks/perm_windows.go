//go:build windows

package hooks

import "os"

// makeExecutable is a no-op: Windows has no execute permission bit and git
// for Windows runs hooks through its bundled sh regardless.
func makeExecutable(string) error {
	return nil
}

func isExecutableMode(os.FileMode) bool {
	return true
}
