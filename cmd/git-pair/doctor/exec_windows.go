//go:build windows

package doctor

// Windows has no execute bit; git for Windows runs hooks through sh.
func isExecutable(string) bool {
	return true
}
