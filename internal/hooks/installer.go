package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/git-pair/git-pair/internal/debug"
	"github.com/git-pair/git-pair/internal/storage"
)

// HookName is the git hook git-pair manages.
const HookName = "prepare-commit-msg"

// Installer edits the git-pair section of one hook file.
type Installer struct {
	HooksDir string
}

// NewInstaller returns an installer for the hook in hooksDir.
func NewInstaller(hooksDir string) *Installer {
	return &Installer{HooksDir: hooksDir}
}

// Path returns the hook file path.
func (i *Installer) Path() string {
	return filepath.Join(i.HooksDir, HookName)
}

// Install merges the git-pair section into the hook, creating the file (and
// the hooks directory) when needed, and marks it executable.
//
// A hook with a begin marker and no end marker is left untouched and
// ErrMalformedHook is returned.
func (i *Installer) Install() error {
	if err := os.MkdirAll(i.HooksDir, 0o755); err != nil {
		return storage.WrapIOError("create hooks directory", err)
	}

	path, _ := i.target()
	existing, exists, err := storage.ReadFileOrEmpty(path)
	if err != nil {
		return err
	}

	// Normalize line endings to LF. Hooks with CRLF fail:
	// /bin/sh: 'sh\r': No such file or directory
	normalized := strings.ReplaceAll(existing, "\r\n", "\n")
	merged, err := Merge(normalized, Section())
	if err != nil {
		return fmt.Errorf("install %s: %w", HookName, err)
	}
	merged = withTrailingNewline(merged)

	mode := os.FileMode(0o755)
	if exists {
		if m, ok := fileMode(path); ok {
			mode = m | 0o111
		}
	}

	if merged == existing {
		debug.Event("install").Str("path", path).Msg("hook already up to date")
		return makeExecutable(path)
	}

	// #nosec G306 -- git hooks must be executable for git to run them
	if err := storage.WriteFileAtomic(path, []byte(merged), mode); err != nil {
		return fmt.Errorf("install %s: %w", HookName, err)
	}
	debug.Event("install").Str("path", path).Bool("created", !exists).Msg("wrote hook section")
	return makeExecutable(path)
}

// Remove strips the git-pair section from the hook. The file is deleted when
// only a shebang, comments or blank lines remain and the hook is not a
// symlink. A missing hook, or one with no section, is left alone.
func (i *Installer) Remove() error {
	path, linked := i.target()
	content, exists, err := storage.ReadFileOrEmpty(path)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	stripped, found, err := Strip(content)
	if err != nil {
		return fmt.Errorf("remove %s: %w", HookName, err)
	}
	if !found {
		debug.Event("remove").Str("path", path).Msg("no git-pair section, leaving hook alone")
		return nil
	}

	// A symlinked hook belongs to the user even when only the section is
	// left, so its target is rewritten instead of the link being deleted.
	if IsEffectivelyEmpty(stripped) && !linked {
		if err := os.Remove(path); err != nil {
			return storage.WrapIOError("remove "+HookName, err)
		}
		debug.Event("remove").Str("path", path).Msg("deleted hook")
		return nil
	}

	mode, ok := fileMode(path)
	if !ok {
		mode = 0o755
	}
	if err := storage.WriteFileAtomic(path, []byte(withTrailingNewline(stripped)), mode); err != nil {
		return fmt.Errorf("remove %s: %w", HookName, err)
	}
	debug.Event("remove").Str("path", path).Msg("stripped hook section")
	return nil
}

// target returns the file that reads and writes go to. A symlinked hook is
// resolved to its destination so the atomic rename replaces the target and
// the link survives. linked reports whether Path is a symlink.
func (i *Installer) target() (path string, linked bool) {
	path = i.Path()
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return path, false
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved, true
	}
	// Dangling link: write where it points.
	dest, err := os.Readlink(path)
	if err != nil {
		return path, false
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(path), dest)
	}
	return dest, true
}

// HookStatus describes the hook file as found on disk.
type HookStatus struct {
	Path       string      `json:"path"`
	Exists     bool        `json:"exists"`
	Markers    MarkerState `json:"markers"`
	Executable bool        `json:"executable"`
}

// Status inspects the hook without modifying it.
func (i *Installer) Status() (HookStatus, error) {
	path := i.Path()
	status := HookStatus{Path: path, Markers: MarkerNone}

	content, exists, err := storage.ReadFileOrEmpty(path)
	if err != nil {
		return status, err
	}
	if !exists {
		return status, nil
	}
	status.Exists = true
	status.Markers = DetectMarkerState(content)
	if mode, ok := fileMode(path); ok {
		status.Executable = isExecutableMode(mode)
	}
	return status, nil
}

func withTrailingNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func fileMode(path string) (os.FileMode, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	return info.Mode().Perm(), true
}
