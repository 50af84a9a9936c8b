// Package hooks owns the git-pair section of the prepare-commit-msg hook.
//
// The section is the span between the "# BEGIN git-pair" and "# END git-pair"
// lines. Only that span is managed here; anything the user or another tool
// put before or after it is preserved across installs and removals. A hook
// file holding a begin marker with no end marker after it is treated as
// corrupt and is never rewritten.
//
// The package is split the same way the work is:
//
//   - section.go: pure string functions (Merge, Strip, IsEffectivelyEmpty)
//   - generate.go: the constant section text, built from an embedded script
//   - installer.go: the read-merge-write and read-strip-delete cycles on disk
package hooks
