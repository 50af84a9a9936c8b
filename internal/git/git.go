// Package git locates the repository control directory and asks git for the
// current branch. It shells out to the git binary rather than reading refs
// itself so that worktrees, packed refs and unborn branches behave exactly as
// git reports them.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	// ErrNotARepository indicates no .git entry was found.
	ErrNotARepository = errors.New("not in a git repository")

	// ErrBranchResolution indicates the current branch could not be determined.
	ErrBranchResolution = errors.New("cannot determine current branch")
)

// FindRoot walks up from dir to the first directory holding a .git entry.
func FindRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	for cur := abs; ; {
		if _, err := os.Stat(filepath.Join(cur, ".git")); err == nil {
			return cur, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", fmt.Errorf("%s: %w (run 'git init' first)", abs, ErrNotARepository)
		}
		cur = parent
	}
}

// ControlDir returns the git directory for the worktree rooted at root. For
// linked worktrees .git is a file pointing elsewhere ("gitdir: <path>").
func ControlDir(root string) (string, error) {
	dotGit := filepath.Join(root, ".git")
	info, err := os.Stat(dotGit)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s: %w", root, ErrNotARepository)
		}
		return "", fmt.Errorf("stat .git: %w", err)
	}
	if info.IsDir() {
		return dotGit, nil
	}

	// #nosec G304 -- .git file inside the repository root
	data, err := os.ReadFile(dotGit)
	if err != nil {
		return "", fmt.Errorf("read .git file: %w", err)
	}
	line := strings.TrimSpace(string(data))
	gitDir, ok := strings.CutPrefix(line, "gitdir:")
	if !ok {
		return "", fmt.Errorf("%s: unrecognized .git file: %w", root, ErrNotARepository)
	}
	gitDir = strings.TrimSpace(gitDir)
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(root, gitDir)
	}
	return filepath.Clean(gitDir), nil
}

// CommonDir returns the directory shared by all worktrees. Hooks live there.
func CommonDir(root string) (string, error) {
	gitDir, err := ControlDir(root)
	if err != nil {
		return "", err
	}
	// #nosec G304 -- commondir file inside the git directory
	data, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if err != nil {
		return gitDir, nil
	}
	common := strings.TrimSpace(string(data))
	if !filepath.IsAbs(common) {
		common = filepath.Join(gitDir, common)
	}
	return filepath.Clean(common), nil
}

// HooksDir returns <common-dir>/hooks.
func HooksDir(root string) (string, error) {
	common, err := CommonDir(root)
	if err != nil {
		return "", err
	}
	return filepath.Join(common, "hooks"), nil
}

// PairDir returns the directory holding branch ledgers, <git-dir>/git-pair.
func PairDir(root string) (string, error) {
	gitDir, err := ControlDir(root)
	if err != nil {
		return "", err
	}
	return filepath.Join(gitDir, "git-pair"), nil
}

// SanitizeBranch makes a branch name safe for use in a file name. The hook
// script applies the same substitution with sed.
func SanitizeBranch(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(name)
}

// Repo resolves the current branch for a repository root.
type Repo struct {
	Root string
}

// CurrentBranch implements pair.BranchResolver.
func (r Repo) CurrentBranch(ctx context.Context) (string, error) {
	return CurrentBranch(ctx, r.Root)
}

// CurrentBranch runs `git branch --show-current` in root. A detached HEAD
// yields an empty name, which is reported as ErrBranchResolution.
func CurrentBranch(ctx context.Context, root string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "branch", "--show-current")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%w: %s", ErrBranchResolution, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("%w: %w", ErrBranchResolution, err)
	}
	branch := strings.TrimSpace(string(out))
	if branch == "" {
		return "", fmt.Errorf("%w: no branch name found (detached HEAD?)", ErrBranchResolution)
	}
	return branch, nil
}
