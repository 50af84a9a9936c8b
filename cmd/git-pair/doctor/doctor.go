// Package doctor inspects a repository's git-pair state without changing it.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/git-pair/git-pair/internal/git"
	"github.com/git-pair/git-pair/internal/hooks"
	"github.com/git-pair/git-pair/internal/pair"
)

// Hook states.
const (
	HookMissing   = "missing"
	HookManaged   = "managed"
	HookUnmanaged = "unmanaged"
	HookBroken    = "broken"
)

// Finding severities.
const (
	StatusOK      = "ok"
	StatusWarning = "warning"
	StatusError   = "error"
)

// Finding is one line of the report.
type Finding struct {
	Check           string `json:"check"`
	Status          string `json:"status"`
	Message         string `json:"message"`
	SuggestedAction string `json:"suggested_action,omitempty"`
}

// Report summarizes the hook and the current branch's ledger.
type Report struct {
	RepoRoot       string    `json:"repo_root"`
	HooksDir       string    `json:"hooks_dir"`
	HookPath       string    `json:"hook_path"`
	HookState      string    `json:"hook_state"`
	Executable     bool      `json:"executable"`
	CoreHooksPath  string    `json:"core_hooks_path,omitempty"`
	Branch         string    `json:"branch,omitempty"`
	Initialized    bool      `json:"initialized"`
	Records        int       `json:"records"`
	Findings       []Finding `json:"findings"`
	ErrorCount     int       `json:"error_count"`
	WarningCount   int       `json:"warning_count"`
}

// Healthy reports whether no finding is a warning or an error.
func (r Report) Healthy() bool {
	return r.ErrorCount == 0 && r.WarningCount == 0
}

func (r *Report) add(f Finding) {
	switch f.Status {
	case StatusError:
		r.ErrorCount++
	case StatusWarning:
		r.WarningCount++
	}
	r.Findings = append(r.Findings, f)
}

// Check builds a read-only report for the repository at root.
func Check(ctx context.Context, root string) (Report, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Report{}, fmt.Errorf("resolve path: %w", err)
	}
	hooksDir, err := git.HooksDir(absRoot)
	if err != nil {
		return Report{}, err
	}
	installer := hooks.NewInstaller(hooksDir)
	report := Report{
		RepoRoot: absRoot,
		HooksDir: hooksDir,
		HookPath: installer.Path(),
		Findings: []Finding{},
	}

	inspectHook(&report)
	inspectHooksPath(ctx, &report)

	store, err := pair.Open(absRoot, nil)
	if err != nil {
		return Report{}, err
	}
	inspectLedger(ctx, &report, store)
	checkConsistency(&report)
	return report, nil
}

func inspectHook(r *Report) {
	content, err := os.ReadFile(r.HookPath) // #nosec G304 -- path is derived from the git hooks dir
	switch {
	case errors.Is(err, os.ErrNotExist):
		r.HookState = HookMissing
		r.add(Finding{Check: "hook", Status: StatusOK, Message: "no prepare-commit-msg hook installed"})
		return
	case err != nil:
		r.HookState = HookMissing
		r.add(Finding{
			Check:           "hook",
			Status:          StatusError,
			Message:         fmt.Sprintf("cannot read hook: %v", err),
			SuggestedAction: "Inspect hook file permissions manually.",
		})
		return
	}

	switch hooks.DetectMarkerState(strings.ReplaceAll(string(content), "\r\n", "\n")) {
	case hooks.MarkerValid:
		r.HookState = HookManaged
		r.add(Finding{Check: "hook", Status: StatusOK, Message: "git-pair section present"})
	case hooks.MarkerBroken:
		r.HookState = HookBroken
		r.add(Finding{
			Check:           "hook",
			Status:          StatusError,
			Message:         "hook has unbalanced git-pair markers",
			SuggestedAction: fmt.Sprintf("Repair the %q / %q lines in %s by hand.", hooks.BeginMarker, hooks.EndMarker, r.HookPath),
		})
	default:
		r.HookState = HookUnmanaged
		r.add(Finding{Check: "hook", Status: StatusOK, Message: "hook exists without a git-pair section"})
	}

	r.Executable = isExecutable(r.HookPath)
	if !r.Executable {
		r.add(Finding{
			Check:           "executable",
			Status:          StatusError,
			Message:         "hook is not executable; git will skip it",
			SuggestedAction: "Run 'git-pair hooks install' or chmod +x " + r.HookPath,
		})
	}
}

// inspectHooksPath warns when core.hooksPath sends git to another directory.
func inspectHooksPath(ctx context.Context, r *Report) {
	cmd := exec.CommandContext(ctx, "git", "config", "--get", "core.hooksPath")
	cmd.Dir = r.RepoRoot
	out, err := cmd.Output()
	if err != nil {
		return
	}
	configured := strings.TrimSpace(string(out))
	if configured == "" {
		return
	}
	r.CoreHooksPath = configured
	resolved := expandTilde(configured)
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(r.RepoRoot, resolved)
	}
	if filepath.Clean(resolved) == filepath.Clean(r.HooksDir) {
		return
	}
	r.add(Finding{
		Check:           "hooks_path",
		Status:          StatusWarning,
		Message:         fmt.Sprintf("core.hooksPath is %q; git will not run hooks from %s", configured, r.HooksDir),
		SuggestedAction: "Unset core.hooksPath or call the git-pair section from your hooks directory.",
	})
}

func inspectLedger(ctx context.Context, r *Report, store *pair.Store) {
	branch, coAuthors, err := store.List(ctx)
	r.Branch = branch
	switch {
	case errors.Is(err, git.ErrBranchResolution):
		r.add(Finding{
			Check:           "branch",
			Status:          StatusWarning,
			Message:         "no current branch (detached HEAD?)",
			SuggestedAction: "Check out a branch to use git-pair.",
		})
	case errors.Is(err, pair.ErrNotInitialized):
		r.add(Finding{
			Check:           "ledger",
			Status:          StatusWarning,
			Message:         fmt.Sprintf("git-pair is not initialized for branch '%s'", branch),
			SuggestedAction: "Run 'git-pair init'.",
		})
	case err != nil:
		r.add(Finding{Check: "ledger", Status: StatusError, Message: err.Error()})
	default:
		r.Initialized = true
		r.Records = len(coAuthors)
		r.add(Finding{
			Check:   "ledger",
			Status:  StatusOK,
			Message: fmt.Sprintf("%d co-author(s) on branch '%s'", r.Records, branch),
		})
	}
}

// checkConsistency compares the hook against the current branch's ledger.
// The section reads whichever branch is checked out, so a managed hook with
// an empty ledger is harmless but stale.
func checkConsistency(r *Report) {
	if !r.Initialized {
		return
	}
	switch {
	case r.Records > 0 && r.HookState != HookManaged && r.HookState != HookBroken:
		r.add(Finding{
			Check:           "consistency",
			Status:          StatusWarning,
			Message:         "co-authors are recorded but the hook has no git-pair section",
			SuggestedAction: "Run 'git-pair hooks install'.",
		})
	case r.Records == 0 && r.HookState == HookManaged:
		r.add(Finding{
			Check:           "consistency",
			Status:          StatusWarning,
			Message:         "hook has a git-pair section but this branch has no co-authors",
			SuggestedAction: "Run 'git-pair hooks uninstall' if no other branch is pairing.",
		})
	}
}

func expandTilde(path string) string {
	switch {
	case strings.HasPrefix(path, "~/"), strings.HasPrefix(path, "~\\"):
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	return path
}
