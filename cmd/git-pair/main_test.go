package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"charm.land/huh/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/git-pair/git-pair/internal/config"
	"github.com/git-pair/git-pair/internal/hooks"
	"github.com/git-pair/git-pair/internal/roster"
)

type cliResult struct {
	stdout string
	stderr string
	code   int
}

// setupCLI creates a git repository on branch and isolates config and
// roster files under a temp directory.
func setupCLI(t *testing.T, branch string) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed, skipping test")
	}
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("GIT_PAIR_ROSTER_FILE", filepath.Join(home, "roster"))
	t.Setenv("GIT_PAIR_CONFIG", "")
	t.Setenv("NO_COLOR", "1")
	config.ResetForTesting()
	t.Cleanup(config.ResetForTesting)

	repo := t.TempDir()
	cmd := exec.Command("git", "init", "-q", "-b", branch)
	cmd.Dir = repo
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git init: %s", out)
	return repo
}

func runCLIWith(t *testing.T, a *app, repo string, args ...string) cliResult {
	t.Helper()
	stdout := a.stdout.(*bytes.Buffer)
	stderr := a.stderr.(*bytes.Buffer)
	stdout.Reset()
	stderr.Reset()
	code := execute(context.Background(), a, append([]string{"-C", repo}, args...))
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func runCLI(t *testing.T, repo string, args ...string) cliResult {
	t.Helper()
	a := newApp(&bytes.Buffer{}, &bytes.Buffer{})
	a.interactive = func() bool { return false }
	return runCLIWith(t, a, repo, args...)
}

func hookPath(repo string) string {
	return filepath.Join(repo, ".git", "hooks", hooks.HookName)
}

func TestInitCommand(t *testing.T) {
	repo := setupCLI(t, "feature/x")

	res := runCLI(t, repo, "init")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Successfully initialized git-pair for branch 'feature/x'!")
	assert.FileExists(t, filepath.Join(repo, ".git", "git-pair", "config-feature_x"))

	res = runCLI(t, repo, "init")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "git-pair already initialized for branch 'feature/x'")
}

func TestAddStatusRemove(t *testing.T) {
	repo := setupCLI(t, "main")
	require.Equal(t, 0, runCLI(t, repo, "init").code)

	res := runCLI(t, repo, "add", "Jane", "Smith", "jane@x.com")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Added co-author: Jane Smith <jane@x.com> to branch 'main'")
	assert.FileExists(t, hookPath(repo))

	res = runCLI(t, repo, "add", "Jane", "Smith", "jane@x.com")
	require.Equal(t, 0, res.code, "duplicate add is not an error")
	assert.Contains(t, res.stdout, "already exists on branch 'main'")

	res = runCLI(t, repo, "status")
	require.Equal(t, 0, res.code)
	assert.Equal(t, 1, strings.Count(res.stdout, "Co-authored-by: Jane Smith <jane@x.com>"))

	res = runCLI(t, repo, "list")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "Co-authored-by: Jane Smith <jane@x.com>")

	res = runCLI(t, repo, "remove", "jane@x.com")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "uninstalled git hook")
	assert.NoFileExists(t, hookPath(repo))

	res = runCLI(t, repo, "status")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "No co-authors configured for branch 'main'")
}

func TestNotInitialized(t *testing.T) {
	repo := setupCLI(t, "main")

	res := runCLI(t, repo, "add", "Jane", "Smith", "jane@x.com")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Please run 'git-pair init' first")
	_, err := os.Stat(hookPath(repo))
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveUnknown(t *testing.T) {
	repo := setupCLI(t, "main")
	require.Equal(t, 0, runCLI(t, repo, "init").code)
	require.Equal(t, 0, runCLI(t, repo, "add", "Jane", "Smith", "jane@x.com").code)

	res := runCLI(t, repo, "remove", "nobody")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "not found")
	assert.FileExists(t, hookPath(repo))
}

func TestClearCommand(t *testing.T) {
	repo := setupCLI(t, "main")
	require.Equal(t, 0, runCLI(t, repo, "init").code)
	require.Equal(t, 0, runCLI(t, repo, "add", "Jane", "Smith", "jane@x.com").code)

	res := runCLI(t, repo, "clear")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Cleared all co-authors for branch 'main' and uninstalled git hook")
	assert.NoFileExists(t, hookPath(repo))
}

func TestJSONOutput(t *testing.T) {
	repo := setupCLI(t, "main")
	require.Equal(t, 0, runCLI(t, repo, "init").code)
	require.Equal(t, 0, runCLI(t, repo, "add", "Jane", "Smith", "jane@x.com").code)

	res := runCLI(t, repo, "--json", "status")
	require.Equal(t, 0, res.code, res.stderr)
	var out statusOutput
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, "main", out.Branch)
	require.Len(t, out.CoAuthors, 1)
	assert.Equal(t, "jane@x.com", out.CoAuthors[0].Email)
}

func TestJSONError(t *testing.T) {
	repo := setupCLI(t, "main")

	res := runCLI(t, repo, "--json", "status")
	assert.Equal(t, 1, res.code)
	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Contains(t, out["error"], "not initialized")
}

func TestJSONFromEnvironment(t *testing.T) {
	repo := setupCLI(t, "main")
	t.Setenv("GIT_PAIR_OUTPUT_JSON", "true")

	res := runCLI(t, repo, "init")
	require.Equal(t, 0, res.code, res.stderr)
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, "main", out["branch"])
}

func TestGlobalRoster(t *testing.T) {
	repo := setupCLI(t, "main")
	require.Equal(t, 0, runCLI(t, repo, "init").code)

	res := runCLI(t, repo, "list", "--global")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "No entries in global roster")

	res = runCLI(t, repo, "add", "--global", "js", "Jane Smith", "jane@x.com")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Added 'js' (Jane Smith <jane@x.com>) to global roster")

	res = runCLI(t, repo, "add", "--global", "js", "Other", "o@x.com")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "already exists")

	res = runCLI(t, repo, "list", "--global")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "js -> Jane Smith <jane@x.com>")

	res = runCLI(t, repo, "add", "js")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Added co-author: Jane Smith <jane@x.com>")

	res = runCLI(t, repo, "add", "nobody")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "git pair list --global")

	// "js" is not a substring of the record; the alias resolves it.
	res = runCLI(t, repo, "remove", "js")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Removed co-author: Jane Smith <jane@x.com>")

	res = runCLI(t, repo, "remove", "--global", "js")
	require.Equal(t, 0, res.code, res.stderr)
	res = runCLI(t, repo, "list", "--global")
	assert.Contains(t, res.stdout, "No entries in global roster")
}

func TestAddInteractive(t *testing.T) {
	repo := setupCLI(t, "main")
	require.Equal(t, 0, runCLI(t, repo, "init").code)
	require.Equal(t, 0, runCLI(t, repo, "add", "--global", "js", "Jane Smith", "jane@x.com").code)
	require.Equal(t, 0, runCLI(t, repo, "add", "--global", "bo", "Bob", "bob@example.com").code)

	var offered []roster.Entry
	a := newApp(&bytes.Buffer{}, &bytes.Buffer{})
	a.interactive = func() bool { return true }
	a.pick = func(entries []roster.Entry) ([]string, error) {
		offered = entries
		return []string{"js", "bo"}, nil
	}

	res := runCLIWith(t, a, repo, "add")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Len(t, offered, 2)
	assert.Contains(t, res.stdout, "Jane Smith <jane@x.com>")
	assert.Contains(t, res.stdout, "Bob <bob@example.com>")

	a.pick = func([]roster.Entry) ([]string, error) { return nil, huh.ErrUserAborted }
	res = runCLIWith(t, a, repo, "add")
	assert.Equal(t, 0, res.code, "aborting the picker is not an error")
}

func TestAddInteractive_ReportsEarlierPicksOnFailure(t *testing.T) {
	repo := setupCLI(t, "main")
	require.Equal(t, 0, runCLI(t, repo, "init").code)
	require.Equal(t, 0, runCLI(t, repo, "add", "--global", "js", "Jane Smith", "jane@x.com").code)

	a := newApp(&bytes.Buffer{}, &bytes.Buffer{})
	a.interactive = func() bool { return true }
	a.pick = func([]roster.Entry) ([]string, error) {
		return []string{"js", "gone"}, nil
	}

	res := runCLIWith(t, a, repo, "add")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "Added co-author: Jane Smith <jane@x.com>")
	assert.Contains(t, res.stderr, "alias 'gone'")

	res = runCLI(t, repo, "status")
	assert.Contains(t, res.stdout, "Co-authored-by: Jane Smith <jane@x.com>")
}

func TestAddWithoutArgsNonInteractive(t *testing.T) {
	repo := setupCLI(t, "main")
	require.Equal(t, 0, runCLI(t, repo, "init").code)

	res := runCLI(t, repo, "add")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "usage")
}

func TestHooksCommands(t *testing.T) {
	repo := setupCLI(t, "main")

	res := runCLI(t, repo, "hooks", "status")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "not present")

	res = runCLI(t, repo, "hooks", "install")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "git-pair hook installed")

	res = runCLI(t, repo, "--json", "hooks", "status")
	require.Equal(t, 0, res.code)
	var status map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &status))
	assert.Equal(t, true, status["exists"])

	res = runCLI(t, repo, "hooks", "uninstall")
	require.Equal(t, 0, res.code, res.stderr)
	assert.NoFileExists(t, hookPath(repo))

	// sync follows the ledger.
	require.Equal(t, 0, runCLI(t, repo, "init").code)
	require.Equal(t, 0, runCLI(t, repo, "add", "Jane", "Smith", "jane@x.com").code)
	require.NoError(t, os.Remove(hookPath(repo)))
	res = runCLI(t, repo, "hooks", "sync")
	require.Equal(t, 0, res.code, res.stderr)
	assert.FileExists(t, hookPath(repo))
}

func TestMalformedHookReported(t *testing.T) {
	repo := setupCLI(t, "main")
	require.Equal(t, 0, runCLI(t, repo, "init").code)
	broken := "#!/bin/sh\n" + hooks.BeginMarker + "\necho half\n"
	require.NoError(t, os.MkdirAll(filepath.Dir(hookPath(repo)), 0o755))
	require.NoError(t, os.WriteFile(hookPath(repo), []byte(broken), 0o755))

	res := runCLI(t, repo, "add", "Jane", "Smith", "jane@x.com")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "malformed hook")

	data, err := os.ReadFile(hookPath(repo))
	require.NoError(t, err)
	assert.Equal(t, broken, string(data))

	res = runCLI(t, repo, "doctor")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "unbalanced git-pair markers")
}

func TestDoctorCommand(t *testing.T) {
	repo := setupCLI(t, "main")
	require.Equal(t, 0, runCLI(t, repo, "init").code)
	require.Equal(t, 0, runCLI(t, repo, "add", "Jane", "Smith", "jane@x.com").code)

	res := runCLI(t, repo, "doctor")
	require.Equal(t, 0, res.code, res.stdout+res.stderr)
	assert.Contains(t, res.stdout, "All checks passed")

	res = runCLI(t, repo, "--json", "doctor")
	require.Equal(t, 0, res.code)
	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))
	assert.Equal(t, "managed", report["hook_state"])
}

func TestVersion(t *testing.T) {
	repo := setupCLI(t, "main")

	res := runCLI(t, repo, "version")
	require.Equal(t, 0, res.code)
	assert.Equal(t, "git-pair "+Version+"\n", res.stdout)

	res = runCLI(t, repo, "--version")
	require.Equal(t, 0, res.code)
	assert.Equal(t, "git-pair "+Version+"\n", res.stdout)
}

func TestNotARepository(t *testing.T) {
	setupCLI(t, "main")
	dir := t.TempDir()

	res := runCLI(t, dir, "init")
	if res.code == 0 {
		t.Skip("temp dir is nested inside a git repository")
	}
	assert.Contains(t, res.stderr, "not in a git repository")
}
