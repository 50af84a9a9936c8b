package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/git-pair/git-pair/internal/config"
	"github.com/git-pair/git-pair/internal/debug"
	"github.com/git-pair/git-pair/internal/git"
	"github.com/git-pair/git-pair/internal/pair"
	"github.com/git-pair/git-pair/internal/roster"
	"github.com/git-pair/git-pair/internal/ui"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "0.4.0"

// app carries the state shared by every command in one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	jsonOutput bool
	repoFlag   string

	// interactive reports whether prompts may be shown.
	interactive func() bool
	// pick asks the user to choose roster aliases.
	pick func(entries []roster.Entry) ([]string, error)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) // #nosec G115 -- fds fit in int
		},
		pick: pickAliases,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "git-pair",
		Short: "Per-branch co-author management for pair programming",
		Long: `git-pair keeps a list of co-authors for each branch and appends them to
your commit messages as Co-authored-by trailers.

Run it as "git-pair" or, once on your PATH, as "git pair".`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetVersionTemplate("git-pair {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.Bool("json", false, "Output in JSON format")
	flags.StringVarP(&a.repoFlag, "repo", "C", "", "Run as if started in `dir`")
	flags.String("color", ui.ColorAuto, "Colorize output: auto, always or never")
	flags.Bool("debug", false, "Log diagnostics to stderr")

	root.AddGroup(
		&cobra.Group{ID: "pair", Title: "Pairing:"},
		&cobra.Group{ID: "setup", Title: "Setup & maintenance:"},
	)
	root.AddCommand(
		newInitCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newClearCmd(a),
		newStatusCmd(a),
		newHooksCmd(a),
		newDoctorCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads configuration and lets flags override it.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.Initialize(); err != nil {
		return err
	}
	flags := cmd.Root().PersistentFlags()
	bindings := []struct{ key, flag string }{
		{config.KeyOutputJSON, "json"},
		{config.KeyOutputColor, "color"},
		{config.KeyDebug, "debug"},
	}
	for _, b := range bindings {
		if err := config.BindFlag(b.key, flags.Lookup(b.flag)); err != nil {
			return err
		}
	}

	a.jsonOutput = config.GetBool(config.KeyOutputJSON)
	ui.SetColorMode(config.GetString(config.KeyOutputColor))
	if config.GetBool(config.KeyDebug) {
		debug.SetEnabled(true)
	}
	debug.Event("config").Str("file", config.ConfigFileUsed()).Bool("json", a.jsonOutput).Send()
	return nil
}

// execute runs the command line and reports any failure. It returns the
// process exit code.
func execute(ctx context.Context, a *app, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		a.reportError(err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, newApp(os.Stdout, os.Stderr), os.Args[1:])
	stop()
	os.Exit(code)
}

// errReported marks a failure whose details were already written.
var errReported = errors.New("failure already reported")

// reportError prints err as {"error": ...} on stdout in JSON mode and as a
// styled message on stderr otherwise.
func (a *app) reportError(err error) {
	if errors.Is(err, errReported) {
		return
	}
	if a.jsonOutput {
		a.outputJSON(map[string]string{"error": err.Error()})
		return
	}
	_, _ = fmt.Fprintf(a.stderr, "%s %v\n", ui.RenderFail("Error:"), err)
}

func (a *app) outputJSON(v any) {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_, _ = fmt.Fprintf(a.stderr, "Error encoding JSON: %v\n", err)
	}
}

func (a *app) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.stdout, format, args...)
}

// repoRoot resolves the repository from -C or the working directory.
func (a *app) repoRoot() (string, error) {
	dir := a.repoFlag
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = wd
	}
	return git.FindRoot(dir)
}

func (a *app) openRoster() (*roster.File, error) {
	path, err := config.RosterPath()
	if err != nil {
		return nil, err
	}
	return roster.Open(path), nil
}

// openStore wires the store for the current repository with the global
// roster as its alias source.
func (a *app) openStore() (*pair.Store, error) {
	root, err := a.repoRoot()
	if err != nil {
		return nil, err
	}
	r, err := a.openRoster()
	if err != nil {
		return nil, err
	}
	return pair.Open(root, r)
}
