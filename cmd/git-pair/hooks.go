package main

import (
	"github.com/spf13/cobra"

	"github.com/git-pair/git-pair/internal/git"
	"github.com/git-pair/git-pair/internal/hooks"
	"github.com/git-pair/git-pair/internal/ui"
)

func newHooksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hooks",
		GroupID: "setup",
		Short:   "Manage the prepare-commit-msg hook",
		Long: `Install, uninstall, sync or inspect the git-pair section of
.git/hooks/prepare-commit-msg.

add, remove and clear keep the hook up to date on their own; these commands
are for repairing or inspecting it. Content outside the git-pair markers is
never touched.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "install",
			Short: "Add or refresh the git-pair section",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				installer, err := a.installer()
				if err != nil {
					return err
				}
				if err := installer.Install(); err != nil {
					return err
				}
				return a.reportHook("installed", installer)
			},
		},
		&cobra.Command{
			Use:   "uninstall",
			Short: "Remove the git-pair section",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				installer, err := a.installer()
				if err != nil {
					return err
				}
				if err := installer.Remove(); err != nil {
					return err
				}
				return a.reportHook("uninstalled", installer)
			},
		},
		&cobra.Command{
			Use:   "sync",
			Short: "Install or remove the section to match the current branch",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, err := a.openStore()
				if err != nil {
					return err
				}
				n, err := store.Sync(cmd.Context())
				if err != nil {
					return err
				}
				installer, err := a.installer()
				if err != nil {
					return err
				}
				action := "uninstalled"
				if n > 0 {
					action = "installed"
				}
				return a.reportHook(action, installer)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show whether the git-pair section is installed",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				installer, err := a.installer()
				if err != nil {
					return err
				}
				return a.reportHook("", installer)
			},
		},
	)
	return cmd
}

func (a *app) installer() (*hooks.Installer, error) {
	root, err := a.repoRoot()
	if err != nil {
		return nil, err
	}
	dir, err := git.HooksDir(root)
	if err != nil {
		return nil, err
	}
	return hooks.NewInstaller(dir), nil
}

type hookOutput struct {
	Action string `json:"action,omitempty"`
	hooks.HookStatus
}

func (a *app) reportHook(action string, installer *hooks.Installer) error {
	status, err := installer.Status()
	if err != nil {
		return err
	}
	if a.jsonOutput {
		a.outputJSON(hookOutput{Action: action, HookStatus: status})
		return nil
	}
	if action != "" {
		a.printf("%s git-pair hook %s\n", ui.RenderPass("✓"), action)
	}
	switch {
	case !status.Exists:
		a.printf("  %s: %s\n", hooks.HookName, ui.RenderMuted("not present"))
	case status.Markers == hooks.MarkerValid && status.Executable:
		a.printf("  %s: %s\n", hooks.HookName, ui.RenderPass("installed"))
	case status.Markers == hooks.MarkerValid:
		a.printf("  %s: %s\n", hooks.HookName, ui.RenderWarn("installed but not executable"))
	case status.Markers == hooks.MarkerBroken:
		a.printf("  %s: %s\n", hooks.HookName, ui.RenderFail("broken markers"))
	default:
		a.printf("  %s: %s\n", hooks.HookName, ui.RenderMuted("present without git-pair section"))
	}
	a.printf("  %s\n", ui.RenderMuted(status.Path))
	return nil
}
