package main

import (
	"github.com/spf13/cobra"

	"github.com/git-pair/git-pair/internal/ui"
)

func newRemoveCmd(a *app) *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:     "remove <name|email|alias>",
		Aliases: []string{"rm"},
		GroupID: "pair",
		Short:   "Remove co-authors from the current branch",
		Long: `Remove every co-author whose entry contains the given text (case-insensitive).
If nothing matches, the text is looked up as a global roster alias.
Removing the last co-author uninstalls the commit hook.

Examples:
  git-pair remove "John Doe"
  git-pair remove john.doe@example.com
  git-pair remove alice
  git-pair remove --global alice    delete an alias from the global roster`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if global {
				return a.removeGlobal(args[0])
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			res, err := store.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOutput {
				a.outputJSON(res)
				return nil
			}
			a.printf("%s %s\n", ui.RenderPass("✓"), res.Message())
			return nil
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "Remove an alias from the global roster instead")
	return cmd
}

func (a *app) removeGlobal(alias string) error {
	r, err := a.openRoster()
	if err != nil {
		return err
	}
	entry, err := r.Remove(alias)
	if err != nil {
		return err
	}
	if a.jsonOutput {
		a.outputJSON(entry)
		return nil
	}
	a.printf("%s Removed '%s' (%s <%s>) from global roster\n", ui.RenderPass("✓"), entry.Alias, entry.Name, entry.Email)
	return nil
}
