package main

import (
	"github.com/spf13/cobra"

	"github.com/git-pair/git-pair/internal/ui"
)

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "clear",
		GroupID: "pair",
		Short:   "Remove all co-authors from the current branch",
		Long:    `Reset the current branch's ledger and uninstall the commit hook.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			res, err := store.Clear(cmd.Context())
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
}
