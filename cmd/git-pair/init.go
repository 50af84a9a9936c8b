package main

import (
	"github.com/spf13/cobra"

	"github.com/git-pair/git-pair/internal/ui"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		GroupID: "setup",
		Short:   "Initialize git-pair for the current branch",
		Long: `Create the co-author ledger for the current branch.

The ledger lives in .git/git-pair/ and is never committed. Running init on
a branch that is already initialized changes nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			res, err := store.Init(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput {
				a.outputJSON(res)
				return nil
			}
			if res.AlreadyInitialized {
				a.printf("%s\n", res.Message())
				return nil
			}
			a.printf("%s %s\n", ui.RenderPass("✓"), res.Message())
			return nil
		},
	}
}
