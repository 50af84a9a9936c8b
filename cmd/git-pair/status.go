package main

import (
	"github.com/spf13/cobra"

	"github.com/git-pair/git-pair/internal/pair"
	"github.com/git-pair/git-pair/internal/roster"
	"github.com/git-pair/git-pair/internal/ui"
)

type statusOutput struct {
	Branch    string          `json:"branch"`
	CoAuthors []pair.CoAuthor `json:"co_authors"`
}

func newStatusCmd(a *app) *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"list"},
		GroupID: "pair",
		Short:   "Show co-authors for the current branch",
		Long: `Show the co-authors that will be added to commits on the current branch.

With --global, list the aliases saved in the global roster instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if global {
				return a.listGlobal()
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			branch, coAuthors, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput {
				a.outputJSON(statusOutput{Branch: branch, CoAuthors: coAuthors})
				return nil
			}
			if len(coAuthors) == 0 {
				a.printf("No co-authors configured for branch '%s'\n", branch)
				return nil
			}
			a.printf("Current co-authors on %s:\n", ui.RenderAccent(branch))
			for _, ca := range coAuthors {
				a.printf("  %s\n", ca.Line())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "List the global roster")
	return cmd
}

func (a *app) listGlobal() error {
	r, err := a.openRoster()
	if err != nil {
		return err
	}
	entries, err := r.Load()
	if err != nil {
		return err
	}
	if a.jsonOutput {
		if entries == nil {
			entries = []roster.Entry{}
		}
		a.outputJSON(entries)
		return nil
	}
	if len(entries) == 0 {
		a.printf("No entries in global roster\n")
		a.printf("Use 'git pair add --global <alias> <name> <email>' to add entries\n")
		return nil
	}
	a.printf("Global roster:\n")
	for _, e := range entries {
		a.printf("  %s -> %s <%s>\n", ui.RenderAccent(e.Alias), e.Name, e.Email)
	}
	return nil
}
