package main

import (
	"errors"
	"fmt"

	"charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/git-pair/git-pair/internal/pair"
	"github.com/git-pair/git-pair/internal/roster"
	"github.com/git-pair/git-pair/internal/storage"
	"github.com/git-pair/git-pair/internal/ui"
)

func newAddCmd(a *app) *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:     "add <first> <last> <email> | add <alias> | add --global <alias> <name> <email>",
		GroupID: "pair",
		Short:   "Add a co-author to the current branch",
		Long: `Add a co-author to the current branch and install the commit hook.

  git-pair add Jane Smith jane@example.com   add by name and email
  git-pair add jane                          add a roster alias
  git-pair add --global jane "Jane Smith" jane@example.com
                                             save an alias in the global roster

With no arguments on a terminal, pick co-authors from the global roster.`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if global {
				if len(args) != 3 {
					return errors.New("usage: git-pair add --global <alias> <name> <email>")
				}
				return a.addGlobal(args[0], args[1], args[2])
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			switch len(args) {
			case 3:
				res, err := store.Add(cmd.Context(), pair.FullName(args[0], args[1]), args[2])
				if err != nil {
					return err
				}
				a.reportAdd([]pair.AddResult{res})
				return nil
			case 1:
				res, err := store.AddAlias(cmd.Context(), args[0])
				if err != nil {
					return aliasHint(err)
				}
				a.reportAdd([]pair.AddResult{res})
				return nil
			case 0:
				return a.addInteractive(cmd, store)
			default:
				return errors.New("usage: git-pair add <first> <last> <email>\n   or: git-pair add <alias>\n   or: git-pair add --global <alias> <name> <email>")
			}
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "Save an alias in the global roster instead")
	return cmd
}

func (a *app) addGlobal(alias, name, email string) error {
	r, err := a.openRoster()
	if err != nil {
		return err
	}
	entry, err := r.Add(alias, name, email)
	if err != nil {
		return err
	}
	if a.jsonOutput {
		a.outputJSON(entry)
		return nil
	}
	a.printf("%s Added '%s' (%s <%s>) to global roster\n", ui.RenderPass("✓"), entry.Alias, entry.Name, entry.Email)
	return nil
}

func (a *app) addInteractive(cmd *cobra.Command, store *pair.Store) error {
	if a.jsonOutput || !a.interactive() {
		return errors.New("usage: git-pair add <first> <last> <email> | <alias>")
	}
	r, err := a.openRoster()
	if err != nil {
		return err
	}
	entries, err := r.Load()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return errors.New("global roster is empty; add entries with 'git-pair add --global <alias> <name> <email>'")
	}
	aliases, err := a.pick(entries)
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	if err != nil {
		return err
	}

	var results []pair.AddResult
	for _, alias := range aliases {
		res, err := store.AddAlias(cmd.Context(), alias)
		if err != nil {
			// Earlier picks are already on the branch.
			if len(results) > 0 {
				a.reportAdd(results)
			}
			return aliasHint(err)
		}
		results = append(results, res)
	}
	a.reportAdd(results)
	return nil
}

func (a *app) reportAdd(results []pair.AddResult) {
	if a.jsonOutput {
		if len(results) == 1 {
			a.outputJSON(results[0])
		} else {
			a.outputJSON(results)
		}
		return
	}
	for _, res := range results {
		if res.Duplicate {
			a.printf("%s %s\n", ui.RenderWarn("!"), res.Message())
			continue
		}
		a.printf("%s %s\n", ui.RenderPass("✓"), res.Message())
	}
}

// aliasHint points the user at the roster listing when an alias is unknown.
func aliasHint(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w. Use 'git pair list --global' to see available aliases", err)
	}
	return err
}

// pickAliases shows a multi-select over the roster.
func pickAliases(entries []roster.Entry) ([]string, error) {
	options := make([]huh.Option[string], 0, len(entries))
	for _, e := range entries {
		options = append(options, huh.NewOption(fmt.Sprintf("%s  %s <%s>", e.Alias, e.Name, e.Email), e.Alias))
	}
	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Who are you pairing with?").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}
	return selected, nil
}
