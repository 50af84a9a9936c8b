package main

import (
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		GroupID: "setup",
		Short:   "Print the git-pair version",
		Args:    cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			if a.jsonOutput {
				a.outputJSON(map[string]string{
					"version": Version,
					"go":      runtime.Version(),
				})
				return
			}
			a.printf("git-pair %s\n", Version)
		},
	}
}
