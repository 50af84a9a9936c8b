package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/git-pair/git-pair/cmd/git-pair/doctor"
	"github.com/git-pair/git-pair/internal/ui"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		GroupID: "setup",
		Short:   "Check the hook and the current branch's ledger",
		Long: `Inspect the prepare-commit-msg hook and the current branch's co-author
ledger, and suggest fixes. Nothing is changed.

Exits non-zero when an error-level problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := a.repoRoot()
			if err != nil {
				return err
			}
			report, err := doctor.Check(cmd.Context(), root)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				a.outputJSON(report)
				if report.ErrorCount > 0 {
					return errReported
				}
				return nil
			}
			a.printReport(report)
			if report.ErrorCount > 0 {
				return fmt.Errorf("doctor found %d problem(s)", report.ErrorCount)
			}
			return nil
		},
	}
}

func (a *app) printReport(r doctor.Report) {
	a.printf("git-pair doctor: %s\n\n", ui.RenderMuted(r.RepoRoot))
	for _, f := range r.Findings {
		var mark string
		switch f.Status {
		case doctor.StatusOK:
			mark = ui.RenderPass("✓")
		case doctor.StatusWarning:
			mark = ui.RenderWarn("⚠")
		default:
			mark = ui.RenderFail("✗")
		}
		a.printf("  %s %-12s %s\n", mark, f.Check, f.Message)
		if f.SuggestedAction != "" {
			a.printf("    %s\n", ui.RenderMuted(f.SuggestedAction))
		}
	}
	a.printf("\n")
	if r.Healthy() {
		a.printf("%s\n", ui.RenderPass("All checks passed"))
	}
}
