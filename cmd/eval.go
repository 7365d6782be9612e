package cmd

import (
	"github.com/lehigh-university-libraries/reclink/internal/evalcmd"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Record linkage evaluation tools",
		Long: `Evaluation tools for measuring how well fuzzy matching finds duplicate records.

Supports running the matcher against a dataset and known duplicate pairs,
rendering saved results, and inspecting blocks and individual pair scores.`,
	}

	// Add eval subcommands
	cmd.AddCommand(evalcmd.NewRunCmd())
	cmd.AddCommand(evalcmd.NewReportCmd())
	cmd.AddCommand(evalcmd.NewInspectCmd())

	return cmd
}
