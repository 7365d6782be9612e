package cmd

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// shutdownSignals cancel the command context. SIGKILL is absent because
// it cannot be caught.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// Execute runs the reclink CLI through fang, which adds completions,
// manpages and --version.
func Execute(ctx context.Context, version string) error {
	return fang.Execute(
		ctx,
		NewRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(shutdownSignals...),
	)
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reclink",
		Short: "Approximate record linkage for music catalogue records",
		Long: `Reclink finds duplicate discs in a CDDB-style catalogue by fuzzy matching artist and title.

Records are blocked on the first character of the normalized artist and
compared pairwise within each block. The eval commands score the matches
against known duplicates and help tune weights and thresholds.

Flags may also be set through RECLINK_* environment variables or a .env file.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newEvalCmd())

	return cmd
}
