package evalcmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lehigh-university-libraries/reclink/internal/eval/dataset"
	"github.com/lehigh-university-libraries/reclink/internal/linkage"
	"github.com/lehigh-university-libraries/reclink/internal/pipeline"
	"github.com/spf13/cobra"
)

type inspectOptions struct {
	datasetPath string
	limit       int
	interactive bool
	pair        string
	config      pipeline.Config
}

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var opts inspectOptions

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect blocks and pair scores (useful for tuning weights)",
		Long: `Inspect how a record dataset is blocked and how individual pairs score.

Without --pair, every block is printed with its records. With --pair, the two
records are looked up and their artist, title and combined scores are shown,
together with whether blocking would ever compare them.`,
		Example: `  # Page through blocks interactively
  reclink eval inspect --records ./discs.xml --interactive

  # Explain why two records did or did not match
  reclink eval inspect --records ./discs.xml --pair 1a2b3c,4d5e6f

  # Inspect the first 500 records only
  reclink eval inspect --records ./discs.xml --limit 500`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyEnvDefaults(cmd.Flags(), map[string]string{
				"records":       envRecords,
				"artist-weight": envArtistWeight,
				"title-weight":  envTitleWeight,
				"threshold":     envThreshold,
				"scorer":        envScorer,
			}); err != nil {
				return err
			}

			if opts.datasetPath == "" {
				return fmt.Errorf("--records is required (or set %s)", envRecords)
			}

			// Create a context that gets canceled on an interrupt signal (Ctrl+C)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return executeInspect(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.datasetPath, "records", "", "Path to the record dataset (required)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Number of records to load (0 for all)")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "Pause after each block (press Enter to continue)")
	cmd.Flags().StringVar(&opts.pair, "pair", "", "Two record ids, comma separated, to score against each other")
	cmd.Flags().Float64Var(&opts.config.ArtistWeight, "artist-weight", linkage.DefaultArtistWeight, "Weight of the artist similarity")
	cmd.Flags().Float64Var(&opts.config.TitleWeight, "title-weight", linkage.DefaultTitleWeight, "Weight of the title similarity")
	cmd.Flags().Float64Var(&opts.config.Threshold, "threshold", linkage.DefaultThreshold, "Minimum combined score for a match")
	cmd.Flags().StringVar(&opts.config.Scorer, "scorer", linkage.ScorerRatcliff, "String similarity (ratcliff or levenshtein)")

	return cmd
}

func executeInspect(ctx context.Context, in io.Reader, out io.Writer, opts inspectOptions) error {
	discs, err := dataset.NewLoader(opts.datasetPath).LoadSample(opts.limit)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	records := dataset.Records(discs)

	fmt.Fprintf(out, "Loaded %d records from %s\n", len(records), opts.datasetPath)
	fmt.Fprintln(out, strings.Repeat("=", 80))
	fmt.Fprintln(out)

	if opts.pair != "" {
		return inspectPair(out, records, opts)
	}

	return inspectBlocks(ctx, in, out, records, opts.interactive)
}

func inspectPair(out io.Writer, records []linkage.Record, opts inspectOptions) error {
	ids := strings.Split(opts.pair, ",")
	if len(ids) != 2 {
		return fmt.Errorf("--pair needs exactly two ids, got %q", opts.pair)
	}

	matcher, err := opts.config.Matcher()
	if err != nil {
		return err
	}

	byID := make(map[string]linkage.Record, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	var pair [2]linkage.Record
	for i, id := range ids {
		r, ok := byID[strings.TrimSpace(id)]
		if !ok {
			return fmt.Errorf("record not found: %s", strings.TrimSpace(id))
		}
		pair[i] = r
	}

	c := matcher.Compare(pair[0], pair[1])
	keyA, keyB := linkage.BlockKey(pair[0]), linkage.BlockKey(pair[1])

	for i, r := range pair {
		fmt.Fprintf(out, "RECORD %d\n", i+1)
		fmt.Fprintf(out, "  ID:         %s\n", r.ID)
		fmt.Fprintf(out, "  Artist:     %s (normalized %q)\n", r.Artist, linkage.Normalize(r.Artist))
		fmt.Fprintf(out, "  Title:      %s (normalized %q)\n", r.Title, linkage.Normalize(r.Title))
		fmt.Fprintf(out, "  Block Key:  %q\n", linkage.BlockKey(r))
	}
	fmt.Fprintln(out, strings.Repeat("-", 80))
	fmt.Fprintf(out, "Artist Similarity: %.4f (weight %.2f)\n", c.ArtistScore, matcher.ArtistWeight)
	fmt.Fprintf(out, "Title Similarity:  %.4f (weight %.2f)\n", c.TitleScore, matcher.TitleWeight)
	fmt.Fprintf(out, "Combined Score:    %.4f (threshold %.2f)\n", c.Score, matcher.Threshold)
	fmt.Fprintf(out, "Match:             %t\n", c.Match)
	if keyA != keyB {
		fmt.Fprintf(out, "Never compared: records fall in different blocks (%q vs %q)\n", keyA, keyB)
	}

	return nil
}

func inspectBlocks(ctx context.Context, in io.Reader, out io.Writer, records []linkage.Record, interactive bool) error {
	blocks := linkage.BlockRecords(records)
	fmt.Fprintf(out, "%d blocks, %d comparisons\n\n", blocks.Len(), blocks.Comparisons())

	reader := bufio.NewReader(in)

	for i, block := range blocks.All() {
		// Check for context cancellation (e.g., Ctrl+C) at the start of each iteration
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nInspection interrupted.")
			return nil
		default:
		}

		fmt.Fprintf(out, "BLOCK %d/%d key=%q records=%d\n", i+1, blocks.Len(), block.Key, len(block.Records))
		fmt.Fprintln(out, strings.Repeat("-", 80))
		for _, r := range block.Records {
			fmt.Fprintf(out, "  %-12s %s / %s\n", r.ID, r.Artist, r.Title)
		}
		fmt.Fprintln(out)

		if !interactive {
			continue
		}

		fmt.Fprint(out, "Press Enter to continue to next block (or Ctrl+C to quit)...")

		// Channel to signal user input
		inputCh := make(chan struct{})
		go func() {
			_, _ = reader.ReadString('\n')
			close(inputCh)
		}()

		// Wait for either user input (Enter) or context cancellation (Ctrl+C)
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nInspection interrupted.")
			return nil
		case <-inputCh:
			fmt.Fprintln(out)
		}
	}

	return nil
}
