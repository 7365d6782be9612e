package evalcmd

import (
	"fmt"
	"os"

	"github.com/lehigh-university-libraries/reclink/internal/linkage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Environment variables consulted for flags left unset on the command line
const (
	envRecords      = "RECLINK_RECORDS"
	envGroundTruth  = "RECLINK_GROUND_TRUTH"
	envArtistWeight = "RECLINK_ARTIST_WEIGHT"
	envTitleWeight  = "RECLINK_TITLE_WEIGHT"
	envThreshold    = "RECLINK_THRESHOLD"
	envScorer       = "RECLINK_SCORER"
)

// NewRunCmd creates the run command for linking a dataset and scoring it
func NewRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Find duplicate records and score them against ground truth",
		Long: `Find duplicate records in a catalogue dataset and score the matches against a
set of known duplicate pairs.

Records are blocked on the first character of the normalized artist, every
pair inside a block is scored as a weighted sum of artist and title
similarity, and pairs at or above the threshold are reported as matches.
Precision, recall and F1 are computed against the ground truth.

Records may be XML (CDDB disc dump), JSONL or Parquet; ground truth may be
XML, JSONL or CSV. Any input may be gzip (.gz) or zstd (.zst) compressed.`,
		Example: `  # Evaluate the CDDB benchmark with the default weights
  reclink eval run --records ./DATASOURCES/cddb_discs.xml --ground-truth ./DATASOURCES/cddb_9763_dups.xml

  # Weight titles more heavily and lower the threshold
  reclink eval run --records discs.jsonl.zst --ground-truth dups.csv --artist-weight 0.3 --title-weight 0.7 --threshold 0.75

  # Use Levenshtein similarity and keep a YAML record of the run
  reclink eval run --records discs.parquet --ground-truth dups.xml --scorer levenshtein --output-yaml-dir evals`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyEnvDefaults(cmd.Flags(), map[string]string{
				"records":       envRecords,
				"ground-truth":  envGroundTruth,
				"artist-weight": envArtistWeight,
				"title-weight":  envTitleWeight,
				"threshold":     envThreshold,
				"scorer":        envScorer,
			}); err != nil {
				return err
			}

			if opts.recordsPath == "" {
				return fmt.Errorf("--records is required (or set %s)", envRecords)
			}
			if opts.groundTruthPath == "" {
				return fmt.Errorf("--ground-truth is required (or set %s)", envGroundTruth)
			}

			return executeRun(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.recordsPath, "records", "", "Path to the record dataset (.xml, .jsonl, .parquet, optionally .gz/.zst)")
	cmd.Flags().StringVar(&opts.groundTruthPath, "ground-truth", "", "Path to the known duplicate pairs (.xml, .jsonl, .csv, optionally .gz/.zst)")
	cmd.Flags().Float64Var(&opts.config.ArtistWeight, "artist-weight", linkage.DefaultArtistWeight, "Weight of the artist similarity")
	cmd.Flags().Float64Var(&opts.config.TitleWeight, "title-weight", linkage.DefaultTitleWeight, "Weight of the title similarity")
	cmd.Flags().Float64Var(&opts.config.Threshold, "threshold", linkage.DefaultThreshold, "Minimum combined score for a match")
	cmd.Flags().StringVar(&opts.config.Scorer, "scorer", linkage.ScorerRatcliff, "String similarity (ratcliff or levenshtein)")
	cmd.Flags().IntVar(&opts.sampleSize, "sample", -1, "Number of records to load (-1 for all)")
	cmd.Flags().StringVar(&opts.outputJSON, "output-json", "", "Path to write JSON results")
	cmd.Flags().StringVar(&opts.outputReport, "output-report", "", "Path to write the detailed pair report")
	cmd.Flags().StringVar(&opts.outputYAMLDir, "output-yaml-dir", "", "Directory to write a YAML record of the run")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Verbose logging, including every comparison")

	return cmd
}

// NewReportCmd creates the report command for re-rendering saved results
func NewReportCmd() *cobra.Command {
	var resultsPath string
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render results saved by run --output-json",
		Example: `  # Human-readable report
  reclink eval report --results eval_results.json

  # Matched pairs as CSV
  reclink eval report --results eval_results.json --format csv > pairs.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeReport(cmd.OutOrStdout(), resultsPath, format)
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "eval_results.json", "Path to a JSON results file")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, csv)")

	return cmd
}

// applyEnvDefaults fills every flag the user did not set from its
// environment variable, when that variable is present
func applyEnvDefaults(flags *pflag.FlagSet, envByFlag map[string]string) error {
	for name, key := range envByFlag {
		if flags.Changed(name) {
			continue
		}
		value, ok := os.LookupEnv(key)
		if !ok || value == "" {
			continue
		}
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", key, value, err)
		}
	}
	return nil
}
