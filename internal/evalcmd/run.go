package evalcmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/reclink/internal/eval/dataset"
	"github.com/lehigh-university-libraries/reclink/internal/eval/metrics"
	"github.com/lehigh-university-libraries/reclink/internal/eval/results"
	"github.com/lehigh-university-libraries/reclink/internal/pipeline"
)

type runOptions struct {
	recordsPath     string
	groundTruthPath string
	config          pipeline.Config
	sampleSize      int
	outputJSON      string
	outputReport    string
	outputYAMLDir   string
	verbose         bool
}

func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}

func executeRun(out io.Writer, opts runOptions) error {
	setupLogging(opts.verbose)

	p, err := pipeline.New(opts.config, pipeline.WithObserver(pipeline.NewSlogObserver(nil)))
	if err != nil {
		return err
	}

	slog.Info("Starting record linkage evaluation",
		"records", opts.recordsPath,
		"ground_truth", opts.groundTruthPath,
		"scorer", opts.config.Scorer,
		"artist_weight", opts.config.ArtistWeight,
		"title_weight", opts.config.TitleWeight,
		"threshold", opts.config.Threshold)

	loader := dataset.NewLoader(opts.recordsPath)
	var discs []dataset.DiscRecord
	if opts.sampleSize > 0 {
		slog.Info("Loading sample from dataset", "limit", opts.sampleSize)
		discs, err = loader.LoadSample(opts.sampleSize)
	} else {
		slog.Info("Loading full dataset")
		discs, err = loader.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}
	slog.Info("Records loaded", "path", opts.recordsPath, "records", len(discs))

	groundTruth, err := dataset.NewGroundTruthLoader(opts.groundTruthPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load ground truth: %w", err)
	}

	result, err := p.Run(dataset.Records(discs), groundTruth)
	if err != nil {
		return fmt.Errorf("failed to run pipeline: %w", err)
	}
	result.RecordsPath = opts.recordsPath
	result.GroundTruthPath = opts.groundTruthPath
	result.SampleSize = opts.sampleSize

	result.PrintSummary(out)
	saveOutputs(out, result, opts)

	slog.Info("Evaluation complete")
	return nil
}

// saveOutputs writes the optional result files. A failed write is
// reported but does not fail the run.
func saveOutputs(out io.Writer, result *metrics.EvaluationResult, opts runOptions) {
	if opts.outputJSON != "" {
		if err := result.SaveToJSON(opts.outputJSON); err != nil {
			fmt.Fprintf(out, "Warning: Failed to save JSON results: %v\n", err)
		} else {
			fmt.Fprintf(out, "\nResults saved to: %s\n", opts.outputJSON)
			fmt.Fprintf(out, "\nGenerate a report with:\n")
			fmt.Fprintf(out, "  reclink eval report --results %s\n", opts.outputJSON)
		}
	}

	if opts.outputReport != "" {
		if err := result.SaveDetailedReport(opts.outputReport); err != nil {
			fmt.Fprintf(out, "Warning: Failed to save detailed report: %v\n", err)
		} else {
			fmt.Fprintf(out, "Detailed report saved to: %s\n", opts.outputReport)
		}
	}

	if opts.outputYAMLDir != "" {
		path, err := results.SaveToYAML(opts.outputYAMLDir, result)
		if err != nil {
			fmt.Fprintf(out, "Warning: Failed to save YAML results: %v\n", err)
		} else {
			fmt.Fprintf(out, "YAML results saved to: %s\n", path)
		}
	}
}
