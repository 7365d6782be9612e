package evalcmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/lehigh-university-libraries/reclink/internal/eval/metrics"
)

func executeReport(out io.Writer, resultsPath, format string) error {
	// Load results
	result, err := metrics.LoadFromJSON(resultsPath)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	switch format {
	case "text":
		return printTextReport(out, result)
	case "json":
		return printJSONReport(out, result)
	case "csv":
		return printCSVReport(out, result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printTextReport(out io.Writer, result *metrics.EvaluationResult) error {
	result.PrintSummary(out)
	fmt.Fprintln(out)
	return result.WriteDetailedReport(out)
}

func printJSONReport(out io.Writer, result *metrics.EvaluationResult) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func printCSVReport(out io.Writer, result *metrics.EvaluationResult) error {
	writer := csv.NewWriter(out)

	// Write header
	if err := writer.Write([]string{"ID A", "ID B", "Score", "True Positive"}); err != nil {
		return err
	}

	// Write rows
	for _, p := range result.Pairs {
		row := []string{
			p.A,
			p.B,
			fmt.Sprintf("%.4f", p.Score),
			strconv.FormatBool(p.TruePositive),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
