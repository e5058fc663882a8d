// Package report renders check run results as console text, JSON,
// HTML and Markdown summaries.
package report

import (
	"io"

	"digital.vasic.assertions/pkg/checks"
)

// Reporter defines the interface for generating run reports.
type Reporter interface {
	// GenerateReport creates a report for a single run.
	GenerateReport(result *checks.RunResult) ([]byte, error)

	// GenerateMasterSummary creates a summary of all runs.
	GenerateMasterSummary(
		results []*checks.RunResult,
	) ([]byte, error)

	// WriteReport writes a report to the specified writer.
	WriteReport(w io.Writer, result *checks.RunResult) error
}

// status returns the upper-case verdict of a run.
func status(result *checks.RunResult) string {
	if result.Passed() {
		return "PASSED"
	}
	return "FAILED"
}
