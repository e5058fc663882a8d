package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"digital.vasic.assertions/pkg/checks"
)

var jsonMarshalIndent = json.MarshalIndent

// MasterSummary represents an aggregated summary of check runs.
type MasterSummary struct {
	ID              string        `json:"id"`
	GeneratedAt     time.Time     `json:"generated_at"`
	Runs            []RunSummary  `json:"runs"`
	TotalRuns       int           `json:"total_runs"`
	PassedRuns      int           `json:"passed_runs"`
	FailedRuns      int           `json:"failed_runs"`
	TotalChecks     int           `json:"total_checks"`
	PassedChecks    int           `json:"passed_checks"`
	TotalDuration   time.Duration `json:"total_duration"`
	AveragePassRate float64       `json:"average_pass_rate"`
}

// RunSummary represents a summary of a single run.
type RunSummary struct {
	RunID    string        `json:"run_id"`
	Name     string        `json:"name"`
	Source   string        `json:"source,omitempty"`
	Status   string        `json:"status"`
	Duration time.Duration `json:"duration"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Errors   int           `json:"errors"`
	Skipped  int           `json:"skipped"`
	Total    int           `json:"total"`
}

// BuildMasterSummary creates a master summary from run results.
func BuildMasterSummary(
	results []*checks.RunResult,
) *MasterSummary {
	now := time.Now()
	summary := &MasterSummary{
		ID:          fmt.Sprintf("summary_%s", now.Format("20060102_150405")),
		GeneratedAt: now,
		Runs:        make([]RunSummary, 0, len(results)),
	}

	for _, r := range results {
		rs := RunSummary{
			RunID:    r.RunID,
			Name:     r.Name,
			Source:   r.Source,
			Status:   strings.ToLower(status(r)),
			Duration: r.Duration,
			Passed:   r.Count(checks.OutcomePassed),
			Failed:   r.Count(checks.OutcomeFailed),
			Errors:   r.Count(checks.OutcomeError),
			Skipped:  r.Count(checks.OutcomeSkipped),
			Total:    len(r.Results),
		}

		summary.Runs = append(summary.Runs, rs)
		summary.TotalRuns++
		summary.TotalChecks += rs.Total
		summary.PassedChecks += rs.Passed
		summary.TotalDuration += r.Duration

		if r.Passed() {
			summary.PassedRuns++
		} else {
			summary.FailedRuns++
		}
	}

	if summary.TotalRuns > 0 {
		summary.AveragePassRate =
			float64(summary.PassedRuns) /
				float64(summary.TotalRuns)
	}

	return summary
}

// SaveMasterSummary saves the master summary to both JSON and
// Markdown files in outputDir and points latest_summary.* at them.
func SaveMasterSummary(
	summary *MasterSummary,
	outputDir string,
) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf(
			"failed to create output directory: %w", err,
		)
	}

	ts := summary.GeneratedAt.Format("20060102_150405")

	jsonPath := filepath.Join(
		outputDir,
		fmt.Sprintf("master_summary_%s.json", ts),
	)
	jsonData, err := jsonMarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf(
			"failed to marshal summary: %w", err,
		)
	}
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf(
			"failed to write JSON summary: %w", err,
		)
	}

	mdPath := filepath.Join(
		outputDir,
		fmt.Sprintf("master_summary_%s.md", ts),
	)
	if err := os.WriteFile(
		mdPath, []byte(generateSummaryMarkdown(summary)), 0644,
	); err != nil {
		return fmt.Errorf(
			"failed to write Markdown summary: %w", err,
		)
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestMD := filepath.Join(outputDir, "latest_summary.md")

	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return nil
}

// generateSummaryMarkdown creates markdown from a master summary.
func generateSummaryMarkdown(summary *MasterSummary) string {
	var sb strings.Builder

	sb.WriteString("# Assertion Checks - Master Summary\n\n")
	fmt.Fprintf(&sb, "**Summary ID:** %s\n\n", summary.ID)
	fmt.Fprintf(&sb, "**Generated:** %s\n\n", summary.GeneratedAt.Format(time.RFC3339))

	sb.WriteString("## Overview\n\n")
	sb.WriteString("| File | Status | Duration | Checks |\n")
	sb.WriteString("|------|--------|----------|--------|\n")

	for _, r := range summary.Runs {
		fmt.Fprintf(&sb, "| %s | %s | %v | %d/%d |\n",
			r.Name, strings.ToUpper(r.Status), r.Duration, r.Passed, r.Total)
	}

	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	fmt.Fprintf(&sb, "| Total Files | %d |\n", summary.TotalRuns)
	fmt.Fprintf(&sb, "| Passed | %d |\n", summary.PassedRuns)
	fmt.Fprintf(&sb, "| Failed | %d |\n", summary.FailedRuns)
	fmt.Fprintf(&sb, "| Checks Passed | %d/%d |\n", summary.PassedChecks, summary.TotalChecks)
	fmt.Fprintf(&sb, "| Pass Rate | %.0f%% |\n", summary.AveragePassRate*100)
	fmt.Fprintf(&sb, "| Total Duration | %v |\n", summary.TotalDuration)

	sb.WriteString("\n---\n\n")
	sb.WriteString("*Generated by assertctl*\n")

	return sb.String()
}
