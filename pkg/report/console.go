package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"digital.vasic.assertions/pkg/checks"
)

var (
	outcomeColors = map[checks.Outcome]*color.Color{
		checks.OutcomePassed:  color.New(color.FgGreen),
		checks.OutcomeFailed:  color.New(color.FgRed),
		checks.OutcomeError:   color.New(color.FgMagenta),
		checks.OutcomeSkipped: color.New(color.FgYellow),
	}
	bold  = color.New(color.Bold)
	faint = color.New(color.Faint)
)

// ConsoleReporter renders runs as colored text for a terminal.
// Colors follow color.NoColor.
type ConsoleReporter struct {
	verbose bool
}

// NewConsoleReporter creates a ConsoleReporter. When verbose is true
// passed checks are listed too.
func NewConsoleReporter(verbose bool) *ConsoleReporter {
	return &ConsoleReporter{verbose: verbose}
}

// GenerateReport renders a single run.
func (r *ConsoleReporter) GenerateReport(
	result *checks.RunResult,
) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WriteReport(&buf, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteReport writes one line per reported check and a tally.
func (r *ConsoleReporter) WriteReport(
	w io.Writer,
	result *checks.RunResult,
) error {
	fmt.Fprintf(w, "%s %s\n", bold.Sprint(result.Name), faint.Sprint(result.Source))

	for _, res := range result.Results {
		if res.Outcome == checks.OutcomePassed && !r.verbose {
			continue
		}
		fmt.Fprintf(w, "  %s %s %s\n",
			outcomeColors[res.Outcome].Sprintf("%-7s", strings.ToUpper(string(res.Outcome))),
			res.ID,
			faint.Sprintf("(%s, %v)", res.Kind, res.Duration),
		)
		if res.Message != "" {
			fmt.Fprintf(w, "    %s\n", res.Message)
		}
		for _, line := range strings.Split(res.Detail, "\n") {
			if line != "" {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
		if res.Error != "" {
			fmt.Fprintf(w, "    %s\n", res.Error)
		}
	}

	_, err := fmt.Fprintf(w, "  %s\n", tally(result))
	return err
}

// GenerateMasterSummary renders every run followed by a total line.
func (r *ConsoleReporter) GenerateMasterSummary(
	results []*checks.RunResult,
) ([]byte, error) {
	var buf bytes.Buffer
	failed := 0
	for _, res := range results {
		if err := r.WriteReport(&buf, res); err != nil {
			return nil, err
		}
		if !res.Passed() {
			failed++
		}
	}

	verdict := outcomeColors[checks.OutcomePassed].Sprint("PASSED")
	if failed > 0 {
		verdict = outcomeColors[checks.OutcomeFailed].Sprint("FAILED")
	}
	fmt.Fprintf(&buf, "%s: %d file(s), %d failed\n", verdict, len(results), failed)
	return buf.Bytes(), nil
}

func tally(result *checks.RunResult) string {
	parts := []string{
		fmt.Sprintf("%d passed", result.Count(checks.OutcomePassed)),
		fmt.Sprintf("%d failed", result.Count(checks.OutcomeFailed)),
	}
	if n := result.Count(checks.OutcomeError); n > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", n))
	}
	if n := result.Count(checks.OutcomeSkipped); n > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", n))
	}
	return strings.Join(parts, ", ") + faint.Sprintf(" in %v", result.Duration)
}
