package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"digital.vasic.assertions/pkg/checks"
)

// HTMLReporter generates HTML reports from run results.
type HTMLReporter struct{}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter() *HTMLReporter {
	return &HTMLReporter{}
}

// GenerateReport creates an HTML report for a single run.
func (r *HTMLReporter) GenerateReport(
	result *checks.RunResult,
) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WriteReport(&buf, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteReport writes an HTML report to the specified writer.
func (r *HTMLReporter) WriteReport(
	w io.Writer,
	result *checks.RunResult,
) error {
	r.writeHeader(w, "Check Report: "+result.Name)

	fmt.Fprintf(
		w,
		"<h1>Check Report: %s</h1>\n",
		html.EscapeString(result.Name),
	)
	fmt.Fprintf(
		w,
		"<p><strong>Run ID:</strong> <code>%s</code></p>\n",
		html.EscapeString(result.RunID),
	)
	if result.Source != "" {
		fmt.Fprintf(
			w,
			"<p><strong>Source:</strong> <code>%s</code></p>\n",
			html.EscapeString(result.Source),
		)
	}

	r.writeSummaryTable(w, result)
	r.writeChecksSection(w, result)

	r.writeFooter(w)
	return nil
}

func statusClass(passed bool) string {
	if passed {
		return "status-passed"
	}
	return "status-failed"
}

func (r *HTMLReporter) writeSummaryTable(
	w io.Writer,
	result *checks.RunResult,
) {
	fmt.Fprintln(w, "<h2>Summary</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(w, "<tr><th>Metric</th><th>Value</th></tr>")
	fmt.Fprintf(
		w,
		"<tr><td>Status</td><td class=\"%s\">"+
			"<strong>%s</strong></td></tr>\n",
		statusClass(result.Passed()), status(result),
	)
	fmt.Fprintf(
		w,
		"<tr><td>Start Time</td><td>%s</td></tr>\n",
		result.StartTime.Format(time.RFC3339),
	)
	fmt.Fprintf(
		w,
		"<tr><td>Duration</td><td>%v</td></tr>\n",
		result.Duration,
	)
	for _, row := range []struct {
		label   string
		outcome checks.Outcome
	}{
		{"Passed", checks.OutcomePassed},
		{"Failed", checks.OutcomeFailed},
		{"Errors", checks.OutcomeError},
		{"Skipped", checks.OutcomeSkipped},
	} {
		fmt.Fprintf(
			w,
			"<tr><td>%s</td><td>%d</td></tr>\n",
			row.label, result.Count(row.outcome),
		)
	}
	fmt.Fprintln(w, "</table>")
}

func (r *HTMLReporter) writeChecksSection(
	w io.Writer,
	result *checks.RunResult,
) {
	if len(result.Results) == 0 {
		return
	}

	fmt.Fprintln(w, "<h2>Checks</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(
		w,
		"<tr><th>ID</th><th>Kind</th>"+
			"<th>Outcome</th><th>Details</th></tr>",
	)

	for _, res := range result.Results {
		var details []string
		for _, s := range []string{res.Message, res.Detail, res.Error} {
			if s != "" {
				details = append(details, html.EscapeString(s))
			}
		}
		detail := ""
		if len(details) > 0 {
			detail = "<pre>" + strings.Join(details, "\n") + "</pre>"
		}
		fmt.Fprintf(
			w,
			"<tr><td>%s</td><td><code>%s</code></td>"+
				"<td class=\"%s\">%s</td>"+
				"<td>%s</td></tr>\n",
			html.EscapeString(res.ID),
			html.EscapeString(res.Kind),
			statusClass(res.Outcome != checks.OutcomeFailed && res.Outcome != checks.OutcomeError),
			strings.ToUpper(string(res.Outcome)),
			detail,
		)
	}

	fmt.Fprintln(w, "</table>")
}

// GenerateMasterSummary creates an HTML summary of all runs.
func (r *HTMLReporter) GenerateMasterSummary(
	results []*checks.RunResult,
) ([]byte, error) {
	var buf bytes.Buffer

	r.writeHeader(&buf, "Assertion Checks - Master Summary")

	fmt.Fprintln(
		&buf,
		"<h1>Assertion Checks - Master Summary</h1>",
	)
	fmt.Fprintf(
		&buf,
		"<p><strong>Generated:</strong> %s</p>\n",
		time.Now().Format(time.RFC3339),
	)

	r.writeMasterOverview(&buf, results)
	r.writeMasterStats(&buf, results)
	r.writeFooter(&buf)

	return buf.Bytes(), nil
}

func (r *HTMLReporter) writeMasterOverview(
	w io.Writer,
	results []*checks.RunResult,
) {
	fmt.Fprintln(w, "<h2>Overview</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(
		w,
		"<tr><th>File</th><th>Status</th>"+
			"<th>Checks</th><th>Duration</th></tr>",
	)

	for _, result := range results {
		fmt.Fprintf(
			w,
			"<tr><td>%s</td>"+
				"<td class=\"%s\">%s</td>"+
				"<td>%d/%d</td><td>%v</td></tr>\n",
			html.EscapeString(result.Name),
			statusClass(result.Passed()), status(result),
			result.Count(checks.OutcomePassed), len(result.Results),
			result.Duration,
		)
	}

	fmt.Fprintln(w, "</table>")
}

func (r *HTMLReporter) writeMasterStats(
	w io.Writer,
	results []*checks.RunResult,
) {
	passedCount := 0
	totalDuration := time.Duration(0)
	for _, res := range results {
		if res.Passed() {
			passedCount++
		}
		totalDuration += res.Duration
	}

	fmt.Fprintln(w, "<h2>Statistics</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(w, "<tr><th>Metric</th><th>Value</th></tr>")
	fmt.Fprintf(
		w,
		"<tr><td>Total Files</td><td>%d</td></tr>\n",
		len(results),
	)
	fmt.Fprintf(
		w,
		"<tr><td>Passed</td><td>%d</td></tr>\n",
		passedCount,
	)
	fmt.Fprintf(
		w,
		"<tr><td>Failed</td><td>%d</td></tr>\n",
		len(results)-passedCount,
	)

	if len(results) > 0 {
		pct := float64(passedCount) /
			float64(len(results)) * 100
		fmt.Fprintf(
			w,
			"<tr><td>Pass Rate</td>"+
				"<td>%.0f%%</td></tr>\n",
			pct,
		)
	}

	fmt.Fprintf(
		w,
		"<tr><td>Total Duration</td>"+
			"<td>%v</td></tr>\n",
		totalDuration,
	)
	fmt.Fprintln(w, "</table>")
}

func (r *HTMLReporter) writeHeader(w io.Writer, title string) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 0 auto; padding: 20px; color: #333; }
h1 { border-bottom: 2px solid #3498db; padding-bottom: 10px; }
table { border-collapse: collapse; width: 100%%; margin: 10px 0; }
th, td { border: 1px solid #ddd; padding: 6px 10px; text-align: left; vertical-align: top; }
th { background: #3498db; color: #fff; }
pre { margin: 0; white-space: pre-wrap; }
.status-passed { color: #27ae60; font-weight: bold; }
.status-failed { color: #e74c3c; font-weight: bold; }
footer { margin-top: 40px; color: #7f8c8d; font-size: 0.9em; }
</style>
</head>
<body>
`, html.EscapeString(title))
}

func (r *HTMLReporter) writeFooter(w io.Writer) {
	fmt.Fprintln(w, "<footer><p>Generated by assertctl</p></footer>")
	fmt.Fprintln(w, "</body>")
	fmt.Fprintln(w, "</html>")
}
