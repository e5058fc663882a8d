package report

import (
	"encoding/json"
	"io"
	"time"

	"digital.vasic.assertions/pkg/checks"
)

// Marshal functions are variables so tests can inject failures.
var (
	jsonReportMarshal       = json.Marshal
	jsonReportMarshalIndent = json.MarshalIndent
)

// JSONReporter generates JSON reports from run results.
type JSONReporter struct {
	pretty bool
}

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

func (r *JSONReporter) marshal(v any) ([]byte, error) {
	if r.pretty {
		return jsonReportMarshalIndent(v, "", "  ")
	}
	return jsonReportMarshal(v)
}

// GenerateReport creates a JSON report for a single run.
func (r *JSONReporter) GenerateReport(
	result *checks.RunResult,
) ([]byte, error) {
	return r.marshal(result)
}

// jsonMasterSummary is the JSON structure for a master summary.
type jsonMasterSummary struct {
	GeneratedAt   time.Time           `json:"generated_at"`
	TotalRuns     int                 `json:"total_runs"`
	Passed        int                 `json:"passed"`
	Failed        int                 `json:"failed"`
	TotalDuration time.Duration       `json:"total_duration"`
	Results       []*checks.RunResult `json:"results"`
}

// GenerateMasterSummary creates a JSON summary of all runs.
func (r *JSONReporter) GenerateMasterSummary(
	results []*checks.RunResult,
) ([]byte, error) {
	summary := jsonMasterSummary{
		GeneratedAt: time.Now(),
		TotalRuns:   len(results),
		Results:     results,
	}

	for _, res := range results {
		if res.Passed() {
			summary.Passed++
		} else {
			summary.Failed++
		}
		summary.TotalDuration += res.Duration
	}

	return r.marshal(summary)
}

// WriteReport writes a JSON report followed by a newline.
func (r *JSONReporter) WriteReport(
	w io.Writer,
	result *checks.RunResult,
) error {
	data, err := r.GenerateReport(result)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
