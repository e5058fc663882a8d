package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"digital.vasic.assertions/pkg/checks"
)

var jsonMarshal = json.Marshal

// HistoricalEntry represents a single run in the history log.
type HistoricalEntry struct {
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Duration  string    `json:"duration"`
	Passed    int       `json:"passed"`
	Total     int       `json:"total"`
}

// AppendToHistory adds an entry for result to the history log at
// historyPath. Each entry is a single JSON line.
func AppendToHistory(
	historyPath string,
	result *checks.RunResult,
) error {
	entry := HistoricalEntry{
		Timestamp: result.EndTime,
		RunID:     result.RunID,
		Name:      result.Name,
		Status:    status(result),
		Duration:  result.Duration.String(),
		Passed:    result.Count(checks.OutcomePassed),
		Total:     len(result.Results),
	}

	data, err := jsonMarshal(entry)
	if err != nil {
		return fmt.Errorf(
			"failed to marshal history entry: %w", err,
		)
	}

	file, err := os.OpenFile(
		historyPath,
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to open history file: %w", err,
		)
	}
	defer func() { _ = file.Close() }()

	_, err = fmt.Fprintln(file, string(data))
	return err
}
