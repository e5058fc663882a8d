package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.assertions/pkg/checks"
)

func init() {
	color.NoColor = true
}

func makeTestResult() *checks.RunResult {
	return &checks.RunResult{
		RunID:     "6f1c2a9e-0000-4000-8000-000000000001",
		Name:      "smoke",
		Source:    "checks/smoke.yaml",
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 1, 1, 0, 0, 5, 0, time.UTC),
		Duration:  5 * time.Second,
		Results: []checks.Result{
			{ID: "status", Kind: "Equal", Outcome: checks.OutcomePassed},
			{
				ID:      "email",
				Kind:    "EndsWith",
				Outcome: checks.OutcomeFailed,
				Message: "email domain <changed>",
				Detail:  "Expected \"a@x.com\"\nto end with \"@y.org\"",
			},
			{ID: "later", Kind: "IsNone", Outcome: checks.OutcomeSkipped},
		},
	}
}

func makeTestResults() []*checks.RunResult {
	return []*checks.RunResult{
		makeTestResult(),
		{
			RunID:     "6f1c2a9e-0000-4000-8000-000000000002",
			Name:      "health",
			StartTime: time.Date(2026, 1, 1, 0, 0, 6, 0, time.UTC),
			EndTime:   time.Date(2026, 1, 1, 0, 0, 8, 0, time.UTC),
			Duration:  2 * time.Second,
			Results: []checks.Result{
				{ID: "up", Kind: "True", Outcome: checks.OutcomePassed},
			},
		},
	}
}

func TestStatus(t *testing.T) {
	results := makeTestResults()
	assert.Equal(t, "FAILED", status(results[0]))
	assert.Equal(t, "PASSED", status(results[1]))
}

func TestReporters_ImplementInterface(t *testing.T) {
	reporters := []Reporter{
		NewJSONReporter(false),
		NewHTMLReporter(),
		NewConsoleReporter(false),
	}
	for _, r := range reporters {
		var buf bytes.Buffer
		require.NoError(t, r.WriteReport(&buf, makeTestResult()))
		assert.NotEmpty(t, buf.String())

		data, err := r.GenerateMasterSummary(makeTestResults())
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}

func TestConsoleReporter_WriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsoleReporter(false).WriteReport(&buf, makeTestResult()))
	out := buf.String()

	assert.Contains(t, out, "smoke checks/smoke.yaml")
	assert.Contains(t, out, "FAILED  email (EndsWith, 0s)")
	assert.Contains(t, out, "    email domain <changed>")
	assert.Contains(t, out, "    to end with \"@y.org\"")
	assert.Contains(t, out, "SKIPPED later")
	assert.NotContains(t, out, "status", "passed checks are hidden")
	assert.Contains(t, out, "1 passed, 1 failed, 1 skipped in 5s")
}

func TestConsoleReporter_Verbose(t *testing.T) {
	data, err := NewConsoleReporter(true).GenerateReport(makeTestResult())
	require.NoError(t, err)
	assert.Contains(t, string(data), "PASSED  status (Equal, 0s)")
}

func TestConsoleReporter_ErrorOutcome(t *testing.T) {
	result := &checks.RunResult{Name: "bad", Results: []checks.Result{
		{ID: "x", Kind: "Nope", Outcome: checks.OutcomeError, Error: "unknown assertion kind"},
	}}
	data, err := NewConsoleReporter(false).GenerateReport(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ERROR   x (Nope, 0s)")
	assert.Contains(t, string(data), "    unknown assertion kind")
	assert.Contains(t, string(data), "0 passed, 0 failed, 1 errors")
}

func TestConsoleReporter_GenerateMasterSummary(t *testing.T) {
	r := NewConsoleReporter(false)

	data, err := r.GenerateMasterSummary(makeTestResults())
	require.NoError(t, err)
	assert.Contains(t, string(data), "FAILED: 2 file(s), 1 failed")

	data, err = r.GenerateMasterSummary(makeTestResults()[1:])
	require.NoError(t, err)
	assert.Contains(t, string(data), "PASSED: 1 file(s), 0 failed")
}
