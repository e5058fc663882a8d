package monitor

import (
	"sync"
	"time"

	"digital.vasic.assertions/pkg/checks"
)

// Dashboard states.
const (
	StatusIdle    = "idle"
	StatusRunning = "running"
	StatusPassed  = "passed"
	StatusFailed  = "failed"
)

// CheckState is the latest known state of one check.
type CheckState struct {
	File     string        `json:"file"`
	ID       string        `json:"id"`
	Kind     string        `json:"kind"`
	Status   string        `json:"status"`
	Updated  time.Time     `json:"updated"`
	Duration time.Duration `json:"duration,omitempty"`
	Message  string        `json:"message,omitempty"`
}

// Summary holds aggregate counts over the current check states.
type Summary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Errors   int     `json:"errors"`
	Skipped  int     `json:"skipped"`
	Running  int     `json:"running"`
	PassRate float64 `json:"pass_rate"`
	Elapsed  string  `json:"elapsed"`
}

// Snapshot is a point-in-time copy of a Dashboard.
type Snapshot struct {
	StartTime time.Time             `json:"start_time"`
	Status    string                `json:"status"`
	Runs      int                   `json:"runs"`
	LastRunID string                `json:"last_run_id,omitempty"`
	Checks    map[string]CheckState `json:"checks"`
	Summary   Summary               `json:"summary"`
}

// Dashboard folds runner events into per-check state. Checks are keyed
// by "file/id", so re-running a file overwrites its previous states.
type Dashboard struct {
	mu         sync.RWMutex
	startTime  time.Time
	activeRuns int
	runs       int
	lastRunID  string
	checks     map[string]CheckState
}

// NewDashboard creates an idle dashboard.
func NewDashboard() *Dashboard {
	return &Dashboard{
		startTime: time.Now(),
		checks:    make(map[string]CheckState),
	}
}

func checkKey(file, id string) string {
	return file + "/" + id
}

// Update applies event to the dashboard.
func (d *Dashboard) Update(event checks.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch event.Type {
	case checks.EventRunStarted:
		d.activeRuns++
		d.runs++
		d.lastRunID = event.RunID
	case checks.EventRunFinished:
		if d.activeRuns > 0 {
			d.activeRuns--
		}
	case checks.EventCheckStarted:
		d.checks[checkKey(event.File, event.CheckID)] = CheckState{
			File:    event.File,
			ID:      event.CheckID,
			Kind:    event.Kind,
			Status:  StatusRunning,
			Updated: event.Timestamp,
		}
	case checks.EventCheckFinished:
		d.checks[checkKey(event.File, event.CheckID)] = CheckState{
			File:     event.File,
			ID:       event.CheckID,
			Kind:     event.Kind,
			Status:   string(event.Outcome),
			Updated:  event.Timestamp,
			Duration: event.Duration,
			Message:  event.Message,
		}
	}
}

// Snapshot returns a copy of the current state.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snap := Snapshot{
		StartTime: d.startTime,
		Runs:      d.runs,
		LastRunID: d.lastRunID,
		Checks:    make(map[string]CheckState, len(d.checks)),
	}
	var s Summary
	for k, c := range d.checks {
		snap.Checks[k] = c
		s.Total++
		switch checks.Outcome(c.Status) {
		case checks.OutcomePassed:
			s.Passed++
		case checks.OutcomeFailed:
			s.Failed++
		case checks.OutcomeError:
			s.Errors++
		case checks.OutcomeSkipped:
			s.Skipped++
		default:
			s.Running++
		}
	}
	if completed := s.Passed + s.Failed + s.Errors; completed > 0 {
		s.PassRate = float64(s.Passed) / float64(completed) * 100
	}
	s.Elapsed = time.Since(d.startTime).Round(time.Millisecond).String()
	snap.Summary = s

	switch {
	case d.activeRuns > 0:
		snap.Status = StatusRunning
	case d.runs == 0:
		snap.Status = StatusIdle
	case s.Failed+s.Errors > 0:
		snap.Status = StatusFailed
	default:
		snap.Status = StatusPassed
	}
	return snap
}

// BuildDashboard replays the events of collector into a new
// Dashboard.
func BuildDashboard(collector *Collector) *Dashboard {
	d := NewDashboard()
	for _, event := range collector.Events() {
		d.Update(event)
	}
	return d
}
