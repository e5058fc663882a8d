// Package metrics records counters about check runs.
package metrics

import "time"

// Recorder defines the interface for recording check metrics.
type Recorder interface {
	// RecordCheck records one check evaluation of kind with its
	// outcome (passed, failed or error).
	RecordCheck(kind, outcome string, duration time.Duration)
	// IncrementRunTotal increments the total run counter.
	IncrementRunTotal()
	// SetActiveChecks sets the gauge of checks being evaluated.
	SetActiveChecks(count int)
}

// NoopRecorder is a no-op implementation of Recorder
// useful for testing or when metrics collection is disabled.
type NoopRecorder struct{}

func (NoopRecorder) RecordCheck(_, _ string, _ time.Duration) {}
func (NoopRecorder) IncrementRunTotal()                        {}
func (NoopRecorder) SetActiveChecks(_ int)                     {}
