package checks

import "time"

// EventType identifies a runner lifecycle event.
type EventType string

const (
	EventRunStarted    EventType = "run_started"
	EventCheckStarted  EventType = "check_started"
	EventCheckFinished EventType = "check_finished"
	EventRunFinished   EventType = "run_finished"
)

// Event is emitted to observers while a file runs. Check events carry
// the check ID and kind; finished events carry the outcome.
type Event struct {
	Type      EventType     `json:"type"`
	RunID     string        `json:"run_id"`
	File      string        `json:"file"`
	CheckID   string        `json:"check_id,omitempty"`
	Kind      string        `json:"kind,omitempty"`
	Outcome   Outcome       `json:"outcome,omitempty"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// Observer receives runner events. It is called synchronously from
// the goroutine running the file and must not block.
type Observer func(Event)

// WithObserver adds an observer. Observers run in registration order.
func WithObserver(o Observer) RunnerOption {
	return func(r *Runner) {
		r.observers = append(r.observers, o)
	}
}

func (r *Runner) emit(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	for _, o := range r.observers {
		o(e)
	}
}

// outcomeMessage picks the text shown next to an outcome.
func outcomeMessage(res Result) string {
	if res.Error != "" {
		return res.Error
	}
	return res.Message
}
