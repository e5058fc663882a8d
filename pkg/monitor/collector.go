// Package monitor exposes live check progress. A Collector records
// runner events, a Dashboard folds them into per-check state, and a
// Server streams both over server-sent events and WebSocket.
package monitor

import (
	"sync"
	"time"

	"digital.vasic.assertions/pkg/checks"
)

// Collector captures runner events and aggregate counts.
type Collector struct {
	mu       sync.RWMutex
	events   []checks.Event
	handlers []func(checks.Event)
	stats    Stats
}

// Stats holds aggregate statistics.
type Stats struct {
	Runs      int           `json:"runs"`
	Checks    int           `json:"checks"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Errors    int           `json:"errors"`
	Skipped   int           `json:"skipped"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		events: make([]checks.Event, 0, 64),
		stats:  Stats{StartTime: time.Now()},
	}
}

// OnEvent registers a handler called for each event.
func (c *Collector) OnEvent(handler func(checks.Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Observe records an event and notifies all handlers. It has the
// shape of checks.Observer.
func (c *Collector) Observe(event checks.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	switch event.Type {
	case checks.EventRunStarted:
		c.stats.Runs++
	case checks.EventCheckFinished:
		c.stats.Checks++
		switch event.Outcome {
		case checks.OutcomePassed:
			c.stats.Passed++
		case checks.OutcomeFailed:
			c.stats.Failed++
		case checks.OutcomeError:
			c.stats.Errors++
		case checks.OutcomeSkipped:
			c.stats.Skipped++
		}
	}
	handlers := make([]func(checks.Event), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// Events returns a copy of all collected events.
func (c *Collector) Events() []checks.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]checks.Event, len(c.events))
	copy(result, c.events)
	return result
}

// Stats returns the current aggregate statistics.
func (c *Collector) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Duration = time.Since(s.StartTime)
	return s
}

// Reset clears all collected events and statistics. Handlers stay
// registered.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
	c.stats = Stats{StartTime: time.Now()}
}
