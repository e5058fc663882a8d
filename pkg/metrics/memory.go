package metrics

import (
	"sort"
	"sync"
	"time"
)

// MemoryRecorder implements Recorder with in-memory counters. It is
// safe for concurrent use.
type MemoryRecorder struct {
	mu        sync.Mutex
	checks    map[string]int
	durations map[string][]time.Duration
	runTotal  int
	active    int
}

// NewMemoryRecorder creates a new MemoryRecorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{
		checks:    make(map[string]int),
		durations: make(map[string][]time.Duration),
	}
}

func (m *MemoryRecorder) RecordCheck(kind, outcome string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks[kind+":"+outcome]++
	m.durations[kind] = append(m.durations[kind], duration)
}

func (m *MemoryRecorder) IncrementRunTotal() {
	m.mu.Lock()
	m.runTotal++
	m.mu.Unlock()
}

func (m *MemoryRecorder) SetActiveChecks(count int) {
	m.mu.Lock()
	m.active = count
	m.mu.Unlock()
}

// CheckCount returns the count for a kind+outcome combination.
func (m *MemoryRecorder) CheckCount(kind, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.checks[kind+":"+outcome]
}

// TotalDuration returns the summed duration recorded for kind.
func (m *MemoryRecorder) TotalDuration(kind string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total time.Duration
	for _, d := range m.durations[kind] {
		total += d
	}
	return total
}

// Kinds returns the kinds seen so far, sorted.
func (m *MemoryRecorder) Kinds() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.durations))
	for k := range m.durations {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// RunTotal returns the total number of runs.
func (m *MemoryRecorder) RunTotal() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runTotal
}

// ActiveChecks returns the current active checks gauge.
func (m *MemoryRecorder) ActiveChecks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}
