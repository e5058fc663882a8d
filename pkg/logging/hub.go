package logging

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// RootName is how the unnamed root logger appears in record output.
const RootName = "root"

// Record is a single entry emitted through a Hub logger.
type Record struct {
	Time    time.Time
	Logger  string
	Level   LogLevel
	Message string
	Fields  map[string]any
}

// Output formats r as LEVEL:logger:message.
func (r Record) Output() string {
	name := r.Logger
	if name == "" {
		name = RootName
	}
	return fmt.Sprintf("%s:%s:%s", r.Level, name, r.Message)
}

// Hub owns a tree of named loggers. Names are dot separated: "a.b"
// is a child of "a", and "" is the root of every name. Records go to
// every open Watcher on the logger or one of its ancestors; records
// no Watcher claims go to the sink.
type Hub struct {
	mu       sync.Mutex
	sink     Logger
	watchers []*Watcher
}

// NewHub creates a Hub that forwards unwatched records to sink. A nil
// sink discards them.
func NewHub(sink Logger) *Hub {
	if sink == nil {
		sink = NullLogger{}
	}
	return &Hub{sink: sink}
}

var defaultHub = NewHub(NullLogger{})

// Default returns the process-wide Hub.
func Default() *Hub {
	return defaultHub
}

// Get returns the named logger of the default Hub.
func Get(name string) Logger {
	return defaultHub.Logger(name)
}

// SetSink replaces the sink and returns the previous one.
func (h *Hub) SetSink(sink Logger) Logger {
	if sink == nil {
		sink = NullLogger{}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.sink
	h.sink = sink
	return prev
}

// Logger returns the logger called name.
func (h *Hub) Logger(name string) Logger {
	return &hubLogger{hub: h, name: name}
}

// Watch starts capturing records at or above level emitted on name
// or its descendants. Call Close when done.
func (h *Hub) Watch(name string, level LogLevel) *Watcher {
	w := &Watcher{hub: h, name: name, level: level}
	h.mu.Lock()
	h.watchers = append(h.watchers, w)
	h.mu.Unlock()
	return w
}

func (h *Hub) emit(rec Record) {
	h.mu.Lock()
	claimed := false
	for _, w := range h.watchers {
		if w.accepts(rec) {
			w.add(rec)
			claimed = true
		}
	}
	sink := h.sink
	h.mu.Unlock()

	if claimed {
		return
	}

	if rec.Logger != "" {
		rec.Fields = mergeFields(rec.Fields, []Field{StringField("logger", rec.Logger)})
	}
	fields := make([]Field, 0, len(rec.Fields))
	for k, v := range rec.Fields {
		fields = append(fields, Field{Key: k, Value: v})
	}

	switch rec.Level {
	case LevelDebug:
		sink.Debug(rec.Message, fields...)
	case LevelInfo:
		sink.Info(rec.Message, fields...)
	case LevelWarn:
		sink.Warn(rec.Message, fields...)
	default:
		sink.Error(rec.Message, fields...)
	}
}

func (h *Hub) remove(w *Watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, x := range h.watchers {
		if x == w {
			h.watchers = append(h.watchers[:i], h.watchers[i+1:]...)
			return
		}
	}
}

// isDescendant reports whether name equals ancestor or sits below
// it in the dot hierarchy.
func isDescendant(name, ancestor string) bool {
	if ancestor == "" || name == ancestor {
		return true
	}
	return strings.HasPrefix(name, ancestor+".")
}

// Watcher collects records for one scope.
type Watcher struct {
	hub   *Hub
	name  string
	level LogLevel

	mu      sync.Mutex
	records []Record
}

// Name returns the watched logger name.
func (w *Watcher) Name() string {
	return w.name
}

// Level returns the minimum captured level.
func (w *Watcher) Level() LogLevel {
	return w.level
}

func (w *Watcher) accepts(rec Record) bool {
	return rec.Level >= w.level && isDescendant(rec.Logger, w.name)
}

func (w *Watcher) add(rec Record) {
	w.mu.Lock()
	w.records = append(w.records, rec)
	w.mu.Unlock()
}

// Records returns a copy of the captured records.
func (w *Watcher) Records() []Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Record, len(w.records))
	copy(out, w.records)
	return out
}

// Output returns the captured records formatted with Record.Output.
func (w *Watcher) Output() []string {
	recs := w.Records()
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Output()
	}
	return out
}

// Close stops capturing. It is safe to call more than once.
func (w *Watcher) Close() {
	w.hub.remove(w)
}

// hubLogger is a named Logger bound to a Hub.
type hubLogger struct {
	hub    *Hub
	name   string
	fields map[string]any
}

func (l *hubLogger) log(level LogLevel, msg string, fields []Field) {
	l.hub.emit(Record{
		Time:    time.Now(),
		Logger:  l.name,
		Level:   level,
		Message: msg,
		Fields:  mergeFields(l.fields, fields),
	})
}

func (l *hubLogger) Info(msg string, fields ...Field) {
	l.log(LevelInfo, msg, fields)
}

func (l *hubLogger) Warn(msg string, fields ...Field) {
	l.log(LevelWarn, msg, fields)
}

func (l *hubLogger) Error(msg string, fields ...Field) {
	l.log(LevelError, msg, fields)
}

func (l *hubLogger) Debug(msg string, fields ...Field) {
	l.log(LevelDebug, msg, fields)
}

func (l *hubLogger) WithFields(fields ...Field) Logger {
	return &hubLogger{
		hub:    l.hub,
		name:   l.name,
		fields: mergeFields(l.fields, fields),
	}
}

// Close is a no-op; the Hub owns the sink.
func (l *hubLogger) Close() error {
	return nil
}
