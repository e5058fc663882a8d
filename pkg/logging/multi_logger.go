package logging

import "errors"

// NullLogger drops every entry.
type NullLogger struct{}

func (NullLogger) Info(string, ...Field) {}
func (NullLogger) Warn(string, ...Field) {}
func (NullLogger) Error(string, ...Field) {}
func (NullLogger) Debug(string, ...Field) {}
func (NullLogger) WithFields(...Field) Logger { return NullLogger{} }
func (NullLogger) Close() error { return nil }

// MultiLogger sends every entry to each of its loggers in order.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a logger that writes to all of loggers.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{loggers: loggers}
}

// Combine merges loggers into one. Nil and NullLogger entries are
// dropped and nested MultiLoggers are flattened; no loggers yields a
// NullLogger and a single logger is returned as is.
func Combine(loggers ...Logger) Logger {
	var flat []Logger
	for _, l := range loggers {
		switch l := l.(type) {
		case nil, NullLogger:
		case *MultiLogger:
			flat = append(flat, l.loggers...)
		default:
			flat = append(flat, l)
		}
	}
	switch len(flat) {
	case 0:
		return NullLogger{}
	case 1:
		return flat[0]
	default:
		return NewMultiLogger(flat...)
	}
}

func (m *MultiLogger) each(fn func(Logger)) {
	for _, l := range m.loggers {
		fn(l)
	}
}

// Info logs to all loggers.
func (m *MultiLogger) Info(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Info(msg, fields...) })
}

// Warn logs to all loggers.
func (m *MultiLogger) Warn(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Warn(msg, fields...) })
}

// Error logs to all loggers.
func (m *MultiLogger) Error(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Error(msg, fields...) })
}

// Debug logs to all loggers. Each decides whether debug is enabled.
func (m *MultiLogger) Debug(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Debug(msg, fields...) })
}

// WithFields applies fields to every inner logger.
func (m *MultiLogger) WithFields(fields ...Field) Logger {
	out := &MultiLogger{loggers: make([]Logger, 0, len(m.loggers))}
	m.each(func(l Logger) { out.loggers = append(out.loggers, l.WithFields(fields...)) })
	return out
}

// Close closes every logger, even after a failure, and joins the
// errors.
func (m *MultiLogger) Close() error {
	var errs []error
	m.each(func(l Logger) {
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}
