package assertion

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFailure matches every *Failure via errors.Is.
	ErrFailure = errors.New("assertion failed")

	// ErrUsage matches every *UsageError via errors.Is.
	ErrUsage = errors.New("invalid assertion usage")
)

// Failure is returned when the checked condition does not hold.
type Failure struct {
	// Kind is the assertion kind that failed.
	Kind string `json:"kind"`

	// Message is the resolved caller message, possibly empty.
	Message string `json:"message,omitempty"`

	// Detail is the explanation produced by the reference
	// implementation.
	Detail string `json:"detail,omitempty"`
}

// Error implements error.
func (f *Failure) Error() string {
	var sb strings.Builder
	sb.WriteString(f.Kind)
	sb.WriteString(" failed")
	if f.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(f.Message)
	}
	if f.Detail != "" {
		sb.WriteString("\n")
		sb.WriteString(f.Detail)
	}
	return sb.String()
}

// Is reports whether target is ErrFailure.
func (f *Failure) Is(target error) bool {
	return target == ErrFailure
}

// UsageError is returned when an assertion is called with an invalid
// combination of arguments.
type UsageError struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// Error implements error.
func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Is reports whether target is ErrUsage.
func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

// Usagef builds a *UsageError for kind.
func Usagef(kind, format string, args ...any) *UsageError {
	return &UsageError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// IsFailure reports whether err is (or wraps) an assertion failure
// and returns it.
func IsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func stringify(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}
