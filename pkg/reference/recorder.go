// Package reference holds the reference functions behind every
// assertion kind. Each one runs a testify check against a recording
// assert.TestingT and turns a recorded failure into an
// *assertion.Failure.
package reference

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/stretchr/testify/assert"

	"digital.vasic.assertions/pkg/assertion"
)

// recorder is an assert.TestingT that keeps what testify reports
// instead of failing a test.
type recorder struct {
	failed bool
	output []string
}

// Errorf implements assert.TestingT.
func (r *recorder) Errorf(format string, args ...any) {
	r.failed = true
	r.output = append(r.output, fmt.Sprintf(format, args...))
}

var (
	labelLine        = regexp.MustCompile(`^\t([A-Za-z][A-Za-z ]*):\s*\t(.*)$`)
	continuationLine = regexp.MustCompile(`^\t +\t`)
)

// detail extracts the "Error:" block of testify's labeled output.
func (r *recorder) detail() string {
	var lines []string
	inError := false
	for _, out := range r.output {
		for _, line := range strings.Split(out, "\n") {
			if m := labelLine.FindStringSubmatch(line); m != nil {
				inError = m[1] == "Error"
				if inError {
					lines = append(lines, m[2])
				}
				continue
			}
			if inError {
				lines = append(lines, continuationLine.ReplaceAllString(line, ""))
			}
		}
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// check runs fn against a fresh recorder and reports a *Failure for
// kind when it records anything.
func check(kind string, call *assertion.Call, fn func(t assert.TestingT) bool) error {
	rec := &recorder{}
	ok := fn(rec)
	if ok && !rec.failed {
		return nil
	}
	return &assertion.Failure{
		Kind:    kind,
		Message: call.Message(),
		Detail:  rec.detail(),
	}
}

// holds runs fn against a throwaway recorder and reports whether the
// check passed.
func holds(fn func(t assert.TestingT) bool) bool {
	rec := &recorder{}
	return fn(rec) && !rec.failed
}

// fail builds a *Failure for kind with a formatted detail.
func fail(kind string, call *assertion.Call, format string, args ...any) error {
	return &assertion.Failure{
		Kind:    kind,
		Message: call.Message(),
		Detail:  fmt.Sprintf(format, args...),
	}
}
