package reference

import (
	"regexp"

	"github.com/smarty/assertions"
	"github.com/stretchr/testify/assert"

	"digital.vasic.assertions/pkg/assertion"
)

// compilePattern accepts a *regexp.Regexp or a pattern string.
func compilePattern(kind, param string, v any) (*regexp.Regexp, error) {
	switch p := v.(type) {
	case *regexp.Regexp:
		if p == nil {
			return nil, assertion.Usagef(kind, "%s must not be nil", param)
		}
		return p, nil
	case string:
		if p == "" {
			return nil, assertion.Usagef(kind, "%s must not be empty", param)
		}
		rx, err := regexp.Compile(p)
		if err != nil {
			return nil, assertion.Usagef(kind, "invalid %s: %v", param, err)
		}
		return rx, nil
	default:
		return nil, assertion.Usagef(
			kind, "%s must be a string or *regexp.Regexp, got %T", param, v,
		)
	}
}

// Regex checks that expected_regex matches somewhere in text.
func Regex(call *assertion.Call) error {
	const kind = "Regex"
	rx, err := compilePattern(kind, ParamExpectedRegex, call.Named[ParamExpectedRegex])
	if err != nil {
		return err
	}
	text := call.Named[ParamText]
	return check(kind, call, func(t assert.TestingT) bool {
		return assert.Regexp(t, rx, text)
	})
}

// NotRegex checks that unexpected_regex matches nowhere in text.
func NotRegex(call *assertion.Call) error {
	const kind = "NotRegex"
	rx, err := compilePattern(kind, ParamUnexpectedRegex, call.Named[ParamUnexpectedRegex])
	if err != nil {
		return err
	}
	text := call.Named[ParamText]
	return check(kind, call, func(t assert.TestingT) bool {
		return assert.NotRegexp(t, rx, text)
	})
}

// so adapts a smarty assertion, which reports failure as a non-empty
// string.
func so(kind string, call *assertion.Call, result string) error {
	if result == "" {
		return nil
	}
	return fail(kind, call, "%s", result)
}

// StartsWith checks that the string text begins with prefix.
func StartsWith(call *assertion.Call) error {
	return so("StartsWith", call,
		assertions.ShouldStartWith(call.Named[ParamText], call.Named[ParamPrefix]))
}

// EndsWith checks that the string text ends with suffix.
func EndsWith(call *assertion.Call) error {
	return so("EndsWith", call,
		assertions.ShouldEndWith(call.Named[ParamText], call.Named[ParamSuffix]))
}
