package checks

import (
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"digital.vasic.assertions/pkg/assertion"
)

const (
	// pathPrefix marks an argument resolved from the input document.
	pathPrefix = "$."
	// escapedPrefix yields a literal string starting with "$.".
	escapedPrefix = "$$."
	// documentRef refers to the whole input document.
	documentRef = "$"
)

// maxExactInt is the largest integer a float64 holds exactly.
const maxExactInt = 1 << 53

// ResolveArgs returns args as named assertion arguments. Strings of
// the form "$.path" are replaced by the value at path in input
// (gjson syntax); "$" is the whole document; a leading "$$." is
// unescaped to "$.". Whole numbers become ints so that values from
// YAML, JSON and the input document compare equal.
func ResolveArgs(args map[string]any, input []byte) (assertion.Named, error) {
	named := make(assertion.Named, len(args)+1)
	for k, v := range args {
		resolved, err := resolveValue(v, input)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", k, err)
		}
		named[k] = resolved
	}
	return named, nil
}

func resolveValue(v any, input []byte) (any, error) {
	switch val := v.(type) {
	case string:
		return resolveString(val, input)
	case float64:
		return normalizeNumber(val), nil
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			r, err := resolveValue(e, input)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			r, err := resolveValue(e, input)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil
	default:
		return v, nil
	}
}

func resolveString(s string, input []byte) (any, error) {
	switch {
	case strings.HasPrefix(s, escapedPrefix):
		return s[1:], nil
	case s == documentRef:
		if input == nil {
			return nil, fmt.Errorf("%q used without an input document", s)
		}
		return fromResult(gjson.ParseBytes(input)), nil
	case strings.HasPrefix(s, pathPrefix):
		if input == nil {
			return nil, fmt.Errorf("%q used without an input document", s)
		}
		r := gjson.GetBytes(input, s[len(pathPrefix):])
		if !r.Exists() {
			return nil, fmt.Errorf("path %q not found in input", s)
		}
		return fromResult(r), nil
	default:
		return s, nil
	}
}

func normalizeNumber(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < maxExactInt {
		return int(f)
	}
	return f
}

// fromResult converts a gjson result into plain Go values.
func fromResult(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return normalizeNumber(r.Num)
	case gjson.String:
		return r.Str
	}

	if r.IsArray() {
		out := []any{}
		r.ForEach(func(_, v gjson.Result) bool {
			out = append(out, fromResult(v))
			return true
		})
		return out
	}
	out := map[string]any{}
	r.ForEach(func(k, v gjson.Result) bool {
		out[k.Str] = fromResult(v)
		return true
	})
	return out
}

// ValidInput reports whether input is a well-formed JSON document.
func ValidInput(input []byte) bool {
	return gjson.ValidBytes(input)
}
