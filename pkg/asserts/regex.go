package asserts

import "digital.vasic.assertions/pkg/assertion"

// AssertRegex checks that a pattern (string or *regexp.Regexp)
// matches somewhere in text.
type AssertRegex struct{ facade }

// NewAssertRegex creates an AssertRegex.
func NewAssertRegex(opts ...assertion.Option) *AssertRegex {
	return &AssertRegex{newFacade(RegexKind, opts)}
}

// Call runs the check.
func (a *AssertRegex) Call(text, expectedRegex any, opts ...assertion.CallOption) error {
	return a.call(opts, text, expectedRegex)
}

// AssertNotRegex checks that a pattern matches nowhere in text.
type AssertNotRegex struct{ facade }

// NewAssertNotRegex creates an AssertNotRegex.
func NewAssertNotRegex(opts ...assertion.Option) *AssertNotRegex {
	return &AssertNotRegex{newFacade(NotRegexKind, opts)}
}

// Call runs the check.
func (a *AssertNotRegex) Call(text, unexpectedRegex any, opts ...assertion.CallOption) error {
	return a.call(opts, text, unexpectedRegex)
}

// AssertStartsWith checks a string prefix.
type AssertStartsWith struct{ facade }

// NewAssertStartsWith creates an AssertStartsWith.
func NewAssertStartsWith(opts ...assertion.Option) *AssertStartsWith {
	return &AssertStartsWith{newFacade(StartsWithKind, opts)}
}

// Call runs the check.
func (a *AssertStartsWith) Call(text, prefix string, opts ...assertion.CallOption) error {
	return a.call(opts, text, prefix)
}

// AssertEndsWith checks a string suffix.
type AssertEndsWith struct{ facade }

// NewAssertEndsWith creates an AssertEndsWith.
func NewAssertEndsWith(opts ...assertion.Option) *AssertEndsWith {
	return &AssertEndsWith{newFacade(EndsWithKind, opts)}
}

// Call runs the check.
func (a *AssertEndsWith) Call(text, suffix string, opts ...assertion.CallOption) error {
	return a.call(opts, text, suffix)
}
