package asserts

import (
	"digital.vasic.assertions/pkg/assertion"
	"digital.vasic.assertions/pkg/logging"
)

// AssertRaises checks that a callable raises an expected error. The
// expected value is an error (matched with errors.Is), a reflect.Type
// of an error type (matched with errors.As), or a slice of those.
type AssertRaises struct{ facade }

// NewAssertRaises creates an AssertRaises.
func NewAssertRaises(opts ...assertion.Option) *AssertRaises {
	return &AssertRaises{newFacade(RaisesKind, opts)}
}

// Call invokes callable with args. assertion.CallOption values among
// args are applied to the call instead of being passed on.
func (a *AssertRaises) Call(expected, callable any, args ...any) error {
	rest, opts := splitOptions(args)
	return a.call(opts, append([]any{expected, callable}, rest...)...)
}

// Block runs block in place of a callable.
func (a *AssertRaises) Block(expected any, block func() error, opts ...assertion.CallOption) error {
	return a.call(opts, expected, block)
}

// AssertRaisesRegex is AssertRaises where the error text must also
// match a pattern.
type AssertRaisesRegex struct{ facade }

// NewAssertRaisesRegex creates an AssertRaisesRegex.
func NewAssertRaisesRegex(opts ...assertion.Option) *AssertRaisesRegex {
	return &AssertRaisesRegex{newFacade(RaisesRegexKind, opts)}
}

// Call invokes callable with args.
func (a *AssertRaisesRegex) Call(expected, expectedRegex, callable any, args ...any) error {
	rest, opts := splitOptions(args)
	return a.call(opts, append([]any{expected, expectedRegex, callable}, rest...)...)
}

// Block runs block in place of a callable.
func (a *AssertRaisesRegex) Block(expected, expectedRegex any, block func() error, opts ...assertion.CallOption) error {
	return a.call(opts, expected, expectedRegex, block)
}

// AssertWarns checks that a callable emits a warning of the expected
// category.
type AssertWarns struct{ facade }

// NewAssertWarns creates an AssertWarns.
func NewAssertWarns(opts ...assertion.Option) *AssertWarns {
	return &AssertWarns{newFacade(WarnsKind, opts)}
}

// Call invokes callable with args.
func (a *AssertWarns) Call(expected, callable any, args ...any) error {
	rest, opts := splitOptions(args)
	return a.call(opts, append([]any{expected, callable}, rest...)...)
}

// Block runs block in place of a callable.
func (a *AssertWarns) Block(expected any, block func(), opts ...assertion.CallOption) error {
	return a.call(opts, expected, block)
}

// AssertWarnsRegex is AssertWarns where the warning message must also
// match a pattern.
type AssertWarnsRegex struct{ facade }

// NewAssertWarnsRegex creates an AssertWarnsRegex.
func NewAssertWarnsRegex(opts ...assertion.Option) *AssertWarnsRegex {
	return &AssertWarnsRegex{newFacade(WarnsRegexKind, opts)}
}

// Call invokes callable with args.
func (a *AssertWarnsRegex) Call(expected, expectedRegex, callable any, args ...any) error {
	rest, opts := splitOptions(args)
	return a.call(opts, append([]any{expected, expectedRegex, callable}, rest...)...)
}

// Block runs block in place of a callable.
func (a *AssertWarnsRegex) Block(expected, expectedRegex any, block func(), opts ...assertion.CallOption) error {
	return a.call(opts, expected, expectedRegex, block)
}

// AssertLogs checks that a block logs at least one record at or above
// a level on a logger of the default hub. An empty logger name means
// the root.
type AssertLogs struct{ facade }

// NewAssertLogs creates an AssertLogs.
func NewAssertLogs(opts ...assertion.Option) *AssertLogs {
	return &AssertLogs{newFacade(LogsKind, opts)}
}

// Call runs block. Use Into with a *Captured to receive the records.
func (a *AssertLogs) Call(logger string, level logging.LogLevel, block func(), opts ...assertion.CallOption) error {
	return a.call(opts, block, logger, level)
}
