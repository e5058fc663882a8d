package asserts

import "digital.vasic.assertions/pkg/assertion"

// AssertLess checks a < b.
type AssertLess struct{ facade }

// NewAssertLess creates an AssertLess.
func NewAssertLess(opts ...assertion.Option) *AssertLess {
	return &AssertLess{newFacade(LessKind, opts)}
}

// Call runs the check.
func (c *AssertLess) Call(a, b any, opts ...assertion.CallOption) error {
	return c.call(opts, a, b)
}

// AssertLessEqual checks a <= b.
type AssertLessEqual struct{ facade }

// NewAssertLessEqual creates an AssertLessEqual.
func NewAssertLessEqual(opts ...assertion.Option) *AssertLessEqual {
	return &AssertLessEqual{newFacade(LessEqualKind, opts)}
}

// Call runs the check.
func (c *AssertLessEqual) Call(a, b any, opts ...assertion.CallOption) error {
	return c.call(opts, a, b)
}

// AssertGreater checks a > b.
type AssertGreater struct{ facade }

// NewAssertGreater creates an AssertGreater.
func NewAssertGreater(opts ...assertion.Option) *AssertGreater {
	return &AssertGreater{newFacade(GreaterKind, opts)}
}

// Call runs the check.
func (c *AssertGreater) Call(a, b any, opts ...assertion.CallOption) error {
	return c.call(opts, a, b)
}

// AssertGreaterEqual checks a >= b.
type AssertGreaterEqual struct{ facade }

// NewAssertGreaterEqual creates an AssertGreaterEqual.
func NewAssertGreaterEqual(opts ...assertion.Option) *AssertGreaterEqual {
	return &AssertGreaterEqual{newFacade(GreaterEqualKind, opts)}
}

// Call runs the check.
func (c *AssertGreaterEqual) Call(a, b any, opts ...assertion.CallOption) error {
	return c.call(opts, a, b)
}

// AssertIn checks that member is in container.
type AssertIn struct{ facade }

// NewAssertIn creates an AssertIn.
func NewAssertIn(opts ...assertion.Option) *AssertIn {
	return &AssertIn{newFacade(InKind, opts)}
}

// Call runs the check.
func (a *AssertIn) Call(member, container any, opts ...assertion.CallOption) error {
	return a.call(opts, member, container)
}

// AssertNotIn checks that member is not in container.
type AssertNotIn struct{ facade }

// NewAssertNotIn creates an AssertNotIn.
func NewAssertNotIn(opts ...assertion.Option) *AssertNotIn {
	return &AssertNotIn{newFacade(NotInKind, opts)}
}

// Call runs the check.
func (a *AssertNotIn) Call(member, container any, opts ...assertion.CallOption) error {
	return a.call(opts, member, container)
}
