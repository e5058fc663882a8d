package asserts

import "digital.vasic.assertions/pkg/assertion"

// AssertIs checks that two pointers are identical.
type AssertIs struct{ facade }

// NewAssertIs creates an AssertIs.
func NewAssertIs(opts ...assertion.Option) *AssertIs {
	return &AssertIs{newFacade(IsKind, opts)}
}

// Call runs the check.
func (a *AssertIs) Call(expr1, expr2 any, opts ...assertion.CallOption) error {
	return a.call(opts, expr1, expr2)
}

// AssertIsNot checks that two pointers differ.
type AssertIsNot struct{ facade }

// NewAssertIsNot creates an AssertIsNot.
func NewAssertIsNot(opts ...assertion.Option) *AssertIsNot {
	return &AssertIsNot{newFacade(IsNotKind, opts)}
}

// Call runs the check.
func (a *AssertIsNot) Call(expr1, expr2 any, opts ...assertion.CallOption) error {
	return a.call(opts, expr1, expr2)
}

// AssertIsNone checks that obj is nil.
type AssertIsNone struct{ facade }

// NewAssertIsNone creates an AssertIsNone.
func NewAssertIsNone(opts ...assertion.Option) *AssertIsNone {
	return &AssertIsNone{newFacade(IsNoneKind, opts)}
}

// Call runs the check.
func (a *AssertIsNone) Call(obj any, opts ...assertion.CallOption) error {
	return a.call(opts, obj)
}

// AssertIsNotNone checks that obj is not nil.
type AssertIsNotNone struct{ facade }

// NewAssertIsNotNone creates an AssertIsNotNone.
func NewAssertIsNotNone(opts ...assertion.Option) *AssertIsNotNone {
	return &AssertIsNotNone{newFacade(IsNotNoneKind, opts)}
}

// Call runs the check.
func (a *AssertIsNotNone) Call(obj any, opts ...assertion.CallOption) error {
	return a.call(opts, obj)
}

// AssertIsInstance checks that obj is of type cls: a reflect.Type, a
// []reflect.Type of alternatives, or a sample value.
type AssertIsInstance struct{ facade }

// NewAssertIsInstance creates an AssertIsInstance.
func NewAssertIsInstance(opts ...assertion.Option) *AssertIsInstance {
	return &AssertIsInstance{newFacade(IsInstanceKind, opts)}
}

// Call runs the check.
func (a *AssertIsInstance) Call(obj, cls any, opts ...assertion.CallOption) error {
	return a.call(opts, obj, cls)
}

// AssertNotIsInstance is the complement of AssertIsInstance.
type AssertNotIsInstance struct{ facade }

// NewAssertNotIsInstance creates an AssertNotIsInstance.
func NewAssertNotIsInstance(opts ...assertion.Option) *AssertNotIsInstance {
	return &AssertNotIsInstance{newFacade(NotIsInstanceKind, opts)}
}

// Call runs the check.
func (a *AssertNotIsInstance) Call(obj, cls any, opts ...assertion.CallOption) error {
	return a.call(opts, obj, cls)
}

// AssertTrue checks that expr is truthy.
type AssertTrue struct{ facade }

// NewAssertTrue creates an AssertTrue.
func NewAssertTrue(opts ...assertion.Option) *AssertTrue {
	return &AssertTrue{newFacade(TrueKind, opts)}
}

// Call runs the check.
func (a *AssertTrue) Call(expr any, opts ...assertion.CallOption) error {
	return a.call(opts, expr)
}

// AssertFalse checks that expr is falsy.
type AssertFalse struct{ facade }

// NewAssertFalse creates an AssertFalse.
func NewAssertFalse(opts ...assertion.Option) *AssertFalse {
	return &AssertFalse{newFacade(FalseKind, opts)}
}

// Call runs the check.
func (a *AssertFalse) Call(expr any, opts ...assertion.CallOption) error {
	return a.call(opts, expr)
}
