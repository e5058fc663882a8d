package asserts

import "digital.vasic.assertions/pkg/assertion"

// AssertEqual checks first == second.
type AssertEqual struct{ facade }

// NewAssertEqual creates an AssertEqual.
func NewAssertEqual(opts ...assertion.Option) *AssertEqual {
	return &AssertEqual{newFacade(EqualKind, opts)}
}

// Call runs the check.
func (a *AssertEqual) Call(first, second any, opts ...assertion.CallOption) error {
	return a.call(opts, first, second)
}

// AssertNotEqual checks first != second.
type AssertNotEqual struct{ facade }

// NewAssertNotEqual creates an AssertNotEqual.
func NewAssertNotEqual(opts ...assertion.Option) *AssertNotEqual {
	return &AssertNotEqual{newFacade(NotEqualKind, opts)}
}

// Call runs the check.
func (a *AssertNotEqual) Call(first, second any, opts ...assertion.CallOption) error {
	return a.call(opts, first, second)
}

// AssertEqualValues checks first == second after converting both to
// a common type.
type AssertEqualValues struct{ facade }

// NewAssertEqualValues creates an AssertEqualValues.
func NewAssertEqualValues(opts ...assertion.Option) *AssertEqualValues {
	return &AssertEqualValues{newFacade(EqualValuesKind, opts)}
}

// Call runs the check.
func (a *AssertEqualValues) Call(first, second any, opts ...assertion.CallOption) error {
	return a.call(opts, first, second)
}

// AssertAlmostEqual checks that two numbers agree to Places decimal
// places (default 7) or lie within Delta of each other.
type AssertAlmostEqual struct{ facade }

// NewAssertAlmostEqual creates an AssertAlmostEqual.
func NewAssertAlmostEqual(opts ...assertion.Option) *AssertAlmostEqual {
	return &AssertAlmostEqual{newFacade(AlmostEqualKind, opts)}
}

// Call runs the check. Pass Places or Delta, not both.
func (a *AssertAlmostEqual) Call(first, second any, opts ...assertion.CallOption) error {
	return a.call(opts, first, second)
}

// AssertNotAlmostEqual is the complement of AssertAlmostEqual.
type AssertNotAlmostEqual struct{ facade }

// NewAssertNotAlmostEqual creates an AssertNotAlmostEqual.
func NewAssertNotAlmostEqual(opts ...assertion.Option) *AssertNotAlmostEqual {
	return &AssertNotAlmostEqual{newFacade(NotAlmostEqualKind, opts)}
}

// Call runs the check. Pass Places or Delta, not both.
func (a *AssertNotAlmostEqual) Call(first, second any, opts ...assertion.CallOption) error {
	return a.call(opts, first, second)
}

// AssertCountEqual checks that first and second hold the same
// elements regardless of order.
type AssertCountEqual struct{ facade }

// NewAssertCountEqual creates an AssertCountEqual.
func NewAssertCountEqual(opts ...assertion.Option) *AssertCountEqual {
	return &AssertCountEqual{newFacade(CountEqualKind, opts)}
}

// Call runs the check.
func (a *AssertCountEqual) Call(first, second any, opts ...assertion.CallOption) error {
	return a.call(opts, first, second)
}

// AssertSequenceEqual compares two slices, arrays or strings element
// by element.
type AssertSequenceEqual struct{ facade }

// NewAssertSequenceEqual creates an AssertSequenceEqual.
func NewAssertSequenceEqual(opts ...assertion.Option) *AssertSequenceEqual {
	return &AssertSequenceEqual{newFacade(SequenceEqualKind, opts)}
}

// Call runs the check. SeqType restricts both operands to one type.
func (a *AssertSequenceEqual) Call(seq1, seq2 any, opts ...assertion.CallOption) error {
	return a.call(opts, seq1, seq2)
}

// AssertListEqual compares two slices.
type AssertListEqual struct{ facade }

// NewAssertListEqual creates an AssertListEqual.
func NewAssertListEqual(opts ...assertion.Option) *AssertListEqual {
	return &AssertListEqual{newFacade(ListEqualKind, opts)}
}

// Call runs the check.
func (a *AssertListEqual) Call(list1, list2 any, opts ...assertion.CallOption) error {
	return a.call(opts, list1, list2)
}

// AssertTupleEqual compares two arrays.
type AssertTupleEqual struct{ facade }

// NewAssertTupleEqual creates an AssertTupleEqual.
func NewAssertTupleEqual(opts ...assertion.Option) *AssertTupleEqual {
	return &AssertTupleEqual{newFacade(TupleEqualKind, opts)}
}

// Call runs the check.
func (a *AssertTupleEqual) Call(tuple1, tuple2 any, opts ...assertion.CallOption) error {
	return a.call(opts, tuple1, tuple2)
}

// AssertSetEqual compares the members of two sets. A map stands for
// the set of its keys; a slice for the set of its distinct elements.
type AssertSetEqual struct{ facade }

// NewAssertSetEqual creates an AssertSetEqual.
func NewAssertSetEqual(opts ...assertion.Option) *AssertSetEqual {
	return &AssertSetEqual{newFacade(SetEqualKind, opts)}
}

// Call runs the check.
func (a *AssertSetEqual) Call(set1, set2 any, opts ...assertion.CallOption) error {
	return a.call(opts, set1, set2)
}

// AssertDictEqual compares two maps.
type AssertDictEqual struct{ facade }

// NewAssertDictEqual creates an AssertDictEqual.
func NewAssertDictEqual(opts ...assertion.Option) *AssertDictEqual {
	return &AssertDictEqual{newFacade(DictEqualKind, opts)}
}

// Call runs the check.
func (a *AssertDictEqual) Call(d1, d2 any, opts ...assertion.CallOption) error {
	return a.call(opts, d1, d2)
}

// AssertMultilineEqual compares two strings and reports a line diff.
type AssertMultilineEqual struct{ facade }

// NewAssertMultilineEqual creates an AssertMultilineEqual.
func NewAssertMultilineEqual(opts ...assertion.Option) *AssertMultilineEqual {
	return &AssertMultilineEqual{newFacade(MultilineEqualKind, opts)}
}

// Call runs the check.
func (a *AssertMultilineEqual) Call(first, second string, opts ...assertion.CallOption) error {
	return a.call(opts, first, second)
}
