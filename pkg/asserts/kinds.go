// Package asserts exposes every assertion kind as a standalone value.
// Each facade is built once, optionally with a default message, and
// called as often as needed:
//
//	eq := asserts.NewAssertEqual(assertion.WithTemplate("got $first, want $second"))
//	if err := eq.Call(got, want); err != nil {
//		return err
//	}
//
// Failures are *assertion.Failure values; misuse is reported as
// *assertion.UsageError.
package asserts

import (
	"sync"

	"digital.vasic.assertions/pkg/assertion"
	"digital.vasic.assertions/pkg/reference"
)

func pairKind(name string, ref assertion.ReferenceFunc, p1, p2, doc string) assertion.Kind {
	return assertion.Kind{
		Name:     name,
		Params:   []string{p1, p2},
		Required: 2,
		Doc:      doc,
		Ref:      ref,
	}
}

func singleKind(name string, ref assertion.ReferenceFunc, p, doc string) assertion.Kind {
	return assertion.Kind{
		Name:     name,
		Params:   []string{p},
		Required: 1,
		Doc:      doc,
		Ref:      ref,
	}
}

// Kind records bound by the facades.
var (
	EqualKind       = pairKind("Equal", reference.Equal, reference.ParamFirst, reference.ParamSecond, "first == second")
	NotEqualKind    = pairKind("NotEqual", reference.NotEqual, reference.ParamFirst, reference.ParamSecond, "first != second")
	EqualValuesKind = pairKind("EqualValues", reference.EqualValues, reference.ParamFirst, reference.ParamSecond, "first == second after type conversion")

	AlmostEqualKind = assertion.Kind{
		Name:     "AlmostEqual",
		Params:   []string{reference.ParamFirst, reference.ParamSecond, reference.ParamPlaces, reference.ParamDelta},
		Required: 2,
		Doc:      "first and second agree to places decimals or within delta",
		Ref:      reference.AlmostEqual,
	}
	NotAlmostEqualKind = assertion.Kind{
		Name:     "NotAlmostEqual",
		Params:   []string{reference.ParamFirst, reference.ParamSecond, reference.ParamPlaces, reference.ParamDelta},
		Required: 2,
		Doc:      "first and second differ beyond places decimals or delta",
		Ref:      reference.NotAlmostEqual,
	}

	CountEqualKind = pairKind("CountEqual", reference.CountEqual, reference.ParamFirst, reference.ParamSecond, "same elements, any order")

	SequenceEqualKind = assertion.Kind{
		Name:     "SequenceEqual",
		Params:   []string{reference.ParamSeq1, reference.ParamSeq2, reference.ParamSeqType},
		Required: 2,
		Doc:      "sequences equal element by element",
		Ref:      reference.SequenceEqual,
	}
	ListEqualKind      = pairKind("ListEqual", reference.ListEqual, reference.ParamList1, reference.ParamList2, "slices equal element by element")
	TupleEqualKind     = pairKind("TupleEqual", reference.TupleEqual, reference.ParamTuple1, reference.ParamTuple2, "arrays equal element by element")
	SetEqualKind       = pairKind("SetEqual", reference.SetEqual, reference.ParamSet1, reference.ParamSet2, "same distinct members")
	DictEqualKind      = pairKind("DictEqual", reference.DictEqual, reference.ParamD1, reference.ParamD2, "maps equal")
	MultilineEqualKind = pairKind("MultilineEqual", reference.MultilineEqual, reference.ParamFirst, reference.ParamSecond, "strings equal, diffed by line")

	LessKind         = pairKind("Less", reference.Less, reference.ParamA, reference.ParamB, "a < b")
	LessEqualKind    = pairKind("LessEqual", reference.LessEqual, reference.ParamA, reference.ParamB, "a <= b")
	GreaterKind      = pairKind("Greater", reference.Greater, reference.ParamA, reference.ParamB, "a > b")
	GreaterEqualKind = pairKind("GreaterEqual", reference.GreaterEqual, reference.ParamA, reference.ParamB, "a >= b")

	InKind    = pairKind("In", reference.In, reference.ParamMember, reference.ParamContainer, "member in container")
	NotInKind = pairKind("NotIn", reference.NotIn, reference.ParamMember, reference.ParamContainer, "member not in container")

	IsKind            = pairKind("Is", reference.Is, reference.ParamExpr1, reference.ParamExpr2, "same pointer")
	IsNotKind         = pairKind("IsNot", reference.IsNot, reference.ParamExpr1, reference.ParamExpr2, "different pointers")
	IsNoneKind        = singleKind("IsNone", reference.IsNone, reference.ParamObj, "obj is nil")
	IsNotNoneKind     = singleKind("IsNotNone", reference.IsNotNone, reference.ParamObj, "obj is not nil")
	IsInstanceKind    = pairKind("IsInstance", reference.IsInstance, reference.ParamObj, reference.ParamCls, "obj is of type cls")
	NotIsInstanceKind = pairKind("NotIsInstance", reference.NotIsInstance, reference.ParamObj, reference.ParamCls, "obj is not of type cls")

	TrueKind  = singleKind("True", reference.True, reference.ParamExpr, "expr is truthy")
	FalseKind = singleKind("False", reference.False, reference.ParamExpr, "expr is falsy")

	RegexKind      = pairKind("Regex", reference.Regex, reference.ParamText, reference.ParamExpectedRegex, "expected_regex matches text")
	NotRegexKind   = pairKind("NotRegex", reference.NotRegex, reference.ParamText, reference.ParamUnexpectedRegex, "unexpected_regex does not match text")
	StartsWithKind = pairKind("StartsWith", reference.StartsWith, reference.ParamText, reference.ParamPrefix, "text starts with prefix")
	EndsWithKind   = pairKind("EndsWith", reference.EndsWith, reference.ParamText, reference.ParamSuffix, "text ends with suffix")

	RaisesKind = assertion.Kind{
		Name:     "Raises",
		Params:   []string{reference.ParamExpectedException, reference.ParamCallable},
		Required: 2,
		Variadic: true,
		Scoped:   true,
		Doc:      "callable_ raises expected_exception",
		Ref:      reference.Raises,
	}
	RaisesRegexKind = assertion.Kind{
		Name:     "RaisesRegex",
		Params:   []string{reference.ParamExpectedException, reference.ParamExpectedRegex, reference.ParamCallable},
		Required: 3,
		Variadic: true,
		Scoped:   true,
		Doc:      "callable_ raises expected_exception matching expected_regex",
		Ref:      reference.RaisesRegex,
	}
	WarnsKind = assertion.Kind{
		Name:     "Warns",
		Params:   []string{reference.ParamExpectedWarning, reference.ParamCallable},
		Required: 2,
		Variadic: true,
		Scoped:   true,
		Doc:      "callable_ emits expected_warning",
		Ref:      reference.Warns,
	}
	WarnsRegexKind = assertion.Kind{
		Name:     "WarnsRegex",
		Params:   []string{reference.ParamExpectedWarning, reference.ParamExpectedRegex, reference.ParamCallable},
		Required: 3,
		Variadic: true,
		Scoped:   true,
		Doc:      "callable_ emits expected_warning matching expected_regex",
		Ref:      reference.WarnsRegex,
	}
	LogsKind = assertion.Kind{
		Name:     "Logs",
		Params:   []string{reference.ParamBlock, reference.ParamLogger, reference.ParamLevel},
		Required: 1,
		Scoped:   true,
		Doc:      "block logs at level or above on logger",
		Ref:      reference.Logs,
	}
)

// Kinds returns every kind in catalogue order.
func Kinds() []assertion.Kind {
	return []assertion.Kind{
		EqualKind, NotEqualKind, EqualValuesKind,
		AlmostEqualKind, NotAlmostEqualKind,
		CountEqualKind, SequenceEqualKind, ListEqualKind, TupleEqualKind,
		SetEqualKind, DictEqualKind, MultilineEqualKind,
		LessKind, LessEqualKind, GreaterKind, GreaterEqualKind,
		InKind, NotInKind,
		IsKind, IsNotKind, IsNoneKind, IsNotNoneKind,
		IsInstanceKind, NotIsInstanceKind,
		TrueKind, FalseKind,
		RegexKind, NotRegexKind, StartsWithKind, EndsWithKind,
		RaisesKind, RaisesRegexKind, WarnsKind, WarnsRegexKind, LogsKind,
	}
}

var (
	registryOnce sync.Once
	registry     *assertion.DefaultRegistry
)

// Registry returns the shared registry holding every kind.
func Registry() *assertion.DefaultRegistry {
	registryOnce.Do(func() {
		registry = NewRegistry()
	})
	return registry
}

// NewRegistry returns a fresh registry holding every kind, to which
// callers may add their own.
func NewRegistry() *assertion.DefaultRegistry {
	return assertion.NewRegistry(Kinds()...)
}
