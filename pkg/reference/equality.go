package reference

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"

	"digital.vasic.assertions/pkg/assertion"
)

// DefaultPlaces is the rounding precision AlmostEqual uses when
// neither places nor delta is given.
const DefaultPlaces = 7

// Equal checks first == second using ObjectsAreEqual.
func Equal(call *assertion.Call) error {
	first, second := call.Named[ParamFirst], call.Named[ParamSecond]
	return check("Equal", call, func(t assert.TestingT) bool {
		return assert.Equal(t, first, second)
	})
}

// NotEqual checks first != second.
func NotEqual(call *assertion.Call) error {
	first, second := call.Named[ParamFirst], call.Named[ParamSecond]
	return check("NotEqual", call, func(t assert.TestingT) bool {
		return assert.NotEqual(t, first, second)
	})
}

// EqualValues checks first == second after converting to a common
// type, so int32(1) equals int64(1).
func EqualValues(call *assertion.Call) error {
	first, second := call.Named[ParamFirst], call.Named[ParamSecond]
	return check("EqualValues", call, func(t assert.TestingT) bool {
		return assert.EqualValues(t, first, second)
	})
}

// tolerance works out the allowed difference from places and delta.
func tolerance(kind string, call *assertion.Call) (float64, string, error) {
	placesArg, hasPlaces := optional(call, ParamPlaces)
	deltaArg, hasDelta := optional(call, ParamDelta)

	if hasPlaces && hasDelta {
		return 0, "", assertion.Usagef(kind, "specify delta or places not both")
	}
	if hasDelta {
		delta, ok := toFloat(deltaArg)
		if !ok || delta < 0 {
			return 0, "", assertion.Usagef(kind, "delta must be a non-negative number, got %v", deltaArg)
		}
		return delta, fmt.Sprintf("%v delta", deltaArg), nil
	}

	places := DefaultPlaces
	if hasPlaces {
		p, ok := toInt(placesArg)
		if !ok {
			return 0, "", assertion.Usagef(kind, "places must be an integer, got %v", placesArg)
		}
		places = p
	}
	return 0.5 * math.Pow10(-places), fmt.Sprintf("%d places", places), nil
}

// operands returns first and second as float64, or a usage error
// when either is not a number.
func operands(kind string, first, second any) (float64, float64, error) {
	a, okA := toFloat(first)
	b, okB := toFloat(second)
	if !okA || !okB {
		return 0, 0, assertion.Usagef(
			kind, "unsupported operand types: %T and %T", first, second,
		)
	}
	return a, b, nil
}

// AlmostEqual checks that first and second differ by no more than
// delta, or agree when the difference is rounded to places decimal
// places (default DefaultPlaces). Equal values always pass.
func AlmostEqual(call *assertion.Call) error {
	const kind = "AlmostEqual"
	first, second := call.Named[ParamFirst], call.Named[ParamSecond]

	delta, _, err := tolerance(kind, call)
	if err != nil {
		return err
	}
	if assert.ObjectsAreEqual(first, second) {
		return nil
	}
	a, b, err := operands(kind, first, second)
	if err != nil {
		return err
	}

	return check(kind, call, func(t assert.TestingT) bool {
		return assert.InDelta(t, a, b, delta)
	})
}

// NotAlmostEqual is the complement of AlmostEqual. Equal values
// always fail.
func NotAlmostEqual(call *assertion.Call) error {
	const kind = "NotAlmostEqual"
	first, second := call.Named[ParamFirst], call.Named[ParamSecond]

	delta, within, err := tolerance(kind, call)
	if err != nil {
		return err
	}
	if assert.ObjectsAreEqual(first, second) {
		return fail(kind, call, "%#v == %#v", first, second)
	}
	a, b, err := operands(kind, first, second)
	if err != nil {
		return err
	}

	near := holds(func(t assert.TestingT) bool {
		return assert.InDelta(t, a, b, delta)
	})
	if !near {
		return nil
	}
	return fail(kind, call, "%v == %v within %s (%v difference)",
		first, second, within, math.Abs(a-b))
}

// CountEqual checks that first and second hold the same elements
// with the same multiplicity, ignoring order.
func CountEqual(call *assertion.Call) error {
	first, second := call.Named[ParamFirst], call.Named[ParamSecond]
	return check("CountEqual", call, func(t assert.TestingT) bool {
		return assert.ElementsMatch(t, first, second)
	})
}

func isSequence(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array || k == reflect.String
}

// sequenceEqual compares two sequences element by element, so a slice
// and an array holding equal elements are equal.
func sequenceEqual(kind string, call *assertion.Call, seq1, seq2 any, what string) error {
	if !isSequence(kindOf(seq1)) {
		return fail(kind, call, "First %s is not a sequence: %#v", what, seq1)
	}
	if !isSequence(kindOf(seq2)) {
		return fail(kind, call, "Second %s is not a sequence: %#v", what, seq2)
	}
	if assert.ObjectsAreEqual(seq1, seq2) {
		return nil
	}

	v1, v2 := reflect.ValueOf(seq1), reflect.ValueOf(seq2)
	n := v1.Len()
	if v2.Len() < n {
		n = v2.Len()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%ss differ: %#v != %#v", capitalize(what), seq1, seq2)
	differing := -1
	for i := 0; i < n; i++ {
		if !assert.ObjectsAreEqual(v1.Index(i).Interface(), v2.Index(i).Interface()) {
			differing = i
			break
		}
	}
	switch {
	case differing >= 0:
		fmt.Fprintf(&sb, "\n\nFirst differing element %d:\n%#v\n%#v",
			differing, v1.Index(differing).Interface(), v2.Index(differing).Interface())
	case v1.Len() > v2.Len():
		fmt.Fprintf(&sb, "\n\nFirst %s contains %d additional elements.", what, v1.Len()-v2.Len())
	case v2.Len() > v1.Len():
		fmt.Fprintf(&sb, "\n\nSecond %s contains %d additional elements.", what, v2.Len()-v1.Len())
	default:
		return nil
	}

	if d := cmpDiff(seq1, seq2); d != "" {
		sb.WriteString("\n\nDiff (-first +second):\n")
		sb.WriteString(d)
	}
	return fail(kind, call, "%s", sb.String())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// cmpDiff renders a go-cmp diff, or "" when the values cannot be
// compared (go-cmp panics on unexported fields).
func cmpDiff(x, y any) (diff string) {
	defer func() {
		if recover() != nil {
			diff = ""
		}
	}()
	if reflect.TypeOf(x) != reflect.TypeOf(y) {
		return ""
	}
	return strings.TrimRight(cmp.Diff(x, y), "\n")
}

// SequenceEqual checks two sequences element by element. When
// seq_type is given both must be of that type.
func SequenceEqual(call *assertion.Call) error {
	const kind = "SequenceEqual"
	seq1, seq2 := call.Named[ParamSeq1], call.Named[ParamSeq2]

	if raw, ok := optional(call, ParamSeqType); ok {
		typ, _ := typeArg(raw)
		if !instanceOf(seq1, typ) {
			return fail(kind, call, "First sequence is not a %s: %#v", typ, seq1)
		}
		if !instanceOf(seq2, typ) {
			return fail(kind, call, "Second sequence is not a %s: %#v", typ, seq2)
		}
	}

	return sequenceEqual(kind, call, seq1, seq2, "sequence")
}

// ListEqual is SequenceEqual restricted to slices.
func ListEqual(call *assertion.Call) error {
	const kind = "ListEqual"
	list1, list2 := call.Named[ParamList1], call.Named[ParamList2]
	if kindOf(list1) != reflect.Slice {
		return fail(kind, call, "First sequence is not a list: %#v", list1)
	}
	if kindOf(list2) != reflect.Slice {
		return fail(kind, call, "Second sequence is not a list: %#v", list2)
	}
	return sequenceEqual(kind, call, list1, list2, "list")
}

// TupleEqual is SequenceEqual restricted to fixed-size arrays.
func TupleEqual(call *assertion.Call) error {
	const kind = "TupleEqual"
	t1, t2 := call.Named[ParamTuple1], call.Named[ParamTuple2]
	if kindOf(t1) != reflect.Array {
		return fail(kind, call, "First sequence is not a tuple: %#v", t1)
	}
	if kindOf(t2) != reflect.Array {
		return fail(kind, call, "Second sequence is not a tuple: %#v", t2)
	}
	return sequenceEqual(kind, call, t1, t2, "tuple")
}

// setMembers flattens a set representation into its distinct members.
// Maps contribute their keys; slices and arrays their distinct
// elements.
func setMembers(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	switch kindOf(v) {
	case reflect.Map:
		out := make([]any, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			out = append(out, k.Interface())
		}
		return out, true
	case reflect.Slice, reflect.Array:
		out := make([]any, 0, rv.Len())
	next:
		for i := 0; i < rv.Len(); i++ {
			e := rv.Index(i).Interface()
			for _, seen := range out {
				if assert.ObjectsAreEqual(seen, e) {
					continue next
				}
			}
			out = append(out, e)
		}
		return out, true
	default:
		return nil, false
	}
}

// SetEqual checks that set1 and set2 have the same members.
func SetEqual(call *assertion.Call) error {
	const kind = "SetEqual"
	m1, ok := setMembers(call.Named[ParamSet1])
	if !ok {
		return fail(kind, call, "first argument does not support set difference: %#v", call.Named[ParamSet1])
	}
	m2, ok := setMembers(call.Named[ParamSet2])
	if !ok {
		return fail(kind, call, "second argument does not support set difference: %#v", call.Named[ParamSet2])
	}
	return check(kind, call, func(t assert.TestingT) bool {
		return assert.ElementsMatch(t, m1, m2)
	})
}

// DictEqual checks two maps for equality.
func DictEqual(call *assertion.Call) error {
	const kind = "DictEqual"
	d1, d2 := call.Named[ParamD1], call.Named[ParamD2]
	if kindOf(d1) != reflect.Map {
		return fail(kind, call, "First argument is not a dictionary: %#v", d1)
	}
	if kindOf(d2) != reflect.Map {
		return fail(kind, call, "Second argument is not a dictionary: %#v", d2)
	}
	return check(kind, call, func(t assert.TestingT) bool {
		return assert.Equal(t, d1, d2)
	})
}

// MultilineEqual checks two strings for equality and reports a
// unified diff of their lines on mismatch.
func MultilineEqual(call *assertion.Call) error {
	const kind = "MultilineEqual"
	first, ok := call.Named[ParamFirst].(string)
	if !ok {
		return fail(kind, call, "First argument is not a string: %#v", call.Named[ParamFirst])
	}
	second, ok := call.Named[ParamSecond].(string)
	if !ok {
		return fail(kind, call, "Second argument is not a string: %#v", call.Named[ParamSecond])
	}
	if first == second {
		return nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(first),
		B:        difflib.SplitLines(second),
		FromFile: "first",
		ToFile:   "second",
		Context:  3,
		Eol:      "\n",
	})
	if err != nil {
		return fmt.Errorf("failed to diff strings: %w", err)
	}
	return fail(kind, call, "%q != %q\n%s", shorten(first), shorten(second), strings.TrimRight(diff, "\n"))
}

const maxShort = 30

func shorten(s string) string {
	if len(s) <= maxShort {
		return s
	}
	return s[:maxShort] + "..."
}
