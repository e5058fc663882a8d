package asserts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.assertions/pkg/assertion"
	"digital.vasic.assertions/pkg/logging"
	"digital.vasic.assertions/pkg/warnings"
)

func TestEquality_AcrossTypes(t *testing.T) {
	values := []struct {
		name string
		x, y any
	}{
		{"int", 1, 2},
		{"string", "a", "b"},
		{"float", 1.5, 2.5},
		{"slice", []int{1, 2}, []int{2, 1}},
		{"array", [2]string{"a", "b"}, [2]string{"a", "c"}},
		{"set", map[string]struct{}{"a": {}}, map[string]struct{}{"b": {}}},
		{"map", map[string]int{"a": 1}, map[string]int{"a": 2}},
		{"nil and value", nil, 0},
	}

	eq := NewAssertEqual()
	ne := NewAssertNotEqual()

	for _, v := range values {
		t.Run(v.name, func(t *testing.T) {
			assert.NoError(t, eq.Call(v.x, v.x))
			assert.ErrorIs(t, ne.Call(v.x, v.x), assertion.ErrFailure)

			assert.ErrorIs(t, eq.Call(v.x, v.y), assertion.ErrFailure)
			assert.NoError(t, ne.Call(v.x, v.y))
		})
	}
}

func TestAlmostEqual(t *testing.T) {
	almost := NewAssertAlmostEqual()

	assert.NoError(t, almost.Call(1.00000001, 1.0))
	assert.NoError(t, almost.Call(1.1, 1.0, Delta(0.5)))
	assert.ErrorIs(t, almost.Call(1.00000001, 2.0), assertion.ErrFailure)
	assert.NoError(t, almost.Call(1.004, 1.0, Places(2)))
	assert.ErrorIs(t, almost.Call(1.0, 1.0, Places(2), Delta(0.1)), assertion.ErrUsage)

	notAlmost := NewAssertNotAlmostEqual()
	assert.NoError(t, notAlmost.Call(1.0, 2.0))
	assert.ErrorIs(t, notAlmost.Call(1.1, 1.0, Delta(0.5)), assertion.ErrFailure)
}

func TestContainment(t *testing.T) {
	mapping := map[string]int{"a": 1, "b": 2, "c": 3}
	in := NewAssertIn()
	notIn := NewAssertNotIn()

	for k := range mapping {
		assert.NoError(t, in.Call(k, mapping), k)
	}

	tuple := [3]int{1, 2, 3}
	assert.ErrorIs(t, in.Call(4, tuple), assertion.ErrFailure)
	assert.NoError(t, notIn.Call(4, tuple))
}

func TestMessage_ExplicitOverridesDefault(t *testing.T) {
	eq := NewAssertEqual(assertion.WithLiteral("fallback"))

	err := eq.Call(1, 2, assertion.Msg("explicit"))
	f, ok := assertion.IsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "explicit", f.Message)

	err = eq.Call(1, 2)
	f, ok = assertion.IsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "fallback", f.Message)
}

func TestMessage_Template(t *testing.T) {
	eq := NewAssertEqual(assertion.WithTemplate("$first != ${second} ($missing)"))

	err := eq.Call(1, 2)
	f, ok := assertion.IsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "1 != 2 ($missing)", f.Message)
}

func TestMessage_TemplateUsesExtraArgs(t *testing.T) {
	in := NewAssertIn(assertion.WithTemplate("$member missing from $where"))

	err := in.Call("x", []string{"y"}, assertion.Arg("where", "inventory"))
	f, ok := assertion.IsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "x missing from inventory", f.Message)
}

func TestRaises(t *testing.T) {
	errKey := errors.New("key error")
	errValue := errors.New("value error")
	raises := NewAssertRaises()

	assert.NoError(t, raises.Call(errKey, func() error { return errKey }))

	err := raises.Call(errKey, func() error { return errValue })
	assert.True(t, err == errValue, "unexpected error must propagate unchanged")
	assert.NotErrorIs(t, err, assertion.ErrFailure)

	err = raises.Call(errKey, func() error { return nil })
	assert.ErrorIs(t, err, assertion.ErrFailure)
}

func TestRaises_ArgsAndOptions(t *testing.T) {
	errBad := errors.New("bad")
	raises := NewAssertRaises(assertion.WithLiteral("fallback"))

	divide := func(a, b int) (int, error) {
		if b == 0 {
			return 0, errBad
		}
		return a / b, nil
	}

	assert.NoError(t, raises.Call(errBad, divide, 1, 0))

	err := raises.Call(errBad, divide, 4, 2, assertion.Msg("division worked"))
	f, ok := assertion.IsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "division worked", f.Message)
}

func TestRaises_BlockUsesInvoker(t *testing.T) {
	errBad := errors.New("bad")
	raises := NewAssertRaises(assertion.WithTemplate("expected $expected_exception"))

	var caught error
	require.NoError(t, raises.Block(errBad, func() error { return errBad }, Into(&caught)))
	assert.Equal(t, errBad, caught)

	err := raises.Block(errBad, func() error { return nil })
	f, ok := assertion.IsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "expected bad", f.Message)
}

func TestRaisesRegex(t *testing.T) {
	errBad := errors.New("bad input")
	rr := NewAssertRaisesRegex()

	assert.NoError(t, rr.Call(errBad, "input$", func() error { return errBad }))
	assert.ErrorIs(t, rr.Block(errBad, "^nope", func() error { return errBad }), assertion.ErrFailure)
}

func TestWarns(t *testing.T) {
	w := NewAssertWarns()

	assert.NoError(t, w.Block(warnings.Deprecation, func() {
		warnings.Warn(warnings.Deprecation, "old")
	}))
	assert.NoError(t, w.Call(warnings.User, warnings.Warn, warnings.User, "direct"))
	assert.ErrorIs(t, w.Block(warnings.User, func() {}), assertion.ErrFailure)

	var got *warnings.Warning
	require.NoError(t, w.Block(warnings.Base, func() {
		warnings.Warn(warnings.Runtime, "caught")
	}, Into(&got)))
	assert.Equal(t, "caught", got.Message)

	wr := NewAssertWarnsRegex()
	assert.NoError(t, wr.Block(warnings.User, "^a", func() { warnings.Warn(warnings.User, "abc") }))
	assert.ErrorIs(t, wr.Call(warnings.User, "^z", warnings.Warn, warnings.User, "abc"), assertion.ErrFailure)
}

func TestLogs(t *testing.T) {
	logs := NewAssertLogs(assertion.WithTemplate("nothing on $logger"))

	var got Captured
	err := logs.Call("orders", logging.LevelInfo, func() {
		logging.Get("orders.api").Info("created")
	}, Into(&got))
	require.NoError(t, err)
	assert.Equal(t, []string{"INFO:orders.api:created"}, got.Output)

	err = logs.Call("orders", logging.LevelError, func() {
		logging.Get("orders").Warn("slow")
	})
	f, ok := assertion.IsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "nothing on orders", f.Message)
}

func TestRegex(t *testing.T) {
	rx := NewAssertRegex()
	notRx := NewAssertNotRegex()

	assert.NoError(t, rx.Call("Ala ma kota", `k.t`))
	assert.ErrorIs(t, notRx.Call("Ala ma kota", `k.t`), assertion.ErrFailure)

	assert.ErrorIs(t, rx.Call("Ala ma kota", `r+`), assertion.ErrFailure)
	assert.NoError(t, notRx.Call("Ala ma kota", `r+`))
}

func TestFacades_BindTheirKind(t *testing.T) {
	tests := []struct {
		facade interface{ Kind() assertion.Kind }
		name   string
	}{
		{NewAssertEqual(), "Equal"},
		{NewAssertNotEqual(), "NotEqual"},
		{NewAssertEqualValues(), "EqualValues"},
		{NewAssertAlmostEqual(), "AlmostEqual"},
		{NewAssertNotAlmostEqual(), "NotAlmostEqual"},
		{NewAssertCountEqual(), "CountEqual"},
		{NewAssertSequenceEqual(), "SequenceEqual"},
		{NewAssertListEqual(), "ListEqual"},
		{NewAssertTupleEqual(), "TupleEqual"},
		{NewAssertSetEqual(), "SetEqual"},
		{NewAssertDictEqual(), "DictEqual"},
		{NewAssertMultilineEqual(), "MultilineEqual"},
		{NewAssertLess(), "Less"},
		{NewAssertLessEqual(), "LessEqual"},
		{NewAssertGreater(), "Greater"},
		{NewAssertGreaterEqual(), "GreaterEqual"},
		{NewAssertIn(), "In"},
		{NewAssertNotIn(), "NotIn"},
		{NewAssertIs(), "Is"},
		{NewAssertIsNot(), "IsNot"},
		{NewAssertIsNone(), "IsNone"},
		{NewAssertIsNotNone(), "IsNotNone"},
		{NewAssertIsInstance(), "IsInstance"},
		{NewAssertNotIsInstance(), "NotIsInstance"},
		{NewAssertTrue(), "True"},
		{NewAssertFalse(), "False"},
		{NewAssertRegex(), "Regex"},
		{NewAssertNotRegex(), "NotRegex"},
		{NewAssertStartsWith(), "StartsWith"},
		{NewAssertEndsWith(), "EndsWith"},
		{NewAssertRaises(), "Raises"},
		{NewAssertRaisesRegex(), "RaisesRegex"},
		{NewAssertWarns(), "Warns"},
		{NewAssertWarnsRegex(), "WarnsRegex"},
		{NewAssertLogs(), "Logs"},
	}

	require.Len(t, tests, len(Kinds()))
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.facade.Kind().Name)
	}
}

func TestFacades_Smoke(t *testing.T) {
	x := 1
	p := &x

	assert.NoError(t, NewAssertEqualValues().Call(int32(3), int64(3)))
	assert.NoError(t, NewAssertCountEqual().Call([]int{1, 2}, []int{2, 1}))
	assert.NoError(t, NewAssertSequenceEqual().Call([]int{1}, [1]int{1}))
	assert.ErrorIs(t, NewAssertSequenceEqual().Call([]int{1}, [1]int{1}, SeqType([]int{})), assertion.ErrFailure)
	assert.NoError(t, NewAssertListEqual().Call([]string{"a"}, []string{"a"}))
	assert.NoError(t, NewAssertTupleEqual().Call([2]int{1, 2}, [2]int{1, 2}))
	assert.NoError(t, NewAssertSetEqual().Call([]int{1, 1, 2}, map[int]bool{1: true, 2: true}))
	assert.NoError(t, NewAssertDictEqual().Call(map[string]int{}, map[string]int{}))
	assert.NoError(t, NewAssertMultilineEqual().Call("a\nb", "a\nb"))
	assert.NoError(t, NewAssertLess().Call(1, 2))
	assert.NoError(t, NewAssertLessEqual().Call(2, 2))
	assert.NoError(t, NewAssertGreater().Call(3, 2))
	assert.NoError(t, NewAssertGreaterEqual().Call(3, 3))
	assert.NoError(t, NewAssertIs().Call(p, p))
	assert.NoError(t, NewAssertIsNot().Call(p, &x2))
	assert.NoError(t, NewAssertIsNone().Call(nil))
	assert.NoError(t, NewAssertIsNotNone().Call(p))
	assert.NoError(t, NewAssertIsInstance().Call(p, (*int)(nil)))
	assert.NoError(t, NewAssertNotIsInstance().Call(p, ""))
	assert.NoError(t, NewAssertTrue().Call(true))
	assert.NoError(t, NewAssertFalse().Call(""))
	assert.NoError(t, NewAssertStartsWith().Call("prefix", "pre"))
	assert.NoError(t, NewAssertEndsWith().Call("suffix", "fix"))
}

var x2 = 2

func TestFacade_UsageErrorOnMissingArgs(t *testing.T) {
	f := assertion.NewFacade(AlmostEqualKind)
	err := f.Call([]any{1.0})
	assert.ErrorIs(t, err, assertion.ErrUsage)
}
