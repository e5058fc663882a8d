package reference

import (
	"math"
	"reflect"

	"digital.vasic.assertions/pkg/assertion"
)

// Parameter names shared by the kinds.
const (
	ParamFirst             = "first"
	ParamSecond            = "second"
	ParamPlaces            = "places"
	ParamDelta             = "delta"
	ParamSeq1              = "seq1"
	ParamSeq2              = "seq2"
	ParamSeqType           = "seq_type"
	ParamList1             = "list1"
	ParamList2             = "list2"
	ParamTuple1            = "tuple1"
	ParamTuple2            = "tuple2"
	ParamSet1              = "set1"
	ParamSet2              = "set2"
	ParamD1                = "d1"
	ParamD2                = "d2"
	ParamA                 = "a"
	ParamB                 = "b"
	ParamMember            = "member"
	ParamContainer         = "container"
	ParamExpr              = "expr"
	ParamExpr1             = "expr1"
	ParamExpr2             = "expr2"
	ParamObj               = "obj"
	ParamCls               = "cls"
	ParamText              = "text"
	ParamExpectedRegex     = "expected_regex"
	ParamUnexpectedRegex   = "unexpected_regex"
	ParamPrefix            = "prefix"
	ParamSuffix            = "suffix"
	ParamExpectedException = "expected_exception"
	ParamExpectedWarning   = "expected_warning"
	ParamCallable          = "callable_"
	ParamLogger            = "logger"
	ParamLevel             = "level"
	ParamBlock             = "block"
)

// optional returns a named value, treating an explicit nil as absent.
func optional(call *assertion.Call, name string) (any, bool) {
	v, ok := call.Named[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// toFloat converts any Go number to float64.
func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// toInt converts an integral Go number to int. Floats are accepted
// when they hold a whole value, as decoded JSON numbers do.
func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// kindOf returns the reflect.Kind of v, Invalid for nil.
func kindOf(v any) reflect.Kind {
	if v == nil {
		return reflect.Invalid
	}
	return reflect.TypeOf(v).Kind()
}

// typeArg interprets a type parameter: a reflect.Type is used as-is,
// any other non-nil value stands for its own dynamic type.
func typeArg(v any) (reflect.Type, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case reflect.Type:
		return t, true
	default:
		return reflect.TypeOf(v), true
	}
}
