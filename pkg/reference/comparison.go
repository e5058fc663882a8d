package reference

import (
	"reflect"

	"github.com/stretchr/testify/assert"

	"digital.vasic.assertions/pkg/assertion"
)

// ordered returns a and b ready for testify's ordering checks. Two
// numbers of different Go types are both widened to float64 so that
// int(1) < float64(1.5) compares the way arithmetic does.
func ordered(call *assertion.Call) (any, any) {
	a, b := call.Named[ParamA], call.Named[ParamB]
	if reflect.TypeOf(a) == reflect.TypeOf(b) {
		return a, b
	}
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB {
		return fa, fb
	}
	return a, b
}

// Less checks a < b.
func Less(call *assertion.Call) error {
	a, b := ordered(call)
	return check("Less", call, func(t assert.TestingT) bool {
		return assert.Less(t, a, b)
	})
}

// LessEqual checks a <= b.
func LessEqual(call *assertion.Call) error {
	a, b := ordered(call)
	return check("LessEqual", call, func(t assert.TestingT) bool {
		return assert.LessOrEqual(t, a, b)
	})
}

// Greater checks a > b.
func Greater(call *assertion.Call) error {
	a, b := ordered(call)
	return check("Greater", call, func(t assert.TestingT) bool {
		return assert.Greater(t, a, b)
	})
}

// GreaterEqual checks a >= b.
func GreaterEqual(call *assertion.Call) error {
	a, b := ordered(call)
	return check("GreaterEqual", call, func(t assert.TestingT) bool {
		return assert.GreaterOrEqual(t, a, b)
	})
}
