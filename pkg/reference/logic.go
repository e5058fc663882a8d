package reference

import (
	"github.com/stretchr/testify/assert"

	"digital.vasic.assertions/pkg/assertion"
)

// True checks that expr is truthy: true for a bool, otherwise a
// non-nil, non-zero, non-empty value.
func True(call *assertion.Call) error {
	expr := call.Named[ParamExpr]
	return check("True", call, func(t assert.TestingT) bool {
		if b, ok := expr.(bool); ok {
			return assert.True(t, b)
		}
		return assert.NotEmpty(t, expr)
	})
}

// False is the complement of True.
func False(call *assertion.Call) error {
	expr := call.Named[ParamExpr]
	return check("False", call, func(t assert.TestingT) bool {
		if b, ok := expr.(bool); ok {
			return assert.False(t, b)
		}
		return assert.Empty(t, expr)
	})
}
