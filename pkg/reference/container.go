package reference

import (
	"github.com/stretchr/testify/assert"

	"digital.vasic.assertions/pkg/assertion"
)

// In checks that member is in container: an element of a slice or
// array, a key of a map, or a substring of a string.
func In(call *assertion.Call) error {
	member, container := call.Named[ParamMember], call.Named[ParamContainer]
	return check("In", call, func(t assert.TestingT) bool {
		return assert.Contains(t, container, member)
	})
}

// NotIn is the complement of In.
func NotIn(call *assertion.Call) error {
	member, container := call.Named[ParamMember], call.Named[ParamContainer]
	return check("NotIn", call, func(t assert.TestingT) bool {
		return assert.NotContains(t, container, member)
	})
}
