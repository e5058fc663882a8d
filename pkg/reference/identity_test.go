package reference

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"digital.vasic.assertions/pkg/assertion"
)

func TestIdentity(t *testing.T) {
	x, y := 1, 1
	p, q := &x, &y

	tests := []struct {
		name       string
		e1, e2     any
		is, isNot  outcome
	}{
		{"same pointer", p, p, passed, failed},
		{"distinct pointers", p, q, failed, passed},
		{"both nil", nil, nil, passed, failed},
		{"nil and pointer", nil, p, failed, passed},
		{"non-pointer operands", 1, 1, misuse, misuse},
		{"slice operand", []int{1}, p, misuse, misuse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			named := assertion.Named{"expr1": tt.e1, "expr2": tt.e2}
			assertOutcome(t, tt.is, Is(newCall(named)))
			assertOutcome(t, tt.isNot, IsNot(newCall(named)))
		})
	}
}

func TestNone(t *testing.T) {
	tests := []struct {
		name string
		obj  any
		none bool
	}{
		{"nil", nil, true},
		{"typed nil pointer", (*int)(nil), true},
		{"nil map", map[string]int(nil), true},
		{"zero int", 0, false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			named := assertion.Named{"obj": tt.obj}
			if tt.none {
				assertOutcome(t, passed, IsNone(newCall(named)))
				assertOutcome(t, failed, IsNotNone(newCall(named)))
			} else {
				assertOutcome(t, failed, IsNone(newCall(named)))
				assertOutcome(t, passed, IsNotNone(newCall(named)))
			}
		})
	}
}

type celsius float64

func (c celsius) String() string { return fmt.Sprintf("%.1fC", float64(c)) }

func TestInstance(t *testing.T) {
	stringer := reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	intType := reflect.TypeOf(0)
	strType := reflect.TypeOf("")

	tests := []struct {
		name          string
		obj, cls      any
		is, isNot     outcome
	}{
		{"exact type", 1, intType, passed, failed},
		{"sample value", 1, "", failed, passed},
		{"named type is distinct", celsius(1), reflect.TypeOf(1.0), failed, passed},
		{"implements interface", celsius(1), stringer, passed, failed},
		{"error interface", errors.New("x"), errorType, passed, failed},
		{"does not implement", 1, errorType, failed, passed},
		{"nil object", nil, errorType, failed, passed},
		{"any of types", 1, []reflect.Type{strType, intType}, passed, failed},
		{"none of types", 1.5, []reflect.Type{strType, intType}, failed, passed},
		{"no cls", 1, nil, misuse, misuse},
		{"empty cls list", 1, []reflect.Type{}, misuse, misuse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			named := assertion.Named{"obj": tt.obj, "cls": tt.cls}
			assertOutcome(t, tt.is, IsInstance(newCall(named)))
			assertOutcome(t, tt.isNot, NotIsInstance(newCall(named)))
		})
	}
}
