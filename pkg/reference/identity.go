package reference

import (
	"reflect"
	"strings"

	"github.com/stretchr/testify/assert"

	"digital.vasic.assertions/pkg/assertion"
)

// pointerOperands validates the operands of Is and IsNot. Each must be
// nil or a pointer.
func pointerOperands(kind string, call *assertion.Call) (any, any, error) {
	e1, e2 := call.Named[ParamExpr1], call.Named[ParamExpr2]
	for _, v := range []any{e1, e2} {
		if v != nil && kindOf(v) != reflect.Pointer {
			return nil, nil, assertion.Usagef(
				kind, "identity needs pointer operands, got %T", v,
			)
		}
	}
	return e1, e2, nil
}

// Is checks that expr1 and expr2 are the same pointer. Two nil
// operands are identical.
func Is(call *assertion.Call) error {
	const kind = "Is"
	e1, e2, err := pointerOperands(kind, call)
	if err != nil {
		return err
	}
	switch {
	case e1 == nil && e2 == nil:
		return nil
	case e1 == nil || e2 == nil:
		return fail(kind, call, "%#v is not %#v", e1, e2)
	}
	return check(kind, call, func(t assert.TestingT) bool {
		return assert.Same(t, e1, e2)
	})
}

// IsNot is the complement of Is.
func IsNot(call *assertion.Call) error {
	const kind = "IsNot"
	e1, e2, err := pointerOperands(kind, call)
	if err != nil {
		return err
	}
	switch {
	case e1 == nil && e2 == nil:
		return fail(kind, call, "unexpectedly identical: <nil>")
	case e1 == nil || e2 == nil:
		return nil
	}
	return check(kind, call, func(t assert.TestingT) bool {
		return assert.NotSame(t, e1, e2)
	})
}

// IsNone checks that obj is nil, including typed nil pointers, maps,
// slices, channels and funcs.
func IsNone(call *assertion.Call) error {
	obj := call.Named[ParamObj]
	return check("IsNone", call, func(t assert.TestingT) bool {
		return assert.Nil(t, obj)
	})
}

// IsNotNone is the complement of IsNone.
func IsNotNone(call *assertion.Call) error {
	obj := call.Named[ParamObj]
	return check("IsNotNone", call, func(t assert.TestingT) bool {
		return assert.NotNil(t, obj)
	})
}

// classes interprets cls: a reflect.Type, a []reflect.Type of
// alternatives, or a sample value standing for its own type.
func classes(kind string, cls any) ([]reflect.Type, error) {
	switch c := cls.(type) {
	case nil:
		return nil, assertion.Usagef(kind, "cls must be a type or a sample value")
	case []reflect.Type:
		if len(c) == 0 {
			return nil, assertion.Usagef(kind, "cls lists no types")
		}
		return c, nil
	default:
		t, _ := typeArg(cls)
		return []reflect.Type{t}, nil
	}
}

// instanceOf reports whether obj's dynamic type is typ, or implements
// typ when typ is an interface.
func instanceOf(obj any, typ reflect.Type) bool {
	if obj == nil {
		return false
	}
	ot := reflect.TypeOf(obj)
	if typ.Kind() == reflect.Interface {
		return ot.Implements(typ)
	}
	return ot == typ
}

func typeNames(types []reflect.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// IsInstance checks that obj is of type cls (or one of several).
func IsInstance(call *assertion.Call) error {
	const kind = "IsInstance"
	obj := call.Named[ParamObj]
	types, err := classes(kind, call.Named[ParamCls])
	if err != nil {
		return err
	}

	if len(types) == 1 {
		typ := types[0]
		if obj == nil {
			return fail(kind, call, "<nil> is not an instance of %s", typ)
		}
		if typ.Kind() == reflect.Interface {
			iface := reflect.New(typ).Interface()
			return check(kind, call, func(t assert.TestingT) bool {
				return assert.Implements(t, iface, obj)
			})
		}
		sample := reflect.Zero(typ).Interface()
		return check(kind, call, func(t assert.TestingT) bool {
			return assert.IsType(t, sample, obj)
		})
	}

	for _, typ := range types {
		if instanceOf(obj, typ) {
			return nil
		}
	}
	return fail(kind, call, "%#v is not an instance of any of [%s]", obj, typeNames(types))
}

// NotIsInstance is the complement of IsInstance.
func NotIsInstance(call *assertion.Call) error {
	const kind = "NotIsInstance"
	obj := call.Named[ParamObj]
	types, err := classes(kind, call.Named[ParamCls])
	if err != nil {
		return err
	}

	if len(types) == 1 && types[0].Kind() == reflect.Interface && obj != nil {
		iface := reflect.New(types[0]).Interface()
		return check(kind, call, func(t assert.TestingT) bool {
			return assert.NotImplements(t, iface, obj)
		})
	}

	for _, typ := range types {
		if instanceOf(obj, typ) {
			return fail(kind, call, "%#v is an instance of %s", obj, typ)
		}
	}
	return nil
}
