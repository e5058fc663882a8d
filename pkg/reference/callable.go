package reference

import (
	"errors"
	"fmt"
	"reflect"

	"digital.vasic.assertions/pkg/assertion"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// invoke calls fn with args through reflection and returns the error
// fn raised: its trailing error result, or the value of a panic when
// that value is an error. Panics with any other value are re-panicked.
// A non-nil usage error means fn could not be called with args.
func invoke(kind string, fn any, args []any) (raised error, usage error) {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, assertion.Usagef(kind, "%s must be a func, got %T", ParamCallable, fn)
	}

	in, err := callArgs(kind, rv.Type(), args)
	if err != nil {
		return nil, err
	}

	return call(rv, in), nil
}

func callArgs(kind string, typ reflect.Type, args []any) ([]reflect.Value, error) {
	n := typ.NumIn()
	if typ.IsVariadic() {
		if len(args) < n-1 {
			return nil, assertion.Usagef(kind, "%s takes at least %d arguments, got %d", ParamCallable, n-1, len(args))
		}
	} else if len(args) != n {
		return nil, assertion.Usagef(kind, "%s takes %d arguments, got %d", ParamCallable, n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var pt reflect.Type
		if typ.IsVariadic() && i >= n-1 {
			pt = typ.In(n - 1).Elem()
		} else {
			pt = typ.In(i)
		}

		if a == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		v := reflect.ValueOf(a)
		if !v.Type().AssignableTo(pt) {
			return nil, assertion.Usagef(
				kind, "argument %d of %s: %s is not assignable to %s",
				i, ParamCallable, v.Type(), pt,
			)
		}
		in[i] = v
	}
	return in, nil
}

func call(rv reflect.Value, in []reflect.Value) (raised error) {
	defer func() {
		if p := recover(); p != nil {
			err, ok := p.(error)
			if !ok {
				panic(p)
			}
			raised = err
		}
	}()

	out := rv.Call(in)
	if len(out) == 0 {
		return nil
	}
	last := out[len(out)-1]
	if last.Type() != errorType || last.IsNil() {
		return nil
	}
	return last.Interface().(error)
}

// alternatives flattens expected into the list of acceptable values.
// Slices stand for "any of".
func alternatives(v any) []any {
	if v == nil {
		return nil
	}
	if _, ok := v.(reflect.Type); !ok && kindOf(v) == reflect.Slice {
		rv := reflect.ValueOf(v)
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{v}
}

// matchError reports whether err matches one of expected. An error
// value matches with errors.Is, a reflect.Type of an error type
// matches with errors.As.
func matchError(kind, param string, err error, expected any) (bool, error) {
	alts := alternatives(expected)
	if len(alts) == 0 {
		return false, assertion.Usagef(kind, "%s must not be empty", param)
	}
	for _, alt := range alts {
		ok, uerr := matchOne(kind, param, err, alt)
		if uerr != nil {
			return false, uerr
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func matchOne(kind, param string, err error, expected any) (bool, error) {
	switch e := expected.(type) {
	case reflect.Type:
		if e.Kind() != reflect.Interface && !e.Implements(errorType) {
			return false, assertion.Usagef(kind, "%s: %s is not an error type", param, e)
		}
		target := reflect.New(e)
		return errors.As(err, target.Interface()), nil
	case error:
		return errors.Is(err, e), nil
	default:
		return false, assertion.Usagef(
			kind, "%s must be an error or a reflect.Type, got %T", param, expected,
		)
	}
}

// describe names an expected value the way failure messages show it.
func describe(expected any) string {
	alts := alternatives(expected)
	if len(alts) == 1 {
		return describeOne(alts[0])
	}
	out := "any of ["
	for i, a := range alts {
		if i > 0 {
			out += ", "
		}
		out += describeOne(a)
	}
	return out + "]"
}

func describeOne(v any) string {
	switch e := v.(type) {
	case reflect.Type:
		return e.String()
	case interface{ Name() string }:
		return e.Name()
	case error:
		return fmt.Sprintf("%q", e.Error())
	default:
		return fmt.Sprint(v)
	}
}
