package asserts

import (
	"digital.vasic.assertions/pkg/assertion"
	"digital.vasic.assertions/pkg/reference"
)

// facade is embedded by every typed assertion.
type facade struct {
	f *assertion.Facade
}

func newFacade(kind assertion.Kind, opts []assertion.Option) facade {
	return facade{f: assertion.NewFacade(kind, opts...)}
}

// Kind returns the bound kind.
func (a facade) Kind() assertion.Kind {
	return a.f.Kind()
}

// Invoker returns the underlying invoker.
func (a facade) Invoker() *assertion.Invoker {
	return a.f.Invoker()
}

func (a facade) call(opts []assertion.CallOption, values ...any) error {
	return a.f.Call(values, opts...)
}

// Places sets the places argument of AlmostEqual and NotAlmostEqual.
func Places(n int) assertion.CallOption {
	return assertion.Arg(reference.ParamPlaces, n)
}

// Delta sets the delta argument of AlmostEqual and NotAlmostEqual.
func Delta(d float64) assertion.CallOption {
	return assertion.Arg(reference.ParamDelta, d)
}

// SeqType sets the seq_type argument of SequenceEqual: a reflect.Type
// or a sample value of the required type.
func SeqType(t any) assertion.CallOption {
	return assertion.Arg(reference.ParamSeqType, t)
}

// Into asks a control-flow assertion to store what it caught in dst:
// an *error for Raises, a **warnings.Warning for Warns, a *Captured
// for Logs.
func Into(dst any) assertion.CallOption {
	return assertion.Arg(reference.ParamCapture, dst)
}

// Captured holds the records seen by AssertLogs.
type Captured = reference.Captured

// splitOptions separates trailing call options from callable args.
func splitOptions(args []any) ([]any, []assertion.CallOption) {
	var opts []assertion.CallOption
	rest := args[:0:0]
	for _, a := range args {
		if opt, ok := a.(assertion.CallOption); ok {
			opts = append(opts, opt)
			continue
		}
		rest = append(rest, a)
	}
	return rest, opts
}
