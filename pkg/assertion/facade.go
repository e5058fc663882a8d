package assertion

import "fmt"

// CallOption adjusts the named arguments of a single facade call.
type CallOption func(Named)

// Msg overrides the default message for one call.
func Msg(text string) CallOption {
	return func(n Named) { n[MessageKey] = text }
}

// Arg adds an extra named argument to one call. Extra arguments are
// visible to message templates and to the reference function.
func Arg(name string, value any) CallOption {
	return func(n Named) { n[name] = value }
}

// Facade is an Invoker with a fixed parameter shape. Positional values
// passed to Call are mapped onto Kind.Params by position.
type Facade struct {
	kind    Kind
	invoker *Invoker
}

// NewFacade binds kind.Ref. It panics if kind has no Ref or declares
// more required parameters than it has.
func NewFacade(kind Kind, opts ...Option) *Facade {
	if kind.Required > len(kind.Params) {
		panic(fmt.Sprintf(
			"assertion: kind %s requires %d of %d params",
			kind.Name, kind.Required, len(kind.Params),
		))
	}
	return &Facade{
		kind:    kind,
		invoker: NewInvoker(kind.Ref, opts...),
	}
}

// Kind returns the bound kind.
func (f *Facade) Kind() Kind {
	return f.kind
}

// Invoker returns the underlying invoker.
func (f *Facade) Invoker() *Invoker {
	return f.invoker
}

// Call maps values onto the kind's parameters, applies opts and
// delegates to the invoker.
func (f *Facade) Call(values []any, opts ...CallOption) error {
	args, named, err := f.kind.Bind(values)
	if err != nil {
		return err
	}
	for _, opt := range opts {
		opt(named)
	}
	return f.invoker.Invoke(args, named)
}

// Bind maps positional values onto named parameters. Values beyond
// Params are returned as positional args for variadic kinds and
// rejected otherwise.
func (k Kind) Bind(values []any) ([]any, Named, error) {
	if len(values) < k.Required {
		return nil, nil, Usagef(
			k.Name, "expected at least %d arguments (%v), got %d",
			k.Required, k.Params[:k.Required], len(values),
		)
	}
	if len(values) > len(k.Params) && !k.Variadic {
		return nil, nil, Usagef(
			k.Name, "expected at most %d arguments (%v), got %d",
			len(k.Params), k.Params, len(values),
		)
	}

	named := make(Named, len(k.Params)+1)
	var args []any
	for i, v := range values {
		if i < len(k.Params) {
			named[k.Params[i]] = v
			continue
		}
		args = append(args, v)
	}

	return args, named, nil
}
