// Package assertion provides the dispatch layer that turns an
// externally supplied check function into a standalone assertion
// value. An Invoker binds one ReferenceFunc and an optional default
// message; a Facade adds a fixed parameter shape described by a Kind.
package assertion

// MessageKey is the named argument that carries the resolved failure
// message to a ReferenceFunc.
const MessageKey = "message"

// Named holds the named arguments of a single call.
type Named map[string]any

// Clone returns a shallow copy of n. A nil receiver yields an empty,
// non-nil map.
func (n Named) Clone() Named {
	out := make(Named, len(n)+1)
	for k, v := range n {
		out[k] = v
	}
	return out
}

// Call is what a ReferenceFunc receives: the positional values and
// the named values, the latter always containing MessageKey.
type Call struct {
	// Args holds positional values in call order.
	Args []any

	// Named holds named values. MessageKey maps to a string or nil.
	Named Named
}

// Value returns the named value and whether it was supplied.
func (c *Call) Value(name string) (any, bool) {
	v, ok := c.Named[name]
	return v, ok
}

// Message returns the resolved message, or "" when absent.
func (c *Call) Message() string {
	switch m := c.Named[MessageKey].(type) {
	case string:
		return m
	case nil:
		return ""
	default:
		return stringify(m)
	}
}

// ReferenceFunc performs one concrete check. It returns nil when the
// check holds, a *Failure when it does not, a *UsageError when the
// arguments are malformed, or any other error raised by code it ran
// on the caller's behalf.
type ReferenceFunc func(call *Call) error

// Kind is the configuration record for one assertion kind: which
// ReferenceFunc it binds and which named parameters its positional
// values map onto.
type Kind struct {
	// Name identifies the kind (e.g. "Equal", "AlmostEqual").
	Name string `json:"name" yaml:"name"`

	// Params lists parameter names in positional order.
	Params []string `json:"params" yaml:"params"`

	// Required is how many leading Params must be supplied.
	Required int `json:"required" yaml:"required"`

	// Variadic kinds forward positional values beyond Params
	// as Call.Args.
	Variadic bool `json:"variadic,omitempty" yaml:"variadic,omitempty"`

	// Scoped kinds take a Go callable or block and cannot be
	// driven from declarative check files.
	Scoped bool `json:"scoped,omitempty" yaml:"scoped,omitempty"`

	// Doc is a one-line description of the check.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Ref is the bound reference function.
	Ref ReferenceFunc `json:"-" yaml:"-"`
}

// Optional returns the parameter names that may be omitted.
func (k Kind) Optional() []string {
	if k.Required >= len(k.Params) {
		return nil
	}
	return k.Params[k.Required:]
}
