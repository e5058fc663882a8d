package assertion

import "digital.vasic.assertions/pkg/message"

// Invoker forwards calls to a bound ReferenceFunc and manages the
// message argument. It is immutable after construction and safe for
// concurrent use when its ReferenceFunc is.
type Invoker struct {
	ref     ReferenceFunc
	message message.Message
}

// Option configures an Invoker at construction.
type Option func(*Invoker)

// WithMessage sets the default message.
func WithMessage(m message.Message) Option {
	return func(i *Invoker) { i.message = m }
}

// WithLiteral sets a literal default message.
func WithLiteral(text string) Option {
	return WithMessage(message.Literal(text))
}

// WithTemplate sets a template default message, resolved against the
// named arguments of every call.
func WithTemplate(text string) Option {
	return WithMessage(message.Template(text))
}

// NewInvoker binds ref. It panics if ref is nil.
func NewInvoker(ref ReferenceFunc, opts ...Option) *Invoker {
	if ref == nil {
		panic("assertion: NewInvoker called with nil ReferenceFunc")
	}
	i := &Invoker{ref: ref}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Message returns the default message.
func (i *Invoker) Message() message.Message {
	return i.message
}

// Invoke calls the bound ReferenceFunc with args and a copy of named.
//
// An explicit MessageKey entry in named is forwarded untouched.
// Otherwise the default message is resolved against named and
// attached; when there is no default, MessageKey is set to nil.
//
// The error returned by the ReferenceFunc is returned unchanged.
func (i *Invoker) Invoke(args []any, named Named) error {
	call := &Call{Args: args, Named: named.Clone()}

	if _, explicit := named[MessageKey]; !explicit {
		if text, ok := i.message.Resolve(named); ok {
			call.Named[MessageKey] = text
		} else {
			call.Named[MessageKey] = nil
		}
	}

	return i.ref(call)
}
