package assertion

import (
	"fmt"
	"sort"
	"sync"
)

// Registry defines the interface for a catalogue of assertion kinds
// addressable by name.
type Registry interface {
	// Register adds a kind. Returns an error if the name is
	// already registered or the kind is incomplete.
	Register(kind Kind) error

	// Lookup returns the kind registered under name.
	Lookup(name string) (Kind, bool)

	// Kinds returns all kinds sorted by name.
	Kinds() []Kind

	// Invoke calls the named kind with named arguments only,
	// the way declarative callers do.
	Invoke(name string, named Named, opts ...Option) error
}

// DefaultRegistry is the standard Registry implementation. It is
// safe for concurrent use.
type DefaultRegistry struct {
	mu    sync.RWMutex
	kinds map[string]Kind
}

// NewRegistry creates an empty DefaultRegistry, optionally
// pre-populated with kinds. It panics on an invalid or duplicate
// kind.
func NewRegistry(kinds ...Kind) *DefaultRegistry {
	r := &DefaultRegistry{
		kinds: make(map[string]Kind, len(kinds)),
	}
	for _, k := range kinds {
		if err := r.Register(k); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds kind to the registry.
func (r *DefaultRegistry) Register(kind Kind) error {
	if kind.Name == "" {
		return fmt.Errorf("assertion kind has no name")
	}
	if kind.Ref == nil {
		return fmt.Errorf(
			"assertion kind %s has no reference function",
			kind.Name,
		)
	}
	if kind.Required > len(kind.Params) {
		return fmt.Errorf(
			"assertion kind %s requires %d of %d params",
			kind.Name, kind.Required, len(kind.Params),
		)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.kinds[kind.Name]; exists {
		return fmt.Errorf(
			"assertion kind already registered: %s",
			kind.Name,
		)
	}

	r.kinds[kind.Name] = kind
	return nil
}

// Lookup returns the kind registered under name.
func (r *DefaultRegistry) Lookup(name string) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kinds[name]
	return k, ok
}

// HasKind returns true if name is registered.
func (r *DefaultRegistry) HasKind(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Kinds returns all registered kinds sorted by name.
func (r *DefaultRegistry) Kinds() []Kind {
	r.mu.RLock()
	out := make([]Kind, 0, len(r.kinds))
	for _, k := range r.kinds {
		out = append(out, k)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Invoke runs the named kind with named arguments. Required
// parameters missing from named are reported as a *UsageError.
func (r *DefaultRegistry) Invoke(
	name string,
	named Named,
	opts ...Option,
) error {
	kind, ok := r.Lookup(name)
	if !ok {
		return Usagef(name, "unknown assertion kind")
	}

	for _, p := range kind.Params[:kind.Required] {
		if _, ok := named[p]; !ok {
			return Usagef(name, "missing required argument %q", p)
		}
	}

	return NewInvoker(kind.Ref, opts...).Invoke(nil, named)
}
