package asserts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.assertions/pkg/assertion"
)

func TestKinds_Complete(t *testing.T) {
	seen := make(map[string]bool)
	for _, k := range Kinds() {
		assert.False(t, seen[k.Name], "duplicate kind %s", k.Name)
		seen[k.Name] = true
		assert.NotNil(t, k.Ref, k.Name)
		assert.NotEmpty(t, k.Doc, k.Name)
		assert.LessOrEqual(t, k.Required, len(k.Params), k.Name)
	}
}

func TestKinds_ScopedAreControlFlow(t *testing.T) {
	scoped := map[string]bool{
		"Raises": true, "RaisesRegex": true,
		"Warns": true, "WarnsRegex": true, "Logs": true,
	}
	for _, k := range Kinds() {
		assert.Equal(t, scoped[k.Name], k.Scoped, k.Name)
	}
}

func TestRegistry(t *testing.T) {
	r := Registry()
	assert.Same(t, r, Registry())
	assert.Len(t, r.Kinds(), len(Kinds()))

	k, ok := r.Lookup("AlmostEqual")
	require.True(t, ok)
	assert.Equal(t, []string{"places", "delta"}, k.Optional())

	err := r.Invoke("Equal", assertion.Named{"first": 1, "second": 1})
	assert.NoError(t, err)

	err = r.Invoke("Equal", assertion.Named{"first": 1, "second": 2},
		assertion.WithTemplate("got $first"))
	f, ok := assertion.IsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "got 1", f.Message)

	err = r.Invoke("Equal", assertion.Named{"first": 1})
	assert.ErrorIs(t, err, assertion.ErrUsage)
}

func TestNewRegistry_IsIndependent(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(assertion.Kind{
		Name:     "Always",
		Required: 0,
		Ref:      func(*assertion.Call) error { return nil },
	}))

	assert.True(t, r.HasKind("Always"))
	assert.False(t, Registry().HasKind("Always"))
}
