package assertion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"digital.vasic.assertions/pkg/message"
)

// mockReference records what the invoker forwards.
type mockReference struct {
	mock.Mock
}

func (m *mockReference) Check(call *Call) error {
	args := m.Called(call.Args, call.Named)
	return args.Error(0)
}

func TestNewInvoker_NilReferencePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewInvoker(nil)
	})
}

func TestNewInvoker_StoresMessage(t *testing.T) {
	ref := func(*Call) error { return nil }

	tests := []struct {
		name string
		opts []Option
		want message.Message
	}{
		{"none", nil, message.None()},
		{"literal", []Option{WithLiteral("Hello")}, message.Literal("Hello")},
		{"template", []Option{WithTemplate("$a")}, message.Template("$a")},
		{"explicit", []Option{WithMessage(message.Literal("x"))}, message.Literal("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := NewInvoker(ref, tt.opts...)
			assert.Equal(t, tt.want, inv.Message())
		})
	}
}

func TestInvoker_Invoke_ForwardsArguments(t *testing.T) {
	messages := map[string]message.Message{
		"none":     message.None(),
		"literal":  message.Literal("Hello"),
		"template": message.Template("msg $a  $b"),
	}
	namedSets := map[string]Named{
		"unrelated": {"testing": "hello there"},
		"explicit":  {"message": "message"},
		"template":  {"a": 1, "b": 2},
	}
	positional := []any{"hello", nil, 2}

	for mName, msg := range messages {
		for nName, named := range namedSets {
			t.Run(mName+"/"+nName, func(t *testing.T) {
				var expectedMsg any
				if text, ok := msg.Resolve(named); ok {
					expectedMsg = text
				}
				expected := Named{MessageKey: expectedMsg}
				for k, v := range named {
					expected[k] = v
				}

				ref := &mockReference{}
				ref.On("Check", positional, expected).Return(nil).Once()

				inv := NewInvoker(ref.Check, WithMessage(msg))
				require.NoError(t, inv.Invoke(positional, named))
				ref.AssertExpectations(t)
			})
		}
	}
}

func TestInvoker_Invoke_DoesNotMutateCallerMap(t *testing.T) {
	named := Named{"first": 1}
	inv := NewInvoker(func(c *Call) error {
		c.Named["first"] = 99
		return nil
	}, WithLiteral("fallback"))

	require.NoError(t, inv.Invoke(nil, named))
	assert.Equal(t, Named{"first": 1}, named)
}

func TestInvoker_Invoke_ExplicitMessageOverridesDefault(t *testing.T) {
	var seen []string
	inv := NewInvoker(func(c *Call) error {
		seen = append(seen, c.Message())
		return nil
	}, WithLiteral("fallback"))

	require.NoError(t, inv.Invoke(nil, Named{MessageKey: "explicit"}))
	require.NoError(t, inv.Invoke(nil, nil))

	assert.Equal(t, []string{"explicit", "fallback"}, seen)
	assert.Equal(t, message.Literal("fallback"), inv.Message())
}

func TestInvoker_Invoke_TemplateUnresolvedPlaceholders(t *testing.T) {
	var got string
	inv := NewInvoker(func(c *Call) error {
		got = c.Message()
		return nil
	}, WithTemplate("$first vs $missing"))

	require.NoError(t, inv.Invoke(nil, Named{"first": 3}))
	assert.Equal(t, "3 vs $missing", got)
}

func TestInvoker_Invoke_PropagatesErrorUnchanged(t *testing.T) {
	failure := &Failure{Kind: "Equal", Message: "m"}
	other := errors.New("boom")

	for _, want := range []error{failure, other} {
		inv := NewInvoker(func(*Call) error { return want })
		got := inv.Invoke(nil, nil)
		assert.Same(t, want, got)
	}
}

func TestCall_Message(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "hello", "hello"},
		{"nil", nil, ""},
		{"stringer", message.Literal("lit"), "lit"},
		{"other", 42, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Call{Named: Named{MessageKey: tt.value}}
			assert.Equal(t, tt.want, c.Message())
		})
	}
}
