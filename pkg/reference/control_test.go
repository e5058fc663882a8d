package reference

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.assertions/pkg/assertion"
	"digital.vasic.assertions/pkg/logging"
	"digital.vasic.assertions/pkg/warnings"
)

var (
	errBoom  = errors.New("boom")
	errOther = errors.New("other")
)

type codeError struct{ code int }

func (e *codeError) Error() string { return fmt.Sprintf("code %d", e.code) }

func TestRaises(t *testing.T) {
	codeType := reflect.TypeOf((*codeError)(nil))

	tests := []struct {
		name     string
		expected any
		callable any
		args     []any
		want     outcome
	}{
		{"sentinel", errBoom, func() error { return errBoom }, nil, passed},
		{"wrapped sentinel", errBoom, func() error { return fmt.Errorf("ctx: %w", errBoom) }, nil, passed},
		{"with args", errBoom, func(a, b int) error {
			if a+b == 3 {
				return errBoom
			}
			return nil
		}, []any{1, 2}, passed},
		{"value and error results", errBoom, func() (int, error) { return 0, errBoom }, nil, passed},
		{"not raised", errBoom, func() error { return nil }, nil, failed},
		{"no results", errBoom, func() {}, nil, failed},
		{"panic with error", errBoom, func() { panic(errBoom) }, nil, passed},
		{"error type", codeType, func() error { return &codeError{code: 7} }, nil, passed},
		{"any of", []error{errOther, errBoom}, func() error { return errBoom }, nil, passed},
		{"variadic callable", errBoom, func(xs ...int) error {
			if len(xs) == 2 {
				return errBoom
			}
			return nil
		}, []any{1, 2}, passed},
		{"nil arg becomes zero", errBoom, func(p *int) error {
			if p == nil {
				return errBoom
			}
			return nil
		}, []any{nil}, passed},
		{"not a func", errBoom, 42, nil, misuse},
		{"wrong arity", errBoom, func(a int) error { return nil }, nil, misuse},
		{"wrong arg type", errBoom, func(a int) error { return nil }, []any{"x"}, misuse},
		{"nil expected", nil, func() error { return errBoom }, nil, misuse},
		{"bad expected", 42, func() error { return errBoom }, nil, misuse},
		{"non-error type", reflect.TypeOf(0), func() error { return errBoom }, nil, misuse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := newCall(assertion.Named{
				"expected_exception": tt.expected,
				"callable_":          tt.callable,
			}, tt.args...)
			assertOutcome(t, tt.want, Raises(call))
		})
	}
}

func TestRaises_UnexpectedErrorPropagates(t *testing.T) {
	call := newCall(assertion.Named{
		"expected_exception": errBoom,
		"callable_":          func() error { return errOther },
	})

	err := Raises(call)
	assert.True(t, err == errOther, "the callable's error must be returned as-is")
	assert.NotErrorIs(t, err, assertion.ErrFailure)
}

func TestRaises_OtherPanicsPropagate(t *testing.T) {
	call := newCall(assertion.Named{
		"expected_exception": errBoom,
		"callable_":          func() { panic("not an error") },
	})

	assert.PanicsWithValue(t, "not an error", func() {
		_ = Raises(call)
	})
}

func TestRaises_Capture(t *testing.T) {
	var caught error
	call := newCall(assertion.Named{
		"expected_exception": reflect.TypeOf((*codeError)(nil)),
		"callable_":          func() error { return &codeError{code: 3} },
		"capture":            &caught,
	})

	require.NoError(t, Raises(call))
	var ce *codeError
	require.True(t, errors.As(caught, &ce))
	assert.Equal(t, 3, ce.code)
}

func TestRaises_NotRaisedDetail(t *testing.T) {
	err := Raises(newCall(assertion.Named{
		"expected_exception": reflect.TypeOf((*codeError)(nil)),
		"callable_":          func() error { return nil },
	}))

	f, ok := assertion.IsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "*reference.codeError not raised", f.Detail)
}

func TestRaisesRegex(t *testing.T) {
	raise := func() error { return errors.New("bad input 42") }

	err := RaisesRegex(newCall(assertion.Named{
		"expected_exception": reflect.TypeOf((*error)(nil)).Elem(),
		"expected_regex":     `input \d+`,
		"callable_":          raise,
	}))
	assert.NoError(t, err)

	err = RaisesRegex(newCall(assertion.Named{
		"expected_exception": reflect.TypeOf((*error)(nil)).Elem(),
		"expected_regex":     "nope",
		"callable_":          raise,
	}))
	assertOutcome(t, failed, err)

	err = RaisesRegex(newCall(assertion.Named{
		"expected_exception": errBoom,
		"expected_regex":     "(",
		"callable_":          raise,
	}))
	assertOutcome(t, misuse, err)
}

func TestWarns(t *testing.T) {
	emit := func() { warnings.Warn(warnings.Deprecation, "old api") }

	tests := []struct {
		name     string
		expected any
		callable any
		want     outcome
	}{
		{"exact category", warnings.Deprecation, emit, passed},
		{"parent category", warnings.Base, emit, passed},
		{"other category", warnings.User, emit, failed},
		{"nothing emitted", warnings.Base, func() {}, failed},
		{"any of", []*warnings.Category{warnings.User, warnings.Deprecation}, emit, passed},
		{"nil expected", nil, emit, misuse},
		{"not a func", warnings.Base, "x", misuse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Warns(newCall(assertion.Named{
				"expected_warning": tt.expected,
				"callable_":        tt.callable,
			}))
			assertOutcome(t, tt.want, err)
		})
	}
}

func TestWarns_CallableErrorPropagates(t *testing.T) {
	err := Warns(newCall(assertion.Named{
		"expected_warning": warnings.Base,
		"callable_": func() error {
			warnings.Warn(warnings.User, "ignored")
			return errOther
		},
	}))
	assert.True(t, err == errOther)
}

func TestWarns_CaptureAndRelease(t *testing.T) {
	var got *warnings.Warning
	err := Warns(newCall(assertion.Named{
		"expected_warning": warnings.User,
		"callable_":        func(n int) { warnings.Warnf(warnings.User, "n=%d", n) },
		"capture":          &got,
	}, 4))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "n=4", got.Message)

	w := logging.Default().Watch(warnings.LoggerName, logging.LevelWarn)
	defer w.Close()
	warnings.Warn(warnings.User, "after")
	assert.Equal(t, []string{"WARN:warnings:after"}, w.Output())
}

func TestWarnsRegex(t *testing.T) {
	emit := func() { warnings.Warn(warnings.User, "value 3 too big") }

	err := WarnsRegex(newCall(assertion.Named{
		"expected_warning": warnings.User,
		"expected_regex":   `too \w+`,
		"callable_":        emit,
	}))
	assert.NoError(t, err)

	err = WarnsRegex(newCall(assertion.Named{
		"expected_warning": warnings.User,
		"expected_regex":   "small",
		"callable_":        emit,
	}))
	f, ok := assertion.IsFailure(err)
	require.True(t, ok)
	assert.Equal(t, `"small" does not match "value 3 too big"`, f.Detail)

	err = WarnsRegex(newCall(assertion.Named{
		"expected_warning": warnings.Deprecation,
		"expected_regex":   "too",
		"callable_":        emit,
	}))
	f, ok = assertion.IsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "DeprecationWarning not triggered", f.Detail)
}

func TestLogs(t *testing.T) {
	infoOnDB := func() { logging.Get("app.db").Info("hello") }

	tests := []struct {
		name   string
		logger any
		level  any
		block  any
		want   outcome
	}{
		{"child logger at info", "app", "INFO", infoOnDB, passed},
		{"root catches all", nil, nil, infoOnDB, passed},
		{"typed level", "app.db", logging.LevelDebug, infoOnDB, passed},
		{"level too high", "app", "WARN", infoOnDB, failed},
		{"other logger", "web", nil, infoOnDB, failed},
		{"bad level", "app", "LOUD", infoOnDB, misuse},
		{"bad level type", "app", 3.5, infoOnDB, misuse},
		{"bad logger", 7, nil, infoOnDB, misuse},
		{"no block", "app", nil, nil, misuse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Logs(newCall(assertion.Named{
				"logger": tt.logger,
				"level":  tt.level,
				"block":  tt.block,
			}))
			assertOutcome(t, tt.want, err)
		})
	}
}

func TestLogs_Capture(t *testing.T) {
	var got Captured
	err := Logs(newCall(assertion.Named{
		"logger": "svc",
		"block": func() {
			log := logging.Get("svc")
			log.Info("one")
			log.Error("two")
		},
		"capture": &got,
	}))

	require.NoError(t, err)
	assert.Equal(t, []string{"INFO:svc:one", "ERROR:svc:two"}, got.Output)
	assert.Len(t, got.Records, 2)
}

func TestLogs_FailureDetail(t *testing.T) {
	err := Logs(newCall(assertion.Named{"block": func() {}}))

	f, ok := assertion.IsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "no logs of level INFO or higher triggered on root", f.Detail)
}

func TestLogs_BlockErrorPropagates(t *testing.T) {
	err := Logs(newCall(assertion.Named{
		"block": func() error {
			logging.Get("").Info("logged")
			return errBoom
		},
	}))
	assert.True(t, err == errBoom)
}
