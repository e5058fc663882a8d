package reference

import (
	"regexp"

	"github.com/stretchr/testify/assert"

	"digital.vasic.assertions/pkg/assertion"
	"digital.vasic.assertions/pkg/logging"
	"digital.vasic.assertions/pkg/warnings"
)

// ParamCapture is an optional named argument through which the
// control-flow kinds hand back what they caught: an *error for
// Raises, a **warnings.Warning for Warns and a *Captured for Logs.
const ParamCapture = "capture"

// Captured holds the records seen by a Logs check.
type Captured struct {
	Records []logging.Record
	Output  []string
}

func store[T any](call *assertion.Call, v T) {
	if dst, ok := call.Named[ParamCapture].(*T); ok && dst != nil {
		*dst = v
	}
}

func raises(kind string, call *assertion.Call, rx *regexp.Regexp) error {
	expected := call.Named[ParamExpectedException]
	if expected == nil {
		return assertion.Usagef(kind, "%s must not be nil", ParamExpectedException)
	}

	raised, uerr := invoke(kind, call.Named[ParamCallable], call.Args)
	if uerr != nil {
		return uerr
	}
	if raised == nil {
		return fail(kind, call, "%s not raised", describe(expected))
	}

	ok, uerr := matchError(kind, ParamExpectedException, raised, expected)
	if uerr != nil {
		return uerr
	}
	if !ok {
		return raised
	}
	store(call, raised)

	if rx == nil {
		return nil
	}
	text := raised.Error()
	return check(kind, call, func(t assert.TestingT) bool {
		return assert.Regexp(t, rx, text)
	})
}

// Raises calls callable_ with the positional args and checks that it
// raises expected_exception, either as its trailing error result or
// as a panic carrying an error. An error that does not match is
// returned unchanged.
func Raises(call *assertion.Call) error {
	return raises("Raises", call, nil)
}

// RaisesRegex is Raises plus a check that expected_regex matches the
// raised error's text.
func RaisesRegex(call *assertion.Call) error {
	const kind = "RaisesRegex"
	rx, err := compilePattern(kind, ParamExpectedRegex, call.Named[ParamExpectedRegex])
	if err != nil {
		return err
	}
	return raises(kind, call, rx)
}

func warns(kind string, call *assertion.Call, rx *regexp.Regexp) error {
	expected := call.Named[ParamExpectedWarning]
	if expected == nil {
		return assertion.Usagef(kind, "%s must not be nil", ParamExpectedWarning)
	}

	catcher := warnings.Catch()
	raised, uerr := func() (error, error) {
		defer catcher.Release()
		return invoke(kind, call.Named[ParamCallable], call.Args)
	}()
	if uerr != nil {
		return uerr
	}
	if raised != nil {
		return raised
	}

	var first *warnings.Warning
	for _, w := range catcher.Warnings() {
		ok, uerr := matchError(kind, ParamExpectedWarning, w, expected)
		if uerr != nil {
			return uerr
		}
		if !ok {
			continue
		}
		if first == nil {
			first = w
		}
		if rx == nil || rx.MatchString(w.Message) {
			store(call, w)
			return nil
		}
	}

	if first != nil {
		return fail(kind, call, "%q does not match %q", rx.String(), first.Message)
	}
	return fail(kind, call, "%s not triggered", describe(expected))
}

// Warns calls callable_ and checks that it emits a warning matching
// expected_warning. An error raised by the callable is returned
// unchanged.
func Warns(call *assertion.Call) error {
	return warns("Warns", call, nil)
}

// WarnsRegex is Warns where the matching warning's message must also
// match expected_regex.
func WarnsRegex(call *assertion.Call) error {
	const kind = "WarnsRegex"
	rx, err := compilePattern(kind, ParamExpectedRegex, call.Named[ParamExpectedRegex])
	if err != nil {
		return err
	}
	return warns(kind, call, rx)
}

// logLevel interprets the level argument: a logging.LogLevel, a level
// name or nil for INFO.
func logLevel(kind string, v any) (logging.LogLevel, error) {
	switch l := v.(type) {
	case nil:
		return logging.LevelInfo, nil
	case logging.LogLevel:
		return l, nil
	case string:
		level, err := logging.ParseLevel(l)
		if err != nil {
			return 0, assertion.Usagef(kind, "%v", err)
		}
		return level, nil
	default:
		return 0, assertion.Usagef(kind, "level must be a LogLevel or a level name, got %T", v)
	}
}

// Logs runs block and checks that it logs at least one record at or
// above level on logger or its descendants in the default hub. The
// watched records are not forwarded to the hub's sink.
func Logs(call *assertion.Call) error {
	const kind = "Logs"

	name := ""
	if v, ok := optional(call, ParamLogger); ok {
		s, ok := v.(string)
		if !ok {
			return assertion.Usagef(kind, "logger must be a name, got %T", v)
		}
		name = s
	}
	level, err := logLevel(kind, call.Named[ParamLevel])
	if err != nil {
		return err
	}

	watcher := logging.Default().Watch(name, level)
	raised, uerr := func() (error, error) {
		defer watcher.Close()
		return invoke(kind, call.Named[ParamBlock], call.Args)
	}()
	if uerr != nil {
		return uerr
	}
	if raised != nil {
		return raised
	}

	captured := Captured{
		Records: watcher.Records(),
		Output:  watcher.Output(),
	}
	store(call, captured)

	if len(captured.Records) == 0 {
		shown := name
		if shown == "" {
			shown = logging.RootName
		}
		return fail(kind, call,
			"no logs of level %s or higher triggered on %s", level, shown)
	}
	return nil
}
