package checks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"digital.vasic.assertions/pkg/assertion"
	"digital.vasic.assertions/pkg/asserts"
	"digital.vasic.assertions/pkg/httpclient"
	"digital.vasic.assertions/pkg/logging"
	"digital.vasic.assertions/pkg/metrics"
)

// Outcome classifies the result of one check.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeError   Outcome = "error"
	OutcomeSkipped Outcome = "skipped"
)

// Result is the outcome of a single check.
type Result struct {
	ID       string        `json:"id"`
	Kind     string        `json:"kind"`
	Outcome  Outcome       `json:"outcome"`
	Message  string        `json:"message,omitempty"`
	Detail   string        `json:"detail,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// RunResult is the outcome of running every check of one file.
type RunResult struct {
	RunID     string        `json:"run_id"`
	Name      string        `json:"name"`
	Source    string        `json:"source,omitempty"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Results   []Result      `json:"results"`
}

// Count returns how many results have outcome o.
func (r *RunResult) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Passed reports whether no check failed or errored.
func (r *RunResult) Passed() bool {
	return r.Count(OutcomeFailed) == 0 && r.Count(OutcomeError) == 0
}

// Fetcher retrieves input documents named by URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithRegistry sets the kind registry checks are resolved against.
func WithRegistry(reg assertion.Registry) RunnerOption {
	return func(r *Runner) {
		r.registry = reg
	}
}

// WithLogger sets the logger used by the runner.
func WithLogger(logger logging.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(rec metrics.Recorder) RunnerOption {
	return func(r *Runner) {
		r.metrics = rec
	}
}

// WithFetcher sets how http and https inputs are retrieved.
func WithFetcher(f Fetcher) RunnerOption {
	return func(r *Runner) {
		r.fetcher = f
	}
}

// Runner evaluates check files.
type Runner struct {
	registry  assertion.Registry
	logger    logging.Logger
	metrics   metrics.Recorder
	fetcher   Fetcher
	observers []Observer
}

// NewRunner creates a Runner. By default it uses the standard kind
// registry, discards logs and records no metrics.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: asserts.Registry(),
		logger:   logging.NullLogger{},
		metrics:  metrics.NoopRecorder{},
		fetcher:  httpclient.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates the checks of file in order against the JSON input
// document, which may be nil. Check failures are reported in the
// result; the returned error is non-nil only when the context is
// cancelled or input is malformed.
func (r *Runner) Run(
	ctx context.Context,
	file *File,
	input []byte,
) (*RunResult, error) {
	if input != nil && !ValidInput(input) {
		return nil, fmt.Errorf("input for %s is not valid JSON", file.Name)
	}

	run := &RunResult{
		RunID:     uuid.New().String(),
		Name:      file.Name,
		Source:    file.Source,
		StartTime: time.Now(),
		Results:   make([]Result, 0, len(file.Checks)),
	}
	logger := r.logger.WithFields(
		logging.StringField("run_id", run.RunID),
		logging.StringField("file", file.Name),
	)
	logger.Info("run_started", logging.IntField("checks", len(file.Checks)))
	r.metrics.IncrementRunTotal()
	r.emit(Event{Type: EventRunStarted, RunID: run.RunID, File: file.Name})

	var err error
	for i, c := range file.Checks {
		if err = ctx.Err(); err != nil {
			break
		}
		r.metrics.SetActiveChecks(len(file.Checks) - i)
		r.emit(Event{Type: EventCheckStarted, RunID: run.RunID, File: file.Name, CheckID: c.ID, Kind: c.Kind})
		res := r.evaluate(c, input)
		run.Results = append(run.Results, res)
		r.emit(Event{
			Type:     EventCheckFinished,
			RunID:    run.RunID,
			File:     file.Name,
			CheckID:  c.ID,
			Kind:     c.Kind,
			Outcome:  res.Outcome,
			Message:  outcomeMessage(res),
			Duration: res.Duration,
		})

		fields := []logging.Field{
			logging.StringField("check", c.ID),
			logging.StringField("kind", c.Kind),
			logging.StringField("outcome", string(res.Outcome)),
			logging.DurationField("duration", res.Duration),
		}
		switch res.Outcome {
		case OutcomeFailed:
			logger.Warn("check_failed", append(fields, logging.StringField("detail", res.Detail))...)
		case OutcomeError:
			logger.Error("check_error", append(fields, logging.StringField("error", res.Error))...)
		default:
			logger.Debug("check_done", fields...)
		}
	}
	r.metrics.SetActiveChecks(0)

	run.EndTime = time.Now()
	run.Duration = run.EndTime.Sub(run.StartTime)
	logger.Info("run_finished",
		logging.IntField("passed", run.Count(OutcomePassed)),
		logging.IntField("failed", run.Count(OutcomeFailed)),
		logging.IntField("errors", run.Count(OutcomeError)),
		logging.DurationField("duration", run.Duration),
	)
	r.emit(Event{Type: EventRunFinished, RunID: run.RunID, File: file.Name, Duration: run.Duration})
	return run, err
}

// evaluate runs one check. A panic in the reference function is
// reported as an error outcome.
func (r *Runner) evaluate(c Check, input []byte) (res Result) {
	res = Result{ID: c.ID, Kind: c.Kind}
	if c.Skip {
		res.Outcome = OutcomeSkipped
		return res
	}

	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			res.Outcome = OutcomeError
			res.Error = fmt.Sprintf("panic: %v", p)
		}
		res.Duration = time.Since(start)
		r.metrics.RecordCheck(c.Kind, string(res.Outcome), res.Duration)
	}()

	err := r.invoke(c, input)
	classify(&res, err)
	return res
}

func (r *Runner) invoke(c Check, input []byte) error {
	kind, ok := r.registry.Lookup(c.Kind)
	if !ok {
		return assertion.Usagef(c.Kind, "unknown assertion kind")
	}
	if kind.Scoped {
		return assertion.Usagef(c.Kind, "needs a Go callable and cannot run from a file")
	}

	named, err := ResolveArgs(c.Args, input)
	if err != nil {
		return assertion.Usagef(c.Kind, "%v", err)
	}

	var opts []assertion.Option
	if c.Message != "" {
		if c.Template {
			opts = append(opts, assertion.WithTemplate(c.Message))
		} else {
			opts = append(opts, assertion.WithLiteral(c.Message))
		}
	}
	return r.registry.Invoke(c.Kind, named, opts...)
}

func classify(res *Result, err error) {
	if err == nil {
		res.Outcome = OutcomePassed
		return
	}
	if f, ok := assertion.IsFailure(err); ok {
		res.Outcome = OutcomeFailed
		res.Message = f.Message
		res.Detail = f.Detail
		return
	}
	res.Outcome = OutcomeError
	var usage *assertion.UsageError
	if errors.As(err, &usage) {
		res.Error = usage.Reason
		return
	}
	res.Error = err.Error()
}

// RunFile runs file against the document at inputPath, a file path
// or an http(s) URL. An empty inputPath falls back to the input named
// by the file itself.
func (r *Runner) RunFile(
	ctx context.Context,
	file *File,
	inputPath string,
) (*RunResult, error) {
	if inputPath == "" {
		inputPath = file.InputPath()
	}
	var input []byte
	switch {
	case inputPath == "":
	case httpclient.IsURL(inputPath):
		data, err := r.fetcher.Fetch(ctx, inputPath)
		if err != nil {
			return nil, fmt.Errorf("fetch input %s: %w", inputPath, err)
		}
		input = data
	default:
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, fmt.Errorf("read input %s: %w", inputPath, err)
		}
		input = data
	}
	return r.Run(ctx, file, input)
}
