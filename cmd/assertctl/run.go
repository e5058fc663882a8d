package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"digital.vasic.assertions/pkg/checks"
	"digital.vasic.assertions/pkg/httpclient"
	"digital.vasic.assertions/pkg/logging"
	"digital.vasic.assertions/pkg/metrics"
	"digital.vasic.assertions/pkg/report"
)

type runOptions struct {
	input     string
	format    string
	reportDir string
	parallel  int
	watch     bool
	monitor   string

	observer checks.Observer
}

func (a *app) newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <file|directory>...",
		Short: "Run check files",
		Long: `Run the checks of one or more check files. Files are validated
first; any invalid file stops the run.

Examples:
  assertctl run smoke.yaml
  assertctl run --input response.json ./checks/
  assertctl run --format json --report-dir reports ./checks/
  assertctl run --watch ./checks/
  assertctl run --watch --monitor :8089 ./checks/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("report-dir") {
				opts.reportDir = a.settings.ReportDir
			}
			if !cmd.Flags().Changed("parallel") {
				opts.parallel = a.settings.Parallel
			}
			reporter, err := newReporter(opts.format, a.verbose)
			if err != nil {
				return err
			}
			if opts.monitor != "" {
				stop := a.startMonitor(cmd.Context(), opts)
				defer stop()
			}

			err = a.runOnce(cmd.Context(), cmd, args, opts, reporter)
			if !opts.watch {
				return err
			}
			if err != nil && !isCheckError(err) {
				return err
			}
			return a.watch(cmd.Context(), cmd, args, opts, reporter)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "", "JSON input document path or http(s) URL (overrides the input named in each file)")
	f.StringVarP(&opts.format, "format", "f", "console", "Output format: console, json or html")
	f.StringVar(&opts.reportDir, "report-dir", "", "Save summaries and run history to this directory")
	f.IntVarP(&opts.parallel, "parallel", "p", 4, "Number of files run concurrently")
	f.BoolVarP(&opts.watch, "watch", "w", false, "Watch files for changes and re-run")
	f.StringVar(&opts.monitor, "monitor", "", "Serve live progress on this address (/events, /ws, /dashboard)")
	return cmd
}

func newReporter(format string, verbose bool) (report.Reporter, error) {
	switch strings.ToLower(format) {
	case "console":
		return report.NewConsoleReporter(verbose), nil
	case "json":
		return report.NewJSONReporter(true), nil
	case "html":
		return report.NewHTMLReporter(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want console, json or html)", format)
	}
}

// isCheckError reports whether err only says that checks or files
// did not pass.
func isCheckError(err error) bool {
	return errors.Is(err, errChecksFailed) || errors.Is(err, errInvalidFiles)
}

// runOnce validates, runs and reports the check files named by args.
func (a *app) runOnce(
	ctx context.Context,
	cmd *cobra.Command,
	args []string,
	opts *runOptions,
	reporter report.Reporter,
) error {
	paths, err := discover(args)
	if err != nil {
		return err
	}
	if !validateAll(cmd, paths, true) {
		return errInvalidFiles
	}

	files := make([]*checks.File, 0, len(paths))
	for _, p := range paths {
		f, err := checks.ParseFile(p)
		if err != nil {
			return err
		}
		files = append(files, f)
	}

	rec := metrics.NewMemoryRecorder()
	runnerOpts := []checks.RunnerOption{
		checks.WithLogger(a.logger),
		checks.WithMetrics(rec),
		checks.WithFetcher(httpclient.New(httpclient.WithToken(a.settings.InputToken))),
	}
	if opts.observer != nil {
		runnerOpts = append(runnerOpts, checks.WithObserver(opts.observer))
	}
	runner := checks.NewRunner(runnerOpts...)
	results, runErr := runner.RunAll(ctx, files, opts.input, opts.parallel)

	if err := writeReport(cmd.OutOrStdout(), reporter, results); err != nil {
		return err
	}
	if opts.reportDir != "" {
		if err := saveReports(opts.reportDir, results); err != nil {
			return err
		}
	}
	for _, kind := range rec.Kinds() {
		a.logger.Debug("kind_stats",
			logging.StringField("kind", kind),
			logging.IntField("passed", rec.CheckCount(kind, string(checks.OutcomePassed))),
			logging.IntField("failed", rec.CheckCount(kind, string(checks.OutcomeFailed))),
			logging.IntField("errors", rec.CheckCount(kind, string(checks.OutcomeError))),
			logging.DurationField("duration", rec.TotalDuration(kind)),
		)
	}

	if runErr != nil {
		return runErr
	}
	for _, r := range results {
		if !r.Passed() {
			return errChecksFailed
		}
	}
	return nil
}

func writeReport(w io.Writer, reporter report.Reporter, results []*checks.RunResult) error {
	data, err := reporter.GenerateMasterSummary(results)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func saveReports(dir string, results []*checks.RunResult) error {
	if err := report.SaveMasterSummary(report.BuildMasterSummary(results), dir); err != nil {
		return err
	}
	history := filepath.Join(dir, "history.jsonl")
	for _, r := range results {
		if err := report.AppendToHistory(history, r); err != nil {
			return err
		}
	}
	return nil
}
