package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"digital.vasic.assertions/pkg/env"
	"digital.vasic.assertions/pkg/logging"
)

// app holds the global flags and the state derived from them.
type app struct {
	envFile string
	noColor bool
	logFile string
	verbose bool

	settings env.Settings
	logger   logging.Logger
	restore  func()
}

func newApp() *app {
	return &app{
		logger:  logging.NullLogger{},
		restore: func() {},
	}
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "assertctl",
		Short: "Run standalone assertions from check files",
		Long: `assertctl evaluates declarative check files. Each check names an
assertion kind (Equal, AlmostEqual, Regex, ...) and its arguments;
arguments starting with "$." are read from a JSON input document.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", "", "Load settings from this .env file (default: ./.env if present)")
	pf.BoolVar(&a.noColor, "no-color", false, "Disable colored output (env "+env.KeyNoColor+")")
	pf.StringVar(&a.logFile, "log-file", "", "Write JSON logs to this file (env "+env.KeyLogFile+")")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Log to stderr and list passed checks")

	root.AddCommand(
		a.newListCmd(),
		a.newValidateCmd(),
		a.newRunCmd(),
		newVersionCmd(),
	)
	return root
}

// setup loads settings, applies them where no flag was given and
// routes the process logging hub to the configured loggers.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	loader := env.NewLoader()
	if a.envFile != "" {
		if err := loader.Load(a.envFile); err != nil {
			return err
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := loader.Load(".env"); err != nil {
			return err
		}
	}
	a.settings = env.ReadSettings(loader)

	flags := cmd.Flags()
	if !flags.Changed("no-color") {
		a.noColor = a.settings.NoColor
	}
	if !flags.Changed("log-file") {
		a.logFile = a.settings.LogFile
	}
	if a.noColor {
		color.NoColor = true
	}

	logger, err := a.buildLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger
	prev := logging.Default().SetSink(logger)
	a.restore = func() {
		logging.Default().SetSink(prev)
		_ = logger.Close()
	}
	return nil
}

func (a *app) buildLogger(stderr io.Writer) (logging.Logger, error) {
	var loggers []logging.Logger
	if a.verbose {
		loggers = append(loggers, logging.NewConsoleLoggerTo(stderr, true))
	}
	if a.logFile != "" {
		level, err := logging.ParseLevel(a.settings.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", env.KeyLogLevel, err)
		}
		if a.verbose {
			level = logging.LevelDebug
		}
		jl, err := logging.NewJSONLogger(logging.LoggerConfig{
			OutputPath: a.logFile,
			Level:      level,
			Fields:     map[string]any{"app": "assertctl"},
		})
		if err != nil {
			return nil, err
		}
		loggers = append(loggers, jl)
	}

	return logging.Combine(loggers...), nil
}

// execute runs assertctl with args and releases the loggers it
// opened.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := newApp()
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	defer func() { a.restore() }()
	return root.ExecuteContext(ctx)
}
