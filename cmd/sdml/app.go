// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sdml-io/sdml/internal/config"
	"github.com/sdml-io/sdml/internal/issue"
	"github.com/sdml-io/sdml/pkg/diag"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: all Cobra command handlers receive an App reference.
	App struct {
		Config     config.Provider
		stdin      io.Reader
		stdout     io.Writer
		stderr     io.Writer
		getenv     func(string) string
		isTerminal func(io.Writer) bool
		workingDir string
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp. Tests supply buffers and a fixed
	// environment to isolate the commands from the process.
	Dependencies struct {
		Config config.Provider
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// Getenv reads the environment. Nil reads the process environment.
		Getenv func(string) string
		// IsTerminal reports whether a stream is a terminal. The default
		// checks *os.File streams with go-isatty.
		IsTerminal func(io.Writer) bool
		// WorkingDir is the last directory searched for modules and where the
		// catalog search starts. The default is the process working directory.
		WorkingDir string
	}

	// globalOptions holds the persistent flags shared by every command.
	globalOptions struct {
		verbose    bool
		configPath string
		level      string
		format     string
		color      string
		paths      []string
		noStdlib   bool
	}

	// settings is the configuration after flag overrides, together with the
	// values derived from it.
	settings struct {
		cfg      *config.Config
		reporter diag.ReporterConfig
		logger   *log.Logger
		verbose  bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.IsTerminal == nil {
		deps.IsTerminal = isTerminal
	}
	if deps.WorkingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		deps.WorkingDir = wd
	}

	return &App{
		Config:     deps.Config,
		stdin:      deps.Stdin,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
		getenv:     deps.Getenv,
		isTerminal: deps.IsTerminal,
		workingDir: deps.WorkingDir,
	}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && diag.IsTerminal(f)
}

// useColor decides whether output written to w is colored.
func (a *App) useColor(cfg *config.Config, w io.Writer) bool {
	return cfg.Diagnostics.Color.UseColor(a.getenv, a.isTerminal(w))
}

// settings loads the configuration and applies the global flags to it.
// A configuration file named with --config must load; a broken default
// file only produces a warning and the defaults are used.
func (a *App) settings(ctx context.Context, g *globalOptions) (*settings, error) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: g.configPath, Getenv: a.getenv})
	if err != nil {
		if g.configPath != "" || errors.Is(err, context.Canceled) {
			return nil, err
		}
		fmt.Fprintln(a.stderr, NewStyles(a.stderr, false).Warning.Render("warning: ")+formatErrorForDisplay(err, g.verbose))
		cfg = config.DefaultConfig()
	}

	if g.level != "" {
		cfg.Diagnostics.Level = g.level
	}
	if g.format != "" {
		cfg.Diagnostics.Format = config.ReportFormat(g.format)
	}
	if g.color != "" {
		cfg.Diagnostics.Color = config.ColorMode(g.color)
	}
	cfg.SearchPaths = append(cfg.SearchPaths, g.paths...)
	if g.noStdlib {
		cfg.Load.Stdlib = false
	}
	if valid, errs := cfg.IsValid(); !valid {
		return nil, &ExitError{Code: ExitUsage, Err: issue.NewErrorContext().
			WithOperation("apply command line flags").
			WithSuggestion("Run 'sdml --help' to see the accepted flag values").
			Wrap(errors.Join(errs...)).
			BuildError()}
	}

	reporterCfg, err := cfg.Diagnostics.ReporterConfig(a.getenv, a.isTerminal(a.stderr))
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Err: err}
	}

	level := log.WarnLevel
	if g.verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})

	return &settings{cfg: cfg, reporter: reporterCfg, logger: logger, verbose: g.verbose}, nil
}
