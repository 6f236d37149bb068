// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sdml-io/sdml/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand creates the sdml command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	return newRootCommand(app, &globalOptions{})
}

func newRootCommand(app *App, g *globalOptions) *cobra.Command {
	st := NewStyles(app.stdout, false)
	rootCmd := &cobra.Command{
		Use:   "sdml",
		Short: "Load, validate and inspect SDML domain models",
		Long: st.Title.Render("sdml") + st.Subtitle.Render(" - Simple Domain Modeling Language tools") + `

sdml loads modules written in the Simple Domain Modeling Language, follows
their imports and reports problems with source-anchored diagnostics.

Modules are found by name: a module named 'rentals' is read from
'rentals.sdm' or 'rentals.sdml' in the importing module's directory,
the directories in SDML_PATH, the configured search paths or the
current directory. A sdml-catalog.json file can map names to files.

` + st.Subtitle.Render("Examples:") + `
  sdml validate rentals           Validate a module and its imports
  sdml validate -i model.sdm      Validate the module in a file
  sdml source rentals             Print a module in canonical form
  sdml deps --format dot rentals  Show the import graph as Graphviz DOT
  sdml explain E0104              Explain a diagnostic code`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&g.configPath, "config", "", "config file (default is $HOME/.config/sdml/config.cue)")
	flags.StringVar(&g.level, "level", "", "lowest severity reported (bug|error|warning|note|help|none)")
	flags.StringVar(&g.format, "diagnostic-format", "", "diagnostic format (standard|compact)")
	flags.StringVar(&g.color, "color", "", "colored output (auto|always|never)")
	flags.StringArrayVar(&g.paths, "path", nil, "extra directory to search for modules (repeatable)")
	flags.BoolVar(&g.noStdlib, "no-stdlib", false, "do not add the library modules to the module store")

	rootCmd.AddCommand(
		newValidateCommand(app, g),
		newSourceCommand(app, g),
		newDepsCommand(app, g),
		newExplainCommand(app, g),
		newConfigCommand(app, g),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI with the process streams and exits with the
// command's status. This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	g := &globalOptions{}
	rootCmd := newRootCommand(app, g)

	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			handleError(w, styles, err, g.verbose)
		}),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(ExitFailure)
	}
}

// handleError prints an error returned by a command. Exit errors without a
// cause have already been reported.
func handleError(w io.Writer, styles fang.Styles, err error, verbose bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		fmt.Fprintln(w, formatErrorForDisplay(err, verbose))
		if explanation, ok := ae.Explanation(); ok && verbose {
			if rendered, renderErr := explanation.Render("auto"); renderErr == nil {
				fmt.Fprint(w, rendered)
			}
		}
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
