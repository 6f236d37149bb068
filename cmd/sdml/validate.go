// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sdml-io/sdml/internal/issue"
	"github.com/sdml-io/sdml/internal/watch"
	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/validate"

	"github.com/spf13/cobra"
)

type validateOptions struct {
	input            string
	all              bool
	checkConstraints bool
	failFast         bool
	watch            bool
}

func newValidateCommand(app *App, g *globalOptions) *cobra.Command {
	opts := &validateOptions{}
	validateCmd := &cobra.Command{
		Use:   "validate [module...]",
		Short: "Load and validate modules",
		Long: `Load modules and report every problem found while parsing, resolving
imports and validating definitions.

The exit status is 1 when an error or bug was reported at or above the
configured level.`,
		Example: `  sdml validate rentals
  sdml validate --all rentals
  sdml validate -i ./models/rentals.sdm
  sdml validate --watch rentals
  cat rentals.sdm | sdml validate -i -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.input == "" && len(args) == 0 {
				return &ExitError{Code: ExitUsage, Err: errors.New("a module name or --input is required")}
			}
			if opts.watch && opts.input == stdinPath {
				return &ExitError{Code: ExitUsage, Err: errors.New("--watch cannot read from standard input")}
			}
			if opts.input != "" && len(args) > 0 {
				return &ExitError{Code: ExitUsage, Err: errors.New("module names cannot be combined with --input")}
			}
			return runValidate(cmd.Context(), app, g, opts, args)
		},
	}

	validateCmd.Flags().StringVarP(&opts.input, "input", "i", "", "read the module from a file, '-' for standard input")
	validateCmd.Flags().BoolVar(&opts.all, "all", false, "also validate every imported module")
	validateCmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "stop at the first reported diagnostic")
	validateCmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "validate again whenever a module file changes")
	validateCmd.Flags().BoolVar(&opts.checkConstraints, "check-constraints", false, "check variables in formal constraints")

	return validateCmd
}

func runValidate(ctx context.Context, app *App, g *globalOptions, opts *validateOptions, names []string) error {
	s, err := app.settings(ctx, g)
	if err != nil {
		return err
	}
	sess, err := validateOnce(ctx, app, s, opts, names)
	if !opts.watch {
		return err
	}
	if err := app.keepWatching(err, g.verbose); err != nil {
		return err
	}
	return watchAndValidate(ctx, app, s, opts, names, sess)
}

// validateOnce loads and validates the requested modules in a new session.
// The session is returned so callers can inspect what was loaded.
func validateOnce(ctx context.Context, app *App, s *settings, opts *validateOptions, names []string) (*session, error) {
	sess, err := app.newSession(s)
	if err != nil {
		return nil, err
	}
	if opts.failFast {
		sess.failFast()
	}

	vopts := validate.Options{
		CheckConstraints: s.cfg.Validate.CheckConstraints || opts.checkConstraints,
		Logger:           s.logger,
	}

	targets := names
	if opts.input != "" {
		targets = []string{""}
	}
	var (
		roots  []*model.Module
		failed bool
	)
	for _, name := range targets {
		m, err := sess.load(ctx, name, opts.input, s.cfg.Load.Recursive)
		if err != nil {
			if ctx.Err() != nil {
				return sess, ctx.Err()
			}
			var exitErr *ExitError
			if errors.As(err, &exitErr) {
				return sess, err
			}
			sess.reportError(err)
			failed = true
		}
		if m != nil {
			roots = append(roots, m)
		}
	}

	if opts.all {
		if err := validate.All(ctx, sess.store, sess.sink, vopts); err != nil {
			return sess, err
		}
	} else {
		for _, m := range roots {
			validate.Module(m, sess.store, sess.sink, vopts)
		}
	}

	moduleName := ""
	if len(roots) == 1 {
		moduleName = roots[0].Name.String()
	}
	if err := sess.done(moduleName, failed); err != nil {
		return sess, err
	}

	st := NewStyles(app.stdout, app.useColor(s.cfg, app.stdout))
	for _, m := range roots {
		fmt.Fprintf(app.stdout, "%s module %s is valid\n", st.Success.Render("✓"), st.Highlight.Render(m.Name.String()))
	}
	return sess, nil
}

// watchAndValidate validates again whenever a module file below the search
// path changes, until ctx is canceled.
func watchAndValidate(ctx context.Context, app *App, s *settings, opts *validateOptions, names []string, sess *session) error {
	importedFrom := ""
	if opts.input != "" {
		abs, err := filepath.Abs(opts.input)
		if err != nil {
			return err
		}
		importedFrom = abs
	}
	dirs := sess.resolver.SearchPath(importedFrom)

	w, err := watch.New(watch.Config{
		Dirs:   dirs,
		Logger: s.logger,
		OnChange: func(ctx context.Context, changed []string) error {
			st := NewStyles(app.stderr, s.reporter.UseColor)
			fmt.Fprintf(app.stderr, "%s\n", st.Muted.Render(fmt.Sprintf("changed: %s", strings.Join(changed, ", "))))
			_, err := validateOnce(ctx, app, s, opts, names)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return app.keepWatching(err, s.verbose)
		},
	})
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("watch module files").
			WithResource(strings.Join(dirs, string(filepath.ListSeparator))).
			WithSuggestion("Run from a directory containing modules or pass --path").
			Wrap(err).
			BuildError()
	}

	st := NewStyles(app.stderr, s.reporter.UseColor)
	fmt.Fprintln(app.stderr, st.Muted.Render(fmt.Sprintf("watching %d director%s for changes; press Ctrl+C to stop",
		len(w.Roots()), plural(len(w.Roots()), "y", "ies"))))
	return w.Run(ctx)
}

// keepWatching reports a failed validation run and returns nil so that
// watching continues. Other errors are returned unchanged.
func (a *App) keepWatching(err error, verbose bool) error {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != ExitFailure {
		return err
	}
	if exitErr.Err != nil {
		fmt.Fprintln(a.stderr, formatErrorForDisplay(exitErr.Err, verbose))
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
