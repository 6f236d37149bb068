// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"

	"github.com/sdml-io/sdml/pkg/printer"

	"github.com/spf13/cobra"
)

type sourceOptions struct {
	input  string
	indent int
	raw    bool
}

func newSourceCommand(app *App, g *globalOptions) *cobra.Command {
	opts := &sourceOptions{}
	sourceCmd := &cobra.Command{
		Use:   "source [module]",
		Short: "Print a module's source",
		Long: `Print a module in canonical form: imports first, then annotations, then
definitions, with default cardinalities and ordinals left out.

With --raw the text the module was loaded from is printed unchanged.`,
		Example: `  sdml source rentals
  sdml source --indent 4 -i ./models/rentals.sdm
  sdml source --raw rentals`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			if (name == "") == (opts.input == "") {
				return &ExitError{Code: ExitUsage, Err: errors.New("exactly one of a module name or --input is required")}
			}
			return runSource(cmd.Context(), app, g, opts, name)
		},
	}

	sourceCmd.Flags().StringVarP(&opts.input, "input", "i", "", "read the module from a file, '-' for standard input")
	sourceCmd.Flags().IntVar(&opts.indent, "indent", 0, "spaces per indentation level (default from config)")
	sourceCmd.Flags().BoolVar(&opts.raw, "raw", false, "print the loaded text instead of the canonical form")

	return sourceCmd
}

func runSource(ctx context.Context, app *App, g *globalOptions, opts *sourceOptions, name string) error {
	s, err := app.settings(ctx, g)
	if err != nil {
		return err
	}
	if opts.indent != 0 {
		s.cfg.Printer.Indent = opts.indent
		if valid, errs := s.cfg.Printer.IsValid(); !valid {
			return &ExitError{Code: ExitUsage, Err: errs[0]}
		}
	}
	sess, err := app.newSession(s)
	if err != nil {
		return err
	}

	m, err := sess.load(ctx, name, opts.input, false)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) || ctx.Err() != nil {
			return err
		}
		sess.reportError(err)
		return sess.done("", true)
	}
	if err := sess.done(m.Name.String(), false); err != nil {
		return err
	}

	if opts.raw {
		if _, err := app.stdout.Write(sess.files.Source(m.File)); err != nil {
			return err
		}
		return nil
	}
	return printer.Write(app.stdout, m, printer.Options{Indent: s.cfg.Printer.Indent})
}
