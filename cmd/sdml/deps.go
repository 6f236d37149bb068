// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sdml-io/sdml/internal/dag"
	"github.com/sdml-io/sdml/internal/issue"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"
)

const (
	depsFormatTree = "tree"
	depsFormatDOT  = "dot"
	depsFormatTopo = "topo"
)

type depsOptions struct {
	input   string
	format  string
	depth   int
	library bool
}

func newDepsCommand(app *App, g *globalOptions) *cobra.Command {
	opts := &depsOptions{}
	depsCmd := &cobra.Command{
		Use:   "deps [module]",
		Short: "Show a module's imports",
		Long: `Load a module with all of its imports and show the import graph.

Formats:
  tree  the imports of each module, nested (default)
  dot   the graph in Graphviz DOT syntax
  topo  one module per line, every module after the modules it imports

Import cycles are allowed. They are marked in the tree, drawn in the
graph and listed as warnings; only the topo format fails on them.`,
		Example: `  sdml deps rentals
  sdml deps --depth 1 rentals
  sdml deps --format dot rentals | dot -Tsvg > rentals.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			if (name == "") == (opts.input == "") {
				return &ExitError{Code: ExitUsage, Err: errors.New("exactly one of a module name or --input is required")}
			}
			switch opts.format {
			case depsFormatTree, depsFormatDOT, depsFormatTopo:
			default:
				return &ExitError{Code: ExitUsage, Err: fmt.Errorf("invalid format %q (expected tree, dot or topo)", opts.format)}
			}
			if opts.depth < 0 {
				return &ExitError{Code: ExitUsage, Err: fmt.Errorf("invalid depth %d", opts.depth)}
			}
			return runDeps(cmd.Context(), app, g, opts, name)
		},
	}

	depsCmd.Flags().StringVarP(&opts.input, "input", "i", "", "read the module from a file, '-' for standard input")
	depsCmd.Flags().StringVarP(&opts.format, "format", "f", depsFormatTree, "output format (tree|dot|topo)")
	depsCmd.Flags().IntVar(&opts.depth, "depth", 0, "levels of the tree to show, 0 for all")
	depsCmd.Flags().BoolVar(&opts.library, "library", false, "include imports of library modules such as xsd and rdfs")

	return depsCmd
}

func runDeps(ctx context.Context, app *App, g *globalOptions, opts *depsOptions, name string) error {
	s, err := app.settings(ctx, g)
	if err != nil {
		return err
	}
	sess, err := app.newSession(s)
	if err != nil {
		return err
	}

	root, loadErr := sess.load(ctx, name, opts.input, true)
	if loadErr != nil {
		var exitErr *ExitError
		if errors.As(loadErr, &exitErr) || ctx.Err() != nil {
			return loadErr
		}
		sess.reportError(loadErr)
		if root == nil {
			return sess.done("", true)
		}
	}
	if err := sess.done(root.Name.String(), loadErr != nil); err != nil && !isReported(err) {
		return err
	}

	ig := dag.Imports(sess.store.Modules(), opts.library)
	rootName := root.Name.String()
	st := NewStyles(app.stdout, app.useColor(s.cfg, app.stdout))

	switch opts.format {
	case depsFormatDOT:
		if err := ig.WriteDOT(app.stdout, rootName); err != nil {
			return err
		}
	case depsFormatTopo:
		order, err := ig.LoadOrder()
		if err != nil {
			return issue.NewErrorContext().
				WithOperation("order modules").
				WithResource(rootName).
				WithIssue(issue.ImportCycleId).
				WithSuggestion("Use --format tree or --format dot to see where the cycle is").
				Wrap(err).
				BuildError()
		}
		for _, module := range order {
			fmt.Fprintln(app.stdout, module)
		}
	default:
		fmt.Fprintln(app.stdout, importTree(ig, rootName, opts.depth, st).String())
	}

	if opts.format != depsFormatTopo {
		warn := NewStyles(app.stderr, s.reporter.UseColor).Warning
		for _, cycle := range ig.Cycles() {
			fmt.Fprintf(app.stderr, "%s import cycle: %s\n", warn.Render("warning:"), strings.Join(append(cycle, cycle[0]), " -> "))
		}
	}

	if loadErr != nil {
		return &ExitError{Code: ExitFailure}
	}
	return nil
}

// isReported reports whether err only carries an exit status for problems
// already shown to the user.
func isReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Err == nil
}

// importTree renders the imports of name, nesting the imports of each
// imported module up to maxDepth levels. A module already open further up
// the branch is shown once more, marked as a cycle, and not expanded.
func importTree(ig *dag.ImportGraph, name string, maxDepth int, st Styles) *tree.Tree {
	missing := ig.Missing()

	label := func(module string, onPath []string) string {
		switch {
		case slices.Contains(onPath, module):
			return st.Warning.Render(module + " (cycle)")
		case slices.Contains(missing, module):
			return st.Error.Render(module + " (not found)")
		}
		return st.Highlight.Render(module)
	}

	var build func(module string, depth int, onPath []string) *tree.Tree
	build = func(module string, depth int, onPath []string) *tree.Tree {
		t := tree.Root(label(module, onPath[:len(onPath)-1])).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(st.Muted.PaddingRight(1))
		if maxDepth > 0 && depth >= maxDepth {
			return t
		}
		for _, imported := range ig.ImportsOf(module) {
			if slices.Contains(onPath, imported) || len(ig.ImportsOf(imported)) == 0 ||
				(maxDepth > 0 && depth+1 >= maxDepth) {
				t.Child(label(imported, onPath))
				continue
			}
			t.Child(build(imported, depth+1, append(slices.Clone(onPath), imported)))
		}
		return t
	}

	return build(name, 0, []string{name})
}
