// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/sdml-io/sdml/internal/config"
	"github.com/sdml-io/sdml/internal/issue"
	"github.com/sdml-io/sdml/pkg/diag"

	"github.com/spf13/cobra"
)

func newExplainCommand(app *App, g *globalOptions) *cobra.Command {
	var markdown bool
	explainCmd := &cobra.Command{
		Use:   "explain [code]",
		Short: "Explain a diagnostic code",
		Long: `Show the long-form explanation of a diagnostic code such as E0104.
Without a code, list every code with its short description.`,
		Example: `  sdml explain E0104
  sdml explain --markdown W0301
  sdml explain`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listCodes(cmd.Context(), app, g)
			}
			return explainCode(cmd.Context(), app, g, args[0], markdown)
		},
	}

	explainCmd.Flags().BoolVar(&markdown, "markdown", false, "print the explanation as Markdown source")

	return explainCmd
}

func listCodes(ctx context.Context, app *App, g *globalOptions) error {
	s, err := app.settings(ctx, g)
	if err != nil {
		return err
	}
	st := NewStyles(app.stdout, app.useColor(s.cfg, app.stdout))
	severity := map[diag.Severity]func(...string) string{
		diag.SeverityBug:     st.Error.Render,
		diag.SeverityError:   st.Error.Render,
		diag.SeverityWarning: st.Warning.Render,
		diag.SeverityNote:    st.Success.Render,
	}
	for _, code := range diag.Codes() {
		fmt.Fprintf(app.stdout, "%s  %s\n", severity[code.Severity()](code.String()), code.Message())
	}
	return nil
}

func explainCode(ctx context.Context, app *App, g *globalOptions, arg string, markdown bool) error {
	code, ok := diag.ParseErrorCode(strings.ToUpper(strings.TrimSpace(arg)))
	if !ok {
		return &ExitError{Code: ExitUsage, Err: issue.NewErrorContext().
			WithOperation("explain diagnostic code").
			WithResource(arg).
			WithSuggestion("Codes are a severity letter and four digits, such as E0104").
			WithSuggestion("Run 'sdml explain' to list every code").
			BuildError()}
	}
	explanation, ok := issue.Explain(code)
	if !ok {
		return fmt.Errorf("no explanation for %s", code)
	}
	if markdown {
		_, err := fmt.Fprint(app.stdout, explanation.Markdown())
		return err
	}

	s, err := app.settings(ctx, g)
	if err != nil {
		return err
	}
	rendered, err := explanation.Render(glamourStyle(s.cfg, app.useColor(s.cfg, app.stdout)))
	if err != nil {
		return fmt.Errorf("failed to render explanation: %w", err)
	}
	_, err = fmt.Fprint(app.stdout, rendered)
	return err
}

// glamourStyle picks the Markdown style: plain text without color, the
// terminal's own background detection in auto mode, and the dark style
// when color is forced.
func glamourStyle(cfg *config.Config, useColor bool) string {
	switch {
	case !useColor:
		return "notty"
	case cfg.Diagnostics.Color == config.ColorAuto:
		return "auto"
	default:
		return "dark"
	}
}
