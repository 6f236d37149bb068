// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/sdml-io/sdml/internal/config"
	"github.com/sdml-io/sdml/internal/issue"

	"github.com/spf13/cobra"
)

const (
	configFormatCUE  = "cue"
	configFormatTOML = "toml"
)

// newConfigCommand creates the `sdml config` command tree.
func newConfigCommand(app *App, g *globalOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sdml configuration",
		Long: `Manage sdml configuration.

Configuration is stored in:
  - Linux: ~/.config/sdml/config.cue
  - macOS: ~/Library/Application Support/sdml/config.cue
  - Windows: %APPDATA%\sdml\config.cue

Every setting can be overridden with an SDML_ environment variable, such
as SDML_DIAGNOSTICS_LEVEL=warning, and the global flags override both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, g, format)
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", configFormatCUE, "output format (cue|toml)")
	cfgCmd.AddCommand(showCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app, g)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, g)
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, g *globalOptions, format string) error {
	s, err := app.settings(ctx, g)
	if err != nil {
		return err
	}

	switch format {
	case configFormatCUE:
		_, err = fmt.Fprint(app.stdout, config.GenerateCUE(s.cfg))
		return err
	case configFormatTOML:
		out, err := config.GenerateTOML(s.cfg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(app.stdout, out)
		return err
	default:
		return &ExitError{Code: ExitUsage, Err: fmt.Errorf("invalid format %q (expected cue or toml)", format)}
	}
}

func configPath(g *globalOptions) (string, error) {
	if g.configPath != "" {
		return g.configPath, nil
	}
	return config.ConfigFilePath()
}

func showConfigPath(app *App, g *globalOptions) error {
	path, err := configPath(g)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(app.stdout, path)
	return err
}

func initConfig(app *App, g *globalOptions) error {
	path, err := configPath(g)
	if err != nil {
		return err
	}
	created, err := config.CreateDefaultConfig(path)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("create configuration file").
			WithResource(path).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Check that the configuration directory is writable").
			Wrap(err).
			BuildError()
	}

	st := NewStyles(app.stdout, false)
	if !created {
		fmt.Fprintf(app.stdout, "%s %s\n", st.Warning.Render("Configuration file already exists:"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s %s\n", st.Success.Render("Created configuration file:"), path)
	return nil
}
