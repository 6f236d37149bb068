// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sdml-io/sdml/pkg/diag"
)

const (
	// FormatStandard renders diagnostics with source excerpts.
	FormatStandard ReportFormat = "standard"
	// FormatCompact renders one comma-separated line per diagnostic.
	FormatCompact ReportFormat = "compact"

	// ColorAuto colors output when stdout is a terminal and the
	// environment does not say otherwise.
	ColorAuto ColorMode = "auto"
	// ColorAlways forces colored output.
	ColorAlways ColorMode = "always"
	// ColorNever disables colored output.
	ColorNever ColorMode = "never"

	// DefaultIndent is the printer indent when none is configured.
	DefaultIndent = 2
	maxIndent     = 8
)

var (
	// ErrInvalidReportFormat is returned when a ReportFormat value is not recognized.
	ErrInvalidReportFormat = errors.New("invalid report format")
	// ErrInvalidColorMode is returned when a ColorMode value is not recognized.
	ErrInvalidColorMode = errors.New("invalid color mode")
	// ErrInvalidIndent is returned when the printer indent is out of range.
	ErrInvalidIndent = errors.New("invalid indent")
	// ErrInvalidSearchPath is returned for an empty search path entry.
	ErrInvalidSearchPath = errors.New("invalid search path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ReportFormat selects the diagnostic reporter.
	ReportFormat string

	// InvalidReportFormatError is returned when a ReportFormat value is not recognized.
	// It wraps ErrInvalidReportFormat for errors.Is() compatibility.
	InvalidReportFormatError struct {
		Value ReportFormat
	}

	// ColorMode controls colored diagnostic output.
	ColorMode string

	// InvalidColorModeError is returned when a ColorMode value is not recognized.
	// It wraps ErrInvalidColorMode for errors.Is() compatibility.
	InvalidColorModeError struct {
		Value ColorMode
	}

	// InvalidIndentError is returned when PrinterConfig.Indent is out of range.
	InvalidIndentError struct {
		Value int
	}

	// InvalidSearchPathError is returned for a whitespace-only search path.
	InvalidSearchPathError struct {
		Index int
		Value string
	}

	// InvalidConfigError aggregates all field errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the complete application configuration.
	Config struct {
		// SearchPaths are extra directories searched for modules.
		SearchPaths []string          `json:"search_paths" toml:"search_paths" mapstructure:"search_paths"`
		Diagnostics DiagnosticsConfig `json:"diagnostics" toml:"diagnostics" mapstructure:"diagnostics"`
		Load        LoadConfig        `json:"load" toml:"load" mapstructure:"load"`
		Validate    ValidateConfig    `json:"validate" toml:"validate" mapstructure:"validate"`
		Printer     PrinterConfig     `json:"printer" toml:"printer" mapstructure:"printer"`
	}

	// DiagnosticsConfig controls how diagnostics are reported.
	DiagnosticsConfig struct {
		// Level is a severity filter name accepted by diag.ParseSeverityFilter.
		Level  string       `json:"level" toml:"level" mapstructure:"level"`
		Format ReportFormat `json:"format" toml:"format" mapstructure:"format"`
		Color  ColorMode    `json:"color" toml:"color" mapstructure:"color"`
	}

	// LoadConfig controls module loading.
	LoadConfig struct {
		Recursive bool `json:"recursive" toml:"recursive" mapstructure:"recursive"`
		Stdlib    bool `json:"stdlib" toml:"stdlib" mapstructure:"stdlib"`
	}

	// ValidateConfig controls validation.
	ValidateConfig struct {
		CheckConstraints bool `json:"check_constraints" toml:"check_constraints" mapstructure:"check_constraints"`
	}

	// PrinterConfig controls the source printer.
	PrinterConfig struct {
		Indent int `json:"indent" toml:"indent" mapstructure:"indent"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		SearchPaths: []string{},
		Diagnostics: DiagnosticsConfig{
			Level:  diag.DefaultSeverityFilter.String(),
			Format: FormatStandard,
			Color:  ColorAuto,
		},
		Load: LoadConfig{
			Recursive: true,
			Stdlib:    true,
		},
		Printer: PrinterConfig{Indent: DefaultIndent},
	}
}

// SeverityFilter parses Diagnostics.Level.
func (c DiagnosticsConfig) SeverityFilter() (diag.SeverityFilter, error) {
	return diag.ParseSeverityFilter(c.Level)
}

// ReporterConfig builds the reporter settings. getenv and isTTY feed the
// automatic color decision.
func (c DiagnosticsConfig) ReporterConfig(getenv func(string) string, isTTY bool) (diag.ReporterConfig, error) {
	filter, err := c.SeverityFilter()
	if err != nil {
		return diag.ReporterConfig{}, err
	}
	return diag.ReporterConfig{
		SeverityFilter: filter,
		UseColor:       c.Color.UseColor(getenv, isTTY),
	}, nil
}

// IsValid returns whether the DiagnosticsConfig has valid fields.
func (c DiagnosticsConfig) IsValid() (bool, []error) {
	var errs []error
	if _, err := c.SeverityFilter(); err != nil {
		errs = append(errs, err)
	}
	if valid, fieldErrs := c.Format.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Color.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	return len(errs) == 0, errs
}

// IsValid returns whether the PrinterConfig indent is in range.
func (c PrinterConfig) IsValid() (bool, []error) {
	if c.Indent < 1 || c.Indent > maxIndent {
		return false, []error{&InvalidIndentError{Value: c.Indent}}
	}
	return true, nil
}

// IsValid returns whether the Config has valid fields. It aggregates
// every field error into one InvalidConfigError.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for i, p := range c.SearchPaths {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, &InvalidSearchPathError{Index: i, Value: p})
		}
	}
	if valid, fieldErrs := c.Diagnostics.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Printer.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

func (f ReportFormat) String() string { return string(f) }

// IsValid returns whether the ReportFormat is one of the defined formats.
func (f ReportFormat) IsValid() (bool, []error) {
	switch f {
	case FormatStandard, FormatCompact:
		return true, nil
	default:
		return false, []error{&InvalidReportFormatError{Value: f}}
	}
}

func (e *InvalidReportFormatError) Error() string {
	return fmt.Sprintf("invalid report format %q (valid: standard, compact)", e.Value)
}

// Unwrap returns ErrInvalidReportFormat for errors.Is() compatibility.
func (e *InvalidReportFormatError) Unwrap() error { return ErrInvalidReportFormat }

func (m ColorMode) String() string { return string(m) }

// IsValid returns whether the ColorMode is one of the defined modes.
func (m ColorMode) IsValid() (bool, []error) {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true, nil
	default:
		return false, []error{&InvalidColorModeError{Value: m}}
	}
}

// UseColor decides whether output is colored. Auto defers to the
// NO_COLOR and CLI_COLOR environment variables, then to isTTY.
func (m ColorMode) UseColor(getenv func(string) string, isTTY bool) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return diag.UseColorFromEnv(getenv, isTTY)
	}
}

func (e *InvalidColorModeError) Error() string {
	return fmt.Sprintf("invalid color mode %q (valid: auto, always, never)", e.Value)
}

// Unwrap returns ErrInvalidColorMode for errors.Is() compatibility.
func (e *InvalidColorModeError) Unwrap() error { return ErrInvalidColorMode }

func (e *InvalidIndentError) Error() string {
	return fmt.Sprintf("invalid printer indent %d (valid: 1 to %d)", e.Value, maxIndent)
}

// Unwrap returns ErrInvalidIndent for errors.Is() compatibility.
func (e *InvalidIndentError) Unwrap() error { return ErrInvalidIndent }

func (e *InvalidSearchPathError) Error() string {
	return fmt.Sprintf("search_paths[%d]: invalid search path %q: must not be empty", e.Index, e.Value)
}

// Unwrap returns ErrInvalidSearchPath for errors.Is() compatibility.
func (e *InvalidSearchPathError) Unwrap() error { return ErrInvalidSearchPath }
