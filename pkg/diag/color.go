// SPDX-License-Identifier: MPL-2.0

package diag

import (
	"os"

	"github.com/mattn/go-isatty"
)

const (
	// EnvNoColor disables color whenever it is set, whatever its value.
	EnvNoColor = "NO_COLOR"
	// EnvCliColor disables color when "0" and forces it otherwise.
	EnvCliColor = "CLI_COLOR"
)

// ReporterConfig is owned by the caller and handed to a reporter when it
// is constructed.
type ReporterConfig struct {
	SeverityFilter SeverityFilter
	UseColor       bool
}

// DefaultReporterConfig reports errors and bugs without color.
func DefaultReporterConfig() ReporterConfig {
	return ReporterConfig{SeverityFilter: DefaultSeverityFilter}
}

// UseColorFromEnv decides whether to color output. NO_COLOR wins over
// CLI_COLOR, which wins over terminal detection. A nil getenv reads the
// process environment.
func UseColorFromEnv(getenv func(string) string, isTTY bool) bool {
	lookup := func(key string) (string, bool) {
		if getenv == nil {
			return os.LookupEnv(key)
		}
		v := getenv(key)
		return v, v != ""
	}
	if _, set := lookup(EnvNoColor); set {
		return false
	}
	if v, set := lookup(EnvCliColor); set {
		return v != "0"
	}
	return isTTY
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
