// SPDX-License-Identifier: MPL-2.0

package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Severities, most severe first.
const (
	SeverityBug Severity = iota
	SeverityError
	SeverityWarning
	SeverityNote
	SeverityHelp
)

// Severity filter levels. FilterNone disables all reporting.
const (
	FilterBug SeverityFilter = iota
	FilterError
	FilterWarning
	FilterNote
	FilterHelp
	FilterNone
)

// ErrInvalidSeverityFilter is returned when parsing an unknown filter name.
var ErrInvalidSeverityFilter = errors.New("invalid severity filter")

type (
	// Severity ranks a diagnostic.
	Severity int

	// SeverityFilter is the least severe level that is still reported.
	SeverityFilter int
)

var (
	severityNames = [...]string{"bug", "error", "warning", "note", "help"}
	filterNames   = [...]string{"bug", "error", "warning", "note", "help", "none"}
)

func (s Severity) String() string {
	if s >= 0 && int(s) < len(severityNames) {
		return severityNames[s]
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// DefaultSeverityFilter reports errors and bugs.
const DefaultSeverityFilter = FilterError

func (f SeverityFilter) String() string {
	if f >= 0 && int(f) < len(filterNames) {
		return filterNames[f]
	}
	return fmt.Sprintf("SeverityFilter(%d)", int(f))
}

// Enabled reports whether diagnostics of severity s pass the filter.
func (f SeverityFilter) Enabled(s Severity) bool {
	if f == FilterNone {
		return false
	}
	return int(s) <= int(f)
}

// ParseSeverityFilter parses a filter name such as "warning" or "none".
func ParseSeverityFilter(s string) (SeverityFilter, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "info" {
		name = "note"
	}
	for i, n := range filterNames {
		if n == name {
			return SeverityFilter(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (expected one of %s)", ErrInvalidSeverityFilter, s, strings.Join(filterNames[:], ", "))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *SeverityFilter) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverityFilter(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (f SeverityFilter) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
