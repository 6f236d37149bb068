// SPDX-License-Identifier: MPL-2.0

package diag

import (
	"fmt"
	"strings"
)

// ReportCounters tallies reported diagnostics by severity. Notes and help
// are both counted as Info.
type ReportCounters struct {
	Bugs     int
	Errors   int
	Warnings int
	Info     int
}

// Record counts one diagnostic of severity s.
func (c *ReportCounters) Record(s Severity) {
	switch s {
	case SeverityBug:
		c.Bugs++
	case SeverityError:
		c.Errors++
	case SeverityWarning:
		c.Warnings++
	default:
		c.Info++
	}
}

// Add returns the element-wise sum of c and other.
func (c ReportCounters) Add(other ReportCounters) ReportCounters {
	return ReportCounters{
		Bugs:     c.Bugs + other.Bugs,
		Errors:   c.Errors + other.Errors,
		Warnings: c.Warnings + other.Warnings,
		Info:     c.Info + other.Info,
	}
}

// Total counts everything.
func (c ReportCounters) Total() int {
	return c.Bugs + c.Errors + c.Warnings + c.Info
}

// TotalWithoutInfo counts bugs, errors and warnings.
func (c ReportCounters) TotalWithoutInfo() int {
	return c.Bugs + c.Errors + c.Warnings
}

// HasErrors reports whether any bug or error was counted.
func (c ReportCounters) HasErrors() bool {
	return c.Bugs+c.Errors > 0
}

// MostSevere returns the highest severity counted; ok is false when
// nothing was counted.
func (c ReportCounters) MostSevere() (s Severity, ok bool) {
	switch {
	case c.Bugs > 0:
		return SeverityBug, true
	case c.Errors > 0:
		return SeverityError, true
	case c.Warnings > 0:
		return SeverityWarning, true
	case c.Info > 0:
		return SeverityNote, true
	}
	return 0, false
}

// Summary renders the non-zero counts, e.g. "2 errors, 1 warning".
func (c ReportCounters) Summary() string {
	var parts []string
	add := func(n int, singular, plural string) {
		switch {
		case n == 1:
			parts = append(parts, "1 "+singular)
		case n > 1:
			parts = append(parts, fmt.Sprintf("%d %s", n, plural))
		}
	}
	add(c.Bugs, "bug", "bugs")
	add(c.Errors, "error", "errors")
	add(c.Warnings, "warning", "warnings")
	add(c.Info, "informational", "informational")
	return strings.Join(parts, ", ")
}
