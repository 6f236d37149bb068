// SPDX-License-Identifier: MPL-2.0

// Package validate checks parsed modules against the modules they import.
//
// Validation never modifies the store and never stops at the first problem:
// every finding is reported to a diag.Sink as an error, warning or
// informational note. References into the built-in library resolve whether
// or not the store was created with it.
package validate
