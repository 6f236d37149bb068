// SPDX-License-Identifier: MPL-2.0

// Package diag defines the diagnostic model shared by the parser, loader
// and validator: error codes with fixed severities, labelled diagnostics,
// a severity filter, and reporters that render or collect them.
//
// Reporters are configured explicitly with a ReporterConfig; nothing in
// this package reads process-global state.
package diag
