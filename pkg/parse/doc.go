// SPDX-License-Identifier: MPL-2.0

// Package parse walks a concrete syntax tree and builds the abstract model.
//
// Each rule checks its node for grammar error markers before looking at
// its structure, reports structural problems as bug-level diagnostics and
// returns a typed error that aborts the enclosing construct. Semantic
// problems found while walking, such as duplicate names, are reported as
// diagnostics and parsing continues.
package parse
