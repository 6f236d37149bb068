// SPDX-License-Identifier: MPL-2.0

// Package syntax defines the concrete syntax tree consumed by the tree
// walker in package parse.
//
// The walker only depends on the Node and Grammar interfaces, so any
// producer that yields nodes with the kinds and field names declared in
// kinds.go can drive it. Parser is the built-in producer; tests can also
// assemble trees directly with NewNode and Field.
//
// Malformed input never aborts a parse: unreadable token runs become ERROR
// nodes and required-but-absent nodes are marked missing, leaving the
// walker to report both as diagnostics.
package syntax
