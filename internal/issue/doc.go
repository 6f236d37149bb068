// SPDX-License-Identifier: MPL-2.0

// Package issue turns failures into messages a modeler can act on.
//
// ActionableError records the operation that failed, the module or path it
// failed on and suggestions for fixing it. An error may link a longer
// Markdown explanation, and every diagnostic code has one through Explain.
// Explanations are rendered for the terminal with glamour.
package issue
