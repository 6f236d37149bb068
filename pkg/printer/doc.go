// SPDX-License-Identifier: MPL-2.0

// Package printer writes modules back out as source text.
//
// Imports are printed first, then module annotations, then definitions,
// each group in source order. Member cardinalities are written only when
// they differ from the default for the member kind, so printing a parsed
// module and parsing the result yields the same model.
package printer
