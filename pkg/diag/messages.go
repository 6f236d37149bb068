// SPDX-License-Identifier: MPL-2.0

package diag

import (
	"fmt"
	"strings"
)

// Expecting formats a single expected node kind.
func Expecting(kind string) string {
	return fmt.Sprintf("expecting: `%s`", kind)
}

// ExpectingOneOf formats a list of expected node kinds. A single kind is
// formatted as Expecting does.
func ExpectingOneOf(kinds []string) string {
	if len(kinds) == 1 {
		return Expecting(kinds[0])
	}
	quoted := make([]string, len(kinds))
	for i, k := range kinds {
		quoted[i] = "`" + k + "`"
	}
	return "expecting one of: " + strings.Join(quoted, "|")
}

// Found formats the node kind actually encountered.
func Found(kind string) string {
	return fmt.Sprintf("found `%s`", kind)
}

// InRule formats the grammar rule a diagnostic was raised in.
func InRule(rule string) string {
	return fmt.Sprintf("in grammar rule: `%s`", rule)
}
