// SPDX-License-Identifier: MPL-2.0

package diag

import "fmt"

// ErrorCodeURLPrefix is where each code's long-form explanation lives.
const ErrorCodeURLPrefix = "https://sdml.io/errors/#"

// Bugs.
const (
	TreeSitterErrorNode ErrorCode = 2
	UnexpectedNodeKind  ErrorCode = 3
	MissingNodeKind     ErrorCode = 4
	MissingVariable     ErrorCode = 5
)

// Errors.
const (
	ModuleNotFound               ErrorCode = 100
	ImportedModuleNotFound       ErrorCode = 101
	ModuleVersionNotFound        ErrorCode = 102
	ModuleVersionMismatch        ErrorCode = 103
	DuplicateDefinitionName      ErrorCode = 104
	DuplicateMemberName          ErrorCode = 105
	DuplicateVariantName         ErrorCode = 106
	InvalidIdentifier            ErrorCode = 107
	InvalidLanguageTag           ErrorCode = 108
	InvalidValueForType          ErrorCode = 109
	InvalidModuleBaseURL         ErrorCode = 110
	InvalidModuleVersionURL      ErrorCode = 112
	DefinitionNotFound           ErrorCode = 113
	TypeDefinitionNotFound       ErrorCode = 114
	DatatypeInvalidBase          ErrorCode = 115
	TypeClassIncompatible        ErrorCode = 116
	PropertyIncompatible         ErrorCode = 117
	RdfDefinitionIncompatible    ErrorCode = 118
	FeatureSetNotUnion           ErrorCode = 119
	PropertyReferenceNotProperty ErrorCode = 120
)

// Warnings.
const (
	DuplicateModuleImport     ErrorCode = 301
	DuplicateDefinitionImport ErrorCode = 302
	ValidationIncomplete      ErrorCode = 303
	ModuleVersionInfoEmpty    ErrorCode = 304
)

// Notes.
const (
	IncompleteModule            ErrorCode = 500
	IncompleteDefinition        ErrorCode = 501
	IncompleteMember            ErrorCode = 502
	StringWithoutLanguage       ErrorCode = 503
	UnconstrainedDatatype       ErrorCode = 504
	DoubleUnderscoredIdentifier ErrorCode = 505
)

// ErrorCode identifies a kind of diagnostic. Its number fixes its severity:
// below 100 are bugs, 100-299 errors, 300-499 warnings and 500 up notes.
type ErrorCode int

var codeMessages = map[ErrorCode]string{
	TreeSitterErrorNode:          "tree-sitter parse error encountered",
	UnexpectedNodeKind:           "unexpected tree-sitter node",
	MissingNodeKind:              "missing expected tree-sitter node",
	MissingVariable:              "constraint variable not bound",
	ModuleNotFound:               "module not found",
	ImportedModuleNotFound:       "imported module not found",
	ModuleVersionNotFound:        "imported module has no version URI",
	ModuleVersionMismatch:        "imported module version mismatch",
	DuplicateDefinitionName:      "duplicate definition name",
	DuplicateMemberName:          "duplicate member name",
	DuplicateVariantName:         "duplicate variant name",
	InvalidIdentifier:            "invalid identifier",
	InvalidLanguageTag:           "invalid language tag",
	InvalidValueForType:          "invalid value for type",
	InvalidModuleBaseURL:         "invalid module base URL",
	InvalidModuleVersionURL:      "invalid module version URL",
	DefinitionNotFound:           "definition not found",
	TypeDefinitionNotFound:       "type definition not found",
	DatatypeInvalidBase:          "invalid datatype base type",
	TypeClassIncompatible:        "incompatible type for type class",
	PropertyIncompatible:         "incompatible type for property",
	RdfDefinitionIncompatible:    "incompatible RDF definition",
	FeatureSetNotUnion:           "feature set base is not a union",
	PropertyReferenceNotProperty: "property reference is not a property",
	DuplicateModuleImport:        "duplicate module import",
	DuplicateDefinitionImport:    "duplicate definition import",
	ValidationIncomplete:         "validation not complete",
	ModuleVersionInfoEmpty:       "module version info empty",
	IncompleteModule:             "module is incomplete",
	IncompleteDefinition:         "definition is incomplete",
	IncompleteMember:             "member is incomplete",
	StringWithoutLanguage:        "string value has no language tag",
	UnconstrainedDatatype:        "datatype has no restrictions",
	DoubleUnderscoredIdentifier:  "identifier contains double underscores",
}

// Codes returns every defined code in ascending order.
func Codes() []ErrorCode {
	return []ErrorCode{
		TreeSitterErrorNode, UnexpectedNodeKind, MissingNodeKind, MissingVariable,
		ModuleNotFound, ImportedModuleNotFound, ModuleVersionNotFound, ModuleVersionMismatch,
		DuplicateDefinitionName, DuplicateMemberName, DuplicateVariantName, InvalidIdentifier,
		InvalidLanguageTag, InvalidValueForType, InvalidModuleBaseURL, InvalidModuleVersionURL,
		DefinitionNotFound, TypeDefinitionNotFound, DatatypeInvalidBase, TypeClassIncompatible,
		PropertyIncompatible, RdfDefinitionIncompatible, FeatureSetNotUnion, PropertyReferenceNotProperty,
		DuplicateModuleImport, DuplicateDefinitionImport, ValidationIncomplete, ModuleVersionInfoEmpty,
		IncompleteModule, IncompleteDefinition, IncompleteMember, StringWithoutLanguage,
		UnconstrainedDatatype, DoubleUnderscoredIdentifier,
	}
}

// ParseErrorCode parses the printed form of a code, such as "E0104".
func ParseErrorCode(s string) (ErrorCode, bool) {
	for _, code := range Codes() {
		if code.String() == s {
			return code, true
		}
	}
	return 0, false
}

// Severity returns the code's fixed severity.
func (c ErrorCode) Severity() Severity {
	switch n := int(c); {
	case n < 100:
		return SeverityBug
	case n < 300:
		return SeverityError
	case n < 500:
		return SeverityWarning
	default:
		return SeverityNote
	}
}

// Number returns the numeric part of the code.
func (c ErrorCode) Number() int { return int(c) }

// String renders the code as a severity letter and four digits, e.g. E0104.
func (c ErrorCode) String() string {
	var prefix string
	switch c.Severity() {
	case SeverityBug:
		prefix = "B"
	case SeverityError:
		prefix = "E"
	case SeverityWarning:
		prefix = "W"
	default:
		prefix = "I"
	}
	return fmt.Sprintf("%s%04d", prefix, int(c))
}

// Message returns the code's short description.
func (c ErrorCode) Message() string {
	if msg, ok := codeMessages[c]; ok {
		return msg
	}
	return "unknown error"
}

// URL returns the code's explanation URL.
func (c ErrorCode) URL() string {
	return ErrorCodeURLPrefix + c.String()
}
