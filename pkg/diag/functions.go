// SPDX-License-Identifier: MPL-2.0

package diag

import (
	"fmt"

	"github.com/sdml-io/sdml/pkg/source"
)

const (
	helpErrorNode              = "help: the source is not well-formed; check the syntax near this location"
	helpTypeDefinitionNotFound = "help: did you forget to add an import for this type, or misspell its name?"
	helpDatatypeBase           = "help: a datatype must be based on another datatype or a builtin simple type"
	helpFeatureSetNotUnion     = "help: a feature set must reference a union definition"
	helpPropertyReference      = "help: a member declared with `in` must name a property definition"
)

// located attaches a primary label when span is known, otherwise a note
// naming the subject.
func located(d Diagnostic, file source.FileID, span *source.Span, label, note string) Diagnostic {
	if span != nil {
		return d.WithLabel(PrimaryLabel(file, *span).WithMessage(label))
	}
	if note == "" {
		return d
	}
	return d.WithNote(note)
}

func nameNote(what, name string) string {
	return fmt.Sprintf("%s: `%s`", what, name)
}

// NewFoundErrorNode reports an error marker node produced by the grammar.
func NewFoundErrorNode(file source.FileID, span source.Span, rule string) Diagnostic {
	return New(TreeSitterErrorNode).
		WithLabel(PrimaryLabel(file, span).WithMessage("here")).
		WithNotes(InRule(rule), helpErrorNode)
}

// NewUnexpectedNodeKind reports a node whose kind is not one of expected.
func NewUnexpectedNodeKind(file source.FileID, span source.Span, rule string, expected []string, actual string) Diagnostic {
	return New(UnexpectedNodeKind).
		WithLabels(
			PrimaryLabel(file, span).WithMessage(Found(actual)),
			SecondaryLabel(file, span).WithMessage(ExpectingOneOf(expected)),
		).
		WithNote(InRule(rule))
}

// NewMissingNode reports a required node, or named field, that is absent.
func NewMissingNode(file source.FileID, span source.Span, rule, expected string) Diagnostic {
	return New(MissingNodeKind).
		WithLabel(PrimaryLabel(file, span).WithMessage(fmt.Sprintf("missing node `%s`", expected))).
		WithNote(InRule(rule))
}

// NewMissingVariable reports a constraint variable with no binding.
func NewMissingVariable(file source.FileID, span source.Span, variable string) Diagnostic {
	return New(MissingVariable).
		WithLabel(PrimaryLabel(file, span).WithMessage(fmt.Sprintf("missing a variable named `%s`", variable)))
}

// NewModuleNotFound reports a module name that could not be resolved.
func NewModuleNotFound(name string) Diagnostic {
	return New(ModuleNotFound).WithNote(nameNote("module name", name))
}

// NewImportedModuleNotFound reports an import of a module that could not
// be resolved or loaded.
func NewImportedModuleNotFound(file source.FileID, span *source.Span, name string) Diagnostic {
	d := located(New(ImportedModuleNotFound), file, span, "this import", "")
	return d.WithNote(nameNote("module name", name))
}

// NewModuleVersionNotFound reports a versioned import of a module that
// declares no version URI.
func NewModuleVersionNotFound(file source.FileID, span *source.Span, expected, module string) Diagnostic {
	d := located(New(ModuleVersionNotFound), file, span, "this import", "")
	return d.WithNotes(fmt.Sprintf("expected version URI: <%s>", expected), nameNote("module name", module))
}

// NewModuleVersionMismatch reports a versioned import whose URI differs
// from the imported module's version URI.
func NewModuleVersionMismatch(file source.FileID, span *source.Span, expected, actual string) Diagnostic {
	d := located(New(ModuleVersionMismatch), file, span, "expected this version URI", "")
	return d.WithNotes(fmt.Sprintf("expected version URI: <%s>", expected), fmt.Sprintf("actual version URI: <%s>", actual))
}

// NewModuleNameMismatch reports a resource that declares a module other
// than the one requested.
func NewModuleNameMismatch(requested, declared string, file source.FileID, span *source.Span) Diagnostic {
	d := located(New(ModuleNotFound), file, span, "this module name", "")
	return d.WithNotes(nameNote("requested module name", requested), nameNote("declared module name", declared))
}

func duplicate(code ErrorCode, file source.FileID, first, second source.Span, this string) Diagnostic {
	return New(code).WithLabels(
		PrimaryLabel(file, second).WithMessage(this),
		SecondaryLabel(file, first).WithMessage("previously defined here"),
	)
}

// NewDuplicateDefinition reports a definition name already used in the module.
func NewDuplicateDefinition(file source.FileID, first, second source.Span) Diagnostic {
	return duplicate(DuplicateDefinitionName, file, first, second, "this definition name")
}

// NewDuplicateMember reports a member name already used in the definition.
func NewDuplicateMember(file source.FileID, first, second source.Span) Diagnostic {
	return duplicate(DuplicateMemberName, file, first, second, "this member name")
}

// NewDuplicateVariant reports a variant name already used in the definition.
func NewDuplicateVariant(file source.FileID, first, second source.Span) Diagnostic {
	return duplicate(DuplicateVariantName, file, first, second, "this variant name")
}

// NewInvalidIdentifier reports a string that is not a valid identifier.
func NewInvalidIdentifier(file source.FileID, span *source.Span, value string) Diagnostic {
	return located(New(InvalidIdentifier), file, span, "this identifier", nameNote("value", value))
}

// NewInvalidLanguageTag reports a malformed BCP-47 language tag.
func NewInvalidLanguageTag(file source.FileID, span *source.Span, value string) Diagnostic {
	return located(New(InvalidLanguageTag), file, span, "this language tag", nameNote("value", value))
}

// NewInvalidValueForType reports a literal that cannot be a value of typeName.
func NewInvalidValueForType(file source.FileID, span *source.Span, value, typeName string) Diagnostic {
	d := located(New(InvalidValueForType), file, span, "this value", nameNote("value", value))
	return d.WithNote(nameNote("type name", typeName))
}

// NewInvalidModuleBaseURL reports a base URI that cannot serve as a namespace.
func NewInvalidModuleBaseURL(file source.FileID, span *source.Span, value string) Diagnostic {
	d := located(New(InvalidModuleBaseURL), file, span, "this URL", "")
	return d.WithNotes(nameNote("value", value), "help: a namespace URL must end in `/` or `#`")
}

// NewInvalidModuleVersionURL reports a version URI that cannot serve as a namespace.
func NewInvalidModuleVersionURL(file source.FileID, span *source.Span, value string) Diagnostic {
	d := located(New(InvalidModuleVersionURL), file, span, "this URL", "")
	return d.WithNotes(nameNote("value", value), "help: a namespace URL must end in `/` or `#`")
}

// NewDefinitionNotFound reports a reference to an unknown definition.
func NewDefinitionNotFound(file source.FileID, span *source.Span, name string) Diagnostic {
	return located(New(DefinitionNotFound), file, span, "this reference", nameNote("definition name", name))
}

// NewTypeDefinitionNotFound reports a type reference that resolves to nothing.
func NewTypeDefinitionNotFound(file source.FileID, span *source.Span, name string) Diagnostic {
	d := located(New(TypeDefinitionNotFound), file, span, "this reference", nameNote("type name", name))
	return d.WithNote(helpTypeDefinitionNotFound)
}

// NewDatatypeInvalidBase reports a datatype whose base is not a datatype.
func NewDatatypeInvalidBase(file source.FileID, span *source.Span, name string) Diagnostic {
	d := located(New(DatatypeInvalidBase), file, span, "this reference", nameNote("type name", name))
	return d.WithNote(helpDatatypeBase)
}

// NewTypeClassIncompatible reports a reference to a definition of the wrong kind.
func NewTypeClassIncompatible(file source.FileID, span *source.Span, name string) Diagnostic {
	return located(New(TypeClassIncompatible), file, span, "this usage", nameNote("type name", name))
}

// NewPropertyIncompatible reports a property used where it cannot be.
func NewPropertyIncompatible(file source.FileID, span *source.Span, name string) Diagnostic {
	return located(New(PropertyIncompatible), file, span, "this usage", nameNote("property name", name))
}

// NewRdfDefinitionIncompatible reports an rdf definition used as a type.
func NewRdfDefinitionIncompatible(file source.FileID, span *source.Span, name string) Diagnostic {
	return located(New(RdfDefinitionIncompatible), file, span, "this usage", nameNote("rdf name", name))
}

// NewFeatureSetNotUnion reports a feature set whose base is not a union.
func NewFeatureSetNotUnion(file source.FileID, span *source.Span, name string) Diagnostic {
	d := located(New(FeatureSetNotUnion), file, span, "this reference", nameNote("type name", name))
	return d.WithNote(helpFeatureSetNotUnion)
}

// NewPropertyReferenceNotProperty reports a property role that names a
// definition other than a property.
func NewPropertyReferenceNotProperty(file source.FileID, span *source.Span, name string) Diagnostic {
	d := located(New(PropertyReferenceNotProperty), file, span, "this reference", nameNote("type name", name))
	return d.WithNote(helpPropertyReference)
}

// NewDuplicateModuleImport reports a module imported more than once.
func NewDuplicateModuleImport(file source.FileID, first, second source.Span) Diagnostic {
	return New(DuplicateModuleImport).WithLabels(
		PrimaryLabel(file, second).WithMessage("this module"),
		SecondaryLabel(file, first).WithMessage("previously imported here"),
	)
}

// NewDuplicateDefinitionImport reports a member imported more than once.
func NewDuplicateDefinitionImport(file source.FileID, first, second source.Span) Diagnostic {
	return New(DuplicateDefinitionImport).WithLabels(
		PrimaryLabel(file, second).WithMessage("this member"),
		SecondaryLabel(file, first).WithMessage("previously imported here"),
	)
}

// NewValidationIncomplete reports a construct that was not fully validated.
func NewValidationIncomplete(file source.FileID, span *source.Span, name string) Diagnostic {
	return located(New(ValidationIncomplete), file, span, "this definition", nameNote("type name", name))
}

// NewModuleVersionInfoEmpty reports a version URI given without version info.
func NewModuleVersionInfoEmpty(file source.FileID, span *source.Span) Diagnostic {
	return located(New(ModuleVersionInfoEmpty), file, span, "this value", "")
}

// NewIncompleteModule notes a module containing incomplete definitions.
func NewIncompleteModule(file source.FileID, span *source.Span, name string) Diagnostic {
	return located(New(IncompleteModule), file, span, "this module", nameNote("module name", name))
}

// NewIncompleteDefinition notes a definition without a body or with
// unknown member types.
func NewIncompleteDefinition(file source.FileID, span *source.Span, name string) Diagnostic {
	return located(New(IncompleteDefinition), file, span, "this definition", nameNote("definition name", name))
}

// NewIncompleteMember notes a member whose type is unknown.
func NewIncompleteMember(file source.FileID, span *source.Span, name string) Diagnostic {
	return located(New(IncompleteMember), file, span, "this member", nameNote("member name", name))
}

// NewStringWithoutLanguage notes a label-like string that has no language tag.
func NewStringWithoutLanguage(file source.FileID, span *source.Span, value string) Diagnostic {
	return located(New(StringWithoutLanguage), file, span, "this value", nameNote("value", value))
}

// NewUnconstrainedDatatype notes a datatype with no restricting annotations.
func NewUnconstrainedDatatype(file source.FileID, span *source.Span, name string) Diagnostic {
	return located(New(UnconstrainedDatatype), file, span, "this type", nameNote("type name", name))
}

// NewDoubleUnderscoredIdentifier notes an identifier containing "__".
func NewDoubleUnderscoredIdentifier(file source.FileID, span *source.Span, value string) Diagnostic {
	return located(New(DoubleUnderscoredIdentifier), file, span, "this identifier", nameNote("value", value))
}
