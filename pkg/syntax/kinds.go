// SPDX-License-Identifier: MPL-2.0

package syntax

// Node kinds.
const (
	KindError = "ERROR"

	KindLineComment = "line_comment"

	KindModule          = "module"
	KindModuleBody      = "module_body"
	KindImportStatement = "import_statement"
	KindModuleImport    = "module_import"
	KindMemberImport    = "member_import"

	KindIdentifier          = "identifier"
	KindQualifiedIdentifier = "qualified_identifier"
	KindIdentifierReference = "identifier_reference"

	KindAnnotation         = "annotation"
	KindAnnotationProperty = "annotation_property"
	KindConstraint         = "constraint"
	KindInformalConstraint = "informal_constraint"
	KindFormalConstraint   = "formal_constraint"
	KindConstraintEnv      = "constraint_environment"
	KindEnvironmentDef     = "environment_def"

	KindConstraintSentence    = "constraint_sentence"
	KindSimpleSentence        = "simple_sentence"
	KindAtomicSentence        = "atomic_sentence"
	KindEquation              = "equation"
	KindInequation            = "inequation"
	KindBooleanSentence       = "boolean_sentence"
	KindUnaryBooleanSentence  = "unary_boolean_sentence"
	KindBinaryBooleanSentence = "binary_boolean_sentence"
	KindQuantifiedSentence    = "quantified_sentence"
	KindVariableBinding       = "quantified_variable_binding"
	KindConnective            = "logical_connective"
	KindRelation              = "relational_operator"
	KindQuantifier            = "quantifier"
	KindTerm                  = "term"
	KindFunctionComposition   = "function_composition"
	KindFunctionalTerm        = "functional_term"
	KindReservedSelf          = "reserved_self"
	KindPredicateValue        = "predicate_value"

	KindDefinition         = "definition"
	KindDataTypeDef        = "data_type_def"
	KindEntityDef          = "entity_def"
	KindEntityBody         = "entity_body"
	KindEntityGroup        = "entity_group"
	KindEnumDef            = "enum_def"
	KindEnumBody           = "enum_body"
	KindValueVariant       = "value_variant"
	KindEventDef           = "event_def"
	KindStructureDef       = "structure_def"
	KindStructureBody      = "structure_body"
	KindStructureGroup     = "structure_group"
	KindUnionDef           = "union_def"
	KindUnionBody          = "union_body"
	KindTypeVariant        = "type_variant"
	KindPropertyDef        = "property_def"
	KindPropertyBody       = "property_body"
	KindPropertyRole       = "property_role"
	KindRdfDef             = "rdf_def"
	KindAnnotationOnlyBody = "annotation_only_body"

	KindIdentityMember    = "identity_member"
	KindMemberByValue     = "member_by_value"
	KindMemberByReference = "member_by_reference"

	KindTypeReference         = "type_reference"
	KindUnknownType           = "unknown_type"
	KindBuiltinSimpleType     = "builtin_simple_type"
	KindCardinalityExpression = "cardinality_expression"
	KindRange                 = "range"

	KindValue            = "value"
	KindSimpleValue      = "simple_value"
	KindValueConstructor = "value_constructor"
	KindListOfValues     = "list_of_values"
	KindString           = "string"
	KindQuotedString     = "quoted_string"
	KindLanguageTag      = "language_tag"
	KindInteger          = "integer"
	KindDecimal          = "decimal"
	KindDouble           = "double"
	KindBoolean          = "boolean"
	KindIRI              = "iri"
	KindUnsigned         = "unsigned"
)

// Field names.
const (
	FieldArgument          = "argument"
	FieldBase              = "base"
	FieldBinding           = "binding"
	FieldBody              = "body"
	FieldEnvironment       = "environment"
	FieldFrom              = "from"
	FieldFunction          = "function"
	FieldIdentity          = "identity"
	FieldLanguage          = "language"
	FieldLhs               = "lhs"
	FieldMax               = "max"
	FieldMember            = "member"
	FieldMin               = "min"
	FieldModule            = "module"
	FieldName              = "name"
	FieldOperator          = "operator"
	FieldPredicate         = "predicate"
	FieldProperty          = "property"
	FieldQuantifier        = "quantifier"
	FieldRange             = "range"
	FieldRelation          = "relation"
	FieldRename            = "rename"
	FieldRhs               = "rhs"
	FieldSource            = "source"
	FieldSourceCardinality = "source_cardinality"
	FieldSubject           = "subject"
	FieldTarget            = "target"
	FieldTargetCardinality = "target_cardinality"
	FieldValue             = "value"
	FieldVariable          = "variable"
	FieldVersionInfo       = "version_info"
	FieldVersionURI        = "version_uri"
)

// BuiltinSimpleTypes are the type names that map onto the sdml datatypes.
var BuiltinSimpleTypes = []string{
	"binary", "boolean", "decimal", "double", "integer", "iri", "language", "string", "unsigned",
}

// IsBuiltinSimpleType reports whether name is a builtin simple type.
func IsBuiltinSimpleType(name string) bool {
	for _, b := range BuiltinSimpleTypes {
		if b == name {
			return true
		}
	}
	return false
}
