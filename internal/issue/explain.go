// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"fmt"

	"github.com/sdml-io/sdml/pkg/diag"
)

// codeDetails holds the body of each diagnostic code's explanation.
var codeDetails = map[diag.ErrorCode]string{
	diag.TreeSitterErrorNode: `The parser produced an error node. The source is not valid SDML at the
reported location. This is reported as a bug when the grammar and the
parser disagree about what is valid.`,
	diag.UnexpectedNodeKind: `The parser met a node of a kind it does not handle at this position.
This indicates a mismatch between the grammar and the parser.`,
	diag.MissingNodeKind: `A node the grammar requires, such as a name or a closing ` + "`end`" + `,
is missing from the source.`,
	diag.MissingVariable: `A formal constraint uses a name that is neither bound by a quantifier or
` + "`def`" + ` nor the name of a definition.

~~~sdml
assert limit is
  forall x in self.items, x <= ceiling
end
~~~

Here ` + "`ceiling`" + ` is not bound.`,
	diag.ModuleNotFound: `The module requested on the command line could not be found, or the file
found for it declares a different module.`,
	diag.ImportedModuleNotFound: `A module named in an import statement, or as the prefix of a qualified
name, is not loaded and could not be found.

~~~sdml
module rentals is
  import vehicles
end
~~~

Check that ` + "`vehicles.sdm`" + ` is on the search path.`,
	diag.ModuleVersionNotFound: `A versioned import names a module that does not declare a version URI.`,
	diag.ModuleVersionMismatch: `A versioned import names a version URI different from the one the
imported module declares.`,
	diag.DuplicateDefinitionName: `Two definitions in the same module share a name. The first one is kept.`,
	diag.DuplicateMemberName:     `Two members of the same entity, structure or event share a name.`,
	diag.DuplicateVariantName: `Two variants of the same enum or union share a name. For unions the
name is the rename given with ` + "`as`" + ` when there is one.`,
	diag.InvalidIdentifier: `An identifier must start with a letter and continue with letters, digits
and single underscores.`,
	diag.InvalidLanguageTag: `A language tag must be a well-formed BCP-47 tag, such as ` + "`@en`" + `
or ` + "`@en-GB`" + `.`,
	diag.InvalidValueForType: `A value constructor holds a literal that is not a value of the named
datatype, such as ` + "`xsd:integer(\"x\")`" + `.`,
	diag.InvalidModuleBaseURL: `A module's base URI must be absolute and end in ` + "`/`" + ` or ` + "`#`" + `
so that member names can be appended to it.`,
	diag.InvalidModuleVersionURL: `A module's version URI must be absolute and end in ` + "`/`" + ` or ` + "`#`" + `.`,
	diag.DefinitionNotFound: `A reference names a definition that does not exist in the module it
points into.`,
	diag.TypeDefinitionNotFound: `A type reference names a definition that does not exist in the module it
points into.`,
	diag.DatatypeInvalidBase: `A datatype's base must itself be a datatype.

~~~sdml
datatype Price <- Car
~~~`,
	diag.TypeClassIncompatible: `A reference names a definition of the wrong kind, such as an event whose
source is not an entity or a ` + "`from`" + ` clause naming another kind of definition.`,
	diag.PropertyIncompatible: `A property definition was used where a type is expected. Use a member
of the form ` + "`name in Property`" + ` instead.`,
	diag.RdfDefinitionIncompatible: `An RDF property was used where a type is expected.`,
	diag.FeatureSetNotUnion:        `A feature set must be based on a union.`,
	diag.PropertyReferenceNotProperty: `A member of the form ` + "`name in Property`" + ` names something that is not a
property, or a role the property does not define.`,
	diag.DuplicateModuleImport:     `The same module is imported more than once. Only the first import is kept.`,
	diag.DuplicateDefinitionImport: `The same definition is imported more than once. Only the first import is kept.`,
	diag.ValidationIncomplete: `Formal constraints are not evaluated. Only the variables they use are
checked.`,
	diag.ModuleVersionInfoEmpty: `The module declares a version URI with an empty version string.`,
	diag.IncompleteModule: `The module contains incomplete definitions or members and is still being
authored.`,
	diag.IncompleteDefinition: `The definition has no body, or uses ` + "`unknown`" + ` as a type.`,
	diag.IncompleteMember:     `The member's type is ` + "`unknown`" + `.`,
	diag.StringWithoutLanguage: `Labels and descriptions should carry a language tag.

~~~sdml
@skos:prefLabel = "Car"@en
~~~`,
	diag.UnconstrainedDatatype: `The datatype has no restrictions, so it accepts every value of its base.
Add facets such as ` + "`@xsd:pattern`" + ` or ` + "`@xsd:minInclusive`" + `.`,
	diag.DoubleUnderscoredIdentifier: `Identifiers containing ` + "`__`" + ` are valid but hard to read and may
clash with generated names.`,
}

// Explain returns the long-form explanation of a diagnostic code.
func Explain(code diag.ErrorCode) (*Issue, bool) {
	details, ok := codeDetails[code]
	if !ok {
		return nil, false
	}
	return &Issue{
		mdMsg:    MarkdownMsg(fmt.Sprintf("\n# %s: %s\n\n*%s*\n\n%s\n", code, code.Message(), code.Severity(), details)),
		docLinks: []HttpLink{HttpLink(code.URL())},
	}, true
}
