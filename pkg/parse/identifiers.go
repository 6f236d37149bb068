// SPDX-License-Identifier: MPL-2.0

package parse

import (
	"strings"

	"github.com/sdml-io/sdml/pkg/diag"
	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/syntax"
)

// sdmlModule qualifies the builtin simple types.
var sdmlModule = model.NewUncheckedIdentifier("sdml")

func (c *parseContext) identifier(node syntax.Node) (model.Identifier, error) {
	if err := c.expect("identifier", node, syntax.KindIdentifier); err != nil {
		return model.Identifier{}, err
	}
	return model.NewUncheckedIdentifier(c.text(node)).WithSpan(node.Span()), nil
}

func (c *parseContext) qualifiedIdentifier(node syntax.Node) (model.QualifiedIdentifier, error) {
	const rule = "qualified_identifier"
	if err := c.expect(rule, node, syntax.KindQualifiedIdentifier); err != nil {
		return model.QualifiedIdentifier{}, err
	}
	moduleNode, err := c.field(rule, node, syntax.FieldModule)
	if err != nil {
		return model.QualifiedIdentifier{}, err
	}
	module, err := c.identifier(moduleNode)
	if err != nil {
		return model.QualifiedIdentifier{}, err
	}
	memberNode, err := c.field(rule, node, syntax.FieldMember)
	if err != nil {
		return model.QualifiedIdentifier{}, err
	}
	member, err := c.identifier(memberNode)
	if err != nil {
		return model.QualifiedIdentifier{}, err
	}
	return model.NewQualifiedIdentifier(module, member).WithSpan(node.Span()), nil
}

func (c *parseContext) identifierReference(node syntax.Node) (model.IdentifierReference, error) {
	const rule = "identifier_reference"
	if err := c.expect(rule, node, syntax.KindIdentifierReference); err != nil {
		return nil, err
	}
	inner, err := c.only(rule, node, []string{syntax.KindIdentifier, syntax.KindQualifiedIdentifier})
	if err != nil {
		return nil, err
	}
	if inner.Kind() == syntax.KindQualifiedIdentifier {
		return c.qualifiedIdentifier(inner)
	}
	return c.identifier(inner)
}

// builtinType maps a builtin simple type keyword onto sdml:<name>.
func (c *parseContext) builtinType(node syntax.Node) (model.IdentifierReference, error) {
	if err := c.expect("builtin_simple_type", node, syntax.KindBuiltinSimpleType); err != nil {
		return nil, err
	}
	member := model.NewUncheckedIdentifier(c.text(node)).WithSpan(node.Span())
	return model.NewQualifiedIdentifier(sdmlModule, member).WithSpan(node.Span()), nil
}

func (c *parseContext) moduleImport(node syntax.Node) (*model.ModuleImport, error) {
	const rule = "module_import"
	nameNode, err := c.field(rule, node, syntax.FieldName)
	if err != nil {
		return nil, err
	}
	name, err := c.identifier(nameNode)
	if err != nil {
		return nil, err
	}
	imp := &model.ModuleImport{Spanned: model.At(node.Span()), Name: name}
	if versionNode := node.ChildByFieldName(syntax.FieldVersionURI); versionNode != nil {
		if err := c.expect(rule, versionNode, syntax.KindIRI); err != nil {
			return nil, err
		}
		if u, ok := c.moduleURI(versionNode, diag.NewInvalidModuleVersionURL); ok {
			imp.VersionURI = u
		}
	}
	return imp, nil
}

func (c *parseContext) memberImport(node syntax.Node) (*model.MemberImport, error) {
	nameNode, err := c.field("member_import", node, syntax.FieldName)
	if err != nil {
		return nil, err
	}
	name, err := c.qualifiedIdentifier(nameNode)
	if err != nil {
		return nil, err
	}
	return &model.MemberImport{Spanned: model.At(node.Span()), Name: name}, nil
}

func (c *parseContext) iriText(node syntax.Node) string {
	return strings.TrimSuffix(strings.TrimPrefix(c.text(node), "<"), ">")
}
