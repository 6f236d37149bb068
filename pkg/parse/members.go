// SPDX-License-Identifier: MPL-2.0

package parse

import (
	"fmt"
	"strconv"

	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/syntax"
)

var memberKinds = map[string]model.MemberKind{
	syntax.KindMemberByValue:     model.ByValue,
	syntax.KindMemberByReference: model.ByReference,
	syntax.KindIdentityMember:    model.Identity,
}

// member dispatches on the target and property fields. A member node with
// neither breaks the grammar contract and panics.
func (c *parseContext) member(node syntax.Node) (*model.Member, error) {
	rule := node.Kind()
	if err := c.expect("member", node, syntax.KindMemberByValue, syntax.KindMemberByReference, syntax.KindIdentityMember); err != nil {
		return nil, err
	}
	comments := c.takeComments()
	nameNode, err := c.field(rule, node, syntax.FieldName)
	if err != nil {
		return nil, err
	}
	name, err := c.identifier(nameNode)
	if err != nil {
		return nil, err
	}
	pop := c.startMember(name)
	defer pop()

	m := &model.Member{Spanned: model.At(node.Span()), Kind: memberKinds[node.Kind()], Name: name}
	m.AddComments(comments...)

	targetNode := node.ChildByFieldName(syntax.FieldTarget)
	propertyNode := node.ChildByFieldName(syntax.FieldProperty)
	switch {
	case targetNode != nil:
		target, err := c.typeReference(targetNode)
		if err != nil {
			return nil, err
		}
		def := model.NewMemberDef(m.Kind, target)
		def.Spanned = model.At(node.Span())
		if scNode := node.ChildByFieldName(syntax.FieldSourceCardinality); scNode != nil {
			sc, err := c.cardinality(scNode)
			if err != nil {
				return nil, err
			}
			def.SourceCardinality = &sc
		}
		if tcNode := node.ChildByFieldName(syntax.FieldTargetCardinality); tcNode != nil {
			if def.TargetCardinality, err = c.cardinality(tcNode); err != nil {
				return nil, err
			}
		}
		if def.Body, err = c.optionalAnnotationBody(node); err != nil {
			return nil, err
		}
		m.Shape = def
	case propertyNode != nil:
		property, err := c.identifierReference(propertyNode)
		if err != nil {
			return nil, err
		}
		m.Shape = &model.PropertyRoleRef{Spanned: model.At(propertyNode.Span()), Property: property}
	default:
		panic(fmt.Sprintf("parse: %s %q at %s has neither a target nor a property", node.Kind(), name, node.Span()))
	}
	return m, nil
}

var typeReferenceKinds = []string{syntax.KindUnknownType, syntax.KindBuiltinSimpleType, syntax.KindIdentifierReference}

func (c *parseContext) typeReference(node syntax.Node) (model.TypeReference, error) {
	const rule = "type_reference"
	if err := c.expect(rule, node, syntax.KindTypeReference); err != nil {
		return model.TypeReference{}, err
	}
	inner, err := c.only(rule, node, typeReferenceKinds)
	if err != nil {
		return model.TypeReference{}, err
	}
	var ref model.TypeReference
	switch inner.Kind() {
	case syntax.KindUnknownType:
		ref = model.UnknownType()
	case syntax.KindBuiltinSimpleType:
		builtin, err := c.builtinType(inner)
		if err != nil {
			return model.TypeReference{}, err
		}
		ref = model.TypeOf(builtin)
	default:
		named, err := c.identifierReference(inner)
		if err != nil {
			return model.TypeReference{}, err
		}
		ref = model.TypeOf(named)
	}
	ref.Spanned = model.At(node.Span())
	return ref, nil
}

// cardinality parses {min}, {min..} or {min..max}.
func (c *parseContext) cardinality(node syntax.Node) (model.Cardinality, error) {
	const rule = "cardinality_expression"
	if err := c.expect(rule, node, syntax.KindCardinalityExpression); err != nil {
		return model.Cardinality{}, err
	}
	minNode, err := c.field(rule, node, syntax.FieldMin)
	if err != nil {
		return model.Cardinality{}, err
	}
	minOccurs, err := c.unsigned(minNode)
	if err != nil {
		return model.Cardinality{}, err
	}
	var card model.Cardinality
	switch {
	case node.ChildByFieldName(syntax.FieldRange) == nil:
		card = model.NewRange(minOccurs, minOccurs)
	case node.ChildByFieldName(syntax.FieldMax) == nil:
		card = model.NewUnbounded(minOccurs)
	default:
		maxOccurs, err := c.unsigned(node.ChildByFieldName(syntax.FieldMax))
		if err != nil {
			return model.Cardinality{}, err
		}
		card = model.NewRange(minOccurs, maxOccurs)
	}
	card.Spanned = model.At(node.Span())
	return card, nil
}

func (c *parseContext) unsigned(node syntax.Node) (uint64, error) {
	if err := c.expect("unsigned", node, syntax.KindUnsigned); err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(c.text(node), 10, 64)
	if err != nil {
		return 0, c.invalidValue(node, "unsigned", err)
	}
	return v, nil
}
