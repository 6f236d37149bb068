// SPDX-License-Identifier: MPL-2.0

package parse

import (
	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/syntax"
)

var definitionKinds = []string{
	syntax.KindDataTypeDef, syntax.KindEntityDef, syntax.KindEnumDef, syntax.KindEventDef,
	syntax.KindPropertyDef, syntax.KindRdfDef, syntax.KindStructureDef, syntax.KindUnionDef,
}

type commentable interface {
	AddComments(comments ...model.Comment)
}

func (c *parseContext) definition(node syntax.Node) (model.Definition, error) {
	const rule = "definition"
	if err := c.expect(rule, node, syntax.KindDefinition); err != nil {
		return nil, err
	}
	comments := c.takeComments()
	inner, err := c.only(rule, node, definitionKinds)
	if err != nil {
		return nil, err
	}
	head, err := c.definitionHead(inner)
	if err != nil {
		return nil, err
	}

	pop := c.startType(head.Name)
	defer pop()

	var def model.Definition
	switch inner.Kind() {
	case syntax.KindDataTypeDef:
		def, err = c.dataTypeDef(inner, head)
	case syntax.KindEntityDef:
		def, err = c.entityDef(inner, head)
	case syntax.KindEnumDef:
		def, err = c.enumDef(inner, head)
	case syntax.KindEventDef:
		def, err = c.eventDef(inner, head)
	case syntax.KindPropertyDef:
		def, err = c.propertyDef(inner, head)
	case syntax.KindRdfDef:
		def, err = c.rdfDef(inner, head)
	case syntax.KindStructureDef:
		def, err = c.structureDef(inner, head)
	default:
		def, err = c.unionDef(inner, head)
	}
	if err != nil {
		return nil, err
	}
	target := def.(commentable)
	target.AddComments(comments...)
	target.AddComments(c.takeComments()...)
	return def, nil
}

func (c *parseContext) definitionHead(node syntax.Node) (model.DefinitionHead, error) {
	rule := node.Kind()
	nameNode, err := c.field(rule, node, syntax.FieldName)
	if err != nil {
		return model.DefinitionHead{}, err
	}
	name, err := c.identifier(nameNode)
	if err != nil {
		return model.DefinitionHead{}, err
	}
	head := model.DefinitionHead{Spanned: model.At(node.Span()), Name: name}
	if fromNode := node.ChildByFieldName(syntax.FieldFrom); fromNode != nil {
		if head.From, err = c.identifierReference(fromNode); err != nil {
			return model.DefinitionHead{}, err
		}
	}
	return head, nil
}

// bodyItems walks the named children of a body, buffering comments.
// Error markers abort the body.
func (c *parseContext) bodyItems(rule string, node syntax.Node, item func(syntax.Node) error) error {
	for _, child := range node.NamedChildren() {
		switch {
		case child.Kind() == syntax.KindLineComment:
			c.pushComment(child)
		case child.IsError():
			return c.errorNode(rule, child)
		default:
			if err := item(child); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *parseContext) annotationOnlyBody(node syntax.Node) (*model.AnnotationOnlyBody, error) {
	const rule = "annotation_only_body"
	if err := c.expect(rule, node, syntax.KindAnnotationOnlyBody); err != nil {
		return nil, err
	}
	body := &model.AnnotationOnlyBody{Spanned: model.At(node.Span())}
	err := c.bodyItems(rule, node, func(child syntax.Node) error {
		if child.Kind() != syntax.KindAnnotation {
			return c.unexpected(rule, []string{syntax.KindAnnotation, syntax.KindLineComment}, child)
		}
		ann, err := c.annotation(child)
		if err != nil {
			return err
		}
		body.Annotations = append(body.Annotations, ann)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// optionalAnnotationBody parses the body field of node when present.
func (c *parseContext) optionalAnnotationBody(node syntax.Node) (*model.AnnotationOnlyBody, error) {
	bodyNode := node.ChildByFieldName(syntax.FieldBody)
	if bodyNode == nil {
		return nil, nil
	}
	return c.annotationOnlyBody(bodyNode)
}

func (c *parseContext) dataTypeDef(node syntax.Node, head model.DefinitionHead) (*model.DatatypeDef, error) {
	const rule = "data_type_def"
	baseNode, err := c.field(rule, node, syntax.FieldBase)
	if err != nil {
		return nil, err
	}
	var base model.IdentifierReference
	switch baseNode.Kind() {
	case syntax.KindBuiltinSimpleType:
		base, err = c.builtinType(baseNode)
	case syntax.KindIdentifierReference:
		base, err = c.identifierReference(baseNode)
	default:
		err = c.unexpected(rule, []string{syntax.KindBuiltinSimpleType, syntax.KindIdentifierReference}, baseNode)
	}
	if err != nil {
		return nil, err
	}
	body, err := c.optionalAnnotationBody(node)
	if err != nil {
		return nil, err
	}
	return &model.DatatypeDef{DefinitionHead: head, Base: base, Body: body}, nil
}

func (c *parseContext) entityDef(node syntax.Node, head model.DefinitionHead) (*model.EntityDef, error) {
	def := &model.EntityDef{DefinitionHead: head}
	bodyNode := node.ChildByFieldName(syntax.FieldBody)
	if bodyNode == nil {
		return def, nil
	}
	body, err := c.entityBody(bodyNode)
	if err != nil {
		return nil, err
	}
	def.Body = body
	return def, nil
}

func (c *parseContext) entityBody(node syntax.Node) (*model.EntityBody, error) {
	const rule = "entity_body"
	if err := c.expect(rule, node, syntax.KindEntityBody); err != nil {
		return nil, err
	}
	identityNode, err := c.field(rule, node, syntax.FieldIdentity)
	if err != nil {
		return nil, err
	}

	body := &model.EntityBody{Spanned: model.At(node.Span())}
	expected := []string{
		syntax.KindAnnotation, syntax.KindMemberByValue, syntax.KindMemberByReference,
		syntax.KindEntityGroup, syntax.KindLineComment,
	}
	err = c.bodyItems(rule, node, func(child syntax.Node) error {
		if child == identityNode {
			if err := c.expect(rule, child, syntax.KindIdentityMember); err != nil {
				return err
			}
			identity, err := c.member(child)
			if err != nil {
				return err
			}
			body.Identity = identity
			return nil
		}
		switch child.Kind() {
		case syntax.KindAnnotation:
			ann, err := c.annotation(child)
			if err != nil {
				return err
			}
			body.Annotations = append(body.Annotations, ann)
		case syntax.KindMemberByValue, syntax.KindMemberByReference:
			m, err := c.member(child)
			if err != nil {
				return err
			}
			body.Members = append(body.Members, m)
		case syntax.KindEntityGroup:
			g, err := c.memberGroup(child, syntax.KindEntityGroup)
			if err != nil {
				return err
			}
			body.Groups = append(body.Groups, g)
		default:
			return c.unexpected(rule, expected, child)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *parseContext) structureBody(node syntax.Node) (*model.StructureBody, error) {
	const rule = "structure_body"
	if err := c.expect(rule, node, syntax.KindStructureBody); err != nil {
		return nil, err
	}
	body := &model.StructureBody{Spanned: model.At(node.Span())}
	expected := []string{
		syntax.KindAnnotation, syntax.KindMemberByValue, syntax.KindMemberByReference,
		syntax.KindStructureGroup, syntax.KindLineComment,
	}
	err := c.bodyItems(rule, node, func(child syntax.Node) error {
		switch child.Kind() {
		case syntax.KindAnnotation:
			ann, err := c.annotation(child)
			if err != nil {
				return err
			}
			body.Annotations = append(body.Annotations, ann)
		case syntax.KindMemberByValue, syntax.KindMemberByReference:
			m, err := c.member(child)
			if err != nil {
				return err
			}
			body.Members = append(body.Members, m)
		case syntax.KindStructureGroup:
			g, err := c.memberGroup(child, syntax.KindStructureGroup)
			if err != nil {
				return err
			}
			body.Groups = append(body.Groups, g)
		default:
			return c.unexpected(rule, expected, child)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *parseContext) memberGroup(node syntax.Node, kind string) (*model.MemberGroup, error) {
	if err := c.expect(kind, node, kind); err != nil {
		return nil, err
	}
	group := &model.MemberGroup{Spanned: model.At(node.Span())}
	group.AddComments(c.takeComments()...)
	expected := []string{syntax.KindAnnotation, syntax.KindMemberByValue, syntax.KindMemberByReference, syntax.KindLineComment}
	err := c.bodyItems(kind, node, func(child syntax.Node) error {
		switch child.Kind() {
		case syntax.KindAnnotation:
			ann, err := c.annotation(child)
			if err != nil {
				return err
			}
			group.Annotations = append(group.Annotations, ann)
		case syntax.KindMemberByValue, syntax.KindMemberByReference:
			m, err := c.member(child)
			if err != nil {
				return err
			}
			group.Members = append(group.Members, m)
		default:
			return c.unexpected(kind, expected, child)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (c *parseContext) enumDef(node syntax.Node, head model.DefinitionHead) (*model.EnumDef, error) {
	const rule = "enum_body"
	def := &model.EnumDef{DefinitionHead: head}
	bodyNode := node.ChildByFieldName(syntax.FieldBody)
	if bodyNode == nil {
		return def, nil
	}
	if err := c.expect(rule, bodyNode, syntax.KindEnumBody); err != nil {
		return nil, err
	}
	body := &model.EnumBody{Spanned: model.At(bodyNode.Span())}
	expected := []string{syntax.KindAnnotation, syntax.KindValueVariant, syntax.KindLineComment}
	err := c.bodyItems(rule, bodyNode, func(child syntax.Node) error {
		switch child.Kind() {
		case syntax.KindAnnotation:
			ann, err := c.annotation(child)
			if err != nil {
				return err
			}
			body.Annotations = append(body.Annotations, ann)
		case syntax.KindValueVariant:
			v, err := c.valueVariant(child, uint64(len(body.Variants)+1))
			if err != nil {
				return err
			}
			body.Variants = append(body.Variants, v)
		default:
			return c.unexpected(rule, expected, child)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	def.Body = body
	return def, nil
}

// valueVariant parses an enum variant; ordinal is used when no value is given.
func (c *parseContext) valueVariant(node syntax.Node, ordinal uint64) (*model.ValueVariant, error) {
	const rule = "value_variant"
	comments := c.takeComments()
	nameNode, err := c.field(rule, node, syntax.FieldName)
	if err != nil {
		return nil, err
	}
	name, err := c.identifier(nameNode)
	if err != nil {
		return nil, err
	}
	pop := c.startVariant(name)
	defer pop()

	v := &model.ValueVariant{Spanned: model.At(node.Span()), Name: name, Value: ordinal}
	v.AddComments(comments...)
	if valueNode := node.ChildByFieldName(syntax.FieldValue); valueNode != nil {
		if v.Value, err = c.unsigned(valueNode); err != nil {
			return nil, err
		}
	}
	if v.Body, err = c.optionalAnnotationBody(node); err != nil {
		return nil, err
	}
	return v, nil
}

func (c *parseContext) eventDef(node syntax.Node, head model.DefinitionHead) (*model.EventDef, error) {
	const rule = "event_def"
	sourceNode, err := c.field(rule, node, syntax.FieldSource)
	if err != nil {
		return nil, err
	}
	src, err := c.identifierReference(sourceNode)
	if err != nil {
		return nil, err
	}
	def := &model.EventDef{DefinitionHead: head, Source: src}
	if bodyNode := node.ChildByFieldName(syntax.FieldBody); bodyNode != nil {
		if def.Body, err = c.structureBody(bodyNode); err != nil {
			return nil, err
		}
	}
	return def, nil
}

func (c *parseContext) structureDef(node syntax.Node, head model.DefinitionHead) (*model.StructureDef, error) {
	def := &model.StructureDef{DefinitionHead: head}
	if bodyNode := node.ChildByFieldName(syntax.FieldBody); bodyNode != nil {
		body, err := c.structureBody(bodyNode)
		if err != nil {
			return nil, err
		}
		def.Body = body
	}
	return def, nil
}

func (c *parseContext) unionDef(node syntax.Node, head model.DefinitionHead) (*model.UnionDef, error) {
	const rule = "union_body"
	def := &model.UnionDef{DefinitionHead: head}
	bodyNode := node.ChildByFieldName(syntax.FieldBody)
	if bodyNode == nil {
		return def, nil
	}
	if err := c.expect(rule, bodyNode, syntax.KindUnionBody); err != nil {
		return nil, err
	}
	body := &model.UnionBody{Spanned: model.At(bodyNode.Span())}
	expected := []string{syntax.KindAnnotation, syntax.KindTypeVariant, syntax.KindLineComment}
	err := c.bodyItems(rule, bodyNode, func(child syntax.Node) error {
		switch child.Kind() {
		case syntax.KindAnnotation:
			ann, err := c.annotation(child)
			if err != nil {
				return err
			}
			body.Annotations = append(body.Annotations, ann)
		case syntax.KindTypeVariant:
			v, err := c.typeVariant(child)
			if err != nil {
				return err
			}
			body.Variants = append(body.Variants, v)
		default:
			return c.unexpected(rule, expected, child)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	def.Body = body
	return def, nil
}

func (c *parseContext) typeVariant(node syntax.Node) (*model.TypeVariant, error) {
	const rule = "type_variant"
	comments := c.takeComments()
	nameNode, err := c.field(rule, node, syntax.FieldName)
	if err != nil {
		return nil, err
	}
	name, err := c.identifierReference(nameNode)
	if err != nil {
		return nil, err
	}
	v := &model.TypeVariant{Spanned: model.At(node.Span()), Name: name}
	v.AddComments(comments...)
	if renameNode := node.ChildByFieldName(syntax.FieldRename); renameNode != nil {
		rename, err := c.identifier(renameNode)
		if err != nil {
			return nil, err
		}
		v.Rename = &rename
	}

	pop := c.startVariant(v.VariantName())
	defer pop()

	if v.Body, err = c.optionalAnnotationBody(node); err != nil {
		return nil, err
	}
	return v, nil
}

func (c *parseContext) propertyDef(node syntax.Node, head model.DefinitionHead) (*model.PropertyDef, error) {
	const rule = "property_body"
	def := &model.PropertyDef{DefinitionHead: head}
	bodyNode := node.ChildByFieldName(syntax.FieldBody)
	if bodyNode == nil {
		return def, nil
	}
	if err := c.expect(rule, bodyNode, syntax.KindPropertyBody); err != nil {
		return nil, err
	}
	body := &model.PropertyBody{Spanned: model.At(bodyNode.Span())}
	expected := []string{syntax.KindAnnotation, syntax.KindPropertyRole, syntax.KindLineComment}
	err := c.bodyItems(rule, bodyNode, func(child syntax.Node) error {
		switch child.Kind() {
		case syntax.KindAnnotation:
			ann, err := c.annotation(child)
			if err != nil {
				return err
			}
			body.Annotations = append(body.Annotations, ann)
		case syntax.KindPropertyRole:
			role, err := c.propertyRole(child)
			if err != nil {
				return err
			}
			body.Roles = append(body.Roles, role)
		default:
			return c.unexpected(rule, expected, child)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	def.Body = body
	return def, nil
}

func (c *parseContext) propertyRole(node syntax.Node) (*model.PropertyRole, error) {
	const rule = "property_role"
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

	role := &model.PropertyRole{Spanned: model.At(node.Span()), Name: name, TargetCardinality: model.ExactlyOne()}
	role.AddComments(comments...)
	if scNode := node.ChildByFieldName(syntax.FieldSourceCardinality); scNode != nil {
		sc, err := c.cardinality(scNode)
		if err != nil {
			return nil, err
		}
		role.SourceCardinality = &sc
	}
	targetNode, err := c.field(rule, node, syntax.FieldTarget)
	if err != nil {
		return nil, err
	}
	if role.Target, err = c.typeReference(targetNode); err != nil {
		return nil, err
	}
	if tcNode := node.ChildByFieldName(syntax.FieldTargetCardinality); tcNode != nil {
		if role.TargetCardinality, err = c.cardinality(tcNode); err != nil {
			return nil, err
		}
	}
	if role.Body, err = c.optionalAnnotationBody(node); err != nil {
		return nil, err
	}
	return role, nil
}

func (c *parseContext) rdfDef(node syntax.Node, head model.DefinitionHead) (*model.RdfDef, error) {
	bodyNode, err := c.field("rdf_def", node, syntax.FieldBody)
	if err != nil {
		return nil, err
	}
	body, err := c.annotationOnlyBody(bodyNode)
	if err != nil {
		return nil, err
	}
	return &model.RdfDef{DefinitionHead: head, Body: body}, nil
}
