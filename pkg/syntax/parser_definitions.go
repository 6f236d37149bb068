// SPDX-License-Identifier: MPL-2.0

package syntax

func (p *parser) definition() *TreeNode {
	start := p.cur().start
	var inner *TreeNode
	switch p.cur().text {
	case "datatype":
		inner = p.dataTypeDef()
	case "entity":
		inner = p.entityDef()
	case "enum":
		inner = p.enumDef()
	case "event":
		inner = p.eventDef()
	case "structure":
		inner = p.structureDef()
	case "union":
		inner = p.unionDef()
	case "property":
		inner = p.propertyDef()
	case "rdf":
		inner = p.rdfDef()
	default:
		p.fail()
	}
	return p.node(KindDefinition, start, Unnamed(inner))
}

// definitionHead consumes the keyword, name and optional from clause.
func (p *parser) definitionHead(keyword string) []Child {
	p.expectKeyword(keyword)
	children := []Child{Field(FieldName, p.identifierOrMissing())}
	if p.isKeyword("from") {
		p.advance()
		children = append(children, Field(FieldFrom, p.identifierReference()))
	}
	return children
}

func (p *parser) dataTypeDef() *TreeNode {
	start := p.cur().start
	p.expectKeyword("datatype")
	children := []Child{Field(FieldName, p.identifierOrMissing())}
	p.expectPunct("<-")
	if p.cur().kind == tokIdent && IsBuiltinSimpleType(p.cur().text) {
		children = append(children, Field(FieldBase, p.leaf(KindBuiltinSimpleType)))
	} else {
		children = append(children, Field(FieldBase, p.identifierReference()))
	}
	if p.isKeyword("is") {
		children = append(children, Field(FieldBody, p.annotationOnlyBody()))
	}
	return p.node(KindDataTypeDef, start, children...)
}

func (p *parser) entityDef() *TreeNode {
	start := p.cur().start
	children := p.definitionHead("entity")
	if p.isKeyword("is") {
		children = append(children, Field(FieldBody, p.entityBody()))
	}
	return p.node(KindEntityDef, start, children...)
}

func (p *parser) entityBody() *TreeNode {
	start := p.cur().start
	p.expectKeyword("is")
	children := p.takeComments()
	if p.isKeyword("identity") {
		children = append(children, Field(FieldIdentity, p.attempt(p.member, p.atMemberItem)))
	} else {
		children = append(children, Field(FieldIdentity, NewMissing(KindIdentityMember, p.cur().start)))
	}
	children = p.bodyItems(children, func() *TreeNode {
		if p.isKeyword("group") {
			return p.group(KindEntityGroup)
		}
		return p.annotationOrMember()
	}, p.atMemberItem)
	return p.node(KindEntityBody, start, children...)
}

func (p *parser) structureBody() *TreeNode {
	start := p.cur().start
	p.expectKeyword("is")
	children := p.bodyItems(nil, func() *TreeNode {
		if p.isKeyword("group") {
			return p.group(KindStructureGroup)
		}
		return p.annotationOrMember()
	}, p.atMemberItem)
	return p.node(KindStructureBody, start, children...)
}

func (p *parser) group(kind string) *TreeNode {
	start := p.cur().start
	p.expectKeyword("group")
	children := p.bodyItems(nil, p.annotationOrMember, p.atMemberItem)
	return p.node(kind, start, children...)
}

// bodyItems parses items until "end", recovering per item, then consumes "end".
func (p *parser) bodyItems(children []Child, item func() *TreeNode, atSync func() bool) []Child {
	for !p.isKeyword("end") && !p.atEOF() {
		children = append(children, p.takeComments()...)
		if p.isKeyword("end") || p.atEOF() {
			break
		}
		children = append(children, Unnamed(p.attempt(item, atSync)))
	}
	return p.endOfBody(children)
}

func (p *parser) atMemberItem() bool {
	return p.isPunct("@") || p.isKeyword("assert") || p.isKeyword("ref") ||
		p.isKeyword("identity") || p.isKeyword("group") || p.isIdentifier()
}

func (p *parser) annotationOrMember() *TreeNode {
	if p.isPunct("@") || p.isKeyword("assert") {
		return p.annotation()
	}
	return p.member()
}

func (p *parser) member() *TreeNode {
	start := p.cur().start
	kind := KindMemberByValue
	switch {
	case p.isKeyword("identity"):
		kind = KindIdentityMember
		p.advance()
	case p.isKeyword("ref"):
		kind = KindMemberByReference
		p.advance()
	}
	children := []Child{Field(FieldName, p.identifier())}
	if kind == KindMemberByReference && p.isPunct("{") {
		children = append(children, Field(FieldSourceCardinality, p.cardinality()))
	}
	switch {
	case p.isPunct("->"):
		p.advance()
		children = append(children, Field(FieldTarget, p.typeReference()))
		if kind != KindIdentityMember && p.isPunct("{") {
			children = append(children, Field(FieldTargetCardinality, p.cardinality()))
		}
		if p.isKeyword("is") {
			children = append(children, Field(FieldBody, p.annotationOnlyBody()))
		}
	case p.isKeyword("in"):
		p.advance()
		children = append(children, Field(FieldProperty, p.identifierReference()))
	default:
		p.fail()
	}
	return p.node(kind, start, children...)
}

func (p *parser) typeReference() *TreeNode {
	start := p.cur().start
	var inner *TreeNode
	switch {
	case p.isKeyword("unknown"):
		inner = p.leaf(KindUnknownType)
	case p.cur().kind == tokIdent && IsBuiltinSimpleType(p.cur().text):
		inner = p.leaf(KindBuiltinSimpleType)
	default:
		inner = p.identifierReference()
	}
	return p.node(KindTypeReference, start, Unnamed(inner))
}

func (p *parser) cardinality() *TreeNode {
	start := p.cur().start
	p.expectPunct("{")
	children := []Child{Field(FieldMin, p.unsigned())}
	if p.isPunct("..") {
		children = append(children, Field(FieldRange, p.leaf(KindRange)))
		if p.cur().kind == tokInteger {
			children = append(children, Field(FieldMax, p.unsigned()))
		}
	}
	p.expectPunct("}")
	return p.node(KindCardinalityExpression, start, children...)
}

func (p *parser) annotationOnlyBody() *TreeNode {
	start := p.cur().start
	p.expectKeyword("is")
	children := p.bodyItems(nil, p.annotation, p.atAnnotation)
	return p.node(KindAnnotationOnlyBody, start, children...)
}

func (p *parser) atAnnotation() bool {
	return p.isPunct("@") || p.isKeyword("assert")
}

func (p *parser) enumDef() *TreeNode {
	start := p.cur().start
	children := p.definitionHead("enum")
	if p.isKeyword("of") {
		bodyStart := p.cur().start
		p.advance()
		items := p.bodyItems(nil, func() *TreeNode {
			if p.atAnnotation() {
				return p.annotation()
			}
			return p.valueVariant()
		}, func() bool { return p.atAnnotation() || p.isIdentifier() })
		children = append(children, Field(FieldBody, p.node(KindEnumBody, bodyStart, items...)))
	}
	return p.node(KindEnumDef, start, children...)
}

func (p *parser) valueVariant() *TreeNode {
	start := p.cur().start
	children := []Child{Field(FieldName, p.identifier())}
	if p.isPunct("=") {
		p.advance()
		children = append(children, Field(FieldValue, p.unsigned()))
	}
	if p.isKeyword("is") {
		children = append(children, Field(FieldBody, p.annotationOnlyBody()))
	}
	return p.node(KindValueVariant, start, children...)
}

func (p *parser) eventDef() *TreeNode {
	start := p.cur().start
	children := p.definitionHead("event")
	if !p.isKeyword("source") {
		p.fail()
	}
	p.advance()
	children = append(children, Field(FieldSource, p.identifierReference()))
	if p.isKeyword("is") {
		children = append(children, Field(FieldBody, p.structureBody()))
	}
	return p.node(KindEventDef, start, children...)
}

func (p *parser) structureDef() *TreeNode {
	start := p.cur().start
	children := p.definitionHead("structure")
	if p.isKeyword("is") {
		children = append(children, Field(FieldBody, p.structureBody()))
	}
	return p.node(KindStructureDef, start, children...)
}

func (p *parser) unionDef() *TreeNode {
	start := p.cur().start
	children := p.definitionHead("union")
	if p.isKeyword("of") {
		bodyStart := p.cur().start
		p.advance()
		items := p.bodyItems(nil, func() *TreeNode {
			if p.atAnnotation() {
				return p.annotation()
			}
			return p.typeVariant()
		}, func() bool { return p.atAnnotation() || p.isReference() })
		children = append(children, Field(FieldBody, p.node(KindUnionBody, bodyStart, items...)))
	}
	return p.node(KindUnionDef, start, children...)
}

func (p *parser) typeVariant() *TreeNode {
	start := p.cur().start
	children := []Child{Field(FieldName, p.identifierReference())}
	if p.isKeyword("as") {
		p.advance()
		children = append(children, Field(FieldRename, p.identifier()))
	}
	if p.isKeyword("is") {
		children = append(children, Field(FieldBody, p.annotationOnlyBody()))
	}
	return p.node(KindTypeVariant, start, children...)
}

func (p *parser) propertyDef() *TreeNode {
	start := p.cur().start
	children := p.definitionHead("property")
	if p.isKeyword("is") {
		bodyStart := p.cur().start
		p.advance()
		items := p.bodyItems(nil, func() *TreeNode {
			if p.atAnnotation() {
				return p.annotation()
			}
			return p.propertyRole()
		}, func() bool { return p.atAnnotation() || p.isIdentifier() })
		children = append(children, Field(FieldBody, p.node(KindPropertyBody, bodyStart, items...)))
	}
	return p.node(KindPropertyDef, start, children...)
}

func (p *parser) propertyRole() *TreeNode {
	start := p.cur().start
	children := []Child{Field(FieldName, p.identifier())}
	if p.isPunct("{") {
		children = append(children, Field(FieldSourceCardinality, p.cardinality()))
	}
	p.expectPunct("->")
	children = append(children, Field(FieldTarget, p.typeReference()))
	if p.isPunct("{") {
		children = append(children, Field(FieldTargetCardinality, p.cardinality()))
	}
	if p.isKeyword("is") {
		children = append(children, Field(FieldBody, p.annotationOnlyBody()))
	}
	return p.node(KindPropertyRole, start, children...)
}

func (p *parser) rdfDef() *TreeNode {
	start := p.cur().start
	p.expectKeyword("rdf")
	children := []Child{
		Field(FieldName, p.identifierOrMissing()),
		Field(FieldBody, p.annotationOnlyBody()),
	}
	return p.node(KindRdfDef, start, children...)
}
