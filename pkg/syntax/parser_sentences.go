// SPDX-License-Identifier: MPL-2.0

package syntax

// connectiveLevels lists binary connectives from loosest to tightest binding.
var connectiveLevels = []string{"iff", "implies", "or", "xor", "and"}

var relations = map[string]bool{"/=": true, "<": true, "<=": true, ">": true, ">=": true}

func (p *parser) formalConstraint() *TreeNode {
	start := p.cur().start
	var children []Child
	if p.isKeyword("def") {
		envStart := p.cur().start
		var defs []Child
		for p.isKeyword("def") {
			defs = append(defs, Unnamed(p.environmentDef()))
		}
		children = append(children, Field(FieldEnvironment, p.node(KindConstraintEnv, envStart, defs...)))
	}
	children = append(children, Field(FieldBody, p.sentence()))
	return p.node(KindFormalConstraint, start, children...)
}

func (p *parser) environmentDef() *TreeNode {
	start := p.cur().start
	p.expectKeyword("def")
	name := p.identifier()
	p.expectPunct("=")
	return p.node(KindEnvironmentDef, start, Field(FieldName, name), Field(FieldBody, p.environmentBody()))
}

// environmentBody prefers a literal value, falling back to a sentence when
// the literal turns out to be the left side of a relation.
func (p *parser) environmentBody() *TreeNode {
	if p.isSimpleValueStart() || p.isPunct("[") {
		m := p.mark()
		value := p.value()
		if !p.atOperator() {
			return value
		}
		p.reset(m)
	}
	return p.sentence()
}

func (p *parser) atOperator() bool {
	tok := p.cur()
	if tok.kind == tokPunct {
		return tok.text == "=" || relations[tok.text] || tok.text == "(" || tok.text == "."
	}
	for _, c := range connectiveLevels {
		if p.isKeyword(c) {
			return true
		}
	}
	return false
}

func (p *parser) sentence() *TreeNode {
	return p.binarySentence(0)
}

func (p *parser) wrapSentence(start int, inner *TreeNode) *TreeNode {
	return p.node(KindConstraintSentence, start, Unnamed(inner))
}

func (p *parser) binarySentence(level int) *TreeNode {
	if level == len(connectiveLevels) {
		return p.unarySentence()
	}
	start := p.cur().start
	lhs := p.binarySentence(level + 1)
	for p.isKeyword(connectiveLevels[level]) {
		op := p.leaf(KindConnective)
		rhs := p.binarySentence(level + 1)
		binary := p.node(KindBinaryBooleanSentence, start,
			Field(FieldLhs, lhs), Field(FieldOperator, op), Field(FieldRhs, rhs))
		lhs = p.wrapSentence(start, p.node(KindBooleanSentence, start, Unnamed(binary)))
	}
	return lhs
}

func (p *parser) unarySentence() *TreeNode {
	start := p.cur().start
	switch {
	case p.isKeyword("not"):
		op := p.leaf(KindConnective)
		operand := p.unarySentence()
		unary := p.node(KindUnaryBooleanSentence, start, Field(FieldOperator, op), Field(FieldRhs, operand))
		return p.wrapSentence(start, p.node(KindBooleanSentence, start, Unnamed(unary)))
	case p.isKeyword("forall") || p.isKeyword("exists"):
		return p.quantifiedSentence()
	case p.isPunct("("):
		p.advance()
		inner := p.sentence()
		p.expectPunct(")")
		return inner
	}
	return p.simpleSentence()
}

func (p *parser) quantifiedSentence() *TreeNode {
	start := p.cur().start
	quantifier := p.leaf(KindQuantifier)
	bindingStart := p.cur().start
	variable := p.identifier()
	p.expectKeyword("in")
	source := p.term()
	binding := p.node(KindVariableBinding, bindingStart, Field(FieldVariable, variable), Field(FieldSource, source))
	p.expectPunct(",")
	body := p.sentence()
	quantified := p.node(KindQuantifiedSentence, start,
		Field(FieldQuantifier, quantifier), Field(FieldBinding, binding), Field(FieldBody, body))
	return p.wrapSentence(start, quantified)
}

func (p *parser) simpleSentence() *TreeNode {
	start := p.cur().start
	lhs := p.term()
	var inner *TreeNode
	switch {
	case p.isPunct("="):
		p.advance()
		rhs := p.term()
		inner = p.node(KindEquation, start, Field(FieldLhs, lhs), Field(FieldRhs, rhs))
	case p.cur().kind == tokPunct && relations[p.cur().text]:
		op := p.leaf(KindRelation)
		rhs := p.term()
		inner = p.node(KindInequation, start, Field(FieldLhs, lhs), Field(FieldRelation, op), Field(FieldRhs, rhs))
	default:
		fn := lhs.children[0].Node
		if fn.kind != KindFunctionalTerm {
			p.fail()
		}
		children := []Child{Field(FieldPredicate, fn.ChildByFieldName(FieldFunction).(*TreeNode))}
		for _, arg := range fn.ChildrenByFieldName(FieldArgument) {
			children = append(children, Field(FieldArgument, arg.(*TreeNode)))
		}
		inner = p.node(KindAtomicSentence, start, children...)
	}
	simple := p.node(KindSimpleSentence, start, Unnamed(inner))
	return p.wrapSentence(start, simple)
}

func (p *parser) term() *TreeNode {
	start := p.cur().start
	var inner *TreeNode
	switch {
	case p.isKeyword("self"):
		inner = p.leaf(KindReservedSelf)
	case p.isReference():
		inner = p.identifierReference()
	case p.isSimpleValueStart():
		inner = p.node(KindPredicateValue, start, Unnamed(p.simpleValue()))
	case p.isPunct("["):
		inner = p.node(KindPredicateValue, start, Unnamed(p.listOfValues()))
	default:
		p.fail()
	}
	t := p.node(KindTerm, start, Unnamed(inner))
	for {
		switch {
		case p.isPunct("."):
			children := []Child{Field(FieldSubject, t)}
			for p.isPunct(".") {
				p.advance()
				children = append(children, Field(FieldName, p.identifier()))
			}
			t = p.node(KindTerm, start, Unnamed(p.node(KindFunctionComposition, start, children...)))
		case p.isPunct("("):
			p.advance()
			children := []Child{Field(FieldFunction, t)}
			for !p.isPunct(")") {
				children = append(children, Field(FieldArgument, p.term()))
				if !p.isPunct(",") {
					break
				}
				p.advance()
			}
			p.expectPunct(")")
			t = p.node(KindTerm, start, Unnamed(p.node(KindFunctionalTerm, start, children...)))
		default:
			return t
		}
	}
}
