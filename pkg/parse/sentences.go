// SPDX-License-Identifier: MPL-2.0

package parse

import (
	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/syntax"
)

var (
	sentenceKinds       = []string{syntax.KindSimpleSentence, syntax.KindBooleanSentence, syntax.KindQuantifiedSentence}
	simpleSentenceKinds = []string{syntax.KindAtomicSentence, syntax.KindEquation, syntax.KindInequation}
	booleanKinds        = []string{syntax.KindUnaryBooleanSentence, syntax.KindBinaryBooleanSentence}
	termKinds           = []string{
		syntax.KindReservedSelf, syntax.KindIdentifierReference, syntax.KindPredicateValue,
		syntax.KindFunctionComposition, syntax.KindFunctionalTerm,
	}
)

func (c *parseContext) formalConstraint(node syntax.Node) (*model.FormalConstraint, error) {
	const rule = "formal_constraint"
	formal := &model.FormalConstraint{Spanned: model.At(node.Span())}
	if envNode := node.ChildByFieldName(syntax.FieldEnvironment); envNode != nil {
		if err := c.expect(rule, envNode, syntax.KindConstraintEnv); err != nil {
			return nil, err
		}
		for _, child := range envNode.NamedChildren() {
			if child.Kind() == syntax.KindLineComment {
				c.pushComment(child)
				continue
			}
			def, err := c.environmentDef(child)
			if err != nil {
				return nil, err
			}
			formal.Environment = append(formal.Environment, def)
		}
	}
	bodyNode, err := c.field(rule, node, syntax.FieldBody)
	if err != nil {
		return nil, err
	}
	if formal.Body, err = c.sentence(bodyNode); err != nil {
		return nil, err
	}
	return formal, nil
}

func (c *parseContext) environmentDef(node syntax.Node) (*model.EnvironmentDef, error) {
	const rule = "environment_def"
	if err := c.expect(rule, node, syntax.KindEnvironmentDef); err != nil {
		return nil, err
	}
	nameNode, err := c.field(rule, node, syntax.FieldName)
	if err != nil {
		return nil, err
	}
	name, err := c.identifier(nameNode)
	if err != nil {
		return nil, err
	}
	bodyNode, err := c.field(rule, node, syntax.FieldBody)
	if err != nil {
		return nil, err
	}
	def := &model.EnvironmentDef{Spanned: model.At(node.Span()), Name: name}
	switch bodyNode.Kind() {
	case syntax.KindValue:
		def.Value, err = c.value(bodyNode)
	case syntax.KindConstraintSentence:
		def.Sentence, err = c.sentence(bodyNode)
	default:
		err = c.unexpected(rule, []string{syntax.KindValue, syntax.KindConstraintSentence}, bodyNode)
	}
	if err != nil {
		return nil, err
	}
	return def, nil
}

func (c *parseContext) sentence(node syntax.Node) (model.ConstraintSentence, error) {
	const rule = "constraint_sentence"
	if err := c.expect(rule, node, syntax.KindConstraintSentence); err != nil {
		return nil, err
	}
	inner, err := c.only(rule, node, sentenceKinds)
	if err != nil {
		return nil, err
	}
	switch inner.Kind() {
	case syntax.KindSimpleSentence:
		return c.simpleSentence(inner)
	case syntax.KindBooleanSentence:
		return c.booleanSentence(inner)
	default:
		return c.quantifiedSentence(inner)
	}
}

func (c *parseContext) simpleSentence(node syntax.Node) (model.ConstraintSentence, error) {
	const rule = "simple_sentence"
	inner, err := c.only(rule, node, simpleSentenceKinds)
	if err != nil {
		return nil, err
	}
	at := model.At(inner.Span())
	switch inner.Kind() {
	case syntax.KindAtomicSentence:
		predNode, err := c.field("atomic_sentence", inner, syntax.FieldPredicate)
		if err != nil {
			return nil, err
		}
		pred, err := c.term(predNode)
		if err != nil {
			return nil, err
		}
		args, err := c.terms(inner.ChildrenByFieldName(syntax.FieldArgument))
		if err != nil {
			return nil, err
		}
		return &model.AtomicSentence{Spanned: at, Predicate: pred, Arguments: args}, nil
	case syntax.KindEquation:
		lhs, rhs, err := c.sides("equation", inner)
		if err != nil {
			return nil, err
		}
		return &model.Equation{Spanned: at, Lhs: lhs, Rhs: rhs}, nil
	default:
		lhs, rhs, err := c.sides("inequation", inner)
		if err != nil {
			return nil, err
		}
		relNode, err := c.field("inequation", inner, syntax.FieldRelation)
		if err != nil {
			return nil, err
		}
		rel, ok := model.ParseInequalityRelation(c.text(relNode))
		if !ok {
			return nil, c.unexpected("inequation", []string{syntax.KindRelation}, relNode)
		}
		return &model.Inequation{Spanned: at, Lhs: lhs, Relation: rel, Rhs: rhs}, nil
	}
}

// sides parses the lhs and rhs terms of an equation or inequation.
func (c *parseContext) sides(rule string, node syntax.Node) (lhs, rhs model.Term, err error) {
	lhsNode, err := c.field(rule, node, syntax.FieldLhs)
	if err != nil {
		return nil, nil, err
	}
	if lhs, err = c.term(lhsNode); err != nil {
		return nil, nil, err
	}
	rhsNode, err := c.field(rule, node, syntax.FieldRhs)
	if err != nil {
		return nil, nil, err
	}
	if rhs, err = c.term(rhsNode); err != nil {
		return nil, nil, err
	}
	return lhs, rhs, nil
}

func (c *parseContext) booleanSentence(node syntax.Node) (model.ConstraintSentence, error) {
	const rule = "boolean_sentence"
	inner, err := c.only(rule, node, booleanKinds)
	if err != nil {
		return nil, err
	}
	at := model.At(inner.Span())
	if inner.Kind() == syntax.KindUnaryBooleanSentence {
		rhsNode, err := c.field("unary_boolean_sentence", inner, syntax.FieldRhs)
		if err != nil {
			return nil, err
		}
		operand, err := c.sentence(rhsNode)
		if err != nil {
			return nil, err
		}
		return &model.UnaryBooleanSentence{Spanned: at, Operand: operand}, nil
	}

	const binary = "binary_boolean_sentence"
	lhsNode, err := c.field(binary, inner, syntax.FieldLhs)
	if err != nil {
		return nil, err
	}
	lhs, err := c.sentence(lhsNode)
	if err != nil {
		return nil, err
	}
	opNode, err := c.field(binary, inner, syntax.FieldOperator)
	if err != nil {
		return nil, err
	}
	op, ok := model.ParseConnective(c.text(opNode))
	if !ok {
		return nil, c.unexpected(binary, []string{syntax.KindConnective}, opNode)
	}
	rhsNode, err := c.field(binary, inner, syntax.FieldRhs)
	if err != nil {
		return nil, err
	}
	rhs, err := c.sentence(rhsNode)
	if err != nil {
		return nil, err
	}
	return &model.BinaryBooleanSentence{Spanned: at, Lhs: lhs, Connective: op, Rhs: rhs}, nil
}

func (c *parseContext) quantifiedSentence(node syntax.Node) (model.ConstraintSentence, error) {
	const rule = "quantified_sentence"
	qNode, err := c.field(rule, node, syntax.FieldQuantifier)
	if err != nil {
		return nil, err
	}
	quantifier, ok := model.ParseQuantifier(c.text(qNode))
	if !ok {
		return nil, c.unexpected(rule, []string{syntax.KindQuantifier}, qNode)
	}
	bindingNode, err := c.field(rule, node, syntax.FieldBinding)
	if err != nil {
		return nil, err
	}
	const binding = "quantified_variable_binding"
	if err := c.expect(binding, bindingNode, syntax.KindVariableBinding); err != nil {
		return nil, err
	}
	varNode, err := c.field(binding, bindingNode, syntax.FieldVariable)
	if err != nil {
		return nil, err
	}
	variable, err := c.identifier(varNode)
	if err != nil {
		return nil, err
	}
	sourceNode, err := c.field(binding, bindingNode, syntax.FieldSource)
	if err != nil {
		return nil, err
	}
	src, err := c.term(sourceNode)
	if err != nil {
		return nil, err
	}
	bodyNode, err := c.field(rule, node, syntax.FieldBody)
	if err != nil {
		return nil, err
	}
	body, err := c.sentence(bodyNode)
	if err != nil {
		return nil, err
	}
	return &model.QuantifiedSentence{
		Spanned:    model.At(node.Span()),
		Quantifier: quantifier,
		Variable:   variable,
		Source:     src,
		Body:       body,
	}, nil
}

func (c *parseContext) terms(nodes []syntax.Node) ([]model.Term, error) {
	terms := make([]model.Term, 0, len(nodes))
	for _, n := range nodes {
		t, err := c.term(n)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, nil
}

func (c *parseContext) term(node syntax.Node) (model.Term, error) {
	const rule = "term"
	if err := c.expect(rule, node, syntax.KindTerm); err != nil {
		return nil, err
	}
	inner, err := c.only(rule, node, termKinds)
	if err != nil {
		return nil, err
	}
	at := model.At(inner.Span())
	switch inner.Kind() {
	case syntax.KindReservedSelf:
		return model.SelfTerm{Spanned: at}, nil
	case syntax.KindIdentifierReference:
		ref, err := c.identifierReference(inner)
		if err != nil {
			return nil, err
		}
		return &model.ReferenceTerm{Spanned: at, Ref: ref}, nil
	case syntax.KindPredicateValue:
		valueNode, err := c.only("predicate_value", inner, []string{syntax.KindSimpleValue, syntax.KindListOfValues})
		if err != nil {
			return nil, err
		}
		var v model.Value
		if valueNode.Kind() == syntax.KindSimpleValue {
			v, err = c.simpleValue(valueNode)
		} else {
			v, err = c.listOfValues(valueNode)
		}
		if err != nil {
			return nil, err
		}
		return &model.ValueTerm{Spanned: at, Value: v}, nil
	case syntax.KindFunctionComposition:
		const composition = "function_composition"
		subjectNode, err := c.field(composition, inner, syntax.FieldSubject)
		if err != nil {
			return nil, err
		}
		subject, err := c.term(subjectNode)
		if err != nil {
			return nil, err
		}
		fc := &model.FunctionComposition{Spanned: at, Subject: subject}
		for _, n := range inner.ChildrenByFieldName(syntax.FieldName) {
			name, err := c.identifier(n)
			if err != nil {
				return nil, err
			}
			fc.Names = append(fc.Names, name)
		}
		if len(fc.Names) == 0 {
			return nil, c.missing(composition, syntax.FieldName, inner.Span())
		}
		return fc, nil
	default:
		const functional = "functional_term"
		fnNode, err := c.field(functional, inner, syntax.FieldFunction)
		if err != nil {
			return nil, err
		}
		fn, err := c.term(fnNode)
		if err != nil {
			return nil, err
		}
		args, err := c.terms(inner.ChildrenByFieldName(syntax.FieldArgument))
		if err != nil {
			return nil, err
		}
		return &model.FunctionalTerm{Spanned: at, Function: fn, Arguments: args}, nil
	}
}
