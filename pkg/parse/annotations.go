// SPDX-License-Identifier: MPL-2.0

package parse

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/syntax"
)

var annotationKinds = []string{syntax.KindAnnotationProperty, syntax.KindConstraint}

func (c *parseContext) annotation(node syntax.Node) (model.Annotation, error) {
	const rule = "annotation"
	if err := c.expect(rule, node, syntax.KindAnnotation); err != nil {
		return nil, err
	}
	comments := c.takeComments()
	inner, err := c.only(rule, node, annotationKinds)
	if err != nil {
		return nil, err
	}
	if inner.Kind() == syntax.KindAnnotationProperty {
		prop, err := c.annotationProperty(inner)
		if err != nil {
			return nil, err
		}
		prop.AddComments(comments...)
		return prop, nil
	}
	con, err := c.constraint(inner)
	if err != nil {
		return nil, err
	}
	con.AddComments(comments...)
	return con, nil
}

func (c *parseContext) annotationProperty(node syntax.Node) (*model.AnnotationProperty, error) {
	const rule = "annotation_property"
	nameNode, err := c.field(rule, node, syntax.FieldName)
	if err != nil {
		return nil, err
	}
	name, err := c.identifierReference(nameNode)
	if err != nil {
		return nil, err
	}
	valueNode, err := c.field(rule, node, syntax.FieldValue)
	if err != nil {
		return nil, err
	}
	value, err := c.value(valueNode)
	if err != nil {
		return nil, err
	}
	return &model.AnnotationProperty{Spanned: model.At(node.Span()), Name: name, Value: value}, nil
}

func (c *parseContext) constraint(node syntax.Node) (*model.Constraint, error) {
	const rule = "constraint"
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
	if err := c.expect(rule, bodyNode, syntax.KindInformalConstraint, syntax.KindFormalConstraint); err != nil {
		return nil, err
	}
	con := &model.Constraint{Spanned: model.At(node.Span()), Name: name}
	if bodyNode.Kind() == syntax.KindInformalConstraint {
		con.Body, err = c.informalConstraint(bodyNode)
	} else {
		con.Body, err = c.formalConstraint(bodyNode)
	}
	if err != nil {
		return nil, err
	}
	return con, nil
}

func (c *parseContext) informalConstraint(node syntax.Node) (*model.InformalConstraint, error) {
	const rule = "informal_constraint"
	valueNode, err := c.field(rule, node, syntax.FieldValue)
	if err != nil {
		return nil, err
	}
	if err := c.expect(rule, valueNode, syntax.KindQuotedString); err != nil {
		return nil, err
	}
	informal := &model.InformalConstraint{Spanned: model.At(node.Span()), Value: c.quotedString(valueNode)}
	if langNode := node.ChildByFieldName(syntax.FieldLanguage); langNode != nil {
		tag, err := c.languageTag(langNode)
		if err != nil {
			return nil, err
		}
		informal.Language = tag
	}
	return informal, nil
}

// --- values ---

var (
	valueKinds     = []string{syntax.KindSimpleValue, syntax.KindValueConstructor, syntax.KindIdentifierReference, syntax.KindListOfValues}
	listValueKinds = []string{syntax.KindSimpleValue, syntax.KindValueConstructor, syntax.KindIdentifierReference}
	simpleKinds    = []string{syntax.KindString, syntax.KindDouble, syntax.KindDecimal, syntax.KindInteger, syntax.KindBoolean, syntax.KindIRI}
)

func (c *parseContext) value(node syntax.Node) (model.Value, error) {
	const rule = "value"
	if err := c.expect(rule, node, syntax.KindValue); err != nil {
		return nil, err
	}
	inner, err := c.only(rule, node, valueKinds)
	if err != nil {
		return nil, err
	}
	if inner.Kind() == syntax.KindListOfValues {
		return c.listOfValues(inner)
	}
	return c.listElement(inner)
}

// listElement parses any value other than a nested list.
func (c *parseContext) listElement(node syntax.Node) (model.Value, error) {
	switch node.Kind() {
	case syntax.KindSimpleValue:
		return c.simpleValue(node)
	case syntax.KindValueConstructor:
		return c.valueConstructor(node)
	case syntax.KindIdentifierReference:
		ref, err := c.identifierReference(node)
		if err != nil {
			return nil, err
		}
		return model.ReferenceValue{Spanned: model.At(node.Span()), Ref: ref}, nil
	}
	if err := c.enter("list_of_values", node); err != nil {
		return nil, err
	}
	return nil, c.unexpected("list_of_values", listValueKinds, node)
}

func (c *parseContext) listOfValues(node syntax.Node) (*model.ListOfValues, error) {
	const rule = "list_of_values"
	if err := c.expect(rule, node, syntax.KindListOfValues); err != nil {
		return nil, err
	}
	list := &model.ListOfValues{Spanned: model.At(node.Span())}
	for _, child := range node.NamedChildren() {
		if child.Kind() == syntax.KindLineComment {
			c.pushComment(child)
			continue
		}
		v, err := c.listElement(child)
		if err != nil {
			return nil, err
		}
		list.Values = append(list.Values, v)
	}
	return list, nil
}

func (c *parseContext) valueConstructor(node syntax.Node) (*model.ValueConstructor, error) {
	const rule = "value_constructor"
	if err := c.expect(rule, node, syntax.KindValueConstructor); err != nil {
		return nil, err
	}
	nameNode, err := c.field(rule, node, syntax.FieldName)
	if err != nil {
		return nil, err
	}
	name, err := c.identifierReference(nameNode)
	if err != nil {
		return nil, err
	}
	valueNode, err := c.field(rule, node, syntax.FieldValue)
	if err != nil {
		return nil, err
	}
	value, err := c.simpleValue(valueNode)
	if err != nil {
		return nil, err
	}
	return &model.ValueConstructor{Spanned: model.At(node.Span()), TypeName: name, Value: value}, nil
}

func (c *parseContext) simpleValue(node syntax.Node) (model.SimpleValue, error) {
	const rule = "simple_value"
	if err := c.expect(rule, node, syntax.KindSimpleValue); err != nil {
		return nil, err
	}
	inner, err := c.only(rule, node, simpleKinds)
	if err != nil {
		return nil, err
	}
	at := model.At(inner.Span())
	text := c.text(inner)
	switch inner.Kind() {
	case syntax.KindString:
		return c.languageString(inner)
	case syntax.KindBoolean:
		return model.Boolean{Spanned: at, Value: text == "true"}, nil
	case syntax.KindInteger:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, c.invalidValue(inner, "integer", err)
		}
		return model.Integer{Spanned: at, Value: v}, nil
	case syntax.KindDecimal:
		v, err := model.ParseDecimal(text)
		if err != nil {
			return nil, c.invalidValue(inner, "decimal", err)
		}
		v.Spanned = at
		return v, nil
	case syntax.KindDouble:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsInf(v, 0) {
			if err == nil {
				err = strconv.ErrRange
			}
			return nil, c.invalidValue(inner, "double", err)
		}
		return model.Double{Spanned: at, Value: v}, nil
	default:
		raw := c.iriText(inner)
		u, err := url.Parse(raw)
		if err != nil {
			return nil, c.invalidValue(inner, "iri", err)
		}
		return model.IRI{Spanned: at, Value: u}, nil
	}
}

func (c *parseContext) invalidValue(node syntax.Node, typeName string, err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	ive := &InvalidValueError{File: c.file, Value: c.text(node), TypeName: typeName, Span: node.Span(), Err: err}
	c.report(ive.AsDiagnostic())
	return ive
}

func (c *parseContext) languageString(node syntax.Node) (model.LanguageString, error) {
	const rule = "string"
	valueNode, err := c.field(rule, node, syntax.FieldValue)
	if err != nil {
		return model.LanguageString{}, err
	}
	if err := c.expect(rule, valueNode, syntax.KindQuotedString); err != nil {
		return model.LanguageString{}, err
	}
	s := model.LanguageString{Spanned: model.At(node.Span()), Value: c.quotedString(valueNode)}
	if langNode := node.ChildByFieldName(syntax.FieldLanguage); langNode != nil {
		tag, err := c.languageTag(langNode)
		if err != nil {
			return model.LanguageString{}, err
		}
		s.Language = tag
	}
	return s, nil
}

// languageTag keeps the tag unchecked; validation reports malformed tags.
func (c *parseContext) languageTag(node syntax.Node) (*model.LanguageTag, error) {
	if err := c.expect("language_tag", node, syntax.KindLanguageTag); err != nil {
		return nil, err
	}
	tag := model.NewUncheckedLanguageTag(strings.TrimPrefix(c.text(node), "@"))
	tag.Spanned = model.At(node.Span())
	return &tag, nil
}

// quotedString returns the unescaped content of a string literal.
func (c *parseContext) quotedString(node syntax.Node) string {
	raw := c.text(node)
	if s, err := strconv.Unquote(raw); err == nil {
		return s
	}
	if len(raw) >= 2 {
		return raw[1 : len(raw)-1]
	}
	return raw
}
