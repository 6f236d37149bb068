// SPDX-License-Identifier: MPL-2.0

package model

import "github.com/sdml-io/sdml/pkg/source"

type (
	// Annotation is either an *AnnotationProperty or a *Constraint.
	Annotation interface {
		SourceSpan() *source.Span
		Comments() []Comment
		isAnnotation()
	}

	// AnnotationProperty attaches a value to a named predicate.
	AnnotationProperty struct {
		Spanned
		Commented
		Name  IdentifierReference
		Value Value
	}

	// Constraint is a named assertion, informal text or a formal sentence.
	Constraint struct {
		Spanned
		Commented
		Name Identifier
		Body ConstraintBody
	}

	// ConstraintBody is either an *InformalConstraint or a *FormalConstraint.
	ConstraintBody interface {
		SourceSpan() *source.Span
		isConstraintBody()
	}

	// InformalConstraint is constraint text in a natural or controlled language.
	InformalConstraint struct {
		Spanned
		Value    string
		Language *LanguageTag
	}

	// FormalConstraint is a sentence in the constraint logic, with optional
	// local definitions.
	FormalConstraint struct {
		Spanned
		Environment []*EnvironmentDef
		Body        ConstraintSentence
	}

	// EnvironmentDef binds a name to a value or a sentence for use in a
	// formal constraint. Exactly one of Value and Sentence is set.
	EnvironmentDef struct {
		Spanned
		Name     Identifier
		Value    Value
		Sentence ConstraintSentence
	}
)

func (*AnnotationProperty) isAnnotation() {}
func (*Constraint) isAnnotation()         {}

func (*InformalConstraint) isConstraintBody() {}
func (*FormalConstraint) isConstraintBody()   {}

// AnnotationProperties filters annotations down to properties.
func AnnotationProperties(annotations []Annotation) []*AnnotationProperty {
	var props []*AnnotationProperty
	for _, a := range annotations {
		if p, ok := a.(*AnnotationProperty); ok {
			props = append(props, p)
		}
	}
	return props
}

// Constraints filters annotations down to constraints.
func Constraints(annotations []Annotation) []*Constraint {
	var cs []*Constraint
	for _, a := range annotations {
		if c, ok := a.(*Constraint); ok {
			cs = append(cs, c)
		}
	}
	return cs
}
