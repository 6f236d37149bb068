// SPDX-License-Identifier: MPL-2.0

package model

import (
	"fmt"
	"strings"

	"github.com/sdml-io/sdml/pkg/source"
)

// Inequality relations.
const (
	NotEqual InequalityRelation = iota
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
)

// Boolean connectives.
const (
	And Connective = iota
	Or
	ExclusiveOr
	Implication
	Biconditional
)

// Quantifiers.
const (
	Universal Quantifier = iota
	Existential
)

type (
	// InequalityRelation is one of /=, <, <=, > and >=.
	InequalityRelation int

	// Connective is a binary boolean operator.
	Connective int

	// Quantifier is forall or exists.
	Quantifier int

	// ConstraintSentence is *AtomicSentence, *Equation, *Inequation,
	// *UnaryBooleanSentence, *BinaryBooleanSentence or *QuantifiedSentence.
	ConstraintSentence interface {
		SourceSpan() *source.Span
		String() string
		isSentence()
	}

	// AtomicSentence applies a predicate to arguments.
	AtomicSentence struct {
		Spanned
		Predicate Term
		Arguments []Term
	}

	// Equation asserts two terms are equal.
	Equation struct {
		Spanned
		Lhs Term
		Rhs Term
	}

	// Inequation relates two terms by an inequality.
	Inequation struct {
		Spanned
		Lhs      Term
		Relation InequalityRelation
		Rhs      Term
	}

	// UnaryBooleanSentence is a negation.
	UnaryBooleanSentence struct {
		Spanned
		Operand ConstraintSentence
	}

	// BinaryBooleanSentence joins two sentences with a connective.
	BinaryBooleanSentence struct {
		Spanned
		Lhs        ConstraintSentence
		Connective Connective
		Rhs        ConstraintSentence
	}

	// QuantifiedSentence binds Variable to each element of Source in Body.
	QuantifiedSentence struct {
		Spanned
		Quantifier Quantifier
		Variable   Identifier
		Source     Term
		Body       ConstraintSentence
	}

	// Term is SelfTerm, *ReferenceTerm, *FunctionComposition,
	// *FunctionalTerm or *ValueTerm.
	Term interface {
		SourceSpan() *source.Span
		String() string
		isTerm()
	}

	// SelfTerm is the reserved name self.
	SelfTerm struct {
		Spanned
	}

	// ReferenceTerm names a variable, definition or function.
	ReferenceTerm struct {
		Spanned
		Ref IdentifierReference
	}

	// FunctionComposition is a dotted path such as self.name.first.
	FunctionComposition struct {
		Spanned
		Subject Term
		Names   []Identifier
	}

	// FunctionalTerm applies a function to arguments.
	FunctionalTerm struct {
		Spanned
		Function  Term
		Arguments []Term
	}

	// ValueTerm is a literal value used as a term.
	ValueTerm struct {
		Spanned
		Value Value
	}
)

var (
	relationSymbols = [...]string{"/=", "<", "<=", ">", ">="}
	connectiveWords = [...]string{"and", "or", "xor", "implies", "iff"}
	quantifierWords = [...]string{"forall", "exists"}
)

func (r InequalityRelation) String() string {
	if r >= 0 && int(r) < len(relationSymbols) {
		return relationSymbols[r]
	}
	return fmt.Sprintf("InequalityRelation(%d)", int(r))
}

func (c Connective) String() string {
	if c >= 0 && int(c) < len(connectiveWords) {
		return connectiveWords[c]
	}
	return fmt.Sprintf("Connective(%d)", int(c))
}

func (q Quantifier) String() string {
	if q >= 0 && int(q) < len(quantifierWords) {
		return quantifierWords[q]
	}
	return fmt.Sprintf("Quantifier(%d)", int(q))
}

// ParseInequalityRelation maps a relation symbol to its value.
func ParseInequalityRelation(s string) (InequalityRelation, bool) {
	for i, sym := range relationSymbols {
		if sym == s {
			return InequalityRelation(i), true
		}
	}
	return 0, false
}

// ParseConnective maps a connective keyword to its value.
func ParseConnective(s string) (Connective, bool) {
	for i, w := range connectiveWords {
		if w == s {
			return Connective(i), true
		}
	}
	return 0, false
}

// ParseQuantifier maps a quantifier keyword to its value.
func ParseQuantifier(s string) (Quantifier, bool) {
	for i, w := range quantifierWords {
		if w == s {
			return Quantifier(i), true
		}
	}
	return 0, false
}

func (s *AtomicSentence) String() string {
	return s.Predicate.String() + "(" + joinTerms(s.Arguments) + ")"
}

func (s *Equation) String() string { return s.Lhs.String() + " = " + s.Rhs.String() }

func (s *Inequation) String() string {
	return s.Lhs.String() + " " + s.Relation.String() + " " + s.Rhs.String()
}

func (s *UnaryBooleanSentence) String() string {
	return "not " + parenthesize(s.Operand)
}

func (s *BinaryBooleanSentence) String() string {
	return parenthesize(s.Lhs) + " " + s.Connective.String() + " " + parenthesize(s.Rhs)
}

func (s *QuantifiedSentence) String() string {
	return s.Quantifier.String() + " " + s.Variable.String() + " in " + s.Source.String() + ", " + s.Body.String()
}

func (*AtomicSentence) isSentence()        {}
func (*Equation) isSentence()              {}
func (*Inequation) isSentence()            {}
func (*UnaryBooleanSentence) isSentence()  {}
func (*BinaryBooleanSentence) isSentence() {}
func (*QuantifiedSentence) isSentence()    {}

func (SelfTerm) String() string { return "self" }

func (t *ReferenceTerm) String() string { return t.Ref.String() }

func (t *FunctionComposition) String() string {
	parts := []string{t.Subject.String()}
	for _, n := range t.Names {
		parts = append(parts, n.String())
	}
	return strings.Join(parts, ".")
}

func (t *FunctionalTerm) String() string {
	return t.Function.String() + "(" + joinTerms(t.Arguments) + ")"
}

func (t *ValueTerm) String() string { return t.Value.String() }

func (SelfTerm) isTerm()             {}
func (*ReferenceTerm) isTerm()       {}
func (*FunctionComposition) isTerm() {}
func (*FunctionalTerm) isTerm()      {}
func (*ValueTerm) isTerm()           {}

func joinTerms(terms []Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

func parenthesize(s ConstraintSentence) string {
	switch s.(type) {
	case *BinaryBooleanSentence, *QuantifiedSentence:
		return "(" + s.String() + ")"
	default:
		return s.String()
	}
}
