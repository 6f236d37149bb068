// SPDX-License-Identifier: MPL-2.0

package validate

import (
	"github.com/sdml-io/sdml/pkg/diag"
	"github.com/sdml-io/sdml/pkg/model"
)

// bindings is the set of variable names in scope in a formal constraint.
type bindings map[string]bool

func (b bindings) with(name model.Identifier) bindings {
	next := make(bindings, len(b)+1)
	for k := range b {
		next[k] = true
	}
	next[name.String()] = true
	return next
}

func (v *validator) constraint(c *model.Constraint) {
	v.identifier(c.Name)
	switch body := c.Body.(type) {
	case *model.InformalConstraint:
		if body.Language != nil && !body.Language.IsValid() {
			v.report(diag.NewInvalidLanguageTag(v.file, body.Language.SourceSpan(), body.Language.String()))
		}
	case *model.FormalConstraint:
		if !v.opts.CheckConstraints {
			return
		}
		v.report(diag.NewValidationIncomplete(v.file, c.SourceSpan(), c.Name.String()))
		v.formalConstraint(body)
	}
}

func (v *validator) formalConstraint(f *model.FormalConstraint) {
	scope := bindings{}
	for _, env := range f.Environment {
		if env.Sentence != nil {
			v.sentence(env.Sentence, scope)
		}
		scope = scope.with(env.Name)
	}
	if f.Body != nil {
		v.sentence(f.Body, scope)
	}
}

func (v *validator) sentence(s model.ConstraintSentence, scope bindings) {
	switch s := s.(type) {
	case *model.AtomicSentence:
		v.arguments(s.Arguments, scope)
	case *model.Equation:
		v.term(s.Lhs, scope)
		v.term(s.Rhs, scope)
	case *model.Inequation:
		v.term(s.Lhs, scope)
		v.term(s.Rhs, scope)
	case *model.UnaryBooleanSentence:
		v.sentence(s.Operand, scope)
	case *model.BinaryBooleanSentence:
		v.sentence(s.Lhs, scope)
		v.sentence(s.Rhs, scope)
	case *model.QuantifiedSentence:
		v.term(s.Source, scope)
		v.sentence(s.Body, scope.with(s.Variable))
	}
}

func (v *validator) arguments(terms []model.Term, scope bindings) {
	for _, t := range terms {
		v.term(t, scope)
	}
}

// term reports unqualified names that are neither bound nor definitions.
// Function and predicate positions name operations and are not checked.
func (v *validator) term(t model.Term, scope bindings) {
	switch t := t.(type) {
	case *model.ReferenceTerm:
		id, ok := t.Ref.(model.Identifier)
		if !ok || scope[id.String()] {
			return
		}
		if _, ok := v.resolve(id); ok {
			return
		}
		v.report(diag.NewMissingVariable(v.file, spanOrZero(t.SourceSpan()), id.String()))
	case *model.FunctionComposition:
		v.term(t.Subject, scope)
	case *model.FunctionalTerm:
		v.arguments(t.Arguments, scope)
	}
}
