// SPDX-License-Identifier: MPL-2.0

package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sdml-io/sdml/pkg/source"
)

// QualifiedSeparator joins the module and member parts of a qualified identifier.
const QualifiedSeparator = ":"

var (
	// ErrInvalidIdentifier is returned when a string is not a legal identifier.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	identifierPattern = regexp.MustCompile(`^[\p{Lu}\p{Ll}][\p{Lu}\p{Ll}\p{Nd}]*(?:_+[\p{Lu}\p{Ll}\p{Nd}]+)*$`)
)

type (
	// IdentifierReference is either an Identifier (a name local to the
	// current module) or a QualifiedIdentifier (module:member).
	IdentifierReference interface {
		fmt.Stringer
		SourceSpan() *source.Span
		isIdentifierReference()
	}

	// Identifier is a validated name.
	Identifier struct {
		Spanned
		value string
	}

	// QualifiedIdentifier names a member of another module.
	QualifiedIdentifier struct {
		Spanned
		module Identifier
		member Identifier
	}

	// InvalidIdentifierError carries the rejected value.
	// It wraps ErrInvalidIdentifier for errors.Is() compatibility.
	InvalidIdentifierError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q", e.Value)
}

// Unwrap returns ErrInvalidIdentifier.
func (e *InvalidIdentifierError) Unwrap() error { return ErrInvalidIdentifier }

// IsValidIdentifier reports whether s matches the identifier grammar.
func IsValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// NewIdentifier validates s and returns it as an Identifier.
func NewIdentifier(s string) (Identifier, error) {
	if !IsValidIdentifier(s) {
		return Identifier{}, &InvalidIdentifierError{Value: s}
	}
	return Identifier{value: s}, nil
}

// MustIdentifier is like NewIdentifier but panics on an invalid value.
func MustIdentifier(s string) Identifier {
	id, err := NewIdentifier(s)
	if err != nil {
		panic(err)
	}
	return id
}

// NewUncheckedIdentifier wraps s without validation. The tree walker uses it
// for text the grammar has already matched; validation reports anything
// malformed later.
func NewUncheckedIdentifier(s string) Identifier {
	return Identifier{value: s}
}

// WithSpan returns a copy of the identifier carrying span.
func (i Identifier) WithSpan(span source.Span) Identifier {
	i.Span = &span
	return i
}

func (i Identifier) String() string { return i.value }

// IsEmpty reports whether this is the zero Identifier.
func (i Identifier) IsEmpty() bool { return i.value == "" }

// IsValid reports whether the identifier matches the identifier grammar.
func (i Identifier) IsValid() bool { return IsValidIdentifier(i.value) }

// IsDoubleUnderscored reports whether the identifier contains "__".
func (i Identifier) IsDoubleUnderscored() bool {
	return strings.Contains(i.value, "__")
}

// Equal compares by value, ignoring spans.
func (i Identifier) Equal(other Identifier) bool { return i.value == other.value }

// Compare orders identifiers by value.
func (i Identifier) Compare(other Identifier) int {
	return strings.Compare(i.value, other.value)
}

// Qualify returns module:i.
func (i Identifier) Qualify(module Identifier) QualifiedIdentifier {
	return QualifiedIdentifier{module: module, member: i}
}

func (Identifier) isIdentifierReference() {}

// NewQualifiedIdentifier joins module and member.
func NewQualifiedIdentifier(module, member Identifier) QualifiedIdentifier {
	return QualifiedIdentifier{module: module, member: member}
}

// ParseQualifiedIdentifier parses "module:member", validating both parts.
func ParseQualifiedIdentifier(s string) (QualifiedIdentifier, error) {
	mod, mem, ok := strings.Cut(s, QualifiedSeparator)
	if !ok {
		return QualifiedIdentifier{}, &InvalidIdentifierError{Value: s}
	}
	module, err := NewIdentifier(mod)
	if err != nil {
		return QualifiedIdentifier{}, err
	}
	member, err := NewIdentifier(mem)
	if err != nil {
		return QualifiedIdentifier{}, err
	}
	return NewQualifiedIdentifier(module, member), nil
}

// WithSpan returns a copy carrying span.
func (q QualifiedIdentifier) WithSpan(span source.Span) QualifiedIdentifier {
	q.Span = &span
	return q
}

// Module returns the module part.
func (q QualifiedIdentifier) Module() Identifier { return q.module }

// Member returns the member part.
func (q QualifiedIdentifier) Member() Identifier { return q.member }

func (q QualifiedIdentifier) String() string {
	return q.module.value + QualifiedSeparator + q.member.value
}

// Equal compares by value, ignoring spans.
func (q QualifiedIdentifier) Equal(other QualifiedIdentifier) bool {
	return q.module.Equal(other.module) && q.member.Equal(other.member)
}

func (QualifiedIdentifier) isIdentifierReference() {}

// Qualified resolves ref to a qualified identifier, using in as the module
// for a bare identifier.
func Qualified(ref IdentifierReference, in Identifier) QualifiedIdentifier {
	switch r := ref.(type) {
	case QualifiedIdentifier:
		return r
	case Identifier:
		return r.Qualify(in)
	default:
		panic(fmt.Sprintf("model: unknown identifier reference %T", ref))
	}
}

// ReferenceMember returns the member name a reference points at.
func ReferenceMember(ref IdentifierReference) Identifier {
	if q, ok := ref.(QualifiedIdentifier); ok {
		return q.member
	}
	return ref.(Identifier)
}

// SameReference compares two references by value.
func SameReference(a, b IdentifierReference) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}
