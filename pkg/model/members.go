// SPDX-License-Identifier: MPL-2.0

package model

import (
	"fmt"
	"strconv"
)

// Member kinds.
const (
	ByValue MemberKind = iota
	ByReference
	Identity
)

type (
	// MemberKind distinguishes by-value, by-reference and identity members.
	MemberKind int

	// Member is a named slot of an entity, structure or event.
	Member struct {
		Spanned
		Commented
		Kind  MemberKind
		Name  Identifier
		Shape MemberShape
	}

	// MemberShape is either *PropertyRoleRef or *MemberDef.
	MemberShape interface {
		isMemberShape()
	}

	// PropertyRoleRef delegates a member's type and cardinality to a
	// property role of the same name.
	PropertyRoleRef struct {
		Spanned
		Property IdentifierReference
	}

	// MemberDef defines a member's type directly.
	MemberDef struct {
		Spanned
		Target            TypeReference
		SourceCardinality *Cardinality
		TargetCardinality Cardinality
		Body              *AnnotationOnlyBody
	}

	// TypeReference is a reference to a type, or unknown when Ref is nil.
	TypeReference struct {
		Spanned
		Ref IdentifierReference
	}

	// Cardinality is a range of occurrences; a nil Max is unbounded.
	Cardinality struct {
		Spanned
		Min uint64
		Max *uint64
	}
)

func (k MemberKind) String() string {
	switch k {
	case ByValue:
		return "by-value"
	case ByReference:
		return "by-reference"
	case Identity:
		return "identity"
	default:
		return fmt.Sprintf("MemberKind(%d)", int(k))
	}
}

// DefaultCardinality returns exactly-one for by-value and identity members
// and zero-or-one for by-reference members.
func DefaultCardinality(kind MemberKind) Cardinality {
	if kind == ByReference {
		return ZeroOrOne()
	}
	return ExactlyOne()
}

// NewMemberDef creates a defined member shape with the kind's default cardinality.
func NewMemberDef(kind MemberKind, target TypeReference) *MemberDef {
	return &MemberDef{Target: target, TargetCardinality: DefaultCardinality(kind)}
}

// Definition returns the member's defined shape, if it has one.
func (m *Member) Definition() (*MemberDef, bool) {
	def, ok := m.Shape.(*MemberDef)
	return def, ok
}

// PropertyRole returns the member's property role reference, if it has one.
func (m *Member) PropertyRole() (*PropertyRoleRef, bool) {
	ref, ok := m.Shape.(*PropertyRoleRef)
	return ref, ok
}

func (*PropertyRoleRef) isMemberShape() {}
func (*MemberDef) isMemberShape()       {}

// UnknownType returns the unknown type reference.
func UnknownType() TypeReference { return TypeReference{} }

// TypeOf returns a reference to the named type.
func TypeOf(ref IdentifierReference) TypeReference {
	return TypeReference{Spanned: Spanned{Span: ref.SourceSpan()}, Ref: ref}
}

// IsUnknown reports whether the type is still to be determined.
func (t TypeReference) IsUnknown() bool { return t.Ref == nil }

func (t TypeReference) String() string {
	if t.Ref == nil {
		return "unknown"
	}
	return t.Ref.String()
}

// ExactlyOne returns 1..1.
func ExactlyOne() Cardinality { return NewRange(1, 1) }

// ZeroOrOne returns 0..1.
func ZeroOrOne() Cardinality { return NewRange(0, 1) }

// NewRange returns min..max.
func NewRange(minOccurs, maxOccurs uint64) Cardinality {
	return Cardinality{Min: minOccurs, Max: &maxOccurs}
}

// NewUnbounded returns min.. with no upper bound.
func NewUnbounded(minOccurs uint64) Cardinality {
	return Cardinality{Min: minOccurs}
}

// IsOptional reports whether the minimum is zero.
func (c Cardinality) IsOptional() bool { return c.Min == 0 }

// IsMany reports whether more than one value is allowed.
func (c Cardinality) IsMany() bool { return c.Max == nil || *c.Max > 1 }

// IsValid reports whether min does not exceed max.
func (c Cardinality) IsValid() bool { return c.Max == nil || c.Min <= *c.Max }

// Equal compares bounds, ignoring spans.
func (c Cardinality) Equal(other Cardinality) bool {
	if c.Min != other.Min {
		return false
	}
	if c.Max == nil || other.Max == nil {
		return c.Max == nil && other.Max == nil
	}
	return *c.Max == *other.Max
}

// String renders the cardinality in source form: {1}, {0..1} or {1..}.
func (c Cardinality) String() string {
	minStr := strconv.FormatUint(c.Min, 10)
	switch {
	case c.Max == nil:
		return "{" + minStr + "..}"
	case *c.Max == c.Min:
		return "{" + minStr + "}"
	default:
		return "{" + minStr + ".." + strconv.FormatUint(*c.Max, 10) + "}"
	}
}
