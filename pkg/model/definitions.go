// SPDX-License-Identifier: MPL-2.0

package model

import "github.com/sdml-io/sdml/pkg/source"

type (
	// Definition is one of *DatatypeDef, *EntityDef, *EnumDef, *EventDef,
	// *StructureDef, *UnionDef, *PropertyDef or *RdfDef.
	Definition interface {
		DefinitionName() Identifier
		SourceSpan() *source.Span
		Comments() []Comment
		// FromDefinition returns the optional "from" clause, or nil.
		FromDefinition() IdentifierReference
		// Kind returns the keyword that introduces the definition.
		Kind() string
		isDefinition()
	}

	// DefinitionHead holds the fields every definition shares.
	DefinitionHead struct {
		Spanned
		Commented
		Name Identifier
		From IdentifierReference
	}

	// DatatypeDef restricts a base datatype.
	DatatypeDef struct {
		DefinitionHead
		Base IdentifierReference
		Body *AnnotationOnlyBody
	}

	// EntityDef is an identified type. A nil Body marks a forward declaration.
	EntityDef struct {
		DefinitionHead
		Body *EntityBody
	}

	// EntityBody holds the identity member, members, groups and annotations.
	EntityBody struct {
		Spanned
		Identity    *Member
		Annotations []Annotation
		Members     []*Member
		Groups      []*MemberGroup
	}

	// EnumDef enumerates named values.
	EnumDef struct {
		DefinitionHead
		Body *EnumBody
	}

	// EnumBody holds the value variants of an enum.
	EnumBody struct {
		Spanned
		Annotations []Annotation
		Variants    []*ValueVariant
	}

	// ValueVariant is one named value of an enum.
	ValueVariant struct {
		Spanned
		Commented
		Name  Identifier
		Value uint64
		Body  *AnnotationOnlyBody
	}

	// EventDef is a structure raised by a source entity.
	EventDef struct {
		DefinitionHead
		Source IdentifierReference
		Body   *StructureBody
	}

	// StructureDef is an unidentified compound type.
	StructureDef struct {
		DefinitionHead
		Body *StructureBody
	}

	// StructureBody holds members, groups and annotations.
	StructureBody struct {
		Spanned
		Annotations []Annotation
		Members     []*Member
		Groups      []*MemberGroup
	}

	// MemberGroup groups members that share annotations.
	MemberGroup struct {
		Spanned
		Commented
		Annotations []Annotation
		Members     []*Member
	}

	// UnionDef is a discriminated union over other types.
	UnionDef struct {
		DefinitionHead
		Body *UnionBody
	}

	// UnionBody holds the type variants of a union.
	UnionBody struct {
		Spanned
		Annotations []Annotation
		Variants    []*TypeVariant
	}

	// TypeVariant is one alternative of a union, optionally renamed.
	TypeVariant struct {
		Spanned
		Commented
		Name   IdentifierReference
		Rename *Identifier
		Body   *AnnotationOnlyBody
	}

	// PropertyDef declares roles members can play by reference to the property.
	PropertyDef struct {
		DefinitionHead
		Body *PropertyBody
	}

	// PropertyBody holds the roles of a property.
	PropertyBody struct {
		Spanned
		Annotations []Annotation
		Roles       []*PropertyRole
	}

	// PropertyRole is a named, typed role of a property.
	PropertyRole struct {
		Spanned
		Commented
		Name              Identifier
		SourceCardinality *Cardinality
		Target            TypeReference
		TargetCardinality Cardinality
		Body              *AnnotationOnlyBody
	}

	// RdfDef is a definition expressed purely as annotations.
	RdfDef struct {
		DefinitionHead
		Body *AnnotationOnlyBody
	}

	// AnnotationOnlyBody is a body that may only carry annotations.
	AnnotationOnlyBody struct {
		Spanned
		Annotations []Annotation
	}
)

// Definition keywords returned by Kind.
const (
	KindDatatype  = "datatype"
	KindEntity    = "entity"
	KindEnum      = "enum"
	KindEvent     = "event"
	KindStructure = "structure"
	KindUnion     = "union"
	KindProperty  = "property"
	KindRdf       = "rdf"
)

// DefinitionName returns the defined name.
func (h *DefinitionHead) DefinitionName() Identifier { return h.Name }

// FromDefinition returns the "from" clause, or nil.
func (h *DefinitionHead) FromDefinition() IdentifierReference { return h.From }

// Kind returns "datatype".
func (*DatatypeDef) Kind() string { return KindDatatype }

// Kind returns "entity".
func (*EntityDef) Kind() string { return KindEntity }

// Kind returns "enum".
func (*EnumDef) Kind() string { return KindEnum }

// Kind returns "event".
func (*EventDef) Kind() string { return KindEvent }

// Kind returns "structure".
func (*StructureDef) Kind() string { return KindStructure }

// Kind returns "union".
func (*UnionDef) Kind() string { return KindUnion }

// Kind returns "property".
func (*PropertyDef) Kind() string { return KindProperty }

// Kind returns "rdf".
func (*RdfDef) Kind() string { return KindRdf }

func (*DatatypeDef) isDefinition()  {}
func (*EntityDef) isDefinition()    {}
func (*EnumDef) isDefinition()      {}
func (*EventDef) isDefinition()     {}
func (*StructureDef) isDefinition() {}
func (*UnionDef) isDefinition()     {}
func (*PropertyDef) isDefinition()  {}
func (*RdfDef) isDefinition()       {}

// AllMembers returns the identity member, the direct members and then the
// members of each group, in that order.
func (b *EntityBody) AllMembers() []*Member {
	var members []*Member
	if b.Identity != nil {
		members = append(members, b.Identity)
	}
	members = append(members, b.Members...)
	for _, g := range b.Groups {
		members = append(members, g.Members...)
	}
	return members
}

// AllMembers returns the direct members followed by grouped members.
func (b *StructureBody) AllMembers() []*Member {
	members := append([]*Member(nil), b.Members...)
	for _, g := range b.Groups {
		members = append(members, g.Members...)
	}
	return members
}

// VariantName returns the rename if present, else the referenced type's name.
func (v *TypeVariant) VariantName() Identifier {
	if v.Rename != nil {
		return *v.Rename
	}
	return ReferenceMember(v.Name)
}

// Members returns the members of a definition, or nil for kinds that have none.
func Members(def Definition) []*Member {
	switch d := def.(type) {
	case *EntityDef:
		if d.Body != nil {
			return d.Body.AllMembers()
		}
	case *StructureDef:
		if d.Body != nil {
			return d.Body.AllMembers()
		}
	case *EventDef:
		if d.Body != nil {
			return d.Body.AllMembers()
		}
	}
	return nil
}

// DefinitionAnnotations returns the annotations directly on a definition's body.
func DefinitionAnnotations(def Definition) []Annotation {
	switch d := def.(type) {
	case *DatatypeDef:
		if d.Body != nil {
			return d.Body.Annotations
		}
	case *EntityDef:
		if d.Body != nil {
			return d.Body.Annotations
		}
	case *EnumDef:
		if d.Body != nil {
			return d.Body.Annotations
		}
	case *EventDef:
		if d.Body != nil {
			return d.Body.Annotations
		}
	case *StructureDef:
		if d.Body != nil {
			return d.Body.Annotations
		}
	case *UnionDef:
		if d.Body != nil {
			return d.Body.Annotations
		}
	case *PropertyDef:
		if d.Body != nil {
			return d.Body.Annotations
		}
	case *RdfDef:
		if d.Body != nil {
			return d.Body.Annotations
		}
	}
	return nil
}

// HasBody reports whether a definition has a body; one without is a
// forward declaration.
func HasBody(def Definition) bool {
	switch d := def.(type) {
	case *DatatypeDef:
		return d.Body != nil
	case *EntityDef:
		return d.Body != nil
	case *EnumDef:
		return d.Body != nil
	case *EventDef:
		return d.Body != nil
	case *StructureDef:
		return d.Body != nil
	case *UnionDef:
		return d.Body != nil
	case *PropertyDef:
		return d.Body != nil
	case *RdfDef:
		return d.Body != nil
	}
	return false
}
