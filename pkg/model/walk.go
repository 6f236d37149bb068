// SPDX-License-Identifier: MPL-2.0

package model

// Inspect traverses the module depth-first in declaration order, calling fn
// for the module, each import statement, annotation, definition, member
// group, member, variant and property role. If fn returns false the
// children of that node are skipped.
func Inspect(m *Module, fn func(node any) bool) {
	if !fn(m) {
		return
	}
	for _, stmt := range m.Body.Imports() {
		fn(stmt)
	}
	inspectAnnotations(m.Body.Annotations(), fn)
	for _, def := range m.Body.Definitions() {
		inspectDefinition(def, fn)
	}
}

func inspectDefinition(def Definition, fn func(node any) bool) {
	if !fn(def) {
		return
	}
	inspectAnnotations(DefinitionAnnotations(def), fn)
	switch d := def.(type) {
	case *EntityDef:
		if d.Body == nil {
			return
		}
		if d.Body.Identity != nil {
			inspectMember(d.Body.Identity, fn)
		}
		inspectMembers(d.Body.Members, d.Body.Groups, fn)
	case *StructureDef:
		if d.Body != nil {
			inspectMembers(d.Body.Members, d.Body.Groups, fn)
		}
	case *EventDef:
		if d.Body != nil {
			inspectMembers(d.Body.Members, d.Body.Groups, fn)
		}
	case *EnumDef:
		if d.Body == nil {
			return
		}
		for _, v := range d.Body.Variants {
			if fn(v) && v.Body != nil {
				inspectAnnotations(v.Body.Annotations, fn)
			}
		}
	case *UnionDef:
		if d.Body == nil {
			return
		}
		for _, v := range d.Body.Variants {
			if fn(v) && v.Body != nil {
				inspectAnnotations(v.Body.Annotations, fn)
			}
		}
	case *PropertyDef:
		if d.Body == nil {
			return
		}
		for _, r := range d.Body.Roles {
			if fn(r) && r.Body != nil {
				inspectAnnotations(r.Body.Annotations, fn)
			}
		}
	}
}

func inspectMembers(members []*Member, groups []*MemberGroup, fn func(node any) bool) {
	for _, m := range members {
		inspectMember(m, fn)
	}
	for _, g := range groups {
		if !fn(g) {
			continue
		}
		inspectAnnotations(g.Annotations, fn)
		for _, m := range g.Members {
			inspectMember(m, fn)
		}
	}
}

func inspectMember(m *Member, fn func(node any) bool) {
	if !fn(m) {
		return
	}
	if def, ok := m.Definition(); ok && def.Body != nil {
		inspectAnnotations(def.Body.Annotations, fn)
	}
}

func inspectAnnotations(annotations []Annotation, fn func(node any) bool) {
	for _, a := range annotations {
		fn(a)
	}
}

// ReferencedTypes returns the type names a definition depends on, in
// declaration order: its from clause, datatype base, event source, member
// targets and property roles, union variants and property role targets.
func ReferencedTypes(def Definition) []IdentifierReference {
	var refs []IdentifierReference
	add := func(ref IdentifierReference) {
		if ref != nil {
			refs = append(refs, ref)
		}
	}
	add(def.FromDefinition())
	switch d := def.(type) {
	case *DatatypeDef:
		add(d.Base)
	case *EventDef:
		add(d.Source)
	case *UnionDef:
		if d.Body != nil {
			for _, v := range d.Body.Variants {
				add(v.Name)
			}
		}
	case *PropertyDef:
		if d.Body != nil {
			for _, r := range d.Body.Roles {
				add(r.Target.Ref)
			}
		}
	}
	for _, m := range Members(def) {
		switch shape := m.Shape.(type) {
		case *MemberDef:
			add(shape.Target.Ref)
		case *PropertyRoleRef:
			add(shape.Property)
		}
	}
	return refs
}

// ReferencedAnnotations returns the annotation property names used anywhere
// inside a definition, in declaration order.
func ReferencedAnnotations(def Definition) []IdentifierReference {
	var refs []IdentifierReference
	inspectDefinition(def, func(node any) bool {
		if p, ok := node.(*AnnotationProperty); ok {
			refs = append(refs, p.Name)
		}
		return true
	})
	return refs
}

// HasUnknownType reports whether any member or property role of def has
// the unknown type, or def is a forward declaration.
func HasUnknownType(def Definition) bool {
	if !HasBody(def) {
		switch def.(type) {
		case *DatatypeDef, *RdfDef:
			return false
		default:
			return true
		}
	}
	for _, m := range Members(def) {
		if MemberHasUnknownType(m) {
			return true
		}
	}
	if p, ok := def.(*PropertyDef); ok {
		for _, r := range p.Body.Roles {
			if r.Target.IsUnknown() {
				return true
			}
		}
	}
	return false
}

// MemberHasUnknownType reports whether a defined member targets the unknown type.
func MemberHasUnknownType(m *Member) bool {
	def, ok := m.Definition()
	return ok && def.Target.IsUnknown()
}

// IsStructurallyComplete reports whether no definition in the module has an
// unknown type or is a forward declaration.
func IsStructurallyComplete(m *Module) bool {
	for _, def := range m.Body.Definitions() {
		if HasUnknownType(def) {
			return false
		}
	}
	return true
}
