// SPDX-License-Identifier: MPL-2.0

package validate

import (
	"github.com/sdml-io/sdml/pkg/diag"
	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/source"
	"github.com/sdml-io/sdml/pkg/stdlib"
)

func (v *validator) definition(def model.Definition) {
	name := def.DefinitionName()
	v.identifier(name)
	if model.HasUnknownType(def) {
		v.report(diag.NewIncompleteDefinition(v.file, def.SourceSpan(), name.String()))
	}
	if from := def.FromDefinition(); from != nil {
		v.from(def, from)
	}
	v.annotations(model.DefinitionAnnotations(def))

	switch d := def.(type) {
	case *model.DatatypeDef:
		v.datatype(d)
	case *model.EntityDef:
		if d.Body != nil {
			v.members(d.Body.AllMembers())
		}
	case *model.EnumDef:
		if d.Body != nil {
			for _, variant := range d.Body.Variants {
				v.identifier(variant.Name)
				v.optionalBody(variant.Body)
			}
		}
	case *model.EventDef:
		v.eventSource(d)
		if d.Body != nil {
			v.members(d.Body.AllMembers())
		}
	case *model.StructureDef:
		if d.Body != nil {
			v.members(d.Body.AllMembers())
		}
	case *model.UnionDef:
		if d.Body != nil {
			for _, variant := range d.Body.Variants {
				v.typeVariant(variant)
			}
		}
	case *model.PropertyDef:
		if d.Body != nil {
			for _, role := range d.Body.Roles {
				v.propertyRole(role)
			}
		}
	}
}

// from checks that a from clause names a definition of the same kind.
func (v *validator) from(def model.Definition, from model.IdentifierReference) {
	target, ok := v.resolve(from)
	if !ok {
		v.typeNotFound(from)
		return
	}
	if target.Kind() != def.Kind() {
		v.report(diag.NewTypeClassIncompatible(v.file, from.SourceSpan(), from.String()))
	}
}

func (v *validator) datatype(d *model.DatatypeDef) {
	if d.Body == nil || len(d.Body.Annotations) == 0 {
		v.report(diag.NewUnconstrainedDatatype(v.file, d.SourceSpan(), d.Name.String()))
	}
	if d.Base == nil {
		return
	}
	base, ok := v.resolve(d.Base)
	if !ok {
		v.typeNotFound(d.Base)
		return
	}
	if _, isDatatype := base.(*model.DatatypeDef); !isDatatype && !stdlib.IsDatatype(base) {
		v.report(diag.NewDatatypeInvalidBase(v.file, d.Base.SourceSpan(), d.Base.String()))
	}
}

func (v *validator) eventSource(d *model.EventDef) {
	if d.Source == nil {
		return
	}
	src, ok := v.resolve(d.Source)
	if !ok {
		v.typeNotFound(d.Source)
		return
	}
	if _, isEntity := src.(*model.EntityDef); !isEntity {
		v.report(diag.NewTypeClassIncompatible(v.file, d.Source.SourceSpan(), d.Source.String()))
	}
}

func (v *validator) typeVariant(variant *model.TypeVariant) {
	if variant.Rename != nil {
		v.identifier(*variant.Rename)
	}
	v.typeReference(variant.Name)
	v.optionalBody(variant.Body)
}

func (v *validator) propertyRole(role *model.PropertyRole) {
	v.identifier(role.Name)
	if role.Target.IsUnknown() {
		v.report(diag.NewIncompleteMember(v.file, role.SourceSpan(), role.Name.String()))
	} else {
		v.typeReference(role.Target.Ref)
	}
	v.optionalBody(role.Body)
}

// typeReference checks that ref names something usable as a type.
func (v *validator) typeReference(ref model.IdentifierReference) {
	target, ok := v.resolve(ref)
	if !ok {
		v.typeNotFound(ref)
		return
	}
	switch {
	case isPropertyDefinition(target):
		v.report(diag.NewPropertyIncompatible(v.file, ref.SourceSpan(), ref.String()))
	case isRdfProperty(target):
		v.report(diag.NewRdfDefinitionIncompatible(v.file, ref.SourceSpan(), ref.String()))
	}
}

// typeNotFound reports E0114 for a reference into a loaded module, and
// E0101 when the module itself is unknown.
func (v *validator) typeNotFound(ref model.IdentifierReference) {
	module := model.Qualified(ref, v.top.Name).Module()
	if !v.moduleKnown(module) {
		v.report(diag.NewImportedModuleNotFound(v.file, ref.SourceSpan(), module.String()))
		return
	}
	v.report(diag.NewTypeDefinitionNotFound(v.file, ref.SourceSpan(), ref.String()))
}

func (v *validator) optionalBody(body *model.AnnotationOnlyBody) {
	if body != nil {
		v.annotations(body.Annotations)
	}
}

func isPropertyDefinition(def model.Definition) bool {
	_, ok := def.(*model.PropertyDef)
	return ok
}

func isRdfProperty(def model.Definition) bool {
	return stdlib.IsProperty(def)
}

// isProperty reports whether def may be used as the property of a role.
func isProperty(def model.Definition) bool {
	return isPropertyDefinition(def) || isRdfProperty(def)
}

func spanOrZero(span *source.Span) source.Span {
	if span == nil {
		return source.Span{}
	}
	return *span
}
