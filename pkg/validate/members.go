// SPDX-License-Identifier: MPL-2.0

package validate

import (
	"github.com/sdml-io/sdml/pkg/diag"
	"github.com/sdml-io/sdml/pkg/model"
)

func (v *validator) members(members []*model.Member) {
	for _, m := range members {
		v.member(m)
	}
}

func (v *validator) member(m *model.Member) {
	v.identifier(m.Name)
	switch shape := m.Shape.(type) {
	case *model.MemberDef:
		if shape.Target.IsUnknown() {
			v.report(diag.NewIncompleteMember(v.file, m.SourceSpan(), m.Name.String()))
		} else {
			v.typeReference(shape.Target.Ref)
		}
		v.optionalBody(shape.Body)
	case *model.PropertyRoleRef:
		v.memberRole(m, shape)
	}
}

// memberRole checks that a member declared with `in` names a property
// that defines a role of the member's name.
func (v *validator) memberRole(m *model.Member, ref *model.PropertyRoleRef) {
	prop, ok := v.resolve(ref.Property)
	if !ok {
		module := model.Qualified(ref.Property, v.top.Name).Module()
		if !v.moduleKnown(module) {
			v.report(diag.NewImportedModuleNotFound(v.file, ref.Property.SourceSpan(), module.String()))
			return
		}
		v.report(diag.NewDefinitionNotFound(v.file, ref.Property.SourceSpan(), ref.Property.String()))
		return
	}
	if !isProperty(prop) {
		v.report(diag.NewPropertyReferenceNotProperty(v.file, ref.Property.SourceSpan(), ref.Property.String()))
		return
	}
	def, ok := prop.(*model.PropertyDef)
	if !ok || def.Body == nil {
		return
	}
	for _, role := range def.Body.Roles {
		if role.Name.Equal(m.Name) {
			return
		}
	}
	v.report(diag.NewDefinitionNotFound(v.file, m.Name.SourceSpan(), ref.Property.String()+"."+m.Name.String()))
}
