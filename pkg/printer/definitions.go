// SPDX-License-Identifier: MPL-2.0

package printer

import (
	"strconv"

	"github.com/sdml-io/sdml/pkg/model"
)

func (p *printer) definition(def model.Definition) {
	head := def.Kind() + " " + def.DefinitionName().String()
	if from := def.FromDefinition(); from != nil {
		head += " from " + from.String()
	}

	switch d := def.(type) {
	case *model.DatatypeDef:
		if d.Base != nil {
			head += " <- " + refName(d.Base)
		}
		p.annotationBody(head, d.Body)
	case *model.RdfDef:
		p.annotationBody(head, d.Body)
	case *model.EntityDef:
		if d.Body == nil {
			p.line(head)
			return
		}
		p.line(head, " is")
		p.push()
		if d.Body.Identity != nil {
			p.member(d.Body.Identity)
		}
		p.annotations(d.Body.Annotations)
		p.members(d.Body.Members, d.Body.Groups)
		p.pop()
		p.line("end")
	case *model.StructureDef:
		p.structure(head, d.Body)
	case *model.EventDef:
		if d.Source != nil {
			head += " source " + d.Source.String()
		}
		p.structure(head, d.Body)
	case *model.EnumDef:
		p.enum(head, d.Body)
	case *model.UnionDef:
		p.union(head, d.Body)
	case *model.PropertyDef:
		p.property(head, d.Body)
	}
}

func (p *printer) structure(head string, body *model.StructureBody) {
	switch {
	case body == nil:
		p.line(head)
	case len(body.Annotations) == 0 && len(body.Members) == 0 && len(body.Groups) == 0:
		p.line(head, " is end")
	default:
		p.line(head, " is")
		p.push()
		p.annotations(body.Annotations)
		p.members(body.Members, body.Groups)
		p.pop()
		p.line("end")
	}
}

func (p *printer) members(members []*model.Member, groups []*model.MemberGroup) {
	for _, m := range members {
		p.member(m)
	}
	for _, g := range groups {
		p.line("group")
		p.push()
		p.annotations(g.Annotations)
		for _, m := range g.Members {
			p.member(m)
		}
		p.pop()
		p.line("end")
	}
}

func (p *printer) member(m *model.Member) {
	head := m.Name.String()
	switch m.Kind {
	case model.Identity:
		head = "identity " + head
	case model.ByReference:
		head = "ref " + head
	}

	switch shape := m.Shape.(type) {
	case *model.PropertyRoleRef:
		p.line(head, " in ", shape.Property.String())
	case *model.MemberDef:
		if shape.SourceCardinality != nil && m.Kind == model.ByReference {
			head += " " + shape.SourceCardinality.String()
		}
		head += " -> " + typeName(shape.Target)
		if m.Kind != model.Identity && !shape.TargetCardinality.Equal(model.DefaultCardinality(m.Kind)) {
			head += " " + shape.TargetCardinality.String()
		}
		p.annotationBody(head, shape.Body)
	}
}

func (p *printer) enum(head string, body *model.EnumBody) {
	if body == nil {
		p.line(head)
		return
	}
	if len(body.Annotations) == 0 && len(body.Variants) == 0 {
		p.line(head, " of end")
		return
	}
	p.line(head, " of")
	p.push()
	p.annotations(body.Annotations)
	for i, v := range body.Variants {
		name := v.Name.String()
		if v.Value != uint64(i+1) {
			name += " = " + strconv.FormatUint(v.Value, 10)
		}
		p.annotationBody(name, v.Body)
	}
	p.pop()
	p.line("end")
}

func (p *printer) union(head string, body *model.UnionBody) {
	if body == nil {
		p.line(head)
		return
	}
	if len(body.Annotations) == 0 && len(body.Variants) == 0 {
		p.line(head, " of end")
		return
	}
	p.line(head, " of")
	p.push()
	p.annotations(body.Annotations)
	for _, v := range body.Variants {
		name := v.Name.String()
		if v.Rename != nil {
			name += " as " + v.Rename.String()
		}
		p.annotationBody(name, v.Body)
	}
	p.pop()
	p.line("end")
}

func (p *printer) property(head string, body *model.PropertyBody) {
	if body == nil {
		p.line(head)
		return
	}
	if len(body.Annotations) == 0 && len(body.Roles) == 0 {
		p.line(head, " is end")
		return
	}
	p.line(head, " is")
	p.push()
	p.annotations(body.Annotations)
	for _, r := range body.Roles {
		name := r.Name.String()
		if r.SourceCardinality != nil {
			name += " " + r.SourceCardinality.String()
		}
		name += " -> " + typeName(r.Target)
		if !r.TargetCardinality.Equal(model.ExactlyOne()) {
			name += " " + r.TargetCardinality.String()
		}
		p.annotationBody(name, r.Body)
	}
	p.pop()
	p.line("end")
}
