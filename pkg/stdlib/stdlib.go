// SPDX-License-Identifier: MPL-2.0

package stdlib

import (
	"slices"

	"github.com/sdml-io/sdml/pkg/model"
)

var (
	typePredicate       = [2]string{RDF, "type"}
	equivalentPredicate = [2]string{OWL, "equivalentClass"}

	classType    = [2]string{RDFS, "Class"}
	datatypeType = [2]string{RDFS, "Datatype"}
	propertyType = [2]string{RDF, "Property"}
)

// Names returns the library module names in insertion order.
func Names() []string {
	names := make([]string, len(vocabularies))
	for i, v := range vocabularies {
		names[i] = v.name
	}
	return names
}

// IsLibraryModule reports whether name is a library module.
func IsLibraryModule(name model.Identifier) bool {
	return slices.Contains(Names(), name.String())
}

// Module builds the library module named name.
func Module(name model.Identifier) (*model.Module, bool) {
	for i := range vocabularies {
		if vocabularies[i].name == name.String() {
			return build(&vocabularies[i]), true
		}
	}
	return nil, false
}

// Modules builds every library module. Each call returns fresh values.
func Modules() []*model.Module {
	modules := make([]*model.Module, len(vocabularies))
	for i := range vocabularies {
		modules[i] = build(&vocabularies[i])
	}
	return modules
}

// IsDatatype reports whether def is an rdf definition typed rdfs:Datatype.
func IsDatatype(def model.Definition) bool {
	return hasType(def, datatypeType)
}

// IsClass reports whether def is an rdf definition typed rdfs:Class.
func IsClass(def model.Definition) bool {
	return hasType(def, classType)
}

// IsProperty reports whether def is an rdf definition typed rdf:Property.
func IsProperty(def model.Definition) bool {
	return hasType(def, propertyType)
}

func hasType(def model.Definition, want [2]string) bool {
	rdf, ok := def.(*model.RdfDef)
	if !ok || rdf.Body == nil {
		return false
	}
	for _, p := range model.AnnotationProperties(rdf.Body.Annotations) {
		if p.Name.String() != qualified(typePredicate).String() {
			continue
		}
		if v, ok := p.Value.(model.ReferenceValue); ok && v.Ref.String() == qualified(want).String() {
			return true
		}
	}
	return false
}

func build(v *vocabulary) *model.Module {
	m := model.NewModule(model.NewUncheckedIdentifier(v.name)).WithBaseURI(model.MustParseURI(v.uri))
	m.Library = true

	if len(v.imports) > 0 {
		stmt := &model.ImportStatement{}
		for _, name := range v.imports {
			stmt.Imports = append(stmt.Imports, &model.ModuleImport{Name: model.NewUncheckedIdentifier(name)})
		}
		m.Body.AddImport(stmt)
	}

	for _, name := range v.classes {
		m.Body.AddDefinition(rdfDef(name, classType))
	}
	for _, name := range v.datatypes {
		def := rdfDef(name, datatypeType)
		if target, ok := v.equivalents[name]; ok {
			def.Body.Annotations = append(def.Body.Annotations, property(equivalentPredicate, target))
		}
		m.Body.AddDefinition(def)
	}
	for _, name := range v.properties {
		m.Body.AddDefinition(rdfDef(name, propertyType))
	}
	for _, ind := range v.individuals {
		m.Body.AddDefinition(rdfDef(ind.name, ind.typeOf))
	}
	return m
}

func rdfDef(name string, typeOf [2]string) *model.RdfDef {
	return &model.RdfDef{
		DefinitionHead: model.DefinitionHead{Name: model.NewUncheckedIdentifier(name)},
		Body: &model.AnnotationOnlyBody{
			Annotations: []model.Annotation{property(typePredicate, typeOf)},
		},
	}
}

func property(predicate, value [2]string) *model.AnnotationProperty {
	return &model.AnnotationProperty{
		Name:  qualified(predicate),
		Value: model.ReferenceValue{Ref: qualified(value)},
	}
}

func qualified(name [2]string) model.QualifiedIdentifier {
	return model.NewQualifiedIdentifier(model.NewUncheckedIdentifier(name[0]), model.NewUncheckedIdentifier(name[1]))
}
