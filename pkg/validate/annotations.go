// SPDX-License-Identifier: MPL-2.0

package validate

import (
	"github.com/sdml-io/sdml/pkg/diag"
	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/stdlib"
)

// labelPredicates are annotation properties whose string values are
// expected to carry a language tag.
var labelPredicates = map[string]bool{
	stdlib.RDFS + ":label":          true,
	stdlib.RDFS + ":comment":        true,
	stdlib.SKOS + ":prefLabel":      true,
	stdlib.SKOS + ":altLabel":       true,
	stdlib.SKOS + ":hiddenLabel":    true,
	stdlib.SKOS + ":definition":     true,
	stdlib.SKOS + ":note":           true,
	stdlib.DC + ":description":      true,
	stdlib.DC + ":title":            true,
	stdlib.DCTerms + ":description": true,
	stdlib.DCTerms + ":title":       true,
}

func (v *validator) annotations(annotations []model.Annotation) {
	for _, a := range annotations {
		switch a := a.(type) {
		case *model.AnnotationProperty:
			v.annotationProperty(a)
		case *model.Constraint:
			v.constraint(a)
		}
	}
}

func (v *validator) annotationProperty(p *model.AnnotationProperty) {
	if _, ok := v.resolve(p.Name); !ok {
		module := model.Qualified(p.Name, v.top.Name).Module()
		if v.moduleKnown(module) {
			v.report(diag.NewDefinitionNotFound(v.file, p.Name.SourceSpan(), p.Name.String()))
		} else {
			v.report(diag.NewImportedModuleNotFound(v.file, p.Name.SourceSpan(), module.String()))
		}
	}
	label := labelPredicates[model.Qualified(p.Name, v.top.Name).String()]
	v.value(p.Value, label)
}

func (v *validator) value(value model.Value, label bool) {
	switch val := value.(type) {
	case model.LanguageString:
		v.languageString(val, label)
	case *model.ValueConstructor:
		v.valueConstructor(val)
	case *model.ListOfValues:
		for _, e := range val.Values {
			v.value(e, label)
		}
	case model.ReferenceValue:
		if _, ok := v.resolve(val.Ref); !ok {
			v.report(diag.NewDefinitionNotFound(v.file, val.Ref.SourceSpan(), val.Ref.String()))
		}
	}
}

func (v *validator) languageString(s model.LanguageString, label bool) {
	switch {
	case s.Language != nil && !s.Language.IsValid():
		v.report(diag.NewInvalidLanguageTag(v.file, s.Language.SourceSpan(), s.Language.String()))
	case s.Language == nil && label:
		v.report(diag.NewStringWithoutLanguage(v.file, s.SourceSpan(), s.String()))
	}
}

func (v *validator) valueConstructor(c *model.ValueConstructor) {
	if ls, ok := c.Value.(model.LanguageString); ok {
		v.languageString(ls, false)
	}
	if _, ok := v.resolve(c.TypeName); !ok {
		v.typeNotFound(c.TypeName)
		return
	}
	builtin, ok := v.builtinOf(c.TypeName, v.top.Name, 0)
	if !ok {
		return
	}
	if !accepts(builtin, c.Value) {
		v.report(diag.NewInvalidValueForType(v.file, c.Value.SourceSpan(), c.Value.String(), c.TypeName.String()))
	}
}

// builtinOf follows datatype bases from ref, read in module in, until it
// reaches a library datatype and returns that datatype's qualified name.
func (v *validator) builtinOf(ref model.IdentifierReference, in model.Identifier, depth int) (string, bool) {
	const maxDepth = 32
	if depth > maxDepth {
		return "", false
	}
	q := model.Qualified(ref, in)
	def, ok := v.resolveQualified(q)
	switch {
	case !ok:
		return "", false
	case stdlib.IsDatatype(def):
		return q.String(), true
	}
	if d, ok := def.(*model.DatatypeDef); ok && d.Base != nil {
		return v.builtinOf(d.Base, q.Module(), depth+1)
	}
	return "", false
}

// accepts reports whether a literal is a lexically plausible value of the
// named built-in datatype. Datatypes not listed accept any literal.
func accepts(builtin string, value model.SimpleValue) bool {
	switch builtin {
	case "sdml:boolean", "xsd:boolean":
		_, ok := value.(model.Boolean)
		return ok
	case "sdml:integer", "xsd:integer", "xsd:int", "xsd:long", "xsd:short", "xsd:byte":
		_, ok := value.(model.Integer)
		return ok
	case "sdml:unsigned", "xsd:nonNegativeInteger", "xsd:unsignedInt", "xsd:unsignedLong",
		"xsd:unsignedShort", "xsd:unsignedByte":
		i, ok := value.(model.Integer)
		return ok && i.Value >= 0
	case "xsd:positiveInteger":
		i, ok := value.(model.Integer)
		return ok && i.Value > 0
	case "sdml:decimal", "xsd:decimal":
		switch value.(type) {
		case model.Decimal, model.Integer:
			return true
		}
		return false
	case "sdml:double", "xsd:double", "xsd:float":
		switch value.(type) {
		case model.Double, model.Decimal, model.Integer:
			return true
		}
		return false
	case "sdml:iri", "xsd:anyURI":
		_, ok := value.(model.IRI)
		return ok
	case "sdml:string", "sdml:language", "sdml:binary", "xsd:string", "xsd:language", "xsd:hexBinary":
		_, ok := value.(model.LanguageString)
		return ok
	}
	return true
}
