// SPDX-License-Identifier: MPL-2.0

package model

import (
	"errors"
	"slices"
	"testing"
)

func TestModule_WithBaseURI_Normalizes(t *testing.T) {
	t.Parallel()

	u := MustParseURI("http://example.com")
	m := NewModule(MustIdentifier("example")).WithBaseURI(u)
	if got := m.BaseURI.String(); got != "http://example.com/" {
		t.Errorf("BaseURI = %q, want http://example.com/", got)
	}
	if u.String() != "http://example.com" {
		t.Error("WithBaseURI must not mutate its argument")
	}
}

func TestModuleBody_DuplicateDefinitionsFirstWins(t *testing.T) {
	t.Parallel()

	body := NewModuleBody()
	first := &EntityDef{DefinitionHead: DefinitionHead{Name: MustIdentifier("Person")}}
	second := &StructureDef{DefinitionHead: DefinitionHead{Name: MustIdentifier("Person")}}
	body.AddDefinition(first)
	body.AddDefinition(second)

	if len(body.Definitions()) != 2 {
		t.Fatalf("Definitions() len = %d, want 2", len(body.Definitions()))
	}
	def, ok := body.Definition(MustIdentifier("Person"))
	if !ok || def != first {
		t.Errorf("Definition(Person) = %v, want the first definition", def)
	}
	if names := body.DefinitionNames(); len(names) != 1 {
		t.Errorf("DefinitionNames() = %v, want one name", names)
	}
}

func TestModuleBody_ImportedModules(t *testing.T) {
	t.Parallel()

	body := NewModuleBody()
	body.AddImport(&ImportStatement{Imports: []Import{
		&ModuleImport{Name: MustIdentifier("xsd")},
		&MemberImport{Name: NewQualifiedIdentifier(MustIdentifier("skos"), MustIdentifier("prefLabel"))},
	}})
	body.AddImport(&ImportStatement{Imports: []Import{
		&ModuleImport{Name: MustIdentifier("xsd")},
		&ModuleImport{Name: MustIdentifier("dc")},
	}})

	var got []string
	for _, name := range body.ImportedModules() {
		got = append(got, name.String())
	}
	want := []string{"xsd", "skos", "dc"}
	if !slices.Equal(got, want) {
		t.Errorf("ImportedModules() = %v, want %v", got, want)
	}
	if defs := body.ImportedDefinitions(); len(defs) != 1 || defs[0].String() != "skos:prefLabel" {
		t.Errorf("ImportedDefinitions() = %v", defs)
	}
	if !body.IsImported(MustIdentifier("skos")) {
		t.Error("IsImported(skos) = false, want true")
	}
}

func TestDefaultCardinality(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind MemberKind
		want string
	}{
		{kind: ByValue, want: "{1}"},
		{kind: Identity, want: "{1}"},
		{kind: ByReference, want: "{0..1}"},
	}
	for _, tt := range tests {
		if got := DefaultCardinality(tt.kind).String(); got != tt.want {
			t.Errorf("DefaultCardinality(%s) = %s, want %s", tt.kind, got, tt.want)
		}
	}
	if got := NewUnbounded(1).String(); got != "{1..}" {
		t.Errorf("NewUnbounded(1) = %s, want {1..}", got)
	}
	if !NewUnbounded(0).IsMany() || ExactlyOne().IsMany() {
		t.Error("IsMany() wrong")
	}
	if !NewRange(2, 2).Equal(NewRange(2, 2)) || NewRange(0, 1).Equal(NewUnbounded(0)) {
		t.Error("Equal() wrong")
	}
}

func TestNewLanguageTag(t *testing.T) {
	t.Parallel()

	if _, err := NewLanguageTag("en-GB"); err != nil {
		t.Errorf("NewLanguageTag(en-GB) unexpected error: %v", err)
	}
	if _, err := NewLanguageTag("not a tag"); !errors.Is(err, ErrInvalidLanguageTag) {
		t.Errorf("NewLanguageTag(not a tag) error = %v, want ErrInvalidLanguageTag", err)
	}
}

func TestValueStrings(t *testing.T) {
	t.Parallel()

	dec, err := ParseDecimal("3.14")
	if err != nil {
		t.Fatal(err)
	}
	en := NewUncheckedLanguageTag("en")
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "boolean", value: Boolean{Value: true}, want: "true"},
		{name: "integer", value: Integer{Value: -42}, want: "-42"},
		{name: "decimal", value: dec, want: "3.14"},
		{name: "double", value: Double{Value: 1.5e-3}, want: "1.5E-03"},
		{name: "string", value: LanguageString{Value: "hi"}, want: `"hi"`},
		{name: "language string", value: LanguageString{Value: "hi", Language: &en}, want: `"hi"@en`},
		{name: "list", value: &ListOfValues{Values: []Value{Integer{Value: 1}, Integer{Value: 2}}}, want: "[1 2]"},
		{
			name:  "constructor",
			value: &ValueConstructor{TypeName: MustIdentifier("Code"), Value: LanguageString{Value: "x"}},
			want:  `Code("x")`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.value.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReferencedTypesAndUnknown(t *testing.T) {
	t.Parallel()

	entity := &EntityDef{
		DefinitionHead: DefinitionHead{Name: MustIdentifier("Person")},
		Body: &EntityBody{
			Identity: &Member{Kind: Identity, Name: MustIdentifier("id"), Shape: NewMemberDef(Identity, TypeOf(MustIdentifier("PersonId")))},
			Members: []*Member{
				{Kind: ByValue, Name: MustIdentifier("name"), Shape: NewMemberDef(ByValue, UnknownType())},
				{Kind: ByReference, Name: MustIdentifier("employer"), Shape: &PropertyRoleRef{Property: MustIdentifier("employer")}},
			},
		},
	}

	var got []string
	for _, ref := range ReferencedTypes(entity) {
		got = append(got, ref.String())
	}
	want := []string{"PersonId", "employer"}
	if !slices.Equal(got, want) {
		t.Errorf("ReferencedTypes() = %v, want %v", got, want)
	}
	if !HasUnknownType(entity) {
		t.Error("HasUnknownType() = false, want true")
	}

	forward := &StructureDef{DefinitionHead: DefinitionHead{Name: MustIdentifier("Later")}}
	if !HasUnknownType(forward) {
		t.Error("forward declaration should be incomplete")
	}
	datatype := &DatatypeDef{DefinitionHead: DefinitionHead{Name: MustIdentifier("Code")}, Base: MustIdentifier("string")}
	if HasUnknownType(datatype) {
		t.Error("datatype without body should be complete")
	}
}

func TestInspect_Order(t *testing.T) {
	t.Parallel()

	m := NewModule(MustIdentifier("example"))
	m.Body.AddAnnotation(&AnnotationProperty{Name: MustIdentifier("label"), Value: Boolean{Value: true}})
	m.Body.AddDefinition(&EnumDef{
		DefinitionHead: DefinitionHead{Name: MustIdentifier("Color")},
		Body: &EnumBody{Variants: []*ValueVariant{
			{Name: MustIdentifier("Red"), Value: 1},
			{Name: MustIdentifier("Green"), Value: 2},
		}},
	})

	var kinds []string
	Inspect(m, func(node any) bool {
		switch n := node.(type) {
		case *Module:
			kinds = append(kinds, "module")
		case Annotation:
			kinds = append(kinds, "annotation")
		case Definition:
			kinds = append(kinds, n.Kind())
		case *ValueVariant:
			kinds = append(kinds, n.Name.String())
		}
		return true
	})
	want := []string{"module", "annotation", "enum", "Red", "Green"}
	if !slices.Equal(kinds, want) {
		t.Errorf("Inspect order = %v, want %v", kinds, want)
	}
}
