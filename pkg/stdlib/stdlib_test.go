// SPDX-License-Identifier: MPL-2.0

package stdlib

import (
	"testing"

	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/syntax"
)

func TestModules_Shape(t *testing.T) {
	t.Parallel()

	modules := Modules()
	if len(modules) != len(Names()) {
		t.Fatalf("Modules() = %d modules, want %d", len(modules), len(Names()))
	}
	for _, m := range modules {
		if !m.Library {
			t.Errorf("%s: Library = false", m.Name)
		}
		if m.BaseURI == nil {
			t.Errorf("%s: missing base URI", m.Name)
		}
		if m.SourceSpan() != nil {
			t.Errorf("%s: library modules carry no spans", m.Name)
		}
		if len(m.Body.Definitions()) == 0 {
			t.Errorf("%s: no definitions", m.Name)
		}
	}
}

func TestModules_ImportsAreLibraryModules(t *testing.T) {
	t.Parallel()

	for _, m := range Modules() {
		for _, name := range m.ImportedModules() {
			if !IsLibraryModule(name) {
				t.Errorf("%s imports %s, which is not a library module", m.Name, name)
			}
		}
	}
}

func TestModule_BuiltinTypesAreDatatypes(t *testing.T) {
	t.Parallel()

	sdml, ok := Module(model.MustIdentifier(SDML))
	if !ok {
		t.Fatal("sdml module not found")
	}
	for _, name := range syntax.BuiltinSimpleTypes {
		def, ok := sdml.Body.Definition(model.MustIdentifier(name))
		if !ok {
			t.Errorf("sdml:%s not defined", name)
			continue
		}
		if !IsDatatype(def) {
			t.Errorf("sdml:%s is not a datatype", name)
		}
	}
}

func TestTermTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		module string
		term   string
		check  func(model.Definition) bool
	}{
		{RDFS, "label", IsProperty},
		{RDFS, "Class", IsClass},
		{XSD, "string", IsDatatype},
		{SKOS, "prefLabel", IsProperty},
		{DCTerms, "description", IsProperty},
		{OWL, "Thing", IsClass},
	}

	for _, tt := range tests {
		t.Run(tt.module+":"+tt.term, func(t *testing.T) {
			t.Parallel()
			m, ok := Module(model.NewUncheckedIdentifier(tt.module))
			if !ok {
				t.Fatalf("module %s not found", tt.module)
			}
			def, ok := m.Body.Definition(model.NewUncheckedIdentifier(tt.term))
			if !ok {
				t.Fatalf("%s:%s not defined", tt.module, tt.term)
			}
			if !tt.check(def) {
				t.Errorf("%s:%s has the wrong type", tt.module, tt.term)
			}
		})
	}
}

func TestModule_Unknown(t *testing.T) {
	t.Parallel()

	if _, ok := Module(model.MustIdentifier("example")); ok {
		t.Error("Module(example) should not exist")
	}
	if IsLibraryModule(model.MustIdentifier("example")) {
		t.Error("IsLibraryModule(example) = true")
	}
}
