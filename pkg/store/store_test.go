// SPDX-License-Identifier: MPL-2.0

package store

import (
	"slices"
	"testing"

	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/stdlib"
)

func newModule(t *testing.T, name, base string, defs ...string) *model.Module {
	t.Helper()
	m := model.NewModule(model.MustIdentifier(name))
	if base != "" {
		m.WithBaseURI(model.MustParseURI(base))
	}
	for _, d := range defs {
		m.Body.AddDefinition(&model.StructureDef{DefinitionHead: model.DefinitionHead{Name: model.MustIdentifier(d)}})
	}
	return m
}

func names(ids []model.Identifier) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func TestCache_InsertionOrder(t *testing.T) {
	t.Parallel()

	c := NewCache()
	for _, n := range []string{"zeta", "alpha", "mid"} {
		c.Insert(newModule(t, n, ""))
	}
	if got, want := names(c.ModuleNames()), []string{"zeta", "alpha", "mid"}; !slices.Equal(got, want) {
		t.Errorf("ModuleNames() = %v, want %v", got, want)
	}

	c.Insert(newModule(t, "alpha", "", "Replaced"))
	if got := names(c.ModuleNames()); !slices.Equal(got, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("replacing a module changed the order: %v", got)
	}
	if m, _ := c.Get(model.MustIdentifier("alpha")); !m.Body.HasDefinition(model.MustIdentifier("Replaced")) {
		t.Error("Insert did not replace the module")
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestCache_Remove(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.Insert(newModule(t, "a", "http://example.com/a/"))
	c.Insert(newModule(t, "b", ""))

	if !c.Remove(model.MustIdentifier("a")) {
		t.Fatal("Remove(a) = false")
	}
	if c.Remove(model.MustIdentifier("a")) {
		t.Error("second Remove(a) = true")
	}
	if c.Contains(model.MustIdentifier("a")) {
		t.Error("a still present")
	}
	u := model.MustParseURI("http://example.com/a/")
	if c.ContainsByURI(u) {
		t.Error("URI mapping for a still present")
	}
	if got := names(c.ModuleNames()); !slices.Equal(got, []string{"b"}) {
		t.Errorf("ModuleNames() = %v", got)
	}
}

func TestCache_ByURI(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.Insert(newModule(t, "example", "http://example.com"))

	tests := []struct {
		uri  string
		want bool
	}{
		{"http://example.com/", true},
		{"http://example.com", true},
		{"http://example.org/", false},
	}
	for _, tt := range tests {
		u := model.MustParseURI(tt.uri)
		name, ok := c.URIToName(u)
		if ok != tt.want {
			t.Errorf("URIToName(%s) ok = %v, want %v", tt.uri, ok, tt.want)
			continue
		}
		if ok && name.String() != "example" {
			t.Errorf("URIToName(%s) = %s", tt.uri, name)
		}
		if _, ok := c.GetByURI(u); ok != tt.want {
			t.Errorf("GetByURI(%s) ok = %v", tt.uri, ok)
		}
	}
	if _, ok := c.URIToName(nil); ok {
		t.Error("URIToName(nil) should fail")
	}
}

func TestCache_Resolve(t *testing.T) {
	t.Parallel()

	c := NewCache()
	c.Insert(newModule(t, "shapes", "", "Circle"))
	in := model.MustIdentifier("shapes")

	tests := []struct {
		name string
		ref  model.IdentifierReference
		want bool
	}{
		{"bare in module", model.MustIdentifier("Circle"), true},
		{"qualified", model.NewQualifiedIdentifier(in, model.MustIdentifier("Circle")), true},
		{"missing member", model.MustIdentifier("Square"), false},
		{"missing module", model.NewQualifiedIdentifier(model.MustIdentifier("other"), model.MustIdentifier("Circle")), false},
		{"nil reference", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, ok := c.ResolveOrIn(tt.ref, in); ok != tt.want {
				t.Errorf("ResolveOrIn() ok = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestCache_WithStdlib(t *testing.T) {
	t.Parallel()

	c := NewCache().WithStdlib()
	if got, want := names(c.ModuleNames()), stdlib.Names(); !slices.Equal(got, want) {
		t.Errorf("ModuleNames() = %v, want %v", got, want)
	}
	label := model.NewQualifiedIdentifier(model.MustIdentifier("rdfs"), model.MustIdentifier("label"))
	if _, ok := c.Resolve(label); !ok {
		t.Error("rdfs:label should resolve")
	}
	u := model.MustParseURI("http://www.w3.org/2001/XMLSchema#")
	if name, ok := c.URIToName(u); !ok || name.String() != "xsd" {
		t.Errorf("URIToName(xsd) = %v, %v", name, ok)
	}
}
