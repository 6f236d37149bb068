// SPDX-License-Identifier: MPL-2.0

package dag

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/sdml-io/sdml/pkg/diag"
	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/parse"
	"github.com/sdml-io/sdml/pkg/source"
	"github.com/sdml-io/sdml/pkg/stdlib"
	"github.com/sdml-io/sdml/pkg/syntax"
)

func parseModules(t *testing.T, texts ...string) []*model.Module {
	t.Helper()
	var modules []*model.Module
	for i, text := range texts {
		m, err := parse.ParseSource([]byte(text), source.FileID(i), syntax.NewParser(), diag.Discard)
		if err != nil {
			t.Fatalf("ParseSource(%d): %v", i, err)
		}
		modules = append(modules, m)
	}
	return modules
}

func TestImports_LoadOrder(t *testing.T) {
	t.Parallel()

	modules := parseModules(t,
		`module rentals is import [ vehicles customers xsd ] end`,
		`module customers is import addresses end`,
		`module vehicles is import addresses end`,
		`module addresses is end`,
	)
	modules = append(modules, mustLibrary(t, "xsd"))

	ig := Imports(modules, false)
	order, err := ig.LoadOrder()
	if err != nil {
		t.Fatalf("LoadOrder() error: %v", err)
	}
	want := []string{"addresses", "customers", "vehicles", "rentals"}
	if !slices.Equal(order, want) {
		t.Errorf("LoadOrder() = %v, want %v", order, want)
	}
	if got := ig.ImportsOf("rentals"); !slices.Equal(got, []string{"vehicles", "customers"}) {
		t.Errorf("ImportsOf(rentals) = %v", got)
	}
	if got := ig.ImportersOf("addresses"); !slices.Equal(got, []string{"customers", "vehicles"}) {
		t.Errorf("ImportersOf(addresses) = %v", got)
	}
	if len(ig.Missing()) != 0 {
		t.Errorf("Missing() = %v, want none", ig.Missing())
	}
}

func TestImports_WithLibrary(t *testing.T) {
	t.Parallel()

	modules := parseModules(t, `module rentals is import xsd:integer end`)
	modules = append(modules, mustLibrary(t, "xsd"))

	ig := Imports(modules, true)
	if !ig.Has("xsd") {
		t.Fatal("library module xsd should be a node")
	}
	if got := ig.ImportsOf("rentals"); !slices.Equal(got, []string{"xsd"}) {
		t.Errorf("ImportsOf(rentals) = %v", got)
	}
}

func TestImports_MissingAndCycles(t *testing.T) {
	t.Parallel()

	modules := parseModules(t,
		`module a is import [ b zeta omega ] end`,
		`module b is import a end`,
	)
	ig := Imports(modules, false)

	if got := ig.Missing(); !slices.Equal(got, []string{"omega", "zeta"}) {
		t.Errorf("Missing() = %v, want [omega zeta]", got)
	}
	if got := ig.Cycles(); len(got) != 1 || !slices.Equal(got[0], []string{"a", "b"}) {
		t.Errorf("Cycles() = %v, want [[a b]]", got)
	}
	var cycleErr *CycleError
	if _, err := ig.LoadOrder(); !errors.As(err, &cycleErr) {
		t.Errorf("LoadOrder() error = %v, want *CycleError", err)
	}
}

func TestImportGraph_WriteDOT(t *testing.T) {
	t.Parallel()

	modules := parseModules(t,
		`module rentals is import [ vehicles missing ] end`,
		`module vehicles is end`,
	)
	var sb strings.Builder
	if err := Imports(modules, false).WriteDOT(&sb, "rentals"); err != nil {
		t.Fatalf("WriteDOT() error: %v", err)
	}
	want := `digraph "rentals" {
  rankdir=LR;
  node [shape=box];
  "rentals";
  "vehicles";
  "missing" [style=dashed];
  "rentals" -> "vehicles";
  "rentals" -> "missing";
}
`
	if sb.String() != want {
		t.Errorf("WriteDOT() =\n%s\nwant\n%s", sb.String(), want)
	}
}

func mustLibrary(t *testing.T, name string) *model.Module {
	t.Helper()
	id, err := model.NewIdentifier(name)
	if err != nil {
		t.Fatalf("NewIdentifier(%q): %v", name, err)
	}
	m, ok := stdlib.Module(id)
	if !ok {
		t.Fatalf("no library module %q", name)
	}
	return m
}
