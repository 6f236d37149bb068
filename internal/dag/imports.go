// SPDX-License-Identifier: MPL-2.0

package dag

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/stdlib"

	"golang.org/x/exp/maps"
)

// ImportGraph is the graph of imports among a set of modules. An edge runs
// from an imported module to its importer, so a topological sort lists
// every module after the modules it imports.
type ImportGraph struct {
	*Graph
	missing map[string]bool
}

// Imports builds the import graph of modules. Imports of library modules
// are left out unless withLibrary is set. Imported modules that are not in
// modules are still added as nodes and reported by Missing.
func Imports(modules []*model.Module, withLibrary bool) *ImportGraph {
	ig := &ImportGraph{Graph: New(), missing: make(map[string]bool)}
	known := make(map[string]bool, len(modules))
	for _, m := range modules {
		if m.Library && !withLibrary {
			continue
		}
		known[m.Name.String()] = true
		ig.AddNode(m.Name.String())
	}
	for _, m := range modules {
		if !known[m.Name.String()] {
			continue
		}
		for _, dep := range m.ImportedModules() {
			if !withLibrary && stdlib.IsLibraryModule(dep) {
				continue
			}
			name := dep.String()
			if !known[name] {
				ig.missing[name] = true
			}
			ig.AddEdge(name, m.Name.String())
		}
	}
	return ig
}

// ImportsOf returns the modules name imports, in declaration order.
func (ig *ImportGraph) ImportsOf(name string) []string {
	return ig.Predecessors(name)
}

// ImportersOf returns the modules importing name.
func (ig *ImportGraph) ImportersOf(name string) []string {
	return ig.Successors(name)
}

// Missing returns the sorted names of imported modules that were not among
// the modules the graph was built from.
func (ig *ImportGraph) Missing() []string {
	names := maps.Keys(ig.missing)
	slices.Sort(names)
	return names
}

// LoadOrder returns the modules ordered so that each one follows its
// imports. A cycle is reported as a CycleError.
func (ig *ImportGraph) LoadOrder() ([]string, error) {
	return ig.TopologicalSort()
}

// WriteDOT writes the graph in Graphviz DOT syntax. Edges point from an
// importer to the module it imports; missing modules are drawn dashed.
func (ig *ImportGraph) WriteDOT(w io.Writer, name string) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %s {\n", quoteDOT(name))
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")
	for _, node := range ig.Nodes() {
		if ig.missing[node] {
			fmt.Fprintf(&sb, "  %s [style=dashed];\n", quoteDOT(node))
		} else {
			fmt.Fprintf(&sb, "  %s;\n", quoteDOT(node))
		}
	}
	for _, node := range ig.Nodes() {
		for _, imported := range ig.ImportsOf(node) {
			fmt.Fprintf(&sb, "  %s -> %s;\n", quoteDOT(node), quoteDOT(imported))
		}
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func quoteDOT(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
