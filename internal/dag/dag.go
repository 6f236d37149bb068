// SPDX-License-Identifier: MPL-2.0

// Package dag provides directed graph operations for topological sorting
// and cycle detection. It is used to order the modules of a store so that
// each module comes after every module it imports.
package dag

import (
	"fmt"
	"slices"
	"strings"
)

type (
	// CycleError indicates that the graph contains a cycle, preventing topological ordering.
	CycleError struct {
		// Cycle contains the nodes that form the cycle (not necessarily all of them,
		// but enough to identify the problem).
		Cycle []string
	}

	// Graph is a directed graph for topological sorting.
	// Nodes are identified by string keys. Edges represent "must come before" relationships:
	// an edge from A to B means A must be ordered before B.
	Graph struct {
		// adjacency maps each node to its outgoing neighbors.
		adjacency map[string][]string
		// incoming maps each node to the nodes with an edge into it.
		incoming map[string][]string
		// nodes tracks all nodes in insertion order for deterministic output.
		nodes []string
		// nodeSet provides O(1) lookup for node existence.
		nodeSet map[string]bool
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("import cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		adjacency: make(map[string][]string),
		incoming:  make(map[string][]string),
		nodeSet:   make(map[string]bool),
	}
}

// AddNode adds a node to the graph. If the node already exists, this is a no-op.
func (g *Graph) AddNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

// AddEdge adds a directed edge from -> to, meaning "from" must come before "to".
// Both nodes are implicitly added if they don't exist. Repeated edges are ignored.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	if slices.Contains(g.adjacency[from], to) {
		return
	}
	g.adjacency[from] = append(g.adjacency[from], to)
	g.incoming[to] = append(g.incoming[to], from)
}

// Has reports whether name is a node of the graph.
func (g *Graph) Has(name string) bool { return g.nodeSet[name] }

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []string { return slices.Clone(g.nodes) }

// Successors returns the targets of the edges leaving name, in insertion order.
func (g *Graph) Successors(name string) []string { return slices.Clone(g.adjacency[name]) }

// Predecessors returns the sources of the edges entering name, in insertion order.
func (g *Graph) Predecessors(name string) []string { return slices.Clone(g.incoming[name]) }

// TopologicalSort returns a valid order using Kahn's algorithm.
// Returns CycleError if the graph contains a cycle.
// The returned order is deterministic: nodes at the same topological level
// appear in the order they were first added to the graph.
func (g *Graph) TopologicalSort() ([]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[string]int, len(g.nodes))
	for _, node := range g.nodes {
		inDegree[node] = len(g.incoming[node])
	}

	// Seed the queue with nodes that have no incoming edges, in insertion order.
	queue := make([]string, 0)
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range g.adjacency[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
			}
		}
	}

	if len(result) != len(g.nodes) {
		var cycle []string
		if cycles := g.Cycles(); len(cycles) > 0 {
			cycle = slices.Concat(cycles[0], cycles[0][:1])
		}
		return nil, &CycleError{Cycle: cycle}
	}

	return result, nil
}

// Cycles returns the strongly connected components that contain a cycle:
// every component of two or more nodes, and single nodes with an edge to
// themselves. Components and their members are ordered by insertion.
func (g *Graph) Cycles() [][]string {
	t := tarjan{
		g:       g,
		index:   make(map[string]int, len(g.nodes)),
		lowlink: make(map[string]int, len(g.nodes)),
		onStack: make(map[string]bool, len(g.nodes)),
	}
	for _, node := range g.nodes {
		if _, seen := t.index[node]; !seen {
			t.connect(node)
		}
	}

	position := make(map[string]int, len(g.nodes))
	for i, node := range g.nodes {
		position[node] = i
	}
	byPosition := func(a, b string) int { return position[a] - position[b] }

	var cycles [][]string
	for _, component := range t.components {
		if len(component) == 1 && !slices.Contains(g.adjacency[component[0]], component[0]) {
			continue
		}
		slices.SortFunc(component, byPosition)
		cycles = append(cycles, component)
	}
	slices.SortFunc(cycles, func(a, b []string) int { return byPosition(a[0], b[0]) })
	return cycles
}

// tarjan holds the state of Tarjan's strongly connected components algorithm.
type tarjan struct {
	g          *Graph
	next       int
	index      map[string]int
	lowlink    map[string]int
	stack      []string
	onStack    map[string]bool
	components [][]string
}

func (t *tarjan) connect(node string) {
	t.index[node] = t.next
	t.lowlink[node] = t.next
	t.next++
	t.stack = append(t.stack, node)
	t.onStack[node] = true

	for _, succ := range t.g.adjacency[node] {
		if _, seen := t.index[succ]; !seen {
			t.connect(succ)
			t.lowlink[node] = min(t.lowlink[node], t.lowlink[succ])
		} else if t.onStack[succ] {
			t.lowlink[node] = min(t.lowlink[node], t.index[succ])
		}
	}

	if t.lowlink[node] != t.index[node] {
		return
	}
	var component []string
	for {
		top := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[top] = false
		component = append(component, top)
		if top == node {
			break
		}
	}
	t.components = append(t.components, component)
}
