// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"fmt"
	"strings"

	"github.com/sdml-io/sdml/pkg/source"
)

type (
	// Node is a read-only concrete syntax tree node.
	Node interface {
		Kind() string
		Span() source.Span
		// IsNamed reports whether the node is a grammar rule rather than
		// anonymous punctuation.
		IsNamed() bool
		// IsError reports whether the node marks text the grammar could not match.
		IsError() bool
		// IsMissing reports whether the node was inserted for a required
		// element that is absent from the text.
		IsMissing() bool
		NamedChildren() []Node
		// ChildByFieldName returns the first child in field name, or nil.
		ChildByFieldName(name string) Node
		ChildrenByFieldName(name string) []Node
		// FieldNameOf returns the field a direct child occupies, or "".
		FieldNameOf(child Node) string
	}

	// Grammar produces a concrete syntax tree from source text.
	Grammar interface {
		Parse(src []byte) (Node, error)
	}

	// TreeNode is the Node implementation built by Parser and by tests.
	TreeNode struct {
		kind     string
		span     source.Span
		named    bool
		missing  bool
		children []Child
	}

	// Child is a child node and the field it occupies, if any.
	Child struct {
		Field string
		Node  *TreeNode
	}
)

// NewNode creates a named node.
func NewNode(kind string, span source.Span, children ...Child) *TreeNode {
	return &TreeNode{kind: kind, span: span, named: true, children: children}
}

// NewAnonymous creates an anonymous node, such as a keyword or punctuation.
func NewAnonymous(kind string, span source.Span) *TreeNode {
	return &TreeNode{kind: kind, span: span}
}

// NewError creates an ERROR node.
func NewError(span source.Span, children ...Child) *TreeNode {
	return &TreeNode{kind: KindError, span: span, named: true, children: children}
}

// NewMissing creates a zero-width node marked as missing.
func NewMissing(kind string, at int) *TreeNode {
	return &TreeNode{kind: kind, span: source.MustSpan(at, at), named: true, missing: true}
}

// Field places n in the named field.
func Field(name string, n *TreeNode) Child {
	return Child{Field: name, Node: n}
}

// Unnamed places n as a child without a field.
func Unnamed(n *TreeNode) Child {
	return Child{Node: n}
}

// Kind returns the node kind.
func (n *TreeNode) Kind() string { return n.kind }

// Span returns the byte range the node covers.
func (n *TreeNode) Span() source.Span { return n.span }

// IsNamed reports whether the node is a named rule.
func (n *TreeNode) IsNamed() bool { return n.named }

// IsError reports whether the node is an ERROR node.
func (n *TreeNode) IsError() bool { return n.kind == KindError }

// IsMissing reports whether the node was inserted by error recovery.
func (n *TreeNode) IsMissing() bool { return n.missing }

// Children returns every child with its field.
func (n *TreeNode) Children() []Child { return n.children }

// NamedChildren returns the named children in order.
func (n *TreeNode) NamedChildren() []Node {
	nodes := make([]Node, 0, len(n.children))
	for _, c := range n.children {
		if c.Node.named {
			nodes = append(nodes, c.Node)
		}
	}
	return nodes
}

// ChildByFieldName returns the first child in field name, or nil.
func (n *TreeNode) ChildByFieldName(name string) Node {
	for _, c := range n.children {
		if c.Field == name {
			return c.Node
		}
	}
	return nil
}

// ChildrenByFieldName returns every child in field name.
func (n *TreeNode) ChildrenByFieldName(name string) []Node {
	var nodes []Node
	for _, c := range n.children {
		if c.Field == name {
			nodes = append(nodes, c.Node)
		}
	}
	return nodes
}

// FieldNameOf returns the field child occupies, or "".
func (n *TreeNode) FieldNameOf(child Node) string {
	for _, c := range n.children {
		if Node(c.Node) == child {
			return c.Field
		}
	}
	return ""
}

// HasError reports whether the node or any descendant is an ERROR or
// missing node.
func HasError(n Node) bool {
	if n.IsError() || n.IsMissing() {
		return true
	}
	for _, c := range n.NamedChildren() {
		if HasError(c) {
			return true
		}
	}
	return false
}

// Text returns the source text a node covers.
func Text(n Node, src []byte) string {
	span := n.Span()
	end := min(span.End(), len(src))
	start := min(span.Start(), end)
	return string(src[start:end])
}

// SExpression renders a node and its named descendants in the familiar
// (kind field: (kind ...)) form, mainly for tests and debugging.
func SExpression(n Node) string {
	var sb strings.Builder
	writeSExpression(&sb, n, "")
	return sb.String()
}

func writeSExpression(sb *strings.Builder, n Node, field string) {
	if field != "" {
		sb.WriteString(field)
		sb.WriteString(": ")
	}
	sb.WriteString("(")
	if n.IsMissing() {
		sb.WriteString("MISSING ")
	}
	sb.WriteString(n.Kind())
	for _, c := range n.NamedChildren() {
		sb.WriteString(" ")
		writeSExpression(sb, c, n.FieldNameOf(c))
	}
	sb.WriteString(")")
}

// String implements fmt.Stringer.
func (n *TreeNode) String() string {
	return fmt.Sprintf("%s@%s", n.kind, n.span)
}
