// SPDX-License-Identifier: MPL-2.0

package parse

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/sdml-io/sdml/pkg/diag"
	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/source"
	"github.com/sdml-io/sdml/pkg/syntax"
)

// Scope kinds on the context stack.
const (
	scopeType scopeKind = iota
	scopeMember
	scopeVariant
)

type (
	// Option configures a parse.
	Option func(*options)

	options struct {
		sink         diag.Sink
		saveComments bool
		logger       *log.Logger
	}

	scopeKind int

	// scope is one entry of the context stack. Member and variant names
	// are recorded on the enclosing type scope.
	scope struct {
		kind  scopeKind
		name  model.Identifier
		names map[string]source.Span
	}

	// parseContext is owned by a single Parse call.
	parseContext struct {
		src    []byte
		file   source.FileID
		sink   diag.Sink
		logger *log.Logger

		saveComments bool
		comments     []model.Comment

		typeNames     map[string]source.Span
		moduleImports map[string]source.Span
		memberImports map[string]source.Span
		stack         []*scope
	}
)

// WithSink sends diagnostics to sink. The default discards them.
func WithSink(sink diag.Sink) Option {
	return func(o *options) {
		o.sink = sink
	}
}

// WithComments controls whether line comments are attached to the model.
// Comments are kept by default.
func WithComments(save bool) Option {
	return func(o *options) {
		o.saveComments = save
	}
}

// WithLogger traces rule entry at debug level on logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newContext(src []byte, file source.FileID, opts []Option) *parseContext {
	o := options{sink: diag.Discard, saveComments: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return &parseContext{
		src:           src,
		file:          file,
		sink:          o.sink,
		logger:        o.logger,
		saveComments:  o.saveComments,
		typeNames:     make(map[string]source.Span),
		moduleImports: make(map[string]source.Span),
		memberImports: make(map[string]source.Span),
	}
}

// --- diagnostics ---

func (c *parseContext) report(d diag.Diagnostic) {
	if note := c.where(); note != "" {
		d = d.WithNote(note)
	}
	c.sink.Report(d)
}

// where describes the innermost named scope, for diagnostic notes.
func (c *parseContext) where() string {
	for i := len(c.stack) - 1; i >= 0; i-- {
		s := c.stack[i]
		switch s.kind {
		case scopeType:
			return fmt.Sprintf("in definition: `%s`", s.name)
		case scopeMember:
			return fmt.Sprintf("in member: `%s`", s.name)
		case scopeVariant:
			return fmt.Sprintf("in variant: `%s`", s.name)
		}
	}
	return ""
}

func (c *parseContext) errorNode(rule string, n syntax.Node) error {
	err := &ErrorNodeError{File: c.file, Rule: rule, Span: n.Span()}
	c.report(err.AsDiagnostic())
	return err
}

func (c *parseContext) missing(rule, field string, span source.Span) error {
	err := &MissingNodeError{File: c.file, Rule: rule, Field: field, Span: span}
	c.report(err.AsDiagnostic())
	return err
}

// unexpected reports n as an unexpected node; comments are never listed
// as an expected kind.
func (c *parseContext) unexpected(rule string, expected []string, n syntax.Node) error {
	expected = slices.DeleteFunc(slices.Clone(expected), func(k string) bool {
		return k == syntax.KindLineComment
	})
	err := &UnexpectedNodeError{File: c.file, Rule: rule, Expected: expected, Actual: n.Kind(), Span: n.Span()}
	c.report(err.AsDiagnostic())
	return err
}

// --- node checks ---

// enter traces a rule and rejects error and missing nodes.
func (c *parseContext) enter(rule string, n syntax.Node) error {
	c.logger.Debug("rule", "rule", rule, "kind", n.Kind(), "span", n.Span().String())
	if n.IsError() {
		return c.errorNode(rule, n)
	}
	if n.IsMissing() {
		return c.missing(rule, n.Kind(), n.Span())
	}
	return nil
}

// expect enters a rule and checks n is one of kinds.
func (c *parseContext) expect(rule string, n syntax.Node, kinds ...string) error {
	if err := c.enter(rule, n); err != nil {
		return err
	}
	if !slices.Contains(kinds, n.Kind()) {
		return c.unexpected(rule, kinds, n)
	}
	return nil
}

// field returns the required child in field, reporting it as missing
// against the parent's span when absent.
func (c *parseContext) field(rule string, parent syntax.Node, field string) (syntax.Node, error) {
	child := parent.ChildByFieldName(field)
	if child == nil {
		return nil, c.missing(rule, field, parent.Span())
	}
	if child.IsError() {
		return nil, c.errorNode(rule, child)
	}
	if child.IsMissing() {
		return nil, c.missing(rule, field, child.Span())
	}
	return child, nil
}

// only returns the single named child of a wrapper node, skipping comments.
func (c *parseContext) only(rule string, n syntax.Node, expected []string) (syntax.Node, error) {
	for _, child := range n.NamedChildren() {
		if child.Kind() == syntax.KindLineComment {
			c.pushComment(child)
			continue
		}
		if err := c.expect(rule, child, expected...); err != nil {
			return nil, err
		}
		return child, nil
	}
	return nil, c.missing(rule, expected[0], n.Span())
}

func (c *parseContext) text(n syntax.Node) string {
	return syntax.Text(n, c.src)
}

// --- comments ---

func (c *parseContext) pushComment(n syntax.Node) {
	if !c.saveComments {
		return
	}
	c.comments = append(c.comments, model.Comment{Spanned: model.At(n.Span()), Text: c.text(n)})
}

// takeComments drains the pending comments.
func (c *parseContext) takeComments() []model.Comment {
	if len(c.comments) == 0 {
		return nil
	}
	taken := c.comments
	c.comments = nil
	return taken
}

// --- context stack ---

func (c *parseContext) push(s *scope) func() {
	c.stack = append(c.stack, s)
	depth := len(c.stack)
	return func() {
		if len(c.stack) != depth {
			panic(fmt.Sprintf("parse: context stack depth %d, expected %d", len(c.stack), depth))
		}
		c.stack = c.stack[:depth-1]
	}
}

// typeScope returns the innermost type scope, or nil.
func (c *parseContext) typeScope() *scope {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if c.stack[i].kind == scopeType {
			return c.stack[i]
		}
	}
	return nil
}

// startType enters a definition, reporting a duplicate definition name.
// The returned function pops the scope and must be deferred.
func (c *parseContext) startType(name model.Identifier) func() {
	if span := name.SourceSpan(); span != nil {
		if first, dup := c.typeNames[name.String()]; dup {
			c.report(diag.NewDuplicateDefinition(c.file, first, *span))
		} else {
			c.typeNames[name.String()] = *span
		}
	}
	return c.push(&scope{kind: scopeType, name: name, names: make(map[string]source.Span)})
}

// startMember enters a member or property role, reporting a name already
// used in the enclosing definition.
func (c *parseContext) startMember(name model.Identifier) func() {
	c.recordScoped(name, diag.NewDuplicateMember)
	return c.push(&scope{kind: scopeMember, name: name})
}

// startVariant enters an enum or union variant, reporting a name already
// used in the enclosing definition.
func (c *parseContext) startVariant(name model.Identifier) func() {
	c.recordScoped(name, diag.NewDuplicateVariant)
	return c.push(&scope{kind: scopeVariant, name: name})
}

func (c *parseContext) recordScoped(name model.Identifier, duplicate func(source.FileID, source.Span, source.Span) diag.Diagnostic) {
	owner := c.typeScope()
	span := name.SourceSpan()
	if owner == nil || span == nil {
		return
	}
	if first, dup := owner.names[name.String()]; dup {
		c.report(duplicate(c.file, first, *span))
		return
	}
	owner.names[name.String()] = *span
}

// --- imports ---

func (c *parseContext) recordModuleImport(name model.Identifier, span source.Span) {
	if first, dup := c.moduleImports[name.String()]; dup {
		c.report(diag.NewDuplicateModuleImport(c.file, first, span))
		return
	}
	c.moduleImports[name.String()] = span
}

func (c *parseContext) recordMemberImport(name model.QualifiedIdentifier, span source.Span) {
	if first, dup := c.memberImports[name.String()]; dup {
		c.report(diag.NewDuplicateDefinitionImport(c.file, first, span))
		return
	}
	c.memberImports[name.String()] = span
}
