// SPDX-License-Identifier: MPL-2.0

package parse

import (
	"context"
	"errors"
	"fmt"

	"github.com/sdml-io/sdml/pkg/diag"
	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/source"
	"github.com/sdml-io/sdml/pkg/syntax"
)

// Parse builds a module from the concrete tree rooted at node. src is the
// text the tree was produced from and file its handle in a source
// registry.
//
// A structural error in one top-level item is reported and the remaining
// items are still walked; the partially built module is returned together
// with the joined errors. Callers that need a complete model must treat a
// non-nil error as fatal.
func Parse(ctx context.Context, node syntax.Node, src []byte, file source.FileID, opts ...Option) (*model.Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := newContext(src, file, opts)
	return c.module(ctx, node)
}

// ParseSource runs grammar over src and walks the result, reporting
// diagnostics to sink.
func ParseSource(src []byte, file source.FileID, grammar syntax.Grammar, sink diag.Sink) (*model.Module, error) {
	tree, err := grammar.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing source: %w", err)
	}
	return Parse(context.Background(), tree, src, file, WithSink(sink))
}

func (c *parseContext) module(ctx context.Context, node syntax.Node) (*model.Module, error) {
	const rule = "module"
	if err := c.expect(rule, node, syntax.KindModule); err != nil {
		return nil, err
	}
	nameNode, err := c.field(rule, node, syntax.FieldName)
	if err != nil {
		return nil, err
	}
	name, err := c.identifier(nameNode)
	if err != nil {
		return nil, err
	}

	m := model.NewModule(name)
	m.Spanned = model.At(node.Span())
	m.File = c.file

	if _, err := c.field(rule, node, syntax.FieldBody); err != nil {
		return m, err
	}
	var errs []error
	for _, child := range node.NamedChildren() {
		switch field := node.FieldNameOf(child); {
		case child.Kind() == syntax.KindLineComment:
			c.pushComment(child)
		case field == syntax.FieldBase:
			if base, ok := c.moduleURI(child, diag.NewInvalidModuleBaseURL); ok {
				m.WithBaseURI(base)
			}
		case field == syntax.FieldVersionInfo:
			if child.IsMissing() {
				return m, c.missing(rule, syntax.FieldVersionInfo, child.Span())
			}
			m.VersionInfo = c.quotedString(child)
		case field == syntax.FieldVersionURI:
			if uri, ok := c.moduleURI(child, diag.NewInvalidModuleVersionURL); ok {
				m.VersionURI = uri
			}
		case field == syntax.FieldBody:
			m.AddComments(c.takeComments()...)
			if err := c.moduleBody(ctx, child, m); err != nil {
				errs = append(errs, err)
			}
		case child.IsError():
			errs = append(errs, c.errorNode(rule, child))
		}
	}
	m.AddComments(c.takeComments()...)
	return m, errors.Join(errs...)
}

// moduleURI parses an IRI literal; a malformed one is reported with
// invalid and dropped.
func (c *parseContext) moduleURI(n syntax.Node, invalid func(source.FileID, *source.Span, string) diag.Diagnostic) (*model.URI, bool) {
	raw := c.iriText(n)
	u, err := model.ParseURI(raw)
	if err != nil {
		span := n.Span()
		c.report(invalid(c.file, &span, raw))
		return nil, false
	}
	return u, true
}

func (c *parseContext) moduleBody(ctx context.Context, node syntax.Node, m *model.Module) error {
	const rule = "module_body"
	if err := c.expect(rule, node, syntax.KindModuleBody); err != nil {
		return err
	}
	body := m.Body
	body.Spanned = model.At(node.Span())

	expected := []string{syntax.KindImportStatement, syntax.KindAnnotation, syntax.KindDefinition, syntax.KindLineComment}
	var errs []error
	for _, child := range node.NamedChildren() {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch child.Kind() {
		case syntax.KindLineComment:
			c.pushComment(child)
		case syntax.KindImportStatement:
			stmt, err := c.importStatement(child)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if len(stmt.Imports) > 0 {
				body.AddImport(stmt)
			}
		case syntax.KindAnnotation:
			ann, err := c.annotation(child)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			body.AddAnnotation(ann)
		case syntax.KindDefinition:
			def, err := c.definition(child)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			body.AddDefinition(def)
		default:
			if child.IsError() {
				errs = append(errs, c.errorNode(rule, child))
			} else {
				errs = append(errs, c.unexpected(rule, expected, child))
			}
		}
	}
	body.AddComments(c.takeComments()...)
	return errors.Join(errs...)
}

func (c *parseContext) importStatement(node syntax.Node) (*model.ImportStatement, error) {
	const rule = "import_statement"
	if err := c.expect(rule, node, syntax.KindImportStatement); err != nil {
		return nil, err
	}
	stmt := &model.ImportStatement{Spanned: model.At(node.Span())}
	stmt.AddComments(c.takeComments()...)
	for _, child := range node.NamedChildren() {
		switch child.Kind() {
		case syntax.KindLineComment:
			c.pushComment(child)
		case syntax.KindModuleImport:
			imp, err := c.moduleImport(child)
			if err != nil {
				return nil, err
			}
			_, dup := c.moduleImports[imp.Name.String()]
			c.recordModuleImport(imp.Name, child.Span())
			if !dup {
				stmt.Imports = append(stmt.Imports, imp)
			}
		case syntax.KindMemberImport:
			imp, err := c.memberImport(child)
			if err != nil {
				return nil, err
			}
			_, dup := c.memberImports[imp.Name.String()]
			c.recordMemberImport(imp.Name, child.Span())
			if !dup {
				stmt.Imports = append(stmt.Imports, imp)
			}
		default:
			return nil, c.unexpected(rule, []string{syntax.KindModuleImport, syntax.KindMemberImport}, child)
		}
	}
	return stmt, nil
}
