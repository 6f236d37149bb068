// SPDX-License-Identifier: MPL-2.0

package printer

import (
	"io"
	"strconv"
	"strings"

	"github.com/sdml-io/sdml/pkg/model"
	"github.com/sdml-io/sdml/pkg/syntax"
)

// DefaultIndent is the number of spaces per nesting level when
// Options.Indent is not positive.
const DefaultIndent = 2

type (
	// Options controls the layout of printed source.
	Options struct {
		// Indent is the number of spaces per nesting level.
		Indent int
	}

	printer struct {
		sb     strings.Builder
		unit   string
		indent string
	}
)

// String renders m with the default options.
func String(m *model.Module) string {
	p := newPrinter(Options{})
	p.module(m)
	return p.sb.String()
}

// Write renders m as source text to w.
func Write(w io.Writer, m *model.Module, opts Options) error {
	p := newPrinter(opts)
	p.module(m)
	_, err := io.WriteString(w, p.sb.String())
	return err
}

func newPrinter(opts Options) *printer {
	n := opts.Indent
	if n <= 0 {
		n = DefaultIndent
	}
	return &printer{unit: strings.Repeat(" ", n)}
}

func (p *printer) push() { p.indent += p.unit }

func (p *printer) pop() { p.indent = p.indent[:len(p.indent)-len(p.unit)] }

// line writes one indented line.
func (p *printer) line(parts ...string) {
	p.sb.WriteString(p.indent)
	for _, s := range parts {
		p.sb.WriteString(s)
	}
	p.sb.WriteByte('\n')
}

func (p *printer) module(m *model.Module) {
	head := "module " + m.Name.String()
	if m.BaseURI != nil {
		head += " <" + m.BaseURI.String() + ">"
	}
	if m.IsVersioned() {
		head += " version " + strconv.Quote(m.VersionInfo)
		if m.VersionURI != nil {
			head += " <" + m.VersionURI.String() + ">"
		}
	}
	if m.Body == nil || m.Body.IsEmpty() {
		p.line(head, " is end")
		return
	}

	p.line(head, " is")
	p.push()
	for _, stmt := range m.Body.Imports() {
		p.importStatement(stmt)
	}
	if len(m.Body.Imports()) > 0 && (len(m.Body.Annotations()) > 0 || len(m.Body.Definitions()) > 0) {
		p.sb.WriteByte('\n')
	}
	p.annotations(m.Body.Annotations())
	for i, def := range m.Body.Definitions() {
		if i > 0 || len(m.Body.Annotations()) > 0 {
			p.sb.WriteByte('\n')
		}
		p.definition(def)
	}
	p.pop()
	p.line("end")
}

func (p *printer) importStatement(stmt *model.ImportStatement) {
	items := make([]string, len(stmt.Imports))
	for i, imp := range stmt.Imports {
		items[i] = importItem(imp)
	}
	if len(items) == 1 {
		p.line("import ", items[0])
		return
	}
	p.line("import [ ", strings.Join(items, " "), " ]")
}

func importItem(imp model.Import) string {
	if mi, ok := imp.(*model.ModuleImport); ok && mi.VersionURI != nil {
		return mi.Name.String() + " <" + mi.VersionURI.String() + ">"
	}
	return imp.String()
}

func (p *printer) annotations(annotations []model.Annotation) {
	for _, a := range annotations {
		switch a := a.(type) {
		case *model.AnnotationProperty:
			p.line("@", a.Name.String(), " = ", a.Value.String())
		case *model.Constraint:
			p.constraint(a)
		}
	}
}

func (p *printer) constraint(c *model.Constraint) {
	switch body := c.Body.(type) {
	case *model.InformalConstraint:
		text := strconv.Quote(body.Value)
		if body.Language != nil {
			text += "@" + body.Language.String()
		}
		p.line("assert ", c.Name.String(), " = ", text)
	case *model.FormalConstraint:
		p.line("assert ", c.Name.String(), " is")
		p.push()
		for _, env := range body.Environment {
			switch {
			case env.Value != nil:
				p.line("def ", env.Name.String(), " = ", env.Value.String())
			case env.Sentence != nil:
				p.line("def ", env.Name.String(), " = ", env.Sentence.String())
			}
		}
		if body.Body != nil {
			p.line(body.Body.String())
		}
		p.pop()
		p.line("end")
	}
}

// annotationBody writes " is ... end" after head, or head alone when body
// is nil.
func (p *printer) annotationBody(head string, body *model.AnnotationOnlyBody) {
	if body == nil {
		p.line(head)
		return
	}
	if len(body.Annotations) == 0 {
		p.line(head, " is end")
		return
	}
	p.line(head, " is")
	p.push()
	p.annotations(body.Annotations)
	p.pop()
	p.line("end")
}

// typeName prints a type reference, writing sdml builtins by their keyword.
func typeName(t model.TypeReference) string {
	if t.IsUnknown() {
		return "unknown"
	}
	return refName(t.Ref)
}

func refName(ref model.IdentifierReference) string {
	if q, ok := ref.(model.QualifiedIdentifier); ok && q.Module().String() == "sdml" &&
		syntax.IsBuiltinSimpleType(q.Member().String()) {
		return q.Member().String()
	}
	return ref.String()
}
