// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"errors"
	"unicode/utf8"

	"github.com/sdml-io/sdml/pkg/source"
)

// ErrInvalidEncoding is returned for source text that is not valid UTF-8.
var ErrInvalidEncoding = errors.New("source is not valid UTF-8")

var reservedWords = map[string]bool{
	"module": true, "is": true, "end": true, "import": true, "assert": true, "def": true,
	"datatype": true, "entity": true, "enum": true, "event": true, "structure": true,
	"union": true, "property": true, "rdf": true, "identity": true, "ref": true,
	"group": true, "unknown": true, "self": true, "true": true, "false": true,
	"forall": true, "exists": true, "not": true, "and": true, "or": true, "xor": true,
	"implies": true, "iff": true, "in": true,
}

var definitionKeywords = map[string]bool{
	"datatype": true, "entity": true, "enum": true, "event": true,
	"structure": true, "union": true, "property": true, "rdf": true,
}

type (
	// Parser is the built-in Grammar for SDML source text.
	Parser struct{}

	parser struct {
		src      []byte
		toks     []token
		pos      int
		lastEnd  int
		comments []*TreeNode
	}

	// syntaxFailure unwinds to the nearest recovery point.
	syntaxFailure struct{}

	mark struct {
		pos      int
		lastEnd  int
		comments int
	}
)

// NewParser creates the built-in grammar.
func NewParser() *Parser {
	return &Parser{}
}

// Parse builds a concrete syntax tree. Syntax errors are recorded in the
// tree as ERROR and missing nodes; only invalid UTF-8 returns an error.
func (*Parser) Parse(src []byte) (Node, error) {
	if !utf8.Valid(src) {
		return nil, ErrInvalidEncoding
	}
	p := &parser{src: src, toks: tokenize(src)}
	p.skipComments()
	return p.module(), nil
}

// --- token plumbing ---

func (p *parser) cur() token { return p.toks[p.pos] }

func (p *parser) peekAt(n int) token {
	i := p.pos
	for n > 0 && i < len(p.toks)-1 {
		i++
		if p.toks[i].kind != tokComment {
			n--
		}
	}
	return p.toks[i]
}

func (p *parser) atEOF() bool { return p.cur().kind == tokEOF }

func (p *parser) advance() {
	if p.atEOF() {
		return
	}
	p.lastEnd = p.cur().end
	p.pos++
	p.skipComments()
}

func (p *parser) skipComments() {
	for p.cur().kind == tokComment {
		tok := p.cur()
		p.comments = append(p.comments, NewNode(KindLineComment, source.MustSpan(tok.start, tok.end)))
		p.pos++
	}
}

// takeComments drains pending comments as unnamed-field children.
func (p *parser) takeComments() []Child {
	children := make([]Child, len(p.comments))
	for i, c := range p.comments {
		children[i] = Unnamed(c)
	}
	p.comments = p.comments[:0]
	return children
}

func (p *parser) mark() mark {
	return mark{pos: p.pos, lastEnd: p.lastEnd, comments: len(p.comments)}
}

func (p *parser) reset(m mark) {
	p.pos, p.lastEnd = m.pos, m.lastEnd
	p.comments = p.comments[:m.comments]
}

func (p *parser) isKeyword(kw string) bool {
	tok := p.cur()
	return tok.kind == tokIdent && tok.text == kw
}

func (p *parser) isPunct(s string) bool {
	tok := p.cur()
	return tok.kind == tokPunct && tok.text == s
}

func (p *parser) isIdentifier() bool {
	tok := p.cur()
	return tok.kind == tokIdent && !reservedWords[tok.text]
}

func (p *parser) isReference() bool {
	return p.isIdentifier() || p.cur().kind == tokQualified
}

func (p *parser) fail() {
	panic(syntaxFailure{})
}

func (p *parser) expectKeyword(kw string) {
	if !p.isKeyword(kw) {
		p.fail()
	}
	p.advance()
}

func (p *parser) expectPunct(s string) {
	if !p.isPunct(s) {
		p.fail()
	}
	p.advance()
}

func (p *parser) spanFrom(start int) source.Span {
	return source.MustSpan(start, max(start, p.lastEnd))
}

func (p *parser) node(kind string, start int, children ...Child) *TreeNode {
	return NewNode(kind, p.spanFrom(start), children...)
}

func (p *parser) leaf(kind string) *TreeNode {
	tok := p.cur()
	p.advance()
	return NewNode(kind, source.MustSpan(tok.start, tok.end))
}

// attempt runs parse and, on a syntax failure, skips ahead to a token
// accepted by atSync (at nesting depth zero) and returns an ERROR node
// covering everything consumed.
func (p *parser) attempt(parse func() *TreeNode, atSync func() bool) (n *TreeNode) {
	startPos := p.pos
	start := p.cur().start
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(syntaxFailure); !ok {
			panic(r)
		}
		if p.pos == startPos {
			p.advance()
		}
		depth := 0
		for !p.atEOF() {
			if p.isKeyword("end") {
				if depth == 0 {
					break
				}
				depth--
				p.advance()
				continue
			}
			if depth == 0 && atSync() {
				break
			}
			if p.isKeyword("is") || p.isKeyword("of") {
				depth++
			}
			p.advance()
		}
		n = NewError(p.spanFrom(start))
	}()
	return parse()
}

// endOfBody consumes the closing "end", or records an ERROR when the input
// stops first.
func (p *parser) endOfBody(children []Child) []Child {
	children = append(children, p.takeComments()...)
	if p.isKeyword("end") {
		p.advance()
		return children
	}
	at := p.cur().start
	return append(children, Unnamed(NewError(source.MustSpan(at, at))))
}

// --- module ---

func (p *parser) module() *TreeNode {
	children := p.takeComments()
	start := p.cur().start
	if len(children) > 0 {
		start = children[0].Node.span.Start()
	}
	if !p.isKeyword("module") {
		for !p.atEOF() {
			p.advance()
		}
		return NewError(source.MustSpan(0, len(p.src)))
	}
	p.advance()

	children = append(children, Field(FieldName, p.identifierOrMissing()))
	if p.cur().kind == tokIRI {
		children = append(children, Field(FieldBase, p.leaf(KindIRI)))
	}
	if p.isKeyword("version") {
		p.advance()
		if p.cur().kind == tokString {
			children = append(children, Field(FieldVersionInfo, p.leaf(KindQuotedString)))
		} else {
			children = append(children, Field(FieldVersionInfo, NewMissing(KindQuotedString, p.cur().start)))
		}
		if p.cur().kind == tokIRI {
			children = append(children, Field(FieldVersionURI, p.leaf(KindIRI)))
		}
	}
	children = append(children, Field(FieldBody, p.moduleBody()))
	children = append(children, p.takeComments()...)
	if !p.atEOF() {
		rest := p.cur().start
		for !p.atEOF() {
			p.advance()
		}
		children = append(children, Unnamed(NewError(p.spanFrom(rest))))
	}
	return NewNode(KindModule, source.MustSpan(start, max(start, p.lastEnd)), children...)
}

func (p *parser) moduleBody() *TreeNode {
	start := p.cur().start
	if !p.isKeyword("is") {
		for !p.atEOF() {
			p.advance()
		}
		return NewError(p.spanFrom(start))
	}
	p.advance()

	var children []Child
	for !p.isKeyword("end") && !p.atEOF() {
		children = append(children, p.takeComments()...)
		if p.isKeyword("end") || p.atEOF() {
			break
		}
		children = append(children, Unnamed(p.attempt(p.moduleItem, p.atModuleItem)))
	}
	children = p.endOfBody(children)
	return p.node(KindModuleBody, start, children...)
}

func (p *parser) atModuleItem() bool {
	tok := p.cur()
	if tok.kind == tokPunct {
		return tok.text == "@"
	}
	return tok.kind == tokIdent && (tok.text == "import" || tok.text == "assert" || definitionKeywords[tok.text])
}

func (p *parser) moduleItem() *TreeNode {
	switch {
	case p.isKeyword("import"):
		return p.importStatement()
	case p.isPunct("@") || p.isKeyword("assert"):
		return p.annotation()
	case p.cur().kind == tokIdent && definitionKeywords[p.cur().text]:
		return p.definition()
	}
	p.fail()
	return nil
}

func (p *parser) importStatement() *TreeNode {
	start := p.cur().start
	p.expectKeyword("import")
	var children []Child
	if p.isPunct("[") {
		p.advance()
		for !p.isPunct("]") {
			children = append(children, Unnamed(p.importItem()))
		}
		p.advance()
	} else {
		children = append(children, Unnamed(p.importItem()))
	}
	return p.node(KindImportStatement, start, children...)
}

func (p *parser) importItem() *TreeNode {
	start := p.cur().start
	if p.cur().kind == tokQualified {
		return p.node(KindMemberImport, start, Field(FieldName, p.qualifiedIdentifier()))
	}
	children := []Child{Field(FieldName, p.identifier())}
	if p.cur().kind == tokIRI {
		children = append(children, Field(FieldVersionURI, p.leaf(KindIRI)))
	}
	return p.node(KindModuleImport, start, children...)
}

// --- identifiers ---

func (p *parser) identifier() *TreeNode {
	if !p.isIdentifier() {
		p.fail()
	}
	return p.leaf(KindIdentifier)
}

func (p *parser) identifierOrMissing() *TreeNode {
	if p.isIdentifier() {
		return p.leaf(KindIdentifier)
	}
	return NewMissing(KindIdentifier, p.cur().start)
}

func (p *parser) qualifiedIdentifier() *TreeNode {
	tok := p.cur()
	if tok.kind != tokQualified {
		p.fail()
	}
	colon := tok.start
	for i := 0; i < len(tok.text); i++ {
		if tok.text[i] == ':' {
			colon = tok.start + i
			break
		}
	}
	p.advance()
	return NewNode(KindQualifiedIdentifier, source.MustSpan(tok.start, tok.end),
		Field(FieldModule, NewNode(KindIdentifier, source.MustSpan(tok.start, colon))),
		Field(FieldMember, NewNode(KindIdentifier, source.MustSpan(colon+1, tok.end))),
	)
}

func (p *parser) identifierReference() *TreeNode {
	start := p.cur().start
	var inner *TreeNode
	switch {
	case p.cur().kind == tokQualified:
		inner = p.qualifiedIdentifier()
	case p.isIdentifier():
		inner = p.leaf(KindIdentifier)
	default:
		p.fail()
	}
	return p.node(KindIdentifierReference, start, Unnamed(inner))
}

// --- annotations ---

func (p *parser) annotation() *TreeNode {
	start := p.cur().start
	var inner *TreeNode
	if p.isPunct("@") {
		inner = p.annotationProperty()
	} else {
		inner = p.constraint()
	}
	return p.node(KindAnnotation, start, Unnamed(inner))
}

func (p *parser) annotationProperty() *TreeNode {
	start := p.cur().start
	p.expectPunct("@")
	name := p.identifierReference()
	p.expectPunct("=")
	value := p.value()
	return p.node(KindAnnotationProperty, start, Field(FieldName, name), Field(FieldValue, value))
}

func (p *parser) constraint() *TreeNode {
	start := p.cur().start
	p.expectKeyword("assert")
	name := p.identifier()
	var body *TreeNode
	switch {
	case p.isPunct("="):
		p.advance()
		bodyStart := p.cur().start
		if p.cur().kind != tokString {
			p.fail()
		}
		children := []Child{Field(FieldValue, p.leaf(KindQuotedString))}
		if p.cur().kind == tokLanguage {
			children = append(children, Field(FieldLanguage, p.leaf(KindLanguageTag)))
		}
		body = p.node(KindInformalConstraint, bodyStart, children...)
	case p.isKeyword("is"):
		p.advance()
		body = p.formalConstraint()
		p.expectKeyword("end")
	default:
		p.fail()
	}
	return p.node(KindConstraint, start, Field(FieldName, name), Field(FieldBody, body))
}

// --- values ---

func (p *parser) isSimpleValueStart() bool {
	switch p.cur().kind {
	case tokString, tokInteger, tokDecimal, tokDouble, tokIRI:
		return true
	}
	return p.isKeyword("true") || p.isKeyword("false")
}

func (p *parser) value() *TreeNode {
	start := p.cur().start
	var inner *TreeNode
	switch {
	case p.isPunct("["):
		inner = p.listOfValues()
	case p.isSimpleValueStart():
		inner = p.simpleValue()
	case p.isReference():
		inner = p.referenceOrConstructor()
	default:
		p.fail()
	}
	return p.node(KindValue, start, Unnamed(inner))
}

func (p *parser) referenceOrConstructor() *TreeNode {
	start := p.cur().start
	ref := p.identifierReference()
	if !p.isPunct("(") {
		return ref
	}
	p.advance()
	value := p.simpleValue()
	p.expectPunct(")")
	return p.node(KindValueConstructor, start, Field(FieldName, ref), Field(FieldValue, value))
}

func (p *parser) listOfValues() *TreeNode {
	start := p.cur().start
	p.expectPunct("[")
	var children []Child
	for !p.isPunct("]") {
		switch {
		case p.isSimpleValueStart():
			children = append(children, Unnamed(p.simpleValue()))
		case p.isReference():
			children = append(children, Unnamed(p.referenceOrConstructor()))
		default:
			p.fail()
		}
	}
	p.advance()
	return p.node(KindListOfValues, start, children...)
}

func (p *parser) simpleValue() *TreeNode {
	start := p.cur().start
	var inner *TreeNode
	switch tok := p.cur(); {
	case tok.kind == tokString:
		children := []Child{Field(FieldValue, p.leaf(KindQuotedString))}
		if p.cur().kind == tokLanguage {
			children = append(children, Field(FieldLanguage, p.leaf(KindLanguageTag)))
		}
		inner = p.node(KindString, start, children...)
	case tok.kind == tokInteger:
		inner = p.leaf(KindInteger)
	case tok.kind == tokDecimal:
		inner = p.leaf(KindDecimal)
	case tok.kind == tokDouble:
		inner = p.leaf(KindDouble)
	case tok.kind == tokIRI:
		inner = p.leaf(KindIRI)
	case p.isKeyword("true") || p.isKeyword("false"):
		inner = p.leaf(KindBoolean)
	default:
		p.fail()
	}
	return p.node(KindSimpleValue, start, Unnamed(inner))
}

func (p *parser) unsigned() *TreeNode {
	tok := p.cur()
	if tok.kind != tokInteger || tok.text[0] == '-' || tok.text[0] == '+' {
		p.fail()
	}
	return p.leaf(KindUnsigned)
}
