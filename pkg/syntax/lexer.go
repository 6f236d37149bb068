// SPDX-License-Identifier: MPL-2.0

package syntax

import (
	"unicode"
	"unicode/utf8"
)

const (
	tokEOF tokenKind = iota
	tokIdent
	tokQualified
	tokString
	tokLanguage
	tokInteger
	tokDecimal
	tokDouble
	tokIRI
	tokComment
	tokPunct
	tokInvalid
)

type (
	tokenKind int

	token struct {
		kind  tokenKind
		text  string
		start int
		end   int
	}

	lexer struct {
		src []byte
		pos int
	}
)

// punctuation, longest first so that "->" wins over "-".
var punctuation = []string{
	"..", "->", "<-", "/=", "<=", ">=",
	"{", "}", "[", "]", "(", ")", ",", ".", "=", "<", ">", "@", ":",
}

func tokenize(src []byte) []token {
	lx := &lexer{src: src}
	var toks []token
	for {
		tok := lx.next()
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks
		}
	}
}

func (lx *lexer) next() token {
	lx.skipSpace()
	start := lx.pos
	if lx.pos >= len(lx.src) {
		return token{kind: tokEOF, start: start, end: start}
	}

	r, size := utf8.DecodeRune(lx.src[lx.pos:])
	switch {
	case r == ';':
		for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
			lx.pos++
		}
		return lx.emit(tokComment, start)
	case r == '"':
		return lx.lexString(start)
	case r == '@' && start > 0 && lx.src[start-1] == '"' && lx.isLetterAt(start+1):
		lx.pos++
		for lx.pos < len(lx.src) && (isASCIIAlnum(lx.src[lx.pos]) || lx.src[lx.pos] == '-') {
			lx.pos++
		}
		return lx.emit(tokLanguage, start)
	case r == '<':
		if end, ok := lx.scanIRI(); ok {
			lx.pos = end
			return lx.emit(tokIRI, start)
		}
	case isDigit(r) || ((r == '-' || r == '+') && lx.isDigitAt(lx.pos+1)):
		return lx.lexNumber(start)
	case unicode.IsLetter(r):
		lx.pos += size
		lx.identTail()
		if lx.pos+1 < len(lx.src) && lx.src[lx.pos] == ':' && lx.isLetterAt(lx.pos+1) {
			lx.pos++
			lx.identTail()
			return lx.emit(tokQualified, start)
		}
		return lx.emit(tokIdent, start)
	}

	for _, p := range punctuation {
		if hasPrefixAt(lx.src, lx.pos, p) {
			lx.pos += len(p)
			return lx.emit(tokPunct, start)
		}
	}
	lx.pos += size
	return lx.emit(tokInvalid, start)
}

func (lx *lexer) emit(kind tokenKind, start int) token {
	return token{kind: kind, text: string(lx.src[start:lx.pos]), start: start, end: lx.pos}
}

func (lx *lexer) skipSpace() {
	for lx.pos < len(lx.src) {
		r, size := utf8.DecodeRune(lx.src[lx.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		lx.pos += size
	}
}

func (lx *lexer) identTail() {
	for lx.pos < len(lx.src) {
		r, size := utf8.DecodeRune(lx.src[lx.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return
		}
		lx.pos += size
	}
}

func (lx *lexer) lexString(start int) token {
	lx.pos++
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case '\\':
			lx.pos += 2
		case '"':
			lx.pos++
			return lx.emit(tokString, start)
		case '\n':
			return lx.emit(tokInvalid, start)
		default:
			lx.pos++
		}
	}
	lx.pos = min(lx.pos, len(lx.src))
	return lx.emit(tokInvalid, start)
}

func (lx *lexer) lexNumber(start int) token {
	kind := tokInteger
	if lx.src[lx.pos] == '-' || lx.src[lx.pos] == '+' {
		lx.pos++
	}
	lx.digits()
	if lx.pos+1 < len(lx.src) && lx.src[lx.pos] == '.' && isDigitByte(lx.src[lx.pos+1]) {
		kind = tokDecimal
		lx.pos++
		lx.digits()
	}
	if lx.pos < len(lx.src) && (lx.src[lx.pos] == 'e' || lx.src[lx.pos] == 'E') {
		save := lx.pos
		lx.pos++
		if lx.pos < len(lx.src) && (lx.src[lx.pos] == '-' || lx.src[lx.pos] == '+') {
			lx.pos++
		}
		if lx.isDigitAt(lx.pos) {
			kind = tokDouble
			lx.digits()
		} else {
			lx.pos = save
		}
	}
	return lx.emit(kind, start)
}

func (lx *lexer) digits() {
	for lx.pos < len(lx.src) && isDigitByte(lx.src[lx.pos]) {
		lx.pos++
	}
}

// scanIRI looks for <non-space-run> starting at the current '<'.
func (lx *lexer) scanIRI() (int, bool) {
	i := lx.pos + 1
	if i >= len(lx.src) || !lx.isLetterAt(i) {
		return 0, false
	}
	for i < len(lx.src) {
		switch c := lx.src[i]; {
		case c == '>':
			return i + 1, true
		case c <= ' ' || c == '<' || c == '"':
			return 0, false
		}
		i++
	}
	return 0, false
}

func (lx *lexer) isDigitAt(i int) bool {
	return i < len(lx.src) && isDigitByte(lx.src[i])
}

func (lx *lexer) isLetterAt(i int) bool {
	if i >= len(lx.src) {
		return false
	}
	r, _ := utf8.DecodeRune(lx.src[i:])
	return unicode.IsLetter(r)
}

func hasPrefixAt(src []byte, pos int, p string) bool {
	return len(src)-pos >= len(p) && string(src[pos:pos+len(p)]) == p
}

func isDigit(r rune) bool      { return r >= '0' && r <= '9' }
func isDigitByte(b byte) bool  { return b >= '0' && b <= '9' }
func isASCIIAlnum(b byte) bool { return isDigitByte(b) || (b|0x20 >= 'a' && b|0x20 <= 'z') }
