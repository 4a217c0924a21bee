package vartype

import "github.com/replaycore/s2demo/errs"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokLT
	tokGT
	tokLBracket
	tokRBracket
	tokStar
)

type token struct {
	kind tokenKind
	text string
}

type lexer struct {
	src []byte
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: []byte(src)}
}

func isIdentStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '_'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF}, nil
	}

	c := l.src[l.pos]
	switch {
	case c == '<':
		l.pos++
		return token{kind: tokLT, text: "<"}, nil
	case c == '>':
		l.pos++
		return token{kind: tokGT, text: ">"}, nil
	case c == '[':
		l.pos++
		return token{kind: tokLBracket, text: "["}, nil
	case c == ']':
		l.pos++
		return token{kind: tokRBracket, text: "]"}, nil
	case c == '*':
		l.pos++
		return token{kind: tokStar, text: "*"}, nil
	case isIdentStart(c):
		start := l.pos
		l.pos++
		for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
			l.pos++
		}
		return token{kind: tokIdent, text: string(l.src[start:l.pos])}, nil
	case isDigit(c):
		start := l.pos
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		return token{kind: tokNumber, text: string(l.src[start:l.pos])}, nil
	default:
		return token{}, errs.ErrUnexpectedToken
	}
}
