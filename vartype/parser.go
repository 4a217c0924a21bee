package vartype

import "github.com/replaycore/s2demo/errs"

// defaultNamedArrayLengths holds the named constants the parser recognizes
// in an array-length position, e.g. "T[MAX_ABILITY_DRAFT_ABILITIES]". This
// is intentionally small; unrecognized identifiers fail with
// errs.ErrUnknownArrayLenIdent rather than being guessed at.
var defaultNamedArrayLengths = map[string]int{
	"MAX_ABILITY_DRAFT_ABILITIES": 48,
}

// Option configures a Parser.
type Option func(*Parser)

// WithNamedArrayLength registers an additional named array-length constant,
// letting callers extend the table as new game builds introduce new names
// without touching this package.
func WithNamedArrayLength(name string, length int) Option {
	return func(p *Parser) {
		p.namedLengths[name] = length
	}
}

// Parser parses var_type strings into Expr ASTs.
type Parser struct {
	namedLengths map[string]int
}

// NewParser creates a Parser seeded with the built-in named array lengths.
func NewParser(opts ...Option) *Parser {
	p := &Parser{namedLengths: make(map[string]int, len(defaultNamedArrayLengths))}
	for k, v := range defaultNamedArrayLengths {
		p.namedLengths[k] = v
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// state wraps a lexer with a single token of lookahead, so the recursive
// descent below can peek without re-deriving error-propagation plumbing at
// every call site.
type state struct {
	lex *lexer
	cur token
	err error
}

func newState(src string) *state {
	s := &state{lex: newLexer(src)}
	s.advance()
	return s
}

func (s *state) advance() {
	if s.err != nil {
		return
	}
	tok, err := s.lex.next()
	if err != nil {
		s.err = err
		return
	}
	s.cur = tok
}

// Parse parses a single var_type expression.
func (p *Parser) Parse(src string) (*Expr, error) {
	s := newState(src)
	if s.err != nil {
		return nil, s.err
	}

	expr := p.parseExpr(s)
	if s.err != nil {
		return nil, s.err
	}
	if s.cur.kind != tokEOF {
		return nil, errs.ErrUnexpectedToken
	}
	return expr, nil
}

// parseExpr implements the grammar:
//
//	Expr := Ident
//	      | Ident '<' Expr '>'
//	      | Expr '[' (Ident | Num) ']'
//	      | Expr '*'
//
// The array and pointer postfixes are left-recursive in the grammar but are
// parsed with an iterative suffix loop, the standard recursive-descent
// rendition of "attaches to the expression on the left".
func (p *Parser) parseExpr(s *state) *Expr {
	if s.err != nil {
		return nil
	}
	if s.cur.kind != tokIdent {
		s.err = errs.ErrUnexpectedToken
		return nil
	}

	name := s.cur.text
	expr := &Expr{Kind: KindIdent, Ident: name}
	s.advance()

	if s.err != nil {
		return nil
	}

	if s.cur.kind == tokLT {
		s.advance()
		inner := p.parseExpr(s)
		if s.err != nil {
			return nil
		}
		if s.cur.kind != tokGT {
			s.err = errs.ErrUnexpectedToken
			return nil
		}
		expr = &Expr{Kind: KindTemplate, Ident: name, Inner: inner}
		s.advance()
	}

	for s.err == nil {
		switch s.cur.kind {
		case tokLBracket:
			s.advance()
			if s.err != nil {
				return nil
			}
			length := p.resolveArrayLen(s)
			if s.err != nil {
				return nil
			}
			if s.cur.kind != tokRBracket {
				s.err = errs.ErrUnexpectedToken
				return nil
			}
			expr = &Expr{Kind: KindArray, Inner: expr, ArrayLen: length}
			s.advance()
		case tokStar:
			expr = &Expr{Kind: KindPointer, Inner: expr}
			s.advance()
		default:
			return expr
		}
	}

	return nil
}

func (p *Parser) resolveArrayLen(s *state) int {
	tok := s.cur
	switch tok.kind {
	case tokNumber:
		s.advance()
		return atoi(tok.text)
	case tokIdent:
		s.advance()
		if n, ok := p.namedLengths[tok.text]; ok {
			return n
		}
		s.err = errs.ErrUnknownArrayLenIdent
		return 0
	default:
		s.err = errs.ErrUnexpectedToken
		return 0
	}
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
