package parser

import (
	"errors"
	"fmt"

	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/token"
)

// errSyntax unwinds the current declaration after its diagnostic has been
// recorded.
var errSyntax = errors.New("parser: syntax error")

func (p *Parser) peek() token.Token {
	if p.pending.Empty() {
		p.pending.PushBack(p.lex.Next())
	}
	return p.pending.Front().(token.Token)
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pending.PopFront()
	}
	p.prev = tok
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of the given kind or reports what was found instead.
func (p *Parser) expect(kind token.Kind, what string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorExpected(what)
}

func (p *Parser) errorExpected(what string) error {
	tok := p.peek()
	if tok.Kind == token.EOF {
		// One report is enough once the input has run out.
		if n := len(p.diags); n == 0 || p.diags[n-1].Code != diag.UnexpectedEOF {
			p.report(tok, diag.UnexpectedEOF, "expected %s, found end of input", what)
		}
	} else {
		p.report(tok, diag.ExpectedToken, "expected %s, found %s", what, describe(tok))
	}
	return errSyntax
}

func (p *Parser) report(at token.Token, code diag.Code, format string, args ...any) {
	p.diags = append(p.diags, diag.New(diag.PhaseParse, code, at.Pos, format, args...))
}

func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", tok.Lexeme)
}

// statementStarts are the tokens synchronize stops in front of.
var statementStarts = map[token.Kind]bool{
	token.Struct:     true,
	token.Fn:         true,
	token.Let:        true,
	token.Const:      true,
	token.Print:      true,
	token.If:         true,
	token.While:      true,
	token.Loop:       true,
	token.For:        true,
	token.Return:     true,
	token.Break:      true,
	token.Continue:   true,
	token.RightBrace: true,
}

// synchronize discards tokens until just after a ';' or just before a token
// that starts a statement or closes a block. Braces opened while skipping are
// skipped as a unit. At least one token is consumed when the failed
// declaration began at the current token.
func (p *Parser) synchronize(from token.Position) {
	depth := 0
	skip := func() {
		switch p.advance().Kind {
		case token.LeftBrace:
			depth++
		case token.RightBrace:
			if depth > 0 {
				depth--
			}
		}
	}
	if p.peek().Pos.Offset == from.Offset {
		skip()
	}
	for !p.check(token.EOF) {
		if depth == 0 && (p.prev.Kind == token.Semicolon || statementStarts[p.peek().Kind]) {
			return
		}
		skip()
	}
}
