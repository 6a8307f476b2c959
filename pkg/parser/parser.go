// Package parser builds risl syntax trees from source text.
//
// The parser is a hand-written recursive descent parser over the token stream
// produced by package lexer. Binary operators are parsed by precedence
// climbing over binaryLevels. Errors are collected rather than returned one at
// a time: after a syntax error the parser discards tokens until a likely
// statement boundary and keeps going, so a single run reports every
// independent problem.
package parser

import (
	"github.com/edwingeng/deque"

	"risl/interpreter-go/pkg/ast"
	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/lexer"
	"risl/interpreter-go/pkg/token"
)

// MaxArguments bounds both call arguments and function parameters.
const MaxArguments = 255

// Parser consumes tokens from a lexer and produces a Program.
type Parser struct {
	lex     *lexer.Lexer
	pending deque.Deque // tokens pulled from lex but not yet consumed
	prev    token.Token
	diags   diag.List
}

// New returns a parser reading from lex.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex, pending: deque.NewDeque()}
}

// ParseProgram lexes and parses source in one step.
func ParseProgram(source string) (*ast.Program, diag.List) {
	return New(lexer.New(source)).Parse()
}

// Parse reads declarations until end of input. When any lexical or syntax
// error was reported the program is nil and the diagnostics list lexical
// errors first, then syntax errors, each in source order.
func (p *Parser) Parse() (*ast.Program, diag.List) {
	var body []ast.Statement
	for !p.check(token.EOF) {
		if stmt, ok := p.declarationOrSync(); ok {
			body = append(body, stmt)
		}
	}

	var diags diag.List
	diags = append(diags, p.lex.Diagnostics()...)
	diags = append(diags, p.diags...)
	if len(diags) > 0 {
		return nil, diags
	}
	return ast.NewProgram(body), nil
}

// IsIncomplete reports whether diags describe input that simply stopped too
// early, as opposed to input that is wrong. Interactive callers use it to ask
// for another line instead of printing errors.
func IsIncomplete(diags diag.List) bool {
	if len(diags) == 0 {
		return false
	}
	for _, d := range diags {
		switch d.Code {
		case diag.UnexpectedEOF, diag.UnterminatedString, diag.UnterminatedComment:
		default:
			return false
		}
	}
	return true
}
