package parser

import (
	"risl/interpreter-go/pkg/ast"
	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/token"
)

// declarationOrSync parses one declaration. On a syntax error it resynchronizes
// and reports ok=false; the diagnostic has already been recorded.
func (p *Parser) declarationOrSync() (ast.Statement, bool) {
	start := p.peek().Pos
	stmt, err := p.declaration()
	if err != nil {
		p.synchronize(start)
		return nil, false
	}
	return stmt, true
}

func (p *Parser) declaration() (ast.Statement, error) {
	switch p.peek().Kind {
	case token.Struct:
		return p.structDeclaration()
	case token.Fn:
		p.advance()
		return p.function("function")
	case token.Let:
		return p.letDeclaration()
	case token.Const:
		return p.constDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) structDeclaration() (ast.Statement, error) {
	keyword := p.advance()
	name, err := p.identifier("struct name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LeftBrace, "'{' before struct body"); err != nil {
		return nil, err
	}
	var methods []*ast.FunctionDefinition
	for !p.check(token.RightBrace) && !p.check(token.EOF) {
		if _, err := p.expect(token.Fn, "'fn' in struct body"); err != nil {
			return nil, err
		}
		method, err := p.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if _, err := p.expect(token.RightBrace, "'}' after struct body"); err != nil {
		return nil, err
	}
	return ast.NewStructDefinition(name, methods, keyword.Pos), nil
}

// function parses a named function after its 'fn' keyword.
func (p *Parser) function(kind string) (*ast.FunctionDefinition, error) {
	fnTok := p.prev
	name, err := p.identifier(kind + " name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LeftParen, "'(' after "+kind+" name"); err != nil {
		return nil, err
	}
	params, err := p.parameters(token.RightParen, "')' after parameters")
	if err != nil {
		return nil, err
	}
	body, err := p.block("'{' before " + kind + " body")
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDefinition(name, params, body, fnTok.Pos), nil
}

// parameters parses a comma separated identifier list up to and including the
// closing token. A trailing comma is allowed.
func (p *Parser) parameters(closing token.Kind, what string) ([]*ast.Identifier, error) {
	var params []*ast.Identifier
	for !p.check(closing) {
		if len(params) == MaxArguments {
			p.report(p.peek(), diag.TooManyArguments, "cannot have more than %d parameters", MaxArguments)
		}
		param, err := p.identifier("parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(closing, what); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) letDeclaration() (ast.Statement, error) {
	keyword := p.advance()
	mutable := p.match(token.Mut)
	name, err := p.identifier("variable name")
	if err != nil {
		return nil, err
	}
	var init ast.Expression
	if p.match(token.Equal) {
		if init, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semicolon, "';' after variable declaration"); err != nil {
		return nil, err
	}
	return ast.NewLetStatement(name, mutable, init, keyword.Pos), nil
}

func (p *Parser) constDeclaration() (ast.Statement, error) {
	keyword := p.advance()
	name, err := p.identifier("constant name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Equal, "'=' after constant name"); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon, "';' after constant declaration"); err != nil {
		return nil, err
	}
	return ast.NewConstStatement(name, value, keyword.Pos), nil
}

func (p *Parser) identifier(what string) (*ast.Identifier, error) {
	if tok := p.peek(); tok.Kind.IsReserved() {
		p.advance()
		p.report(tok, diag.ReservedKeyword, "'%s' is a reserved keyword", tok.Lexeme)
		return nil, errSyntax
	}
	tok, err := p.expect(token.Identifier, what)
	if err != nil {
		return nil, err
	}
	return ast.NewIdentifier(tok.Lexeme, tok.Pos), nil
}
