package parser

import (
	"risl/interpreter-go/pkg/ast"
	"risl/interpreter-go/pkg/token"
)

func (p *Parser) statement() (ast.Statement, error) {
	switch p.peek().Kind {
	case token.Print:
		return p.printStatement()
	case token.If:
		return p.ifStatement()
	case token.While:
		return p.whileStatement()
	case token.Loop:
		return p.loopStatement()
	case token.For:
		return p.forStatement()
	case token.Return:
		return p.returnStatement()
	case token.Break:
		tok := p.advance()
		if err := p.terminator("'break'"); err != nil {
			return nil, err
		}
		return ast.NewBreakStatement(tok.Pos), nil
	case token.Continue:
		tok := p.advance()
		if err := p.terminator("'continue'"); err != nil {
			return nil, err
		}
		return ast.NewContinueStatement(tok.Pos), nil
	case token.LeftBrace:
		return p.block("'{'")
	default:
		return p.expressionStatement()
	}
}

// terminator expects the ';' that ends a simple statement.
func (p *Parser) terminator(after string) error {
	_, err := p.expect(token.Semicolon, "';' after "+after)
	return err
}

// softTerminator is terminator, except that the ';' may be left off when the
// statement is the last thing in the input.
func (p *Parser) softTerminator(after string) error {
	if p.check(token.EOF) {
		return nil
	}
	return p.terminator(after)
}

func (p *Parser) printStatement() (ast.Statement, error) {
	keyword := p.advance()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.softTerminator("value"); err != nil {
		return nil, err
	}
	return ast.NewPrintStatement(value, keyword.Pos), nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	start := p.peek()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.softTerminator("expression"); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(expr, start.Pos), nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	keyword := p.advance()
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	then, err := p.block("'{' after if condition")
	if err != nil {
		return nil, err
	}
	var alt ast.Statement
	if p.match(token.Else) {
		if p.check(token.If) {
			alt, err = p.ifStatement()
		} else {
			alt, err = p.block("'{' or 'if' after 'else'")
		}
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIfStatement(cond, then, alt, keyword.Pos), nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	keyword := p.advance()
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block("'{' after while condition")
	if err != nil {
		return nil, err
	}
	return ast.NewWhileLoop(cond, body, keyword.Pos), nil
}

func (p *Parser) loopStatement() (ast.Statement, error) {
	keyword := p.advance()
	body, err := p.block("'{' after 'loop'")
	if err != nil {
		return nil, err
	}
	return ast.NewLoopStatement(body, keyword.Pos), nil
}

func (p *Parser) forStatement() (ast.Statement, error) {
	keyword := p.advance()
	variable, err := p.identifier("loop variable")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.In, "'in' after loop variable"); err != nil {
		return nil, err
	}
	start, err := p.expression()
	if err != nil {
		return nil, err
	}
	var inclusive bool
	switch {
	case p.match(token.DotDot):
	case p.match(token.DotDotEqual):
		inclusive = true
	default:
		return nil, p.errorExpected("'..' or '..=' in range")
	}
	end, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block("'{' after for range")
	if err != nil {
		return nil, err
	}
	return ast.NewForLoop(variable, start, end, inclusive, body, keyword.Pos), nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.advance()
	var value ast.Expression
	if !p.check(token.Semicolon) {
		var err error
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if err := p.terminator("return value"); err != nil {
		return nil, err
	}
	return ast.NewReturnStatement(value, keyword.Pos), nil
}

// block parses '{' declaration* '}'. Errors inside the block are recovered
// from locally so that the rest of the block is still checked.
func (p *Parser) block(what string) (*ast.Block, error) {
	open, err := p.expect(token.LeftBrace, what)
	if err != nil {
		return nil, err
	}
	var body []ast.Statement
	for !p.check(token.RightBrace) && !p.check(token.EOF) {
		if stmt, ok := p.declarationOrSync(); ok {
			body = append(body, stmt)
		}
	}
	if _, err := p.expect(token.RightBrace, "'}' after block"); err != nil {
		return nil, err
	}
	return ast.NewBlock(body, open.Pos), nil
}
