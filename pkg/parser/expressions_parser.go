package parser

import (
	"risl/interpreter-go/pkg/ast"
	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/token"
)

// binaryLevels lists the left-associative binary operators from loosest to
// tightest binding.
var binaryLevels = [][]token.Kind{
	{token.EqualEqual, token.BangEqual},
	{token.Less, token.LessEqual, token.Greater, token.GreaterEqual},
	{token.Plus, token.Minus},
	{token.Star, token.Slash, token.Percent},
}

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.logicalOr()
	if err != nil {
		return nil, err
	}
	if !p.match(token.Equal) {
		return expr, nil
	}
	equals := p.prev
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	switch target := expr.(type) {
	case *ast.Identifier:
		return ast.NewAssignmentExpression(target, value, equals.Pos), nil
	case *ast.MemberAccessExpression:
		return ast.NewMemberAssignmentExpression(target.Object, target.Member, value, equals.Pos), nil
	}
	// Reported without unwinding: the parser is not confused about where it is.
	p.report(equals, diag.InvalidAssignmentTarget, "invalid assignment target")
	return expr, nil
}

func (p *Parser) logicalOr() (ast.Expression, error) {
	left, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}
	for p.match(token.Or, token.PipePipe) {
		op := p.prev
		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewLogicalExpression(ast.LogicalOr, left, right, op.Pos)
	}
	return left, nil
}

func (p *Parser) logicalAnd() (ast.Expression, error) {
	left, err := p.binary(0)
	if err != nil {
		return nil, err
	}
	for p.match(token.And, token.AmpAmp) {
		op := p.prev
		right, err := p.binary(0)
		if err != nil {
			return nil, err
		}
		left = ast.NewLogicalExpression(ast.LogicalAnd, left, right, op.Pos)
	}
	return left, nil
}

func (p *Parser) binary(level int) (ast.Expression, error) {
	if level == len(binaryLevels) {
		return p.unary()
	}
	left, err := p.binary(level + 1)
	if err != nil {
		return nil, err
	}
	for p.match(binaryLevels[level]...) {
		op := p.prev
		right, err := p.binary(level + 1)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression(op.Lexeme, left, right, op.Pos)
	}
	return left, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(token.Bang, token.Minus) {
		op := p.prev
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(op.Lexeme, operand, op.Pos), nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(token.LeftParen):
			open := p.prev
			args, err := p.arguments()
			if err != nil {
				return nil, err
			}
			expr = ast.NewFunctionCall(expr, args, open.Pos)
		case p.match(token.Dot):
			dot := p.prev
			member, err := p.identifier("member name after '.'")
			if err != nil {
				return nil, err
			}
			expr = ast.NewMemberAccessExpression(expr, member, dot.Pos)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) arguments() ([]ast.Expression, error) {
	var args []ast.Expression
	for !p.check(token.RightParen) {
		if len(args) == MaxArguments {
			p.report(p.peek(), diag.TooManyArguments, "cannot have more than %d arguments", MaxArguments)
		}
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(token.Comma) {
			break
		}
	}
	if _, err := p.expect(token.RightParen, "')' after arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.Number:
		p.advance()
		value, _ := tok.Literal.(float64)
		return ast.NewNumberLiteral(value, tok.Pos), nil
	case token.String:
		p.advance()
		value, _ := tok.Literal.(string)
		return ast.NewStringLiteral(value, tok.Pos), nil
	case token.True, token.False:
		p.advance()
		return ast.NewBooleanLiteral(tok.Kind == token.True, tok.Pos), nil
	case token.Nil:
		p.advance()
		return ast.NewNilLiteral(tok.Pos), nil
	case token.Identifier:
		p.advance()
		return ast.NewIdentifier(tok.Lexeme, tok.Pos), nil
	case token.SelfValue:
		p.advance()
		return ast.NewSelfExpression(tok.Pos), nil
	case token.LeftParen:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightParen, "')' after expression"); err != nil {
			return nil, err
		}
		return ast.NewGroupingExpression(inner, tok.Pos), nil
	case token.Pipe:
		p.advance()
		params, err := p.parameters(token.Pipe, "'|' after lambda parameters")
		if err != nil {
			return nil, err
		}
		return p.lambdaBody(params, tok)
	case token.PipePipe:
		p.advance()
		return p.lambdaBody(nil, tok)
	}
	if tok.Kind.IsReserved() {
		p.advance()
		p.report(tok, diag.ReservedKeyword, "'%s' is a reserved keyword", tok.Lexeme)
		return nil, errSyntax
	}
	return nil, p.errorExpected("expression")
}

// lambdaBody parses either a block or a single expression. An expression body
// becomes a block that returns it.
func (p *Parser) lambdaBody(params []*ast.Identifier, open token.Token) (ast.Expression, error) {
	if p.check(token.LeftBrace) {
		body, err := p.block("lambda body")
		if err != nil {
			return nil, err
		}
		return ast.NewLambdaExpression(params, body, open.Pos), nil
	}
	start := p.peek()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	body := ast.NewBlock([]ast.Statement{ast.NewReturnStatement(value, start.Pos)}, start.Pos)
	return ast.NewLambdaExpression(params, body, open.Pos), nil
}
