package ast

import "risl/interpreter-go/pkg/token"

// Builders construct position-less nodes; they keep hand-written trees in
// tests short.

var noPos token.Position

func Num(v float64) *NumberLiteral  { return NewNumberLiteral(v, noPos) }
func Str(v string) *StringLiteral   { return NewStringLiteral(v, noPos) }
func Bool(v bool) *BooleanLiteral   { return NewBooleanLiteral(v, noPos) }
func Nil() *NilLiteral              { return NewNilLiteral(noPos) }
func ID(name string) *Identifier    { return NewIdentifier(name, noPos) }
func Self() *SelfExpression         { return NewSelfExpression(noPos) }
func Group(e Expression) Expression { return NewGroupingExpression(e, noPos) }

func Unary(op string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(op, operand, noPos)
}

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right, noPos)
}

func And(left, right Expression) *LogicalExpression {
	return NewLogicalExpression(LogicalAnd, left, right, noPos)
}

func Or(left, right Expression) *LogicalExpression {
	return NewLogicalExpression(LogicalOr, left, right, noPos)
}

func Assign(name string, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(ID(name), value, noPos)
}

func Call(callee Expression, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, args, noPos)
}

func Get(object Expression, member string) *MemberAccessExpression {
	return NewMemberAccessExpression(object, ID(member), noPos)
}

func Set(object Expression, member string, value Expression) *MemberAssignmentExpression {
	return NewMemberAssignmentExpression(object, ID(member), value, noPos)
}

func Lambda(params []string, body ...Statement) *LambdaExpression {
	return NewLambdaExpression(ids(params), Blk(body...), noPos)
}

func Expr(e Expression) *ExpressionStatement { return NewExpressionStatement(e, noPos) }
func Print(e Expression) *PrintStatement     { return NewPrintStatement(e, noPos) }
func Blk(body ...Statement) *Block           { return NewBlock(body, noPos) }
func Ret(arg Expression) *ReturnStatement    { return NewReturnStatement(arg, noPos) }
func Brk() *BreakStatement                   { return NewBreakStatement(noPos) }
func Cont() *ContinueStatement               { return NewContinueStatement(noPos) }

func Let(name string, init Expression) *LetStatement {
	return NewLetStatement(ID(name), false, init, noPos)
}

func Const(name string, value Expression) *ConstStatement {
	return NewConstStatement(ID(name), value, noPos)
}

func If(cond Expression, then *Block, alt Statement) *IfStatement {
	return NewIfStatement(cond, then, alt, noPos)
}

func While(cond Expression, body ...Statement) *WhileLoop {
	return NewWhileLoop(cond, Blk(body...), noPos)
}

func Loop(body ...Statement) *LoopStatement {
	return NewLoopStatement(Blk(body...), noPos)
}

func For(variable string, start, end Expression, inclusive bool, body ...Statement) *ForLoop {
	return NewForLoop(ID(variable), start, end, inclusive, Blk(body...), noPos)
}

func Fn(name string, params []string, body ...Statement) *FunctionDefinition {
	return NewFunctionDefinition(ID(name), ids(params), Blk(body...), noPos)
}

func Struct(name string, methods ...*FunctionDefinition) *StructDefinition {
	return NewStructDefinition(ID(name), methods, noPos)
}

func Prog(body ...Statement) *Program { return NewProgram(body) }

func ids(names []string) []*Identifier {
	out := make([]*Identifier, len(names))
	for i, n := range names {
		out[i] = ID(n)
	}
	return out
}
