package ast

import "risl/interpreter-go/pkg/token"

type NodeType string

const (
	NodeNumberLiteral       NodeType = "NumberLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeNilLiteral          NodeType = "NilLiteral"
	NodeIdentifier          NodeType = "Identifier"
	NodeSelfExpression      NodeType = "SelfExpression"
	NodeUnaryExpression     NodeType = "UnaryExpression"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeLogicalExpression   NodeType = "LogicalExpression"
	NodeGroupingExpression  NodeType = "GroupingExpression"
	NodeAssignmentExpr      NodeType = "AssignmentExpression"
	NodeFunctionCall        NodeType = "FunctionCall"
	NodeMemberAccess        NodeType = "MemberAccessExpression"
	NodeMemberAssignment    NodeType = "MemberAssignmentExpression"
	NodeLambdaExpression    NodeType = "LambdaExpression"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodePrintStatement      NodeType = "PrintStatement"
	NodeLetStatement        NodeType = "LetStatement"
	NodeConstStatement      NodeType = "ConstStatement"
	NodeBlock               NodeType = "Block"
	NodeIfStatement         NodeType = "IfStatement"
	NodeWhileLoop           NodeType = "WhileLoop"
	NodeLoopStatement       NodeType = "LoopStatement"
	NodeForLoop             NodeType = "ForLoop"
	NodeFunctionDefinition  NodeType = "FunctionDefinition"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeBreakStatement      NodeType = "BreakStatement"
	NodeContinueStatement   NodeType = "ContinueStatement"
	NodeStructDefinition    NodeType = "StructDefinition"
	NodeProgram             NodeType = "Program"
)

// Node is implemented by every syntax tree node. Nodes are always handled
// through pointers, so a node's address is its identity.
type Node interface {
	NodeType() NodeType
	Pos() token.Position
	isNode()
}

type nodeImpl struct {
	Type NodeType       `json:"type"`
	Span token.Position `json:"span"`
}

func newNodeImpl(kind NodeType, pos token.Position) nodeImpl {
	return nodeImpl{Type: kind, Span: pos}
}

func (n nodeImpl) NodeType() NodeType  { return n.Type }
func (n nodeImpl) Pos() token.Position { return n.Span }
func (nodeImpl) isNode()               {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Literals

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64, pos token.Position) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral, pos), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string, pos token.Position) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral, pos), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool, pos token.Position) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral, pos), Value: value}
}

type NilLiteral struct {
	nodeImpl
	expressionMarker
}

func NewNilLiteral(pos token.Position) *NilLiteral {
	return &NilLiteral{nodeImpl: newNodeImpl(NodeNilLiteral, pos)}
}

// Expressions

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string, pos token.Position) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier, pos), Name: name}
}

// SelfExpression is the implicit receiver inside a struct method.
type SelfExpression struct {
	nodeImpl
	expressionMarker
}

func NewSelfExpression(pos token.Position) *SelfExpression {
	return &SelfExpression{nodeImpl: newNodeImpl(NodeSelfExpression, pos)}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewUnaryExpression(operator string, operand Expression, pos token.Position) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression, pos), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression, pos token.Position) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression, pos), Operator: operator, Left: left, Right: right}
}

// LogicalOperator is either "and" or "or"; the symbolic spellings are normalised by the parser.
type LogicalOperator string

const (
	LogicalAnd LogicalOperator = "and"
	LogicalOr  LogicalOperator = "or"
)

type LogicalExpression struct {
	nodeImpl
	expressionMarker

	Operator LogicalOperator `json:"operator"`
	Left     Expression      `json:"left"`
	Right    Expression      `json:"right"`
}

func NewLogicalExpression(operator LogicalOperator, left, right Expression, pos token.Position) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression, pos), Operator: operator, Left: left, Right: right}
}

type GroupingExpression struct {
	nodeImpl
	expressionMarker

	Expression Expression `json:"expression"`
}

func NewGroupingExpression(expr Expression, pos token.Position) *GroupingExpression {
	return &GroupingExpression{nodeImpl: newNodeImpl(NodeGroupingExpression, pos), Expression: expr}
}

type AssignmentExpression struct {
	nodeImpl
	expressionMarker

	Target *Identifier `json:"target"`
	Value  Expression  `json:"value"`
}

func NewAssignmentExpression(target *Identifier, value Expression, pos token.Position) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpr, pos), Target: target, Value: value}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee Expression, args []Expression, pos token.Position) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall, pos), Callee: callee, Arguments: args}
}

type MemberAccessExpression struct {
	nodeImpl
	expressionMarker

	Object Expression  `json:"object"`
	Member *Identifier `json:"member"`
}

func NewMemberAccessExpression(object Expression, member *Identifier, pos token.Position) *MemberAccessExpression {
	return &MemberAccessExpression{nodeImpl: newNodeImpl(NodeMemberAccess, pos), Object: object, Member: member}
}

type MemberAssignmentExpression struct {
	nodeImpl
	expressionMarker

	Object Expression  `json:"object"`
	Member *Identifier `json:"member"`
	Value  Expression  `json:"value"`
}

func NewMemberAssignmentExpression(object Expression, member *Identifier, value Expression, pos token.Position) *MemberAssignmentExpression {
	return &MemberAssignmentExpression{nodeImpl: newNodeImpl(NodeMemberAssignment, pos), Object: object, Member: member, Value: value}
}

// LambdaExpression is an anonymous function. An expression body is stored as
// a block holding a single return statement.
type LambdaExpression struct {
	nodeImpl
	expressionMarker

	Params []*Identifier `json:"params"`
	Body   *Block        `json:"body"`
}

func NewLambdaExpression(params []*Identifier, body *Block, pos token.Position) *LambdaExpression {
	return &LambdaExpression{nodeImpl: newNodeImpl(NodeLambdaExpression, pos), Params: params, Body: body}
}

// Statements

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression, pos token.Position) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement, pos), Expression: expr}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewPrintStatement(expr Expression, pos token.Position) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement, pos), Expression: expr}
}

type Block struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlock(body []Statement, pos token.Position) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock, pos), Body: body}
}

// IfStatement's Alternate is nil, a *Block, or an *IfStatement for `else if`.
type IfStatement struct {
	nodeImpl
	statementMarker

	Condition  Expression `json:"condition"`
	Consequent *Block     `json:"consequent"`
	Alternate  Statement  `json:"alternate,omitempty"`
}

func NewIfStatement(cond Expression, consequent *Block, alternate Statement, pos token.Position) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement, pos), Condition: cond, Consequent: consequent, Alternate: alternate}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      *Block     `json:"body"`
}

func NewWhileLoop(cond Expression, body *Block, pos token.Position) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop, pos), Condition: cond, Body: body}
}

type LoopStatement struct {
	nodeImpl
	statementMarker

	Body *Block `json:"body"`
}

func NewLoopStatement(body *Block, pos token.Position) *LoopStatement {
	return &LoopStatement{nodeImpl: newNodeImpl(NodeLoopStatement, pos), Body: body}
}

// ForLoop iterates Variable over the numeric range Start..End (or Start..=End).
type ForLoop struct {
	nodeImpl
	statementMarker

	Variable  *Identifier `json:"variable"`
	Start     Expression  `json:"start"`
	End       Expression  `json:"end"`
	Inclusive bool        `json:"inclusive"`
	Body      *Block      `json:"body"`
}

func NewForLoop(variable *Identifier, start, end Expression, inclusive bool, body *Block, pos token.Position) *ForLoop {
	return &ForLoop{nodeImpl: newNodeImpl(NodeForLoop, pos), Variable: variable, Start: start, End: end, Inclusive: inclusive, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(arg Expression, pos token.Position) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement, pos), Argument: arg}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement(pos token.Position) *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement, pos)}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker
}

func NewContinueStatement(pos token.Position) *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement, pos)}
}

type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram, token.Position{Line: 1, Column: 1}), Body: body}
}
