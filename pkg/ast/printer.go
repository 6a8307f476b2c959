package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Sexpr renders a node as a parenthesised prefix expression. It is used by
// tests and the CLI token/tree dumps, not by evaluation.
func Sexpr(node Node) string {
	var b strings.Builder
	writeSexpr(&b, node)
	return b.String()
}

func writeSexpr(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		b.WriteString("<nil>")
	case *NumberLiteral:
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *StringLiteral:
		b.WriteString(strconv.Quote(n.Value))
	case *BooleanLiteral:
		b.WriteString(strconv.FormatBool(n.Value))
	case *NilLiteral:
		b.WriteString("nil")
	case *Identifier:
		b.WriteString(n.Name)
	case *SelfExpression:
		b.WriteString("self")
	case *UnaryExpression:
		list(b, n.Operator, n.Operand)
	case *BinaryExpression:
		list(b, n.Operator, n.Left, n.Right)
	case *LogicalExpression:
		list(b, string(n.Operator), n.Left, n.Right)
	case *GroupingExpression:
		list(b, "group", n.Expression)
	case *AssignmentExpression:
		list(b, "= "+n.Target.Name, n.Value)
	case *FunctionCall:
		nodes := []Node{n.Callee}
		for _, arg := range n.Arguments {
			nodes = append(nodes, arg)
		}
		list(b, "call", nodes...)
	case *MemberAccessExpression:
		list(b, "."+n.Member.Name, n.Object)
	case *MemberAssignmentExpression:
		list(b, "=."+n.Member.Name, n.Object, n.Value)
	case *LambdaExpression:
		list(b, "lambda "+paramList(n.Params), n.Body)
	case *ExpressionStatement:
		list(b, "expr", n.Expression)
	case *PrintStatement:
		list(b, "print", n.Expression)
	case *LetStatement:
		head := "let " + n.Name.Name
		if n.Mutable {
			head = "let mut " + n.Name.Name
		}
		if n.Initializer == nil {
			list(b, head)
		} else {
			list(b, head, n.Initializer)
		}
	case *ConstStatement:
		list(b, "const "+n.Name.Name, n.Value)
	case *Block:
		list(b, "block", statements(n.Body)...)
	case *IfStatement:
		if n.Alternate == nil {
			list(b, "if", n.Condition, n.Consequent)
		} else {
			list(b, "if", n.Condition, n.Consequent, n.Alternate)
		}
	case *WhileLoop:
		list(b, "while", n.Condition, n.Body)
	case *LoopStatement:
		list(b, "loop", n.Body)
	case *ForLoop:
		op := ".."
		if n.Inclusive {
			op = "..="
		}
		list(b, "for "+n.Variable.Name+" "+op, n.Start, n.End, n.Body)
	case *FunctionDefinition:
		list(b, "fn "+n.ID.Name+" "+paramList(n.Params), n.Body)
	case *ReturnStatement:
		if n.Argument == nil {
			list(b, "return")
		} else {
			list(b, "return", n.Argument)
		}
	case *BreakStatement:
		b.WriteString("(break)")
	case *ContinueStatement:
		b.WriteString("(continue)")
	case *StructDefinition:
		nodes := make([]Node, 0, len(n.Methods))
		for _, m := range n.Methods {
			nodes = append(nodes, m)
		}
		list(b, "struct "+n.ID.Name, nodes...)
	case *Program:
		for i, stmt := range n.Body {
			if i > 0 {
				b.WriteByte('\n')
			}
			writeSexpr(b, stmt)
		}
	default:
		fmt.Fprintf(b, "<%s>", node.NodeType())
	}
}

func list(b *strings.Builder, head string, nodes ...Node) {
	b.WriteByte('(')
	b.WriteString(head)
	for _, n := range nodes {
		b.WriteByte(' ')
		writeSexpr(b, n)
	}
	b.WriteByte(')')
}

func statements(stmts []Statement) []Node {
	out := make([]Node, len(stmts))
	for i, s := range stmts {
		out[i] = s
	}
	return out
}

func paramList(params []*Identifier) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return "[" + strings.Join(names, " ") + "]"
}
