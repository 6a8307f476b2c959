package interpreter

import (
	"math"

	"risl/interpreter-go/pkg/ast"
	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, *RuntimeError) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NilLiteral:
		return runtime.Nil, nil
	case *ast.Identifier:
		return i.lookupVariable(n, n.Name, env)
	case *ast.SelfExpression:
		return i.lookupVariable(n, "self", env)
	case *ast.GroupingExpression:
		return i.evaluateExpression(n.Expression, env)
	case *ast.AssignmentExpression:
		val, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return nil, err
		}
		if err := i.assignVariable(n, n.Target.Name, val, env); err != nil {
			return nil, err
		}
		return val, nil
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.LogicalExpression:
		return i.evaluateLogicalExpression(n, env)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n, env)
	case *ast.MemberAccessExpression:
		return i.evaluateMemberAccess(n, env)
	case *ast.MemberAssignmentExpression:
		return i.evaluateMemberAssignment(n, env)
	case *ast.LambdaExpression:
		return &runtime.FunctionValue{Declaration: n, Closure: env}, nil
	default:
		return nil, i.internalError(node.Pos(), "unsupported expression type: %s", node.NodeType())
	}
}

// lookupVariable reads a resolved local from exactly its recorded scope, or a
// global from the global environment.
func (i *Interpreter) lookupVariable(node ast.Expression, name string, env *runtime.Environment) (runtime.Value, *RuntimeError) {
	if depth, ok := i.bindings.Depth(node); ok {
		if val, ok := env.GetAt(depth, name); ok {
			return val, nil
		}
		return nil, i.internalError(node.Pos(), "resolved variable '%s' missing at depth %d", name, depth)
	}
	if val, ok := i.global.GetAt(0, name); ok {
		return val, nil
	}
	return nil, runtimeErrorf(diag.UndefinedVariable, node.Pos(), "undefined variable '%s'", name)
}

func (i *Interpreter) assignVariable(node *ast.AssignmentExpression, name string, val runtime.Value, env *runtime.Environment) *RuntimeError {
	if depth, ok := i.bindings.Depth(node); ok {
		if env.AssignAt(depth, name, val) {
			return nil
		}
		return i.internalError(node.Pos(), "resolved variable '%s' missing at depth %d", name, depth)
	}
	if i.global.AssignAt(0, name, val) {
		return nil
	}
	return runtimeErrorf(diag.UndefinedVariable, node.Pos(), "undefined variable '%s'", name)
}

func (i *Interpreter) evaluateUnaryExpression(n *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, *RuntimeError) {
	operand, err := i.evaluateExpression(n.Operand, env)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "-":
		num, ok := operand.(runtime.NumberValue)
		if !ok {
			return nil, runtimeErrorf(diag.TypeMismatch, n.Pos(), "operand of '-' must be a number, got %s", operand.Kind())
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	case "!":
		return runtime.BoolValue{Val: !isTruthy(operand)}, nil
	default:
		return nil, i.internalError(n.Pos(), "unsupported unary operator %s", n.Operator)
	}
}

func (i *Interpreter) evaluateLogicalExpression(n *ast.LogicalExpression, env *runtime.Environment) (runtime.Value, *RuntimeError) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case ast.LogicalOr:
		if isTruthy(left) {
			return left, nil
		}
	case ast.LogicalAnd:
		if !isTruthy(left) {
			return left, nil
		}
	}
	return i.evaluateExpression(n.Right, env)
}

func (i *Interpreter) evaluateBinaryExpression(n *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, *RuntimeError) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Operator {
	case "==":
		return runtime.BoolValue{Val: valuesEqual(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !valuesEqual(left, right)}, nil
	case "+":
		if ls, ok := left.(runtime.StringValue); ok {
			if rs, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: ls.Val + rs.Val}, nil
			}
		}
		l, r, ok := numberOperands(left, right)
		if !ok {
			return nil, runtimeErrorf(diag.TypeMismatch, n.Pos(), "operands of '+' must be two numbers or two strings, got %s and %s", left.Kind(), right.Kind())
		}
		return runtime.NumberValue{Val: l + r}, nil
	}

	l, r, ok := numberOperands(left, right)
	if !ok {
		return nil, runtimeErrorf(diag.TypeMismatch, n.Pos(), "operands of '%s' must be numbers, got %s and %s", n.Operator, left.Kind(), right.Kind())
	}
	switch n.Operator {
	case "-":
		return runtime.NumberValue{Val: l - r}, nil
	case "*":
		return runtime.NumberValue{Val: l * r}, nil
	case "/":
		if r == 0 {
			return nil, runtimeErrorf(diag.DivisionByZero, n.Pos(), "division by zero")
		}
		return runtime.NumberValue{Val: l / r}, nil
	case "%":
		if r == 0 {
			return nil, runtimeErrorf(diag.DivisionByZero, n.Pos(), "division by zero")
		}
		return runtime.NumberValue{Val: math.Mod(l, r)}, nil
	case "<":
		return runtime.BoolValue{Val: l < r}, nil
	case "<=":
		return runtime.BoolValue{Val: l <= r}, nil
	case ">":
		return runtime.BoolValue{Val: l > r}, nil
	case ">=":
		return runtime.BoolValue{Val: l >= r}, nil
	default:
		return nil, i.internalError(n.Pos(), "unsupported binary operator %s", n.Operator)
	}
}

func numberOperands(left, right runtime.Value) (float64, float64, bool) {
	l, ok := left.(runtime.NumberValue)
	if !ok {
		return 0, 0, false
	}
	r, ok := right.(runtime.NumberValue)
	if !ok {
		return 0, 0, false
	}
	return l.Val, r.Val, true
}

// isTruthy treats nil and false as false and everything else as true.
func isTruthy(val runtime.Value) bool {
	switch v := val.(type) {
	case nil, runtime.NilValue:
		return false
	case runtime.BoolValue:
		return v.Val
	default:
		return true
	}
}

// valuesEqual never fails: values of different kinds are unequal, scalars
// compare by value and everything else by identity.
func valuesEqual(left, right runtime.Value) bool {
	if left == nil || right == nil {
		return left == right
	}
	if left.Kind() != right.Kind() {
		return false
	}
	switch l := left.(type) {
	case runtime.NilValue:
		return true
	case runtime.BoolValue:
		return l.Val == right.(runtime.BoolValue).Val
	case runtime.NumberValue:
		return l.Val == right.(runtime.NumberValue).Val
	case runtime.StringValue:
		return l.Val == right.(runtime.StringValue).Val
	default:
		return left == right
	}
}
