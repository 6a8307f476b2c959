package resolver

import (
	"risl/interpreter-go/pkg/ast"
	"risl/interpreter-go/pkg/diag"
)

func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case nil:
		return
	case *ast.NumberLiteral, *ast.StringLiteral, *ast.BooleanLiteral, *ast.NilLiteral:
		return
	case *ast.Identifier:
		if scope := r.innermost(); scope != nil {
			if b, ok := scope.LookupLocal(e.Name); ok && !b.Defined {
				r.report(diag.SelfReferencingInitializer, e.Pos(), "cannot read local variable '%s' in its own initializer", e.Name)
			}
		}
		r.bindLocal(e, e.Name)
	case *ast.SelfExpression:
		if !r.inMethodContext() {
			r.report(diag.SelfOutsideMethod, e.Pos(), "'self' used outside of a method")
			return
		}
		r.bindLocal(e, "self")
	case *ast.AssignmentExpression:
		r.resolveExpression(e.Value)
		if b, ok := r.bindLocal(e, e.Target.Name); ok {
			if b.Constant {
				r.reportConstAssignment(e)
			}
		} else if r.globalConsts[e.Target.Name] {
			r.reportConstAssignment(e)
		}
	case *ast.UnaryExpression:
		r.resolveExpression(e.Operand)
	case *ast.BinaryExpression:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.LogicalExpression:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.GroupingExpression:
		r.resolveExpression(e.Expression)
	case *ast.FunctionCall:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.MemberAccessExpression:
		r.resolveExpression(e.Object)
	case *ast.MemberAssignmentExpression:
		r.resolveExpression(e.Value)
		r.resolveExpression(e.Object)
	case *ast.LambdaExpression:
		r.resolveFunction(e.Params, e.Body, functionLambda)
	default:
		r.report(diag.Internal, expr.Pos(), "unsupported expression %s", expr.NodeType())
	}
}

func (r *Resolver) reportConstAssignment(e *ast.AssignmentExpression) {
	r.report(diag.AssignToConst, e.Pos(), "cannot assign to constant '%s'", e.Target.Name)
}
