package resolver

import (
	"github.com/ahrtr/gocontainer/set"

	"risl/interpreter-go/pkg/ast"
	"risl/interpreter-go/pkg/diag"
)

func (r *Resolver) resolveStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case nil:
		return
	case *ast.ExpressionStatement:
		r.resolveExpression(s.Expression)
	case *ast.PrintStatement:
		r.resolveExpression(s.Expression)
	case *ast.LetStatement:
		r.declare(s.Name, false)
		if s.Initializer != nil {
			r.resolveExpression(s.Initializer)
		}
		r.define(s.Name.Name)
	case *ast.ConstStatement:
		r.declare(s.Name, true)
		r.resolveExpression(s.Value)
		r.define(s.Name.Name)
	case *ast.Block:
		r.beginScope()
		r.resolveStatements(s.Body)
		r.endScope()
	case *ast.IfStatement:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Consequent)
		if s.Alternate != nil {
			r.resolveStatement(s.Alternate)
		}
	case *ast.WhileLoop:
		r.resolveExpression(s.Condition)
		r.pushLoopContext()
		r.resolveStatement(s.Body)
		r.popLoopContext()
	case *ast.LoopStatement:
		r.pushLoopContext()
		r.resolveStatement(s.Body)
		r.popLoopContext()
	case *ast.ForLoop:
		r.resolveExpression(s.Start)
		r.resolveExpression(s.End)
		r.beginScope()
		r.declare(s.Variable, false)
		r.define(s.Variable.Name)
		r.pushLoopContext()
		r.resolveStatement(s.Body)
		r.popLoopContext()
		r.endScope()
	case *ast.FunctionDefinition:
		r.declare(s.ID, false)
		r.define(s.ID.Name)
		r.resolveFunction(s.Params, s.Body, functionPlain)
	case *ast.StructDefinition:
		r.resolveStruct(s)
	case *ast.ReturnStatement:
		r.resolveReturn(s)
	case *ast.BreakStatement:
		if !r.inLoopContext() {
			r.report(diag.BreakOutsideLoop, s.Pos(), "'break' outside of a loop")
		}
	case *ast.ContinueStatement:
		if !r.inLoopContext() {
			r.report(diag.ContinueOutsideLoop, s.Pos(), "'continue' outside of a loop")
		}
	default:
		r.report(diag.Internal, stmt.Pos(), "unsupported statement %s", stmt.NodeType())
	}
}

func (r *Resolver) resolveReturn(s *ast.ReturnStatement) {
	switch r.currentFunction() {
	case functionNone:
		r.report(diag.ReturnOutsideFunction, s.Pos(), "'return' outside of a function")
	case functionInitializer:
		if s.Argument != nil {
			r.report(diag.ReturnValueFromInitializer, s.Pos(), "cannot return a value from an initializer")
		}
	}
	if s.Argument != nil {
		r.resolveExpression(s.Argument)
	}
}

func (r *Resolver) resolveStruct(s *ast.StructDefinition) {
	r.declare(s.ID, false)
	r.define(s.ID.Name)

	seen := set.New()
	for _, method := range s.Methods {
		if seen.Contains(method.ID.Name) {
			r.report(diag.DuplicateDeclaration, method.ID.Pos(), "method '%s' is already declared in struct '%s'", method.ID.Name, s.ID.Name)
		}
		seen.Add(method.ID.Name)

		kind := functionMethod
		if method.ID.Name == ast.InitializerName {
			kind = functionInitializer
		}
		r.pushMethodContext()
		r.beginScope()
		r.define("self")
		r.resolveFunction(method.Params, method.Body, kind)
		r.endScope()
		r.popMethodContext()
	}
}

// resolveFunction resolves parameters and body in a single scope, matching the
// single environment a call creates.
func (r *Resolver) resolveFunction(params []*ast.Identifier, body *ast.Block, kind functionKind) {
	saved := r.pushFunction(kind)
	r.beginScope()
	for _, param := range params {
		r.declare(param, false)
		r.define(param.Name)
	}
	if body != nil {
		r.resolveStatements(body.Body)
	}
	r.endScope()
	r.popFunction(saved)
}
