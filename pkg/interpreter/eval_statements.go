package interpreter

import (
	"fmt"

	"risl/interpreter-go/pkg/ast"
	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/runtime"
)

type completionKind int

const (
	completionNormal completionKind = iota
	completionReturn
	completionBreak
	completionContinue
)

func (k completionKind) String() string {
	switch k {
	case completionNormal:
		return "normal"
	case completionReturn:
		return "return"
	case completionBreak:
		return "break"
	case completionContinue:
		return "continue"
	default:
		return fmt.Sprintf("completion(%d)", int(k))
	}
}

// completion tells the enclosing construct how a statement finished. Loops
// consume break and continue; calls consume return.
type completion struct {
	kind  completionKind
	value runtime.Value
}

var normalCompletion = completion{kind: completionNormal}

func (i *Interpreter) execute(node ast.Statement, env *runtime.Environment) (completion, *RuntimeError) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression, env)
		return normalCompletion, err
	case *ast.PrintStatement:
		return normalCompletion, i.evaluatePrintStatement(n, env)
	case *ast.LetStatement:
		var val runtime.Value = runtime.Nil
		if n.Initializer != nil {
			v, err := i.evaluateExpression(n.Initializer, env)
			if err != nil {
				return normalCompletion, err
			}
			val = v
		}
		env.Define(n.Name.Name, val)
		return normalCompletion, nil
	case *ast.ConstStatement:
		val, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return normalCompletion, err
		}
		env.Define(n.Name.Name, val)
		return normalCompletion, nil
	case *ast.Block:
		return i.executeBlock(n.Body, env.Extend())
	case *ast.IfStatement:
		return i.evaluateIfStatement(n, env)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n, env)
	case *ast.LoopStatement:
		return i.evaluateLoopStatement(n, env)
	case *ast.ForLoop:
		return i.evaluateForLoop(n, env)
	case *ast.FunctionDefinition:
		env.Define(n.ID.Name, &runtime.FunctionValue{Declaration: n, Closure: env})
		return normalCompletion, nil
	case *ast.StructDefinition:
		i.evaluateStructDefinition(n, env)
		return normalCompletion, nil
	case *ast.ReturnStatement:
		var val runtime.Value = runtime.Nil
		if n.Argument != nil {
			v, err := i.evaluateExpression(n.Argument, env)
			if err != nil {
				return normalCompletion, err
			}
			val = v
		}
		return completion{kind: completionReturn, value: val}, nil
	case *ast.BreakStatement:
		return completion{kind: completionBreak}, nil
	case *ast.ContinueStatement:
		return completion{kind: completionContinue}, nil
	default:
		return normalCompletion, i.internalError(node.Pos(), "unsupported statement type: %s", node.NodeType())
	}
}

// executeBlock runs statements in env, stopping at the first one that does
// not complete normally.
func (i *Interpreter) executeBlock(stmts []ast.Statement, env *runtime.Environment) (completion, *RuntimeError) {
	for _, stmt := range stmts {
		c, err := i.execute(stmt, env)
		if err != nil || c.kind != completionNormal {
			return c, err
		}
	}
	return normalCompletion, nil
}

func (i *Interpreter) evaluatePrintStatement(n *ast.PrintStatement, env *runtime.Environment) *RuntimeError {
	val, err := i.evaluateExpression(n.Expression, env)
	if err != nil {
		return err
	}
	if _, werr := fmt.Fprintln(i.out, Stringify(val)); werr != nil {
		return runtimeErrorf(diag.Internal, n.Pos(), "print: %v", werr)
	}
	return nil
}

func (i *Interpreter) evaluateIfStatement(n *ast.IfStatement, env *runtime.Environment) (completion, *RuntimeError) {
	cond, err := i.evaluateExpression(n.Condition, env)
	if err != nil {
		return normalCompletion, err
	}
	if isTruthy(cond) {
		return i.execute(n.Consequent, env)
	}
	if n.Alternate != nil {
		return i.execute(n.Alternate, env)
	}
	return normalCompletion, nil
}

// loopBody runs one iteration and reports whether the loop should stop,
// together with the completion to hand to the enclosing construct.
func (i *Interpreter) loopBody(body *ast.Block, env *runtime.Environment) (bool, completion, *RuntimeError) {
	c, err := i.execute(body, env)
	if err != nil {
		return true, normalCompletion, err
	}
	switch c.kind {
	case completionBreak:
		return true, normalCompletion, nil
	case completionReturn:
		return true, c, nil
	default:
		return false, normalCompletion, nil
	}
}

func (i *Interpreter) evaluateWhileLoop(n *ast.WhileLoop, env *runtime.Environment) (completion, *RuntimeError) {
	for {
		cond, err := i.evaluateExpression(n.Condition, env)
		if err != nil {
			return normalCompletion, err
		}
		if !isTruthy(cond) {
			return normalCompletion, nil
		}
		if stop, c, err := i.loopBody(n.Body, env); stop {
			return c, err
		}
	}
}

func (i *Interpreter) evaluateLoopStatement(n *ast.LoopStatement, env *runtime.Environment) (completion, *RuntimeError) {
	for {
		if stop, c, err := i.loopBody(n.Body, env); stop {
			return c, err
		}
	}
}

// evaluateForLoop counts from start towards end in steps of one. Each
// iteration gets its own environment holding the loop variable, so closures
// created in the body see the value of their own iteration.
func (i *Interpreter) evaluateForLoop(n *ast.ForLoop, env *runtime.Environment) (completion, *RuntimeError) {
	start, err := i.evaluateNumberOperand(n.Start, env, "range start")
	if err != nil {
		return normalCompletion, err
	}
	end, err := i.evaluateNumberOperand(n.End, env, "range end")
	if err != nil {
		return normalCompletion, err
	}
	for x := start; x < end || (n.Inclusive && x == end); x++ {
		iterEnv := env.Extend()
		iterEnv.Define(n.Variable.Name, runtime.NumberValue{Val: x})
		if stop, c, err := i.loopBody(n.Body, iterEnv); stop {
			return c, err
		}
	}
	return normalCompletion, nil
}

func (i *Interpreter) evaluateNumberOperand(expr ast.Expression, env *runtime.Environment, what string) (float64, *RuntimeError) {
	val, err := i.evaluateExpression(expr, env)
	if err != nil {
		return 0, err
	}
	num, ok := val.(runtime.NumberValue)
	if !ok {
		return 0, runtimeErrorf(diag.TypeMismatch, expr.Pos(), "%s must be a number, got %s", what, val.Kind())
	}
	return num.Val, nil
}
