package interpreter

import (
	"errors"

	"risl/interpreter-go/pkg/ast"
	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/runtime"
	"risl/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluateFunctionCall(n *ast.FunctionCall, env *runtime.Environment) (runtime.Value, *RuntimeError) {
	callee, err := i.evaluateExpression(n.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(n.Arguments))
	for _, arg := range n.Arguments {
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return i.callValue(callee, args, n.Pos())
}

func (i *Interpreter) callValue(callee runtime.Value, args []runtime.Value, pos token.Position) (runtime.Value, *RuntimeError) {
	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		if err := checkArity(fn.Arity(), len(args), pos); err != nil {
			return nil, err
		}
		return i.invokeFunction(fn, args, pos)
	case *runtime.NativeFunctionValue:
		if fn.Arity != runtime.VariadicArity {
			if err := checkArity(fn.Arity, len(args), pos); err != nil {
				return nil, err
			}
		}
		return i.invokeNative(fn, args, pos)
	case *runtime.StructTypeValue:
		if err := checkArity(fn.Arity(), len(args), pos); err != nil {
			return nil, err
		}
		inst := runtime.NewStructInstance(fn)
		if init, ok := fn.FindMethod(ast.InitializerName); ok {
			if _, err := i.invokeFunction(init.Bind(inst), args, pos); err != nil {
				return nil, err
			}
		}
		return inst, nil
	default:
		return nil, runtimeErrorf(diag.NotCallable, pos, "can only call functions and structs, got %s", callee.Kind())
	}
}

func checkArity(want, got int, pos token.Position) *RuntimeError {
	if want == got {
		return nil
	}
	return runtimeErrorf(diag.ArityMismatch, pos, "expected %d arguments but got %d", want, got)
}

// invokeFunction runs fn's body in a new environment whose parent is the
// closure. Parameters and body share that environment.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value, pos token.Position) (runtime.Value, *RuntimeError) {
	if i.callDepth >= i.maxCallDepth {
		return nil, runtimeErrorf(diag.StackOverflow, pos, "stack overflow: more than %d nested calls", i.maxCallDepth)
	}
	i.callDepth++
	defer func() { i.callDepth-- }()

	env := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Params() {
		env.Define(param.Name, args[idx])
	}
	var c completion
	if body := fn.Body(); body != nil {
		var err *RuntimeError
		if c, err = i.executeBlock(body.Body, env); err != nil {
			return nil, err
		}
	}
	if fn.IsInitializer {
		if self, ok := fn.Closure.GetAt(0, "self"); ok {
			return self, nil
		}
		return nil, i.internalError(pos, "initializer called without a receiver")
	}
	if c.kind == completionReturn {
		return c.value, nil
	}
	return runtime.Nil, nil
}

func (i *Interpreter) invokeNative(fn *runtime.NativeFunctionValue, args []runtime.Value, pos token.Position) (runtime.Value, *RuntimeError) {
	val, err := fn.Impl(args)
	if err != nil {
		var rerr *RuntimeError
		if errors.As(err, &rerr) {
			located := *rerr
			located.Pos = pos
			return nil, &located
		}
		return nil, runtimeErrorf(diag.Internal, pos, "%s: %v", fn.Name, err)
	}
	if val == nil {
		return runtime.Nil, nil
	}
	return val, nil
}
