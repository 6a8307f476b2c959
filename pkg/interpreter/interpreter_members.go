package interpreter

import (
	"risl/interpreter-go/pkg/ast"
	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateStructDefinition(def *ast.StructDefinition, env *runtime.Environment) {
	methods := make(map[string]*runtime.FunctionValue, len(def.Methods))
	for _, m := range def.Methods {
		methods[m.ID.Name] = &runtime.FunctionValue{
			Declaration:   m,
			Closure:       env,
			IsInitializer: m.ID.Name == ast.InitializerName,
		}
	}
	env.Define(def.ID.Name, &runtime.StructTypeValue{Node: def, Methods: methods})
}

func (i *Interpreter) evaluateMemberAccess(n *ast.MemberAccessExpression, env *runtime.Environment) (runtime.Value, *RuntimeError) {
	obj, err := i.evaluateExpression(n.Object, env)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*runtime.StructInstanceValue)
	if !ok {
		return nil, runtimeErrorf(diag.TypeMismatch, n.Pos(), "only instances have fields, got %s", obj.Kind())
	}
	val, ok := inst.Get(n.Member.Name)
	if !ok {
		return nil, runtimeErrorf(diag.UndefinedField, n.Member.Pos(), "undefined field '%s' on %s instance", n.Member.Name, inst.Type.Name())
	}
	return val, nil
}

func (i *Interpreter) evaluateMemberAssignment(n *ast.MemberAssignmentExpression, env *runtime.Environment) (runtime.Value, *RuntimeError) {
	obj, err := i.evaluateExpression(n.Object, env)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*runtime.StructInstanceValue)
	if !ok {
		return nil, runtimeErrorf(diag.TypeMismatch, n.Pos(), "only instances have fields, got %s", obj.Kind())
	}
	val, err := i.evaluateExpression(n.Value, env)
	if err != nil {
		return nil, err
	}
	inst.Set(n.Member.Name, val)
	return val, nil
}
