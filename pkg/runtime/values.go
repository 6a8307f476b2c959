package runtime

import (
	"fmt"

	"risl/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindNativeFunction
	KindStructType
	KindStructInstance
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindStructType:
		return "struct"
	case KindStructInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// Nil is the single nil value.
var Nil Value = NilValue{}

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// FunctionValue is a user function or lambda together with the environment it
// closes over. Methods bound to an instance are FunctionValues whose closure
// binds self.
type FunctionValue struct {
	Declaration   ast.Node // LambdaExpression or FunctionDefinition
	Closure       *Environment
	IsInitializer bool
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// Name returns the declared name, or "lambda".
func (v *FunctionValue) Name() string {
	if def, ok := v.Declaration.(*ast.FunctionDefinition); ok && def.ID != nil {
		return def.ID.Name
	}
	return "lambda"
}

func (v *FunctionValue) Params() []*ast.Identifier {
	switch decl := v.Declaration.(type) {
	case *ast.FunctionDefinition:
		return decl.Params
	case *ast.LambdaExpression:
		return decl.Params
	}
	return nil
}

func (v *FunctionValue) Body() *ast.Block {
	switch decl := v.Declaration.(type) {
	case *ast.FunctionDefinition:
		return decl.Body
	case *ast.LambdaExpression:
		return decl.Body
	}
	return nil
}

func (v *FunctionValue) Arity() int {
	return len(v.Params())
}

// Bind returns a copy of the function whose closure defines self as instance.
func (v *FunctionValue) Bind(instance *StructInstanceValue) *FunctionValue {
	env := NewEnvironment(v.Closure)
	env.Define("self", instance)
	return &FunctionValue{Declaration: v.Declaration, Closure: env, IsInitializer: v.IsInitializer}
}

// NativeFunc implements a builtin. Arguments have already been checked
// against the declared arity.
type NativeFunc func(args []Value) (Value, error)

// VariadicArity marks a native that accepts any number of arguments.
const VariadicArity = -1

type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

//-----------------------------------------------------------------------------
// Structs
//-----------------------------------------------------------------------------

type StructTypeValue struct {
	Node    *ast.StructDefinition
	Methods map[string]*FunctionValue
}

func (v *StructTypeValue) Kind() Kind { return KindStructType }

func (v *StructTypeValue) Name() string {
	if v.Node != nil && v.Node.ID != nil {
		return v.Node.ID.Name
	}
	return "struct"
}

// FindMethod looks a method up by name.
func (v *StructTypeValue) FindMethod(name string) (*FunctionValue, bool) {
	m, ok := v.Methods[name]
	return m, ok
}

// Arity is the number of arguments a call to the type takes: that of its
// initializer, or zero.
func (v *StructTypeValue) Arity() int {
	if init, ok := v.FindMethod(ast.InitializerName); ok {
		return init.Arity()
	}
	return 0
}

type StructInstanceValue struct {
	Type   *StructTypeValue
	Fields map[string]Value
}

// NewStructInstance allocates an instance with no fields.
func NewStructInstance(typ *StructTypeValue) *StructInstanceValue {
	return &StructInstanceValue{Type: typ, Fields: make(map[string]Value)}
}

func (v *StructInstanceValue) Kind() Kind { return KindStructInstance }

// Get looks name up among the fields first and then among the methods,
// binding a found method to the instance.
func (v *StructInstanceValue) Get(name string) (Value, bool) {
	if val, ok := v.Fields[name]; ok {
		return val, true
	}
	if method, ok := v.Type.FindMethod(name); ok {
		return method.Bind(v), true
	}
	return nil, false
}

// Set creates or overwrites a field.
func (v *StructInstanceValue) Set(name string, val Value) {
	v.Fields[name] = val
}
