package interpreter

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/runtime"
	"risl/interpreter-go/pkg/token"
)

func (i *Interpreter) installBuiltins() {
	natives := []*runtime.NativeFunctionValue{
		{Name: "clock", Arity: 0, Impl: func([]runtime.Value) (runtime.Value, error) {
			return runtime.NumberValue{Val: float64(time.Now().UnixNano()) / 1e9}, nil
		}},
		{Name: "len", Arity: 1, Impl: func(args []runtime.Value) (runtime.Value, error) {
			s, ok := args[0].(runtime.StringValue)
			if !ok {
				return nil, nativeTypeMismatch("len", "a string", args[0])
			}
			return runtime.NumberValue{Val: float64(utf8.RuneCountInString(s.Val))}, nil
		}},
		{Name: "str", Arity: 1, Impl: func(args []runtime.Value) (runtime.Value, error) {
			return runtime.StringValue{Val: Stringify(args[0])}, nil
		}},
		{Name: "num", Arity: 1, Impl: func(args []runtime.Value) (runtime.Value, error) {
			switch v := args[0].(type) {
			case runtime.NumberValue:
				return v, nil
			case runtime.StringValue:
				f, err := strconv.ParseFloat(strings.TrimSpace(v.Val), 64)
				if err != nil {
					return runtime.Nil, nil
				}
				return runtime.NumberValue{Val: f}, nil
			default:
				return nil, nativeTypeMismatch("num", "a string", args[0])
			}
		}},
		{Name: "type_of", Arity: 1, Impl: func(args []runtime.Value) (runtime.Value, error) {
			return runtime.StringValue{Val: args[0].Kind().String()}, nil
		}},
		{Name: "arg", Arity: 1, Impl: func(args []runtime.Value) (runtime.Value, error) {
			n, ok := args[0].(runtime.NumberValue)
			if !ok {
				return nil, nativeTypeMismatch("arg", "a number", args[0])
			}
			idx := n.Val
			if idx != math.Trunc(idx) || idx < 0 || idx >= float64(len(i.args)) {
				return runtime.Nil, nil
			}
			return runtime.StringValue{Val: i.args[int(idx)]}, nil
		}},
		{Name: "arg_count", Arity: 0, Impl: func([]runtime.Value) (runtime.Value, error) {
			return runtime.NumberValue{Val: float64(len(i.args))}, nil
		}},
	}
	for _, fn := range natives {
		i.global.Define(fn.Name, fn)
	}
}

// nativeTypeMismatch is positioned by the caller once the call site is known.
func nativeTypeMismatch(name, want string, got runtime.Value) *RuntimeError {
	return runtimeErrorf(diag.TypeMismatch, token.Position{}, "%s expects %s, got %s", name, want, got.Kind())
}
