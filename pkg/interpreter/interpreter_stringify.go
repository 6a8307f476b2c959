package interpreter

import (
	"fmt"
	"math"
	"strconv"

	"risl/interpreter-go/pkg/runtime"
)

// Stringify renders a value the way print shows it.
func Stringify(val runtime.Value) string {
	switch v := val.(type) {
	case nil:
		return "nil"
	case runtime.NilValue:
		return "nil"
	case runtime.BoolValue:
		return strconv.FormatBool(v.Val)
	case runtime.NumberValue:
		return formatNumber(v.Val)
	case runtime.StringValue:
		return v.Val
	case *runtime.FunctionValue:
		return fmt.Sprintf("<fn %s>", v.Name())
	case *runtime.NativeFunctionValue:
		return fmt.Sprintf("<native fn %s>", v.Name)
	case *runtime.StructTypeValue:
		return fmt.Sprintf("<struct %s>", v.Name())
	case *runtime.StructInstanceValue:
		return fmt.Sprintf("<%s instance>", v.Type.Name())
	default:
		return fmt.Sprintf("<%s>", val.Kind())
	}
}

// formatNumber prints integral values without a fraction and everything else
// in the shortest form that round-trips.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
