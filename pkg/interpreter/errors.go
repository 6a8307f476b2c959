package interpreter

import (
	"fmt"

	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/token"
)

// RuntimeError halts evaluation. It is the only error the evaluator produces.
type RuntimeError struct {
	Code    diag.Code
	Pos     token.Position
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Diagnostic().String()
}

// Diagnostic converts the error into a Runtime phase diagnostic.
func (e *RuntimeError) Diagnostic() diag.Diagnostic {
	return diag.New(diag.PhaseRuntime, e.Code, e.Pos, "%s", e.Message)
}

func runtimeErrorf(code diag.Code, pos token.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Code: code, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// internalError reports a state the resolver should have ruled out.
func (i *Interpreter) internalError(pos token.Position, format string, args ...any) *RuntimeError {
	msg := fmt.Sprintf(format, args...)
	if i.debug {
		panic(fmt.Sprintf("interpreter: internal error at %s: %s", pos, msg))
	}
	return &RuntimeError{Code: diag.Internal, Pos: pos, Message: msg}
}
