// Package interpreter evaluates risl programs.
//
// Interpret runs a complete source text through the lexer, parser, resolver
// and evaluator and reports the result as an Outcome. An Interpreter created
// with New is a session: successive Interpret calls share one global
// environment, which is what a REPL needs.
package interpreter

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/tevino/abool/v2"

	"risl/interpreter-go/pkg/ast"
	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/lexer"
	"risl/interpreter-go/pkg/parser"
	"risl/interpreter-go/pkg/resolver"
	"risl/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds nested calls unless WithMaxCallDepth says otherwise.
const DefaultMaxCallDepth = 1024

var (
	// ErrSessionBusy is reported when Interpret is called on a session that is
	// already running a program.
	ErrSessionBusy = errors.New("interpreter: session is busy")
	// ErrSessionClosed is reported when Interpret is called after Close.
	ErrSessionClosed = errors.New("interpreter: session is closed")
)

// Outcome is the result of interpreting one source text.
type Outcome struct {
	// Value is the value of the final top-level expression statement, or nil
	// when the program ended with any other kind of statement or failed.
	Value       runtime.Value
	Diagnostics diag.List
	// Err is set when the session refused to run the program at all.
	Err error
}

// OK reports whether the program ran to completion.
func (o Outcome) OK() bool {
	return o.Err == nil && len(o.Diagnostics) == 0
}

// Interpreter drives evaluation of risl programs.
type Interpreter struct {
	global   *runtime.Environment
	resolver *resolver.Resolver
	bindings *resolver.Bindings

	out          io.Writer
	logger       *slog.Logger
	maxCallDepth int
	debug        bool
	args         []string

	callDepth int
	busy      *abool.AtomicBool
	closed    bool
}

// New returns a session with the builtins installed in its global environment.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global:       runtime.NewEnvironment(nil),
		resolver:     resolver.New(),
		out:          os.Stdout,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxCallDepth: DefaultMaxCallDepth,
		busy:         abool.NewBool(false),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.installBuiltins()
	return i
}

// Interpret runs source in a fresh interpreter.
func Interpret(source string, opts ...Option) Outcome {
	i := New(opts...)
	defer i.Close()
	return i.Interpret(source)
}

// GlobalEnvironment returns the interpreter’s global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Close ends the session and drops every global binding. Further Interpret
// calls report ErrSessionClosed.
func (i *Interpreter) Close() {
	if !i.busy.SetToIf(false, true) {
		return
	}
	defer i.busy.UnSet()
	i.closed = true
	i.global.Clear()
}

// Interpret lexes, parses, resolves and runs source against the session's
// global environment. Lexical and syntax errors stop the pipeline before
// resolution, resolution errors stop it before evaluation, and evaluation
// stops at the first runtime error.
func (i *Interpreter) Interpret(source string) Outcome {
	if !i.busy.SetToIf(false, true) {
		return Outcome{Err: ErrSessionBusy}
	}
	defer i.busy.UnSet()
	if i.closed {
		return Outcome{Err: ErrSessionClosed}
	}

	start := time.Now()
	program, diags := parser.New(lexer.New(source)).Parse()
	i.logPhase("parse", start, len(diags))
	if len(diags) > 0 {
		return Outcome{Diagnostics: diags}
	}

	start = time.Now()
	bindings, diags := i.resolver.Resolve(program)
	i.logPhase("resolve", start, len(diags), slog.Int("locals", bindings.Len()))
	if len(diags) > 0 {
		return Outcome{Diagnostics: diags}
	}
	i.bindings = bindings

	start = time.Now()
	value, err := i.run(program)
	if err != nil {
		i.logPhase("evaluate", start, 1)
		return Outcome{Diagnostics: diag.List{err.Diagnostic()}}
	}
	i.logPhase("evaluate", start, 0)
	return Outcome{Value: value}
}

func (i *Interpreter) logPhase(phase string, start time.Time, diagnostics int, attrs ...slog.Attr) {
	args := []any{
		slog.String("phase", phase),
		slog.Int("diagnostics", diagnostics),
		slog.Duration("elapsed", time.Since(start)),
	}
	for _, a := range attrs {
		args = append(args, a)
	}
	i.logger.Debug("phase finished", args...)
}

// run executes the top-level statements, remembering the value of the last
// one when it is an expression statement.
func (i *Interpreter) run(program *ast.Program) (runtime.Value, *RuntimeError) {
	var last runtime.Value
	for _, stmt := range program.Body {
		if exprStmt, ok := stmt.(*ast.ExpressionStatement); ok {
			val, err := i.evaluateExpression(exprStmt.Expression, i.global)
			if err != nil {
				return nil, err
			}
			last = val
			continue
		}
		last = nil
		c, err := i.execute(stmt, i.global)
		if err != nil {
			return nil, err
		}
		if c.kind != completionNormal {
			return nil, i.internalError(stmt.Pos(), "%s escaped to top level", c.kind)
		}
	}
	return last, nil
}
