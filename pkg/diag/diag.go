// Package diag holds the diagnostics produced by every stage of the risl pipeline.
package diag

import (
	"fmt"
	"strings"

	"risl/interpreter-go/pkg/token"
)

// Phase names the pipeline stage that produced a diagnostic.
type Phase int

const (
	PhaseLex Phase = iota
	PhaseParse
	PhaseResolve
	PhaseRuntime
)

func (p Phase) String() string {
	switch p {
	case PhaseLex:
		return "Lex"
	case PhaseParse:
		return "Parse"
	case PhaseResolve:
		return "Resolve"
	case PhaseRuntime:
		return "Runtime"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Code is a stable machine-readable identifier for a diagnostic kind.
type Code string

const (
	UnterminatedString  Code = "UnterminatedString"
	UnexpectedCharacter Code = "UnexpectedCharacter"
	UnterminatedComment Code = "UnterminatedComment"
	InvalidEscape       Code = "InvalidEscape"
	MalformedNumber     Code = "MalformedNumber"

	ExpectedToken           Code = "ExpectedToken"
	InvalidAssignmentTarget Code = "InvalidAssignmentTarget"
	TooManyArguments        Code = "TooManyArguments"
	ReservedKeyword         Code = "ReservedKeyword"
	UnexpectedEOF           Code = "UnexpectedEOF"

	SelfReferencingInitializer Code = "SelfReferencingInitializer"
	ReturnOutsideFunction      Code = "ReturnOutsideFunction"
	ReturnValueFromInitializer Code = "ReturnValueFromInitializer"
	BreakOutsideLoop           Code = "BreakOutsideLoop"
	ContinueOutsideLoop        Code = "ContinueOutsideLoop"
	DuplicateDeclaration       Code = "DuplicateDeclaration"
	AssignToConst              Code = "AssignToConst"
	SelfOutsideMethod          Code = "SelfOutsideMethod"

	TypeMismatch      Code = "TypeMismatch"
	ArityMismatch     Code = "ArityMismatch"
	UndefinedVariable Code = "UndefinedVariable"
	UndefinedField    Code = "UndefinedField"
	DivisionByZero    Code = "DivisionByZero"
	NotCallable       Code = "NotCallable"
	StackOverflow     Code = "StackOverflow"
	Internal          Code = "Internal"
)

// Diagnostic is a single problem report.
type Diagnostic struct {
	Phase   Phase
	Code    Code
	Line    int
	Column  int
	Message string
}

// New builds a diagnostic located at pos.
func New(phase Phase, code Code, pos token.Position, format string, args ...any) Diagnostic {
	return Diagnostic{
		Phase:   phase,
		Code:    code,
		Line:    pos.Line,
		Column:  pos.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d:%d] %s error: %s", d.Line, d.Column, d.Phase, d.Message)
}

// List is an ordered collection of diagnostics. A non-empty List is usable as an error.
type List []Diagnostic

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no diagnostics"
	case 1:
		return l[0].String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d problems:", len(l))
	for _, d := range l {
		b.WriteString("\n  ")
		b.WriteString(d.String())
	}
	return b.String()
}

// Err returns the list as an error, or nil when empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// HasPhase reports whether any diagnostic came from phase.
func (l List) HasPhase(phase Phase) bool {
	for _, d := range l {
		if d.Phase == phase {
			return true
		}
	}
	return false
}

// Codes lists the diagnostic codes in order; handy in tests.
func (l List) Codes() []Code {
	if len(l) == 0 {
		return nil
	}
	out := make([]Code, len(l))
	for i, d := range l {
		out[i] = d.Code
	}
	return out
}
