package interpreter

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/runtime"
	"risl/interpreter-go/pkg/token"
)

func run(t *testing.T, source string, opts ...Option) (Outcome, string) {
	t.Helper()
	var out bytes.Buffer
	outcome := Interpret(source, append([]Option{WithOutput(&out)}, opts...)...)
	return outcome, out.String()
}

func mustRun(t *testing.T, source string, opts ...Option) string {
	t.Helper()
	outcome, out := run(t, source, opts...)
	if !outcome.OK() {
		t.Fatalf("Interpret(%q) failed: %v (err: %v)", source, outcome.Diagnostics, outcome.Err)
	}
	return out
}

func expectOutput(t *testing.T, source, want string, opts ...Option) {
	t.Helper()
	if diff := cmp.Diff(want, mustRun(t, source, opts...)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintSum(t *testing.T) {
	expectOutput(t, "let a = 1; let b = 2; print a + b;", "3\n")
}

func TestClosureCounter(t *testing.T) {
	expectOutput(t, `
fn make() {
  let mut c = 0;
  fn inc() {
    c = c + 1;
    return c;
  }
  return inc;
}
let inc = make();
print inc();
print inc();
`, "1\n2\n")
}

func TestClosureObservesLaterMutation(t *testing.T) {
	expectOutput(t, `
fn f() {
  let mut x = 1;
  let g = || x;
  x = 2;
  return g();
}
print f();
`, "2\n")
}

func TestClosureKeepsDeclarationScope(t *testing.T) {
	expectOutput(t, `
let a = "global";
{
  fn show() { print a; }
  show();
  let a = "block";
  show();
  print a;
}
`, "global\nglobal\nblock\n")
}

func TestArity(t *testing.T) {
	outcome, _ := run(t, "fn f(a) { return a; } f(1, 2);")
	if diff := cmp.Diff([]diag.Code{diag.ArityMismatch}, outcome.Diagnostics.Codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	expectOutput(t, "fn f(a) { return a; } print f(1);", "1\n")
}

func TestTruthiness(t *testing.T) {
	expectOutput(t, `if 0 { print "A"; } else { print "B"; }`, "A\n")
	expectOutput(t, `if nil { print "A"; } else { print "B"; }`, "B\n")
	expectOutput(t, `if "" { print "A"; } else if false { print "B"; } else { print "C"; }`, "A\n")
	expectOutput(t, `if false { print "A"; } else if 1 { print "B"; } else { print "C"; }`, "B\n")
}

func TestUndefinedVariableHaltsExecution(t *testing.T) {
	outcome, out := run(t, `print undefinedName; print "after";`)
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
	if len(outcome.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %v", outcome.Diagnostics)
	}
	d := outcome.Diagnostics[0]
	if d.Phase != diag.PhaseRuntime || d.Code != diag.UndefinedVariable || d.Line != 1 || d.Column != 7 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if outcome.Value != nil {
		t.Fatalf("expected no value, got %#v", outcome.Value)
	}
}

func TestExpressionValues(t *testing.T) {
	cases := map[string]string{
		`1 + 2 * 3`:                "7",
		`"a" + "b"`:                "ab",
		`7 % 3`:                    "1",
		`-7 % 3`:                   "-1",
		`1 / 2`:                    "0.5",
		`10 / 4`:                   "2.5",
		`3.0`:                      "3",
		`1e21`:                     "1e+21",
		`0x10 + 0b11 + 0o7`:        "26",
		`1 == 1`:                   "true",
		`1 == "1"`:                 "false",
		`nil == nil`:               "true",
		`nil == false`:             "false",
		`"a" != "b"`:               "true",
		`2 <= 2 and 3 > 2`:         "true",
		`!nil`:                     "true",
		`!0`:                       "false",
		`nil or "x"`:               "x",
		`0 and 5`:                  "5",
		`false and undefined_name`: "false",
		`true || undefined_name`:   "true",
		`type_of(1)`:               "number",
		`type_of(clock)`:           "native_function",
		`type_of(|| 1)`:            "function",
		`len("héllo")`:             "5",
		`num(" 42 ")`:              "42",
		`num("x")`:                 "nil",
		`str(1.5) + "!"`:           "1.5!",
		`clock() > 0`:              "true",
		`clock`:                    "<native fn clock>",
		`|x| x`:                    "<fn lambda>",
		`(|a, b| a * b)(6, 7)`:     "42",
		`let f = || 1; f == f`:     "true",
		`(|| 1) == (|| 1)`:         "false",
	}
	for source, want := range cases {
		outcome, _ := run(t, source)
		if !outcome.OK() {
			t.Errorf("Interpret(%q) failed: %v", source, outcome.Diagnostics)
			continue
		}
		if got := Stringify(outcome.Value); got != want {
			t.Errorf("Interpret(%q) = %s, want %s", source, got, want)
		}
	}
}

func TestRuntimeErrors(t *testing.T) {
	cases := []struct {
		source string
		want   diag.Code
	}{
		{`1 + "a";`, diag.TypeMismatch},
		{`1 / 0;`, diag.DivisionByZero},
		{`5 % 0;`, diag.DivisionByZero},
		{`-"x";`, diag.TypeMismatch},
		{`"a" < "b";`, diag.TypeMismatch},
		{`let x = 1; x();`, diag.NotCallable},
		{`x = 1;`, diag.UndefinedVariable},
		{`struct S {} S().missing;`, diag.UndefinedField},
		{`let n = 1; n.field = 2;`, diag.TypeMismatch},
		{`let n = 1; print n.field;`, diag.TypeMismatch},
		{`fn f() { return f(); } f();`, diag.StackOverflow},
		{`len(1);`, diag.TypeMismatch},
		{`clock(1);`, diag.ArityMismatch},
		{`for i in "a"..3 {}`, diag.TypeMismatch},
	}
	for _, tc := range cases {
		outcome, _ := run(t, tc.source)
		if diff := cmp.Diff([]diag.Code{tc.want}, outcome.Diagnostics.Codes()); diff != "" {
			t.Errorf("Interpret(%q) codes mismatch (-want +got):\n%s", tc.source, diff)
			continue
		}
		if outcome.Diagnostics[0].Phase != diag.PhaseRuntime {
			t.Errorf("Interpret(%q) phase = %s", tc.source, outcome.Diagnostics[0].Phase)
		}
	}
}

func TestNativeErrorsUseCallSite(t *testing.T) {
	outcome, _ := run(t, "let x = 1;\n  len(x);")
	if len(outcome.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %v", outcome.Diagnostics)
	}
	if d := outcome.Diagnostics[0]; d.Line != 2 || d.Column != 6 {
		t.Fatalf("unexpected position %d:%d", d.Line, d.Column)
	}
}

func TestLoops(t *testing.T) {
	expectOutput(t, `
let mut total = 0;
for i in 0..5 {
  if i == 3 { continue; }
  total = total + i;
}
print total;
for i in 1..=3 { print i; }
let mut n = 0;
loop {
  n = n + 1;
  if n >= 4 { break; }
}
print n;
while n > 0 { n = n - 1; }
print n;
`, "7\n1\n2\n3\n4\n0\n")
}

func TestReturnFromNestedLoop(t *testing.T) {
	expectOutput(t, `
fn find() {
  for i in 0..10 {
    while true {
      if i * i > 20 { return i; }
      break;
    }
  }
  return nil;
}
print find();
`, "5\n")
}

func TestLoopVariablePerIteration(t *testing.T) {
	expectOutput(t, `
let mut first = nil;
for i in 0..3 {
  if i == 0 { first = || i; }
}
print first();
`, "0\n")
}

func TestOutcomeValue(t *testing.T) {
	cases := []struct {
		source string
		want   runtime.Value
	}{
		{"1 + 2;", runtime.NumberValue{Val: 3}},
		{"1 + 2", runtime.NumberValue{Val: 3}},
		{"1 + 2; let x = 1;", nil},
		{"print 1;", nil},
		{`"a"; "b";`, runtime.StringValue{Val: "b"}},
	}
	for _, tc := range cases {
		outcome, _ := run(t, tc.source)
		if !outcome.OK() {
			t.Fatalf("Interpret(%q) failed: %v", tc.source, outcome.Diagnostics)
		}
		if outcome.Value != tc.want {
			t.Errorf("Interpret(%q).Value = %#v, want %#v", tc.source, outcome.Value, tc.want)
		}
	}
}

func TestPhaseGating(t *testing.T) {
	outcome, out := run(t, `print "x"; let = 1;`)
	if out != "" || !outcome.Diagnostics.HasPhase(diag.PhaseParse) || outcome.Diagnostics.HasPhase(diag.PhaseRuntime) {
		t.Fatalf("parse errors must stop the pipeline: out=%q diags=%v", out, outcome.Diagnostics)
	}

	outcome, out = run(t, `print "x"; return 1;`)
	if out != "" {
		t.Fatalf("resolve errors must prevent evaluation, got output %q", out)
	}
	if diff := cmp.Diff([]diag.Code{diag.ReturnOutsideFunction}, outcome.Diagnostics.Codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}

	outcome, _ = run(t, `print @; print "unterminated`)
	if diff := cmp.Diff([]diag.Code{diag.UnexpectedCharacter, diag.UnterminatedString, diag.ExpectedToken, diag.UnexpectedEOF}, outcome.Diagnostics.Codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
}

func TestSession(t *testing.T) {
	var out bytes.Buffer
	session := New(WithOutput(&out))

	steps := []struct {
		source string
		want   string
	}{
		{"let x = 1;", "nil"},
		{"x = x + 1; x", "2"},
		{"fn f() { return x; }", "nil"},
		{"x = 10; f()", "10"},
		{"const k = 3;", "nil"},
		{"k * f()", "30"},
	}
	for _, step := range steps {
		outcome := session.Interpret(step.source)
		if !outcome.OK() {
			t.Fatalf("Interpret(%q) failed: %v", step.source, outcome.Diagnostics)
		}
		if got := Stringify(outcome.Value); got != step.want {
			t.Fatalf("Interpret(%q) = %s, want %s", step.source, got, step.want)
		}
	}

	outcome := session.Interpret("k = 4;")
	if diff := cmp.Diff([]diag.Code{diag.AssignToConst}, outcome.Diagnostics.Codes()); diff != "" {
		t.Fatalf("const from an earlier fragment must stay const (-want +got):\n%s", diff)
	}

	session.Close()
	if keys := session.GlobalEnvironment().Keys(); len(keys) != 0 {
		t.Fatalf("Close should clear globals, got %v", keys)
	}
	if outcome := session.Interpret("1;"); outcome.Err != ErrSessionClosed || outcome.OK() {
		t.Fatalf("expected ErrSessionClosed, got %+v", outcome)
	}
}

func TestSessionRejectsConcurrentUse(t *testing.T) {
	session := New()
	session.busy.Set()
	if outcome := session.Interpret("1;"); outcome.Err != ErrSessionBusy {
		t.Fatalf("expected ErrSessionBusy, got %+v", outcome)
	}
	session.busy.UnSet()
	if outcome := session.Interpret("1;"); !outcome.OK() {
		t.Fatalf("session should be usable again: %+v", outcome)
	}
}

func TestSessionSurvivesRuntimeError(t *testing.T) {
	var out bytes.Buffer
	session := New(WithOutput(&out))
	if outcome := session.Interpret("let a = 1; a();"); outcome.OK() {
		t.Fatalf("expected a runtime error")
	}
	if outcome := session.Interpret("print a + 1;"); !outcome.OK() {
		t.Fatalf("bindings made before the error should survive: %v", outcome.Diagnostics)
	}
	if out.String() != "2\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestArgs(t *testing.T) {
	expectOutput(t, "print arg_count(); print arg(1); print arg(5); print arg(0.5);", "2\nb\nnil\nnil\n", WithArgs([]string{"a", "b"}))
}

func TestMaxCallDepth(t *testing.T) {
	source := "fn r(n) { if n == 0 { return 0; } return r(n - 1); }\n"
	outcome, _ := run(t, source+"r(20);", WithMaxCallDepth(10))
	if diff := cmp.Diff([]diag.Code{diag.StackOverflow}, outcome.Diagnostics.Codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	expectOutput(t, source+"print r(5);", "0\n", WithMaxCallDepth(10))
}

func TestDebugPanicsOnInternalErrors(t *testing.T) {
	quiet := New()
	if err := quiet.internalError(token.Position{Line: 1, Column: 1}, "boom"); err.Code != diag.Internal {
		t.Fatalf("expected Internal, got %s", err.Code)
	}

	loud := New(WithDebug(true))
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic in debug mode")
		}
	}()
	loud.internalError(token.Position{Line: 1, Column: 1}, "boom")
}

func TestLoggerRecordsPhases(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	mustRun(t, "print 1;", WithLogger(logger))
	for _, phase := range []string{"phase=parse", "phase=resolve", "phase=evaluate"} {
		if !strings.Contains(logs.String(), phase) {
			t.Fatalf("expected %q in logs:\n%s", phase, logs.String())
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		3:    "3",
		-2:   "-2",
		0.5:  "0.5",
		1e21: "1e+21",
		1e20: "100000000000000000000",
	}
	for in, want := range cases {
		if got := formatNumber(in); got != want {
			t.Errorf("formatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}
