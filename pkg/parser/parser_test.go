package parser_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"risl/interpreter-go/pkg/ast"
	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/parser"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, diags := parser.ParseProgram(source)
	if len(diags) > 0 {
		t.Fatalf("ParseProgram(%q) returned diagnostics: %v", source, diags)
	}
	if program == nil {
		t.Fatalf("ParseProgram(%q) returned nil program", source)
	}
	return program
}

func TestParseShapes(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"precedence", "print 1 + 2 * 3;", "(print (+ 1 (* 2 3)))"},
		{"grouping", "(1 + 2) * 3;", "(expr (* (group (+ 1 2)) 3))"},
		{"left associative", "a - b - c;", "(expr (- (- a b) c))"},
		{"unary", "-x - -y;", "(expr (- (- x) (- y)))"},
		{"unary binds tighter than equality", "!a == b;", "(expr (== (! a) b))"},
		{"comparison below equality", "a < b == c >= d;", "(expr (== (< a b) (>= c d)))"},
		{"keyword logic", "a or b and c;", "(expr (or a (and b c)))"},
		{"symbol logic", "a || b && c;", "(expr (or a (and b c)))"},
		{"assignment is right associative", "a = b = c;", "(expr (= a (= b c)))"},
		{"call and member chain", "f(1)(2).g.h = 3;", "(expr (=.h (.g (call (call f 1) 2)) 3))"},
		{"call arguments", "f(a, b + 1,);", "(expr (call f a (+ b 1)))"},
		{"literals", `print "hi" == nil != true;`, `(print (!= (== "hi" nil) true))`},
		{"numbers", "print 1.5 + 1e3 + 0b101 + 1_000;", "(print (+ (+ (+ 1.5 1000) 5) 1000))"},
		{"let", "let mut x = 0x1F;", "(let mut x 31)"},
		{"let without initializer", "let y;", "(let y)"},
		{"const", "const LIMIT = 10;", "(const LIMIT 10)"},
		{"function", "fn add(a, b) { return a + b; }", "(fn add [a b] (block (return (+ a b))))"},
		{
			"struct",
			"struct P { fn init(x) { self.x = x; } fn get() { return self.x; } }",
			"(struct P (fn init [x] (block (expr (=.x self x)))) (fn get [] (block (return (.x self)))))",
		},
		{
			"else if chain",
			"if a { print 1; } else if b { print 2; } else { print 3; }",
			"(if a (block (print 1)) (if b (block (print 2)) (block (print 3))))",
		},
		{"while", "while i < 3 { i = i + 1; }", "(while (< i 3) (block (expr (= i (+ i 1)))))"},
		{"loop", "loop { break; }", "(loop (block (break)))"},
		{"inclusive for", "for i in 0..=n { continue; }", "(for i ..= 0 n (block (continue)))"},
		{"exclusive for", "for i in a..b + 1 { }", "(for i .. a (+ b 1) (block))"},
		{"lambda expression body", "let f = |a, b| a * b;", "(let f (lambda [a b] (block (return (* a b)))))"},
		{"lambda block body", "let g = || { print 1; };", "(let g (lambda [] (block (print 1))))"},
		{"lambda argument", "map(|x| x + 1, xs);", "(expr (call map (lambda [x] (block (return (+ x 1)))) xs))"},
		{"bare return", "fn f() { return; }", "(fn f [] (block (return)))"},
		{"nested block", "{ let a = 1; { print a; } }", "(block (let a 1) (block (print a)))"},
		{"trailing expression without semicolon", "1 + 2", "(expr (+ 1 2))"},
		{"comments", "/* outer /* inner */ */ print 1; // done", "(print 1)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ast.Sexpr(mustParse(t, tc.source))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseMatchesBuilders(t *testing.T) {
	program := mustParse(t, `
fn counter() {
  let mut n = 0;
  return || { n = n + 1; return n; };
}
`)
	want := ast.Prog(
		ast.Fn("counter", nil,
			&ast.LetStatement{Name: ast.ID("n"), Mutable: true, Initializer: ast.Num(0)},
			ast.Ret(ast.Lambda(nil,
				ast.Expr(ast.Assign("n", ast.Bin("+", ast.ID("n"), ast.Num(1)))),
				ast.Ret(ast.ID("n")),
			)),
		),
	)
	if diff := cmp.Diff(ast.Sexpr(want), ast.Sexpr(program)); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRecordsPositions(t *testing.T) {
	program := mustParse(t, "let x = 1;\n  print x + 2;")
	if len(program.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Body))
	}
	stmt, ok := program.Body[1].(*ast.PrintStatement)
	if !ok {
		t.Fatalf("expected PrintStatement, got %T", program.Body[1])
	}
	if got := stmt.Pos(); got.Line != 2 || got.Column != 3 {
		t.Fatalf("print position = %s, want 2:3", got)
	}
	bin, ok := stmt.Expression.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected BinaryExpression, got %T", stmt.Expression)
	}
	if got := bin.Pos(); got.Line != 2 || got.Column != 11 {
		t.Fatalf("operator position = %s, want 2:11", got)
	}
}

func TestParseDiagnostics(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   []diag.Code
	}{
		{"missing name", "let = 1;", []diag.Code{diag.ExpectedToken}},
		{"invalid assignment target", "1 + 2 = 3;", []diag.Code{diag.InvalidAssignmentTarget}},
		{"call is not assignable", "f() = 3; print 1;", []diag.Code{diag.InvalidAssignmentTarget}},
		{"reserved keyword", "let match = 1;", []diag.Code{diag.ReservedKeyword}},
		{"reserved keyword in expression", "print enum;", []diag.Code{diag.ReservedKeyword}},
		{"missing semicolon recovers", "print 1 print 2;", []diag.Code{diag.ExpectedToken}},
		{"independent errors", "let = 1;\nlet x = ;\nprint 3;", []diag.Code{diag.ExpectedToken, diag.ExpectedToken}},
		{"stray brace", "}\nprint 1;", []diag.Code{diag.ExpectedToken}},
		{"errors inside blocks", "fn f() { let = 1; print 2 }", []diag.Code{diag.ExpectedToken, diag.ExpectedToken}},
		{"struct body only holds methods", "struct S { let x = 1; }", []diag.Code{diag.ExpectedToken, diag.ExpectedToken}},
		{"range operator required", "for i in 0 { }", []diag.Code{diag.ExpectedToken}},
		{"lex errors come first", "print @; let = 2;", []diag.Code{diag.UnexpectedCharacter, diag.ExpectedToken, diag.ExpectedToken}},
		{"unterminated string", `print "abc;`, []diag.Code{diag.UnterminatedString, diag.UnexpectedEOF}},
		{"unexpected end", "fn f() {", []diag.Code{diag.UnexpectedEOF}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			program, diags := parser.ParseProgram(tc.source)
			if program != nil {
				t.Fatalf("expected nil program when diagnostics are reported")
			}
			if diff := cmp.Diff(tc.want, diags.Codes()); diff != "" {
				t.Fatalf("codes mismatch (-want +got):\n%s\n%v", diff, diags)
			}
		})
	}
}

func TestParseDiagnosticLocation(t *testing.T) {
	_, diags := parser.ParseProgram("let x = 1;\nlet = 2;")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	d := diags[0]
	if d.Phase != diag.PhaseParse || d.Line != 2 || d.Column != 5 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if want := "[line 2:5] Parse error: expected variable name, found '='"; d.String() != want {
		t.Fatalf("String() = %q, want %q", d.String(), want)
	}
}

func TestParseTooManyArguments(t *testing.T) {
	source := "f(" + strings.Repeat("1,", parser.MaxArguments+1) + ");"
	_, diags := parser.ParseProgram(source)
	if diff := cmp.Diff([]diag.Code{diag.TooManyArguments}, diags.Codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}

	params := make([]string, parser.MaxArguments+1)
	for i := range params {
		params[i] = "p" + strings.Repeat("x", i)
	}
	_, diags = parser.ParseProgram("fn f(" + strings.Join(params, ", ") + ") {}")
	if diff := cmp.Diff([]diag.Code{diag.TooManyArguments}, diags.Codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
}

func TestIsIncomplete(t *testing.T) {
	cases := map[string]bool{
		"fn f() {":          true,
		"print (1":          true,
		"let s = \"abc":     true,
		"/* still open":     true,
		"if x { print 1; }": false,
		"print 1 +;":        false,
		"let = 1;":          false,
	}
	for source, want := range cases {
		_, diags := parser.ParseProgram(source)
		if got := parser.IsIncomplete(diags); got != want {
			t.Errorf("IsIncomplete(%q) = %v, want %v (diags: %v)", source, got, want, diags)
		}
	}
}
