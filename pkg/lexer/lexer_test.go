package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/lexer"
	"risl/interpreter-go/pkg/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeKinds(t *testing.T) {
	toks, diags := lexer.Tokenize(`let mut x = 1.5; fn f(a, b) { return a..=b || !c && d != e; } self.y`)
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []token.Kind{
		token.Let, token.Mut, token.Identifier, token.Equal, token.Number, token.Semicolon,
		token.Fn, token.Identifier, token.LeftParen, token.Identifier, token.Comma, token.Identifier, token.RightParen,
		token.LeftBrace, token.Return, token.Identifier, token.DotDotEqual, token.Identifier, token.PipePipe,
		token.Bang, token.Identifier, token.AmpAmp, token.Identifier, token.BangEqual, token.Identifier,
		token.Semicolon, token.RightBrace, token.SelfValue, token.Dot, token.Identifier, token.EOF,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestNumberLiterals(t *testing.T) {
	cases := map[string]float64{
		"42":        42,
		"1_000_000": 1e6,
		"2.5e-3":    0.0025,
		"1E3":       1000,
		"0b1010":    10,
		"0o17":      15,
		"0xff":      255,
		"0xFF_FF":   65535,
	}
	for src, want := range cases {
		toks, diags := lexer.Tokenize(src)
		if len(diags) > 0 {
			t.Errorf("%s: unexpected diagnostics %v", src, diags)
			continue
		}
		if toks[0].Kind != token.Number || toks[0].Literal != want {
			t.Errorf("%s: got %v (%v), want %v", src, toks[0].Literal, toks[0].Kind, want)
		}
	}
}

func TestRangeDoesNotStartFraction(t *testing.T) {
	toks, _ := lexer.Tokenize("0..10")
	if diff := cmp.Diff([]token.Kind{token.Number, token.DotDot, token.Number, token.EOF}, kinds(toks)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestMalformedNumbers(t *testing.T) {
	for _, src := range []string{"0x", "0b102", "1e", "0x1.5", "12abc"} {
		toks, diags := lexer.Tokenize(src)
		if diff := cmp.Diff([]diag.Code{diag.MalformedNumber}, diags.Codes()); diff != "" {
			t.Errorf("%s: codes mismatch (-want +got):\n%s", src, diff)
			continue
		}
		if toks[0].Kind != token.Number || toks[0].Literal != 0.0 {
			t.Errorf("%s: expected a zero number token, got %v", src, toks[0])
		}
	}
}

func TestStringEscapes(t *testing.T) {
	toks, diags := lexer.Tokenize(`"a\tb\n\"q\" \u{1F600} \\"`)
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got, want := toks[0].Literal, "a\tb\n\"q\" \U0001F600 \\"; got != want {
		t.Fatalf("literal = %q, want %q", got, want)
	}

	toks, diags = lexer.Tokenize(`"bad \q"`)
	if diff := cmp.Diff([]diag.Code{diag.InvalidEscape}, diags.Codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	if toks[0].Literal != `bad \q` {
		t.Fatalf("unknown escapes are kept literally, got %q", toks[0].Literal)
	}
}

func TestMultilineStringPositions(t *testing.T) {
	toks, _ := lexer.Tokenize("\"one\ntwo\" x")
	if toks[0].Literal != "one\ntwo" {
		t.Fatalf("unexpected literal %q", toks[0].Literal)
	}
	if pos := toks[1].Pos; pos.Line != 2 || pos.Column != 6 {
		t.Fatalf("identifier after string at %s, want 2:6", pos)
	}
}

func TestLexErrorsContinue(t *testing.T) {
	toks, diags := lexer.Tokenize("a @ b # \"open")
	if diff := cmp.Diff([]diag.Code{diag.UnexpectedCharacter, diag.UnexpectedCharacter, diag.UnterminatedString}, diags.Codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]token.Kind{token.Identifier, token.Identifier, token.EOF}, kinds(toks)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if d := diags[0]; d.Line != 1 || d.Column != 3 || d.Phase != diag.PhaseLex {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestComments(t *testing.T) {
	toks, diags := lexer.Tokenize("a // line\n/* block /* nested */ still */ b")
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if diff := cmp.Diff([]token.Kind{token.Identifier, token.Identifier, token.EOF}, kinds(toks)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if toks[1].Pos.Line != 2 {
		t.Fatalf("expected b on line 2, got %s", toks[1].Pos)
	}

	_, diags = lexer.Tokenize("/* /* */")
	if diff := cmp.Diff([]diag.Code{diag.UnterminatedComment}, diags.Codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
}

func TestUnicodeIdentifiersAndColumns(t *testing.T) {
	toks, _ := lexer.Tokenize("héllo wörld")
	if toks[0].Lexeme != "héllo" || toks[1].Pos.Column != 7 {
		t.Fatalf("unexpected tokens %v", toks)
	}
}

func TestEOFRepeats(t *testing.T) {
	l := lexer.New("x")
	l.Next()
	for i := 0; i < 3; i++ {
		if tok := l.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok)
		}
	}
}

func TestRelexingIsDeterministic(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, "let v%d = %d * (v%d + 0x%x); // n\n", i, i, i, i)
	}
	src := b.String()
	first, _ := lexer.Tokenize(src)
	second, _ := lexer.Tokenize(src)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("token streams differ (-first +second):\n%s", diff)
	}
}

func TestAllStopsEarly(t *testing.T) {
	count := 0
	for range lexer.New("a b c d").All() {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("expected to stop after 2 tokens, got %d", count)
	}
}
