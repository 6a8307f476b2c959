// Package lexer turns risl source text into a lazy stream of tokens.
package lexer

import (
	"iter"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"risl/interpreter-go/pkg/diag"
	"risl/interpreter-go/pkg/token"
)

const eof = -1

// Lexer scans one source text. It is not restartable: once Next has returned
// an EOF token it keeps returning EOF.
type Lexer struct {
	src    string
	offset int
	line   int
	col    int
	start  token.Position
	diags  diag.List
}

// New returns a lexer positioned at the beginning of source.
func New(source string) *Lexer {
	return &Lexer{src: source, line: 1, col: 1}
}

// Diagnostics returns the lexical errors reported so far.
func (l *Lexer) Diagnostics() diag.List {
	return l.diags
}

// All yields the remaining tokens, ending with (and including) EOF.
func (l *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok := l.Next()
			if !yield(tok) || tok.Kind == token.EOF {
				return
			}
		}
	}
}

// Tokenize scans source to completion.
func Tokenize(source string) ([]token.Token, diag.List) {
	l := New(source)
	var toks []token.Token
	for tok := range l.All() {
		toks = append(toks, tok)
	}
	return toks, l.Diagnostics()
}

// Next scans and returns the next token.
func (l *Lexer) Next() token.Token {
	for {
		l.skipTrivia()
		l.start = l.pos()
		if l.atEnd() {
			return l.make(token.EOF)
		}
		r := l.advance()
		switch {
		case isIdentStart(r):
			return l.identifier()
		case isDigit(r):
			return l.number(r)
		}
		switch r {
		case '"':
			if tok, ok := l.string(); ok {
				return tok
			}
			continue
		case '(':
			return l.make(token.LeftParen)
		case ')':
			return l.make(token.RightParen)
		case '{':
			return l.make(token.LeftBrace)
		case '}':
			return l.make(token.RightBrace)
		case '[':
			return l.make(token.LeftBracket)
		case ']':
			return l.make(token.RightBracket)
		case ',':
			return l.make(token.Comma)
		case ';':
			return l.make(token.Semicolon)
		case ':':
			return l.make(token.Colon)
		case '+':
			return l.make(token.Plus)
		case '-':
			return l.make(token.Minus)
		case '*':
			return l.make(token.Star)
		case '/':
			return l.make(token.Slash)
		case '%':
			return l.make(token.Percent)
		case '.':
			if l.match('.') {
				if l.match('=') {
					return l.make(token.DotDotEqual)
				}
				return l.make(token.DotDot)
			}
			return l.make(token.Dot)
		case '!':
			return l.make(l.either('=', token.BangEqual, token.Bang))
		case '=':
			return l.make(l.either('=', token.EqualEqual, token.Equal))
		case '<':
			return l.make(l.either('=', token.LessEqual, token.Less))
		case '>':
			return l.make(l.either('=', token.GreaterEqual, token.Greater))
		case '&':
			return l.make(l.either('&', token.AmpAmp, token.Ampersand))
		case '|':
			return l.make(l.either('|', token.PipePipe, token.Pipe))
		}
		l.report(diag.UnexpectedCharacter, l.start, "unexpected character %q", r)
	}
}

func (l *Lexer) pos() token.Position {
	return token.Position{Offset: l.offset, Line: l.line, Column: l.col}
}

func (l *Lexer) atEnd() bool {
	return l.offset >= len(l.src)
}

func (l *Lexer) peek() rune {
	return l.peekAt(0)
}

// peekAt returns the rune n positions ahead without consuming anything.
func (l *Lexer) peekAt(n int) rune {
	off := l.offset
	for {
		if off >= len(l.src) {
			return eof
		}
		r, size := utf8.DecodeRuneInString(l.src[off:])
		if n == 0 {
			return r
		}
		off += size
		n--
	}
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.offset:])
	l.offset += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) match(want rune) bool {
	if l.peek() != want {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) either(next rune, two, one token.Kind) token.Kind {
	if l.match(next) {
		return two
	}
	return one
}

func (l *Lexer) make(kind token.Kind) token.Token {
	return token.Token{Kind: kind, Lexeme: l.src[l.start.Offset:l.offset], Pos: l.start}
}

func (l *Lexer) report(code diag.Code, pos token.Position, format string, args ...any) {
	l.diags = append(l.diags, diag.New(diag.PhaseLex, code, pos, format, args...))
}

// skipTrivia discards whitespace, line comments, and nested block comments.
func (l *Lexer) skipTrivia() {
	for !l.atEnd() {
		r := l.peek()
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == '/' && l.peekAt(1) == '/':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		case r == '/' && l.peekAt(1) == '*':
			l.blockComment()
		default:
			return
		}
	}
}

func (l *Lexer) blockComment() {
	start := l.pos()
	l.advance()
	l.advance()
	depth := 1
	for depth > 0 {
		if l.atEnd() {
			l.report(diag.UnterminatedComment, start, "unterminated block comment")
			return
		}
		switch r := l.advance(); {
		case r == '/' && l.peek() == '*':
			l.advance()
			depth++
		case r == '*' && l.peek() == '/':
			l.advance()
			depth--
		}
	}
}

func (l *Lexer) identifier() token.Token {
	for isIdentContinue(l.peek()) {
		l.advance()
	}
	tok := l.make(token.Identifier)
	tok.Kind = token.LookupIdent(tok.Lexeme)
	return tok
}

func (l *Lexer) number(first rune) token.Token {
	base := 10
	if first == '0' {
		switch l.peek() {
		case 'b':
			base = 2
		case 'o':
			base = 8
		case 'x':
			base = 16
		}
		if base != 10 {
			l.advance()
		}
	}

	var (
		text    strings.Builder
		problem string
	)
	if base == 10 {
		text.WriteRune(first)
	}
	intDigits := l.digits(&text, base, &problem)
	if base != 10 && intDigits == 0 && problem == "" {
		problem = "missing digits after base prefix"
	}

	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()
		text.WriteByte('.')
		l.digits(&text, 10, &problem)
		if base != 10 && problem == "" {
			problem = "fractional part is only allowed on decimal literals"
		}
	}

	if base == 10 && (l.peek() == 'e' || l.peek() == 'E') {
		l.advance()
		text.WriteByte('e')
		if l.peek() == '+' || l.peek() == '-' {
			text.WriteRune(l.advance())
		}
		if l.digits(&text, 10, &problem) == 0 && problem == "" {
			problem = "empty exponent"
		}
	}

	if isIdentContinue(l.peek()) {
		suffixStart := l.offset
		for isIdentContinue(l.peek()) {
			l.advance()
		}
		if problem == "" {
			problem = "invalid suffix " + strconv.Quote(l.src[suffixStart:l.offset])
		}
	}

	tok := l.make(token.Number)
	var value float64
	if problem == "" {
		var err error
		if base == 10 {
			value, err = strconv.ParseFloat(text.String(), 64)
		} else {
			var n uint64
			n, err = strconv.ParseUint(text.String(), base, 64)
			value = float64(n)
		}
		if err != nil {
			problem = "value out of range"
			value = 0
		}
	}
	if problem != "" {
		l.report(diag.MalformedNumber, tok.Pos, "malformed number %q: %s", tok.Lexeme, problem)
	}
	tok.Literal = value
	return tok
}

// digits consumes digits (and '_' separators) and returns how many digits were read.
// Decimal digits that are invalid for base are consumed and recorded in problem.
func (l *Lexer) digits(text *strings.Builder, base int, problem *string) int {
	count := 0
	for {
		r := l.peek()
		if r == '_' {
			l.advance()
			continue
		}
		v, ok := digitValue(r, base)
		if !ok {
			return count
		}
		l.advance()
		if v >= base {
			if *problem == "" {
				*problem = "invalid digit " + strconv.QuoteRune(r) + " for base " + strconv.Itoa(base)
			}
			continue
		}
		text.WriteRune(r)
		count++
	}
}

func digitValue(r rune, base int) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case base == 16 && r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case base == 16 && r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}

// string scans a string literal whose opening quote is already consumed. It
// returns false when the literal runs into end of input.
func (l *Lexer) string() (token.Token, bool) {
	var b strings.Builder
	for {
		if l.atEnd() {
			l.report(diag.UnterminatedString, l.start, "unterminated string")
			return token.Token{}, false
		}
		switch r := l.advance(); r {
		case '"':
			tok := l.make(token.String)
			tok.Literal = b.String()
			return tok, true
		case '\\':
			l.escape(&b)
		default:
			b.WriteRune(r)
		}
	}
}

func (l *Lexer) escape(b *strings.Builder) {
	at := token.Position{Offset: l.offset - 1, Line: l.line, Column: l.col - 1}
	if l.atEnd() {
		return
	}
	switch r := l.advance(); r {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case '0':
		b.WriteByte(0)
	case '\\', '"', '\'':
		b.WriteRune(r)
	case 'u':
		if cp, ok := l.unicodeEscape(); ok {
			b.WriteRune(cp)
			return
		}
		l.report(diag.InvalidEscape, at, `invalid unicode escape, expected \u{XXXX}`)
	default:
		l.report(diag.InvalidEscape, at, "unknown escape sequence \\%c", r)
		b.WriteByte('\\')
		b.WriteRune(r)
	}
}

func (l *Lexer) unicodeEscape() (rune, bool) {
	if !l.match('{') {
		return 0, false
	}
	var hex strings.Builder
	for hex.Len() < 6 && isHexDigit(l.peek()) {
		hex.WriteRune(l.advance())
	}
	if hex.Len() == 0 || !l.match('}') {
		return 0, false
	}
	cp, err := strconv.ParseUint(hex.String(), 16, 32)
	if err != nil || !utf8.ValidRune(rune(cp)) {
		return 0, false
	}
	return rune(cp), true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	_, ok := digitValue(r, 16)
	return ok
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
