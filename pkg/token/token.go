package token

import "fmt"

// Kind identifies the lexical category of a token.
type Kind int

const (
	EOF Kind = iota

	// Literals and identifiers
	Identifier
	Number
	String

	// Punctuation
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	Comma
	Dot
	DotDot
	DotDotEqual
	Semicolon
	Colon

	// Operators
	Plus
	Minus
	Star
	Slash
	Percent
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual
	AmpAmp
	PipePipe
	Ampersand
	Pipe

	// Keywords
	And
	Break
	Const
	Continue
	Else
	Enum
	False
	Fn
	For
	If
	In
	Let
	Loop
	Match
	Mut
	Nil
	Or
	Print
	Pub
	Return
	SelfValue
	SelfType
	Struct
	Super
	True
	While
)

var kindNames = map[Kind]string{
	EOF:          "end of input",
	Identifier:   "identifier",
	Number:       "number",
	String:       "string",
	LeftParen:    "(",
	RightParen:   ")",
	LeftBrace:    "{",
	RightBrace:   "}",
	LeftBracket:  "[",
	RightBracket: "]",
	Comma:        ",",
	Dot:          ".",
	DotDot:       "..",
	DotDotEqual:  "..=",
	Semicolon:    ";",
	Colon:        ":",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Percent:      "%",
	Bang:         "!",
	BangEqual:    "!=",
	Equal:        "=",
	EqualEqual:   "==",
	Greater:      ">",
	GreaterEqual: ">=",
	Less:         "<",
	LessEqual:    "<=",
	AmpAmp:       "&&",
	PipePipe:     "||",
	Ampersand:    "&",
	Pipe:         "|",
}

// keywords maps reserved words to their token kinds.
var keywords = map[string]Kind{
	"and":      And,
	"break":    Break,
	"const":    Const,
	"continue": Continue,
	"else":     Else,
	"enum":     Enum,
	"false":    False,
	"fn":       Fn,
	"for":      For,
	"if":       If,
	"in":       In,
	"let":      Let,
	"loop":     Loop,
	"match":    Match,
	"mut":      Mut,
	"nil":      Nil,
	"or":       Or,
	"print":    Print,
	"pub":      Pub,
	"return":   Return,
	"self":     SelfValue,
	"Self":     SelfType,
	"struct":   Struct,
	"super":    Super,
	"true":     True,
	"while":    While,
}

func init() {
	for word, kind := range keywords {
		kindNames[kind] = word
	}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsKeyword reports whether the kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= And && k <= While
}

// IsReserved reports keywords that are reserved for future use and have no grammar yet.
func (k Kind) IsReserved() bool {
	switch k {
	case Enum, Match, Pub, Super, SelfType:
		return true
	default:
		return false
	}
}

// LookupIdent returns the keyword kind for ident, or Identifier.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Identifier
}

// Position is a 1-based source location. Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexeme. Literal holds a float64 for numbers and the
// decoded text for strings; it is nil for every other kind.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any
	Pos     Position
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case Identifier, Number, String:
		return fmt.Sprintf("%s %q", t.Kind, t.Lexeme)
	default:
		return fmt.Sprintf("%q", t.Lexeme)
	}
}
