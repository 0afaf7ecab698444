package lexer

import "github.com/xs-lang/xscheck/span"

// TokenType identifies the lexical class of a Token; see typeNames below
// for display names and the keywords table in lexer.go for reserved words.
type TokenType int

const (
	EOF TokenType = iota
	Illegal

	Plus
	Minus
	Star
	FSlash // '/' and the folded '%' both produce this kind
	DPlus
	DMinus
	Lt
	Gt
	Le
	Ge
	Deq
	Neq
	DAmp
	DPipe
	Excl

	Eq
	LBrace
	RBrace
	LParen
	RParen
	SColon
	Colon
	Comma
	Dot

	IntLit
	FloatLit
	BoolLit
	StrLit
	Identifier

	Comment

	Vector
	Include
	Switch
	Case
	While
	Break
	Default
	Rule
	If
	Then
	Else
	Goto
	Label
	For
	Dbg
	Return
	Void
	Int
	Bool
	Float
	String
	Const
	Priority
	MinInterval
	MaxInterval
	HighFrequency
	Active
	Inactive
	Group
	Breakpoint
	Static
	Continue
	Extern
	Export
	RunImmediately
	Mutable
	Class
)

var typeNames = map[TokenType]string{
	EOF:     "EOF",
	Illegal: "ILLEGAL",

	Plus:   "+",
	Minus:  "-",
	Star:   "*",
	FSlash: "/",
	DPlus:  "++",
	DMinus: "--",
	Lt:     "<",
	Gt:     ">",
	Le:     "<=",
	Ge:     ">=",
	Deq:    "==",
	Neq:    "!=",
	DAmp:   "&&",
	DPipe:  "||",
	Excl:   "!",

	Eq:     "=",
	LBrace: "{",
	RBrace: "}",
	LParen: "(",
	RParen: ")",
	SColon: ";",
	Colon:  ":",
	Comma:  ",",
	Dot:    ".",

	IntLit:     "int literal",
	FloatLit:   "float literal",
	BoolLit:    "bool literal",
	StrLit:     "string literal",
	Identifier: "identifier",
	Comment:    "comment",

	Vector:         "vector",
	Include:        "include",
	Switch:         "switch",
	Case:           "case",
	While:          "while",
	Break:          "break",
	Default:        "default",
	Rule:           "rule",
	If:             "if",
	Then:           "then",
	Else:           "else",
	Goto:           "goto",
	Label:          "label",
	For:            "for",
	Dbg:            "dbg",
	Return:         "return",
	Void:           "void",
	Int:            "int",
	Bool:           "bool",
	Float:          "float",
	String:         "string",
	Const:          "const",
	Priority:       "priority",
	MinInterval:    "minInterval",
	MaxInterval:    "maxInterval",
	HighFrequency:  "highFrequency",
	Active:         "active",
	Inactive:       "inactive",
	Group:          "group",
	Breakpoint:     "breakpoint",
	Static:         "static",
	Continue:       "continue",
	Extern:         "extern",
	Export:         "export",
	RunImmediately: "runImmediately",
	Mutable:        "mutable",
	Class:          "class",
}

// String returns the token type's canonical display name, used both in
// diagnostics and by Token.String() for kinds with no distinct text.
func (t TokenType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Token is one lexeme: a classified, spanned slice of the original
// source. Text is empty for kinds that always render the same (keywords,
// punctuation, most operators) and carries the literal source text for
// identifiers, literals, and comments.
type Token struct {
	Type TokenType
	Text string
	Span span.Span
}

// Symbol returns the token's textual form: Text when present, otherwise
// the fixed rendering for its TokenType. Used for the lex-then-display
// round trip and for error message rendering.
func (t Token) Symbol() string {
	if t.Text != "" {
		return t.Text
	}
	return t.Type.String()
}

func (t Token) String() string {
	return t.Symbol()
}

// IsComment reports whether t is a comment token.
func (t Token) IsComment() bool {
	return t.Type == Comment
}
