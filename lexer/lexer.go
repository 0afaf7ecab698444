package lexer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xs-lang/xscheck/span"
)

// ASCII classification tables, built once in init() rather than branching
// per byte at scan time.
var (
	isWhitespace [128]bool
	isDigitTbl   [128]bool
	isIdentStart [128]bool
	isIdentPart  [128]bool
	isOperator   [128]bool
	isPunct      [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isWhitespace[i] = ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
		isDigitTbl[i] = '0' <= ch && ch <= '9'
		isIdentStart[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
		isIdentPart[i] = isIdentStart[i] || isDigitTbl[i]
		isOperator[i] = strings.IndexByte("+-*/%<>=!&|", ch) >= 0
		isPunct[i] = strings.IndexByte("=(){};:,.", ch) >= 0
	}
}

// keywords are matched case-sensitively. Primitive type names are
// matched separately, case-insensitively (primitiveTypes below) — a
// deliberately preserved asymmetry.
var keywords = map[string]TokenType{
	"include":        Include,
	"switch":         Switch,
	"case":           Case,
	"while":          While,
	"break":          Break,
	"default":        Default,
	"rule":           Rule,
	"if":             If,
	"then":           Then,
	"else":           Else,
	"goto":           Goto,
	"label":          Label,
	"for":            For,
	"dbg":            Dbg,
	"return":         Return,
	"void":           Void,
	"const":          Const,
	"priority":       Priority,
	"minInterval":    MinInterval,
	"maxInterval":    MaxInterval,
	"highFrequency":  HighFrequency,
	"active":         Active,
	"inactive":       Inactive,
	"group":          Group,
	"breakpoint":     Breakpoint,
	"static":         Static,
	"continue":       Continue,
	"extern":         Extern,
	"export":         Export,
	"runImmediately": RunImmediately,
	"mutable":        Mutable,
	"class":          Class,
}

var primitiveTypes = map[string]TokenType{
	"int":    Int,
	"bool":   Bool,
	"float":  Float,
	"string": String,
	"vector": Vector,
}

var operatorTable = map[string]TokenType{
	"++": DPlus,
	"+":  Plus,
	"--": DMinus,
	"-":  Minus,
	"*":  Star,
	"/":  FSlash,
	"%":  FSlash, // percent folds into the same token kind as divide
	"<=": Le,
	"<":  Lt,
	">=": Ge,
	">":  Gt,
	"==": Deq,
	"!=": Neq,
	"&&": DAmp,
	"||": DPipe,
	"!":  Excl,
}

var punctTable = map[byte]TokenType{
	'=': Eq,
	'(': LParen,
	')': RParen,
	'{': LBrace,
	'}': RBrace,
	';': SColon,
	':': Colon,
	',': Comma,
	'.': Dot,
}

// Error is a lexical failure: an illegal character or an unterminated
// string/block comment.
type Error struct {
	Span span.Span
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Lexer scans XS source byte-by-byte into a flat token stream.
type Lexer struct {
	src    string
	pos    int
	logger *slog.Logger
}

// New constructs a Lexer over src. A nil logger falls back to slog's
// package-level default.
func New(src string, logger *slog.Logger) *Lexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lexer{src: src, logger: logger}
}

// Lex tokenizes src in one pass, returning the full token stream
// (including comments, and a trailing EOF token) plus any lexical
// errors encountered. After an error, scanning resumes past the
// offending text (an illegal character or invalid operator; for an
// unterminated string or block comment, the rest of the input), so one
// bad character does not hide later errors.
func Lex(src string) ([]Token, []error) {
	return New(src, nil).Lex()
}

func (l *Lexer) Lex() ([]Token, []error) {
	var toks []Token
	var errs []error

	for {
		l.skipWhitespace()
		if l.pos >= len(l.src) {
			break
		}
		start := l.pos
		ch := l.src[l.pos]

		switch {
		case ch == '/' && l.peek(1) == '/':
			toks = append(toks, l.lexLineComment())

		case ch == '/' && l.peek(1) == '*':
			tok, err := l.lexBlockComment()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			toks = append(toks, tok)

		case ch == '"':
			tok, err := l.lexString()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			toks = append(toks, tok)

		case isAsciiDigit(ch):
			toks = append(toks, l.lexNumber())

		case isAscii(ch) && isIdentStart[ch]:
			toks = append(toks, l.lexIdentOrKeyword())

		// '=' is a member of both isOperator ("+-*/%<>=!&|") and isPunct
		// ("=(){};:,."), so the operator arm must run first and attempt
		// the two-byte `==` match before anything falls back to
		// single-char `=` punctuation; otherwise `==` would split into
		// two Eq tokens and never produce Deq.
		case isAscii(ch) && isOperator[ch]:
			tok, err := l.lexOperator()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			toks = append(toks, tok)

		case isAscii(ch) && isPunct[ch]:
			l.pos++
			toks = append(toks, Token{Type: punctTable[ch], Span: span.Span{Start: start, End: l.pos}})

		default:
			l.pos++
			errs = append(errs, &Error{
				Span: span.Span{Start: start, End: l.pos},
				Msg:  fmt.Sprintf("unexpected character %q", ch),
			})
		}
	}

	eofPos := len(l.src)
	toks = append(toks, Token{Type: EOF, Span: span.Span{Start: eofPos, End: eofPos}})
	l.logger.Debug("lex complete", "tokens", len(toks), "errors", len(errs))
	return toks, errs
}

func isAscii(ch byte) bool     { return ch < 128 }
func isAsciiDigit(ch byte) bool { return ch < 128 && isDigitTbl[ch] }

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && isAscii(l.src[l.pos]) && isWhitespace[l.src[l.pos]] {
		l.pos++
	}
}

func (l *Lexer) lexLineComment() Token {
	start := l.pos
	l.pos += 2 // "//"
	for l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
		l.pos++
	}
	return Token{Type: Comment, Text: l.src[start:l.pos], Span: span.Span{Start: start, End: l.pos}}
}

func (l *Lexer) lexBlockComment() (Token, error) {
	start := l.pos
	l.pos += 2 // "/*"
	for {
		if l.pos >= len(l.src) {
			return Token{}, &Error{Span: span.Span{Start: start, End: l.pos}, Msg: "unterminated block comment"}
		}
		if l.src[l.pos] == '*' && l.peek(1) == '/' {
			l.pos += 2
			break
		}
		l.pos++
	}
	return Token{Type: Comment, Text: l.src[start:l.pos], Span: span.Span{Start: start, End: l.pos}}, nil
}

// lexString scans a double-quoted string literal. The stored text is the
// raw, unprocessed source slice including the surrounding quotes; escape
// sequences are resolved lazily at the point of use, by
// ast.Literal.Unquote.
func (l *Lexer) lexString() (Token, error) {
	start := l.pos
	l.pos++ // opening quote
	for {
		if l.pos >= len(l.src) {
			return Token{}, &Error{Span: span.Span{Start: start, End: l.pos}, Msg: "unterminated string literal"}
		}
		ch := l.src[l.pos]
		if ch == '\\' {
			l.pos++
			if l.pos < len(l.src) {
				l.pos++
			}
			continue
		}
		if ch == '"' {
			l.pos++
			break
		}
		l.pos++
	}
	return Token{Type: StrLit, Text: l.src[start:l.pos], Span: span.Span{Start: start, End: l.pos}}, nil
}

func (l *Lexer) lexNumber() Token {
	start := l.pos
	for l.pos < len(l.src) && isAsciiDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && isAsciiDigit(l.src[l.pos+1]) {
		l.pos++ // '.'
		for l.pos < len(l.src) && isAsciiDigit(l.src[l.pos]) {
			l.pos++
		}
		return Token{Type: FloatLit, Text: l.src[start:l.pos], Span: span.Span{Start: start, End: l.pos}}
	}
	return Token{Type: IntLit, Text: l.src[start:l.pos], Span: span.Span{Start: start, End: l.pos}}
}

// lexIdentOrKeyword performs maximal-munch scanning of an identifier,
// then classifies it: exact "true"/"false" is a bool literal, else the
// case-sensitive keyword table, else the case-insensitive primitive-type
// table, else a plain Identifier. Maximal munch means a word like
// "truely" is always scanned whole, never split into "true" + "ly".
func (l *Lexer) lexIdentOrKeyword() Token {
	start := l.pos
	l.pos++
	for l.pos < len(l.src) && isAscii(l.src[l.pos]) && isIdentPart[l.src[l.pos]] {
		l.pos++
	}
	text := l.src[start:l.pos]
	sp := span.Span{Start: start, End: l.pos}

	if text == "true" || text == "false" {
		return Token{Type: BoolLit, Text: text, Span: sp}
	}
	if kw, ok := keywords[text]; ok {
		return Token{Type: kw, Span: sp}
	}
	if prim, ok := primitiveTypes[strings.ToLower(text)]; ok {
		return Token{Type: prim, Span: sp}
	}
	return Token{Type: Identifier, Text: text, Span: sp}
}

func (l *Lexer) lexOperator() (Token, error) {
	start := l.pos
	end := l.pos
	for end < len(l.src) && end < start+2 && isAscii(l.src[end]) && isOperator[l.src[end]] {
		end++
	}
	// Greedily try the two-character slice first, then fall back to one.
	if end > start+1 {
		if tt, ok := operatorTable[l.src[start:end]]; ok {
			l.pos = end
			return Token{Type: tt, Span: span.Span{Start: start, End: end}}, nil
		}
		end--
	}
	if tt, ok := operatorTable[l.src[start:end]]; ok {
		l.pos = end
		return Token{Type: tt, Span: span.Span{Start: start, End: end}}, nil
	}
	// '=' has no single-char entry in operatorTable: standalone it is
	// punctuation (assignment), not an operator.
	if tt, ok := punctTable[l.src[start]]; ok {
		l.pos = end
		return Token{Type: tt, Span: span.Span{Start: start, End: end}}, nil
	}
	l.pos = end
	return Token{}, &Error{Span: span.Span{Start: start, End: end}, Msg: fmt.Sprintf("invalid operator %q", l.src[start:end])}
}
