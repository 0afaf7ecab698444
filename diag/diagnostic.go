// Package diag defines the diagnostic wire shape shared by the lexer,
// parser, and checker, plus its presentation helpers (message templates,
// code-snippet rendering, "did you mean" suggestions).
package diag

import (
	"strconv"
	"strings"

	"github.com/xs-lang/xscheck/span"
)

// Severity distinguishes a hard error from a catalog warning.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// WarningKind is the stable catalog of lint-style warnings, used both as
// CLI --ignores names and as the `xsc-ignore:` directive vocabulary.
// Values are the catalog's literal numeric codes.
type WarningKind int

const (
	TopStrInit          WarningKind = 100
	DupCase             WarningKind = 101
	DiscardedFn         WarningKind = 102
	BreakPt             WarningKind = 103
	UnusableClasses     WarningKind = 104
	FirstOprArith       WarningKind = 105
	CmpSilentCrash      WarningKind = 106
	BoolCaseSilentCrash WarningKind = 107
	NumDownCast         WarningKind = 108
	NoNumPromo          WarningKind = 109

	// UnknownWarningName is a meta-warning raised against an xsc-ignore:
	// entry that doesn't name a catalog warning (an unknown --ignores
	// name is a CLI error instead). It cannot itself be ignored.
	UnknownWarningName WarningKind = 1000
)

var warningNames = map[string]WarningKind{
	"TopStrInit":          TopStrInit,
	"DupCase":             DupCase,
	"DiscardedFn":         DiscardedFn,
	"BreakPt":             BreakPt,
	"UnusableClasses":     UnusableClasses,
	"FirstOprArith":       FirstOprArith,
	"CmpSilentCrash":      CmpSilentCrash,
	"BoolCaseSilentCrash": BoolCaseSilentCrash,
	"NumDownCast":         NumDownCast,
	"NoNumPromo":          NoNumPromo,
}

var warningDisplay = func() map[WarningKind]string {
	m := make(map[WarningKind]string, len(warningNames))
	for name, kind := range warningNames {
		m[kind] = name
	}
	m[UnknownWarningName] = "UnknownWarningName"
	return m
}()

func (w WarningKind) String() string {
	if name, ok := warningDisplay[w]; ok {
		return name
	}
	return "Warning" + strconv.Itoa(int(w))
}

// LookupWarning resolves a case-sensitive catalog name (as given on the
// CLI --ignores flag or inside an xsc-ignore: directive) to its code.
func LookupWarning(name string) (WarningKind, bool) {
	w, ok := warningNames[name]
	return w, ok
}

var warningTemplates = map[WarningKind]string{
	TopStrInit:          "top-level string initializer for {0} is evaluated lazily by the host engine",
	DupCase:             "duplicate case {0} in this switch statement",
	DiscardedFn:         "return value of {0} is discarded",
	BreakPt:             "breakpoint halts execution irrecoverably in the host engine",
	UnusableClasses:     "classes are defined but never instantiable from XS",
	FirstOprArith:       "first operand {0} is implicitly converted to int before this operation",
	CmpSilentCrash:      "comparing {0} with {1} silently crashes the host at runtime; use == or != instead",
	BoolCaseSilentCrash: "case {0} compares an int switch clause against a bool value",
	NumDownCast:         "{0} is downcast from float to int here, losing precision",
	NoNumPromo:          "{0} is not promoted to float for this call; pass a float literal explicitly",
	UnknownWarningName:  "{0} is not a recognized warning name",
}

// Diagnostic is the single wire shape for every lexer, parser, and
// checker finding: a taxonomy tag, primary span, a message template
// substituted with Keywords at render time, an optional help note, and
// a severity.
type Diagnostic struct {
	Severity    Severity
	Kind        string // taxonomy tag, e.g. "TypeMismatch", "Syntax", or a warning name
	WarningCode WarningKind // meaningful only when Severity == SeverityWarning
	Path        string      // file this diagnostic was raised against, set by the checker
	Span        span.Span
	Template    string
	Keywords    []string
	Help        string
	Ignored     bool
}

// Message substitutes {0}, {1}, … in Template with Keywords in order.
func (d Diagnostic) Message() string {
	return substitute(d.Template, d.Keywords)
}

func substitute(template string, keywords []string) string {
	var b strings.Builder
	for i := 0; i < len(template); i++ {
		if template[i] == '{' {
			if j := strings.IndexByte(template[i:], '}'); j > 0 {
				if idx, err := strconv.Atoi(template[i+1 : i+j]); err == nil && idx >= 0 && idx < len(keywords) {
					b.WriteString(keywords[idx])
					i += j
					continue
				}
			}
		}
		b.WriteByte(template[i])
	}
	return b.String()
}

func newError(kind, template string, sp span.Span, keywords ...string) Diagnostic {
	return Diagnostic{Severity: SeverityError, Kind: kind, Span: sp, Template: template, Keywords: keywords}
}

func NewLexerError(sp span.Span, msg string) Diagnostic {
	return newError("LexerError", msg, sp)
}

func NewParseError(sp span.Span, msg string) Diagnostic {
	return newError("ParseError", msg, sp)
}

func NewFileErr(sp span.Span, path string, cause error) Diagnostic {
	return newError("FileErr", "could not read {0}: {1}", sp, path, cause.Error())
}

func NewCircularDependency(sp span.Span, path string) Diagnostic {
	return newError("CircularDependency", "include of {0} forms a cycle", sp, path)
}

func NewExtraArg(sp span.Span, fnName string) Diagnostic {
	return newError("ExtraArg", "unexpected extra argument in call to {0}", sp, fnName)
}

func NewTypeMismatch(sp span.Span, expected, actual string) Diagnostic {
	return newError("TypeMismatch", "expected {0}, found {1}", sp, expected, actual)
}

func NewNotCallable(sp span.Span, name string) Diagnostic {
	return newError("NotCallable", "{0} is not callable", sp, name)
}

func NewOpMismatch(sp span.Span, op, left, right string) Diagnostic {
	return newError("OpMismatch", "operator {0} is not defined for {1} and {2}", sp, op, left, right)
}

func NewUndefinedName(sp span.Span, name string) Diagnostic {
	return newError("UndefinedName", "undefined name {0}", sp, name)
}

// NewRedefinedName records the original declaration's span in Help,
// which the presentation layer renders as a secondary note.
func NewRedefinedName(sp span.Span, name string, original span.Span) Diagnostic {
	d := newError("RedefinedName", "{0} is already defined", sp, name)
	d.Help = "first defined at " + original.String()
	return d
}

func NewUnresolvedInclude(sp span.Span, path string) Diagnostic {
	return newError("UnresolvedInclude", "could not resolve include {0}", sp, path)
}

// NewRedefinedNameWithNote is NewRedefinedName with an extra note
// appended to Help, used where the original carries a second note
// alongside the original-declaration location (e.g. a mutable
// function's signature must match, or only mutable functions may be
// overridden).
func NewRedefinedNameWithNote(sp span.Span, name string, original span.Span, note string) Diagnostic {
	d := NewRedefinedName(sp, name, original)
	d.Help = d.Help + "; " + note
	return d
}

func NewSyntax(sp span.Span, template string, keywords ...string) Diagnostic {
	return newError("Syntax", template, sp, keywords...)
}

// NewWarning builds a catalog warning from its code, looking up the
// stable message template registered above.
func NewWarning(code WarningKind, sp span.Span, keywords ...string) Diagnostic {
	return Diagnostic{
		Severity:    SeverityWarning,
		Kind:        code.String(),
		WarningCode: code,
		Span:        sp,
		Template:    warningTemplates[code],
		Keywords:    keywords,
	}
}
