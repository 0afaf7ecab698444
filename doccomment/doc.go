// Package doccomment classifies a raw comment token's text into one of
// XS's four "doxygen" doc-comment variants.
package doccomment

import (
	"strings"

	"github.com/xs-lang/xscheck/diag"
	"github.com/xs-lang/xscheck/span"
)

type Kind int

const (
	None Kind = iota
	Ignore
	Desc
	FnDesc
)

// ParamDoc is one @param tag's declaration-order index and text.
type ParamDoc struct {
	Order int
	Text  string
}

// Doc is a classified doc comment. Only the fields relevant to Kind are
// populated; the rest are left at their zero value.
type Doc struct {
	Kind Kind

	// Ignore
	IgnoreCodes map[diag.WarningKind]bool

	// Desc and FnDesc
	Text string

	// FnDesc only
	Params  map[string]ParamDoc
	Returns string
}

const ignorePrefix = "// xsc-ignore: "

// Parse classifies one comment's raw text (quotes/delimiters included,
// e.g. "// xsc-ignore: DupCase" or a full "/** ... */" block).
//
// An xsc-ignore: directive does not attach to any identifier: the
// checker installs its IgnoreCodes as the environment's current-ignores
// set for the single statement immediately following the comment, then
// releases it. An unrecognized warning name inside the directive raises
// the UnknownWarningName meta-warning rather than failing the parse.
func Parse(text string, sp span.Span) (Doc, []diag.Diagnostic) {
	if strings.HasPrefix(text, ignorePrefix) {
		return parseIgnore(text, sp)
	}
	if strings.HasPrefix(text, "/**") {
		return parseDocBlock(text)
	}
	return Doc{Kind: None}, nil
}

func parseIgnore(text string, sp span.Span) (Doc, []diag.Diagnostic) {
	rest := text[len(ignorePrefix):]
	fields := strings.FieldsFunc(rest, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })

	codes := make(map[diag.WarningKind]bool, len(fields))
	var diags []diag.Diagnostic
	for _, f := range fields {
		name := strings.TrimSpace(f)
		if name == "" {
			continue
		}
		code, ok := diag.LookupWarning(name)
		if !ok {
			diags = append(diags, diag.NewWarning(diag.UnknownWarningName, sp, name))
			continue
		}
		codes[code] = true
	}
	return Doc{Kind: Ignore, IgnoreCodes: codes}, diags
}

// parseDocBlock handles a "/** ... */" block, splitting it into a plain
// Desc when it carries no @param/@returns tags, or an FnDesc when it
// does. The last @returns tag wins if more than one is present.
func parseDocBlock(text string) (Doc, []diag.Diagnostic) {
	body := strings.TrimSuffix(strings.TrimPrefix(text, "/**"), "*/")

	var descLines []string
	params := map[string]ParamDoc{}
	var returns string
	order := 0
	isFn := false

	for _, raw := range strings.Split(body, "\n") {
		line := cleanDocLine(raw)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "@param"):
			isFn = true
			name, desc := splitFirstWord(strings.TrimPrefix(line, "@param"))
			params[name] = ParamDoc{Order: order, Text: desc}
			order++
		case strings.HasPrefix(line, "@returns"):
			isFn = true
			returns = strings.TrimSpace(strings.TrimPrefix(line, "@returns"))
		default:
			descLines = append(descLines, line)
		}
	}

	desc := strings.TrimSpace(strings.Join(descLines, " "))
	if isFn {
		return Doc{Kind: FnDesc, Text: desc, Params: params, Returns: returns}, nil
	}
	return Doc{Kind: Desc, Text: desc}, nil
}

func cleanDocLine(raw string) string {
	line := strings.TrimSpace(raw)
	line = strings.TrimPrefix(line, "*")
	return strings.TrimSpace(line)
}

func splitFirstWord(s string) (first, rest string) {
	s = strings.TrimSpace(s)
	idx := strings.IndexByte(s, ' ')
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx+1:])
}
