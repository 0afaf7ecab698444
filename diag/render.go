package diag

import (
	"fmt"
	"strings"
)

// Position is a 1-based line/column pair. Lines and columns are derived
// from a byte Span only at this presentation boundary; nothing upstream
// of rendering (lexer, parser, checker) carries them.
type Position struct {
	Line   int
	Column int
}

// PositionOf converts a byte offset into a 1-based line/column pair.
func PositionOf(src string, offset int) Position {
	line, col := 1, 1
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Line: line, Column: col}
}

// Snippet renders a compiler-style excerpt pointing at pos within src:
// a "--> path:line:col" header, the offending source line, and a caret
// under the column.
func Snippet(src, path string, pos Position) string {
	lines := strings.Split(src, "\n")
	var lineContent string
	if pos.Line-1 >= 0 && pos.Line-1 < len(lines) {
		lineContent = lines[pos.Line-1]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "  --> %s:%d:%d\n", path, pos.Line, pos.Column)
	b.WriteString("   |\n")
	fmt.Fprintf(&b, "%2d | %s\n", pos.Line, lineContent)
	b.WriteString("   | ")
	if pos.Column > 0 && pos.Column <= len(lineContent)+1 {
		b.WriteString(strings.Repeat(" ", pos.Column-1) + "^")
	}
	return b.String()
}

// Render produces the full plain-text report for one diagnostic:
// severity, taxonomy tag, substituted message, code snippet, and help
// note. Coloring is applied by the CLI front-end (cmd/xscheck/colors.go),
// not here, so the core stays usable by a future non-terminal front-end.
func Render(d Diagnostic, src, path string) string {
	pos := PositionOf(src, d.Span.Start)
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%s]: %s\n", d.Severity, d.Kind, d.Message())
	b.WriteString(Snippet(src, path, pos))
	if d.Help != "" {
		b.WriteString("\n   = help: " + d.Help)
	}
	return b.String()
}
