package diag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xs-lang/xscheck/span"
)

func TestPositionOfFirstLine(t *testing.T) {
	pos := PositionOf("int x = 1;", 4)
	assert.Equal(t, Position{Line: 1, Column: 5}, pos)
}

func TestPositionOfAdvancesPastNewlines(t *testing.T) {
	src := "int x;\nint y;\nint z;"
	pos := PositionOf(src, len("int x;\nint y;\n")+4)
	assert.Equal(t, 3, pos.Line)
	assert.Equal(t, 5, pos.Column)
}

func TestSnippetPointsCaretAtColumn(t *testing.T) {
	src := "int x = 1\n"
	snippet := Snippet(src, "main.xs", Position{Line: 1, Column: 9})
	lines := splitLines(snippet)
	require.Len(t, lines, 4)
	assert.Equal(t, "  --> main.xs:1:9", lines[0])
	assert.Equal(t, " 1 | int x = 1", lines[2])
	assert.Equal(t, "   | "+strings.Repeat(" ", 8)+"^", lines[3])
}

func TestRenderIncludesHelpNoteWhenPresent(t *testing.T) {
	d := NewUndefinedName(span.Span{Start: 0, End: 2}, "hp")
	d = WithDidYouMean(d, "hp2")
	out := Render(d, "hp = 1;", "main.xs")
	assert.Contains(t, out, "did you mean `hp2`?")
	assert.Contains(t, out, "error[UndefinedName]")
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
