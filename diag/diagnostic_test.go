package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xs-lang/xscheck/span"
)

func TestMessageSubstitutesKeywordsInOrder(t *testing.T) {
	d := NewTypeMismatch(span.Span{Start: 0, End: 1}, "int", "string")
	assert.Equal(t, "expected int, found string", d.Message())
}

func TestWarningLookupRoundTrip(t *testing.T) {
	code, ok := LookupWarning("DupCase")
	assert.True(t, ok)
	assert.Equal(t, DupCase, code)
	assert.Equal(t, "DupCase", code.String())
}

func TestUnknownWarningNameNotInLookupTable(t *testing.T) {
	_, ok := LookupWarning("NotARealWarning")
	assert.False(t, ok)
}

func TestUnknownWarningNameCannotBeIgnored(t *testing.T) {
	// UnknownWarningName is a meta-warning, deliberately absent from the
	// name table that backs --ignores / xsc-ignore: resolution.
	for name := range warningNames {
		assert.NotEqual(t, UnknownWarningName, warningNames[name])
	}
}

func TestNewFileErrWrapsCause(t *testing.T) {
	d := NewFileErr(span.Zero, "missing.xs", errors.New("permission denied"))
	assert.Contains(t, d.Message(), "missing.xs")
	assert.Contains(t, d.Message(), "permission denied")
}

func TestRedefinedNameCarriesOriginalLocation(t *testing.T) {
	original := span.Span{Start: 5, End: 10}
	d := NewRedefinedName(span.Span{Start: 50, End: 55}, "health", original)
	assert.Contains(t, d.Help, original.String())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
}
