package doccomment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xs-lang/xscheck/diag"
	"github.com/xs-lang/xscheck/span"
)

func TestPlainLineCommentIsNone(t *testing.T) {
	d, diags := Parse("// just a note", span.Zero)
	assert.Equal(t, None, d.Kind)
	assert.Empty(t, diags)
}

func TestIgnoreDirectiveParsesCommaSeparatedNames(t *testing.T) {
	d, diags := Parse("// xsc-ignore: DupCase, TopStrInit", span.Zero)
	require.Equal(t, Ignore, d.Kind)
	assert.Empty(t, diags)
	assert.True(t, d.IgnoreCodes[diag.DupCase])
	assert.True(t, d.IgnoreCodes[diag.TopStrInit])
	assert.Len(t, d.IgnoreCodes, 2)
}

func TestIgnoreDirectiveAcceptsSpaceSeparatedNames(t *testing.T) {
	d, diags := Parse("// xsc-ignore: DupCase TopStrInit", span.Zero)
	assert.Empty(t, diags)
	assert.Len(t, d.IgnoreCodes, 2)
}

func TestIgnoreDirectiveWithUnknownNameEmitsMetaWarning(t *testing.T) {
	d, diags := Parse("// xsc-ignore: NotARealWarning", span.Zero)
	require.Len(t, diags, 1)
	assert.Equal(t, diag.UnknownWarningName, diags[0].WarningCode)
	assert.Contains(t, diags[0].Message(), "NotARealWarning")
	assert.Empty(t, d.IgnoreCodes)
}

func TestPlainDescBlock(t *testing.T) {
	d, diags := Parse("/**\n * Applies damage over time.\n */", span.Zero)
	assert.Empty(t, diags)
	require.Equal(t, Desc, d.Kind)
	assert.Equal(t, "Applies damage over time.", d.Text)
}

func TestFnDescWithParamsAndReturns(t *testing.T) {
	text := "/**\n" +
		" * Applies damage to a unit.\n" +
		" * @param target the unit to damage\n" +
		" * @param amount how much damage to apply\n" +
		" * @returns true if the unit died\n" +
		" */"
	d, diags := Parse(text, span.Zero)
	assert.Empty(t, diags)
	require.Equal(t, FnDesc, d.Kind)
	assert.Equal(t, "Applies damage to a unit.", d.Text)
	require.Contains(t, d.Params, "target")
	require.Contains(t, d.Params, "amount")
	assert.Equal(t, 0, d.Params["target"].Order)
	assert.Equal(t, 1, d.Params["amount"].Order)
	assert.Equal(t, "the unit to damage", d.Params["target"].Text)
	assert.Equal(t, "true if the unit died", d.Returns)
}

func TestFnDescLastReturnsWins(t *testing.T) {
	text := "/**\n * @returns first\n * @returns second\n */"
	d, _ := Parse(text, span.Zero)
	require.Equal(t, FnDesc, d.Kind)
	assert.Equal(t, "second", d.Returns)
}
