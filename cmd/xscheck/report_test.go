package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xs-lang/xscheck/checker"
	"github.com/xs-lang/xscheck/diag"
	"github.com/xs-lang/xscheck/span"
)

func TestSortDiagnosticsOrdersByPathThenSpan(t *testing.T) {
	diags := []diag.Diagnostic{
		{Path: "b.xs", Span: span.Span{Start: 1}},
		{Path: "a.xs", Span: span.Span{Start: 10}},
		{Path: "a.xs", Span: span.Span{Start: 2}},
	}
	sorted := sortDiagnostics(diags)
	require.Len(t, sorted, 3)
	assert.Equal(t, "a.xs", sorted[0].Path)
	assert.Equal(t, 2, sorted[0].Span.Start)
	assert.Equal(t, "a.xs", sorted[1].Path)
	assert.Equal(t, 10, sorted[1].Span.Start)
	assert.Equal(t, "b.xs", sorted[2].Path)
}

func TestReportReturnsFailedWhenAnUnignoredDiagnosticExists(t *testing.T) {
	c := checker.New()
	c.Src.Set("a.xs", "int x;")
	diags := []diag.Diagnostic{diag.NewUndefinedName(span.Zero, "x")}

	var buf bytes.Buffer
	failed := report(&buf, diags, c, false, false)
	assert.True(t, failed)
	assert.Contains(t, buf.String(), "undefined name")
}

func TestReportDoesNotFailWhenEveryDiagnosticIsIgnored(t *testing.T) {
	c := checker.New()
	c.Src.Set("a.xs", "int x;")
	d := diag.NewWarning(diag.DupCase, span.Zero, "1")
	d.Path = "a.xs"
	d.Ignored = true

	var buf bytes.Buffer
	failed := report(&buf, []diag.Diagnostic{d}, c, false, false)
	assert.False(t, failed)
}

func TestReportJSONEmitsOneObjectPerDiagnostic(t *testing.T) {
	c := checker.New()
	c.Src.Set("a.xs", "int x;")
	d := diag.NewUndefinedName(span.Zero, "x")
	d.Path = "a.xs"

	var buf bytes.Buffer
	failed := report(&buf, []diag.Diagnostic{d}, c, false, true)
	assert.True(t, failed)
	assert.Contains(t, buf.String(), `"severity": "error"`)
	assert.Contains(t, buf.String(), `"kind": "UndefinedName"`)
}

func TestReportWithNoDiagnosticsPrintsCleanMessage(t *testing.T) {
	c := checker.New()
	var buf bytes.Buffer
	failed := report(&buf, nil, c, false, false)
	assert.False(t, failed)
	assert.Contains(t, buf.String(), "no diagnostics")
}
