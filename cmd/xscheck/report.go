package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/xs-lang/xscheck/checker"
	"github.com/xs-lang/xscheck/diag"
)

// jsonDiagnostic is the --json wire shape: a flat, language-agnostic
// record a tool integration can consume without linking this module.
type jsonDiagnostic struct {
	Severity string `json:"severity"`
	Kind     string `json:"kind"`
	Path     string `json:"path"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	Help     string `json:"help,omitempty"`
	Ignored  bool   `json:"ignored"`
}

// sortDiagnostics orders diagnostics by path then position, so repeated
// runs over the same input produce a stable, diffable report.
func sortDiagnostics(diags []diag.Diagnostic) []diag.Diagnostic {
	sorted := make([]diag.Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Path != sorted[j].Path {
			return sorted[i].Path < sorted[j].Path
		}
		return sorted[i].Span.Start < sorted[j].Span.Start
	})
	return sorted
}

// report writes diags to w as either the colored text report or a JSON
// array, and reports whether the run should exit non-zero: any error,
// or any warning that was not suppressed by --ignores/xsc-ignore.
func report(w io.Writer, diags []diag.Diagnostic, c *checker.Checker, useColor, asJSON bool) bool {
	sorted := sortDiagnostics(diags)
	if asJSON {
		return reportJSON(w, sorted, c)
	}
	return reportText(w, sorted, c, useColor)
}

func reportText(w io.Writer, diags []diag.Diagnostic, c *checker.Checker, useColor bool) bool {
	failed := false
	for _, d := range diags {
		if !d.Ignored {
			failed = true
		}
		src, _ := c.Src.Get(d.Path)
		pos := diag.PositionOf(src, d.Span.Start)
		tag := fmt.Sprintf("%s[%s]", d.Severity, d.Kind)
		suffix := ""
		if d.Ignored {
			suffix = Colorize(" (ignored)", ColorGray, useColor)
		}
		fmt.Fprintf(w, "%s: %s%s\n", Colorize(tag, severityColor(d.Severity.String()), useColor), d.Message(), suffix)
		fmt.Fprintln(w, diag.Snippet(src, d.Path, pos))
		if d.Help != "" {
			fmt.Fprintf(w, "%s %s\n", Colorize("   = help:", ColorCyan, useColor), d.Help)
		}
		fmt.Fprintln(w)
	}
	if len(diags) == 0 {
		fmt.Fprintln(w, Colorize("no diagnostics", ColorGreen, useColor))
	}
	return failed
}

func reportJSON(w io.Writer, diags []diag.Diagnostic, c *checker.Checker) bool {
	failed := false
	out := make([]jsonDiagnostic, 0, len(diags))
	for _, d := range diags {
		if !d.Ignored {
			failed = true
		}
		src, _ := c.Src.Get(d.Path)
		pos := diag.PositionOf(src, d.Span.Start)
		out = append(out, jsonDiagnostic{
			Severity: d.Severity.String(),
			Kind:     d.Kind,
			Path:     d.Path,
			Line:     pos.Line,
			Column:   pos.Column,
			Message:  d.Message(),
			Help:     d.Help,
			Ignored:  d.Ignored,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
	return failed
}
