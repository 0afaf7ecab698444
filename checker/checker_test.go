package checker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xs-lang/xscheck/diag"
	"github.com/xs-lang/xscheck/lexer"
	"github.com/xs-lang/xscheck/parser"
	"github.com/xs-lang/xscheck/span"
	"github.com/xs-lang/xscheck/xsenv"
)

func checkSrc(t *testing.T, src string) *xsenv.TypeEnv {
	t.Helper()
	toks, lexErrs := lexer.Lex(src)
	require.Empty(t, lexErrs, "unexpected lex errors")
	body, comments, err := parser.Parse(toks)
	require.NoError(t, err)

	env := xsenv.New()
	c := New()
	pos := 0
	checkBody(c, "test.xs", body, env, comments, &pos, TopLevel())
	return env
}

func warningsOf(env *xsenv.TypeEnv, code diag.WarningKind) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range env.Diagnostics {
		if d.Severity == diag.SeverityWarning && d.WarningCode == code {
			out = append(out, d)
		}
	}
	return out
}

func kindsOf(env *xsenv.TypeEnv) []string {
	var out []string
	for _, d := range env.Diagnostics {
		out = append(out, d.Kind)
	}
	return out
}

func TestNumDownCastOnFloatAssignedToInt(t *testing.T) {
	env := checkSrc(t, `
		void run() {
			float f = 1.5;
			int x = 0;
			x = f;
		}
	`)
	got := warningsOf(env, diag.NumDownCast)
	require.Len(t, got, 1)
	assert.Equal(t, "this value", got[0].Keywords[0])
}

func TestNoNumPromoOnlyFiresAcrossFnCallBoundary(t *testing.T) {
	env := checkSrc(t, `
		void takesFloat(float f = 0.0) {}
		void run() {
			takesFloat(1);
		}
	`)
	require.Len(t, warningsOf(env, diag.NoNumPromo), 1)
}

func TestNoNumPromoDoesNotFireOnPlainAssignment(t *testing.T) {
	env := checkSrc(t, `
		void run() {
			float f = 0.0;
			f = 1;
		}
	`)
	assert.Empty(t, warningsOf(env, diag.NoNumPromo))
}

func TestFirstOprArithWarnsWhenIntLeadsFloat(t *testing.T) {
	env := checkSrc(t, `
		void run() {
			int a = 1;
			float b = 2.0;
			int c = a + b;
		}
	`)
	got := warningsOf(env, diag.FirstOprArith)
	require.Len(t, got, 1)
	assert.Equal(t, "int", got[0].Keywords[0])
}

func TestSwitchReportsDuplicateCasesAndDefaultsTwicePerDuplicate(t *testing.T) {
	env := checkSrc(t, `
		void run() {
			bool flag = true;
			switch (1) {
				case flag: break;
				case 1: break;
				case 1: break;
				default: break;
				default: break;
			}
		}
	`)
	assert.Len(t, warningsOf(env, diag.BoolCaseSilentCrash), 1)
	dups := warningsOf(env, diag.DupCase)
	require.Len(t, dups, 4, "two diagnostics per duplicate case, two per duplicate default")
}

func TestSwitchCaseBoolAgainstIntClauseWarnsBoolCaseSilentCrash(t *testing.T) {
	env := checkSrc(t, `
		void run() {
			bool ready = true;
			switch (1) {
				case ready: break;
			}
		}
	`)
	got := warningsOf(env, diag.BoolCaseSilentCrash)
	require.Len(t, got, 1)
	assert.Equal(t, "expression", got[0].Keywords[0])
}

func TestXscIgnoreDirectiveSuppressesTheFollowingStatementOnly(t *testing.T) {
	env := checkSrc(t, `
		int compute(int x = 0) { return x; }
		void run() {
			// xsc-ignore: DiscardedFn
			compute(1);
			compute(2);
		}
	`)
	got := warningsOf(env, diag.DiscardedFn)
	require.Len(t, got, 2, "both calls still produce a diagnostic")
	assert.True(t, got[0].Ignored, "the call right after the directive is suppressed")
	assert.False(t, got[1].Ignored, "the second call falls outside the directive's scope")
}

func TestCircularIncludeIsDetectedNotInfinitelyRecursed(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.xs")
	bPath := filepath.Join(dir, "b.xs")
	require.NoError(t, os.WriteFile(aPath, []byte(`include "b.xs";`), 0o644))
	require.NoError(t, os.WriteFile(bPath, []byte(`include "a.xs";`), 0o644))

	env := xsenv.New()
	env.IncludeDirs = []string{dir}
	c := New()
	c.CheckPath(aPath, span.Zero, env, TopLevel())

	var circular int
	for _, d := range env.Diagnostics {
		if d.Kind == "CircularDependency" {
			circular++
		}
	}
	assert.Equal(t, 1, circular)
}

func TestSelfInclude(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.xs")
	require.NoError(t, os.WriteFile(aPath, []byte(`include "a.xs";`), 0o644))

	env := xsenv.New()
	env.IncludeDirs = []string{dir}
	c := New()
	c.CheckPath(aPath, span.Zero, env, TopLevel())

	assert.Contains(t, kindsOf(env), "CircularDependency")
}

func TestUnresolvedIncludeEmitsUnresolvedInclude(t *testing.T) {
	env := checkSrc(t, `include "does-not-exist.xs";`)
	require.Len(t, env.Diagnostics, 1)
	assert.Equal(t, "UnresolvedInclude", env.Diagnostics[0].Kind)
}

func TestRedefinedFunctionRequiresMutable(t *testing.T) {
	env := checkSrc(t, `
		int add(int a = 0, int b = 0) { return a + b; }
		int add(int a = 0, int b = 0) { return a + b; }
	`)
	found := false
	for _, d := range env.Diagnostics {
		if d.Kind == "RedefinedName" {
			found = true
			assert.Contains(t, d.Help, "only mutable functions may be overridden")
		}
	}
	assert.True(t, found)
}

func TestMutableFunctionRedefinitionWithMatchingSignatureIsAllowed(t *testing.T) {
	env := checkSrc(t, `
		mutable int add(int a = 0, int b = 0) { return a + b; }
		mutable int add(int a = 0, int b = 0) { return a - b; }
	`)
	for _, d := range env.Diagnostics {
		assert.NotEqual(t, "RedefinedName", d.Kind)
	}
}

func TestMutableFunctionRedefinitionWithDifferentSignatureIsRejected(t *testing.T) {
	env := checkSrc(t, `
		mutable int add(int a = 0, int b = 0) { return a + b; }
		mutable float add(int a = 0, int b = 0) { return 0.0; }
	`)
	found := false
	for _, d := range env.Diagnostics {
		if d.Kind == "RedefinedName" {
			found = true
			assert.Contains(t, d.Help, "type signatures of mutable functions must be the same")
		}
	}
	assert.True(t, found)
}

func TestForLoopVariableRedefinitionIsNotFlagged(t *testing.T) {
	env := checkSrc(t, `
		void run() {
			for (i = 0; < 10) {}
			for (i = 0; < 5) {}
		}
	`)
	for _, d := range env.Diagnostics {
		assert.NotEqual(t, "RedefinedName", d.Kind)
	}
}

func TestClassAlwaysWarnsUnusableAndFlagsDuplicateMembers(t *testing.T) {
	env := checkSrc(t, `
		class Unit {
			int hp;
			int hp;
		};
	`)
	assert.Len(t, warningsOf(env, diag.UnusableClasses), 1)
	found := false
	for _, d := range env.Diagnostics {
		if d.Kind == "RedefinedName" {
			found = true
		}
	}
	assert.True(t, found, "duplicate member hp should be flagged")
}

func TestBreakOutsideLoopSubstitutesReturnKeyword(t *testing.T) {
	env := checkSrc(t, `
		void run() {
			break;
		}
	`)
	require.Len(t, env.Diagnostics, 1)
	assert.Equal(t, "return", env.Diagnostics[0].Keywords[0])
}

func TestBreakInsideWhileIsAllowed(t *testing.T) {
	env := checkSrc(t, `
		void run() {
			while (true) {
				break;
			}
		}
	`)
	assert.Empty(t, env.Diagnostics)
}

func TestIntLiteralOverNineDigitsIsSyntaxNotWarning(t *testing.T) {
	env := checkSrc(t, `
		void run() {
			int x = 1234567890;
		}
	`)
	require.Len(t, env.Diagnostics, 1)
	assert.Equal(t, diag.SeverityError, env.Diagnostics[0].Severity)
	assert.Equal(t, "Syntax", env.Diagnostics[0].Kind)
}

func TestDiscardedNonFnCallIsSyntaxError(t *testing.T) {
	env := checkSrc(t, `
		void run() {
			1 + 1;
		}
	`)
	require.Len(t, env.Diagnostics, 1)
	assert.Equal(t, "Syntax", env.Diagnostics[0].Kind)
}

func TestDiscardedVoidCallProducesNoWarning(t *testing.T) {
	env := checkSrc(t, `
		void log() {}
		void run() {
			log();
		}
	`)
	assert.Empty(t, env.Diagnostics)
}

func TestUndefinedNameSuggestsClosestMatch(t *testing.T) {
	env := checkSrc(t, `
		void run() {
			int health = 1;
			helth = 2;
		}
	`)
	require.Len(t, env.Diagnostics, 1)
	assert.Equal(t, "UndefinedName", env.Diagnostics[0].Kind)
	assert.Contains(t, env.Diagnostics[0].Help, "health")
}

func TestTopLevelStringInitializerWarnsLazyEvaluation(t *testing.T) {
	env := checkSrc(t, `string greeting = "hi";`)
	require.Len(t, warningsOf(env, diag.TopStrInit), 1)
}
