package xsenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xs-lang/xscheck/ast"
	"github.com/xs-lang/xscheck/diag"
	"github.com/xs-lang/xscheck/span"
)

func TestLookupPrefersInnermostLocalScope(t *testing.T) {
	env := New()
	env.Declare(IdInfo{Name: "x", Type: ast.Int})
	env.PushScope()
	env.SetLocal(IdInfo{Name: "x", Type: ast.Float})

	info, ok := env.Lookup("x")
	require.True(t, ok)
	assert.True(t, info.Type.Equal(ast.Float))

	env.PopScope()
	info, ok = env.Lookup("x")
	require.True(t, ok)
	assert.True(t, info.Type.Equal(ast.Int))
}

func TestDeclareRejectsExistingNameAcrossScopes(t *testing.T) {
	env := New()
	_, ok := env.Declare(IdInfo{Name: "health", Type: ast.Int})
	require.True(t, ok)

	env.PushScope()
	original, ok := env.Declare(IdInfo{Name: "health", Type: ast.Float})
	assert.False(t, ok)
	assert.True(t, original.Type.Equal(ast.Int), "conflicting original is the global, not a fresh local entry")
}

func TestSetLocalOverwritesWithoutConflict(t *testing.T) {
	env := New()
	env.PushScope()
	env.Declare(IdInfo{Name: "i", Type: ast.Int})
	env.SetLocal(IdInfo{Name: "i", Type: ast.Int})

	info, ok := env.Lookup("i")
	require.True(t, ok)
	assert.True(t, info.Type.Equal(ast.Int))
}

func TestDeclareLocalForcePanicsWithoutAnActiveScope(t *testing.T) {
	env := New()
	assert.Panics(t, func() {
		env.DeclareLocalForce(IdInfo{Name: "x", Type: ast.Int})
	})
}

func TestTempIgnoreRestoresPreviousSetOnRelease(t *testing.T) {
	env := New()
	assert.False(t, env.IsIgnored(diag.DupCase))

	outer := env.TempIgnore(map[diag.WarningKind]bool{diag.DupCase: true})
	assert.True(t, env.IsIgnored(diag.DupCase))
	assert.False(t, env.IsIgnored(diag.NumDownCast))

	inner := env.TempIgnore(map[diag.WarningKind]bool{diag.NumDownCast: true})
	assert.False(t, env.IsIgnored(diag.DupCase))
	assert.True(t, env.IsIgnored(diag.NumDownCast))

	inner()
	assert.True(t, env.IsIgnored(diag.DupCase))

	outer()
	assert.False(t, env.IsIgnored(diag.DupCase))
}

func TestWithFnEnvNestsAndRestores(t *testing.T) {
	env := New()
	assert.Nil(t, env.CurrentFnEnv())

	intRet := ast.Int
	release := env.WithFnEnv(&intRet)
	require.NotNil(t, env.CurrentFnEnv())
	assert.True(t, env.CurrentFnEnv().Equal(ast.Int))

	voidRet := ast.Void
	innerRelease := env.WithFnEnv(&voidRet)
	assert.True(t, env.CurrentFnEnv().Equal(ast.Void))

	innerRelease()
	assert.True(t, env.CurrentFnEnv().Equal(ast.Int))

	release()
	assert.Nil(t, env.CurrentFnEnv())
}

func TestEmitMarksIgnoredWhenWarningCodeSuppressed(t *testing.T) {
	env := New()
	release := env.TempIgnore(map[diag.WarningKind]bool{diag.DupCase: true})
	defer release()

	env.Emit(diag.NewWarning(diag.DupCase, span.Zero, "1"))
	require.Len(t, env.Diagnostics, 1)
	assert.True(t, env.Diagnostics[0].Ignored)
}

func TestEmitDoesNotMarkErrorsIgnored(t *testing.T) {
	env := New()
	release := env.TempIgnore(map[diag.WarningKind]bool{diag.DupCase: true})
	defer release()

	env.Emit(diag.NewUndefinedName(span.Zero, "x"))
	require.Len(t, env.Diagnostics, 1)
	assert.False(t, env.Diagnostics[0].Ignored)
}

func TestNamesReturnsLocalsBeforeGlobalsDeduplicated(t *testing.T) {
	env := New()
	env.Declare(IdInfo{Name: "health", Type: ast.Int})
	env.PushScope()
	env.Declare(IdInfo{Name: "mana", Type: ast.Int})

	names := env.Names()
	assert.Contains(t, names, "health")
	assert.Contains(t, names, "mana")
	assert.Len(t, names, 2)
}

func TestAddDependencyAccumulatesPerPath(t *testing.T) {
	env := New()
	env.AddDependency("a.xs", "b.xs")
	env.AddDependency("a.xs", "c.xs")

	deps := env.Dependencies["a.xs"]
	require.Len(t, deps, 2)
	assert.True(t, deps["b.xs"])
	assert.True(t, deps["c.xs"])
}
