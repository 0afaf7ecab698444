package prelude

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xs-lang/xscheck/ast"
	"github.com/xs-lang/xscheck/checker"
	"github.com/xs-lang/xscheck/xsenv"
)

func TestSeedProducesNoDiagnostics(t *testing.T) {
	env := xsenv.New()
	c := checker.New()
	require.NotPanics(t, func() {
		Seed(c, env)
	})
	assert.Empty(t, env.Diagnostics)
}

func TestSeedDeclaresEngineFunctionsGlobally(t *testing.T) {
	env := xsenv.New()
	c := checker.New()
	Seed(c, env)

	info, ok := env.Lookup("xsEcho")
	require.True(t, ok)
	assert.Equal(t, ast.TFn, info.Type.Kind)

	_, ok = env.Lookup("xsGetRandomInt")
	assert.True(t, ok)
}

func TestSeedExtraAddsMoreNamesAlongsideTheBasePrelude(t *testing.T) {
	env := xsenv.New()
	c := checker.New()
	Seed(c, env)
	SeedExtra(c, env, "extra.xs", `void xsCustomAbility(int power = 0) {}`)

	_, ok := env.Lookup("xsEcho")
	assert.True(t, ok)
	_, ok = env.Lookup("xsCustomAbility")
	assert.True(t, ok)
	assert.Empty(t, env.Diagnostics)
}

func TestSeedPanicsWhenPreludeItselfIsInvalid(t *testing.T) {
	env := xsenv.New()
	c := checker.New()
	assert.Panics(t, func() {
		SeedExtra(c, env, "broken.xs", `int x = "not an int";`)
	})
}
