// Package prelude embeds the engine-provided declarations every checked
// file sees without an explicit include.
package prelude

import (
	_ "embed"
	"fmt"

	"github.com/xs-lang/xscheck/checker"
	"github.com/xs-lang/xscheck/xsenv"
)

//go:embed prelude.xs
var Source string

// Path is the sentinel path the prelude is analyzed under, so its
// diagnostics (should the invariant below ever be violated) are
// attributable rather than anonymous.
const Path = "prelude.xs"

// Seed checks the prelude into env and panics if it produces any
// diagnostic: the prelude is a programmer-maintained resource, not user
// input, so a diagnostic here is a bug in this tool, not in a checked
// file.
func Seed(c *checker.Checker, env *xsenv.TypeEnv) {
	seedOne(c, env, Path, Source)
}

// SeedExtra runs an additional prelude (--extra-prelude-path) under its
// own path, ahead of the main file, with the same never-diagnoses
// invariant.
func SeedExtra(c *checker.Checker, env *xsenv.TypeEnv, path, src string) {
	seedOne(c, env, path, src)
}

func seedOne(c *checker.Checker, env *xsenv.TypeEnv, path, src string) {
	before := len(env.Diagnostics)
	c.CheckSource(path, src, env, checker.TopLevel())
	if len(env.Diagnostics) > before {
		panic(fmt.Sprintf("prelude %s produced %d diagnostic(s); this is a bug in the prelude itself, not in user input: %+v",
			path, len(env.Diagnostics)-before, env.Diagnostics[before:]))
	}
}
