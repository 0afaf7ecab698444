// Package xsenv holds the mutable, single-threaded name/type environment
// the checker walks a file's statements against, plus the source/AST
// caches that make multi-file, multi-invocation analysis cheap.
package xsenv

import (
	"github.com/xs-lang/xscheck/ast"
	"github.com/xs-lang/xscheck/diag"
	"github.com/xs-lang/xscheck/doccomment"
	"github.com/xs-lang/xscheck/span"
)

// Modifiers carries a variable declaration's storage-class keywords.
type Modifiers struct {
	IsExtern bool
	IsConst  bool
	IsStatic bool
}

// IdInfo is everything the environment tracks about one declared name:
// its type, the span of its declaration (used for RedefinedName notes
// and hover-style lookups), variable modifiers, and any attached doc
// comment.
type IdInfo struct {
	Name      string
	Type      ast.Type
	Modifiers Modifiers
	Span      span.Span
	Doc       *doccomment.Doc

	// IsRule and RuleOpts are the Rule counterpart of Modifiers: a
	// declared name is conceptually either a Var or a Rule, modeled here
	// as these two extra fields left at zero value for every non-rule
	// IdInfo rather than as a separate sum type.
	IsRule   bool
	RuleOpts []ast.RuleOpt

	// Init holds a const declaration's initializer expression, for
	// hover rendering. Populated only when Modifiers.IsConst.
	Init *ast.Expr
}

// TypeEnv is the environment one CheckSource run (and any files it
// recursively includes) checks statements against. It is never shared
// across goroutines.
type TypeEnv struct {
	Global map[string]IdInfo
	locals []map[string]IdInfo

	Diagnostics []diag.Diagnostic
	Groups      map[string]bool

	// IncludeDirs is the search path an `include "file.xs"` statement
	// is resolved against, in order (the CLI's -I flag).
	IncludeDirs []string

	// Dependencies records, per checked path, the set of paths it
	// directly includes. Cycle detection does not read it; it relies on
	// the AstCache's in-progress marks.
	Dependencies map[string]map[string]bool

	currentIgnores map[diag.WarningKind]bool
	currentFnEnv   *ast.Type
}

func New() *TypeEnv {
	return &TypeEnv{
		Global:       make(map[string]IdInfo),
		Groups:       make(map[string]bool),
		Dependencies: make(map[string]map[string]bool),
	}
}

func (e *TypeEnv) PushScope() { e.locals = append(e.locals, make(map[string]IdInfo)) }
func (e *TypeEnv) PopScope()  { e.locals = e.locals[:len(e.locals)-1] }

// InLocalScope reports whether the checker is currently inside a
// function or rule body rather than at top level.
func (e *TypeEnv) InLocalScope() bool { return len(e.locals) > 0 }

// Lookup resolves name local-then-global, innermost scope first.
func (e *TypeEnv) Lookup(name string) (IdInfo, bool) {
	for i := len(e.locals) - 1; i >= 0; i-- {
		if info, ok := e.locals[i][name]; ok {
			return info, true
		}
	}
	info, ok := e.Global[name]
	return info, ok
}

// Declare inserts a new identifier into the active scope (innermost
// local scope if any, else global). Existence is checked through the
// same local-then-global chain Lookup uses, so a local declaration that
// shadows an existing global name still fails with the global's IdInfo
// as the conflicting original.
func (e *TypeEnv) Declare(info IdInfo) (original IdInfo, ok bool) {
	if existing, found := e.Lookup(info.Name); found {
		return existing, false
	}
	if len(e.locals) == 0 {
		e.Global[info.Name] = info
	} else {
		e.locals[len(e.locals)-1][info.Name] = info
	}
	return info, true
}

// DeclareGlobal always inserts into the global table, matching FnDef's
// rule that function names are visible globally regardless of the scope
// depth they were declared at.
func (e *TypeEnv) DeclareGlobal(info IdInfo) (original IdInfo, ok bool) {
	if existing, found := e.Lookup(info.Name); found {
		return existing, false
	}
	e.Global[info.Name] = info
	return info, true
}

// SetLocal writes info into the innermost local scope unconditionally,
// overwriting any existing binding there — the for-loop variable's
// behavior, which is deliberately exempt from redefinition checking.
// Falls back to Global when no local scope is active.
func (e *TypeEnv) SetLocal(info IdInfo) {
	if len(e.locals) == 0 {
		e.Global[info.Name] = info
		return
	}
	e.locals[len(e.locals)-1][info.Name] = info
}

// DeclareLocalForce inserts info into the innermost local scope
// regardless of any existing binding, matching a function parameter's
// "warn on conflict but still bind" behavior. Panics if no local scope
// is active; callers only use it while checking a function or rule
// body, which always pushes one first.
func (e *TypeEnv) DeclareLocalForce(info IdInfo) {
	e.locals[len(e.locals)-1][info.Name] = info
}

// SetInit attaches init to whichever scope currently holds name,
// local-then-global — used once a const declaration's initializer has
// been validated as literal-or-const.
func (e *TypeEnv) SetInit(name string, init ast.Expr) {
	for i := len(e.locals) - 1; i >= 0; i-- {
		if info, ok := e.locals[i][name]; ok {
			info.Init = &init
			e.locals[i][name] = info
			return
		}
	}
	if info, ok := e.Global[name]; ok {
		info.Init = &init
		e.Global[name] = info
	}
}

// AddDependency records that path directly includes target.
func (e *TypeEnv) AddDependency(path, target string) {
	deps, ok := e.Dependencies[path]
	if !ok {
		deps = make(map[string]bool)
		e.Dependencies[path] = deps
	}
	deps[target] = true
}

// Redefine overwrites an existing global binding unconditionally, used
// for the mutable-function-redefinition refresh path, where a structurally
// identical redeclaration replaces rather than conflicts with the first.
func (e *TypeEnv) Redefine(info IdInfo) {
	e.Global[info.Name] = info
}

// Names returns every identifier visible right now, local scopes
// innermost-first then global, deduplicated — the candidate pool for
// "did you mean" suggestions.
func (e *TypeEnv) Names() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for i := len(e.locals) - 1; i >= 0; i-- {
		for name := range e.locals[i] {
			add(name)
		}
	}
	for name := range e.Global {
		add(name)
	}
	return names
}

// TempIgnore installs codes as the current ignore set, returning a
// closure that restores whatever was active before — scoped acquisition
// with guaranteed release on all exit paths, modeled here as a deferred
// closure rather than a guard object.
func (e *TypeEnv) TempIgnore(codes map[diag.WarningKind]bool) (release func()) {
	prev := e.currentIgnores
	e.currentIgnores = codes
	return func() { e.currentIgnores = prev }
}

func (e *TypeEnv) IsIgnored(code diag.WarningKind) bool {
	return e.currentIgnores != nil && e.currentIgnores[code]
}

// WithFnEnv saves the enclosing function's return type and restores it
// via the returned closure — the same save-before/restore-after
// discipline TempIgnore uses, applied to currentFnEnv. Pass nil to mean
// "no enclosing function or rule" (top level); a rule body passes Void,
// its fixed return type.
func (e *TypeEnv) WithFnEnv(ret *ast.Type) (release func()) {
	prev := e.currentFnEnv
	e.currentFnEnv = ret
	return func() { e.currentFnEnv = prev }
}

func (e *TypeEnv) CurrentFnEnv() *ast.Type { return e.currentFnEnv }

// Emit records a diagnostic, marking it Ignored when its warning code is
// currently suppressed. Ignored diagnostics are retained rather than
// dropped, so the presentation layer decides what to filter.
func (e *TypeEnv) Emit(d diag.Diagnostic) {
	if d.Severity == diag.SeverityWarning && e.IsIgnored(d.WarningCode) {
		d.Ignored = true
	}
	e.Diagnostics = append(e.Diagnostics, d)
}

// EmitAt is Emit with the diagnostic's Path stamped, for a per-path
// diagnostic set in multi-file analysis.
func (e *TypeEnv) EmitAt(path string, d diag.Diagnostic) {
	d.Path = path
	e.Emit(d)
}
