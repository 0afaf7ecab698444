package checker

import (
	"os"
	"path/filepath"

	"github.com/xs-lang/xscheck/ast"
	"github.com/xs-lang/xscheck/diag"
	"github.com/xs-lang/xscheck/lexer"
	"github.com/xs-lang/xscheck/parser"
	"github.com/xs-lang/xscheck/span"
	"github.com/xs-lang/xscheck/xsenv"
)

// TopLevel returns the checking context for a file's outermost
// statements: top-level, with no enclosing loop or switch case.
func TopLevel() stmtCtx {
	return stmtCtx{isTopLevel: true}
}

// Checker owns the per-run caches that make checking a tree of mutually
// including files incremental: a parsed-AST cache keyed by content hash,
// and a raw-source cache so a file included from more than one place is
// only read off disk once.
type Checker struct {
	Ast *xsenv.AstCache
	Src *xsenv.SrcCache
}

// New constructs a Checker with empty caches.
func New() *Checker {
	return &Checker{Ast: xsenv.NewAstCache(), Src: xsenv.NewSrcCache()}
}

// readFile loads path through the source cache, returning its text
// without re-reading a file already seen this run.
func (c *Checker) readFile(path string) (string, error) {
	if src, ok := c.Src.Get(path); ok {
		return src, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	src := string(raw)
	c.Src.Set(path, src)
	return src, nil
}

// CheckPath type-checks the file at path against env, reading and
// caching its source first. incSpan is the span of the include
// statement that led here, used to attach a FileErr if the file cannot
// be read; for the entry file (not reached through an include) pass
// span.Zero.
func (c *Checker) CheckPath(path string, incSpan span.Span, env *xsenv.TypeEnv, cx stmtCtx) {
	src, err := c.readFile(path)
	if err != nil {
		env.EmitAt(path, diag.NewFileErr(incSpan, path, err))
		return
	}
	c.CheckSource(path, src, env, cx)
}

// CheckSource type-checks src as the contents of path, reusing a cached
// AST when its content hash hasn't changed since the last run and
// detecting include cycles via an in-progress sentinel left on both the
// fresh-parse and the cache-hit path.
func (c *Checker) CheckSource(path string, src string, env *xsenv.TypeEnv, cx stmtCtx) {
	hash := xsenv.Hash(src)
	prev, hadEntry := c.Ast.Pop(path)

	if c.Ast.InProgress(path) {
		env.EmitAt(path, diag.NewCircularDependency(span.Zero, path))
		return
	}

	if hadEntry && xsenv.HashEqual(prev.Hash, hash) {
		c.Ast.MarkInProgress(path)
		commentPos := 0
		checkBody(c, path, prev.Info.AST, env, prev.Info.Comments, &commentPos, cx)
		c.Ast.Store(path, hash, prev.Info)
		return
	}

	toks, lexErrs := lexer.Lex(src)
	for _, e := range lexErrs {
		if le, ok := e.(*lexer.Error); ok {
			env.EmitAt(path, diag.NewLexerError(le.Span, le.Msg))
		}
	}
	if len(lexErrs) > 0 {
		return
	}

	body, comments, err := parser.Parse(toks)
	if err != nil {
		if pe, ok := err.(*parser.Error); ok {
			env.EmitAt(path, diag.NewParseError(pe.Span, pe.Msg))
		}
		c.Ast.Store(path, hash, xsenv.AstInfo{})
		return
	}

	info := xsenv.AstInfo{AST: body, Comments: comments}
	c.Ast.MarkInProgress(path)
	commentPos := 0
	checkBody(c, path, info.AST, env, info.Comments, &commentPos, cx)
	c.Ast.Store(path, hash, info)
}

// checkInclude resolves an include statement's quoted path against
// env.IncludeDirs in order, taking the first directory that actually
// contains the file, and recurses into it. The statement's own ignore
// scope (if any) has already been released by the caller before this
// runs.
func (c *Checker) checkInclude(path string, n ast.IncludeStmt, sp span.Span, env *xsenv.TypeEnv, cx stmtCtx) {
	if !cx.isTopLevel {
		env.EmitAt(path, diag.NewSyntax(sp, "an {0} statement is only allowed at the top level", "include"))
	}

	raw := n.Path.Node
	name := raw
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		name = raw[1 : len(raw)-1]
	}

	for _, dir := range env.IncludeDirs {
		candidate := filepath.Join(dir, name)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			env.AddDependency(path, candidate)
			c.CheckPath(candidate, n.Path.Span, env, stmtCtx{isTopLevel: true, isBreakable: false, isContinuable: false})
			return
		}
	}
	env.EmitAt(path, diag.NewUnresolvedInclude(n.Path.Span, name))
}
