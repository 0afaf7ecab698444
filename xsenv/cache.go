package xsenv

import (
	"golang.org/x/crypto/blake2b"

	"github.com/xs-lang/xscheck/ast"
	"github.com/xs-lang/xscheck/lexer"
)

// AstInfo is one file's parse result: its statement tree plus the raw
// comment tokens the checker's doc-comment pass walks alongside it.
type AstInfo struct {
	AST      ast.Body
	Comments []lexer.Token
}

// astEntry is one AstCache slot: the content hash it was built from and
// its parse result. The in-progress sentinel that makes a self-recursive
// or mutually-recursive include a detectable CircularDependency rather
// than infinite recursion is kept apart from the entries, in AstCache's
// inFlux set (see MarkInProgress).
type astEntry struct {
	Hash []byte
	Info AstInfo
}

// AstCache holds one parsed AstInfo per path, keyed by content hash so
// a file whose source hasn't changed since the last check can skip
// re-lexing and re-parsing entirely. It is owned by a single Checker
// and never shared across goroutines.
type AstCache struct {
	entries map[string]astEntry
	inFlux  map[string]bool
}

func NewAstCache() *AstCache {
	return &AstCache{entries: make(map[string]astEntry), inFlux: make(map[string]bool)}
}

// Pop removes and returns path's entry along with whether it existed.
// Every check of path starts by taking ownership of whatever is cached
// for it.
func (c *AstCache) Pop(path string) (astEntry, bool) {
	e, ok := c.entries[path]
	delete(c.entries, path)
	return e, ok
}

// InProgress reports whether path is mid-check right now.
func (c *AstCache) InProgress(path string) bool {
	return c.inFlux[path]
}

// MarkInProgress flags path as currently being checked. Called before
// statement checking runs, on both the fresh-parse and the cache-hit
// path, so a file that includes itself (directly or through a cycle) is
// always caught.
func (c *AstCache) MarkInProgress(path string) {
	c.inFlux[path] = true
}

// Store finalizes path's cache entry once checking has completed.
func (c *AstCache) Store(path string, hash []byte, info AstInfo) {
	delete(c.inFlux, path)
	c.entries[path] = astEntry{Hash: hash, Info: info}
}

// Hash returns src's content hash, used as the cache-validity key.
func Hash(src string) []byte {
	sum := blake2b.Sum256([]byte(src))
	return sum[:]
}

func hashEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// HashEqual reports whether two content hashes match.
func HashEqual(a, b []byte) bool { return hashEqual(a, b) }

// SrcCache holds file contents already read from disk, so a
// multiply-included file is read once per run (and, with an LSP-style
// front end, lets an open buffer's unsaved text override disk state).
type SrcCache struct {
	m map[string]string
}

func NewSrcCache() *SrcCache {
	return &SrcCache{m: make(map[string]string)}
}

func (c *SrcCache) Get(path string) (string, bool) {
	s, ok := c.m[path]
	return s, ok
}

func (c *SrcCache) Set(path, src string) {
	c.m[path] = src
}
