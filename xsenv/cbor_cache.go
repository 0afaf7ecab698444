package xsenv

import (
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/xs-lang/xscheck/diag"
)

// PersistedEntry is one path's on-disk cache record: the content hash it
// was last checked against, and the diagnostics that check produced.
// Caching the diagnostics themselves (rather than the parsed AST) keeps
// this format trivially cbor-encodable — Diagnostic carries only
// primitive fields and a Span value type, none of the sum-type
// interfaces the in-process AstCache holds.
type PersistedEntry struct {
	Hash        []byte
	Diagnostics []diag.Diagnostic
}

// PersistedCache is the on-disk counterpart of AstCache, backing
// --cache-file: it lets a second CLI invocation against an unchanged
// file skip lexing, parsing, and checking entirely by replaying its
// last diagnostic set.
type PersistedCache struct {
	Entries map[string]PersistedEntry
}

// LoadPersistedCache reads path, returning an empty cache (not an
// error) when the file doesn't exist yet.
func LoadPersistedCache(path string) (*PersistedCache, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &PersistedCache{Entries: make(map[string]PersistedEntry)}, nil
	}
	if err != nil {
		return nil, err
	}
	var c PersistedCache
	if err := cbor.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.Entries == nil {
		c.Entries = make(map[string]PersistedEntry)
	}
	return &c, nil
}

// Save writes c to path in CBOR form, overwriting any existing file.
func (c *PersistedCache) Save(path string) error {
	raw, err := cbor.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// Lookup returns path's cached diagnostics when hash matches what was
// recorded for it, along with whether the entry was usable.
func (c *PersistedCache) Lookup(path string, hash []byte) ([]diag.Diagnostic, bool) {
	entry, ok := c.Entries[path]
	if !ok || !HashEqual(entry.Hash, hash) {
		return nil, false
	}
	return entry.Diagnostics, true
}

// Store records path's diagnostics against the hash of the source that
// produced them.
func (c *PersistedCache) Store(path string, hash []byte, diags []diag.Diagnostic) {
	c.Entries[path] = PersistedEntry{Hash: hash, Diagnostics: diags}
}
