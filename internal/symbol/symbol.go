// Package symbol provides the opaque interned identifier type consumed by
// the type checker and translator. The lexer/parser are expected to look
// symbols up in a shared Table as they build the AST, so that two
// occurrences of the same source identifier compare equal in O(1) instead
// of by string comparison.
package symbol

import "golang.org/x/text/width"

// Symbol is an interned identifier. Symbols are only meaningfully
// comparable when minted from the same Table; the zero Symbol is never
// returned by Table.Intern and is reserved to mean "no symbol".
type Symbol struct {
	id   int
	name string
}

// String renders the symbol's spelling as interned, i.e. after
// fullwidth/halfwidth folding.
func (s Symbol) String() string {
	return s.name
}

// IsZero reports whether s is the reserved empty symbol.
func (s Symbol) IsZero() bool {
	return s.id == 0 && s.name == ""
}

// Table interns identifier strings into Symbols. A Table is part of a
// single compilation's context (spec's "compilation context", §5/§9) and
// must not be shared across concurrent compilations.
type Table struct {
	byName map[string]Symbol
	next   int
}

// NewTable creates an empty symbol table pre-seeded so the zero Symbol is
// never handed out for a real identifier.
func NewTable() *Table {
	return &Table{byName: make(map[string]Symbol), next: 1}
}

// Intern returns the Symbol for name, minting a fresh one on first sight.
// Fullwidth/halfwidth Unicode forms are folded to their canonical width
// before interning, so that a source file mixing full-width and ASCII
// spellings of what a programmer intends as the same identifier resolves
// to one Symbol; Tiger identifiers otherwise remain case-sensitive (no
// case folding is performed).
func (t *Table) Intern(name string) Symbol {
	folded := width.Narrow.String(name)
	if sym, ok := t.byName[folded]; ok {
		return sym
	}
	sym := Symbol{id: t.next, name: folded}
	t.next++
	t.byName[folded] = sym
	return sym
}

// Lookup returns the Symbol previously interned for name, if any, without
// minting a new one.
func (t *Table) Lookup(name string) (Symbol, bool) {
	folded := width.Narrow.String(name)
	sym, ok := t.byName[folded]
	return sym, ok
}
