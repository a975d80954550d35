// Package typecheck implements TT, the type-and-translate pass of
// spec §4.1: a single recursive walk of the AST that threads a type
// environment and a value environment (plus the current function level)
// and returns, for each expression, a translated IR fragment and its
// type.
package typecheck

import (
	"github.com/tiger-lang/tigerc/internal/frame"
	"github.com/tiger-lang/tigerc/internal/symbol"
	"github.com/tiger-lang/tigerc/internal/temp"
	"github.com/tiger-lang/tigerc/internal/translate"
	"github.com/tiger-lang/tigerc/internal/types"
)

// TEnv is the persistent type environment: symbol -> ty. Extend returns a
// new environment pointing back at the receiver, so the caller's own
// reference is untouched -- "scoped restoration" (spec §3) is simply a
// matter of not keeping the extended value around past its scope.
type TEnv struct {
	parent *TEnv
	table  map[symbol.Symbol]types.Type
}

// NewTEnv creates a root type environment pre-populated with int and
// string (spec §3).
func NewTEnv(syms *symbol.Table) *TEnv {
	root := &TEnv{table: map[symbol.Symbol]types.Type{
		syms.Intern("int"):    types.Int{},
		syms.Intern("string"): types.Str{},
	}}
	return root
}

// Lookup searches this environment and its ancestors.
func (e *TEnv) Lookup(s symbol.Symbol) (types.Type, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if t, ok := cur.table[s]; ok {
			return t, true
		}
	}
	return nil, false
}

// Extend returns a new environment with s bound to t, layered on top of e.
func (e *TEnv) Extend(s symbol.Symbol, t types.Type) *TEnv {
	return &TEnv{parent: e, table: map[symbol.Symbol]types.Type{s: t}}
}

// ExtendAll returns a new environment layering every binding in m on top
// of e, used to install a whole mutually recursive type group at once.
func (e *TEnv) ExtendAll(m map[symbol.Symbol]types.Type) *TEnv {
	return &TEnv{parent: e, table: m}
}

// ValueEntry is a binding in the value environment: either a variable at
// a computed frame access, or a function's signature and defining level.
type ValueEntry interface {
	valueEntryNode()
}

// VarEntry is a variable binding. ReadOnly is set for the `for` loop
// variable (DESIGN.md: enforcing spec §9's "assignment to loop variable"
// fix rather than leaving it as a known bug).
type VarEntry struct {
	Access   translate.Access
	Typ      types.Type
	ReadOnly bool
}

func (*VarEntry) valueEntryNode() {}

// FuncEntry is a function binding. External marks the standard-library
// entry points NewVEnv installs below: they have no Level of their own
// (their bodies are never translated here) and are called without a
// static link, unlike a Tiger-defined function nested under Outermost
// (DESIGN.md: Appel's externalCall fix for spec §3/§6's builtins).
type FuncEntry struct {
	Level    *frame.Level
	Label    temp.Label
	Params   []types.Type
	Result   types.Type
	External bool
}

func (*FuncEntry) valueEntryNode() {}

// VEnv is the persistent value environment: symbol -> ValueEntry.
type VEnv struct {
	parent *VEnv
	table  map[symbol.Symbol]ValueEntry
}

// NewVEnv creates a root value environment pre-populated with the
// standard library signatures listed in spec §3/§6. tr mints each
// runtime entry point's label without consuming a fresh-label counter
// slot (they are fixed external symbols, not generated code). Every
// entry is marked External so transCall routes its call through
// Translator.ExternalCall instead of the nested-function path, which
// would otherwise dereference a Level these entries don't have.
func NewVEnv(syms *symbol.Table, tr *translate.Translator) *VEnv {
	str := types.Str{}
	i := types.Int{}
	u := types.Unit{}
	lbl := tr.NamedLabel
	table := map[symbol.Symbol]ValueEntry{
		syms.Intern("print"):     &FuncEntry{Label: lbl("print"), Params: []types.Type{str}, Result: u, External: true},
		syms.Intern("flush"):     &FuncEntry{Label: lbl("flush"), Params: nil, Result: u, External: true},
		syms.Intern("getchar"):   &FuncEntry{Label: lbl("getchar"), Params: nil, Result: str, External: true},
		syms.Intern("ord"):       &FuncEntry{Label: lbl("ord"), Params: []types.Type{str}, Result: i, External: true},
		syms.Intern("chr"):       &FuncEntry{Label: lbl("chr"), Params: []types.Type{i}, Result: str, External: true},
		syms.Intern("size"):      &FuncEntry{Label: lbl("size"), Params: []types.Type{str}, Result: i, External: true},
		syms.Intern("substring"): &FuncEntry{Label: lbl("substring"), Params: []types.Type{str, i, i}, Result: str, External: true},
		syms.Intern("concat"):    &FuncEntry{Label: lbl("concat"), Params: []types.Type{str, str}, Result: str, External: true},
		syms.Intern("not"):       &FuncEntry{Label: lbl("not"), Params: []types.Type{i}, Result: i, External: true},
		syms.Intern("exit"):      &FuncEntry{Label: lbl("exit"), Params: []types.Type{i}, Result: u, External: true},
	}
	return &VEnv{table: table}
}

// Lookup searches this environment and its ancestors.
func (e *VEnv) Lookup(s symbol.Symbol) (ValueEntry, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, ok := cur.table[s]; ok {
			return v, true
		}
	}
	return nil, false
}

// Extend returns a new environment with s bound to v, layered on top of e.
func (e *VEnv) Extend(s symbol.Symbol, v ValueEntry) *VEnv {
	return &VEnv{parent: e, table: map[symbol.Symbol]ValueEntry{s: v}}
}

// ExtendAll returns a new environment layering every binding in m on top
// of e, used to install a whole mutually recursive function group at
// once so every name is simultaneously visible (spec §8 invariant 6).
func (e *VEnv) ExtendAll(m map[symbol.Symbol]ValueEntry) *VEnv {
	return &VEnv{parent: e, table: m}
}
