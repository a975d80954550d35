// Package types implements the Tiger type model described in spec §3: a
// small discriminated union with nominal identity for RECORD and ARRAY,
// and a NAME placeholder used while resolving mutually recursive type
// groups.
package types

import (
	"fmt"
	"strings"
)

// Type is the interface implemented by every type-system variant.
type Type interface {
	// TypeName renders the type for diagnostics ("int", "{x: int}" for a
	// record, "array of int", the declared name for a NAME, etc).
	TypeName() string
	typeNode()
}

// Int is the machine integer type.
type Int struct{}

func (Int) TypeName() string { return "int" }
func (Int) typeNode()        {}

// Str is the immutable string type.
type Str struct{}

func (Str) TypeName() string { return "string" }
func (Str) typeNode()        {}

// Nil is the type of the `nil` literal; compatible with any Record.
type Nil struct{}

func (Nil) TypeName() string { return "nil" }
func (Nil) typeNode()        {}

// Unit is the "no value" type of statements, assignments, and procedure
// results.
type Unit struct{}

func (Unit) TypeName() string { return "unit" }
func (Unit) typeNode()        {}

// RecordField is one (name, type) member of a record, in declaration
// order; field index doubles as its offset in units of words.
type RecordField struct {
	Name string
	Typ  Type
}

// Record is a nominal record type: two Records with identical field
// lists but distinct Uniq values are different types (spec §3, invariant
// 3 in §8).
type Record struct {
	Fields []RecordField
	Uniq   int
}

func (r *Record) TypeName() string {
	var b strings.Builder
	b.WriteString("{")
	for i, f := range r.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", f.Name, f.Typ.TypeName())
	}
	b.WriteString("}")
	return b.String()
}
func (*Record) typeNode() {}

// FieldIndex returns the zero-based index of name within the record, or
// -1 if the record has no such field.
func (r *Record) FieldIndex(name string) int {
	for i, f := range r.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Array is a nominal array type: like Record, distinguished by Uniq even
// when two arrays share the same element type.
type Array struct {
	Elem Type
	Uniq int
}

func (a *Array) TypeName() string { return "array of " + a.Elem.TypeName() }
func (*Array) typeNode()          {}

// Name is a placeholder used while resolving a mutually recursive type
// group (spec §4.1.2): it stands in for "symbol S, not yet resolved" and
// is replaced in tenv once resolution completes. The Slot field is kept
// only as the historical mutable-cell mechanism some implementations use
// to close cycles; this implementation instead re-looks-up the symbol in
// tenv at every use site (see DESIGN.md, open question on mutable NAME
// cells), so Slot is always nil here and exists solely so code ported
// from a mutable-cell design has somewhere to go.
type Name struct {
	Sym  string
	Slot *Type
}

func (n *Name) TypeName() string {
	if n.Slot != nil && *n.Slot != nil {
		return (*n.Slot).TypeName()
	}
	return n.Sym
}
func (*Name) typeNode() {}

// Resolve follows NAME indirection (if any) to the underlying type. For
// any other variant it returns t unchanged. It does not follow NAME
// chains through tenv -- callers needing a live lookup should use
// typecheck's Checker.actualTy instead; this helper exists for the rare case where a type
// value captured a genuine unresolved placeholder (e.g. mid fixed-point
// during type-group processing).
func Resolve(t Type) Type {
	if n, ok := t.(*Name); ok && n.Slot != nil && *n.Slot != nil {
		return Resolve(*n.Slot)
	}
	return t
}

// Eq reports type equality per spec §3: same variant, and for Record/
// Array, same Uniq identity (nominal, not structural).
func Eq(a, b Type) bool {
	a, b = Resolve(a), Resolve(b)
	switch av := a.(type) {
	case Int:
		_, ok := b.(Int)
		return ok
	case Str:
		_, ok := b.(Str)
		return ok
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Unit:
		_, ok := b.(Unit)
		return ok
	case *Record:
		bv, ok := b.(*Record)
		return ok && av.Uniq == bv.Uniq
	case *Array:
		bv, ok := b.(*Array)
		return ok && av.Uniq == bv.Uniq
	case *Name:
		bv, ok := b.(*Name)
		return ok && av.Sym == bv.Sym
	default:
		return false
	}
}

// Compatible implements spec §3's assignment/comparison/argument-passing
// compatibility relation: equality, plus any Record is compatible with
// NIL in either direction, and NIL is compatible with NIL.
func Compatible(a, b Type) bool {
	a, b = Resolve(a), Resolve(b)
	if Eq(a, b) {
		return true
	}
	_, aIsRecord := a.(*Record)
	_, bIsRecord := b.(*Record)
	_, aIsNil := a.(Nil)
	_, bIsNil := b.(Nil)
	if aIsRecord && bIsNil {
		return true
	}
	if aIsNil && bIsRecord {
		return true
	}
	return false
}

// UniqSource mints fresh, process-local identities for Record/Array
// types. Per spec §5 it is conceptually process-global but is
// encapsulated here as an explicit value carried in the compilation
// context, so independent compilations can run without sharing state.
type UniqSource struct {
	next int
}

// NewUniqSource creates a counter starting at 1 (0 is reserved to mean
// "no identity assigned").
func NewUniqSource() *UniqSource {
	return &UniqSource{next: 1}
}

// Next mints and returns a fresh identity.
func (u *UniqSource) Next() int {
	id := u.next
	u.next++
	return id
}
