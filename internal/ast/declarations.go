package ast

import (
	"bytes"
	"fmt"

	"github.com/tiger-lang/tigerc/internal/symbol"
	"github.com/tiger-lang/tigerc/internal/token"
)

// VarDec is `var x [: T] := e`. Typ.IsZero() when the type annotation was
// omitted, in which case TT infers the declared type from e (and rejects
// e : NIL, per spec §4.1.2).
type VarDec struct {
	DPos   token.Position
	Name   symbol.Symbol
	Escape bool
	Typ    symbol.Symbol
	Init   Expr
}

func (d *VarDec) Pos() token.Position { return d.DPos }
func (d *VarDec) String() string {
	if d.Typ.IsZero() {
		return fmt.Sprintf("var %s := %s", d.Name, d.Init)
	}
	return fmt.Sprintf("var %s : %s := %s", d.Name, d.Typ, d.Init)
}
func (d *VarDec) decNode() {}

// FunDec is a single function/procedure heading and body. Result.IsZero()
// means no result type was written, i.e. a procedure (result type UNIT).
type FunDec struct {
	DPos   token.Position
	Name   symbol.Symbol
	Params []*Field
	Result symbol.Symbol
	Body   Expr
}

func (d *FunDec) Pos() token.Position { return d.DPos }
func (d *FunDec) String() string {
	if d.Result.IsZero() {
		return fmt.Sprintf("function %s(%s) = %s", d.Name, joinFields(d.Params), d.Body)
	}
	return fmt.Sprintf("function %s(%s): %s = %s", d.Name, joinFields(d.Params), d.Result, d.Body)
}

// FunctionDec is a maximal group of mutually recursive function
// declarations, processed together per spec §4.1.2.
type FunctionDec struct {
	DPos token.Position
	Funs []*FunDec
}

func (d *FunctionDec) Pos() token.Position { return d.DPos }
func (d *FunctionDec) String() string {
	var buf bytes.Buffer
	for i, f := range d.Funs {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(f.String())
	}
	return buf.String()
}
func (d *FunctionDec) decNode() {}

// NameTy is `type name = ty`, one member of a mutually recursive type
// group.
type NameTy struct {
	DPos token.Position
	Name symbol.Symbol
	Ty   Ty
}

func (d *NameTy) Pos() token.Position { return d.DPos }
func (d *NameTy) String() string {
	return fmt.Sprintf("type %s = %s", d.Name, d.Ty)
}

// TypeDec is a maximal group of mutually recursive type declarations,
// processed together per spec §4.1.2.
type TypeDec struct {
	DPos  token.Position
	Types []*NameTy
}

func (d *TypeDec) Pos() token.Position { return d.DPos }
func (d *TypeDec) String() string {
	var buf bytes.Buffer
	for i, t := range d.Types {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(t.String())
	}
	return buf.String()
}
func (d *TypeDec) decNode() {}

// AliasTy is `type a = b`: a bare reference to another named type.
type AliasTy struct {
	TPos token.Position
	Sym  symbol.Symbol
}

func (t *AliasTy) Pos() token.Position { return t.TPos }
func (t *AliasTy) String() string      { return t.Sym.String() }
func (t *AliasTy) tyNode()             {}

// RecordTy is `type a = { f1: T1, ... }`.
type RecordTy struct {
	TPos   token.Position
	Fields []*Field
}

func (t *RecordTy) Pos() token.Position { return t.TPos }
func (t *RecordTy) String() string      { return fmt.Sprintf("{%s}", joinFields(t.Fields)) }
func (t *RecordTy) tyNode()             {}

// ArrayTy is `type a = array of T`.
type ArrayTy struct {
	TPos token.Position
	Elem symbol.Symbol
}

func (t *ArrayTy) Pos() token.Position { return t.TPos }
func (t *ArrayTy) String() string      { return fmt.Sprintf("array of %s", t.Elem) }
func (t *ArrayTy) tyNode()             {}
