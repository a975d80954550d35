package ast

import (
	"bytes"
	"fmt"

	"github.com/tiger-lang/tigerc/internal/symbol"
	"github.com/tiger-lang/tigerc/internal/token"
)

// IntExp is an integer literal.
type IntExp struct {
	EPos  token.Position
	Value int64
}

func (e *IntExp) Pos() token.Position { return e.EPos }
func (e *IntExp) String() string      { return fmt.Sprintf("%d", e.Value) }
func (e *IntExp) exprNode()           {}

// StringExp is a string literal.
type StringExp struct {
	EPos  token.Position
	Value string
}

func (e *StringExp) Pos() token.Position { return e.EPos }
func (e *StringExp) String() string      { return fmt.Sprintf("%q", e.Value) }
func (e *StringExp) exprNode()           {}

// NilExp is the `nil` literal.
type NilExp struct {
	EPos token.Position
}

func (e *NilExp) Pos() token.Position { return e.EPos }
func (e *NilExp) String() string      { return "nil" }
func (e *NilExp) exprNode()           {}

// VarExp wraps a Var so it can appear anywhere an Expr is expected.
type VarExp struct {
	Var Var
}

func (e *VarExp) Pos() token.Position { return e.Var.Pos() }
func (e *VarExp) String() string      { return e.Var.String() }
func (e *VarExp) exprNode()           {}

// OpExp is a binary operator application.
type OpExp struct {
	EPos  token.Position
	Op    Operator
	Left  Expr
	Right Expr
}

func (e *OpExp) Pos() token.Position { return e.EPos }
func (e *OpExp) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}
func (e *OpExp) exprNode() {}

// FieldExp is one `name = value` entry inside a RecordExp literal.
type FieldExp struct {
	FPos  token.Position
	Name  symbol.Symbol
	Value Expr
}

// RecordExp is a record constructor, e.g. `point { x = 1, y = 2 }`.
type RecordExp struct {
	EPos   token.Position
	Typ    symbol.Symbol
	Fields []*FieldExp
}

func (e *RecordExp) Pos() token.Position { return e.EPos }
func (e *RecordExp) String() string {
	var buf bytes.Buffer
	buf.WriteString(e.Typ.String())
	buf.WriteString("{")
	for i, f := range e.Fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s=%s", f.Name, f.Value)
	}
	buf.WriteString("}")
	return buf.String()
}
func (e *RecordExp) exprNode() {}

// ArrayExp is an array constructor, e.g. `int[10] of 0`.
type ArrayExp struct {
	EPos token.Position
	Typ  symbol.Symbol
	Size Expr
	Init Expr
}

func (e *ArrayExp) Pos() token.Position { return e.EPos }
func (e *ArrayExp) String() string {
	return fmt.Sprintf("%s[%s] of %s", e.Typ, e.Size, e.Init)
}
func (e *ArrayExp) exprNode() {}

// SeqExp is a parenthesized, semicolon-separated sequence of expressions;
// an empty sequence is the canonical UNIT value.
type SeqExp struct {
	EPos token.Position
	Exps []Expr
}

func (e *SeqExp) Pos() token.Position { return e.EPos }
func (e *SeqExp) String() string {
	var buf bytes.Buffer
	buf.WriteString("(")
	for i, sub := range e.Exps {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(sub.String())
	}
	buf.WriteString(")")
	return buf.String()
}
func (e *SeqExp) exprNode() {}

// AssignExp is `v := e`.
type AssignExp struct {
	EPos token.Position
	Var  Var
	Exp  Expr
}

func (e *AssignExp) Pos() token.Position { return e.EPos }
func (e *AssignExp) String() string      { return fmt.Sprintf("%s := %s", e.Var, e.Exp) }
func (e *AssignExp) exprNode()           {}

// IfExp is `if test then then [else else]`. Else is nil for the
// without-else form.
type IfExp struct {
	EPos token.Position
	Test Expr
	Then Expr
	Else Expr
}

func (e *IfExp) Pos() token.Position { return e.EPos }
func (e *IfExp) String() string {
	if e.Else == nil {
		return fmt.Sprintf("if %s then %s", e.Test, e.Then)
	}
	return fmt.Sprintf("if %s then %s else %s", e.Test, e.Then, e.Else)
}
func (e *IfExp) exprNode() {}

// WhileExp is `while test do body`.
type WhileExp struct {
	EPos token.Position
	Test Expr
	Body Expr
}

func (e *WhileExp) Pos() token.Position { return e.EPos }
func (e *WhileExp) String() string      { return fmt.Sprintf("while %s do %s", e.Test, e.Body) }
func (e *WhileExp) exprNode()           {}

// ForExp is `var := lo to hi do body`. Escape is filled in by escape
// analysis (spec §9); it starts false and TT treats the loop variable as
// always escaping regardless, per the source design.
type ForExp struct {
	EPos   token.Position
	Var    symbol.Symbol
	Escape bool
	Lo     Expr
	Hi     Expr
	Body   Expr
}

func (e *ForExp) Pos() token.Position { return e.EPos }
func (e *ForExp) String() string {
	return fmt.Sprintf("for %s := %s to %s do %s", e.Var, e.Lo, e.Hi, e.Body)
}
func (e *ForExp) exprNode() {}

// BreakExp is `break`.
type BreakExp struct {
	EPos token.Position
}

func (e *BreakExp) Pos() token.Position { return e.EPos }
func (e *BreakExp) String() string      { return "break" }
func (e *BreakExp) exprNode()           {}

// LetExp is `let decs in body end`.
type LetExp struct {
	EPos token.Position
	Decs []Dec
	Body Expr
}

func (e *LetExp) Pos() token.Position { return e.EPos }
func (e *LetExp) String() string {
	var buf bytes.Buffer
	buf.WriteString("let ")
	for _, d := range e.Decs {
		buf.WriteString(d.String())
		buf.WriteString(" ")
	}
	buf.WriteString("in ")
	buf.WriteString(e.Body.String())
	buf.WriteString(" end")
	return buf.String()
}
func (e *LetExp) exprNode() {}

// CallExp is a function call `f(a1, ..., an)`.
type CallExp struct {
	EPos token.Position
	Func symbol.Symbol
	Args []Expr
}

func (e *CallExp) Pos() token.Position { return e.EPos }
func (e *CallExp) String() string {
	var buf bytes.Buffer
	buf.WriteString(e.Func.String())
	buf.WriteString("(")
	for i, a := range e.Args {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(a.String())
	}
	buf.WriteString(")")
	return buf.String()
}
func (e *CallExp) exprNode() {}
