// Package ast defines the Abstract Syntax Tree node types consumed by the
// type checker and translator. The lexer and parser that build this tree
// are external collaborators (spec §1); this package only fixes the
// shapes they are expected to hand over.
package ast

import (
	"bytes"
	"fmt"

	"github.com/tiger-lang/tigerc/internal/symbol"
	"github.com/tiger-lang/tigerc/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// Pos returns the node's source position for error reporting.
	Pos() token.Position
	// String renders a debug representation of the node.
	String() string
}

// Expr is any node that produces a value (or UNIT, for statement-shaped
// expressions -- the source language is expression-oriented, so there is
// no separate statement hierarchy).
type Expr interface {
	Node
	exprNode()
}

// Var is the sub-grammar of assignable/addressable paths: a bare
// identifier, a record field projection, or an array subscript. Each
// variant also implements Expr, since `v` alone is a valid expression.
type Var interface {
	Expr
	varNode()
}

// Dec is one declaration inside a `let` block.
type Dec interface {
	Node
	decNode()
}

// Ty is the right-hand side of a type declaration.
type Ty interface {
	Node
	tyNode()
}

// Operator enumerates the binary operators recognized by OpExp.
type Operator int

const (
	PlusOp Operator = iota
	MinusOp
	TimesOp
	DivideOp
	EqOp
	NeqOp
	LtOp
	LeOp
	GtOp
	GeOp
)

func (op Operator) String() string {
	switch op {
	case PlusOp:
		return "+"
	case MinusOp:
		return "-"
	case TimesOp:
		return "*"
	case DivideOp:
		return "/"
	case EqOp:
		return "="
	case NeqOp:
		return "<>"
	case LtOp:
		return "<"
	case LeOp:
		return "<="
	case GtOp:
		return ">"
	case GeOp:
		return ">="
	default:
		return fmt.Sprintf("Operator(%d)", int(op))
	}
}

// IsRelational reports whether op is one of the ordering comparisons
// (`< > <= >=`), which require integer operands per spec §4.1.
func (op Operator) IsRelational() bool {
	switch op {
	case LtOp, LeOp, GtOp, GeOp:
		return true
	default:
		return false
	}
}

// IsEquality reports whether op is `=` or `<>`, which accept any pair of
// compatible operands (including record/NIL pairs and string content
// comparison) rather than requiring INT.
func (op Operator) IsEquality() bool {
	return op == EqOp || op == NeqOp
}

// Field is a named, typed slot: a record field, a function formal
// parameter, or (with Escape left false until escape analysis) a loop
// variable binding site reused for parameter lists.
type Field struct {
	FPos   token.Position
	Name   symbol.Symbol
	Escape bool
	Typ    symbol.Symbol
}

func (f *Field) Pos() token.Position { return f.FPos }
func (f *Field) String() string {
	return fmt.Sprintf("%s: %s", f.Name, f.Typ)
}

func joinFields(fields []*Field) string {
	var buf bytes.Buffer
	for i, f := range fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(f.String())
	}
	return buf.String()
}
