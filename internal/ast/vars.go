package ast

import (
	"fmt"

	"github.com/tiger-lang/tigerc/internal/symbol"
	"github.com/tiger-lang/tigerc/internal/token"
)

// SimpleVar is a bare identifier reference, e.g. `x`.
type SimpleVar struct {
	VPos token.Position
	Sym  symbol.Symbol
}

func (v *SimpleVar) Pos() token.Position { return v.VPos }
func (v *SimpleVar) String() string      { return v.Sym.String() }
func (v *SimpleVar) exprNode()           {}
func (v *SimpleVar) varNode()            {}

// FieldVar is a record field projection, e.g. `v.f`.
type FieldVar struct {
	VPos  token.Position
	Var   Var
	Field symbol.Symbol
}

func (v *FieldVar) Pos() token.Position { return v.VPos }
func (v *FieldVar) String() string      { return fmt.Sprintf("%s.%s", v.Var, v.Field) }
func (v *FieldVar) exprNode()           {}
func (v *FieldVar) varNode()            {}

// SubscriptVar is an array subscript, e.g. `v[e]`.
type SubscriptVar struct {
	VPos  token.Position
	Var   Var
	Index Expr
}

func (v *SubscriptVar) Pos() token.Position { return v.VPos }
func (v *SubscriptVar) String() string      { return fmt.Sprintf("%s[%s]", v.Var, v.Index) }
func (v *SubscriptVar) exprNode()           {}
func (v *SubscriptVar) varNode()            {}
