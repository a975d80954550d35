package typecheck

import (
	"github.com/tiger-lang/tigerc/internal/ast"
	"github.com/tiger-lang/tigerc/internal/errors"
	"github.com/tiger-lang/tigerc/internal/ir"
	"github.com/tiger-lang/tigerc/internal/types"
)

// transVar implements the Var half of spec §4.1: identifier, field
// projection, and subscript, each returning its address-computing IR and
// static type.
func (c *Checker) transVar(ctx context, v ast.Var) (ir.Expr, types.Type, error) {
	switch v := v.(type) {
	case *ast.SimpleVar:
		entry, ok := ctx.venv.Lookup(v.Sym)
		if !ok {
			return nil, nil, errors.NewUndefined(v.VPos, "undefined variable %s", v.Sym)
		}
		ve, ok := entry.(*VarEntry)
		if !ok {
			return nil, nil, errors.NewTypeError(v.VPos, "%s is a function, not a variable", v.Sym)
		}
		return c.tr.SimpleVar(ve.Access, ctx.level), ve.Typ, nil

	case *ast.FieldVar:
		baseIR, baseTy, err := c.transVar(ctx, v.Var)
		if err != nil {
			return nil, nil, err
		}
		rec, ok := c.actualTy(ctx.tenv, baseTy).(*types.Record)
		if !ok {
			return nil, nil, errors.NewTypeError(v.VPos, "%s is not a record", v.Var)
		}
		idx := rec.FieldIndex(v.Field.String())
		if idx < 0 {
			return nil, nil, errors.NewUndefined(v.VPos, "record has no field %s", v.Field)
		}
		addr, ok := c.tr.VarField(baseIR, rec.Fields, v.Field.String())
		if !ok {
			errors.Panic(v.VPos, "field %s resolved in type check but not in translation", v.Field)
		}
		return addr, c.actualTy(ctx.tenv, rec.Fields[idx].Typ), nil

	case *ast.SubscriptVar:
		baseIR, baseTy, err := c.transVar(ctx, v.Var)
		if err != nil {
			return nil, nil, err
		}
		arr, ok := c.actualTy(ctx.tenv, baseTy).(*types.Array)
		if !ok {
			return nil, nil, errors.NewTypeError(v.VPos, "%s is not an array", v.Var)
		}
		idxIR, idxTy, err := c.transExp(ctx, v.Index)
		if err != nil {
			return nil, nil, err
		}
		if _, ok := idxTy.(types.Int); !ok {
			return nil, nil, errors.NewTypeError(v.Index.Pos(), "array subscript must be int, got %s", idxTy.TypeName())
		}
		return c.tr.VarSubscript(baseIR, idxIR), c.actualTy(ctx.tenv, arr.Elem), nil

	default:
		errors.Panic(v.Pos(), "unknown Var variant %T", v)
		panic("unreachable")
	}
}
