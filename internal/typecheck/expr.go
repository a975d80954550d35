package typecheck

import (
	"github.com/tiger-lang/tigerc/internal/ast"
	"github.com/tiger-lang/tigerc/internal/errors"
	"github.com/tiger-lang/tigerc/internal/ir"
	"github.com/tiger-lang/tigerc/internal/token"
	"github.com/tiger-lang/tigerc/internal/types"
)

var zeroPos = token.Position{}

// arithOp maps the arithmetic subset of ast.Operator to its IR opcode.
func arithOp(op ast.Operator) ir.BinOp {
	switch op {
	case ast.PlusOp:
		return ir.Plus
	case ast.MinusOp:
		return ir.Minus
	case ast.TimesOp:
		return ir.Mul
	case ast.DivideOp:
		return ir.Div
	default:
		errors.Panic(zeroPos, "not an arithmetic operator: %s", op)
		panic("unreachable")
	}
}

// relOp maps the comparison subset of ast.Operator to its IR opcode.
func relOp(op ast.Operator) ir.RelOp {
	switch op {
	case ast.EqOp:
		return ir.Eq
	case ast.NeqOp:
		return ir.Ne
	case ast.LtOp:
		return ir.Lt
	case ast.LeOp:
		return ir.Le
	case ast.GtOp:
		return ir.Gt
	case ast.GeOp:
		return ir.Ge
	default:
		errors.Panic(zeroPos, "not a relational operator: %s", op)
		panic("unreachable")
	}
}

// transExp implements the expression half of spec §4.1: the single
// recursive walk producing, for every AST expression, its translated IR
// and static type.
func (c *Checker) transExp(ctx context, e ast.Expr) (ir.Expr, types.Type, error) {
	switch e := e.(type) {
	case *ast.IntExp:
		return c.tr.Const(e.Value), types.Int{}, nil

	case *ast.StringExp:
		return c.tr.Str(e.Value), types.Str{}, nil

	case *ast.NilExp:
		return c.tr.Nil(), types.Nil{}, nil

	case *ast.VarExp:
		return c.transVar(ctx, e.Var)

	case *ast.OpExp:
		return c.transOp(ctx, e)

	case *ast.RecordExp:
		return c.transRecord(ctx, e)

	case *ast.ArrayExp:
		return c.transArray(ctx, e)

	case *ast.SeqExp:
		return c.transSeq(ctx, e)

	case *ast.AssignExp:
		return c.transAssign(ctx, e)

	case *ast.IfExp:
		return c.transIf(ctx, e)

	case *ast.WhileExp:
		return c.transWhile(ctx, e)

	case *ast.ForExp:
		return c.transFor(ctx, e)

	case *ast.BreakExp:
		if !ctx.inLoop {
			return nil, nil, errors.NewTypeError(e.EPos, "break outside of a loop")
		}
		return c.tr.Break(ctx.breakLabel), types.Unit{}, nil

	case *ast.LetExp:
		return c.transLet(ctx, e)

	case *ast.CallExp:
		return c.transCall(ctx, e)

	default:
		errors.Panic(e.Pos(), "unknown Expr variant %T", e)
		panic("unreachable")
	}
}

func (c *Checker) transOp(ctx context, e *ast.OpExp) (ir.Expr, types.Type, error) {
	leftIR, leftTy, err := c.transExp(ctx, e.Left)
	if err != nil {
		return nil, nil, err
	}
	rightIR, rightTy, err := c.transExp(ctx, e.Right)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case e.Op == ast.PlusOp || e.Op == ast.MinusOp || e.Op == ast.TimesOp || e.Op == ast.DivideOp:
		if _, ok := leftTy.(types.Int); !ok {
			return nil, nil, errors.NewTypeError(e.Left.Pos(), "arithmetic requires int, got %s", leftTy.TypeName())
		}
		if _, ok := rightTy.(types.Int); !ok {
			return nil, nil, errors.NewTypeError(e.Right.Pos(), "arithmetic requires int, got %s", rightTy.TypeName())
		}
		return c.tr.Binop(arithOp(e.Op), leftIR, rightIR), types.Int{}, nil

	case e.Op.IsRelational():
		if _, ok := leftTy.(types.Int); !ok {
			return nil, nil, errors.NewTypeError(e.Left.Pos(), "comparison requires int, got %s", leftTy.TypeName())
		}
		if _, ok := rightTy.(types.Int); !ok {
			return nil, nil, errors.NewTypeError(e.Right.Pos(), "comparison requires int, got %s", rightTy.TypeName())
		}
		return c.tr.Relop(relOp(e.Op), leftIR, rightIR), types.Int{}, nil

	case e.Op.IsEquality():
		if !types.Compatible(leftTy, rightTy) {
			return nil, nil, errors.NewTypeError(e.EPos, "cannot compare %s with %s", leftTy.TypeName(), rightTy.TypeName())
		}
		if _, ok := c.actualTy(ctx.tenv, leftTy).(types.Str); ok {
			return c.tr.StringCmp(relOp(e.Op), leftIR, rightIR), types.Int{}, nil
		}
		return c.tr.Relop(relOp(e.Op), leftIR, rightIR), types.Int{}, nil

	default:
		errors.Panic(e.EPos, "unknown operator %s", e.Op)
		panic("unreachable")
	}
}

func (c *Checker) transRecord(ctx context, e *ast.RecordExp) (ir.Expr, types.Type, error) {
	ty, err := c.lookupType(ctx.tenv, e.Typ, e.EPos)
	if err != nil {
		return nil, nil, err
	}
	rec, ok := ty.(*types.Record)
	if !ok {
		return nil, nil, errors.NewTypeError(e.EPos, "%s is not a record type", e.Typ)
	}
	if len(e.Fields) != len(rec.Fields) {
		return nil, nil, errors.NewTypeError(e.EPos, "record %s expects %d fields, got %d", e.Typ, len(rec.Fields), len(e.Fields))
	}
	fieldIRs := make([]ir.Expr, len(rec.Fields))
	for i, want := range rec.Fields {
		got := e.Fields[i]
		if got.Name.String() != want.Name {
			return nil, nil, errors.NewTypeError(got.FPos, "expected field %s, got %s", want.Name, got.Name)
		}
		valIR, valTy, err := c.transExp(ctx, got.Value)
		if err != nil {
			return nil, nil, err
		}
		wantTy := c.actualTy(ctx.tenv, want.Typ)
		if !types.Compatible(wantTy, valTy) {
			return nil, nil, errors.NewTypeError(got.Value.Pos(), "field %s expects %s, got %s", want.Name, wantTy.TypeName(), valTy.TypeName())
		}
		fieldIRs[i] = valIR
	}
	return c.tr.Record(fieldIRs), rec, nil
}

func (c *Checker) transArray(ctx context, e *ast.ArrayExp) (ir.Expr, types.Type, error) {
	ty, err := c.lookupType(ctx.tenv, e.Typ, e.EPos)
	if err != nil {
		return nil, nil, err
	}
	arr, ok := ty.(*types.Array)
	if !ok {
		return nil, nil, errors.NewTypeError(e.EPos, "%s is not an array type", e.Typ)
	}
	sizeIR, sizeTy, err := c.transExp(ctx, e.Size)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := sizeTy.(types.Int); !ok {
		return nil, nil, errors.NewTypeError(e.Size.Pos(), "array size must be int, got %s", sizeTy.TypeName())
	}
	initIR, initTy, err := c.transExp(ctx, e.Init)
	if err != nil {
		return nil, nil, err
	}
	elemTy := c.actualTy(ctx.tenv, arr.Elem)
	if !types.Compatible(elemTy, initTy) {
		return nil, nil, errors.NewTypeError(e.Init.Pos(), "array of %s cannot be initialized with %s", elemTy.TypeName(), initTy.TypeName())
	}
	return c.tr.Array(sizeIR, initIR), arr, nil
}

func (c *Checker) transSeq(ctx context, e *ast.SeqExp) (ir.Expr, types.Type, error) {
	if len(e.Exps) == 0 {
		return c.unitExpr()
	}
	irs := make([]ir.Expr, len(e.Exps))
	var last types.Type
	for i, sub := range e.Exps {
		subIR, subTy, err := c.transExp(ctx, sub)
		if err != nil {
			return nil, nil, err
		}
		irs[i] = subIR
		last = subTy
	}
	return c.tr.Seq(irs), last, nil
}

func (c *Checker) transAssign(ctx context, e *ast.AssignExp) (ir.Expr, types.Type, error) {
	if sv, ok := e.Var.(*ast.SimpleVar); ok {
		if entry, ok := ctx.venv.Lookup(sv.Sym); ok {
			if ve, ok := entry.(*VarEntry); ok && ve.ReadOnly {
				return nil, nil, errors.NewTypeError(e.EPos, "cannot assign to for-loop variable %s", sv.Sym)
			}
		}
	}
	dstIR, dstTy, err := c.transVar(ctx, e.Var)
	if err != nil {
		return nil, nil, err
	}
	srcIR, srcTy, err := c.transExp(ctx, e.Exp)
	if err != nil {
		return nil, nil, err
	}
	if !types.Compatible(dstTy, srcTy) {
		return nil, nil, errors.NewTypeError(e.Exp.Pos(), "cannot assign %s to %s", srcTy.TypeName(), dstTy.TypeName())
	}
	return c.tr.Assign(dstIR, srcIR), types.Unit{}, nil
}

func (c *Checker) transIf(ctx context, e *ast.IfExp) (ir.Expr, types.Type, error) {
	testIR, testTy, err := c.transExp(ctx, e.Test)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := testTy.(types.Int); !ok {
		return nil, nil, errors.NewTypeError(e.Test.Pos(), "if condition must be int, got %s", testTy.TypeName())
	}
	thenIR, thenTy, err := c.transExp(ctx, e.Then)
	if err != nil {
		return nil, nil, err
	}
	if e.Else == nil {
		if _, ok := thenTy.(types.Unit); !ok {
			return nil, nil, errors.NewTypeError(e.Then.Pos(), "if-then without else must have unit body, got %s", thenTy.TypeName())
		}
		return c.tr.IfThenUnit(testIR, thenIR), types.Unit{}, nil
	}
	elseIR, elseTy, err := c.transExp(ctx, e.Else)
	if err != nil {
		return nil, nil, err
	}
	if !types.Compatible(thenTy, elseTy) {
		return nil, nil, errors.NewTypeError(e.EPos, "then branch has type %s, else branch has type %s", thenTy.TypeName(), elseTy.TypeName())
	}
	if _, ok := thenTy.(types.Unit); ok {
		return c.tr.IfCondUnitBody(testIR, thenIR, elseIR), types.Unit{}, nil
	}
	resultTy := thenTy
	if _, ok := thenTy.(types.Nil); ok {
		resultTy = elseTy
	}
	return c.tr.IfCondNonUnitBody(testIR, thenIR, elseIR), resultTy, nil
}

func (c *Checker) transWhile(ctx context, e *ast.WhileExp) (ir.Expr, types.Type, error) {
	testIR, testTy, err := c.transExp(ctx, e.Test)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := testTy.(types.Int); !ok {
		return nil, nil, errors.NewTypeError(e.Test.Pos(), "while condition must be int, got %s", testTy.TypeName())
	}
	done := c.tr.NewLabel()
	bodyIR, bodyTy, err := c.transExp(ctx.withBreak(done), e.Body)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := bodyTy.(types.Unit); !ok {
		return nil, nil, errors.NewTypeError(e.Body.Pos(), "while body must be unit, got %s", bodyTy.TypeName())
	}
	return c.tr.WhileLoop(testIR, bodyIR, done), types.Unit{}, nil
}

// transFor implements spec §4.1's for-loop rule. The loop variable and
// the upper bound are each bound once, read-only, in fresh locals named
// `i` and `limit`; the loop tests `i <= limit` exactly once up front and
// then runs unconditionally, incrementing `i` only while `i < limit` and
// otherwise breaking:
//
//	let i := lo; limit := hi in
//	  if i <= limit then
//	    while 1 do ( body;
//	                 if i < limit then i := i+1 else break )
//
// This avoids re-testing the bound every iteration, which would wrap
// `i` past its maximum representable value when `hi` is already the
// largest int (spec §4.1, §9).
func (c *Checker) transFor(ctx context, e *ast.ForExp) (ir.Expr, types.Type, error) {
	loIR, loTy, err := c.transExp(ctx, e.Lo)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := loTy.(types.Int); !ok {
		return nil, nil, errors.NewTypeError(e.Lo.Pos(), "for lower bound must be int, got %s", loTy.TypeName())
	}
	hiIR, hiTy, err := c.transExp(ctx, e.Hi)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := hiTy.(types.Int); !ok {
		return nil, nil, errors.NewTypeError(e.Hi.Pos(), "for upper bound must be int, got %s", hiTy.TypeName())
	}

	iAcc := c.tr.AllocLocal(ctx.level, true)
	limitAcc := c.tr.AllocLocal(ctx.level, true)
	iVar := c.tr.SimpleVar(iAcc, ctx.level)
	limitVar := c.tr.SimpleVar(limitAcc, ctx.level)

	loopVenv := ctx.venv.Extend(e.Var, &VarEntry{Access: iAcc, Typ: types.Int{}, ReadOnly: true})

	done := c.tr.NewLabel()
	bodyCtx := ctx.withVEnv(loopVenv).withBreak(done)
	bodyIR, bodyTy, err := c.transExp(bodyCtx, e.Body)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := bodyTy.(types.Unit); !ok {
		return nil, nil, errors.NewTypeError(e.Body.Pos(), "for body must be unit, got %s", bodyTy.TypeName())
	}

	step := c.tr.IfCondUnitBody(
		c.tr.Relop(ir.Lt, iVar, limitVar),
		c.tr.Assign(iVar, c.tr.Binop(ir.Plus, iVar, c.tr.Const(1))),
		c.tr.Break(done),
	)
	loopBody := c.tr.Seq([]ir.Expr{bodyIR, step})
	loop := c.tr.WhileLoop(c.tr.Const(1), loopBody, done)
	guarded := c.tr.IfThenUnit(c.tr.Relop(ir.Le, iVar, limitVar), loop)

	return c.tr.Seq([]ir.Expr{
		c.tr.Assign(iVar, loIR),
		c.tr.Assign(limitVar, hiIR),
		guarded,
	}), types.Unit{}, nil
}

func (c *Checker) transLet(ctx context, e *ast.LetExp) (ir.Expr, types.Type, error) {
	cur := ctx
	var inits []ir.Expr
	for _, dec := range e.Decs {
		newCtx, decInits, err := c.transDec(cur, dec)
		if err != nil {
			return nil, nil, err
		}
		cur = newCtx
		inits = append(inits, decInits...)
	}
	bodyIR, bodyTy, err := c.transExp(cur, e.Body)
	if err != nil {
		return nil, nil, err
	}
	return c.tr.LetBody(inits, bodyIR), bodyTy, nil
}

func (c *Checker) transCall(ctx context, e *ast.CallExp) (ir.Expr, types.Type, error) {
	entry, ok := ctx.venv.Lookup(e.Func)
	if !ok {
		return nil, nil, errors.NewUndefined(e.EPos, "undefined function %s", e.Func)
	}
	fe, ok := entry.(*FuncEntry)
	if !ok {
		return nil, nil, errors.NewTypeError(e.EPos, "%s is not a function", e.Func)
	}
	if len(e.Args) != len(fe.Params) {
		return nil, nil, errors.NewTypeError(e.EPos, "%s expects %d arguments, got %d", e.Func, len(fe.Params), len(e.Args))
	}
	argIRs := make([]ir.Expr, len(e.Args))
	for i, a := range e.Args {
		argIR, argTy, err := c.transExp(ctx, a)
		if err != nil {
			return nil, nil, err
		}
		want := c.actualTy(ctx.tenv, fe.Params[i])
		if !types.Compatible(want, argTy) {
			return nil, nil, errors.NewTypeError(a.Pos(), "argument %d to %s expects %s, got %s", i+1, e.Func, want.TypeName(), argTy.TypeName())
		}
		argIRs[i] = argIR
	}
	if fe.External {
		return c.tr.ExternalCall(fe.Label, argIRs), c.actualTy(ctx.tenv, fe.Result), nil
	}
	parent := fe.Level.Parent
	return c.tr.Call(parent, ctx.level, fe.Label, argIRs), c.actualTy(ctx.tenv, fe.Result), nil
}
