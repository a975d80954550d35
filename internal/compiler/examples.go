package compiler

import (
	"github.com/tiger-lang/tigerc/internal/ast"
	"github.com/tiger-lang/tigerc/internal/symbol"
	"github.com/tiger-lang/tigerc/internal/token"
)

// Examples names the canned programs ExampleProgram can build. The
// lexer and parser that would normally turn Tiger source text into an
// ast.Expr are external collaborators (spec §1/§6); until one is wired
// up, the CLI exercises the core against these fixed, hand-built ASTs.
var Examples = []string{"sum-to-n", "record-list", "mutual-recursion"}

// ExampleProgram builds the AST for one of the Examples by name,
// interning every identifier it uses into syms.
func ExampleProgram(syms *symbol.Table, name string) (ast.Expr, bool) {
	switch name {
	case "sum-to-n":
		return sumToN(syms), true
	case "record-list":
		return recordList(syms), true
	case "mutual-recursion":
		return mutualRecursion(syms), true
	default:
		return nil, false
	}
}

var zeroPos = token.Position{}

// sumToN is `let var s := 0 in for i := 1 to 10 do s := s + i end`,
// exercising the For rule's i/limit desugaring (spec §4.1) and a nested
// read of an enclosing let-bound variable from inside the loop body.
func sumToN(syms *symbol.Table) ast.Expr {
	s := syms.Intern("s")
	i := syms.Intern("i")

	body := &ast.LetExp{
		EPos: zeroPos,
		Decs: []ast.Dec{
			&ast.VarDec{DPos: zeroPos, Name: s, Init: &ast.IntExp{EPos: zeroPos, Value: 0}},
		},
		Body: &ast.SeqExp{EPos: zeroPos, Exps: []ast.Expr{
			&ast.ForExp{
				EPos: zeroPos,
				Var:  i,
				Lo:   &ast.IntExp{EPos: zeroPos, Value: 1},
				Hi:   &ast.IntExp{EPos: zeroPos, Value: 10},
				Body: &ast.AssignExp{
					EPos: zeroPos,
					Var:  &ast.SimpleVar{VPos: zeroPos, Sym: s},
					Exp: &ast.OpExp{
						EPos: zeroPos, Op: ast.PlusOp,
						Left:  &ast.VarExp{Var: &ast.SimpleVar{VPos: zeroPos, Sym: s}},
						Right: &ast.VarExp{Var: &ast.SimpleVar{VPos: zeroPos, Sym: i}},
					},
				},
			},
		}},
	}
	return body
}

// recordList builds a self-referential `list` record type, constructs
// one value of it and returns that value, exercising the NAME-placeholder resolution for
// a record that refers to itself (spec §4.1.2).
func recordList(syms *symbol.Table) ast.Expr {
	listTy := syms.Intern("list")
	val := syms.Intern("val")
	next := syms.Intern("next")
	intTy := syms.Intern("int")
	l := syms.Intern("l")

	return &ast.LetExp{
		EPos: zeroPos,
		Decs: []ast.Dec{
			&ast.TypeDec{DPos: zeroPos, Types: []*ast.NameTy{
				{DPos: zeroPos, Name: listTy, Ty: &ast.RecordTy{TPos: zeroPos, Fields: []*ast.Field{
					{FPos: zeroPos, Name: val, Typ: intTy},
					{FPos: zeroPos, Name: next, Typ: listTy},
				}}},
			}},
			&ast.VarDec{
				DPos: zeroPos, Name: l, Typ: listTy,
				Init: &ast.RecordExp{EPos: zeroPos, Typ: listTy, Fields: []*ast.FieldExp{
					{FPos: zeroPos, Name: val, Value: &ast.IntExp{EPos: zeroPos, Value: 1}},
					{FPos: zeroPos, Name: next, Value: &ast.NilExp{EPos: zeroPos}},
				}},
			},
		},
		Body: &ast.VarExp{Var: &ast.SimpleVar{VPos: zeroPos, Sym: l}},
	}
}

// mutualRecursion declares `even`/`odd` as a mutually recursive function
// group and calls `even`, exercising two-pass signature installation and
// static-link threading for sibling calls (spec §4.1.2).
func mutualRecursion(syms *symbol.Table) ast.Expr {
	even := syms.Intern("even")
	odd := syms.Intern("odd")
	n := syms.Intern("n")
	intTy := syms.Intern("int")

	isZero := func(sym symbol.Symbol) ast.Expr {
		return &ast.OpExp{EPos: zeroPos, Op: ast.EqOp,
			Left:  &ast.VarExp{Var: &ast.SimpleVar{VPos: zeroPos, Sym: sym}},
			Right: &ast.IntExp{EPos: zeroPos, Value: 0},
		}
	}
	decrement := func(sym symbol.Symbol) ast.Expr {
		return &ast.OpExp{EPos: zeroPos, Op: ast.MinusOp,
			Left:  &ast.VarExp{Var: &ast.SimpleVar{VPos: zeroPos, Sym: sym}},
			Right: &ast.IntExp{EPos: zeroPos, Value: 1},
		}
	}

	funs := &ast.FunctionDec{DPos: zeroPos, Funs: []*ast.FunDec{
		{
			DPos: zeroPos, Name: even,
			Params: []*ast.Field{{FPos: zeroPos, Name: n, Typ: intTy}},
			Result: intTy,
			Body: &ast.IfExp{
				EPos: zeroPos,
				Test: isZero(n),
				Then: &ast.IntExp{EPos: zeroPos, Value: 1},
				Else: &ast.CallExp{EPos: zeroPos, Func: odd, Args: []ast.Expr{decrement(n)}},
			},
		},
		{
			DPos: zeroPos, Name: odd,
			Params: []*ast.Field{{FPos: zeroPos, Name: n, Typ: intTy}},
			Result: intTy,
			Body: &ast.IfExp{
				EPos: zeroPos,
				Test: isZero(n),
				Then: &ast.IntExp{EPos: zeroPos, Value: 0},
				Else: &ast.CallExp{EPos: zeroPos, Func: even, Args: []ast.Expr{decrement(n)}},
			},
		},
	}}

	return &ast.LetExp{
		EPos: zeroPos,
		Decs: []ast.Dec{funs},
		Body: &ast.CallExp{EPos: zeroPos, Func: even, Args: []ast.Expr{&ast.IntExp{EPos: zeroPos, Value: 8}}},
	}
}
