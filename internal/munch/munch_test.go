package munch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tiger-lang/tigerc/internal/ir"
	"github.com/tiger-lang/tigerc/internal/temp"
)

func TestSelectProc_StoreWithDisplacement(t *testing.T) {
	gen := temp.NewGenerator()
	base := gen.NewTemp()
	src := gen.NewTemp()

	stmts := []ir.Stmt{
		ir.Move{
			Dst: ir.Mem{Addr: ir.Binop{Op: ir.Plus, Left: ir.TempExpr{Temp: base}, Right: ir.Const{Value: 16}}},
			Src: ir.TempExpr{Temp: src},
		},
	}

	instrs := SelectProc(gen, stmts)
	require.Len(t, instrs, 1)
	require.Equal(t, OpKind, instrs[0].Kind)
	require.Equal(t, []temp.Temp{base, src}, instrs[0].Src)
	require.Contains(t, instrs[0].Assem, "16(")
}

func TestSelectProc_RegisterMoveElided(t *testing.T) {
	gen := temp.NewGenerator()
	tt := gen.NewTemp()

	stmts := []ir.Stmt{
		ir.Move{Dst: ir.TempExpr{Temp: tt}, Src: ir.TempExpr{Temp: tt}},
	}

	instrs := SelectProc(gen, stmts)
	require.Empty(t, instrs, "moving a temp to itself should not emit an instruction")
}

func TestSelectProc_BinopIntoFreshTemp(t *testing.T) {
	gen := temp.NewGenerator()
	a, b := gen.NewTemp(), gen.NewTemp()
	dst := gen.NewTemp()

	stmts := []ir.Stmt{
		ir.Move{
			Dst: ir.TempExpr{Temp: dst},
			Src: ir.Binop{Op: ir.Plus, Left: ir.TempExpr{Temp: a}, Right: ir.TempExpr{Temp: b}},
		},
	}

	instrs := SelectProc(gen, stmts)
	require.Len(t, instrs, 2, "one ADD into a fresh temp, then a move into dst")
	require.Contains(t, instrs[0].Assem, "ADD")
	require.Equal(t, []temp.Temp{a, b}, instrs[0].Src)
	require.Equal(t, MoveKind, instrs[1].Kind)
	require.Equal(t, []temp.Temp{dst}, instrs[1].Dst)
}

func TestSelectProc_CallArgumentRegisters(t *testing.T) {
	gen := temp.NewGenerator()
	fn := gen.NamedLabel("f")
	args := make([]ir.Expr, temp.ArgRegCount+1)
	for i := range args {
		args[i] = ir.Const{Value: int64(i)}
	}

	stmts := []ir.Stmt{
		ir.Exp{Expr: ir.Call{Fn: ir.Name{Label: fn}, Args: args}},
	}

	instrs := SelectProc(gen, stmts)

	var moves, stores, calls int
	for _, in := range instrs {
		switch {
		case in.Kind == MoveKind:
			moves++
		case in.Kind == OpKind && len(in.Assem) >= 5 && in.Assem[:5] == "STORE":
			stores++
		case in.Kind == OpKind && len(in.Assem) >= 4 && in.Assem[:4] == "CALL":
			calls++
			require.Contains(t, in.Dst, temp.RV)
			for _, r := range temp.ArgRegs {
				require.Contains(t, in.Dst, r)
			}
		}
	}
	require.Equal(t, temp.ArgRegCount, moves, "first ArgRegCount args move into argument registers")
	require.Equal(t, 1, stores, "the extra argument spills to an outgoing-arg slot")
	require.Equal(t, 1, calls)
}

func TestSelectProc_CjumpListsBothTargets(t *testing.T) {
	gen := temp.NewGenerator()
	a, b := gen.NewTemp(), gen.NewTemp()
	tLabel, fLabel := gen.NewLabel(), gen.NewLabel()

	stmts := []ir.Stmt{
		ir.Cjump{Op: ir.Lt, Left: ir.TempExpr{Temp: a}, Right: ir.TempExpr{Temp: b}, True: tLabel, False: fLabel},
	}

	instrs := SelectProc(gen, stmts)
	require.Len(t, instrs, 2, "branch instruction plus its mandated delay-slot no-op")
	require.Equal(t, []temp.Label{tLabel, fLabel}, instrs[0].Jumps)
	require.Equal(t, "NOP", instrs[1].Assem)
}

func TestSelectProc_UnmatchedCallCalleePanics(t *testing.T) {
	gen := temp.NewGenerator()
	stmts := []ir.Stmt{
		ir.Exp{Expr: ir.Call{Fn: ir.TempExpr{Temp: gen.NewTemp()}, Args: nil}},
	}
	require.Panics(t, func() { SelectProc(gen, stmts) })
}

func TestSelectProc_LabelPseudoInstruction(t *testing.T) {
	gen := temp.NewGenerator()
	l := gen.NewLabel()
	instrs := SelectProc(gen, []ir.Stmt{ir.Label{Label: l}})
	require.Len(t, instrs, 1)
	require.Equal(t, LabelKind, instrs[0].Kind)
}

func TestInstrFormat_SubstitutesPlaceholders(t *testing.T) {
	gen := temp.NewGenerator()
	i := Instr{Assem: "MOVE 'd0, 's0", Dst: []temp.Temp{gen.NewTemp()}, Src: []temp.Temp{gen.NewTemp()}}
	got := i.Format(func(temp.Temp) string { return "r0" })
	require.Equal(t, "MOVE r0, r0", got)
}
