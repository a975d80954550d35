package munch

import (
	"fmt"

	"github.com/tiger-lang/tigerc/internal/errors"
	"github.com/tiger-lang/tigerc/internal/frame"
	"github.com/tiger-lang/tigerc/internal/ir"
	"github.com/tiger-lang/tigerc/internal/temp"
	"github.com/tiger-lang/tigerc/internal/token"
)

// zeroPos stands in for a source position on instructions, which have
// none of their own -- by the time IS runs, spec §4.1.3's user-facing
// errors have already been ruled out, so only Internal ever reaches here.
var zeroPos = token.Position{}

// binopMnemonic and relMnemonic name the assembly opcode for each tree-IR
// operator; the instruction's Assem template embeds these directly since
// spec §4.3 does not prescribe concrete mnemonics, only the tiling rule.
var binopMnemonic = [...]string{"ADD", "SUB", "MUL", "DIV", "AND", "OR", "SLL", "SRL", "SRA", "XOR"}
var relMnemonic = [...]string{"BEQ", "BNE", "BLT", "BGT", "BLE", "BGE", "BLTU", "BLEU", "BGTU", "BGEU"}

// Selector accumulates the instruction list for a single function body
// (spec §4.3: "Consumes canonical IR of a single function body").
type Selector struct {
	gen    *temp.Generator
	instrs []Instr
}

// NewSelector returns a Selector sharing gen so instructions it mints
// (for intermediate arithmetic results) come from the same counter as
// the rest of the compilation.
func NewSelector(gen *temp.Generator) *Selector {
	return &Selector{gen: gen}
}

// SelectProc tiles a canonicalized statement list (the output of
// ir.Canonicalize) into the instruction list IS hands to the emitter.
func SelectProc(gen *temp.Generator, stmts []ir.Stmt) []Instr {
	s := NewSelector(gen)
	for _, st := range stmts {
		s.munchStmt(st)
	}
	return s.instrs
}

func (s *Selector) emit(i Instr) {
	s.instrs = append(s.instrs, i)
}

// emitBranch appends a control-transfer instruction, then a no-op --
// spec §4.3's "Branch hygiene": "a no-op must be emitted after every
// taken control-transfer instruction if the target ISA has delay slots.
// This contract is named explicitly because the core chooses it."
func (s *Selector) emitBranch(i Instr) {
	s.emit(i)
	s.emit(Instr{Kind: OpKind, Assem: "NOP"})
}

func (s *Selector) munchStmt(st ir.Stmt) {
	switch st := st.(type) {
	case ir.Seq:
		// Canonicalize is expected to have flattened every Seq into the
		// slice SelectProc iterates; a surviving Seq here means this
		// statement never went through canonicalization.
		errors.Panic(zeroPos, "munch: unexpected Seq, statement was not canonicalized")

	case ir.Label:
		s.emit(Instr{Kind: LabelKind, Assem: st.Label.String() + ":"})

	case ir.Jump:
		name, ok := st.Target.(ir.Name)
		if !ok {
			errors.Panic(zeroPos, "munch: Jump target is not a Name after canonicalization")
		}
		s.emitBranch(Instr{
			Kind:  OpKind,
			Assem: fmt.Sprintf("JMP %s", name.Label),
			Jumps: st.Labels,
		})

	case ir.Cjump:
		l := s.munchExpr(st.Left)
		r := s.munchExpr(st.Right)
		mnem := relMnemonic[st.Op]
		s.emitBranch(Instr{
			Kind:  OpKind,
			Assem: fmt.Sprintf("%s 's0, 's1, %s", mnem, st.True),
			Src:   []temp.Temp{l, r},
			Jumps: []temp.Label{st.True, st.False},
		})

	case ir.Move:
		s.munchMove(st)

	case ir.Exp:
		if call, ok := st.Expr.(ir.Call); ok {
			s.munchCall(call)
			return
		}
		s.munchExpr(st.Expr)

	default:
		errors.Panic(zeroPos, "munch: unhandled statement %T", st)
	}
}

// munchMove implements spec §4.3's required store/move tiles: a store
// with a constant displacement is tiled specially so the offset is
// folded into the instruction instead of computed at runtime; every
// other Mem destination falls back to the generic store; every Temp
// destination is a register move.
func (s *Selector) munchMove(mv ir.Move) {
	switch dst := mv.Dst.(type) {
	case ir.Mem:
		if bin, ok := dst.Addr.(ir.Binop); ok && bin.Op == ir.Plus {
			if c, ok := bin.Right.(ir.Const); ok {
				base := s.munchExpr(bin.Left)
				src := s.munchExpr(mv.Src)
				s.emit(Instr{
					Kind:  OpKind,
					Assem: fmt.Sprintf("STORE 's1, %d('s0)", c.Value),
					Src:   []temp.Temp{base, src},
				})
				return
			}
			if c, ok := bin.Left.(ir.Const); ok {
				base := s.munchExpr(bin.Right)
				src := s.munchExpr(mv.Src)
				s.emit(Instr{
					Kind:  OpKind,
					Assem: fmt.Sprintf("STORE 's1, %d('s0)", c.Value),
					Src:   []temp.Temp{base, src},
				})
				return
			}
		}
		base := s.munchExpr(dst.Addr)
		src := s.munchExpr(mv.Src)
		s.emit(Instr{
			Kind:  OpKind,
			Assem: "STORE 's1, 0('s0)",
			Src:   []temp.Temp{base, src},
		})

	case ir.TempExpr:
		if call, ok := mv.Src.(ir.Call); ok {
			result := s.munchCall(call)
			if result == dst.Temp {
				return
			}
			s.emit(Instr{Kind: MoveKind, Assem: "MOVE 'd0, 's0", Dst: []temp.Temp{dst.Temp}, Src: []temp.Temp{result}})
			return
		}
		src := s.munchExpr(mv.Src)
		if src == dst.Temp {
			return
		}
		s.emit(Instr{Kind: MoveKind, Assem: "MOVE 'd0, 's0", Dst: []temp.Temp{dst.Temp}, Src: []temp.Temp{src}})

	default:
		errors.Panic(zeroPos, "munch: Move destination is neither Mem nor Temp (%T)", mv.Dst)
	}
}

// munchExpr tiles an expression, returning the temp holding its value.
func (s *Selector) munchExpr(e ir.Expr) temp.Temp {
	switch e := e.(type) {
	case ir.TempExpr:
		return e.Temp

	case ir.Const:
		t := s.gen.NewTemp()
		s.emit(Instr{Kind: OpKind, Assem: fmt.Sprintf("LI 'd0, %d", e.Value), Dst: []temp.Temp{t}})
		return t

	case ir.Name:
		t := s.gen.NewTemp()
		s.emit(Instr{Kind: OpKind, Assem: fmt.Sprintf("LA 'd0, %s", e.Label), Dst: []temp.Temp{t}})
		return t

	case ir.Mem:
		if bin, ok := e.Addr.(ir.Binop); ok && bin.Op == ir.Plus {
			if c, ok := bin.Right.(ir.Const); ok {
				base := s.munchExpr(bin.Left)
				t := s.gen.NewTemp()
				s.emit(Instr{Kind: OpKind, Assem: fmt.Sprintf("LOAD 'd0, %d('s0)", c.Value), Dst: []temp.Temp{t}, Src: []temp.Temp{base}})
				return t
			}
		}
		base := s.munchExpr(e.Addr)
		t := s.gen.NewTemp()
		s.emit(Instr{Kind: OpKind, Assem: "LOAD 'd0, 0('s0)", Dst: []temp.Temp{t}, Src: []temp.Temp{base}})
		return t

	case ir.Binop:
		l := s.munchExpr(e.Left)
		r := s.munchExpr(e.Right)
		t := s.gen.NewTemp()
		s.emit(Instr{
			Kind:  OpKind,
			Assem: fmt.Sprintf("%s 'd0, 's0, 's1", binopMnemonic[e.Op]),
			Dst:   []temp.Temp{t},
			Src:   []temp.Temp{l, r},
		})
		return t

	case ir.Call:
		return s.munchCall(e)

	default:
		errors.Panic(zeroPos, "munch: unhandled expression %T (Eseq must not survive canonicalization)", e)
		panic("unreachable")
	}
}

// munchCall implements spec §4.3's Call tile and "Argument passing"
// rule: the first temp.ArgRegCount arguments are moved into the fixed
// argument registers and listed as uses (so liveness is preserved
// through the call); the rest are stored to outgoing-argument frame
// slots ahead of the call. The call instruction's defs list every
// register the callee may clobber, so the allocator does not keep a
// value live across it in a caller-saved register.
func (s *Selector) munchCall(call ir.Call) temp.Temp {
	name, ok := call.Fn.(ir.Name)
	if !ok {
		errors.Panic(zeroPos, "munch: Call callee is not a Name after canonicalization")
	}

	uses := make([]temp.Temp, 0, len(call.Args))
	for i, arg := range call.Args {
		v := s.munchExpr(arg)
		if i < temp.ArgRegCount {
			dst := temp.ArgRegs[i]
			s.emit(Instr{Kind: MoveKind, Assem: "MOVE 'd0, 's0", Dst: []temp.Temp{dst}, Src: []temp.Temp{v}})
			uses = append(uses, dst)
		} else {
			offset := (i - temp.ArgRegCount) * frame.WordSize
			s.emit(Instr{
				Kind:  OpKind,
				Assem: fmt.Sprintf("STORE 's0, %d(SP)", offset),
				Src:   []temp.Temp{v},
			})
		}
	}

	defs := make([]temp.Temp, 0, temp.ArgRegCount+1)
	defs = append(defs, temp.RV)
	defs = append(defs, temp.ArgRegs[:]...)

	s.emit(Instr{
		Kind:  OpKind,
		Assem: fmt.Sprintf("CALL %s", name.Label),
		Dst:   defs,
		Src:   uses,
	})
	return temp.RV
}
