package ir

import "github.com/tiger-lang/tigerc/internal/temp"

// Canonicalize rewrites a statement tree into the flat, Eseq-free,
// Call-restricted form Instruction Selection requires (spec §3's
// "Invariant (post-canonicalization)" and §8 invariants 1-2). It
// implements the classic reorder/do_stmt/do_exp algorithm: every
// expression subtree is walked left to right, and any side-effecting
// subexpression (an Eseq, or a Call needing its own temporary) is
// hoisted into a statement prefix that runs before the now-pure
// expression it replaces.
func Canonicalize(g *temp.Generator, s Stmt) []Stmt {
	c := &canonicalizer{g: g}
	return linearize(c.doStmt(s))
}

type canonicalizer struct {
	g *temp.Generator
}

// linearize flattens nested Seq nodes into a left-to-right slice.
func linearize(s Stmt) []Stmt {
	if seq, ok := s.(Seq); ok {
		return append(linearize(seq.First), linearize(seq.Second)...)
	}
	return []Stmt{s}
}

// Linearize flattens a Seq chain (e.g. a ProcFragment's already
// canonicalized Body) back into the flat statement list Instruction
// Selection consumes.
func Linearize(s Stmt) []Stmt { return linearize(s) }

func (c *canonicalizer) doStmt(s Stmt) Stmt {
	switch st := s.(type) {
	case Seq:
		return Seq{First: c.doStmt(st.First), Second: c.doStmt(st.Second)}

	case Jump:
		stmts, exprs := c.reorder([]Expr{st.Target})
		return SeqOf([]Stmt{stmts, Jump{Target: exprs[0], Labels: st.Labels}})

	case Cjump:
		stmts, exprs := c.reorder([]Expr{st.Left, st.Right})
		return SeqOf([]Stmt{stmts, Cjump{Op: st.Op, Left: exprs[0], Right: exprs[1], True: st.True, False: st.False}})

	case Move:
		switch dst := st.Dst.(type) {
		case TempExpr:
			if call, ok := st.Src.(Call); ok {
				stmts, exprs := c.reorder(append([]Expr{call.Fn}, call.Args...))
				return SeqOf([]Stmt{stmts, Move{Dst: dst, Src: Call{Fn: exprs[0], Args: exprs[1:]}}})
			}
			stmts, exprs := c.reorder([]Expr{st.Src})
			return SeqOf([]Stmt{stmts, Move{Dst: dst, Src: exprs[0]}})
		case Mem:
			stmts, exprs := c.reorder([]Expr{dst.Addr, st.Src})
			return SeqOf([]Stmt{stmts, Move{Dst: Mem{Addr: exprs[0]}, Src: exprs[1]}})
		case Eseq:
			return c.doStmt(Seq{First: dst.Stmt, Second: Move{Dst: dst.Value, Src: st.Src}})
		default:
			stmts, exprs := c.reorder([]Expr{st.Src})
			return SeqOf([]Stmt{stmts, Move{Dst: dst, Src: exprs[0]}})
		}

	case Exp:
		if call, ok := st.Expr.(Call); ok {
			stmts, exprs := c.reorder(append([]Expr{call.Fn}, call.Args...))
			return SeqOf([]Stmt{stmts, Exp{Expr: Call{Fn: exprs[0], Args: exprs[1:]}}})
		}
		stmts, exprs := c.reorder([]Expr{st.Expr})
		return SeqOf([]Stmt{stmts, Exp{Expr: exprs[0]}})

	default:
		// Label and any other effect-free leaf statement.
		return s
	}
}

func (c *canonicalizer) doExpr(e Expr) (Stmt, Expr) {
	switch ex := e.(type) {
	case Binop:
		stmts, exprs := c.reorder([]Expr{ex.Left, ex.Right})
		return stmts, Binop{Op: ex.Op, Left: exprs[0], Right: exprs[1]}

	case Mem:
		stmts, exprs := c.reorder([]Expr{ex.Addr})
		return stmts, Mem{Addr: exprs[0]}

	case Eseq:
		s1 := c.doStmt(ex.Stmt)
		s2, e2 := c.doExpr(ex.Value)
		return SeqOf([]Stmt{s1, s2}), e2

	case Call:
		stmts, exprs := c.reorder(append([]Expr{ex.Fn}, ex.Args...))
		return stmts, Call{Fn: exprs[0], Args: exprs[1:]}

	default:
		stmts, _ := c.reorder(nil)
		return stmts, e
	}
}

// reorder walks a list of expressions (e.g. a call's [fn, args...] or a
// binop's [left, right]) left to right, hoisting side effects into a
// single statement prefix and returning the now-pure expression list.
func (c *canonicalizer) reorder(exprs []Expr) (Stmt, []Expr) {
	if len(exprs) == 0 {
		return Nop(), nil
	}

	head := exprs[0]
	if _, ok := head.(Call); ok {
		// A Call used as a plain subexpression needs its own temp, since
		// nothing downstream is allowed to see a bare Call except as the
		// direct RHS of Move(Temp,_) or Exp's sole operand.
		t := c.g.NewTemp()
		head = Eseq{Stmt: Move{Dst: TempExpr{Temp: t}, Src: head}, Value: TempExpr{Temp: t}}
	}

	headStmts, pureHead := c.doExpr(head)
	restStmts, pureRest := c.reorder(exprs[1:])

	if commutes(restStmts, pureHead) {
		return SeqOf([]Stmt{headStmts, restStmts}), append([]Expr{pureHead}, pureRest...)
	}

	t := c.g.NewTemp()
	combined := SeqOf([]Stmt{headStmts, Move{Dst: TempExpr{Temp: t}, Src: pureHead}, restStmts})
	return combined, append([]Expr{TempExpr{Temp: t}}, pureRest...)
}

// commutes reports whether statement s is safe to run after expression e
// has already been evaluated, i.e. whether evaluating e first and s
// second is equivalent to s then e. Conservative: only provably
// side-effect-free cases are allowed, matching the classic canon.sml
// `commute` predicate.
func commutes(s Stmt, e Expr) bool {
	if exp, ok := s.(Exp); ok {
		if _, ok := exp.Expr.(Const); ok {
			return true
		}
	}
	switch e.(type) {
	case Name, Const:
		return true
	default:
		return false
	}
}
