// Package ir defines the canonical tree-IR described in spec §3: a small
// expression/statement language whose sole post-canonicalization
// invariant (spec §8, invariant 1/2) is that Eseq never appears, and that
// Call only appears as the direct right-hand side of a Move to a Temp or
// as the sole argument of Exp.
package ir

import (
	"fmt"

	"github.com/tiger-lang/tigerc/internal/temp"
)

// BinOp enumerates the binary arithmetic/bitwise operators.
type BinOp int

const (
	Plus BinOp = iota
	Minus
	Mul
	Div
	And
	Or
	Lshift
	Rshift
	Arshift
	Xor
)

func (op BinOp) String() string {
	names := [...]string{"+", "-", "*", "/", "&", "|", "<<", ">>", ">>>", "^"}
	if int(op) < len(names) {
		return names[op]
	}
	return fmt.Sprintf("BinOp(%d)", int(op))
}

// RelOp enumerates the relational operators used by Cjump.
type RelOp int

const (
	Eq RelOp = iota
	Ne
	Lt
	Gt
	Le
	Ge
	Ult
	Ule
	Ugt
	Uge
)

func (op RelOp) String() string {
	names := [...]string{"=", "!=", "<", ">", "<=", ">=", "u<", "u<=", "u>", "u>="}
	if int(op) < len(names) {
		return names[op]
	}
	return fmt.Sprintf("RelOp(%d)", int(op))
}

// Negate returns the relational operator for the logically negated
// condition (used when inverting a Cjump's branch direction).
func (op RelOp) Negate() RelOp {
	switch op {
	case Eq:
		return Ne
	case Ne:
		return Eq
	case Lt:
		return Ge
	case Ge:
		return Lt
	case Gt:
		return Le
	case Le:
		return Gt
	case Ult:
		return Uge
	case Uge:
		return Ult
	case Ugt:
		return Ule
	case Ule:
		return Ugt
	default:
		return op
	}
}

// Expr is any tree-IR expression node.
type Expr interface {
	exprNode()
	fmt.Stringer
}

// Stmt is any tree-IR statement node.
type Stmt interface {
	stmtNode()
	fmt.Stringer
}

// ---- Expressions ----

// Const is an integer literal.
type Const struct{ Value int64 }

func (Const) exprNode()      {}
func (c Const) String() string { return fmt.Sprintf("%d", c.Value) }

// Name is a reference to a label's address (a function entry point or a
// string fragment's data label).
type Name struct{ Label temp.Label }

func (Name) exprNode()        {}
func (n Name) String() string { return n.Label.String() }

// TempExpr reads a symbolic register.
type TempExpr struct{ Temp temp.Temp }

func (TempExpr) exprNode()        {}
func (t TempExpr) String() string { return t.Temp.String() }

// Binop applies a binary operator to two subexpressions.
type Binop struct {
	Op          BinOp
	Left, Right Expr
}

func (Binop) exprNode() {}
func (b Binop) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// Mem dereferences an address: a load when it appears anywhere but the
// left of a Move, a store when it is the Move's destination.
type Mem struct{ Addr Expr }

func (Mem) exprNode()        {}
func (m Mem) String() string { return fmt.Sprintf("MEM(%s)", m.Addr) }

// Call invokes Fn (expected to be a Name after canonicalization, per
// spec §4.3's "Failure" clause) with Args, left-to-right evaluated
// (spec §5).
type Call struct {
	Fn   Expr
	Args []Expr
}

func (Call) exprNode() {}
func (c Call) String() string {
	return fmt.Sprintf("CALL(%s, %v)", c.Fn, c.Args)
}

// Eseq evaluates Stmt for its side effect, then yields Value. Canon
// eliminates every Eseq; it is illegal in the IR Instruction Selection
// consumes (spec invariant 1).
type Eseq struct {
	Stmt  Stmt
	Value Expr
}

func (Eseq) exprNode() {}
func (e Eseq) String() string {
	return fmt.Sprintf("ESEQ(%s, %s)", e.Stmt, e.Value)
}

// ---- Statements ----

// Move assigns Src to Dst. Dst must be a TempExpr (register write) or a
// Mem (memory store); any other Dst is a translator bug.
type Move struct {
	Dst, Src Expr
}

func (Move) stmtNode() {}
func (m Move) String() string {
	return fmt.Sprintf("MOVE(%s, %s)", m.Dst, m.Src)
}

// Exp evaluates Expr and discards the result -- the shape a bare
// procedure call takes as a statement.
type Exp struct{ Expr Expr }

func (Exp) stmtNode()        {}
func (e Exp) String() string { return fmt.Sprintf("EXP(%s)", e.Expr) }

// Jump transfers control unconditionally to Target, which must evaluate
// to one of Labels (the parser/translator-known possible destinations;
// almost always exactly one).
type Jump struct {
	Target Expr
	Labels []temp.Label
}

func (Jump) stmtNode() {}
func (j Jump) String() string {
	return fmt.Sprintf("JUMP(%s, %v)", j.Target, j.Labels)
}

// Cjump evaluates Left Op Right and jumps to True if it holds, False
// otherwise.
type Cjump struct {
	Op          RelOp
	Left, Right Expr
	True, False temp.Label
}

func (Cjump) stmtNode() {}
func (c Cjump) String() string {
	return fmt.Sprintf("CJUMP(%s, %s, %s, %s, %s)", c.Op, c.Left, c.Right, c.True, c.False)
}

// Seq sequences two statements. Canon flattens chains of Seq into a flat
// list (spec: "canonicalization... the IR is a tree").
type Seq struct {
	First, Second Stmt
}

func (Seq) stmtNode() {}
func (s Seq) String() string {
	return fmt.Sprintf("SEQ(%s, %s)", s.First, s.Second)
}

// Label marks a point in the instruction stream that Jump/Cjump may
// target.
type Label struct{ Label temp.Label }

func (Label) stmtNode()        {}
func (l Label) String() string { return l.Label.String() + ":" }

// Nop is the canonical empty statement, `Exp(Const(0))`, used as the
// identity element when building a Seq chain from zero or one
// statements.
func Nop() Stmt { return Exp{Expr: Const{Value: 0}} }

// SeqOf folds a slice of statements into a right-leaning Seq chain,
// collapsing the empty and singleton cases.
func SeqOf(stmts []Stmt) Stmt {
	switch len(stmts) {
	case 0:
		return Nop()
	case 1:
		return stmts[0]
	default:
		return Seq{First: stmts[0], Second: SeqOf(stmts[1:])}
	}
}
