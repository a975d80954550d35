// Package translate implements TR, the translator/frame abstraction of
// spec §4.2: it hides frame/level bookkeeping behind IR constructors and
// accumulates the completed fragment list.
//
// The source design (spec §4.1) distinguishes expression-, statement-,
// and conditional-shaped translations (Ex/Nx/Cx in the classical
// treatment) so that short-circuiting conditions can be compiled
// lazily. Spec §4.1 instead fixes relational results as eager INT 0/1
// values, so this implementation represents every translated
// sub-expression uniformly as an ir.Expr; UNIT-typed results simply carry
// an unobserved value (NoValue), matching how the type checker already
// tracks "no value" via the Unit type rather than via the IR shape.
package translate

import (
	"github.com/tiger-lang/tigerc/internal/frame"
	"github.com/tiger-lang/tigerc/internal/ir"
	"github.com/tiger-lang/tigerc/internal/temp"
	"github.com/tiger-lang/tigerc/internal/types"
)

// Access pairs a frame.Access with the Level it was allocated in, which
// is exactly what's needed to compute the static-link chain from any use
// site back to the variable's home frame.
type Access struct {
	Level *frame.Level
	Acc   frame.Access
}

// Translator is TR: it mints IR fragments and tracks the process-local
// generator instances for one compilation (spec §5).
type Translator struct {
	gen   *temp.Generator
	frags []Fragment
}

// New creates a Translator sharing gen with the rest of the compilation
// (symbol interning and uniq minting live in their own small state
// objects; only label/temp generation is shared with the type checker,
// which needs fresh labels for break targets and the `for` desugaring).
func New(gen *temp.Generator) *Translator {
	return &Translator{gen: gen}
}

// Outermost is the sentinel level enclosing top-level declarations.
func (tr *Translator) Outermost() *frame.Level { return frame.Outermost }

// NewLevel allocates a new function activation nested under parent.
func (tr *Translator) NewLevel(parent *frame.Level, label temp.Label, escapes []bool) *frame.Level {
	return frame.NewLevel(tr.gen, parent, label, escapes)
}

// NewLabel mints a fresh label, used by the type checker for break
// targets and loop-desugaring labels.
func (tr *Translator) NewLabel() temp.Label { return tr.gen.NewLabel() }

// NamedLabel wraps a function's external name as a Label without
// consuming the counter.
func (tr *Translator) NamedLabel(name string) temp.Label { return tr.gen.NamedLabel(name) }

// Formals returns the Accesses for level's formal parameters, tagged with
// level so SimpleVar can later find them from any nested use site.
func (tr *Translator) Formals(level *frame.Level) []Access {
	raw := level.Formals()
	out := make([]Access, len(raw))
	for i, a := range raw {
		out[i] = Access{Level: level, Acc: a}
	}
	return out
}

// AllocLocal reserves a new local variable in level's frame.
func (tr *Translator) AllocLocal(level *frame.Level, escape bool) Access {
	return Access{Level: level, Acc: level.AllocLocal(tr.gen, escape)}
}

// framePointerAt returns the IR expression that computes target's frame
// address, starting from useLevel's own (architecturally reserved) frame
// pointer and following static links outward.
func framePointerAt(target, useLevel *frame.Level) ir.Expr {
	addr := ir.Expr(ir.TempExpr{Temp: temp.FP})
	cur := useLevel
	for cur != target && cur.Parent != nil {
		sl, ok := cur.StaticLink().(frame.InFrame)
		if !ok {
			break
		}
		addr = ir.Mem{Addr: ir.Binop{Op: ir.Plus, Left: addr, Right: ir.Const{Value: int64(sl.Offset)}}}
		cur = cur.Parent
	}
	return addr
}

// SimpleVar reads the variable at acc from code running at useLevel,
// chaining static links as needed (spec §4.2).
func (tr *Translator) SimpleVar(acc Access, useLevel *frame.Level) ir.Expr {
	switch a := acc.Acc.(type) {
	case frame.InReg:
		return ir.TempExpr{Temp: a.Temp}
	case frame.InFrame:
		base := framePointerAt(acc.Level, useLevel)
		return ir.Mem{Addr: ir.Binop{Op: ir.Plus, Left: base, Right: ir.Const{Value: int64(a.Offset)}}}
	default:
		panic("translate: unknown access kind")
	}
}

// VarField computes the address of field `name` within the record value
// at base, given the already-resolved field list. It returns ok=false if
// no such field exists.
func (tr *Translator) VarField(base ir.Expr, fields []types.RecordField, name string) (ir.Expr, bool) {
	for i, f := range fields {
		if f.Name == name {
			offset := int64(i) * frame.WordSize
			return ir.Mem{Addr: ir.Binop{Op: ir.Plus, Left: base, Right: ir.Const{Value: offset}}}, true
		}
	}
	return nil, false
}

// VarSubscript computes the address of array element index within the
// array value at base. Bounds checking is delegated to the runtime (spec
// §4.2); the core only emits the address arithmetic.
func (tr *Translator) VarSubscript(base, index ir.Expr) ir.Expr {
	offset := ir.Binop{Op: ir.Mul, Left: index, Right: ir.Const{Value: frame.WordSize}}
	return ir.Mem{Addr: ir.Binop{Op: ir.Plus, Left: base, Right: offset}}
}

// Const builds an integer literal.
func (tr *Translator) Const(n int64) ir.Expr { return ir.Const{Value: n} }

// Str interns a string literal as a fresh data-segment fragment and
// returns the expression referencing its label.
func (tr *Translator) Str(s string) ir.Expr {
	label := tr.gen.NewLabel()
	tr.frags = append(tr.frags, StringFragment{Label: label, Value: s})
	return ir.Name{Label: label}
}

// Nil builds the null record value (a zero address).
func (tr *Translator) Nil() ir.Expr { return ir.Const{Value: 0} }

// NoValue is the IR carried by every UNIT-typed expression: its value is
// never observed by well-typed code, so any constant will do.
func (tr *Translator) NoValue() ir.Expr { return ir.Const{Value: 0} }

// Binop applies an arithmetic/bitwise operator.
func (tr *Translator) Binop(op ir.BinOp, left, right ir.Expr) ir.Expr {
	return ir.Binop{Op: op, Left: left, Right: right}
}

// Relop evaluates a relational comparison eagerly into an INT 0/1,
// matching spec §4.1's "Relational... result INT (0/1)".
func (tr *Translator) Relop(op ir.RelOp, left, right ir.Expr) ir.Expr {
	tlabel, flabel, done := tr.gen.NewLabel(), tr.gen.NewLabel(), tr.gen.NewLabel()
	t := tr.gen.NewTemp()
	stmts := []ir.Stmt{
		ir.Cjump{Op: op, Left: left, Right: right, True: tlabel, False: flabel},
		ir.Label{Label: tlabel},
		ir.Move{Dst: ir.TempExpr{Temp: t}, Src: ir.Const{Value: 1}},
		ir.Jump{Target: ir.Name{Label: done}, Labels: []temp.Label{done}},
		ir.Label{Label: flabel},
		ir.Move{Dst: ir.TempExpr{Temp: t}, Src: ir.Const{Value: 0}},
		ir.Label{Label: done},
	}
	return ir.Eseq{Stmt: ir.SeqOf(stmts), Value: ir.TempExpr{Temp: t}}
}

// StringCmp emits the runtime call implementing string equality
// (op must be Eq or Ne; any other op is a translator bug, since spec
// §4.1 only routes `=`/`<>` through content comparison).
func (tr *Translator) StringCmp(op ir.RelOp, left, right ir.Expr) ir.Expr {
	call := ir.Call{Fn: ir.Name{Label: tr.gen.NamedLabel("stringEqual")}, Args: []ir.Expr{left, right}}
	if op == ir.Eq {
		return call
	}
	return ir.Binop{Op: ir.Xor, Left: call, Right: ir.Const{Value: 1}}
}

// Assign builds `dst := src`, a UNIT-typed expression.
func (tr *Translator) Assign(dst, src ir.Expr) ir.Expr {
	return ir.Eseq{Stmt: ir.Move{Dst: dst, Src: src}, Value: tr.NoValue()}
}

// Seq chains expressions for effect, left to right, yielding the last
// one's value (or UNIT if exps is empty), matching spec §4.1's sequence
// rule.
func (tr *Translator) Seq(exps []ir.Expr) ir.Expr {
	if len(exps) == 0 {
		return tr.NoValue()
	}
	last := exps[len(exps)-1]
	if len(exps) == 1 {
		return last
	}
	stmts := make([]ir.Stmt, 0, len(exps)-1)
	for _, e := range exps[:len(exps)-1] {
		stmts = append(stmts, ir.Exp{Expr: e})
	}
	return ir.Eseq{Stmt: ir.SeqOf(stmts), Value: last}
}

// LetBody chains inits as effects ahead of body, matching spec §4.1.2:
// "initialization statements... are prepended to the body IR."
func (tr *Translator) LetBody(inits []ir.Expr, body ir.Expr) ir.Expr {
	if len(inits) == 0 {
		return body
	}
	stmts := make([]ir.Stmt, 0, len(inits))
	for _, e := range inits {
		stmts = append(stmts, ir.Exp{Expr: e})
	}
	return ir.Eseq{Stmt: ir.SeqOf(stmts), Value: body}
}

func condJump(test ir.Expr, t, f temp.Label) ir.Stmt {
	return ir.Cjump{Op: ir.Ne, Left: test, Right: ir.Const{Value: 0}, True: t, False: f}
}

// IfThenUnit builds the without-else `if` form (spec §4.1): test must be
// nonzero to run then; the whole expression is UNIT.
func (tr *Translator) IfThenUnit(test, then ir.Expr) ir.Expr {
	tlabel, done := tr.gen.NewLabel(), tr.gen.NewLabel()
	stmts := []ir.Stmt{
		condJump(test, tlabel, done),
		ir.Label{Label: tlabel},
		ir.Exp{Expr: then},
		ir.Label{Label: done},
	}
	return ir.Eseq{Stmt: ir.SeqOf(stmts), Value: tr.NoValue()}
}

// IfCondUnitBody builds the with-else form when both branches are UNIT:
// a statement-shaped conditional with no merged value.
func (tr *Translator) IfCondUnitBody(test, then, els ir.Expr) ir.Expr {
	tlabel, flabel, done := tr.gen.NewLabel(), tr.gen.NewLabel(), tr.gen.NewLabel()
	stmts := []ir.Stmt{
		condJump(test, tlabel, flabel),
		ir.Label{Label: tlabel},
		ir.Exp{Expr: then},
		ir.Jump{Target: ir.Name{Label: done}, Labels: []temp.Label{done}},
		ir.Label{Label: flabel},
		ir.Exp{Expr: els},
		ir.Label{Label: done},
	}
	return ir.Eseq{Stmt: ir.SeqOf(stmts), Value: tr.NoValue()}
}

// IfCondNonUnitBody builds the with-else form when both branches carry a
// value: a value-shaped conditional writing into a shared temporary.
func (tr *Translator) IfCondNonUnitBody(test, then, els ir.Expr) ir.Expr {
	tlabel, flabel, done := tr.gen.NewLabel(), tr.gen.NewLabel(), tr.gen.NewLabel()
	t := tr.gen.NewTemp()
	stmts := []ir.Stmt{
		condJump(test, tlabel, flabel),
		ir.Label{Label: tlabel},
		ir.Move{Dst: ir.TempExpr{Temp: t}, Src: then},
		ir.Jump{Target: ir.Name{Label: done}, Labels: []temp.Label{done}},
		ir.Label{Label: flabel},
		ir.Move{Dst: ir.TempExpr{Temp: t}, Src: els},
		ir.Label{Label: done},
	}
	return ir.Eseq{Stmt: ir.SeqOf(stmts), Value: ir.TempExpr{Temp: t}}
}

// WhileLoop builds a while-loop; done is pre-minted by the caller so
// `break` inside body can already reference it when body is translated
// (spec §4.1: "installs a fresh break label = done").
func (tr *Translator) WhileLoop(test, body ir.Expr, done temp.Label) ir.Expr {
	testLabel, bodyLabel := tr.gen.NewLabel(), tr.gen.NewLabel()
	stmts := []ir.Stmt{
		ir.Label{Label: testLabel},
		condJump(test, bodyLabel, done),
		ir.Label{Label: bodyLabel},
		ir.Exp{Expr: body},
		ir.Jump{Target: ir.Name{Label: testLabel}, Labels: []temp.Label{testLabel}},
		ir.Label{Label: done},
	}
	return ir.Eseq{Stmt: ir.SeqOf(stmts), Value: tr.NoValue()}
}

// Break jumps to label, the enclosing loop's done label.
func (tr *Translator) Break(label temp.Label) ir.Expr {
	return ir.Eseq{Stmt: ir.Jump{Target: ir.Name{Label: label}, Labels: []temp.Label{label}}, Value: tr.NoValue()}
}

// Call invokes the function at fn (whose static home is calleeParent),
// prepending the static link computed by climbing from callerLevel.
func (tr *Translator) Call(calleeParent, callerLevel *frame.Level, fn temp.Label, args []ir.Expr) ir.Expr {
	link := framePointerAt(calleeParent, callerLevel)
	allArgs := make([]ir.Expr, 0, len(args)+1)
	allArgs = append(allArgs, link)
	allArgs = append(allArgs, args...)
	return ir.Call{Fn: ir.Name{Label: fn}, Args: allArgs}
}

// ExternalCall invokes an external runtime/library entry point (spec
// §3/§6's standard library functions) with no static link: these are
// plain external symbols, not nested Tiger functions, so there is no
// enclosing frame to chain back to (Appel's externalCall).
func (tr *Translator) ExternalCall(fn temp.Label, args []ir.Expr) ir.Expr {
	return ir.Call{Fn: ir.Name{Label: fn}, Args: args}
}

// Record allocates a record of len(fields) words and initializes each
// field in declaration order (spec §4.1: "Emits an allocation call
// followed by ordered field initializations").
func (tr *Translator) Record(fields []ir.Expr) ir.Expr {
	r := tr.gen.NewTemp()
	size := int64(len(fields)) * frame.WordSize
	stmts := make([]ir.Stmt, 0, len(fields)+1)
	stmts = append(stmts, ir.Move{
		Dst: ir.TempExpr{Temp: r},
		Src: ir.Call{Fn: ir.Name{Label: tr.gen.NamedLabel("allocRecord")}, Args: []ir.Expr{ir.Const{Value: size}}},
	})
	for i, f := range fields {
		stmts = append(stmts, ir.Move{
			Dst: ir.Mem{Addr: ir.Binop{Op: ir.Plus, Left: ir.TempExpr{Temp: r}, Right: ir.Const{Value: int64(i) * frame.WordSize}}},
			Src: f,
		})
	}
	return ir.Eseq{Stmt: ir.SeqOf(stmts), Value: ir.TempExpr{Temp: r}}
}

// Array allocates an array of size elements, each initialized to init.
func (tr *Translator) Array(size, init ir.Expr) ir.Expr {
	return ir.Call{Fn: ir.Name{Label: tr.gen.NamedLabel("initArray")}, Args: []ir.Expr{size, init}}
}

// ProcEntryExit wraps body with the prologue/epilogue convention (moving
// the result into the reserved return-value register unless this is a
// procedure), canonicalizes it, and appends it to the fragment list.
func (tr *Translator) ProcEntryExit(level *frame.Level, body ir.Expr, isProcedure bool) {
	var raw ir.Stmt
	if isProcedure {
		raw = ir.Exp{Expr: body}
	} else {
		raw = ir.Move{Dst: ir.TempExpr{Temp: temp.RV}, Src: body}
	}
	canon := ir.SeqOf(ir.Canonicalize(tr.gen, raw))
	tr.frags = append(tr.frags, ProcFragment{Body: canon, Level: level})
}

// GetResult returns the completed fragment list. Fragments accumulate
// monotonically during TT and are frozen once this is called for code
// generation (spec §5).
func (tr *Translator) GetResult() []Fragment {
	return tr.frags
}
