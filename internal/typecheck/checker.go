package typecheck

import (
	"github.com/tiger-lang/tigerc/internal/ast"
	"github.com/tiger-lang/tigerc/internal/errors"
	"github.com/tiger-lang/tigerc/internal/frame"
	"github.com/tiger-lang/tigerc/internal/ir"
	"github.com/tiger-lang/tigerc/internal/symbol"
	"github.com/tiger-lang/tigerc/internal/temp"
	"github.com/tiger-lang/tigerc/internal/token"
	"github.com/tiger-lang/tigerc/internal/translate"
	"github.com/tiger-lang/tigerc/internal/types"
)

// Checker holds the per-compilation state TT threads through the
// recursive walk: the symbol table, the Uniq source for nominal
// record/array identity, and the Translator accumulating fragments
// (spec §5: all three are explicit values, never package globals).
type Checker struct {
	syms *symbol.Table
	uniq *types.UniqSource
	tr   *translate.Translator
}

// context is the bundle of environments threaded through every transExp/
// transVar/transDec call: the type and value environments (persistently
// extended, never mutated), the enclosing function's Level, and the
// label `break` should jump to (the zero Label when not inside a loop).
type context struct {
	tenv       *TEnv
	venv       *VEnv
	level      *frame.Level
	breakLabel temp.Label
	inLoop     bool
}

func (c context) withTEnv(t *TEnv) context   { c.tenv = t; return c }
func (c context) withVEnv(v *VEnv) context   { c.venv = v; return c }
func (c context) withBreak(l temp.Label) context {
	c.breakLabel = l
	c.inLoop = true
	return c
}

// Check runs TT over program and returns the completed fragment list
// together with the temp.Generator that minted every label/temp baked
// into those fragments' bodies (spec §3/§5): the program itself is
// treated as the body of an implicit top-level procedure, `main`,
// following the classical Tiger convention of giving the whole
// compilation unit one outermost frame. The caller must reuse this same
// Generator for instruction selection -- a fresh one would re-mint
// `t0, t1, …` and collide with the temporaries TT already wrote into
// the IR (spec §5: counters are process-wide for one compilation, not
// per-pass).
func Check(syms *symbol.Table, program ast.Expr) ([]translate.Fragment, *temp.Generator, error) {
	gen := temp.NewGenerator()
	tr := translate.New(gen)
	c := &Checker{syms: syms, uniq: types.NewUniqSource(), tr: tr}

	tenv := NewTEnv(syms)
	venv := NewVEnv(syms, tr)
	mainLabel := tr.NamedLabel("main")
	level := tr.NewLevel(tr.Outermost(), mainLabel, nil)

	ctx := context{tenv: tenv, venv: venv, level: level}

	body, _, err := c.transExp(ctx, program)
	if err != nil {
		return nil, nil, err
	}
	tr.ProcEntryExit(level, body, true)
	return tr.GetResult(), gen, nil
}

// actualTy resolves a captured type value to its current meaning,
// re-looking up any NAME placeholder's symbol in tenv rather than
// trusting a value that might have been captured before its group
// finished resolving (DESIGN.md: the re-lookup design chosen over
// mutable NAME cells for spec §9's open question).
func (c *Checker) actualTy(tenv *TEnv, t types.Type) types.Type {
	for {
		n, ok := t.(*types.Name)
		if !ok {
			return t
		}
		sym, found := c.syms.Lookup(n.Sym)
		if !found {
			return t
		}
		next, ok := tenv.Lookup(sym)
		if !ok {
			return t
		}
		if next == t {
			return t
		}
		t = next
	}
}

// lookupType resolves a type-name symbol to its actual type, raising
// Undefined if it isn't bound (spec §4.1.2).
func (c *Checker) lookupType(tenv *TEnv, sym symbol.Symbol, pos token.Position) (types.Type, error) {
	t, ok := tenv.Lookup(sym)
	if !ok {
		return nil, errors.NewUndefined(pos, "undefined type %s", sym)
	}
	return c.actualTy(tenv, t), nil
}

// unitExpr is the canonical IR+type pair for a UNIT-shaped result.
func (c *Checker) unitExpr() (ir.Expr, types.Type) {
	return c.tr.NoValue(), types.Unit{}
}
