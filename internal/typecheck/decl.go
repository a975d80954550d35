package typecheck

import (
	"github.com/tiger-lang/tigerc/internal/ast"
	"github.com/tiger-lang/tigerc/internal/errors"
	"github.com/tiger-lang/tigerc/internal/frame"
	"github.com/tiger-lang/tigerc/internal/ir"
	"github.com/tiger-lang/tigerc/internal/symbol"
	"github.com/tiger-lang/tigerc/internal/types"
)

// transDec implements one declaration from spec §4.1.2. It returns the
// context extended with the new binding(s) and any initialization IR
// that must run before the let body (var initializers only; type and
// function groups contribute no runtime effect at their declaration
// site).
func (c *Checker) transDec(ctx context, d ast.Dec) (context, []ir.Expr, error) {
	switch d := d.(type) {
	case *ast.VarDec:
		return c.transVarDec(ctx, d)
	case *ast.TypeDec:
		newCtx, err := c.transTypeDec(ctx, d)
		return newCtx, nil, err
	case *ast.FunctionDec:
		newCtx, err := c.transFunctionDec(ctx, d)
		return newCtx, nil, err
	default:
		errors.Panic(d.Pos(), "unknown Dec variant %T", d)
		panic("unreachable")
	}
}

// transVarDec implements spec §4.1.2's `var` rule: every user variable is
// allocated as always-escaping (spec §1: "escape analysis is out of
// scope; every user variable is treated as escaping").
func (c *Checker) transVarDec(ctx context, d *ast.VarDec) (context, []ir.Expr, error) {
	initIR, initTy, err := c.transExp(ctx, d.Init)
	if err != nil {
		return ctx, nil, err
	}

	var declTy types.Type
	if d.Typ.IsZero() {
		if _, ok := initTy.(types.Nil); ok {
			return ctx, nil, errors.NewTypeError(d.DPos, "cannot infer type of %s from nil without an explicit annotation", d.Name)
		}
		declTy = initTy
	} else {
		declTy, err = c.lookupType(ctx.tenv, d.Typ, d.DPos)
		if err != nil {
			return ctx, nil, err
		}
		if !types.Compatible(declTy, initTy) {
			return ctx, nil, errors.NewTypeError(d.Init.Pos(), "%s declared as %s, initializer has type %s", d.Name, declTy.TypeName(), initTy.TypeName())
		}
	}

	acc := c.tr.AllocLocal(ctx.level, true)
	varIR := c.tr.SimpleVar(acc, ctx.level)
	assignIR := c.tr.Assign(varIR, initIR)

	newVenv := ctx.venv.Extend(d.Name, &VarEntry{Access: acc, Typ: declTy})
	return ctx.withVEnv(newVenv), []ir.Expr{assignIR}, nil
}

// transTypeDec resolves a maximal mutually recursive type group (spec
// §4.1.2): it installs a NAME placeholder for every member so sibling
// references type-check, computes each member's real type, detects
// pure-alias cycles (DESIGN.md's answer to spec §9's open question --
// record/array indirection makes a cycle through those representable,
// but a chain of bare aliases never bottoms out, so it is rejected), and
// installs the resolved bindings.
func (c *Checker) transTypeDec(ctx context, d *ast.TypeDec) (context, error) {
	seen := make(map[symbol.Symbol]bool, len(d.Types))
	for _, nt := range d.Types {
		if seen[nt.Name] {
			return ctx, errors.NewTypeError(nt.DPos, "type %s declared twice in the same recursive group", nt.Name)
		}
		seen[nt.Name] = true
	}

	headers := make(map[symbol.Symbol]types.Type, len(d.Types))
	for _, nt := range d.Types {
		headers[nt.Name] = &types.Name{Sym: nt.Name.String()}
	}
	groupEnv := ctx.tenv.ExtendAll(headers)

	resolved := make(map[symbol.Symbol]types.Type, len(d.Types))
	for _, nt := range d.Types {
		t, err := c.transTy(groupEnv, nt.Ty)
		if err != nil {
			return ctx, err
		}
		resolved[nt.Name] = t
	}

	if err := c.checkAliasCycles(d, resolved); err != nil {
		return ctx, err
	}

	finalEnv := ctx.tenv.ExtendAll(resolved)
	return ctx.withTEnv(finalEnv), nil
}

// checkAliasCycles walks the pure-alias chains among a group's members
// (an AliasTy whose target is itself another member) and rejects any
// cycle, e.g. `type a = b  type b = a`.
func (c *Checker) checkAliasCycles(d *ast.TypeDec, resolved map[symbol.Symbol]types.Type) error {
	aliasTarget := make(map[symbol.Symbol]symbol.Symbol)
	for _, nt := range d.Types {
		if at, ok := nt.Ty.(*ast.AliasTy); ok {
			if _, isMember := resolved[at.Sym]; isMember {
				aliasTarget[nt.Name] = at.Sym
			}
		}
	}
	for start := range aliasTarget {
		visited := map[symbol.Symbol]bool{start: true}
		cur := start
		for {
			next, ok := aliasTarget[cur]
			if !ok {
				break
			}
			if visited[next] {
				return errors.NewTypeError(d.DPos, "type alias cycle involving %s", start)
			}
			visited[next] = true
			cur = next
		}
	}
	return nil
}

// transTy translates a type expression's right-hand side into a types.Type,
// minting a fresh Uniq identity for record/array forms (spec §3).
func (c *Checker) transTy(tenv *TEnv, ty ast.Ty) (types.Type, error) {
	switch ty := ty.(type) {
	case *ast.AliasTy:
		t, ok := tenv.Lookup(ty.Sym)
		if !ok {
			return nil, errors.NewUndefined(ty.TPos, "undefined type %s", ty.Sym)
		}
		return t, nil

	case *ast.RecordTy:
		fields := make([]types.RecordField, len(ty.Fields))
		for i, f := range ty.Fields {
			ft, ok := tenv.Lookup(f.Typ)
			if !ok {
				return nil, errors.NewUndefined(f.FPos, "undefined type %s", f.Typ)
			}
			fields[i] = types.RecordField{Name: f.Name.String(), Typ: ft}
		}
		return &types.Record{Fields: fields, Uniq: c.uniq.Next()}, nil

	case *ast.ArrayTy:
		et, ok := tenv.Lookup(ty.Elem)
		if !ok {
			return nil, errors.NewUndefined(ty.TPos, "undefined type %s", ty.Elem)
		}
		return &types.Array{Elem: et, Uniq: c.uniq.Next()}, nil

	default:
		errors.Panic(ty.Pos(), "unknown Ty variant %T", ty)
		panic("unreachable")
	}
}

// transFunctionDec resolves a maximal mutually recursive function group
// (spec §4.1.2): first pass allocates every signature and Level so
// sibling calls type-check and emit correct static links; second pass
// type-checks and translates each body against the fully populated
// environment, with its own break-label reset to "not in a loop".
func (c *Checker) transFunctionDec(ctx context, d *ast.FunctionDec) (context, error) {
	seen := make(map[symbol.Symbol]bool, len(d.Funs))
	for _, f := range d.Funs {
		if seen[f.Name] {
			return ctx, errors.NewTypeError(f.DPos, "function %s declared twice in the same recursive group", f.Name)
		}
		seen[f.Name] = true
	}

	type prepared struct {
		fun    *ast.FunDec
		level  *frame.Level
		params []types.Type
		result types.Type
	}

	entries := make(map[symbol.Symbol]ValueEntry, len(d.Funs))
	preps := make([]prepared, 0, len(d.Funs))

	for _, f := range d.Funs {
		paramTys := make([]types.Type, len(f.Params))
		escapes := make([]bool, len(f.Params))
		for i, p := range f.Params {
			pt, err := c.lookupType(ctx.tenv, p.Typ, p.FPos)
			if err != nil {
				return ctx, err
			}
			paramTys[i] = pt
			escapes[i] = true
		}
		var resultTy types.Type = types.Unit{}
		if !f.Result.IsZero() {
			rt, err := c.lookupType(ctx.tenv, f.Result, f.DPos)
			if err != nil {
				return ctx, err
			}
			resultTy = rt
		}

		label := c.tr.NamedLabel(f.Name.String())
		level := c.tr.NewLevel(ctx.level, label, escapes)

		entries[f.Name] = &FuncEntry{Level: level, Label: label, Params: paramTys, Result: resultTy}
		preps = append(preps, prepared{fun: f, level: level, params: paramTys, result: resultTy})
	}

	groupVenv := ctx.venv.ExtendAll(entries)

	for _, p := range preps {
		bodyVenv := groupVenv
		formals := c.tr.Formals(p.level)
		for i, param := range p.fun.Params {
			bodyVenv = bodyVenv.Extend(param.Name, &VarEntry{Access: formals[i], Typ: p.params[i]})
		}
		bodyCtx := context{tenv: ctx.tenv, venv: bodyVenv, level: p.level}
		bodyIR, bodyTy, err := c.transExp(bodyCtx, p.fun.Body)
		if err != nil {
			return ctx, err
		}
		isProcedure := p.fun.Result.IsZero()
		if isProcedure {
			if _, ok := bodyTy.(types.Unit); !ok {
				return ctx, errors.NewTypeError(p.fun.Body.Pos(), "procedure %s body must be unit, got %s", p.fun.Name, bodyTy.TypeName())
			}
		} else if !types.Compatible(p.result, bodyTy) {
			return ctx, errors.NewTypeError(p.fun.Body.Pos(), "function %s declared to return %s, body has type %s", p.fun.Name, p.result.TypeName(), bodyTy.TypeName())
		}
		c.tr.ProcEntryExit(p.level, bodyIR, isProcedure)
	}

	return ctx.withVEnv(groupVenv), nil
}
