// Package compiler wires the Type-and-Translate pass, the Translator,
// and Instruction Selection into one driver entry point (spec §4, §5):
// TT produces a frozen fragment list, then IS tiles each fragment's
// canonical IR into an instruction listing. Per spec §5, TT itself must
// stay single-threaded and synchronous, but the fragment list is an
// explicit barrier -- once frozen, fragments are independent, so this
// package fans instruction selection for each one out across a bounded
// worker pool (grounded on ZupIT-horusec-engine's engine.go: an
// ants.Pool plus a sync.WaitGroup/sync.Mutex, not on shared caches).
package compiler

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/tiger-lang/tigerc/internal/ast"
	"github.com/tiger-lang/tigerc/internal/ir"
	"github.com/tiger-lang/tigerc/internal/munch"
	"github.com/tiger-lang/tigerc/internal/symbol"
	"github.com/tiger-lang/tigerc/internal/temp"
	"github.com/tiger-lang/tigerc/internal/translate"
	"github.com/tiger-lang/tigerc/internal/typecheck"
)

// Result is the complete output of one compilation: the fragment list
// TT produced, plus each procedure fragment's selected instructions
// keyed by its frame label.
type Result struct {
	Fragments []translate.Fragment
	Instrs    map[string][]munch.Instr
}

// Driver runs a Tiger program through TT and then IS. PoolSize bounds
// the number of goroutines IS fans out across; zero means
// runtime.NumCPU().
type Driver struct {
	PoolSize int
}

// New returns a Driver sized to the host's CPU count.
func New() *Driver {
	return &Driver{PoolSize: runtime.NumCPU()}
}

// CompileProgram type-checks and translates program, then selects
// instructions for every resulting procedure fragment in parallel.
func (d *Driver) CompileProgram(syms *symbol.Table, program ast.Expr) (*Result, error) {
	frags, gen, err := typecheck.Check(syms, program)
	if err != nil {
		return nil, err
	}
	instrs, err := d.selectFragments(frags, gen)
	if err != nil {
		return nil, err
	}
	return &Result{Fragments: frags, Instrs: instrs}, nil
}

// selectFragments runs munch.SelectProc over every ProcFragment's body
// concurrently. StringFragments carry no code and are skipped. Every
// fragment's instruction selection shares the single temp.Generator TT
// used to build it (spec §5): the fragment bodies already contain
// temporaries TT minted from that generator (Relop, IfCondNonUnitBody,
// Record, …), so a fresh per-fragment generator would re-issue `t0, t1,
// …` for IS's own intermediates and conflate them with TT's under the
// same name. Generator is mutex-guarded internally so sharing it across
// the worker pool's goroutines is safe.
func (d *Driver) selectFragments(frags []translate.Fragment, gen *temp.Generator) (map[string][]munch.Instr, error) {
	poolSize := d.PoolSize
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("compiler: starting worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		firstErr error
		results  = make(map[string][]munch.Instr, len(frags))
	)

	for _, f := range frags {
		proc, ok := f.(translate.ProcFragment)
		if !ok {
			continue
		}
		proc := proc
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			stmts := ir.Linearize(proc.Body)
			instrs := munch.SelectProc(gen, stmts)

			mu.Lock()
			defer mu.Unlock()
			if firstErr == nil {
				results[proc.Level.Label().String()] = instrs
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("compiler: submitting fragment %s: %w", proc.Level.Label(), submitErr)
			}
			mu.Unlock()
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
