package translate_test

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/tiger-lang/tigerc/internal/compiler"
	"github.com/tiger-lang/tigerc/internal/ir"
	"github.com/tiger-lang/tigerc/internal/symbol"
	"github.com/tiger-lang/tigerc/internal/translate"
	"github.com/tiger-lang/tigerc/internal/typecheck"
)

// TestCanonicalIRFragments snapshots the canonicalized IR produced for each
// built-in example program, one fragment per proc. This pins the output of
// Type-and-Translate's fragment list independently of instruction selection.
func TestCanonicalIRFragments(t *testing.T) {
	for _, name := range compiler.Examples {
		name := name
		t.Run(name, func(t *testing.T) {
			syms := symbol.NewTable()
			program, ok := compiler.ExampleProgram(syms, name)
			if !ok {
				t.Fatalf("unknown example %q", name)
			}

			frags, _, err := typecheck.Check(syms, program)
			if err != nil {
				t.Fatalf("type check failed: %v", err)
			}

			for _, f := range frags {
				switch f := f.(type) {
				case translate.ProcFragment:
					out := ""
					for _, st := range ir.Linearize(f.Body) {
						out += st.String() + "\n"
					}
					snaps.MatchSnapshot(t, fmt.Sprintf("%s_proc_%s", name, f.Level.Label()), out)
				case translate.StringFragment:
					snaps.MatchSnapshot(t, fmt.Sprintf("%s_string_%s", name, f.Label), f.Value)
				}
			}
		})
	}
}
