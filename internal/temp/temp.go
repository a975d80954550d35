// Package temp mints the symbolic registers and labels used throughout
// the tree IR and frame model. Per spec §5, temporary/label/uniq
// counters are conceptually process-global; this package instead
// encapsulates them in an explicit Generator value threaded through a
// single compilation, so independent compilations never share state.
package temp

import (
	"fmt"
	"sync"
)

// Temp is a symbolic register: a value that instruction selection later
// maps onto a real machine register or spill slot.
type Temp struct {
	id int
}

func (t Temp) String() string { return fmt.Sprintf("t%d", t.id) }

// Label names a point in the instruction stream.
type Label struct {
	name string
}

func (l Label) String() string { return l.name }

// Generator mints fresh Temps and Labels for one compilation. Per spec
// §5 the counters are conceptually process-wide for that one
// compilation: TT mints temps/labels while building fragments, and
// instruction selection later mints more while tiling those same
// fragments' bodies, so the same Generator is shared across both
// passes (and, since the compiler driver fans instruction selection
// out across a worker pool, across goroutines too) -- hence the mutex.
type Generator struct {
	mu        sync.Mutex
	nextTemp  int
	nextLabel int
}

// NewGenerator returns a Generator whose first Temp/Label is #0.
func NewGenerator() *Generator {
	return &Generator{}
}

// NewTemp mints a fresh symbolic register.
func (g *Generator) NewTemp() Temp {
	g.mu.Lock()
	defer g.mu.Unlock()
	t := Temp{id: g.nextTemp}
	g.nextTemp++
	return t
}

// NewLabel mints a fresh, uniquely-numbered label.
func (g *Generator) NewLabel() Label {
	g.mu.Lock()
	defer g.mu.Unlock()
	l := Label{name: fmt.Sprintf("L%d", g.nextLabel)}
	g.nextLabel++
	return l
}

// NamedLabel wraps a caller-chosen name (e.g. a function's external
// symbol) as a Label without consuming a counter value.
func (g *Generator) NamedLabel(name string) Label {
	return Label{name: name}
}

// FP is the reserved symbolic register that always holds the currently
// executing function's own frame pointer. Unlike Generator-minted Temps,
// it is a fixed architectural alias rather than a per-compilation fresh
// value, so it is safe as a package-level constant.
var FP = Temp{id: -1}

// RV is the reserved symbolic register a non-procedure function's result
// is moved into before return.
var RV = Temp{id: -2}

// ArgRegCount is the number of call arguments instruction selection
// passes in dedicated registers before spilling the rest to the frame
// (spec §4.3: "first six arguments go into outgoing-argument registers
// (index 0..5); extras are stored to stack slots prior to the call").
const ArgRegCount = 6

// ArgRegs are the reserved pseudo-registers backing the first
// ArgRegCount call arguments, fixed architectural aliases like FP and RV
// rather than Generator-minted values.
var ArgRegs = [ArgRegCount]Temp{
	{id: -10}, {id: -11}, {id: -12}, {id: -13}, {id: -14}, {id: -15},
}
