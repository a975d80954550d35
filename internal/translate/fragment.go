package translate

import (
	"github.com/tiger-lang/tigerc/internal/frame"
	"github.com/tiger-lang/tigerc/internal/ir"
	"github.com/tiger-lang/tigerc/internal/temp"
)

// Fragment is one completed unit of output: a translated function body or
// a string literal, queued for later code emission (spec §3,
// "Fragments").
type Fragment interface {
	fragmentNode()
}

// ProcFragment is a canonicalized, prologue/epilogue-wrapped function
// body paired with the Level describing its frame.
type ProcFragment struct {
	Body  ir.Stmt
	Level *frame.Level
}

func (ProcFragment) fragmentNode() {}

// StringFragment is a string literal placed in the data segment under
// Label.
type StringFragment struct {
	Label temp.Label
	Value string
}

func (StringFragment) fragmentNode() {}
