// Package frame implements the per-function activation-record model
// described in spec §3 ("Frame / Level model") and §4.2: a Level tracks
// a function's parent, label, and formal accesses; an Access records
// whether a variable lives in a register or at a frame offset; and the
// first formal of every non-outermost level is an implicit static link.
package frame

import "github.com/tiger-lang/tigerc/internal/temp"

// WordSize is the machine word size in bytes used to compute frame
// offsets and record/array field strides.
const WordSize = 8

// Access describes where a variable lives.
type Access interface {
	accessNode()
}

// InReg is a variable that lives in a (symbolic) register because it
// never escapes its defining function.
type InReg struct {
	Temp temp.Temp
}

func (InReg) accessNode() {}

// InFrame is a variable at a fixed byte offset from the frame pointer,
// used for every escaping variable so nested functions can reach it
// through the static link.
type InFrame struct {
	Offset int
}

func (InFrame) accessNode() {}

// Frame is one function's activation-record layout.
type Frame struct {
	Label   temp.Label
	Formals []Access // index 0 is always the static link
	locals  int
}

// newFrame allocates a frame for a function whose formal parameters
// escape according to escapes (not counting the implicit static link,
// which always escapes). Escaping formals are placed in the frame from
// offset 0 downward (the direction is a backend concern; instruction
// selection and frame-pointer arithmetic agree on the sign); others get
// a fresh register.
func newFrame(g *temp.Generator, label temp.Label, escapes []bool) *Frame {
	fr := &Frame{Label: label}
	allEscapes := make([]bool, 0, len(escapes)+1)
	allEscapes = append(allEscapes, true) // static link always escapes
	allEscapes = append(allEscapes, escapes...)

	offset := 0
	for _, esc := range allEscapes {
		if esc {
			fr.Formals = append(fr.Formals, InFrame{Offset: offset})
			offset -= WordSize
		} else {
			fr.Formals = append(fr.Formals, InReg{Temp: g.NewTemp()})
		}
	}
	return fr
}

// allocLocal reserves a new local variable in the frame, returning its
// Access. Escaping locals get the next frame slot below the formals;
// non-escaping locals get a fresh register.
func (fr *Frame) allocLocal(g *temp.Generator, escape bool) Access {
	if !escape {
		return InReg{Temp: g.NewTemp()}
	}
	fr.locals++
	offset := -(len(fr.Formals) + fr.locals - 1) * WordSize
	return InFrame{Offset: offset}
}

// Level represents a function activation nested inside its lexical
// parent. The outermost Level (Outermost) is a sentinel with no frame.
type Level struct {
	Parent *Level
	frame  *Frame
}

// Outermost is the sentinel level enclosing top-level code; it has no
// frame of its own and no static link.
var Outermost = &Level{}

// NewLevel allocates a new activation nested under parent, with one
// formal per entry in escapes (the static link is implicit and must not
// be included in escapes).
func NewLevel(g *temp.Generator, parent *Level, label temp.Label, escapes []bool) *Level {
	return &Level{
		Parent: parent,
		frame:  newFrame(g, label, escapes),
	}
}

// Label returns the level's frame label, used as the function's
// assembly-visible name and as the Name/Label in its Call IR.
func (l *Level) Label() temp.Label {
	if l.frame == nil {
		return temp.Label{}
	}
	return l.frame.Label
}

// Formals returns the accesses for the user-visible formal parameters,
// excluding the implicit static link (spec §4.2: "get_formals excludes
// the implicit static link").
func (l *Level) Formals() []Access {
	if l.frame == nil || len(l.frame.Formals) == 0 {
		return nil
	}
	return l.frame.Formals[1:]
}

// StaticLink returns the access for this level's hidden first formal:
// a pointer to the parent's frame.
func (l *Level) StaticLink() Access {
	if l.frame == nil {
		return nil
	}
	return l.frame.Formals[0]
}

// AllocLocal reserves a new local in this level's frame.
func (l *Level) AllocLocal(g *temp.Generator, escape bool) Access {
	return l.frame.allocLocal(g, escape)
}
