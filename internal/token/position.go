// Package token provides the minimal source-position type shared by the
// AST, type checker, and error reporter. The lexer and parser that produce
// positioned AST nodes are external collaborators; this package only
// carries the opaque value they are expected to stamp on every node.
package token

import "fmt"

// Position identifies a single point in a source file by line, column, and
// byte offset. Line and Column are 1-indexed; Offset is 0-indexed.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders the position as "line:column", the form used throughout
// diagnostic messages.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position carries real line/column info, as
// opposed to the zero value used by synthetic nodes (e.g. desugared `for`
// loops that borrow their original position explicitly instead).
func (p Position) IsValid() bool {
	return p.Line > 0
}
