package cmd

import (
	"fmt"
	"strings"

	"github.com/tiger-lang/tigerc/internal/ast"
	"github.com/tiger-lang/tigerc/internal/compiler"
	"github.com/tiger-lang/tigerc/internal/symbol"
)

func exampleUsage() string {
	return fmt.Sprintf("example program to run (one of: %s)", strings.Join(compiler.Examples, ", "))
}

func loadExample(name string) (*symbol.Table, ast.Expr, error) {
	syms := symbol.NewTable()
	program, ok := compiler.ExampleProgram(syms, name)
	if !ok {
		return nil, nil, fmt.Errorf("unknown example %q (want one of: %s)", name, strings.Join(compiler.Examples, ", "))
	}
	return syms, program, nil
}
