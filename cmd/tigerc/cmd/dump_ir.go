package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiger-lang/tigerc/internal/ir"
	"github.com/tiger-lang/tigerc/internal/translate"
	"github.com/tiger-lang/tigerc/internal/typecheck"
)

var dumpIRExample string

var dumpIRCmd = &cobra.Command{
	Use:   "dump-ir",
	Short: "Print the canonical tree IR for an example program's fragments",
	RunE:  runDumpIR,
}

func init() {
	rootCmd.AddCommand(dumpIRCmd)
	dumpIRCmd.Flags().StringVarP(&dumpIRExample, "example", "e", "sum-to-n", exampleUsage())
}

func runDumpIR(_ *cobra.Command, _ []string) error {
	syms, program, err := loadExample(dumpIRExample)
	if err != nil {
		return err
	}

	frags, _, err := typecheck.Check(syms, program)
	if err != nil {
		return fmt.Errorf("type check failed: %w", err)
	}

	for _, f := range frags {
		switch f := f.(type) {
		case translate.ProcFragment:
			fmt.Printf("PROC %s:\n", f.Level.Label())
			for _, st := range ir.Linearize(f.Body) {
				fmt.Printf("  %s\n", st)
			}
		case translate.StringFragment:
			fmt.Printf("STRING %s = %q\n", f.Label, f.Value)
		}
	}
	return nil
}
