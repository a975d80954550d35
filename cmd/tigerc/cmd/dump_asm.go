package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiger-lang/tigerc/internal/compiler"
)

var dumpAsmExample string

var dumpAsmCmd = &cobra.Command{
	Use:   "dump-asm",
	Short: "Print the instruction-selected tile stream for an example program",
	Long: `dump-asm prints each instruction's assembly template with its
'd<n>/'s<n> placeholders resolved against temp names. Register
allocation is out of scope (spec §1), so the names printed are
symbolic temporaries, not machine registers.`,
	RunE: runDumpAsm,
}

func init() {
	rootCmd.AddCommand(dumpAsmCmd)
	dumpAsmCmd.Flags().StringVarP(&dumpAsmExample, "example", "e", "sum-to-n", exampleUsage())
}

func runDumpAsm(_ *cobra.Command, _ []string) error {
	syms, program, err := loadExample(dumpAsmExample)
	if err != nil {
		return err
	}

	result, err := compiler.New().CompileProgram(syms, program)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	for label, instrs := range result.Instrs {
		fmt.Printf("PROC %s:\n", label)
		for _, in := range instrs {
			fmt.Printf("  %s\n", in)
		}
	}
	return nil
}
