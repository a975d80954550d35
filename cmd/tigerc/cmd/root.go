// Package cmd implements the tigerc CLI driver. A driver/CLI is named
// an out-of-scope external collaborator in spec §1, so nothing here
// feeds back into the core's contract; it only exposes the core's
// existing entry points (internal/typecheck.Check,
// internal/compiler.Driver) the way the teacher's cmd/dwscript/cmd
// package exposes its own compiler pipeline.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tigerc",
	Short: "Tiger semantic-analysis, translation, and instruction-selection core",
	Long: `tigerc drives the Type-and-Translate pass, the Translator, and the
maximal-munch Instruction Selector over a handful of built-in example
programs (no lexer/parser is wired up yet -- source-text parsing is an
external collaborator per the core's specification).`,
	Version: "0.1.0-dev",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
