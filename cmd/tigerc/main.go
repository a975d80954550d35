package main

import (
	"os"

	"github.com/tiger-lang/tigerc/cmd/tigerc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
