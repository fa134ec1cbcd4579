// quotectl prices sheet-metal parts from the command line.
//
// Uses the same catalog and settings as the SheetQuote
// desktop app, for scripts and batch jobs.
//
// Build:
//   go build -o quotectl ./cmd/quotectl

package main

import (
	"fmt"
	"os"

	"github.com/piwi3910/SheetQuote/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
