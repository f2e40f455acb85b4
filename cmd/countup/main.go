// Command countup renders animated counters in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/countup/cmd/countup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
