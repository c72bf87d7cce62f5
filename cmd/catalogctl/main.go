// Command catalogctl runs product actions against the shop from a terminal.
// It shares the server's reconciliation engine but keeps no journal.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(newApp).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
