// ABOUTME: Entry point for the myhealth CLI.
// ABOUTME: Runs the root Cobra command and renders failures by storage error kind.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}
