package main

import (
	"fmt"
	"os"

	"github.com/temirov/wtx/cmd/cli"
)

const (
	exitErrorTemplateConstant = "error: %v\n"
)

// main executes the wtx command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
