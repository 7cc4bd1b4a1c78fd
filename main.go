package main

import (
	"fmt"
	"os"

	"github.com/thinkmcp/cmd"
)

var version = "1.0.0"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
