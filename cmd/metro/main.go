// Command metro runs the Metro interpreter's CLI.
package main

import (
	"fmt"
	"os"

	"github.com/metro-lang/metro/cmd/metro/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
