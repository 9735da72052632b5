// Command footprintx is a terminal client for the lookup API.
package main

import (
	"os"

	"github.com/imcoder44/FootprintX/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
