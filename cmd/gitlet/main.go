// Command gitlet is a miniature distributed version-control system.
package main

import (
	"os"

	"github.com/kilupskalvis/gitlet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
