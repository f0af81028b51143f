// Package main provides the scriptable command line companion to the GUI.
package main

import (
	"fmt"
	"os"

	"github.com/evanovar/sober-profile-manager/internal/cli"
	"github.com/evanovar/sober-profile-manager/internal/logging"
)

func main() {
	logging.SetupFromEnv()

	if err := cli.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
