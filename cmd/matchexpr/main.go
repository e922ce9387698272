package main

import (
	"os"

	"github.com/opencost/matchkit/pkg/cmd"
)

func main() {
	// cobra reports the error itself, only the exit code is left to set
	// see: github.com/opencost/matchkit/pkg/cmd package for the sub-commands
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
