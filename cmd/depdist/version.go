package main

import (
	"fmt"
)

// set at build time via -ldflags
var (
	BuildTag    = "dev"
	BuildCommit = "unknown"
)

func versionCommand(ui UI) error {
	_, err := fmt.Fprintf(ui.Out, "depdist version %s (commit: %s)\n", BuildTag, BuildCommit)
	return err
}
