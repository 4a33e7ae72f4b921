// ABOUTME: Entry point for the workflow-sizer CLI
// ABOUTME: Deployment sizing from the terminal, in scripts, and in CI pipelines

package main

import (
	"os"

	"github.com/markalston/workflow-sizer/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
