// ABOUTME: Recommend command for the workflow-sizer CLI
// ABOUTME: Prints the full deployment plan for one set of inputs

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/workflow-sizer/backend/models"
)

var (
	recommendFlags inputFlags
	showConfig     bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend a deployment size and release",
	Long: `Compute worker and scheduler counts, a DB connection pool size, a release
recommendation, advisories, and the configuration block.

Exit codes:
  0 - Plan computed
  2 - Error (invalid input, unreachable backend, bad catalog)`,
	Example: `  workflow-sizer recommend --cpu 8 --memory 16 --units 150 --mode orchestrated
  workflow-sizer recommend --profile prod.yaml --concurrent 25 -o yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		in, err := recommendFlags.resolveFromCommand(cmd)
		if err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			os.Exit(2)
		}

		exitCode := runRecommend(ctx, os.Stdout, in, recommendFlags.remote)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendFlags.register(recommendCmd)
	recommendCmd.Flags().BoolVar(&showConfig, "show-config", true, "Include the configuration block in text output")
}

// runRecommend computes and prints the plan, returning the exit code
func runRecommend(ctx context.Context, w io.Writer, in models.Inputs, remote bool) int {
	plan, err := computePlan(ctx, in, remote)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	format := OutputFormat()
	if format == outputText {
		fmt.Fprintln(w, formatPlanHuman(plan, showConfig))
		return 0
	}
	if err := writeStructured(w, format, plan); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	return 0
}
