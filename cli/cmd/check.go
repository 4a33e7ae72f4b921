// ABOUTME: Check command for the workflow-sizer CLI
// ABOUTME: Gates CI pipelines on plan advisories for a proposed deployment

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/workflow-sizer/backend/models"
)

var (
	checkFlags inputFlags
	strict     bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a proposed deployment for advisories",
	Long: `Compute the plan and exit non-zero if it carries warning advisories.

Exit codes:
  0 - No warnings (and no info advisories with --strict)
  1 - One or more warnings, or any advisory with --strict
  2 - Error (invalid input, unreachable backend, bad catalog)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		in, err := checkFlags.resolveFromCommand(cmd)
		if err != nil {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
			os.Exit(2)
		}

		exitCode := runCheck(ctx, os.Stdout, in, checkFlags.remote)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkFlags.register(checkCmd)
	checkCmd.Flags().BoolVar(&strict, "strict", false, "Treat info advisories as failures")
}

// checkResult represents one advisory evaluated as a check
type checkResult struct {
	category string
	severity string
	message  string
	passed   bool
}

// runCheck computes the plan and returns the exit code
func runCheck(ctx context.Context, w io.Writer, in models.Inputs, remote bool) int {
	plan, err := computePlan(ctx, in, remote)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	results := performChecks(plan.Advisories, strict)

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(plan, results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	_, failed := countResults(results)
	if failed > 0 {
		return 1
	}
	return 0
}

// performChecks turns advisories into check results. Warnings always fail;
// info advisories fail only in strict mode.
func performChecks(advisories []models.Advisory, strict bool) []checkResult {
	results := make([]checkResult, 0, len(advisories))
	for _, a := range advisories {
		results = append(results, checkResult{
			category: string(a.Category),
			severity: string(a.Severity),
			message:  a.Message,
			passed:   !a.IsWarning() && !strict,
		})
	}
	return results
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var output string

	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		output += fmt.Sprintf("%s %s (%s): %s\n", symbol, r.category, r.severity, r.message)
	}

	_, failed := countResults(results)
	switch {
	case failed > 0:
		output += fmt.Sprintf("\nFAILED: %d advisory(ies) need attention", failed)
	case len(results) == 0:
		output += "PASSED: No advisories"
	default:
		output += fmt.Sprintf("\nPASSED: %d informational advisory(ies)", len(results))
	}

	return output
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(plan *models.Plan, results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]interface{}, len(results))
	for i, r := range results {
		checks[i] = map[string]interface{}{
			"category": r.category,
			"severity": r.severity,
			"message":  r.message,
			"passed":   r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	output := map[string]interface{}{
		"status":      status,
		"checks":      checks,
		"workers":     plan.Sizing.WorkerCount,
		"recommended": plan.Versions.Recommended.Version,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
