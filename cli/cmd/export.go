// ABOUTME: Export command for the workflow-sizer CLI
// ABOUTME: Writes only the orchestrator configuration block to stdout or a file

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
	"github.com/markalston/workflow-sizer/cli/internal/client"
)

var (
	exportFlags inputFlags
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the orchestrator configuration block",
	Long: `Render the configuration block for the given inputs. The block is written to
stdout, or to --out when set.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		in, err := exportFlags.resolveFromCommand(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		exitCode := runExport(ctx, os.Stdout, in, exportFlags.remote, exportOut)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write the configuration to this file")
}

// runExport renders the config block and returns the exit code.
// Errors go to stderr so stdout stays a clean config document.
func runExport(ctx context.Context, w io.Writer, in models.Inputs, remote bool, out string) int {
	cfg, err := exportConfig(ctx, in, remote)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if out == "" {
		fmt.Fprintln(w, cfg)
		return 0
	}

	if err := os.WriteFile(out, []byte(cfg+"\n"), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: writing %s: %v\n", out, err)
		return 2
	}
	fmt.Fprintf(w, "Wrote configuration to %s\n", out)
	return 0
}

func exportConfig(ctx context.Context, in models.Inputs, remote bool) (string, error) {
	if remote {
		return client.New(GetAPIURL()).Export(ctx, in)
	}
	plan, err := computePlan(ctx, in, false)
	if err != nil {
		return "", err
	}
	return plan.Config, nil
}
