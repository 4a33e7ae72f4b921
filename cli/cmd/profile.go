// ABOUTME: Profile commands for the workflow-sizer CLI
// ABOUTME: Writes a starter profile file and validates existing ones

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/markalston/workflow-sizer/backend/models"
	"github.com/markalston/workflow-sizer/backend/services"
	"github.com/markalston/workflow-sizer/cli/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Create and validate input profile files",
}

var profileInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write a profile with the default inputs",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		if exitCode := runProfileInit(os.Stdout, path); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var profileValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate profile files against the schema",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runProfileValidate(os.Stdout, args); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileInitCmd, profileValidateCmd)
}

// runProfileInit prints the default profile, or writes it to path
func runProfileInit(w io.Writer, path string) int {
	data, err := profile.Marshal(models.DefaultInputs())
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if path == "" {
		fmt.Fprint(w, string(data))
		return 0
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "Error: %s already exists\n", path)
		return 2
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	return 0
}

// runProfileValidate checks every file and returns 1 if any is invalid
func runProfileValidate(w io.Writer, paths []string) int {
	failed := 0
	for _, path := range paths {
		in, err := profile.Load(path)
		if err == nil {
			err = services.ValidateInputs(services.NormalizeInputs(in))
		}
		if err != nil {
			failed++
			fmt.Fprintf(w, "✗ %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(w, "✓ %s\n", path)
	}

	if failed > 0 {
		return 1
	}
	return 0
}
