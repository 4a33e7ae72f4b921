// ABOUTME: Catalog command for the workflow-sizer CLI
// ABOUTME: Lists releases in the active catalog or looks up one version

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/markalston/workflow-sizer/backend/models"
	"github.com/markalston/workflow-sizer/backend/services"
	"github.com/markalston/workflow-sizer/cli/internal/client"
)

var catalogRemote bool

var catalogCmd = &cobra.Command{
	Use:   "catalog [version]",
	Short: "List known orchestrator releases",
	Long: `List the releases in the active catalog, in catalog order.

With a version argument, show that release or suggest close matches.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		version := ""
		if len(args) == 1 {
			version = args[0]
		}
		exitCode := runCatalog(ctx, os.Stdout, version, catalogRemote)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().BoolVar(&catalogRemote, "remote", false, "Read the catalog from the backend API")
}

// runCatalog prints the catalog (or one entry) and returns the exit code:
// 0 on success, 1 when the version is not in the catalog, 2 on error
func runCatalog(ctx context.Context, w io.Writer, version string, remote bool) int {
	cat, err := loadCatalog(ctx, remote)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	format := OutputFormat()

	if version == "" {
		if format == outputText {
			fmt.Fprintln(w, formatCatalogHuman(cat))
		} else if err := writeStructured(w, format, cat); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		return 0
	}

	if err := services.ValidateVersionID(version); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c := models.NewCatalog(cat.Name, cat.Entries)
	entry, ok := c.Lookup(version)
	if !ok {
		msg := fmt.Sprintf("Version %s not found in catalog %s", version, cat.Name)
		if s := services.SuggestVersions(c, version); len(s) > 0 {
			msg += "; did you mean " + strings.Join(s, ", ") + "?"
		}
		fmt.Fprintln(w, msg)
		return 1
	}

	if format == outputText {
		fmt.Fprintln(w, formatEntryHuman(entry))
	} else if err := writeStructured(w, format, entry); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	return 0
}

func loadCatalog(ctx context.Context, remote bool) (*models.CatalogResponse, error) {
	if remote {
		return client.New(GetAPIURL()).Catalog(ctx)
	}
	engine, err := newEngine()
	if err != nil {
		return nil, err
	}
	return &models.CatalogResponse{
		Name:       engine.Catalog().Name(),
		Comparator: engine.ComparatorName(),
		Entries:    engine.Catalog().Entries(),
	}, nil
}

// formatCatalogHuman formats the catalog as an aligned table
func formatCatalogHuman(cat *models.CatalogResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Catalog: %s (%d releases, %s ordering)\n\n", cat.Name, len(cat.Entries), cat.Comparator)
	fmt.Fprintf(&b, "%-10s %-9s %-12s %s\n", "VERSION", "RELEASED", "STATUS", "MIN RUNTIME")
	for _, e := range cat.Entries {
		fmt.Fprintf(&b, "%-10s %-9s %-12s %s\n", e.Version, e.Released, e.Status, e.MinRuntime)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatEntryHuman(e models.CatalogEntry) string {
	return fmt.Sprintf(`Version:     %s
Released:    %s
Status:      %s
Min runtime: %s`, e.Version, e.Released, e.Status, e.MinRuntime)
}
