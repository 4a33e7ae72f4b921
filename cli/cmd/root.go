// ABOUTME: Root command for the workflow-sizer CLI
// ABOUTME: Binds global flags, WORKFLOW_SIZER_* env vars, and the config file through viper

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/markalston/workflow-sizer/backend/catalog"
	"github.com/markalston/workflow-sizer/backend/models"
	"github.com/markalston/workflow-sizer/backend/services"
	"github.com/markalston/workflow-sizer/cli/internal/profile"
	"github.com/markalston/workflow-sizer/cli/internal/tui"
)

const (
	defaultAPIURL = "http://localhost:8080"
	envPrefix     = "WORKFLOW_SIZER"
)

// Output formats accepted by --output
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

var (
	cfgFile        string
	plannerProfile string
	settings       *viper.Viper
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "workflow-sizer",
	Short: "Size and configure a workflow orchestrator deployment",
	Long: `workflow-sizer recommends worker and scheduler counts, a connection pool size,
and an orchestrator release for the hardware and workload you describe.

Run without a subcommand to open the interactive planner.

Environment Variables:
  WORKFLOW_SIZER_API_URL          Backend API URL (default: http://localhost:8080)
  WORKFLOW_SIZER_CATALOG          Built-in release catalog (default: default)
  WORKFLOW_SIZER_CATALOG_PATH     Catalog file overriding --catalog
  WORKFLOW_SIZER_VERSION_COMPARE  lexical or semver (default: lexical)
  WORKFLOW_SIZER_OUTPUT           text, json, or yaml (default: text)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return validateOutputFormat()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		in := models.DefaultInputs()
		if plannerProfile != "" {
			if in, err = profile.Load(plannerProfile); err != nil {
				return err
			}
		}
		return tui.Run(engine, in)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/workflow-sizer/config.yaml)")
	flags.String("api-url", "", "Backend API URL (overrides WORKFLOW_SIZER_API_URL)")
	flags.Bool("json", false, "Output JSON instead of human-readable text")
	flags.StringP("output", "o", outputText, "Output format: text, json, or yaml")
	flags.String("catalog", catalog.DefaultName, "Built-in release catalog ("+strings.Join(catalog.Names(), ", ")+")")
	flags.String("catalog-path", "", "Catalog YAML file (overrides --catalog)")
	flags.String("version-compare", "lexical", "Version ordering: lexical or semver")

	rootCmd.Flags().StringVarP(&plannerProfile, "profile", "p", "", "Profile used to prefill the interactive planner")

	settings = newSettings(flags)
}

// newSettings builds the viper instance. Precedence: flag, env, config file, default.
func newSettings(flags *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("api-url", defaultAPIURL)
	v.SetDefault("output", outputText)
	v.SetDefault("catalog", catalog.DefaultName)
	v.SetDefault("version-compare", "lexical")

	if flags != nil {
		_ = v.BindPFlags(flags)
	}
	return v
}

// initConfig reads the config file. A missing default file is not an error;
// a missing --config file is.
func initConfig() error {
	if cfgFile != "" {
		settings.SetConfigFile(cfgFile)
		if err := settings.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	settings.AddConfigPath(filepath.Join(dir, "workflow-sizer"))
	settings.SetConfigName("config")
	settings.SetConfigType("yaml")

	if err := settings.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// GetAPIURL returns the API URL from flag, env, config file, or default (in priority order)
func GetAPIURL() string {
	if url := settings.GetString("api-url"); url != "" {
		return url
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return OutputFormat() == outputJSON
}

// OutputFormat resolves --json and --output into one format name
func OutputFormat() string {
	if settings.GetBool("json") {
		return outputJSON
	}
	switch f := strings.ToLower(settings.GetString("output")); f {
	case outputJSON, outputYAML:
		return f
	default:
		return outputText
	}
}

func validateOutputFormat() error {
	switch strings.ToLower(settings.GetString("output")) {
	case "", outputText, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("--output must be one of text, json, yaml")
}

// newEngine builds a local engine from the catalog and comparator settings
func newEngine() (*services.Engine, error) {
	cat, err := catalog.Resolve(settings.GetString("catalog"), settings.GetString("catalog-path"))
	if err != nil {
		return nil, err
	}
	cmp, err := services.ComparatorByName(settings.GetString("version-compare"))
	if err != nil {
		return nil, err
	}
	return services.NewEngine(cat, cmp), nil
}
