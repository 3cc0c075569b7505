package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/miradorstack/engine-condition/internal/advisor"
	"github.com/miradorstack/engine-condition/internal/config"
	"github.com/miradorstack/engine-condition/internal/models"
	"github.com/miradorstack/engine-condition/internal/utils"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "engine-condition",
	Short: "Threshold advisories and condition classification for engine sensor readings",
	Long: "engine-condition checks seven engine sensor readings against fixed\n" +
		"threshold rules and a trained classifier, and serves the same operations\n" +
		"over gRPC and HTTP.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the YAML configuration file (env ENGINE_CONDITION_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "optional dotenv file loaded before configuration")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(sensorsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = version
}

// app bundles the pieces every subcommand needs.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	catalog *models.SensorCatalog
	advisor *advisor.Advisor
}

// loadRuntime reads configuration and builds the shared pieces. Logs go to
// logTo so CLI output on stdout stays clean.
func loadRuntime(logTo io.Writer) (*app, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := utils.NewLoggerTo(logTo, cfg.Logging.Level, cfg.Logging.JSON)

	catalog, err := cfg.SensorCatalog()
	if err != nil {
		return nil, err
	}
	adv, err := advisor.Load(cfg.Rules.Path, logger)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, catalog: catalog, advisor: adv}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
