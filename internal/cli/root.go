// Package cli implements quotectl, the command-line front end to the
// quoting engine.
package cli

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/piwi3910/SheetQuote/internal/engine"
	"github.com/piwi3910/SheetQuote/internal/logger"
	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/piwi3910/SheetQuote/internal/project"
	"github.com/spf13/cobra"
)

// Exit codes shared by every command.
const (
	exitOK        = 0
	exitError     = 1
	exitNotQuoted = 2
)

const (
	catalogEnvVar = "SHEETQUOTE_CATALOG"
	envFile       = ".env"
)

var (
	catalogPath string
	jsonOutput  bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "quotectl",
	Short: "Price sheet-metal parts from the command line",
	Long: `quotectl prices flat sheet-metal parts cut from a fixed set of templates.

It shares the price catalog and settings of the desktop app, so a quote
printed here matches the one shown on screen.

Environment Variables:
  SHEETQUOTE_CATALOG  Price catalog JSON (default: ~/.sheetquote/catalog.json)
  LOG_LEVEL           debug, info, warn, error (default: info)
  LOG_FORMAT          text, json (default: text)`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadEnv(envFile)
		logger.Init()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Price catalog JSON (overrides SHEETQUOTE_CATALOG)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// loadEnv reads KEY=VALUE pairs from path into the environment. A missing
// file is not an error; variables already set win.
func loadEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load env file", "path", path, "error", err)
	}
}

// GetCatalogPath returns the catalog path from flag, env, or "" for the
// default location (in priority order)
func GetCatalogPath() string {
	if catalogPath != "" {
		return catalogPath
	}
	return os.Getenv(catalogEnvVar)
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// loadPricer loads the active catalog and wraps it in a pricer.
func loadPricer() (*engine.Pricer, model.Catalog, error) {
	catalog, err := project.ResolveCatalog(GetCatalogPath())
	if err != nil {
		return nil, catalog, err
	}
	slog.Debug("catalog loaded", "path", GetCatalogPath(), "materials", len(catalog.Materials))
	return engine.New(catalog), catalog, nil
}

// loadAppConfig returns the saved preferences, falling back to defaults
// with a warning when the file cannot be read.
func loadAppConfig() model.AppConfig {
	cfg, err := project.LoadDefaultAppConfig()
	if err != nil {
		slog.Warn("using default settings", "error", err)
	}
	return cfg
}

// recordExport adds path to the recent exports list in the saved config.
func recordExport(cfg model.AppConfig, path string) {
	cfg.AddRecentExport(path)
	if err := project.SaveDefaultAppConfig(cfg); err != nil {
		slog.Warn("failed to save recent exports", "error", err)
	}
}

// exitWith terminates with code unless it is zero.
func exitWith(code int) {
	if code != exitOK {
		os.Exit(code)
	}
}
