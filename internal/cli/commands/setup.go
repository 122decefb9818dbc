package commands

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/czbiohub-sf/maca/internal/cli/config"
	"github.com/czbiohub-sf/maca/internal/cli/output"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext for cmd.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	workers, err := strconv.Atoi(os.Getenv("MACA_WORKERS"))
	if err != nil || workers < 1 {
		workers = config.DefaultWorkers
	}
	return &config.Config{
		Tissue:       os.Getenv("MACA_TISSUE"),
		OutputDir:    getEnvOrDefault("MACA_OUTPUT_DIR", config.DefaultOutputDir),
		Format:       getEnvOrDefault("MACA_FORMAT", config.DefaultFormat),
		Workers:      workers,
		LogFormat:    getEnvOrDefault("MACA_LOG_FORMAT", config.DefaultLogFormat),
		OutputFormat: os.Getenv("MACA_OUTPUT"),
		Verbose:      os.Getenv("MACA_VERBOSE") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
