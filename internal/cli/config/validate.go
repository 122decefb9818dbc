package config

import (
	"fmt"
	"slices"

	"github.com/czbiohub-sf/maca/internal/tabular"
)

var (
	logFormats    = []string{"text", "json"}
	outputFormats = []string{"auto", "text", "markdown", "json", "yaml"}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	f, err := tabular.ParseFormat(c.Format)
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if !f.Delimited() {
		return fmt.Errorf("format must be csv or tsv, got %q (set zipped for zip archives)", c.Format)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		return fmt.Errorf("log_format must be one of %v, got %q", logFormats, c.LogFormat)
	}
	if c.OutputFormat != "" && !slices.Contains(outputFormats, c.OutputFormat) {
		return fmt.Errorf("output must be one of %v, got %q", outputFormats, c.OutputFormat)
	}
	return nil
}
