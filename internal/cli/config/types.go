// Package config provides configuration management for the maca CLI.
package config

import (
	"github.com/czbiohub-sf/maca/internal/blob"
	"github.com/czbiohub-sf/maca/internal/tabular"
)

// Config holds all CLI configuration options. An empty Tissue means every
// input must name its tissue through TissueFromFilename.
type Config struct {
	Tissue             string      `koanf:"tissue"`
	TissueFromFilename bool        `koanf:"tissue_from_filename"`
	OutputDir          string      `koanf:"output_dir"`
	Format             string      `koanf:"format"`
	RStats             bool        `koanf:"rstats"`
	Zipped             bool        `koanf:"zipped"`
	Workers            int         `koanf:"workers"`
	Debug              bool        `koanf:"debug"`
	Verbose            bool        `koanf:"verbose"`
	LogFormat          string      `koanf:"log_format"`
	OutputFormat       string      `koanf:"output"`
	Table              string      `koanf:"table"`
	Sheet              string      `koanf:"sheet"`
	DropColumns        []string    `koanf:"drop_columns"`
	MetricsFile        string      `koanf:"metrics_file"`
	S3                 blob.Config `koanf:"s3"`
}

// TableOptions returns the reader and writer options for this config.
func (c *Config) TableOptions() tabular.Options {
	return tabular.Options{
		Table:  c.Table,
		Sheet:  c.Sheet,
		Member: tabular.Format(c.Format),
		RStats: c.RStats,
	}
}

// Default configuration values.
const (
	DefaultOutputDir = "."
	DefaultFormat    = "csv"
	DefaultWorkers   = 4
	DefaultLogFormat = "text"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultRegion    = "us-east-1"
	EnvPrefix        = "MACA_"
)
