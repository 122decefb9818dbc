package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"

	"github.com/czbiohub-sf/maca/internal/blob"
	"github.com/czbiohub-sf/maca/internal/cli/config"
	"github.com/czbiohub-sf/maca/internal/cli/output"
	"github.com/czbiohub-sf/maca/internal/metrics"
	"github.com/czbiohub-sf/maca/internal/runner"
	"github.com/czbiohub-sf/maca/internal/tabular"
)

// AnnotateOptions holds options for the annotate command that are not
// part of the configuration.
type AnnotateOptions struct {
	Stdout bool
	Watch  bool
}

// tableSummary is the machine-readable outcome of one table.
type tableSummary struct {
	Input   string `json:"input" yaml:"input"`
	Tissue  string `json:"tissue" yaml:"tissue"`
	Output  string `json:"output,omitempty" yaml:"output,omitempty"`
	Rows    int    `json:"rows" yaml:"rows"`
	Changes int    `json:"changes" yaml:"changes"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewAnnotateCommand creates the annotate command.
func NewAnnotateCommand() *cobra.Command {
	opts := &AnnotateOptions{}

	cmd := &cobra.Command{
		Use:   "annotate <input>...",
		Short: "Normalize the cell type annotations of one or more tables",
		Long: `Read each input table, normalize its annotation and subannotation columns
with the rules of its tissue, and write <name>.annotated.<format> to the
output directory (<name>.annotated.zip holding that file with --zipped).

Inputs may be CSV, TSV, XLSX, SQLite or zip files, s3://bucket/key objects or
postgres:// URLs (the table is chosen with --table). The output directory may
also be an s3:// prefix or a postgres:// URL.`,
		Example: `  # Clean one tissue
  maca annotate --tissue Heart heart.csv

  # Infer the tissue from each file name and run four tables at a time
  maca annotate --tissue-from-filename -j 4 data/*.csv -d annotated/

  # Zip each cleaned TSV
  maca annotate --tissue Heart -f tsv --zipped heart.csv

  # Stream a single table to stdout as TSV
  maca annotate --tissue Lung --stdout -f tsv lung.xlsx

  # Re-run whenever the input changes
  maca annotate --tissue Marrow --watch marrow.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd, args, opts)
		},
	}

	f := cmd.Flags()
	f.String("tissue", "", "Tissue rule set to apply (see 'maca tissues')")
	f.Bool("tissue-from-filename", false, "Take the tissue from each input's file name")
	f.StringP("output-dir", "d", "", "Output directory, s3:// prefix or postgres:// URL")
	f.StringP("format", "f", "", "Output format (csv|tsv)")
	f.Bool("rstats", false, "Write a blank index header for R's read.csv")
	f.Bool("zipped", false, "Bundle each output into <name>.annotated.zip")
	f.IntP("workers", "j", 0, "Tables processed concurrently")
	f.Bool("debug", false, "Print annotation counts before and after the tissue rules")
	f.String("table", "", "SQL table to read and write")
	f.String("sheet", "", "XLSX sheet to read (default: first sheet)")
	f.StringSlice("drop-columns", nil, "Columns removed from every output")
	f.String("metrics-file", "", "Write Prometheus metrics to this file")
	f.String("s3-endpoint", "", "Custom S3 endpoint, e.g. a MinIO URL")
	f.String("s3-region", "", "S3 region")
	f.Bool("s3-path-style", false, "Use path-style S3 addressing")
	f.BoolVar(&opts.Stdout, "stdout", false, "Write the single cleaned table to stdout")
	f.BoolVar(&opts.Watch, "watch", false, "Re-annotate local inputs whenever they change")

	_ = cmd.RegisterFlagCompletionFunc("tissue", completeTissues)
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"csv", "tsv"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runAnnotate(cmd *cobra.Command, args []string, opts *AnnotateOptions) error {
	ctx := cmd.Context()
	cc := NewCommandContext(cmd)
	cfg := cc.Cfg

	jobs, err := buildJobs(cfg, args)
	if err != nil {
		return err
	}

	runOpts := runner.Options{
		OutputDir:   cfg.OutputDir,
		Format:      tabular.Format(cfg.Format),
		Table:       cfg.TableOptions(),
		Workers:     cfg.Workers,
		Zipped:      cfg.Zipped,
		DropColumns: cfg.DropColumns,
		Debug:       cfg.Debug,
		DebugOut:    cmd.ErrOrStderr(),
		Logger:      cc.Logger,
	}
	if opts.Stdout {
		runOpts.Stdout = cmd.OutOrStdout()
	}
	if needsS3(cfg, args) {
		runOpts.Blob, err = blob.New(ctx, cfg.S3)
		if err != nil {
			return err
		}
	}
	if cfg.MetricsFile != "" {
		runOpts.Metrics = metrics.New()
	}

	r := runner.New(runOpts)
	results, runErr := r.Run(ctx, jobs)
	if err := writeMetrics(cfg, runOpts.Metrics); err != nil {
		return err
	}
	if !opts.Stdout {
		if err := renderResults(cc.Renderer, results); err != nil {
			return err
		}
	}
	if !opts.Watch {
		return runErr
	}
	if runErr != nil {
		cc.Renderer.Warn("%v", runErr)
	}

	watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	cc.Logger.Info("watching inputs for changes, press Ctrl+C to stop", "inputs", len(jobs))

	var mu sync.Mutex
	err = r.Watch(watchCtx, jobs, func(res runner.Result) {
		mu.Lock()
		defer mu.Unlock()
		if err := renderResults(cc.Renderer, []runner.Result{res}); err != nil {
			cc.Logger.Error("failed to render result", "error", err)
		}
		if err := writeMetrics(cfg, runOpts.Metrics); err != nil {
			cc.Logger.Error("failed to write metrics", "error", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// buildJobs pairs each input with its tissue.
func buildJobs(cfg *config.Config, inputs []string) ([]runner.Job, error) {
	jobs := make([]runner.Job, len(inputs))
	for i, in := range inputs {
		tissue := cfg.Tissue
		if cfg.TissueFromFilename {
			tissue = runner.TissueFromFilename(in)
		}
		if tissue == "" {
			return nil, fmt.Errorf("%s: %w: use --tissue or --tissue-from-filename", in, runner.ErrNoTissue)
		}
		jobs[i] = runner.Job{Input: in, Tissue: tissue}
	}
	return jobs, nil
}

func needsS3(cfg *config.Config, inputs []string) bool {
	if blob.IsS3(cfg.OutputDir) {
		return true
	}
	for _, in := range inputs {
		if blob.IsS3(in) {
			return true
		}
	}
	return false
}

func writeMetrics(cfg *config.Config, rec *metrics.Recorder) error {
	if rec == nil {
		return nil
	}
	if err := rec.WriteFile(cfg.MetricsFile); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

func summarize(results []runner.Result) []tableSummary {
	out := make([]tableSummary, len(results))
	for i, res := range results {
		s := tableSummary{
			Input:   res.Job.Input,
			Tissue:  res.Job.Tissue,
			Output:  res.Output,
			Rows:    res.Report.Rows,
			Changes: res.Report.Changed(),
		}
		if res.Err != nil {
			s.Error = res.Err.Error()
		}
		out[i] = s
	}
	return out
}

func renderResults(r *output.Renderer, results []runner.Result) error {
	summaries := summarize(results)
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(summaries)
	case output.ModeYAML:
		return r.YAML(summaries)
	}

	rows := make([][]any, len(summaries))
	for i, s := range summaries {
		status := s.Output
		if s.Error != "" {
			status = "error: " + s.Error
			if r.EffectiveMode() == output.ModeText {
				status = r.Styles().Error.Render(status)
			}
		}
		rows[i] = []any{s.Input, s.Tissue, s.Rows, s.Changes, status}
	}
	r.Table([]string{"input", "tissue", "rows", "changes", "output"}, rows)
	return nil
}
