// Package runner drives annotation cleaning over whole tables: it resolves
// where each table lives, reads it, runs the tissue rules, writes the
// result and records metrics. Tables are processed concurrently, each
// owned by exactly one goroutine.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/czbiohub-sf/maca/internal/blob"
	"github.com/czbiohub-sf/maca/internal/metrics"
	"github.com/czbiohub-sf/maca/internal/tabular"
	"github.com/czbiohub-sf/maca/pkg/annotation"
)

// ErrNoTissue is returned for a job whose tissue cannot be determined.
var ErrNoTissue = errors.New("no tissue given")

// annotatedSuffix is inserted between an input's stem and the output
// extension.
const annotatedSuffix = ".annotated"

// Job is one table to clean.
type Job struct {
	// Input is a local path, an s3:// URL or a postgres:// URL.
	Input  string
	Tissue string
}

// Result reports the outcome of one Job.
type Result struct {
	Job     Job
	Output  string
	Report  annotation.Report
	Elapsed time.Duration
	Err     error
}

// Options configures a Runner.
type Options struct {
	// OutputDir is a local directory, an s3:// prefix or a postgres:// URL.
	OutputDir string
	Format    tabular.Format
	Table     tabular.Options
	Workers   int
	// Zipped bundles each output file into <stem>.annotated.zip.
	Zipped bool

	// DropColumns are removed from every table after cleaning.
	DropColumns []string
	Debug       bool
	DebugOut    io.Writer

	// Stdout, when set, receives the single cleaned table instead of a file.
	Stdout  io.Writer
	Logger  *slog.Logger
	Blob    *blob.Client
	Metrics *metrics.Recorder

	// Debounce is the quiet period before a watched file is reprocessed.
	Debounce time.Duration
}

// Runner processes annotation tables.
type Runner struct {
	opts    Options
	logger  *slog.Logger
	debugMu sync.Mutex
}

// New creates a Runner.
func New(opts Options) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Format == "" {
		opts.Format = tabular.FormatCSV
	}
	if opts.Table.Member == "" {
		opts.Table.Member = opts.Format
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 100 * time.Millisecond
	}
	if opts.DebugOut == nil {
		opts.DebugOut = os.Stderr
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{opts: opts, logger: logger}
}

// TissueFromFilename returns the part of the input's base name before the
// first "." or "-", e.g. "Heart" for "Heart-counts.csv".
func TissueFromFilename(input string) string {
	base := path.Base(filepath.ToSlash(input))
	if i := strings.IndexAny(base, ".-"); i >= 0 {
		base = base[:i]
	}
	return base
}

// Run processes jobs with at most Workers in flight. Every job yields a
// Result in input order. The returned error joins all job failures.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	if r.opts.Stdout != nil && len(jobs) > 1 {
		return nil, fmt.Errorf("cannot write %d tables to stdout", len(jobs))
	}

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = r.Process(gctx, job)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Job.Input, res.Err))
		}
	}
	return results, errors.Join(errs...)
}

// Process reads, cleans and writes one table.
func (r *Runner) Process(ctx context.Context, job Job) Result {
	start := time.Now()
	res := Result{Job: job}
	logger := r.logger.With("input", job.Input, "tissue", job.Tissue)

	res.Output, res.Report, res.Err = r.process(ctx, job, logger)
	res.Elapsed = time.Since(start)

	if res.Err != nil {
		logger.Error("failed to annotate table", "error", res.Err)
		if r.opts.Metrics != nil {
			r.opts.Metrics.Failed(job.Tissue)
		}
		return res
	}
	logger.Info("annotated table", "output", res.Output, "rows", res.Report.Rows,
		"changes", res.Report.Changed(), "elapsed", res.Elapsed)
	if r.opts.Metrics != nil {
		r.opts.Metrics.Observe(res.Report, res.Elapsed)
	}
	return res
}

func (r *Runner) process(ctx context.Context, job Job, logger *slog.Logger) (string, annotation.Report, error) {
	if job.Tissue == "" {
		return "", annotation.Report{}, ErrNoTissue
	}
	if err := ctx.Err(); err != nil {
		return "", annotation.Report{}, err
	}

	stage, err := os.MkdirTemp("", "maca-*")
	if err != nil {
		return "", annotation.Report{}, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(stage)

	rs, err := r.read(ctx, job.Input, stage)
	if err != nil {
		return "", annotation.Report{}, err
	}
	if _, known := annotation.Lookup(job.Tissue); !known {
		logger.Warn("no rule set registered for tissue, applying normalization only")
	}

	opts := annotation.Options{Logger: logger}
	var debug bytes.Buffer
	if r.opts.Debug {
		opts.Debug = true
		opts.DebugOut = &debug
	}
	_, report := annotation.CleanWithReport(rs, job.Tissue, opts)
	r.flushDebug(&debug)

	for _, name := range r.opts.DropColumns {
		rs.DropColumn(name)
	}

	out, err := r.write(ctx, job, rs, stage)
	if err != nil {
		return "", report, err
	}
	return out, report, nil
}

// flushDebug writes one job's dump in a single piece so concurrent jobs
// never interleave.
func (r *Runner) flushDebug(buf *bytes.Buffer) {
	if buf.Len() == 0 {
		return
	}
	r.debugMu.Lock()
	defer r.debugMu.Unlock()
	_, _ = buf.WriteTo(r.opts.DebugOut)
}

func (r *Runner) table() string {
	if r.opts.Table.Table != "" {
		return r.opts.Table.Table
	}
	return tabular.DefaultTable
}

func (r *Runner) read(ctx context.Context, input, stage string) (*annotation.RecordSet, error) {
	switch {
	case tabular.IsPostgresURL(input):
		return tabular.ReadPostgres(ctx, input, r.table())
	case blob.IsS3(input):
		if r.opts.Blob == nil {
			return nil, fmt.Errorf("s3 input %s needs an s3 client", input)
		}
		loc, err := blob.Parse(input)
		if err != nil {
			return nil, err
		}
		local, err := r.opts.Blob.Download(ctx, loc, stage)
		if err != nil {
			return nil, err
		}
		return tabular.ReadFile(ctx, local, r.opts.Table)
	default:
		return tabular.ReadFile(ctx, input, r.opts.Table)
	}
}

// stem is the name an output is derived from: the file or object name
// without extension, or the table name for database inputs.
func (r *Runner) stem(input string) string {
	if tabular.IsPostgresURL(input) {
		return r.table()
	}
	base := path.Base(filepath.ToSlash(input))
	return strings.TrimSuffix(base, path.Ext(base))
}

// OutputName returns the file name written for input.
func (r *Runner) OutputName(input string) string {
	ext := r.opts.Format
	if r.opts.Zipped {
		ext = tabular.FormatZip
	}
	return r.stem(input) + annotatedSuffix + "." + string(ext)
}

func (r *Runner) write(ctx context.Context, job Job, rs *annotation.RecordSet, stage string) (string, error) {
	dir := r.opts.OutputDir
	switch {
	case r.opts.Stdout != nil:
		return "-", tabular.Write(r.opts.Stdout, rs, r.opts.Format, r.opts.Table.RStats)
	case tabular.IsPostgresURL(dir):
		table := strings.ReplaceAll(r.stem(job.Input), ".", "_") + "_annotated"
		return table, tabular.WritePostgres(ctx, dir, table, rs)
	case blob.IsS3(dir):
		if r.opts.Blob == nil {
			return "", fmt.Errorf("s3 output %s needs an s3 client", dir)
		}
		name := r.OutputName(job.Input)
		loc, err := blob.Join(dir, name)
		if err != nil {
			return "", err
		}
		local := filepath.Join(stage, "out", name)
		if err := tabular.WriteFile(ctx, local, rs, r.opts.Table); err != nil {
			return "", err
		}
		return loc.String(), r.opts.Blob.Upload(ctx, local, loc)
	default:
		out := filepath.Join(dir, r.OutputName(job.Input))
		return out, tabular.WriteFile(ctx, out, rs, r.opts.Table)
	}
}
