package annotation

import (
	"io"
	"log/slog"
	"os"
)

// Options controls a Clean run. The zero value is ready to use.
type Options struct {
	// Logger receives step-level debug logs. Nil discards them.
	Logger *slog.Logger
	// Debug dumps (annotation, subannotation) group counts before and after
	// the tissue-specific steps. It never affects the output values.
	Debug bool
	// DebugOut receives the dump. Defaults to os.Stderr.
	DebugOut io.Writer
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// StepReport records the effect of one tissue step.
type StepReport struct {
	Index   int    `json:"index" yaml:"index"`
	Step    string `json:"step" yaml:"step"`
	Changed int    `json:"changed" yaml:"changed"`
}

// Report summarizes a Clean run.
type Report struct {
	Tissue string `json:"tissue" yaml:"tissue"`
	// Known is false when no rule set is registered for Tissue.
	Known bool         `json:"known" yaml:"known"`
	Rows  int          `json:"rows" yaml:"rows"`
	Steps []StepReport `json:"steps" yaml:"steps"`
}

// Changed returns the total number of row changes across all steps.
func (r Report) Changed() int {
	n := 0
	for _, s := range r.Steps {
		n += s.Changed
	}
	return n
}

// Apply executes steps strictly in order against rs and returns it.
func Apply(rs *RecordSet, steps []Step) *RecordSet {
	for _, s := range steps {
		s.Apply(rs)
	}
	return rs
}

// Clean normalizes the labels of rs for tissue and returns rs, mutated in
// place. Unknown tissues run no tissue-specific steps. Clean never fails:
// unmatched patterns yield Missing and non-text values pass through.
func Clean(rs *RecordSet, tissue string, opts Options) *RecordSet {
	rs, _ = CleanWithReport(rs, tissue, opts)
	return rs
}

// CleanWithReport is Clean, additionally reporting how many rows each
// tissue step changed.
func CleanWithReport(rs *RecordSet, tissue string, opts Options) (*RecordSet, Report) {
	logger := opts.logger().With("tissue", tissue)

	set, ok := Lookup(tissue)
	if !ok {
		logger.Debug("no rule set registered for tissue, applying normalization only")
	}
	strip := set.StripNumbers()
	report := Report{Tissue: tissue, Known: ok, Rows: rs.Len(), Steps: make([]StepReport, 0, len(set.Steps))}

	NormalizeRecords(rs, strip)

	if opts.Debug {
		dumpGroups(opts, "before "+tissue+" rules", rs)
	}

	for i, s := range set.Steps {
		changed := s.Apply(rs)
		report.Steps = append(report.Steps, StepReport{Index: i, Step: s.String(), Changed: changed})
		logger.Debug("applied step", "index", i, "step", s.String(), "rows_changed", changed)
	}

	if opts.Debug {
		dumpGroups(opts, "after "+tissue+" rules", rs)
	}

	Finalize(rs, strip)
	logger.Debug("cleaned annotations", "rows", rs.Len(), "steps", len(set.Steps))
	return rs, report
}

func dumpGroups(opts Options, title string, rs *RecordSet) {
	w := opts.DebugOut
	if w == nil {
		w = os.Stderr
	}
	RenderGroups(w, title, GroupCounts(rs))
}
