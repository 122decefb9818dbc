package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/czbiohub-sf/maca/internal/cli/output"
	"github.com/czbiohub-sf/maca/pkg/annotation"
)

// labelSeparator splits an annotation from its subannotation in a label
// given on the command line.
const labelSeparator = "::"

// explanation is the trace of one label through the pipeline.
type explanation struct {
	Label  string             `json:"label" yaml:"label"`
	Tissue string             `json:"tissue" yaml:"tissue"`
	Known  bool               `json:"known" yaml:"known"`
	Stages []annotation.Stage `json:"stages" yaml:"stages"`
}

// NewExplainCommand creates the explain command.
func NewExplainCommand() *cobra.Command {
	var tissue string

	cmd := &cobra.Command{
		Use:   "explain <label>...",
		Short: "Show how labels are rewritten step by step",
		Long: `Run single labels through the normalizer, the tissue rules and the
finalizer, printing every stage that changed them.

A label is an annotation, optionally followed by "::" and a subannotation.`,
		Example: `  maca explain --tissue Heart Fb_1 Edc_3_endocardial
  maca explain --tissue Marrow "granulocytes::Neutrophils"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			if tissue == "" {
				tissue = cc.Cfg.Tissue
			}
			if tissue == "" {
				return fmt.Errorf("--tissue is required")
			}

			out := make([]explanation, len(args))
			for i, label := range args {
				out[i] = explainLabel(label, tissue)
			}
			return renderExplanations(cc.Renderer, out)
		},
	}

	cmd.Flags().StringVar(&tissue, "tissue", "", "Tissue rule set to apply")
	_ = cmd.RegisterFlagCompletionFunc("tissue", completeTissues)

	return cmd
}

// parseLabel splits "annotation::subannotation" into a record. Empty
// parts are Missing.
func parseLabel(label string) annotation.Record {
	ann, sub, _ := strings.Cut(label, labelSeparator)
	return annotation.Record{Annotation: labelValue(ann), Subannotation: labelValue(sub)}
}

func labelValue(s string) annotation.Value {
	if s == "" {
		return annotation.Missing
	}
	return annotation.Text(s)
}

func explainLabel(label, tissue string) explanation {
	_, known := annotation.Lookup(tissue)
	return explanation{
		Label:  label,
		Tissue: tissue,
		Known:  known,
		Stages: annotation.Explain(parseLabel(label), tissue),
	}
}

func renderExplanations(r *output.Renderer, out []explanation) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeYAML:
		return r.YAML(out)
	}

	for i, e := range out {
		if i > 0 {
			r.Println()
		}
		renderExplanation(r, e)
	}
	return nil
}

func renderExplanation(r *output.Renderer, e explanation) {
	r.Header(2, fmt.Sprintf("%s (%s)", e.Label, e.Tissue))
	if !e.Known {
		r.Warn("no rule set for tissue %q, only normalization applies", e.Tissue)
	}
	rows := make([][]any, len(e.Stages))
	for i, s := range e.Stages {
		rows[i] = []any{s.Name, displayValue(s.Annotation), displayValue(s.Subannotation)}
	}
	r.Table([]string{"stage", "annotation", "subannotation"}, rows)
}

func displayValue(v annotation.Value) string {
	if v.IsMissing() {
		return "<missing>"
	}
	return v.String()
}
