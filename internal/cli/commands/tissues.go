package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/czbiohub-sf/maca/internal/cli/output"
	"github.com/czbiohub-sf/maca/pkg/annotation"
	_ "github.com/czbiohub-sf/maca/pkg/annotation/tissues" // register tissue rule sets
)

// tissueInfo is the machine-readable view of a rule set.
type tissueInfo struct {
	Tissue      string   `json:"tissue" yaml:"tissue"`
	Description string   `json:"description" yaml:"description"`
	KeepNumbers bool     `json:"keep_numbers" yaml:"keep_numbers"`
	Steps       []string `json:"steps,omitempty" yaml:"steps,omitempty"`
}

func newTissueInfo(set annotation.RuleSet, withSteps bool) tissueInfo {
	info := tissueInfo{
		Tissue:      set.Tissue,
		Description: set.Description,
		KeepNumbers: set.KeepNumbers,
	}
	if withSteps {
		info.Steps = make([]string, len(set.Steps))
		for i, s := range set.Steps {
			info.Steps[i] = s.String()
		}
	}
	return info
}

// NewTissuesCommand creates the tissues command.
func NewTissuesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tissues [tissue]",
		Short: "List tissue rule sets",
		Long: `List every tissue with a registered rule set, or show the ordered steps
of one tissue. Tissue names are case-sensitive.`,
		Example: `  # List all tissues
  maca tissues

  # Show the steps applied to Marrow
  maca tissues Marrow

  # Output as JSON
  maca tissues -o json`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeTissues,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := NewCommandContext(cmd).Renderer
			if len(args) == 1 {
				return showTissue(r, args[0])
			}
			return listTissues(r)
		},
	}
	return cmd
}

func listTissues(r *output.Renderer) error {
	sets := annotation.AllRuleSets()
	infos := make([]tissueInfo, len(sets))
	for i, set := range sets {
		infos[i] = newTissueInfo(set, false)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(infos)
	case output.ModeYAML:
		return r.YAML(infos)
	}

	r.Header(1, fmt.Sprintf("Tissues (%d)", len(infos)))
	rows := make([][]any, len(infos))
	for i, info := range infos {
		rows[i] = []any{info.Tissue, len(sets[i].Steps), info.Description}
	}
	r.Table([]string{"tissue", "steps", "description"}, rows)
	return nil
}

func showTissue(r *output.Renderer, name string) error {
	set, ok := annotation.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown tissue %q (available: %s)", name, strings.Join(annotation.Tissues(), ", "))
	}
	info := newTissueInfo(set, true)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeYAML:
		return r.YAML(info)
	}

	r.Header(1, info.Tissue)
	if info.Description != "" {
		r.Println(info.Description)
	}
	if info.KeepNumbers {
		r.Muted("Numbers in labels are kept.")
	}
	r.Println()
	rows := make([][]any, len(info.Steps))
	for i, s := range info.Steps {
		rows[i] = []any{i + 1, s}
	}
	r.Table([]string{"#", "step"}, rows)
	return nil
}

// completeTissues completes registered tissue names.
func completeTissues(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, t := range annotation.Tissues() {
		if strings.HasPrefix(t, toComplete) {
			out = append(out, t)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
