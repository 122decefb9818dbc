package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Spleen)
}

// Spleen moves the qualifier in front of "B cells"/"T cells" into the
// subannotation, so "cd4+_t_cells" becomes t_cells / cd4+.
var Spleen = annotation.RuleSet{
	Tissue:      "Spleen",
	Description: "Split qualified B and T cells; collapse macrophages to myeloid cells.",
	Steps: []annotation.Step{
		annotation.Replace(ann, "follilular", "follicular"),
		annotation.Replace(ann, "t1_or_t2_or_follicular", "follicular"),
		annotation.ExtractSplit(ann,
			`^(?P<subannotation>[a-z_48+]+)_(?P<annotation>[bt]_cells?)$`,
			annotation.Matches(ann, `.+_[bt]_cells?$`)),
		annotation.Set(annotation.Contains(ann, "macrophage"), annotation.To(ann, "myeloid_cells")),
		naturalKiller(annotation.Matches(ann, `^natural_killer_cells?$`)),
	},
}
