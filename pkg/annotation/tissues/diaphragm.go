package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Diaphragm)
}

// Diaphragm keeps its numeric cluster index as the subannotation, so the
// normalizer must not strip digits for this tissue. Labels without an
// index lose their subannotation.
var Diaphragm = annotation.RuleSet{
	Tissue:      "Diaphragm",
	Description: "Merge B and T cells into immune cells; move cluster digits to the subannotation.",
	KeepNumbers: true,
	Steps: []annotation.Step{
		annotation.Set(annotation.Equals(ann, "b_cells_&_t-cells"),
			annotation.To(ann, "immune_cells"),
			annotation.Clear(sub)),
		annotation.ExtractSplit(ann, `^(?P<annotation>.+?)_?(?P<subannotation>\d*)$`, raw),
		// "12" labels a merged cluster, not a subtype.
		annotation.Set(annotation.Equals(sub, "12"), annotation.Clear(sub)),
	},
}
