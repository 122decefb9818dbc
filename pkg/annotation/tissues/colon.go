package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Colon)
}

// Colon folds cycling and non-cycling undifferentiated cells into one
// annotation, keeping the cycle state as the subannotation. Incoming
// subannotations are discarded.
var Colon = annotation.RuleSet{
	Tissue:      "Colon",
	Description: "Expand Undiff.; cut trailing qualifiers; split undifferentiated cells by cycle state.",
	Steps: []annotation.Step{
		annotation.ReplacePattern(ann, `(^|_)undiff(_|$)`, "${1}undifferentiated${2}"),
		annotation.ExtractSplit(ann,
			`^(?P<annotation>[a-z_-]*[a-z])`,
			annotation.Matches(ann, `[^a-z_-]`)),
		annotation.Set(raw, annotation.Clear(sub)),
		annotation.Set(annotation.Equals(ann, "cycling_undifferentiated_cell"),
			annotation.To(sub, "proliferating")),
		annotation.Set(annotation.Equals(ann, "non-cycling_undifferentiated_cell"),
			annotation.To(sub, "quiescent")),
		annotation.Set(annotation.Contains(ann, "undifferentiated"),
			annotation.To(ann, "undifferentiated_cells")),
	},
}
