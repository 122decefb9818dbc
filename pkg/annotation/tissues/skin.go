package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Skin)
}

// interfollicular matches labels carrying the IFE token.
var interfollicular = annotation.Matches(ann, `(^|_)ife(_|$)`)

// Skin groups interfollicular epidermis layers and bulge stem cells.
var Skin = annotation.RuleSet{
	Tissue:      "Skin",
	Description: "Split IFE layers into interfollicular epidermis; split inner and outer bulge.",
	Steps: []annotation.Step{
		annotation.ExtractSplit(ann, `^(?P<subannotation>[a-z]+)`, interfollicular),
		annotation.ReplacePattern(sub, `^(.+)$`, "${1}_cells").Only(interfollicular),
		annotation.Set(interfollicular, annotation.To(ann, "interfollicular_epidermis")),
		annotation.Rename(ann, "cell_cycle", "proliferating_cells"),
		annotation.Set(annotation.Equals(ann, "outer_bulge"),
			annotation.To(ann, "bulge_cells"),
			annotation.To(sub, "outer")),
		annotation.Set(annotation.Equals(ann, "inner_bulge"),
			annotation.To(ann, "bulge_cells"),
			annotation.To(sub, "inner")),
	},
}
