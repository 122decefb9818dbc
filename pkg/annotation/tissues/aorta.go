package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Aorta)
}

// Aorta fixes a spelling error and promotes the subannotation of the
// catch-all "heterogenous group of cells" cluster.
var Aorta = annotation.RuleSet{
	Tissue:      "Aorta",
	Description: "Spell check hematopoietic; promote subannotation of heterogenous clusters.",
	Steps: []annotation.Step{
		annotation.Replace(ann, "hematopoetic", "hematopoietic"),
		annotation.Move(annotation.Equals(ann, "heterogenous_group_of_cells"), sub, ann),
	},
}
