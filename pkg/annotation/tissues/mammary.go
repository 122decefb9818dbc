package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(MammaryGland)
}

// MammaryGland files hormone responsive cells under luminal cells.
var MammaryGland = annotation.RuleSet{
	Tissue:      "Mammary_Gland",
	Description: "Hormone responsive cells become a luminal subtype.",
	Steps: []annotation.Step{
		annotation.Set(annotation.HasPrefix(ann, "hormone"),
			annotation.To(ann, "luminal_cells"),
			annotation.To(sub, "hormone_responsive")),
	},
}
