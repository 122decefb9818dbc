package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Muscle)
}

var Muscle = annotation.RuleSet{
	Tissue:      "Muscle",
	Description: "Remove hyphens from annotations.",
	Steps: []annotation.Step{
		annotation.Replace(ann, "-", ""),
	},
}
