package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Kidney)
}

// Kidney groups tubule segments under one annotation.
var Kidney = annotation.RuleSet{
	Tissue:      "Kidney",
	Description: "Group proximal and thick ascending segments as tubule cells.",
	Steps: []annotation.Step{
		annotation.Set(annotation.HasPrefix(ann, "proximal"),
			annotation.To(sub, "proximal"),
			annotation.To(ann, "tubule")),
		annotation.Set(annotation.HasPrefix(ann, "thick"),
			annotation.To(sub, "thick_ascending"),
			annotation.To(ann, "tubule")),
	},
}
