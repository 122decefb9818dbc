package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Bladder)
}

// Bladder derives the subannotation from the trailing A/B cluster letter
// ("Basal A1"); labels without one lose their subannotation. The cluster
// digit is already gone after normalization.
var Bladder = annotation.RuleSet{
	Tissue:      "Bladder",
	Description: "Move trailing a/b cluster letters to the subannotation; clear every other subannotation.",
	Steps: []annotation.Step{
		annotation.ExtractSplit(ann, `^(?P<annotation>.+?)(?:_(?P<subannotation>[ab]))?$`, raw),
	},
}
