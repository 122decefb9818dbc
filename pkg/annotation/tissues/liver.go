package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Liver)
}

// Liver drops sex from the subannotation and expands NPC.
var Liver = annotation.RuleSet{
	Tissue:      "Liver",
	Description: "Remove female/male from subannotations; expand NPC.",
	Steps: []annotation.Step{
		annotation.ReplacePattern(sub, `(^|_)(?:fe)?male(?:_|$)`, "${1}"),
		annotation.ReplacePattern(ann, `(^|_)npc(_|$)`, "${1}non-parenchymal_cell${2}"),
	},
}
