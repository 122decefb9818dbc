package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Tongue)
}

var Tongue = annotation.RuleSet{
	Tissue:      "Tongue",
	Description: "Basal layer becomes basal cells; hyphens in subannotations become underscores.",
	Steps: []annotation.Step{
		annotation.Replace(ann, "basal_layer", "basal_cells"),
		annotation.Replace(sub, "-", "_"),
	},
}
