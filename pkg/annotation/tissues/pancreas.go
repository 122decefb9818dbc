package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Pancreas)
}

// Pancreas drops alpha subannotations and pluralizes PP.
var Pancreas = annotation.RuleSet{
	Tissue:      "Pancreas",
	Description: "Clear alpha subannotations; pp becomes pp_cells.",
	Steps: []annotation.Step{
		annotation.Set(annotation.Contains(sub, "alpha"), annotation.Clear(sub)),
		annotation.Rename(sub, "pp", "pp_cells"),
	},
}
