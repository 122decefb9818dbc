package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Fat)
}

// Fat collapses the myeloid group and NK cells and pluralizes the
// epithelial/endothelial and muscle labels.
var Fat = annotation.RuleSet{
	Tissue:      "Fat",
	Description: "Collapse mono/macro/DCs to myeloid cells; route NK cells under T cells.",
	Steps: []annotation.Step{
		annotation.Replace(ann, "-", "_"),
		annotation.Rename(ann, "mono_or_macro_or_dcs", "myeloid_cells"),
		naturalKiller(annotation.Matches(ann, `(^|_)nk(_|$)`)),
		annotation.ReplacePattern(ann, `thelial$`, "thelial_cells"),
		annotation.ReplacePattern(ann, `muscle$`, "muscle_cells"),
	},
}
