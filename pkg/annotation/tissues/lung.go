package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Lung)
}

// Lung moves alveolar and interstitial qualifiers out of the annotation.
var Lung = annotation.RuleSet{
	Tissue:      "Lung",
	Description: "Fix aveolar; split alveolar epithelium and macrophages; drop type and remaining qualifiers.",
	Steps: []annotation.Step{
		annotation.Replace(ann, "aveolar", "alveolar"),
		annotation.Set(annotation.Contains(ann, "alveolar_epithelial"),
			annotation.To(ann, "epithelial_cells"),
			annotation.To(sub, "alveolar")),
		annotation.ReplacePattern(ann, `_type(_[iv]+)?$`, ""),
		annotation.ReplacePattern(ann, `^remaining_`, ""),
		annotation.Set(annotation.Matches(ann, `^alveolar_macrophages?$`),
			annotation.To(ann, "macrophages"),
			annotation.To(sub, "alveolar")),
		annotation.Set(annotation.Matches(ann, `^interstiti?al_macrophages?$`),
			annotation.To(ann, "macrophages"),
			annotation.To(sub, "interstitial")),
		annotation.Set(annotation.Matches(ann, `^unknown_immune_is?$`),
			annotation.To(ann, "immune_cells"),
			annotation.Clear(sub)),
		naturalKiller(annotation.Contains(ann, "natural_killer")),
	},
}
