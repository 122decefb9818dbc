package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Marrow)
}

// Marrow has the most involved labels: dash-separated "<stage>-<lineage>"
// annotations, B cell stages written as "<stage>-b", and numbered
// subclusters.
var Marrow = annotation.RuleSet{
	Tissue:      "Marrow",
	Description: "Split stage-lineage labels; group B cell stages; canonicalize maturation subannotations.",
	Steps: []annotation.Step{
		annotation.DropColumn("plate.barcode"),
		annotation.Set(annotation.All(annotation.Equals(ann, "neutrophils"), annotation.IsMissing(sub)),
			annotation.To(sub, "quiescent")),

		// B cell stages: "pre-b" -> b_cells / pre.
		annotation.ExtractSplit(ann, `^(?P<subannotation>.+)-b$`, annotation.Matches(ann, `-b$`)),
		annotation.Set(annotation.Matches(ann, `-b$`), annotation.To(ann, "b_cells")),

		annotation.Rename(ann, "monocytes_monocyte-progenitors", "monocytes"),
		annotation.Rename(ann, "stem_progenitors", "hematopoietic_stem_cells"),
		annotation.Rename(ann, "t_nk", "t_cells"),
		annotation.Rename(sub, "immature_mature", "maturing"),
		annotation.Replace(sub, "monoprogenitor", "progenitor"),

		annotation.ExtractSplit(ann,
			`^(?P<subannotation>.+)-(?P<annotation>[^-]+)$`,
			annotation.Contains(ann, "-")),

		annotation.ReplacePattern(sub, `\d+$`, ""),
		annotation.Rename(sub, "monocyte", "mature"),
		annotation.Set(annotation.Equals(sub, "t"), annotation.Clear(sub)),
		annotation.Rename(sub, "resting", "quiescent"),
		annotation.Rename(sub, "nk", "natural_killer_cells"),
	},
}
