package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Heart)
}

// Heart expands cluster abbreviations. Trailing cluster indices ("Fb_1")
// are removed by the normalizer; an index followed by free text
// ("Edc_3_endocardial") moves that text to the subannotation.
var Heart = annotation.RuleSet{
	Tissue:      "Heart",
	Description: "Expand Fb, Edc, CMs and SMCs; split indexed endothelial clusters.",
	Steps: []annotation.Step{
		annotation.ReplacePattern(ann, `(^|_)fb(_|$)`, "${1}fibroblasts${2}"),
		annotation.ReplacePattern(ann, `(^|_)edc(_|$)`, "${1}endothelial_cells${2}"),
		annotation.ReplacePattern(ann, `(^|_)cms(_|$)`, "${1}cardiomyocytes${2}"),
		annotation.ReplacePattern(ann, `(^|_)smcs(_|$)`, "${1}smooth_muscle_cells${2}"),
		annotation.Rename(ann, "myofibroblast", "myofibroblasts"),
		annotation.ExtractSplit(ann,
			`^(?P<annotation>[a-z_]+?)_\d+_(?P<subannotation>[a-z_]+)$`,
			annotation.Matches(ann, `_\d+_`)),
	},
}
