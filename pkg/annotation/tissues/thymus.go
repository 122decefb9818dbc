package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Thymus)
}

// Thymus collapses numbered thymocyte clusters into T cells and spells out
// the double/single negative/positive stage abbreviations.
var Thymus = annotation.RuleSet{
	Tissue:      "Thymus",
	Description: "Thymocyte clusters become T cells; expand DN, DP, SP and SN.",
	Steps: []annotation.Step{
		annotation.Replace(ann, "differenation", "differentiation"),
		annotation.Replace(ann, "differentation", "differentiation"),
		annotation.Rename(ann, "thymocyte_1_mix_of_dn4_dp_immaturesps", "t_cells"),
		annotation.ExtractSplit(ann,
			`^thymocyte_\d+_(?P<subannotation>.+)$`,
			annotation.HasPrefix(ann, "thymocyte")),
		annotation.Set(annotation.HasPrefix(ann, "thymocyte"), annotation.To(ann, "t_cells")),
		annotation.ReplacePattern(sub, `(^|_)dn(\d*)(_|$)`, "${1}double_negative${2}${3}"),
		annotation.ReplacePattern(sub, `(^|_)dp(\d*)(_|$)`, "${1}double_positive${2}${3}"),
		annotation.ReplacePattern(sub, `(^|_)sp(\d*)(_|$)`, "${1}single_positive${2}${3}"),
		annotation.ReplacePattern(sub, `(^|_)sn(\d*)(_|$)`, "${1}single_negative${2}${3}"),
	},
}
