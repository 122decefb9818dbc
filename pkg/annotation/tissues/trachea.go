package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(Trachea)
}

// Trachea clusters were labelled by marker gene. Subtype markers are
// resolved first, while the gene is still present, then every marker is
// mapped to its lineage. Gene symbols end in digits, so numbers are kept.
var Trachea = annotation.RuleSet{
	Tissue:      "Trachea",
	Description: "Map marker-gene labels to cell types.",
	KeepNumbers: true,
	Steps: append(
		[]annotation.Step{annotation.Replace(ann, "immunue", "immune")},
		append(
			annotation.LookupTable(sub, tracheaSubtypes),
			annotation.LookupTable(ann, tracheaLineages)...,
		)...,
	),
}

var tracheaSubtypes = []annotation.Mapping{
	{Token: "krt5", Label: "basal_cells"},
	{Token: "krt14", Label: "basal_cells"},
	{Token: "scgb1a1", Label: "club_cells"},
	{Token: "foxj1", Label: "ciliated_cells"},
	{Token: "muc5b", Label: "goblet_cells"},
	{Token: "chga", Label: "neuroendocrine_cells"},
}

var tracheaLineages = []annotation.Mapping{
	{Token: "epcam", Label: "epithelial_cells"},
	{Token: "krt5", Label: "epithelial_cells"},
	{Token: "krt14", Label: "epithelial_cells"},
	{Token: "scgb1a1", Label: "epithelial_cells"},
	{Token: "foxj1", Label: "epithelial_cells"},
	{Token: "muc5b", Label: "epithelial_cells"},
	{Token: "chga", Label: "epithelial_cells"},
	{Token: "pecam1", Label: "endothelial_cells"},
	{Token: "ptprc", Label: "immune_cells"},
	{Token: "col1a1", Label: "stromal_cells"},
	{Token: "acta2", Label: "smooth_muscle_cells"},
}
