package tissues

import "github.com/czbiohub-sf/maca/pkg/annotation"

func init() {
	annotation.Register(BrainNeurons)
}

// BrainNeurons expands abbreviations used by the FACS neuron analysis.
var BrainNeurons = annotation.RuleSet{
	Tissue:      "Brain_FACS_neurons",
	Description: "Expand NPC and Berg.Glia; mark doublets as undetermined.",
	Steps: []annotation.Step{
		annotation.Rename(ann, "endothelial", "endothelial_cells"),
		annotation.Rename(ann, "npc", "neural_progenitor_cells"),
		annotation.Rename(sub, "berg_glia", "bergmann_glia"),
		annotation.Rename(sub, "doublet", "undetermined"),
	},
}
