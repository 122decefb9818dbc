package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stageNames(stages []Stage) []string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name
	}
	return names
}

func TestExplain_UnknownTissue(t *testing.T) {
	stages := Explain(Record{Annotation: Text("Natural Killer Cells")}, "Not_A_Tissue")

	assert.Equal(t, []string{"input", "normalize", "finalize"}, stageNames(stages))
	last := stages[len(stages)-1]
	assert.Equal(t, Text("t_cells"), last.Annotation)
	assert.Equal(t, Text("natural_killer_cells"), last.Subannotation)
}

func TestExplain_OnlyChangingSteps(t *testing.T) {
	Register(RuleSet{
		Tissue: "Explain_Fixture",
		Steps: []Step{
			Rename(Annotation, "never", "x"),
			Rename(Annotation, "fb", "fibroblasts"),
		},
	})
	t.Cleanup(func() { unregister("Explain_Fixture") })

	stages := Explain(Record{Annotation: Text("FB")}, "Explain_Fixture")

	require.Len(t, stages, 3)
	assert.Equal(t, "normalize", stages[1].Name)
	assert.Equal(t, Text("fb"), stages[1].Annotation)
	assert.Equal(t, `rename "fb" -> "fibroblasts" in annotation`, stages[2].Name)
	assert.Equal(t, Text("fibroblasts"), stages[2].Annotation)
}

func TestExplain_MatchesClean(t *testing.T) {
	in := Record{Annotation: Text("Basal Cell 3"), Subannotation: Text("Resting")}
	stages := Explain(in, "Not_A_Tissue")

	rs := Clean(&RecordSet{Records: []Record{in}}, "Not_A_Tissue", Options{})
	last := stages[len(stages)-1]
	assert.Equal(t, rs.Records[0], Record{Annotation: last.Annotation, Subannotation: last.Subannotation})
}
