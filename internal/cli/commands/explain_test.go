package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/czbiohub-sf/maca/internal/cli/output"
	"github.com/czbiohub-sf/maca/internal/cli/testutil"
	"github.com/czbiohub-sf/maca/pkg/annotation"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		label string
		want  annotation.Record
	}{
		{"Fb_1", annotation.Record{Annotation: annotation.Text("Fb_1"), Subannotation: annotation.Missing}},
		{"granulocytes::Neutrophils", annotation.Record{Annotation: annotation.Text("granulocytes"), Subannotation: annotation.Text("Neutrophils")}},
		{"::Neutrophils", annotation.Record{Annotation: annotation.Missing, Subannotation: annotation.Text("Neutrophils")}},
		{"a::b::c", annotation.Record{Annotation: annotation.Text("a"), Subannotation: annotation.Text("b::c")}},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLabel(tt.label))
		})
	}
}

func TestExplainLabel(t *testing.T) {
	e := explainLabel("Natural Killer Cells", "Heart")

	assert.True(t, e.Known)
	require.NotEmpty(t, e.Stages)
	assert.Equal(t, "input", e.Stages[0].Name)

	last := e.Stages[len(e.Stages)-1]
	assert.Equal(t, "finalize", last.Name)
	assert.Equal(t, annotation.Text("t_cells"), last.Annotation)
	assert.Equal(t, annotation.Text("natural_killer_cells"), last.Subannotation)
}

func TestRenderExplanations_JSON(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeJSON, false)
	require.NoError(t, renderExplanations(tr.Renderer, []explanation{explainLabel("Fb_1", "Heart")}))

	var got []struct {
		Label  string `json:"label"`
		Stages []struct {
			Stage         string  `json:"stage"`
			Annotation    *string `json:"annotation"`
			Subannotation *string `json:"subannotation"`
		} `json:"stages"`
	}
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &got))
	require.Len(t, got, 1)
	stages := got[0].Stages
	require.NotEmpty(t, stages)
	last := stages[len(stages)-1]
	require.NotNil(t, last.Annotation)
	assert.Equal(t, "fibroblasts", *last.Annotation)
	assert.Nil(t, last.Subannotation, "missing renders as null")
}

func TestRenderExplanations_UnknownTissueWarns(t *testing.T) {
	tr := testutil.NewTestRenderer(output.ModeText, false)
	require.NoError(t, renderExplanations(tr.Renderer, []explanation{explainLabel("Fb_1", "Nowhere")}))

	assert.Contains(t, tr.ErrorOutput(), `no rule set for tissue "Nowhere"`)
	assert.Contains(t, tr.Output(), "fb_cells")
}
