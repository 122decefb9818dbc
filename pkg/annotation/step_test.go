package annotation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(ss ...string) []Value {
	out := make([]Value, len(ss))
	for i, s := range ss {
		if s == "" {
			out[i] = Missing
			continue
		}
		out[i] = Text(s)
	}
	return out
}

func records(pairs ...[2]string) []Record {
	out := make([]Record, len(pairs))
	for i, p := range pairs {
		out[i] = Record{Annotation: texts(p[0])[0], Subannotation: texts(p[1])[0]}
	}
	return out
}

func TestReplaceStep(t *testing.T) {
	tests := []struct {
		name        string
		step        Step
		in          []Value
		want        []Value
		wantChanged int
	}{
		{
			name:        "substring",
			step:        Replace(Annotation, "aveolar", "alveolar"),
			in:          texts("aveolar_macrophage", "b_cells", ""),
			want:        texts("alveolar_macrophage", "b_cells", ""),
			wantChanged: 1,
		},
		{
			name:        "pattern with groups",
			step:        ReplacePattern(Annotation, `(^|_)fb(_|$)`, "${1}fibroblasts${2}"),
			in:          texts("fb", "fb_2_x", "fbx"),
			want:        texts("fibroblasts", "fibroblasts_2_x", "fbx"),
			wantChanged: 2,
		},
		{
			name:        "empty result becomes missing",
			step:        ReplacePattern(Annotation, `^male$`, ""),
			in:          texts("male", "female"),
			want:        texts("", "female"),
			wantChanged: 1,
		},
		{
			name:        "rename matches whole value only",
			step:        Rename(Annotation, "npc", "neural_progenitor_cells"),
			in:          texts("npc", "npc_like"),
			want:        texts("neural_progenitor_cells", "npc_like"),
			wantChanged: 1,
		},
		{
			name:        "restricted to matching rows",
			step:        Replace(Annotation, "cell", "cells").Only(HasPrefix(Annotation, "stem")),
			in:          texts("stem_cell", "basal_cell"),
			want:        texts("stem_cells", "basal_cell"),
			wantChanged: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := NewRecordSet(tt.in, nil)
			changed := tt.step.Apply(rs)

			assert.Equal(t, tt.wantChanged, changed)
			want := NewRecordSet(tt.want, nil)
			if diff := cmp.Diff(want.Records, rs.Records); diff != "" {
				t.Errorf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReplaceStep_SkipsNumbers(t *testing.T) {
	rs := NewRecordSet([]Value{Number(12)}, nil)
	assert.Equal(t, 0, Replace(Annotation, "1", "x").Apply(rs))
	assert.Equal(t, KindNumber, rs.Records[0].Annotation.Kind())
}

func TestExtractSplitStep(t *testing.T) {
	t.Run("writes both named groups", func(t *testing.T) {
		rs := &RecordSet{Records: records([2]string{"cd4+_t_cells", "old"})}
		step := ExtractSplit(Annotation, `^(?P<subannotation>.+)_(?P<annotation>t_cells)$`, nil)

		assert.Equal(t, 1, step.Apply(rs))
		assert.Equal(t, records([2]string{"t_cells", "cd4+"}), rs.Records)
	})

	t.Run("unmatched selected rows become missing", func(t *testing.T) {
		rs := &RecordSet{Records: records([2]string{"basal", "keep"})}
		ExtractSplit(Annotation, `^(?P<annotation>.+)_(?P<subannotation>[ab])$`, nil).Apply(rs)

		assert.True(t, rs.Records[0].Annotation.IsMissing())
		assert.True(t, rs.Records[0].Subannotation.IsMissing())
	})

	t.Run("rows outside where are untouched", func(t *testing.T) {
		rs := &RecordSet{Records: records(
			[2]string{"basal_a", ""},
			[2]string{"luminal", "x"},
		)}
		step := ExtractSplit(Annotation, `^(?P<annotation>.+)_(?P<subannotation>[ab])$`, Matches(Annotation, `_[ab]$`))

		assert.Equal(t, 1, step.Apply(rs))
		assert.Equal(t, records([2]string{"basal", "a"}, [2]string{"luminal", "x"}), rs.Records)
	})

	t.Run("only the named target is written", func(t *testing.T) {
		rs := &RecordSet{Records: records([2]string{"pre-b", "x"})}
		ExtractSplit(Annotation, `^(?P<subannotation>.+)-b$`, nil).Apply(rs)

		assert.Equal(t, records([2]string{"pre-b", "pre"}), rs.Records)
	})

	t.Run("number source is skipped", func(t *testing.T) {
		rs := &RecordSet{Records: []Record{{Annotation: Number(1), Subannotation: Text("x")}}}
		assert.Equal(t, 0, ExtractSplit(Annotation, `(?P<subannotation>.*)`, nil).Apply(rs))
		assert.Equal(t, "x", rs.Records[0].Subannotation.String())
	})

	t.Run("bad patterns panic", func(t *testing.T) {
		assert.Panics(t, func() { ExtractSplit(Annotation, `(?P<tissue>.+)`, nil) })
		assert.Panics(t, func() { ExtractSplit(Annotation, `(.+)`, nil) })
	})
}

func TestSetStep(t *testing.T) {
	rs := &RecordSet{Records: records(
		[2]string{"proximal_tubule", ""},
		[2]string{"podocyte", "x"},
	)}

	// Both assignments see the predicate evaluated before the first write.
	step := Set(HasPrefix(Annotation, "proximal"), To(Subannotation, "proximal"), To(Annotation, "tubule"))
	assert.Equal(t, 1, step.Apply(rs))
	assert.Equal(t, records([2]string{"tubule", "proximal"}, [2]string{"podocyte", "x"}), rs.Records)

	// Re-applying is a no-op.
	assert.Equal(t, 0, step.Apply(rs))

	assert.Equal(t, 1, Set(Equals(Subannotation, "x"), Clear(Subannotation)).Apply(rs))
	assert.True(t, rs.Records[1].Subannotation.IsMissing())

	assert.Panics(t, func() { Set(nil) })
}

func TestMoveStep(t *testing.T) {
	tests := []struct {
		name string
		step Step
		want []Record
	}{
		{"move clears source", Move(nil, Subannotation, Annotation), records([2]string{"fibroblasts", ""})},
		{"copy keeps source", Copy(nil, Subannotation, Annotation), records([2]string{"fibroblasts", "fibroblasts"})},
		{"swap exchanges", Swap(nil), records([2]string{"fibroblasts", "heterogenous_group_of_cells"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := &RecordSet{Records: records([2]string{"heterogenous_group_of_cells", "fibroblasts"})}
			assert.Equal(t, 1, tt.step.Apply(rs))
			assert.Equal(t, tt.want, rs.Records)
		})
	}
}

func TestDropColumnStep(t *testing.T) {
	rs := NewRecordSet(texts("a", "b"), nil)
	rs.Columns = append(rs.Columns, "plate.barcode", "cell")
	rs.Extra = []Column{
		{Name: "plate.barcode", Values: []string{"P1", "P2"}},
		{Name: "cell", Values: []string{"c1", "c2"}},
	}

	step := DropColumn("plate.barcode")
	step.Apply(rs)
	step.Apply(rs)

	assert.Equal(t, []string{AnnotationColumn, SubannotationColumn, "cell"}, rs.Columns)
	require.Len(t, rs.Extra, 1)
	assert.Equal(t, "cell", rs.Extra[0].Name)
	assert.Equal(t, 2, rs.Len())

	assert.False(t, rs.DropColumn(AnnotationColumn))
}

func TestLookupTable(t *testing.T) {
	steps := LookupTable(Annotation, []Mapping{
		{Token: "epcam", Label: "epithelial_cells"},
		{Token: "ptprc", Label: "immune_cells"},
	})
	require.Len(t, steps, 2)

	rs := &RecordSet{Records: records(
		[2]string{"epcam", ""},
		[2]string{"unknown", "ptprc"},
		[2]string{"other", ""},
	)}
	Apply(rs, steps)

	assert.Equal(t, records(
		[2]string{"epithelial_cells", ""},
		[2]string{"immune_cells", "ptprc"},
		[2]string{"other", ""},
	), rs.Records)
}

func TestStepString(t *testing.T) {
	tests := []struct {
		step Step
		want string
	}{
		{Rename(Subannotation, "pp", "pp_cells"), `rename "pp" -> "pp_cells" in subannotation`},
		{Set(Equals(Subannotation, "12"), Clear(Subannotation)), `set subannotation = <missing> where subannotation == "12"`},
		{Move(Equals(Annotation, "x"), Subannotation, Annotation), `move subannotation to annotation where annotation == "x"`},
		{DropColumn("plate.barcode"), `drop column "plate.barcode"`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.step.String())
		})
	}
}
