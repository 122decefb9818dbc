package annotation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	assert.True(t, Missing.IsMissing())
	assert.Equal(t, "", Missing.String())

	s, ok := Text("b_cells").Str()
	assert.True(t, ok)
	assert.Equal(t, "b_cells", s)

	_, ok = Number(3).Str()
	assert.False(t, ok)
	f, ok := Number(2.5).Float()
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)
	assert.Equal(t, "2.5", Number(2.5).String())

	assert.False(t, Text("").Equal(Missing), "empty text is not missing")
	assert.True(t, Number(1).Equal(Number(1)))
}

func TestValue_MarshalJSON(t *testing.T) {
	b, err := json.Marshal([]Value{Missing, Text("t_cells"), Number(4)})
	require.NoError(t, err)
	assert.JSONEq(t, `[null, "t_cells", 4]`, string(b))
}

func TestRecordSet_DropColumn(t *testing.T) {
	rs := NewRecordSet(texts("a", "b"), nil)
	rs.Columns = append(rs.Columns, "plate.barcode", "well")
	rs.Extra = []Column{
		{Name: "plate.barcode", Values: []string{"p1", "p2"}},
		{Name: "well", Values: []string{"A1", "A2"}},
	}

	assert.True(t, rs.DropColumn("plate.barcode"))
	assert.False(t, rs.DropColumn("plate.barcode"), "second drop is a no-op")
	assert.False(t, rs.DropColumn(AnnotationColumn), "label columns are never dropped")

	assert.Equal(t, []string{AnnotationColumn, SubannotationColumn, "well"}, rs.Columns)
	col, ok := rs.Column("well")
	require.True(t, ok)
	assert.Equal(t, []string{"A1", "A2"}, col.Values)
	assert.Equal(t, 2, rs.Len())
}

func TestRecordSet_Clone(t *testing.T) {
	rs := NewRecordSet(texts("a"), nil)
	rs.Extra = []Column{{Name: "x", Values: []string{"1"}}}

	c := rs.Clone()
	c.Records[0].Annotation = Text("changed")
	c.Extra[0].Values[0] = "2"

	assert.Equal(t, Text("a"), rs.Records[0].Annotation)
	assert.Equal(t, "1", rs.Extra[0].Values[0])
}
