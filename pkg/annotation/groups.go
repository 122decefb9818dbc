package annotation

import (
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
)

const missingLabel = "<missing>"

// GroupCount is the number of rows sharing one (annotation, subannotation)
// pair.
type GroupCount struct {
	Annotation    string `json:"annotation"`
	Subannotation string `json:"subannotation"`
	Count         int    `json:"count"`
}

// GroupCounts counts rows per (annotation, subannotation) pair, sorted by
// annotation then subannotation. Missing values are rendered as
// "<missing>".
func GroupCounts(rs *RecordSet) []GroupCount {
	type key struct{ a, s string }
	counts := make(map[key]int)
	for i := range rs.Records {
		r := &rs.Records[i]
		counts[key{groupLabel(r.Annotation), groupLabel(r.Subannotation)}]++
	}

	out := make([]GroupCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, GroupCount{Annotation: k.a, Subannotation: k.s, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Annotation != out[j].Annotation {
			return out[i].Annotation < out[j].Annotation
		}
		return out[i].Subannotation < out[j].Subannotation
	})
	return out
}

func groupLabel(v Value) string {
	if v.IsMissing() {
		return missingLabel
	}
	return v.String()
}

// RenderGroups writes group counts as a table titled title.
func RenderGroups(w io.Writer, title string, groups []GroupCount) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	t.AppendHeader(table.Row{AnnotationColumn, SubannotationColumn, "rows"})

	total := 0
	for _, g := range groups {
		t.AppendRow(table.Row{g.Annotation, g.Subannotation, g.Count})
		total += g.Count
	}
	t.AppendFooter(table.Row{"", "total", total})
	t.Render()
}
