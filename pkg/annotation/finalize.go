package annotation

import "strings"

const (
	tCells             = "t_cells"
	bCells             = "b_cells"
	naturalKillerCells = "natural_killer_cells"
	cellsSuffix        = "_cells"
)

// protected labels keep their "_cells" suffix unconditionally.
var protected = map[string]bool{
	tCells: true,
	bCells: true,
}

// Pluralize returns the plural form of an annotation label: labels ending
// in "s" are kept, labels ending in "cell" gain an "s", and anything else
// gains "_cells".
func Pluralize(s string) string {
	switch {
	case strings.HasSuffix(s, "s"):
		return s
	case strings.HasSuffix(s, "cell"):
		return s + "s"
	default:
		return s + cellsSuffix
	}
}

// trimCells drops a redundant "_cells" suffix from an already plural stem,
// so "macrophages_cells" becomes "macrophages". Protected labels are kept.
func trimCells(s string) string {
	if protected[s] || !strings.HasSuffix(s, cellsSuffix) {
		return s
	}
	stem := strings.TrimSuffix(s, cellsSuffix)
	if strings.HasSuffix(stem, "s") {
		return stem
	}
	return s
}

// Finalize applies the tissue-independent canonicalization pass in place:
// pluralize the annotation, spell out "&", re-normalize every field, trim
// redundant "_cells" suffixes and route natural killer cells under
// "t_cells".
func Finalize(rs *RecordSet, stripNumbers bool) *RecordSet {
	for i := range rs.Records {
		r := &rs.Records[i]
		if s, ok := r.Annotation.Str(); ok && s != "" {
			s = Pluralize(s)
			s = strings.ReplaceAll(s, "&", "_and_")
			r.Annotation = Text(s)
		}
	}

	NormalizeRecords(rs, stripNumbers)

	// Trim before re-routing so "natural_killer_cells_cells" is caught too.
	for i := range rs.Records {
		r := &rs.Records[i]
		if s, ok := r.Annotation.Str(); ok {
			r.Annotation = Text(trimCells(s))
		}
	}
	fixNaturalKillerCells(rs)
	return rs
}

// fixNaturalKillerCells annotates natural killer cells as a subtype of
// T cells.
func fixNaturalKillerCells(rs *RecordSet) int {
	return Set(Equals(Annotation, naturalKillerCells),
		To(Annotation, tCells),
		To(Subannotation, naturalKillerCells),
	).Apply(rs)
}
