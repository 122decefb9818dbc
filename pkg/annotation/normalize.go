package annotation

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// edgeChars are always trimmed from both ends of a label.
	edgeChars = "()-_?"
	// numberChars are trimmed from both ends unless the tissue keeps numbers.
	numberChars = "0123456789."
)

// Normalize canonicalizes a single label. Non-text values are returned
// unchanged. Text is lowercased, "/" becomes "_or_", periods and runs of
// whitespace become single underscores, and the characters "()-_?" are
// trimmed from both ends together with digits and periods when
// stripNumbers is set. Empty results become Missing.
//
// Normalize is idempotent: Normalize(Normalize(v)) == Normalize(v).
func Normalize(v Value, stripNumbers bool) Value {
	s, ok := v.Str()
	if !ok {
		return v
	}
	return normalizeText(cases.Lower(language.Und), s, stripNumbers)
}

func normalizeText(lower cases.Caser, s string, stripNumbers bool) Value {
	s = lower.String(s)
	s = strings.ReplaceAll(s, "/", " or ")
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.Join(strings.Fields(s), "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	cutset := edgeChars
	if stripNumbers {
		cutset += numberChars
	}
	s = strings.Trim(s, cutset)
	if s == "" {
		return Missing
	}
	return Text(s)
}

// NormalizeRecords normalizes both fields of every record in place.
func NormalizeRecords(rs *RecordSet, stripNumbers bool) {
	// A Caser carries state and is not shared across calls.
	lower := cases.Lower(language.Und)
	for i := range rs.Records {
		r := &rs.Records[i]
		r.Annotation = normalizeWith(lower, r.Annotation, stripNumbers)
		r.Subannotation = normalizeWith(lower, r.Subannotation, stripNumbers)
	}
}

func normalizeWith(lower cases.Caser, v Value, stripNumbers bool) Value {
	s, ok := v.Str()
	if !ok {
		return v
	}
	return normalizeText(lower, s, stripNumbers)
}
