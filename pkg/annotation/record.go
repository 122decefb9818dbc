package annotation

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Field identifies one of the two mutable columns of a record.
type Field int

const (
	// Annotation is the primary, coarse cell-type label.
	Annotation Field = iota
	// Subannotation is the optional finer-grained qualifier.
	Subannotation
)

// Column names used for the two fields in tabular sources.
const (
	AnnotationColumn    = "annotation"
	SubannotationColumn = "subannotation"
)

// String returns the column name of the field.
func (f Field) String() string {
	switch f {
	case Annotation:
		return AnnotationColumn
	case Subannotation:
		return SubannotationColumn
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Other returns the opposite field.
func (f Field) Other() Field {
	if f == Annotation {
		return Subannotation
	}
	return Annotation
}

// Kind discriminates the contents of a Value.
type Kind uint8

const (
	// KindMissing marks an absent value. It is distinct from empty text.
	KindMissing Kind = iota
	// KindText is free text.
	KindText
	// KindNumber is a numeric cell. Text operations pass it through.
	KindNumber
)

// Value is a single cell of a record.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Missing is the absent value.
var Missing = Value{}

// Text returns a text value. Empty text is kept as text until the
// normalizer converts it to Missing.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Kind reports what the value holds.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is absent.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// IsText reports whether the value holds text.
func (v Value) IsText() bool { return v.kind == KindText }

// Str returns the text and whether the value holds text.
func (v Value) Str() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// Float returns the number and whether the value holds a number.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// String renders the value for output. Missing renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	default:
		return ""
	}
}

// Record is one observation (cell) with its two label fields.
type Record struct {
	Annotation    Value
	Subannotation Value
}

// Get returns the value of field f.
func (r *Record) Get(f Field) Value {
	if f == Subannotation {
		return r.Subannotation
	}
	return r.Annotation
}

// Set overwrites field f.
func (r *Record) Set(f Field, v Value) {
	if f == Subannotation {
		r.Subannotation = v
		return
	}
	r.Annotation = v
}

// Column is a passthrough column the pipeline never interprets.
type Column struct {
	Name   string
	Values []string
}

// RecordSet is an ordered collection of records plus passthrough columns.
// Row order and row count are preserved by every operation in this package.
type RecordSet struct {
	// Columns is the header order used when writing the set back out. It
	// names both label columns and every Extra column.
	Columns []string
	Records []Record
	Extra   []Column
}

// NewRecordSet builds a record set from parallel annotation and
// subannotation slices. A nil subannotations slice yields all Missing.
func NewRecordSet(annotations, subannotations []Value) *RecordSet {
	rs := &RecordSet{
		Columns: []string{AnnotationColumn, SubannotationColumn},
		Records: make([]Record, len(annotations)),
	}
	for i, a := range annotations {
		rs.Records[i].Annotation = a
		if i < len(subannotations) {
			rs.Records[i].Subannotation = subannotations[i]
		}
	}
	return rs
}

// Len returns the number of rows.
func (rs *RecordSet) Len() int { return len(rs.Records) }

// Column returns the passthrough column with the given name.
func (rs *RecordSet) Column(name string) (*Column, bool) {
	for i := range rs.Extra {
		if rs.Extra[i].Name == name {
			return &rs.Extra[i], true
		}
	}
	return nil, false
}

// DropColumn removes a passthrough column. Dropping an absent column, or
// one of the two label columns, is a no-op. It reports whether a column
// was removed.
func (rs *RecordSet) DropColumn(name string) bool {
	if name == AnnotationColumn || name == SubannotationColumn {
		return false
	}
	idx := -1
	for i := range rs.Extra {
		if rs.Extra[i].Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	rs.Extra = append(rs.Extra[:idx], rs.Extra[idx+1:]...)
	for i, c := range rs.Columns {
		if c == name {
			rs.Columns = append(rs.Columns[:i], rs.Columns[i+1:]...)
			break
		}
	}
	return true
}

// Clone returns a deep copy of the record set.
func (rs *RecordSet) Clone() *RecordSet {
	out := &RecordSet{
		Columns: append([]string(nil), rs.Columns...),
		Records: append([]Record(nil), rs.Records...),
		Extra:   make([]Column, len(rs.Extra)),
	}
	for i, c := range rs.Extra {
		out.Extra[i] = Column{Name: c.Name, Values: append([]string(nil), c.Values...)}
	}
	return out
}

// Equal reports whether two values hold the same kind and contents.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.text == o.text && v.num == o.num
}

// MarshalJSON encodes Missing as null, text as a string and numbers as
// numbers.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.plain())
}

// MarshalYAML implements yaml.Marshaler with the same mapping as JSON.
func (v Value) MarshalYAML() (any, error) {
	return v.plain(), nil
}

func (v Value) plain() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return v.num
	default:
		return nil
	}
}
