// Package tabular reads and writes annotation tables in the formats the
// pipeline accepts: CSV, TSV, XLSX workbooks, SQLite tables and zip
// archives holding a single CSV or TSV member.
package tabular

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/czbiohub-sf/maca/pkg/annotation"
)

var (
	// ErrUnsupportedFormat is returned for file extensions or format names
	// no reader or writer exists for.
	ErrUnsupportedFormat = errors.New("unsupported table format")
	// ErrMissingColumn is returned when a table has no annotation column.
	ErrMissingColumn = errors.New("missing annotation column")
)

// Format identifies a table encoding.
type Format string

// Supported formats.
const (
	FormatCSV    Format = "csv"
	FormatTSV    Format = "tsv"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
	FormatZip    Format = "zip"
)

// DefaultTable is the SQLite table read and written when none is given.
const DefaultTable = "annotations"

// indexColumn replaces a blank header where the target cannot hold one.
const indexColumn = "index"

// ParseFormat resolves a format name such as "csv" or "TSV".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatTSV, FormatXLSX, FormatSQLite, FormatZip:
		return f, nil
	case "db", "sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// DetectFormat infers the format of path from its extension.
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".tab", ".txt":
		return FormatTSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	case ".zip":
		return FormatZip, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Delimited reports whether the format is a text format with separators.
func (f Format) Delimited() bool {
	return f == FormatCSV || f == FormatTSV
}

// Comma returns the field separator of a delimited format.
func (f Format) Comma() rune {
	if f == FormatTSV {
		return '\t'
	}
	return ','
}

// Options tunes reading and writing. The zero value is ready to use.
type Options struct {
	// Table is the SQLite table name. Defaults to DefaultTable.
	Table string
	// Sheet is the XLSX sheet to read. Defaults to the first sheet.
	Sheet string
	// Member is the format of the table inside a written zip archive.
	// Defaults to CSV.
	Member Format
	// RStats writes a blank header for a leading index column, the layout
	// R's read.csv expects for row names.
	RStats bool
}

func (o Options) table() string {
	if o.Table == "" {
		return DefaultTable
	}
	return o.Table
}

func (o Options) member() Format {
	if o.Member.Delimited() {
		return o.Member
	}
	return FormatCSV
}

// fromRows builds a record set from a header and typed rows. The
// annotation column is required; a missing subannotation column is added
// as all Missing. Every other column is kept as passthrough text.
func fromRows(header []string, rows [][]annotation.Value) (*annotation.RecordSet, error) {
	annIdx, subIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case annotation.AnnotationColumn:
			annIdx = i
		case annotation.SubannotationColumn:
			subIdx = i
		}
	}
	if annIdx < 0 {
		return nil, fmt.Errorf("%w: columns %q", ErrMissingColumn, header)
	}

	rs := &annotation.RecordSet{
		Columns: make([]string, len(header)),
		Records: make([]annotation.Record, len(rows)),
	}
	for i, h := range header {
		rs.Columns[i] = strings.TrimSpace(h)
	}
	if subIdx < 0 {
		rs.Columns = append(rs.Columns, annotation.SubannotationColumn)
	}

	var extraIdx []int
	for i := range header {
		if i == annIdx || i == subIdx {
			continue
		}
		extraIdx = append(extraIdx, i)
		rs.Extra = append(rs.Extra, annotation.Column{
			Name:   rs.Columns[i],
			Values: make([]string, len(rows)),
		})
	}

	for r, row := range rows {
		at := func(i int) annotation.Value {
			if i < 0 || i >= len(row) {
				return annotation.Missing
			}
			return row[i]
		}
		rs.Records[r].Annotation = at(annIdx)
		rs.Records[r].Subannotation = at(subIdx)
		for j, i := range extraIdx {
			rs.Extra[j].Values[r] = at(i).String()
		}
	}
	return rs, nil
}

// toRows flattens a record set in Columns order. Passthrough columns that
// share a name are matched up in order.
func toRows(rs *annotation.RecordSet) ([]string, [][]annotation.Value) {
	header := append([]string(nil), rs.Columns...)
	getters := make([]func(r int) annotation.Value, len(header))

	seen := make(map[string]int)
	for i, name := range header {
		switch name {
		case annotation.AnnotationColumn:
			getters[i] = func(r int) annotation.Value { return rs.Records[r].Annotation }
		case annotation.SubannotationColumn:
			getters[i] = func(r int) annotation.Value { return rs.Records[r].Subannotation }
		default:
			col := nthColumn(rs, name, seen[name])
			seen[name]++
			getters[i] = func(r int) annotation.Value {
				if col == nil || r >= len(col.Values) || col.Values[r] == "" {
					return annotation.Missing
				}
				return annotation.Text(col.Values[r])
			}
		}
	}

	rows := make([][]annotation.Value, rs.Len())
	for r := range rows {
		row := make([]annotation.Value, len(header))
		for i, get := range getters {
			row[i] = get(r)
		}
		rows[r] = row
	}
	return header, rows
}

func nthColumn(rs *annotation.RecordSet, name string, n int) *annotation.Column {
	for i := range rs.Extra {
		if rs.Extra[i].Name != name {
			continue
		}
		if n == 0 {
			return &rs.Extra[i]
		}
		n--
	}
	return nil
}

// rstatsHeader blanks the first header when it names a passthrough column.
func rstatsHeader(header []string) []string {
	if len(header) == 0 {
		return header
	}
	switch header[0] {
	case annotation.AnnotationColumn, annotation.SubannotationColumn:
		return header
	}
	out := append([]string(nil), header...)
	out[0] = ""
	return out
}
