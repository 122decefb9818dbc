package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/czbiohub-sf/maca/pkg/annotation"
)

const utf8BOM = "\ufeff"

// ReadDelimited reads a CSV or TSV table whose first row is the header.
// Empty cells are Missing.
func ReadDelimited(r io.Reader, comma rune) (*annotation.RecordSet, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: table is empty", ErrMissingColumn)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	rows := make([][]annotation.Value, len(records)-1)
	for i, rec := range records[1:] {
		row := make([]annotation.Value, len(rec))
		for j, cell := range rec {
			if cell == "" {
				row[j] = annotation.Missing
				continue
			}
			row[j] = annotation.Text(cell)
		}
		rows[i] = row
	}
	return fromRows(header, rows)
}

// WriteDelimited writes rs as CSV or TSV. Missing values are written as
// empty cells.
func WriteDelimited(w io.Writer, rs *annotation.RecordSet, comma rune, rstats bool) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma

	header, rows := toRows(rs)
	if rstats {
		header = rstatsHeader(header)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	line := make([]string, len(header))
	for _, row := range rows {
		for i, v := range row {
			line[i] = v.String()
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
