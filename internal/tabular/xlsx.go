package tabular

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/czbiohub-sf/maca/pkg/annotation"
)

// ReadXLSX reads one sheet of a workbook. Numeric cells become Number
// values so that text steps pass them through untouched.
func ReadXLSX(r io.Reader, sheet string) (*annotation.RecordSet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrMissingColumn)
		}
		sheet = sheets[0]
	}

	grid, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrMissingColumn, sheet)
	}

	rows := make([][]annotation.Value, len(grid)-1)
	for i, cells := range grid[1:] {
		row := make([]annotation.Value, len(cells))
		for j, raw := range cells {
			row[j] = cellValue(f, sheet, j+1, i+2, raw)
		}
		rows[i] = row
	}
	return fromRows(grid[0], rows)
}

func cellValue(f *excelize.File, sheet string, col, row int, raw string) annotation.Value {
	if raw == "" {
		return annotation.Missing
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return annotation.Text(raw)
	}
	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return annotation.Text(raw)
	}
	// Numbers are stored either with an explicit "n" type or untyped.
	if typ == excelize.CellTypeNumber || typ == excelize.CellTypeUnset {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return annotation.Number(n)
		}
	}
	return annotation.Text(raw)
}

// WriteXLSX writes rs to the first sheet of a new workbook.
func WriteXLSX(w io.Writer, rs *annotation.RecordSet, rstats bool) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header, rows := toRows(rs)
	if rstats {
		header = rstatsHeader(header)
	}
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for r, row := range rows {
		for i, v := range row {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			var err error
			switch v.Kind() {
			case annotation.KindMissing:
				continue
			case annotation.KindNumber:
				n, _ := v.Float()
				err = f.SetCellValue(sheet, cell, n)
			default:
				err = f.SetCellValue(sheet, cell, v.String())
			}
			if err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
