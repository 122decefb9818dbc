package tabular

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/czbiohub-sf/maca/pkg/annotation"
)

// Dialect describes the SQL differences between supported databases.
type Dialect struct {
	Name string
	// Placeholder returns the bind parameter for the 1-based position n.
	Placeholder func(n int) string
	// Typed databases need a declared type per column. Untyped ones keep
	// whatever each value is.
	Typed bool
}

// Supported dialects.
var (
	SQLite = Dialect{
		Name:        "sqlite",
		Placeholder: func(int) string { return "?" },
	}
	Postgres = Dialect{
		Name:        "postgres",
		Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
		Typed:       true,
	}
)

// ReadTable reads every row of table from db.
func ReadTable(ctx context.Context, db *sql.DB, table string) (*annotation.RecordSet, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var data [][]annotation.Value
	raw := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make([]annotation.Value, len(cols))
		for i, v := range raw {
			row[i] = sqlValue(v)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return fromRows(cols, data)
}

func sqlValue(v any) annotation.Value {
	switch x := v.(type) {
	case nil:
		return annotation.Missing
	case string:
		return annotation.Text(x)
	case []byte:
		return annotation.Text(string(x))
	case int64:
		return annotation.Number(float64(x))
	case int32:
		return annotation.Number(float64(x))
	case float64:
		return annotation.Number(x)
	case float32:
		return annotation.Number(float64(x))
	case bool:
		return annotation.Text(strconv.FormatBool(x))
	case time.Time:
		return annotation.Text(x.Format(time.RFC3339))
	default:
		return annotation.Text(fmt.Sprint(x))
	}
}

// WriteTable replaces table in db with the contents of rs inside one
// transaction. Missing values are stored as NULL. A blank column name is
// stored as "index".
func WriteTable(ctx context.Context, db *sql.DB, d Dialect, table string, rs *annotation.RecordSet) (err error) {
	header, rows := toRows(rs)
	cols := make([]string, len(header))
	for i, h := range header {
		if h == "" {
			h = indexColumn
		}
		cols[i] = quoteIdent(h)
	}
	numeric := numericColumns(len(header), rows)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	name := quoteIdent(table)
	if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", table, err)
	}
	if _, err = tx.ExecContext(ctx, createTableSQL(d, name, cols, numeric)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = d.Placeholder(i + 1)
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		name, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for _, row := range rows {
		for i, v := range row {
			args[i] = sqlArg(v, !d.Typed || numeric[i])
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert row: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func createTableSQL(d Dialect, name string, cols []string, numeric []bool) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		switch {
		case !d.Typed:
			defs[i] = c
		case numeric[i]:
			defs[i] = c + " DOUBLE PRECISION"
		default:
			defs[i] = c + " TEXT"
		}
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(defs, ", "))
}

// numericColumns reports, per column, whether every present value is a
// number. Empty columns count as text.
func numericColumns(n int, rows [][]annotation.Value) []bool {
	numeric := make([]bool, n)
	seen := make([]bool, n)
	for i := range numeric {
		numeric[i] = true
	}
	for _, row := range rows {
		for i, v := range row {
			if v.IsMissing() {
				continue
			}
			seen[i] = true
			if _, ok := v.Float(); !ok {
				numeric[i] = false
			}
		}
	}
	for i := range numeric {
		numeric[i] = numeric[i] && seen[i]
	}
	return numeric
}

func sqlArg(v annotation.Value, keepNumber bool) any {
	if v.IsMissing() {
		return nil
	}
	if n, ok := v.Float(); ok && keepNumber {
		return n
	}
	return v.String()
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
