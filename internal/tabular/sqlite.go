package tabular

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/czbiohub-sf/maca/pkg/annotation"
)

// ReadSQLite reads every row of table from the database file at path.
func ReadSQLite(ctx context.Context, path, table string) (*annotation.RecordSet, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	return ReadTable(ctx, db, table)
}

// WriteSQLite replaces table in the database file at path with rs.
func WriteSQLite(ctx context.Context, path, table string, rs *annotation.RecordSet) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	return WriteTable(ctx, db, SQLite, table, rs)
}
