package tabular

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/czbiohub-sf/maca/pkg/annotation"
)

// IsPostgresURL reports whether location is a PostgreSQL connection URL.
func IsPostgresURL(location string) bool {
	return strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

func openPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return db, nil
}

// ReadPostgres reads every row of table from the database at dsn.
func ReadPostgres(ctx context.Context, dsn, table string) (*annotation.RecordSet, error) {
	db, err := openPostgres(ctx, dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return ReadTable(ctx, db, table)
}

// WritePostgres replaces table in the database at dsn with rs. Columns
// holding only numbers are declared DOUBLE PRECISION, all others TEXT.
func WritePostgres(ctx context.Context, dsn, table string, rs *annotation.RecordSet) error {
	db, err := openPostgres(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return WriteTable(ctx, db, Postgres, table, rs)
}
