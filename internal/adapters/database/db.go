// Package database provides the Postgres repository backend. SQL is
// built with goqu; adapters supply only table shape and row scanning,
// the search pipeline lives in search.go.
package database

import (
	"context"
	"database/sql"
)

// queryer is satisfied by both *sql.DB and *sql.Tx, so the same helpers
// run inside and outside transactions
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan funcs
type rowScanner interface {
	Scan(dest ...any) error
}
