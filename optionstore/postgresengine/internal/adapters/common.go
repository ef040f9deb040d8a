package adapters

import (
	"context"
	"database/sql"
)

// DBAdapter defines the interface for database operations needed by the value store.
type DBAdapter interface {
	QueryRow(ctx context.Context, query string, dest ...any) error
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}

// ErrNoRows is the driver-agnostic "query matched no row" marker adapters
// translate their library-specific sentinel into.
var ErrNoRows = sql.ErrNoRows

// stdResult wraps standard library sql.Result to implement the DBResult interface.
type stdResult struct {
	result sql.Result
}

// RowsAffected returns the number of rows affected by the command.
func (s *stdResult) RowsAffected() (int64, error) {
	return s.result.RowsAffected()
}
