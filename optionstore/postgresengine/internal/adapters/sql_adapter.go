package adapters

import (
	"context"
	"database/sql"
)

// SQLAdapter implements DBAdapter for the standard library sql.DB.
type SQLAdapter struct {
	db *sql.DB
}

// NewSQLAdapter creates a new standard library SQL adapter.
func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

// QueryRow executes a single-row query and scans the result into dest.
func (s *SQLAdapter) QueryRow(ctx context.Context, query string, dest ...any) error {
	return s.db.QueryRowContext(ctx, query).Scan(dest...)
}

// Exec executes a query using the sql.DB and returns the wrapped result.
func (s *SQLAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	result, execErr := s.db.ExecContext(ctx, query)
	if execErr != nil {
		return nil, execErr
	}

	return &stdResult{result: result}, nil
}
