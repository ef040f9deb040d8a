package adapters

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SQLXAdapter implements DBAdapter for sqlx.DB.
type SQLXAdapter struct {
	db *sqlx.DB
}

// NewSQLXAdapter creates a new SQLX adapter.
func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db}
}

// QueryRow executes a single-row query and scans the result into dest.
func (s *SQLXAdapter) QueryRow(ctx context.Context, query string, dest ...any) error {
	return s.db.QueryRowContext(ctx, query).Scan(dest...)
}

// Exec executes a query using the sqlx.DB and returns the wrapped result.
func (s *SQLXAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	result, execErr := s.db.ExecContext(ctx, query)
	if execErr != nil {
		return nil, execErr
	}

	return &stdResult{result: result}, nil
}
