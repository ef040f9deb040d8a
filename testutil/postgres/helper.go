package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const createValuesTableDDL = `
CREATE TABLE IF NOT EXISTS optional_values (
    key        TEXT PRIMARY KEY,
    payload    JSONB NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`

// ConnectPGXPoolOrSkip connects to the test database, skipping the test when
// it is unreachable. The pool is closed on test cleanup.
func ConnectPGXPoolOrSkip(t testing.TB) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.NewWithConfig(context.Background(), PGXPoolTestConfig())
	if err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}

	if pingErr := pool.Ping(context.Background()); pingErr != nil {
		pool.Close()
		t.Skipf("postgres unavailable: %v", pingErr)
	}

	t.Cleanup(pool.Close)

	return pool
}

// CreateValuesTable ensures the optional_values table exists.
func CreateValuesTable(t testing.TB, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), createValuesTableDDL)
	require.NoError(t, err, "error in arranging test database schema")
}

// GivenUniqueKey supplies a collision-free value key for one test run.
func GivenUniqueKey(t testing.TB) string {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return "test-value-" + id.String()
}
