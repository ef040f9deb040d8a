// Package adapters provides database adapter implementations for the PostgreSQL value store.
//
// It implements the adapter pattern to support multiple PostgreSQL client libraries:
// pgxpool.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent functionality
// through a common DBAdapter interface, allowing the value store to work with any
// supported connection type while the query-building code stays driver-agnostic.
package adapters
