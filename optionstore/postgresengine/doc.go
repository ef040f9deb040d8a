// Package postgresengine provides the PostgreSQL implementation of the value store.
//
// A Store persists each optional value as a single row: the key, one nullable
// jsonb payload column carrying the raw value (NULL is the stored absent
// marker), and an update timestamp. Save is an upsert, Load returns
// optionstore.ErrValueNotFound for keys that were never saved, Remove deletes.
//
// The Store supports pgxpool.Pool, sql.DB and sqlx.DB connections through
// internal adapters, and is configured with functional options for table
// name, logging, metrics, tracing and the clock used for update timestamps.
//
// Expected schema:
//
//	CREATE TABLE optional_values (
//	    key        TEXT PRIMARY KEY,
//	    payload    JSONB NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
package postgresengine
