package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"

	"github.com/presencekit/optional-go/optionstore"
	"github.com/presencekit/optional-go/optionstore/postgresengine/internal/adapters"
)

const (
	defaultValueTableName     = "optional_values"
	logMsgBuildQueryFailed    = "failed to build query"
	logMsgDBExecFailed        = "database execution failed"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgBuildStorableFailed = "failed to build storable value from database row"
	logMsgValueSaved          = "value saved"
	logMsgValueLoaded         = "value loaded"
	logMsgValueRemoved        = "value removed"
	logMsgSQLExecuted         = "executed sql for: "
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrKey                = "key"
	logAttrAbsent             = "absent"
	logAttrDurationMS         = "duration_ms"
	logActionSave             = "save"
	logActionLoad             = "load"
	logActionRemove           = "remove"
	colKey                    = "key"
	colPayload                = "payload"
	colUpdatedAt              = "updated_at"
	dialectPostgres           = "postgres"
	castJsonb                 = "?::jsonb"
	metricSaveDuration        = "optionstore_save_duration_seconds"
	metricLoadDuration        = "optionstore_load_duration_seconds"
	metricRemoveDuration      = "optionstore_remove_duration_seconds"
	metricErrorsTotal         = "optionstore_errors_total"
	spanSave                  = "optionstore.save"
	spanLoad                  = "optionstore.load"
	spanRemove                = "optionstore.remove"
	spanStatusOK              = "ok"
	spanStatusError           = "error"
)

type (
	sqlQueryString = string
	queryDuration  = time.Duration
)

// Store is a PostgreSQL-backed value store for persisted optional values.
// It leverages a database adapter and supports customizable logging, metrics,
// tracing, table configuration and clock injection.
type Store struct {
	db               adapters.DBAdapter
	valueTableName   string
	clock            clockwork.Clock
	logger           optionstore.Logger
	contextualLogger optionstore.ContextualLogger
	metricsCollector optionstore.MetricsCollector
	tracingCollector optionstore.TracingCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, optionstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromPGXPoolAndReplica creates a new Store using a pgx pool for writes
// and a replica pool for reads, with optional configuration.
func NewStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil || replica == nil {
		return Store{}, optionstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, optionstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, optionstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (Store, error) {
	store := Store{
		db:             db,
		valueTableName: defaultValueTableName,
		clock:          clockwork.NewRealClock(),
	}

	for _, option := range options {
		if err := option(&store); err != nil {
			return Store{}, err
		}
	}

	return store, nil
}

// Save persists a StorableValue, inserting or replacing the row for its key.
// A nil payload is stored as SQL NULL (the stored absent marker).
// A zero UpdatedAt is filled in from the store's clock.
func (s Store) Save(ctx context.Context, value optionstore.StorableValue) error {
	ctx, span := s.startSpan(ctx, spanSave, value.Key)

	sqlQuery, buildQueryErr := s.buildUpsertQuery(value)
	if buildQueryErr != nil {
		s.finishSpan(span, spanStatusError)
		return buildQueryErr
	}

	_, duration, execErr := s.executeStatement(ctx, sqlQuery, logActionSave, metricSaveDuration)
	if execErr != nil {
		s.finishSpan(span, spanStatusError)
		return errors.Join(optionstore.ErrSavingValueFailed, execErr)
	}

	s.logOperation(ctx, logMsgValueSaved,
		logAttrKey, value.Key,
		logAttrAbsent, value.Absent(),
		logAttrDurationMS, s.durationToMilliseconds(duration))

	s.finishSpan(span, spanStatusOK)

	return nil
}

// Load retrieves the StorableValue persisted under the given key.
// Returns optionstore.ErrValueNotFound when the key was never saved.
func (s Store) Load(ctx context.Context, key string) (optionstore.StorableValue, error) {
	var empty optionstore.StorableValue

	ctx, span := s.startSpan(ctx, spanLoad, key)

	sqlQuery, buildQueryErr := s.buildSelectQuery(key)
	if buildQueryErr != nil {
		s.finishSpan(span, spanStatusError)
		return empty, buildQueryErr
	}

	var payload []byte
	var updatedAt time.Time

	start := time.Now()
	queryErr := s.db.QueryRow(ctx, sqlQuery, &payload, &updatedAt)
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, logActionLoad, duration)
	s.recordDuration(ctx, metricLoadDuration, duration)

	if queryErr != nil {
		s.finishSpan(span, spanStatusError)

		if errors.Is(queryErr, adapters.ErrNoRows) {
			return empty, optionstore.ErrValueNotFound
		}

		if s.logger != nil {
			s.logger.Error(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		}

		s.incrementErrorCounter(ctx, logActionLoad)

		return empty, errors.Join(optionstore.ErrLoadingValueFailed, queryErr)
	}

	value, buildErr := optionstore.BuildStorableValue(key, payload, updatedAt)
	if buildErr != nil {
		if s.logger != nil {
			s.logger.Error(logMsgBuildStorableFailed, logAttrError, buildErr.Error(), logAttrKey, key)
		}

		s.finishSpan(span, spanStatusError)

		return empty, errors.Join(optionstore.ErrLoadingValueFailed, buildErr)
	}

	s.logOperation(ctx, logMsgValueLoaded,
		logAttrKey, key,
		logAttrAbsent, value.Absent(),
		logAttrDurationMS, s.durationToMilliseconds(duration))

	s.finishSpan(span, spanStatusOK)

	return value, nil
}

// Remove deletes the value persisted under the given key.
// Returns optionstore.ErrValueNotFound when the key was never saved.
func (s Store) Remove(ctx context.Context, key string) error {
	ctx, span := s.startSpan(ctx, spanRemove, key)

	sqlQuery, buildQueryErr := s.buildDeleteQuery(key)
	if buildQueryErr != nil {
		s.finishSpan(span, spanStatusError)
		return buildQueryErr
	}

	rowsAffected, duration, execErr := s.executeStatement(ctx, sqlQuery, logActionRemove, metricRemoveDuration)
	if execErr != nil {
		s.finishSpan(span, spanStatusError)
		return errors.Join(optionstore.ErrRemovingValueFailed, execErr)
	}

	if rowsAffected == 0 {
		s.finishSpan(span, spanStatusError)
		return optionstore.ErrValueNotFound
	}

	s.logOperation(ctx, logMsgValueRemoved,
		logAttrKey, key,
		logAttrDurationMS, s.durationToMilliseconds(duration))

	s.finishSpan(span, spanStatusOK)

	return nil
}

// executeStatement executes a SQL statement and returns rows affected with timing information.
func (s Store) executeStatement(ctx context.Context, sqlQuery sqlQueryString, action string, metric string) (
	int64,
	queryDuration,
	error,
) {

	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	s.logQueryWithDuration(sqlQuery, action, duration)
	s.recordDuration(ctx, metric, duration)

	if execErr != nil {
		if s.logger != nil {
			s.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		}

		s.incrementErrorCounter(ctx, action)

		return 0, duration, execErr
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		if s.logger != nil {
			s.logger.Error(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		}

		return 0, duration, errors.Join(optionstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

func (s Store) buildUpsertQuery(value optionstore.StorableValue) (sqlQueryString, error) {
	updatedAt := value.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.clock.Now().UTC()
	}

	var payloadValue any
	if !value.Absent() {
		payloadValue = goqu.L(castJsonb, string(value.PayloadJSON))
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.valueTableName).
		Rows(goqu.Record{
			colKey:       value.Key,
			colPayload:   payloadValue,
			colUpdatedAt: updatedAt,
		}).
		OnConflict(goqu.DoUpdate(colKey, goqu.Record{
			colPayload:   payloadValue,
			colUpdatedAt: updatedAt,
		}))

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		if s.logger != nil {
			s.logger.Error(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrKey, value.Key)
		}

		return "", errors.Join(optionstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s Store) buildSelectQuery(key string) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.valueTableName).
		Select(colPayload, colUpdatedAt).
		Where(goqu.Ex{colKey: key})

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		if s.logger != nil {
			s.logger.Error(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrKey, key)
		}

		return "", errors.Join(optionstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (s Store) buildDeleteQuery(key string) (sqlQueryString, error) {
	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(s.valueTableName).
		Where(goqu.Ex{colKey: key})

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		if s.logger != nil {
			s.logger.Error(logMsgBuildQueryFailed, logAttrError, toSQLErr.Error(), logAttrKey, key)
		}

		return "", errors.Join(optionstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

/***** observability helpers *****/

// logQueryWithDuration logs executed SQL with timing at debug level.
func (s Store) logQueryWithDuration(sqlQuery sqlQueryString, action string, duration queryDuration) {
	if s.logger == nil {
		return
	}

	s.logger.Debug(logMsgSQLExecuted+action, logAttrQuery, sqlQuery, logAttrDurationMS, s.durationToMilliseconds(duration))
}

// logOperation logs a completed operation, preferring the contextual logger when configured.
func (s Store) logOperation(ctx context.Context, msg string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

// recordDuration records an operation duration, using context-aware recording when available.
func (s Store) recordDuration(ctx context.Context, metric string, duration queryDuration) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{"table": s.valueTableName}

	if contextual, ok := s.metricsCollector.(optionstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metric, duration, labels)
}

// incrementErrorCounter counts failed operations per action.
func (s Store) incrementErrorCounter(ctx context.Context, action string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{"table": s.valueTableName, "action": action}

	if contextual, ok := s.metricsCollector.(optionstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metricErrorsTotal, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metricErrorsTotal, labels)
}

// startSpan opens a tracing span for an operation when a tracing collector is configured.
func (s Store) startSpan(ctx context.Context, name string, key string) (context.Context, optionstore.SpanContext) {
	if s.tracingCollector == nil {
		return ctx, nil
	}

	return s.tracingCollector.StartSpan(ctx, name, map[string]string{
		logAttrKey: key,
		"table":    s.valueTableName,
	})
}

// finishSpan completes a tracing span with the given status.
func (s Store) finishSpan(span optionstore.SpanContext, status string) {
	if s.tracingCollector == nil || span == nil {
		return
	}

	s.tracingCollector.FinishSpan(span, status, nil)
}

func (s Store) durationToMilliseconds(duration queryDuration) int64 {
	return duration.Milliseconds()
}
