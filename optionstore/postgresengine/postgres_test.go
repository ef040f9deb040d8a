package postgresengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presencekit/optional-go/optional"
	"github.com/presencekit/optional-go/optionstore"
	"github.com/presencekit/optional-go/optionstore/postgresengine"
	pgtest "github.com/presencekit/optional-go/testutil/postgres"
	"github.com/presencekit/optional-go/testutil/testdoubles"
)

func Test_NewStore_RejectsNilConnections(t *testing.T) {
	_, err := postgresengine.NewStoreFromPGXPool(nil)
	assert.ErrorIs(t, err, optionstore.ErrNilDatabaseConnection)

	_, err = postgresengine.NewStoreFromPGXPoolAndReplica(nil, nil)
	assert.ErrorIs(t, err, optionstore.ErrNilDatabaseConnection)

	_, err = postgresengine.NewStoreFromSQLDB(nil)
	assert.ErrorIs(t, err, optionstore.ErrNilDatabaseConnection)

	_, err = postgresengine.NewStoreFromSQLX(nil)
	assert.ErrorIs(t, err, optionstore.ErrNilDatabaseConnection)
}

func Test_WithTableName_RejectsEmptyName(t *testing.T) {
	pool := pgtest.ConnectPGXPoolOrSkip(t)

	_, err := postgresengine.NewStoreFromPGXPool(pool, postgresengine.WithTableName(""))

	assert.ErrorIs(t, err, optionstore.ErrEmptyValueTableName)
}

func Test_Store_SaveLoadRemove_RoundTrip(t *testing.T) {
	pool := pgtest.ConnectPGXPoolOrSkip(t)
	pgtest.CreateValuesTable(t, pool)
	ctx := context.Background()

	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store, err := postgresengine.NewStoreFromPGXPool(
		pool,
		postgresengine.WithClock(clockwork.NewFakeClockAt(fixedTime)),
	)
	require.NoError(t, err)

	key := pgtest.GivenUniqueKey(t)

	value, err := optionstore.BuildStorableValue(key, []byte(`{"note":"cover damaged"}`), time.Time{})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, value))

	loaded, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"note":"cover damaged"}`, string(loaded.PayloadJSON))
	assert.True(t, fixedTime.Equal(loaded.UpdatedAt), "zero UpdatedAt must be filled from the injected clock")

	// Upsert: saving the stored absent marker replaces the payload with NULL.
	absent, err := optionstore.BuildAbsentStorableValue(key, time.Time{})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, absent))

	loaded, err = store.Load(ctx, key)
	require.NoError(t, err)
	assert.True(t, loaded.Absent())

	require.NoError(t, store.Remove(ctx, key))

	_, err = store.Load(ctx, key)
	assert.ErrorIs(t, err, optionstore.ErrValueNotFound)

	err = store.Remove(ctx, key)
	assert.ErrorIs(t, err, optionstore.ErrValueNotFound)
}

func Test_Store_LoadMissingKey(t *testing.T) {
	pool := pgtest.ConnectPGXPoolOrSkip(t)
	pgtest.CreateValuesTable(t, pool)

	store, err := postgresengine.NewStoreFromPGXPool(pool)
	require.NoError(t, err)

	_, err = store.Load(context.Background(), pgtest.GivenUniqueKey(t))

	assert.ErrorIs(t, err, optionstore.ErrValueNotFound)
}

type libraryCard struct {
	ReaderID string `json:"readerId"`
	Expired  bool   `json:"expired"`
}

func Test_Store_GenericBridge_RoundTrip(t *testing.T) {
	pool := pgtest.ConnectPGXPoolOrSkip(t)
	pgtest.CreateValuesTable(t, pool)
	ctx := context.Background()

	store, err := postgresengine.NewStoreFromPGXPool(pool)
	require.NoError(t, err)

	key := pgtest.GivenUniqueKey(t)
	original := optional.OfNullable(&libraryCard{ReaderID: "r-42", Expired: false})

	require.NoError(t, optionstore.SaveOptional(ctx, store, key, original))

	restored, err := optionstore.LoadOptional[*libraryCard](ctx, store, key)
	require.NoError(t, err)
	assert.True(t, restored.Equal(original))

	// A persisted absent value is distinct from a missing key.
	require.NoError(t, optionstore.SaveOptional(ctx, store, key, optional.None[*libraryCard]()))

	restored, err = optionstore.LoadOptional[*libraryCard](ctx, store, key)
	require.NoError(t, err)
	assert.False(t, restored.HasValue())
}

func Test_Store_ObservabilityInstrumentation(t *testing.T) {
	pool := pgtest.ConnectPGXPoolOrSkip(t)
	pgtest.CreateValuesTable(t, pool)
	ctx := context.Background()

	logger := testdoubles.NewLoggerSpy()
	metrics := testdoubles.NewMetricsCollectorSpy()
	tracing := testdoubles.NewTracingCollectorSpy()

	store, err := postgresengine.NewStoreFromPGXPool(
		pool,
		postgresengine.WithLogger(logger),
		postgresengine.WithContextualLogger(logger),
		postgresengine.WithMetrics(metrics),
		postgresengine.WithTracing(tracing),
	)
	require.NoError(t, err)

	key := pgtest.GivenUniqueKey(t)

	value, err := optionstore.BuildStorableValue(key, []byte(`{"note":"observed"}`), time.Time{})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, value))

	_, err = store.Load(ctx, key)
	require.NoError(t, err)
	require.NoError(t, store.Remove(ctx, key))

	assert.True(t, logger.HasLog("info", "value saved"))
	assert.True(t, logger.HasLog("info", "value loaded"))
	assert.True(t, logger.HasLog("info", "value removed"))

	assert.True(t, metrics.HasDuration("optionstore_save_duration_seconds"))
	assert.True(t, metrics.HasDuration("optionstore_load_duration_seconds"))
	assert.True(t, metrics.HasDuration("optionstore_remove_duration_seconds"))
	assert.Zero(t, metrics.CounterCount("optionstore_errors_total"))

	finished := tracing.FinishedSpans()
	require.Len(t, finished, 3)
	for _, span := range finished {
		assert.Equal(t, "ok", span.Status)
		assert.Equal(t, key, span.Attributes["key"])
	}
}

func Test_Store_TracingMarksNotFoundAsError(t *testing.T) {
	pool := pgtest.ConnectPGXPoolOrSkip(t)
	pgtest.CreateValuesTable(t, pool)

	metrics := testdoubles.NewMetricsCollectorSpy()
	tracing := testdoubles.NewTracingCollectorSpy()

	store, err := postgresengine.NewStoreFromPGXPool(
		pool,
		postgresengine.WithMetrics(metrics),
		postgresengine.WithTracing(tracing),
	)
	require.NoError(t, err)

	err = store.Remove(context.Background(), pgtest.GivenUniqueKey(t))
	require.ErrorIs(t, err, optionstore.ErrValueNotFound)

	// A missing key is a domain outcome, not a database failure.
	assert.Zero(t, metrics.CounterCount("optionstore_errors_total"))

	finished := tracing.FinishedSpans()
	require.Len(t, finished, 1)
	assert.Equal(t, "error", finished[0].Status)
}

func Test_Store_WorksThroughSQLDBAdapter(t *testing.T) {
	db := pgtest.SQLDBTestConfig()
	if db == nil {
		t.Skip("postgres unavailable")
	}
	t.Cleanup(func() { _ = db.Close() })

	pool := pgtest.ConnectPGXPoolOrSkip(t)
	pgtest.CreateValuesTable(t, pool)
	ctx := context.Background()

	store, err := postgresengine.NewStoreFromSQLDB(db)
	require.NoError(t, err)

	key := pgtest.GivenUniqueKey(t)

	value, err := optionstore.BuildStorableValue(key, []byte(`{"via":"database/sql"}`), time.Time{})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, value))

	loaded, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"via":"database/sql"}`, string(loaded.PayloadJSON))

	require.NoError(t, store.Remove(ctx, key))
}

func Test_Store_WorksThroughSQLXAdapter(t *testing.T) {
	db := pgtest.SQLXTestConfig()
	if db == nil {
		t.Skip("postgres unavailable")
	}
	t.Cleanup(func() { _ = db.Close() })

	pool := pgtest.ConnectPGXPoolOrSkip(t)
	pgtest.CreateValuesTable(t, pool)
	ctx := context.Background()

	store, err := postgresengine.NewStoreFromSQLX(db)
	require.NoError(t, err)

	key := pgtest.GivenUniqueKey(t)

	value, err := optionstore.BuildStorableValue(key, []byte(`{"via":"sqlx"}`), time.Time{})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, value))

	loaded, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"via":"sqlx"}`, string(loaded.PayloadJSON))

	require.NoError(t, store.Remove(ctx, key))
}
