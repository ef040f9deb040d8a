package postgresengine

import (
	"github.com/jonboulle/clockwork"

	"github.com/presencekit/optional-go/optionstore"
)

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithTableName sets the table name for the Store.
func WithTableName(tableName string) Option {
	return func(s *Store) error {
		if tableName == "" {
			return optionstore.ErrEmptyValueTableName
		}

		s.valueTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: completed save/load/remove operations (production-safe)
// Error level: critical failures that cause operation failures.
func WithLogger(logger optionstore.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// The contextual logger will receive operation logs with context information
// including automatic trace/span correlation when tracing is enabled.
func WithContextualLogger(logger optionstore.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// The metrics collector will receive save/load/remove durations and error counters.
// Collectors implementing optionstore.ContextualMetricsCollector are used with
// context for trace correlation.
func WithMetrics(collector optionstore.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
// The tracing collector will receive a span per save/load/remove operation
// with the key and table as attributes.
func WithTracing(collector optionstore.TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}

// WithClock sets the clock used to timestamp saved values whose UpdatedAt is
// zero. Defaults to the real clock; tests inject a fake one.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) error {
		s.clock = clock
		return nil
	}
}
