package postgresengine

import (
	"github.com/AntonStoeckl/library-lending-go/lending"
)

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithSchema qualifies all table names with the given schema.
func WithSchema(schema string) Option {
	return func(s *Store) error {
		if schema == "" {
			return lending.ErrEmptySchemaName
		}

		s.tables = schemaTables(schema)

		return nil
	}
}

// WithIDGenerator replaces the identity generator for new checkouts (random UUIDs by default).
func WithIDGenerator(generator IDGenerator) Option {
	return func(s *Store) error {
		if generator == nil {
			return lending.ErrNilIDGenerator
		}

		s.idGenerator = generator

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: completed operations, conflicts, and durations (production-safe)
// Warn level: non-critical issues like rollback or cleanup failures
// Error level: failures that make an operation fail, including write anomalies.
func WithLogger(logger lending.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// It receives the same messages as the Logger, together with the operation's context
// for trace correlation.
func WithContextualLogger(logger lending.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// It receives operation durations, conflict and anomaly counts, and database errors.
func WithMetrics(collector lending.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
// One span is created per checkout, return, and query.
func WithTracing(collector lending.TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}
