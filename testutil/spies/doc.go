// Package spies provides recording test doubles for the lending observability interfaces:
// a slog.Handler, a metrics collector, and a tracing collector.
package spies
