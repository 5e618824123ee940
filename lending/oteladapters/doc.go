// Package oteladapters connects the lending observability interfaces to OpenTelemetry.
//
// Use NewSlogBridgeLogger or NewOTelLogger for lending.ContextualLogger, NewMetricsCollector for
// lending.ContextualMetricsCollector, and NewTracingCollector for lending.TracingCollector.
package oteladapters
