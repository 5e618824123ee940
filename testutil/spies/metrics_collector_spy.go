package spies

import (
	"sync"
	"time"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

// MetricKind tells the three kinds of recorded metrics apart.
type MetricKind int

const (
	KindDuration MetricKind = iota
	KindCounter
	KindValue
)

// MetricRecord is one captured metrics call.
type MetricRecord struct {
	Kind     MetricKind
	Metric   string
	Duration time.Duration
	Value    float64
	Labels   map[string]string
}

// MetricsCollectorSpy implements lending.MetricsCollector and captures all calls.
type MetricsCollectorSpy struct {
	records []MetricRecord
	mu      sync.Mutex
}

// NewMetricsCollectorSpy creates an empty MetricsCollectorSpy.
func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{}
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.record(MetricRecord{Kind: KindDuration, Metric: metric, Duration: duration, Labels: copyLabels(labels)})
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.record(MetricRecord{Kind: KindCounter, Metric: metric, Labels: copyLabels(labels)})
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.record(MetricRecord{Kind: KindValue, Metric: metric, Value: value, Labels: copyLabels(labels)})
}

func (s *MetricsCollectorSpy) record(r MetricRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, r)
}

// Records returns a copy of all captured records.
func (s *MetricsCollectorSpy) Records() []MetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]MetricRecord, len(s.records))
	copy(records, s.records)

	return records
}

// Count returns how many records of the kind exist for the metric.
func (s *MetricsCollectorSpy) Count(kind MetricKind, metric string) int {
	count := 0
	for _, r := range s.Records() {
		if r.Kind == kind && r.Metric == metric {
			count++
		}
	}

	return count
}

// Has starts a matcher for records of the kind and metric.
func (s *MetricsCollectorSpy) Has(kind MetricKind, metric string) *MetricRecordMatcher {
	matcher := &MetricRecordMatcher{}
	for _, r := range s.Records() {
		if r.Kind == kind && r.Metric == metric {
			matcher.candidates = append(matcher.candidates, r)
		}
	}

	return matcher
}

// MetricRecordMatcher narrows down captured metric records by label.
type MetricRecordMatcher struct {
	candidates []MetricRecord
}

// WithLabel keeps the records with the given label value.
func (m *MetricRecordMatcher) WithLabel(key, value string) *MetricRecordMatcher {
	kept := make([]MetricRecord, 0, len(m.candidates))
	for _, r := range m.candidates {
		if r.Labels[key] == value {
			kept = append(kept, r)
		}
	}
	m.candidates = kept

	return m
}

// Assert reports whether at least one record met all conditions.
func (m *MetricRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}

func copyLabels(labels map[string]string) map[string]string {
	c := make(map[string]string, len(labels))
	for k, v := range labels {
		c[k] = v
	}

	return c
}

var _ lending.MetricsCollector = (*MetricsCollectorSpy)(nil)
