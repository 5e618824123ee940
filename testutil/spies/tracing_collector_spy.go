package spies

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

// SpySpanContext implements lending.SpanContext for testing.
type SpySpanContext struct {
	status     string
	attributes map[string]string
	mu         sync.Mutex
}

func (c *SpySpanContext) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = status
}

func (c *SpySpanContext) AddAttribute(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attributes == nil {
		c.attributes = make(map[string]string)
	}
	c.attributes[key] = value
}

// SpanRecord is one captured span.
type SpanRecord struct {
	Name            string
	StartAttributes map[string]string
	Status          string
	EndAttributes   map[string]string
	Finished        bool
	spanContext     *SpySpanContext
}

// TracingCollectorSpy implements lending.TracingCollector and captures all spans.
type TracingCollectorSpy struct {
	spans []SpanRecord
	mu    sync.Mutex
}

// NewTracingCollectorSpy creates an empty TracingCollectorSpy.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, lending.SpanContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spanCtx := &SpySpanContext{}
	s.spans = append(s.spans, SpanRecord{
		Name:            name,
		StartAttributes: copyLabels(attrs),
		spanContext:     spanCtx,
	})

	return ctx, spanCtx
}

func (s *TracingCollectorSpy) FinishSpan(spanCtx lending.SpanContext, status string, attrs map[string]string) {
	spySpanCtx, ok := spanCtx.(*SpySpanContext)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.spans {
		if s.spans[i].spanContext == spySpanCtx {
			s.spans[i].Status = status
			s.spans[i].EndAttributes = copyLabels(attrs)
			s.spans[i].Finished = true

			return
		}
	}
}

// Spans returns a copy of all captured spans.
func (s *TracingCollectorSpy) Spans() []SpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	spans := make([]SpanRecord, len(s.spans))
	copy(spans, s.spans)

	return spans
}

// SpanNamed returns the first span with the given name.
func (s *TracingCollectorSpy) SpanNamed(name string) (SpanRecord, bool) {
	for _, span := range s.Spans() {
		if span.Name == name {
			return span, true
		}
	}

	return SpanRecord{}, false
}

var _ lending.TracingCollector = (*TracingCollectorSpy)(nil)
