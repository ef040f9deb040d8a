package testdoubles

import (
	"context"
	"sync"

	"github.com/presencekit/optional-go/optionstore"
)

// SpanRecord is one captured span lifecycle.
type SpanRecord struct {
	Name       string
	Status     string
	Attributes map[string]string
	Finished   bool
}

// TracingCollectorSpy captures span lifecycles so tests can assert that
// value store operations open and close spans with the expected status.
type TracingCollectorSpy struct {
	mu    sync.Mutex
	spans []*spanContextSpy
}

type spanContextSpy struct {
	collector *TracingCollectorSpy
	record    SpanRecord
}

func (s *spanContextSpy) SetStatus(status string) {
	s.collector.mu.Lock()
	defer s.collector.mu.Unlock()
	s.record.Status = status
}

func (s *spanContextSpy) AddAttribute(key, value string) {
	s.collector.mu.Lock()
	defer s.collector.mu.Unlock()
	s.record.Attributes[key] = value
}

// NewTracingCollectorSpy creates an empty TracingCollectorSpy.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

func (s *TracingCollectorSpy) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, optionstore.SpanContext) {
	span := &spanContextSpy{
		collector: s,
		record:    SpanRecord{Name: name, Attributes: make(map[string]string)},
	}
	for key, value := range attrs {
		span.record.Attributes[key] = value
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.spans = append(s.spans, span)

	return ctx, span
}

func (s *TracingCollectorSpy) FinishSpan(spanCtx optionstore.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*spanContextSpy)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	span.record.Status = status
	for key, value := range attrs {
		span.record.Attributes[key] = value
	}
	span.record.Finished = true
}

// FinishedSpans returns a copy of all finished span records.
func (s *TracingCollectorSpy) FinishedSpans() []SpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var finished []SpanRecord
	for _, span := range s.spans {
		if span.record.Finished {
			finished = append(finished, span.record)
		}
	}

	return finished
}

var _ optionstore.TracingCollector = (*TracingCollectorSpy)(nil)
