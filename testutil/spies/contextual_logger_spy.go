package spies

import (
	"context"
	"log/slog"
	"sync"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

// ContextualLogRecord is one captured contextual log call.
type ContextualLogRecord struct {
	Level   slog.Level
	Message string
	Args    []any
	Context context.Context
}

// ContextualLoggerSpy implements lending.ContextualLogger and captures every call with its context.
type ContextualLoggerSpy struct {
	records []ContextualLogRecord
	mu      sync.Mutex
}

// NewContextualLoggerSpy creates an empty ContextualLoggerSpy.
func NewContextualLoggerSpy() *ContextualLoggerSpy {
	return &ContextualLoggerSpy{}
}

func (s *ContextualLoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, slog.LevelDebug, msg, args)
}

func (s *ContextualLoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, slog.LevelInfo, msg, args)
}

func (s *ContextualLoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, slog.LevelWarn, msg, args)
}

func (s *ContextualLoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, slog.LevelError, msg, args)
}

func (s *ContextualLoggerSpy) record(ctx context.Context, level slog.Level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, ContextualLogRecord{Level: level, Message: msg, Args: args, Context: ctx})
}

// Records returns a copy of all captured records.
func (s *ContextualLoggerSpy) Records() []ContextualLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]ContextualLogRecord, len(s.records))
	copy(records, s.records)

	return records
}

// Find returns the first record with the level and message.
func (s *ContextualLoggerSpy) Find(level slog.Level, msg string) (ContextualLogRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Level == level && record.Message == msg {
			return record, true
		}
	}

	return ContextualLogRecord{}, false
}

var _ lending.ContextualLogger = (*ContextualLoggerSpy)(nil)
