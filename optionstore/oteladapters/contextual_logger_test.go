package oteladapters_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presencekit/optional-go/optionstore/oteladapters"
)

// capturingHandler records slog records for assertions.
type capturingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *capturingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capturingHandler) Handle(_ context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)

	return nil
}

func (h *capturingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *capturingHandler) WithGroup(string) slog.Handler      { return h }

func Test_NewSlogBridgeLogger_Construction(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("test")

	assert.NotNil(t, logger)
}

func Test_SlogBridgeLogger_ForwardsAllLevels(t *testing.T) {
	handler := &capturingHandler{}
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)
	ctx := context.Background()

	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "info message", "key", "reply-to")
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message")

	require.Len(t, handler.records, 4)
	assert.Equal(t, slog.LevelDebug, handler.records[0].Level)
	assert.Equal(t, "info message", handler.records[1].Message)
	assert.Equal(t, slog.LevelWarn, handler.records[2].Level)
	assert.Equal(t, slog.LevelError, handler.records[3].Level)
}
