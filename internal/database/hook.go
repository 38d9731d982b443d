package database

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// slowQueryThreshold is the duration after which an executed query is logged as a warning.
const slowQueryThreshold = 500 * time.Millisecond

// Hook implements bun.QueryHook interface for logging queries with zap.
type Hook struct {
	logger *zap.Logger
}

// NewHook creates a new Hook with zap logger.
func NewHook(logger *zap.Logger) *Hook {
	return &Hook{logger: logger.Named("query")}
}

// BeforeQuery is a no-op; timing comes from the event start time.
func (h *Hook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

// AfterQuery logs the query and its execution time.
func (h *Hook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)

	switch {
	case event.Err != nil:
		h.logger.Error("Query failed",
			zap.String("operation", event.Operation()),
			zap.String("query", event.Query),
			zap.Duration("duration", duration),
			zap.Error(event.Err))
	case duration > slowQueryThreshold:
		h.logger.Warn("Slow query",
			zap.String("operation", event.Operation()),
			zap.String("query", event.Query),
			zap.Duration("duration", duration))
	default:
		h.logger.Debug("Query executed",
			zap.String("operation", event.Operation()),
			zap.String("query", event.Query),
			zap.Duration("duration", duration))
	}
}
