package db

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/go-pg/pg/v10"

	"github.com/daniilsolovey/verein-site/internal/metrics"
)

// QueryHook records query latency and logs executed SQL at debug level.
type QueryHook struct {
	logger *slog.Logger
}

func NewQueryHook(logger *slog.Logger) *QueryHook {
	return &QueryHook{
		logger: logger,
	}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, event *pg.QueryEvent) (context.Context, error) {
	return ctx, nil
}

func (h *QueryHook) AfterQuery(ctx context.Context, event *pg.QueryEvent) error {
	if unformatted, err := event.UnformattedQuery(); err == nil {
		metrics.ObserveQuery(operation(unformatted), event.StartTime)
	}

	if !h.logger.Enabled(ctx, slog.LevelDebug) {
		return nil
	}

	query, err := event.FormattedQuery()
	if err != nil {
		h.logger.Error("failed to format query", "error", err)
		return nil
	}

	h.logger.DebugContext(ctx, "SQL query executed",
		"query", string(query),
		"duration", time.Since(event.StartTime),
		"error", event.Err,
	)

	return nil
}

// operation returns the leading keyword of a statement, e.g. SELECT.
func operation(query []byte) string {
	fields := bytes.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return string(bytes.ToUpper(fields[0]))
}
