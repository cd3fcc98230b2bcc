package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/auction-sheets-service/internal/logging"
)

// logWithTab emits a log entry on the request-scoped logger (or fallback) and always includes the tab.
func logWithTab(ctx context.Context, fallback *slog.Logger, level slog.Level, tab Tab, msg string, args ...any) {
	logger := logging.FromContext(ctx, fallback)
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldTab, tab.String()))
	logger.Log(ctx, level, msg, args...)
}
