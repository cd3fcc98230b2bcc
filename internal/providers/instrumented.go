package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/auction-sheets-service/internal/logging"
	"github.com/preston-bernstein/auction-sheets-service/internal/metrics"
)

// instrumentedSource wraps a SheetSource with per-tab metrics and logging.
type instrumentedSource struct {
	inner   SheetSource
	logger  *slog.Logger
	metrics *metrics.Recorder
	name    string
}

// NewInstrumentedSource records every tab fetch on recorder and logs failures.
func NewInstrumentedSource(inner SheetSource, logger *slog.Logger, recorder *metrics.Recorder, name string) SheetSource {
	return &instrumentedSource{
		inner:   inner,
		logger:  logger,
		metrics: recorder,
		name:    name,
	}
}

func (s *instrumentedSource) FetchTab(ctx context.Context, tab Tab) (Table, error) {
	if s == nil || s.inner == nil {
		return Table{}, &FetchError{Tab: tab, Err: ErrProviderUnavailable}
	}

	start := time.Now()
	table, err := s.inner.FetchTab(ctx, tab)
	duration := time.Since(start)
	s.metrics.RecordSheetFetch(tab.String(), duration, err)

	if err != nil {
		// Missing tabs are expected while the locator tries candidates.
		level := slog.LevelWarn
		if IsNotFound(err) {
			level = slog.LevelDebug
		}
		logWithTab(ctx, s.logger, level, tab, "sheet fetch failed",
			slog.String(logging.FieldProvider, s.name),
			slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
			slog.Any("error", err),
		)
		return Table{}, err
	}

	logWithTab(ctx, s.logger, slog.LevelDebug, tab, "sheet fetched",
		slog.String(logging.FieldProvider, s.name),
		slog.Int(logging.FieldCount, table.Len()),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	)
	return table, nil
}
