package server

import (
	"log/slog"

	"github.com/preston-bernstein/auction-sheets-service/internal/config"
	"github.com/preston-bernstein/auction-sheets-service/internal/metrics"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers"
)

// sourceFactory assembles the sheet source with shared instrumentation.
type sourceFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newSourceFactory(logger *slog.Logger, metrics *metrics.Recorder) sourceFactory {
	return sourceFactory{logger: logger, metrics: metrics}
}

func (f sourceFactory) build(cfg config.Config) providers.SheetSource {
	base := selectSource(cfg, f.logger, f.metrics)
	return providers.NewInstrumentedSource(base, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base))
}
