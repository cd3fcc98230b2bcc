package server

import (
	"log/slog"

	"github.com/preston-bernstein/auction-sheets-service/internal/config"
	"github.com/preston-bernstein/auction-sheets-service/internal/logging"
	"github.com/preston-bernstein/auction-sheets-service/internal/metrics"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers/fixture"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers/gsheets"
)

const (
	providerGSheets = "gsheets"
	providerFixture = "fixture"
)

func selectSource(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) providers.SheetSource {
	switch normalizeProviderName(cfg.Provider, nil) {
	case providerGSheets:
		return gsheets.NewClient(gsheets.Config{
			BaseURL: cfg.Sheets.BaseURL,
			SheetID: cfg.Sheets.SheetID,
			Timeout: cfg.Sheets.Timeout,
			Logger:  logger,
			Metrics: recorder,
		})
	case providerFixture:
		return fixture.New()
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Provider))
		return fixture.New()
	}
}
