package server

import (
	"log/slog"

	"github.com/preston-bernstein/auction-sheets-service/internal/app/auction"
	"github.com/preston-bernstein/auction-sheets-service/internal/config"
	"github.com/preston-bernstein/auction-sheets-service/internal/store"
)

// NewAuctionService builds the configured sheet source and auction service
// without any HTTP, poller or metrics wiring. Used by one-shot tooling.
func NewAuctionService(cfg config.Config, logger *slog.Logger) (*auction.Service, error) {
	tabs, err := buildTabs(cfg.Sheets)
	if err != nil {
		return nil, err
	}
	return auction.NewService(auction.Config{
		Source:     newSourceFactory(logger, nil).build(cfg),
		Tabs:       tabs,
		HomeNation: cfg.Sheets.HomeNation,
		CacheTTL:   cfg.CacheTTL,
		Store:      store.NewMemoryStore(),
		Logger:     logger,
	}), nil
}
