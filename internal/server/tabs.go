package server

import (
	"fmt"

	"github.com/preston-bernstein/auction-sheets-service/internal/app/auction"
	"github.com/preston-bernstein/auction-sheets-service/internal/config"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers"
)

func buildTabs(cfg config.SheetsConfig) (auction.Tabs, error) {
	catalogue, err := providers.ParseTabs(cfg.CatalogueTabs)
	if err != nil {
		return auction.Tabs{}, fmt.Errorf("catalogue tabs: %w", err)
	}
	auctionTabs, err := providers.ParseTabs(cfg.AuctionTabs)
	if err != nil {
		return auction.Tabs{}, fmt.Errorf("auction tabs: %w", err)
	}
	teamTabs, err := providers.ParseTabs(cfg.TeamTabs)
	if err != nil {
		return auction.Tabs{}, fmt.Errorf("team tabs: %w", err)
	}
	return auction.Tabs{Catalogue: catalogue, Auction: auctionTabs, Teams: teamTabs}, nil
}
