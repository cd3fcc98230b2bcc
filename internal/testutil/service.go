package testutil

import (
	"time"

	"github.com/preston-bernstein/auction-sheets-service/internal/app/auction"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers/fixture"
	"github.com/preston-bernstein/auction-sheets-service/internal/store"
)

// FixtureTabs addresses the tabs of the default fixture workbook.
var FixtureTabs = auction.Tabs{
	Catalogue: []providers.Tab{providers.GID("0")},
	Auction:   []providers.Tab{providers.Named("Auctioneer Sheet")},
	Teams:     []providers.Tab{providers.Named("Teams & Budget")},
}

// NewAuctionService builds an auction service over source with an in-memory
// last-known-good store. A nil source serves the default fixture workbook.
func NewAuctionService(source providers.SheetSource) (*auction.Service, *store.MemoryStore) {
	if source == nil {
		source = fixture.New()
	}
	ms := store.NewMemoryStore()
	svc := auction.NewService(auction.Config{
		Source:   source,
		Tabs:     FixtureTabs,
		CacheTTL: time.Nanosecond,
		Store:    ms,
	})
	return svc, ms
}
