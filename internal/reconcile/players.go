package reconcile

import (
	"strings"

	"github.com/preston-bernstein/auction-sheets-service/internal/domain/players"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers"
	"github.com/preston-bernstein/auction-sheets-service/internal/sheets"
)

// DefaultHomeNation is the nation whose players are not overseas.
const DefaultHomeNation = "India"

// AuctionRecord is one parsed row of the auction results tab.
type AuctionRecord struct {
	Name        string
	FinalBid    int64
	BoughtBy    string
	SheetStatus players.Status
	Points      int
}

// AuctionRecords indexes auction rows by trimmed player name. Rows without a
// name are skipped and a later row for the same name replaces an earlier one.
func AuctionRecords(auction providers.Table) map[string]AuctionRecord {
	records := make(map[string]AuctionRecord, len(auction.Rows))
	if len(auction.Headers) == 0 {
		return records
	}
	b := sheets.AuctionSchema.Bind(auction.Headers)
	if !b.Has(sheets.FieldPlayerName) {
		return records
	}
	for _, row := range auction.Rows {
		name := b.Get(row, sheets.FieldPlayerName)
		if name == "" {
			continue
		}
		records[name] = AuctionRecord{
			Name:        name,
			FinalBid:    CleanPrice(b.Get(row, sheets.FieldFinalBid)),
			BoughtBy:    b.Get(row, sheets.FieldBoughtBy),
			SheetStatus: ParseAuctionStatus(b.Get(row, sheets.FieldStatus)),
			Points:      parseCount(b.Get(row, sheets.FieldPoints)),
		}
	}
	return records
}

// Players joins the catalogue with the auction results. Output follows
// catalogue order; auction rows naming players absent from the catalogue are
// ignored. An empty homeNation means DefaultHomeNation.
func Players(catalogue, auction providers.Table, homeNation string) []players.Player {
	if homeNation == "" {
		homeNation = DefaultHomeNation
	}
	out := make([]players.Player, 0, len(catalogue.Rows))
	if len(catalogue.Headers) == 0 {
		return out
	}

	records := AuctionRecords(auction)
	b := sheets.CatalogueSchema.Bind(catalogue.Headers)
	for idx, row := range catalogue.Rows {
		name := b.Get(row, sheets.FieldPlayerName)
		if name == "" {
			continue
		}
		country := b.Get(row, sheets.FieldCountry)
		nation := country
		if nation == "" {
			nation = homeNation
		}

		record := records[name]
		evaluation := parseCount(b.Get(row, sheets.FieldEvaluationPoints))
		points := record.Points
		if points == 0 {
			points = evaluation
		}

		out = append(out, players.Player{
			Name:             name,
			Team:             record.BoughtBy,
			Role:             b.Get(row, sheets.FieldRole),
			Nation:           nation,
			Age:              optionalCount(b.Get(row, sheets.FieldAge)),
			T20Matches:       optionalCount(b.Get(row, sheets.FieldT20Matches)),
			BasePrice:        CleanPrice(b.Get(row, sheets.FieldBasePrice)),
			SoldPrice:        record.FinalBid,
			Status:           players.DeriveStatus(record.FinalBid, record.BoughtBy),
			Overseas:         IsOverseas(country, homeNation),
			Points:           points,
			EvaluationPoints: evaluation,
			Images:           b.Get(row, sheets.FieldImages),
			OriginalIndex:    idx,
		})
	}
	return out
}

// IsOverseas reports whether country is set and differs from homeNation, ignoring case.
func IsOverseas(country, homeNation string) bool {
	country = strings.TrimSpace(country)
	return country != "" && !strings.EqualFold(country, strings.TrimSpace(homeNation))
}

// Unsold filters players down to the unsold ones, keeping order.
func Unsold(items []players.Player) []players.Player {
	out := make([]players.Player, 0)
	for _, p := range items {
		if !p.Sold() {
			out = append(out, p)
		}
	}
	return out
}
