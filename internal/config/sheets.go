package config

import "time"

// SheetsConfig controls which spreadsheet is read and how its tabs are located.
// Tab lists hold "gid:<n>" or "name:<title>" entries tried in order.
type SheetsConfig struct {
	SheetID       string
	BaseURL       string
	Timeout       time.Duration
	CatalogueTabs []string
	AuctionTabs   []string
	TeamTabs      []string
	HomeNation    string
}

func loadSheets() SheetsConfig {
	return SheetsConfig{
		SheetID:       envOrDefault(envSheetID, defaultSheetID),
		BaseURL:       envOrDefault(envSheetsBaseURL, defaultSheetsBase),
		Timeout:       durationEnvOrDefault(envSheetsTimeout, defaultSheetsTimeout),
		CatalogueTabs: listEnvOrDefault(envCatalogueTabs, defaultCatalogueTabs),
		AuctionTabs:   listEnvOrDefault(envAuctionTabs, defaultAuctionTabs),
		TeamTabs:      listEnvOrDefault(envTeamTabs, defaultTeamTabs),
		HomeNation:    envOrDefault(envHomeNation, defaultHomeNation),
	}
}
