package config

import "time"

const (
	envPort           = "PORT"
	envPollInterval   = "POLL_INTERVAL"
	envProvider       = "PROVIDER"
	envCacheTTL       = "CACHE_TTL"
	envHomeNation     = "HOME_NATION"
	envSheetID        = "SHEET_ID"
	envSheetsBaseURL  = "SHEETS_BASE_URL"
	envSheetsTimeout  = "SHEETS_HTTP_TIMEOUT"
	envCatalogueTabs  = "CATALOGUE_TABS"
	envAuctionTabs    = "AUCTION_TABS"
	envTeamTabs       = "TEAM_TABS"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken     = "ADMIN_TOKEN"
	envSnapshotDir    = "SNAPSHOT_DIR"
	envSnapshotDays   = "SNAPSHOT_RETENTION_DAYS"
	envCORSOrigins    = "CORS_ORIGINS"
	envRateLimitRPS   = "RATE_LIMIT_RPS"
	envRateLimitBurst = "RATE_LIMIT_BURST"

	defaultPort = "4000"
	// Matches the dashboard refresh cadence; the cache absorbs anything faster.
	defaultPollInterval  = 5 * Duration(time.Second)
	defaultProvider      = "gsheets"
	defaultCacheTTL      = 5 * Duration(time.Second)
	defaultHomeNation    = "India"
	defaultSheetID       = "1fyX373d3bUhnBGoZuM_eQxy991hSajyZjIuVgByg-7g"
	defaultSheetsBase    = "https://docs.google.com/spreadsheets/d"
	defaultSheetsTimeout = 10 * Duration(time.Second)
	defaultMetricsPort   = "9090"
	defaultSnapshotDays  = 14
	defaultRateLimitRPS  = 20
	defaultRateBurst     = 40
)

// Tab ids tried when the named auction/team tabs are missing. Numeric GIDs are
// how Google addresses tabs in export URLs; these cover the usual sheet layouts.
var systematicGIDs = []string{
	"1", "2", "3", "4", "5", "10", "100", "1000",
	"123456789", "987654321", "1849776771", "349286951", "1930268077", "0123456789",
}

var (
	defaultCatalogueTabs = []string{"gid:0"}
	defaultAuctionTabs   = append([]string{"name:Auctioneer Sheet"}, prefixed("gid:", systematicGIDs)...)
	defaultTeamTabs      = append([]string{"name:Teams & Budget"}, prefixed("gid:", systematicGIDs)...)
)

func prefixed(prefix string, values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, prefix+v)
	}
	return out
}
