package reconcile

import (
	"strings"

	"github.com/preston-bernstein/auction-sheets-service/internal/domain/players"
)

var (
	unsoldMarkers = []string{"unsold", "❌"}
	soldMarkers   = []string{"sold", "✅", "🏆", "🔽"}
)

// ParseAuctionStatus reads the free-text status column. Unsold markers are
// checked first since "unsold" contains "sold". Unrecognized text is unsold.
// The result is advisory: reconciliation derives status from price and buyer.
func ParseAuctionStatus(raw string) players.Status {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return players.StatusUnsold
	}
	for _, m := range unsoldMarkers {
		if strings.Contains(lower, m) {
			return players.StatusUnsold
		}
	}
	for _, m := range soldMarkers {
		if strings.Contains(lower, m) {
			return players.StatusSold
		}
	}
	return players.StatusUnsold
}
