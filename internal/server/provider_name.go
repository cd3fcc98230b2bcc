package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/auction-sheets-service/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving from the source when not explicitly configured.
// Used across server wiring and the source factory to keep naming consistent in metrics/logs.
func normalizeProviderName(raw string, source providers.SheetSource) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return strings.ToLower(raw)
	}
	if source != nil {
		return strings.ToLower(fmt.Sprintf("%T", source))
	}
	return "provider"
}
