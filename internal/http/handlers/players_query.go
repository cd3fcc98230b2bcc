package handlers

import (
	"net/url"

	"github.com/preston-bernstein/auction-sheets-service/internal/domain/players"
)

// parsePlayerQuery reads ?status=&sort=&q= of GET /players.
func parsePlayerQuery(values url.Values) (players.Query, error) {
	return players.ParseQuery(values.Get("status"), values.Get("sort"), values.Get("q"))
}
