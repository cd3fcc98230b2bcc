package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/auction-sheets-service/internal/app/auction"
	"github.com/preston-bernstein/auction-sheets-service/internal/domain/players"
	"github.com/preston-bernstein/auction-sheets-service/internal/domain/teams"
	"github.com/preston-bernstein/auction-sheets-service/internal/logging"
	"github.com/preston-bernstein/auction-sheets-service/internal/poller"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers"
	"github.com/preston-bernstein/auction-sheets-service/internal/reconcile"
)

// AuctionService is the read side of the auction service used by the API.
type AuctionService interface {
	Players(ctx context.Context) ([]players.Player, error)
	TeamStats(ctx context.Context) ([]teams.TeamStats, error)
	Leaderboard(ctx context.Context) ([]teams.TeamStats, error)
	SoldPlayersByTeam(ctx context.Context, teamID string) ([]players.Player, error)
	UnsoldPlayers(ctx context.Context) ([]players.Player, error)
	TeamSummaries(ctx context.Context) ([]teams.TeamSummary, error)
	TeamStanding(ctx context.Context, teamID string) (teams.TeamStanding, error)
}

// LastKnown holds the most recent successful reconciliation.
type LastKnown interface {
	ListPlayers() ([]players.Player, time.Time, bool)
	ListTeams() ([]teams.TeamStats, time.Time, bool)
	GetTeam(id string) (teams.TeamStats, bool)
}

// Handler wires HTTP routes to the auction service.
type Handler struct {
	svc      AuctionService
	store    LastKnown
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. store may be nil, in which case failed
// refreshes surface as 502.
func NewHandler(svc AuctionService, store LastKnown, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		store:    store,
		logger:   logger,
		statusFn: statusFn,
	}
}

// listResponse wraps every collection endpoint. Stale responses come from the
// last-known-good store after a failed refresh.
type listResponse[T any] struct {
	Items     []T        `json:"items"`
	Count     int        `json:"count"`
	Stale     bool       `json:"stale"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Count: len(items)}
}

func staleList[T any](items []T, at time.Time) listResponse[T] {
	resp := newList(items)
	resp.Stale = true
	if !at.IsZero() {
		at = at.UTC()
		resp.UpdatedAt = &at
	}
	return resp
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the poller has completed a recent refresh.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Players lists reconciled players, optionally filtered and sorted.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	query, err := parsePlayerQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	items, err := h.svc.Players(r.Context())
	if err != nil {
		h.servePlayersStale(w, r, err, query.Apply)
		return
	}
	writeJSON(w, http.StatusOK, newList(query.Apply(items)), h.logger)
}

// UnsoldPlayers lists players without a buyer, in catalogue order.
func (h *Handler) UnsoldPlayers(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.UnsoldPlayers(r.Context())
	if err != nil {
		h.servePlayersStale(w, r, err, reconcile.Unsold)
		return
	}
	writeJSON(w, http.StatusOK, newList(items), h.logger)
}

// Teams lists team stats in sheet order.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.TeamStats(r.Context())
	if err != nil {
		serveTeamsStale(h, w, r, err, func(stats []teams.TeamStats) []teams.TeamStats { return stats })
		return
	}
	writeJSON(w, http.StatusOK, newList(items), h.logger)
}

// TeamSummaries lists the compact team view.
func (h *Handler) TeamSummaries(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.TeamSummaries(r.Context())
	if err != nil {
		serveTeamsStale(h, w, r, err, reconcile.Summaries)
		return
	}
	writeJSON(w, http.StatusOK, newList(items), h.logger)
}

// Leaderboard lists team stats in ranking order.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Leaderboard(r.Context())
	if err != nil {
		serveTeamsStale(h, w, r, err, reconcile.Rank)
		return
	}
	writeJSON(w, http.StatusOK, newList(items), h.logger)
}

// TeamByID returns one team with its leaderboard rank.
func (h *Handler) TeamByID(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamId")
	logger := loggerFromContext(r, h.logger)

	standing, err := h.svc.TeamStanding(r.Context(), teamID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, standing, logger)
		return
	case errors.Is(err, auction.ErrTeamNotFound):
		writeError(w, r, http.StatusNotFound, "team not found", logger)
		return
	}
	if !h.canServeStale(w, r, err) {
		return
	}

	stats, at, ok := h.lastTeams()
	if !ok {
		h.refreshFailed(w, r, err)
		return
	}
	logStale(logger, err, "teams", at, slog.String(logging.FieldTeamID, teamID))
	for _, s := range reconcile.Standings(stats) {
		if s.TeamID == teamID {
			writeJSON(w, http.StatusOK, s, logger)
			return
		}
	}
	writeError(w, r, http.StatusNotFound, "team not found", logger)
}

// TeamPlayers lists the players sold to one team.
func (h *Handler) TeamPlayers(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamId")
	logger := loggerFromContext(r, h.logger)

	items, err := h.svc.SoldPlayersByTeam(r.Context(), teamID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, newList(items), logger)
		return
	case errors.Is(err, auction.ErrTeamNotFound):
		writeError(w, r, http.StatusNotFound, "team not found", logger)
		return
	}

	if !h.canServeStale(w, r, err) {
		return
	}

	_, _, teamsOK := h.lastTeams()
	roster, at, playersOK := h.lastPlayers()
	if !teamsOK || !playersOK {
		h.refreshFailed(w, r, err)
		return
	}
	logStale(logger, err, "players", at, slog.String(logging.FieldTeamID, teamID))
	team, ok := h.store.GetTeam(teamID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "team not found", logger)
		return
	}
	writeJSON(w, http.StatusOK, staleList(reconcile.SoldTo(roster, team), at), logger)
}

func (h *Handler) servePlayersStale(w http.ResponseWriter, r *http.Request, cause error, view func([]players.Player) []players.Player) {
	if !h.canServeStale(w, r, cause) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	items, at, ok := h.lastPlayers()
	if !ok {
		h.refreshFailed(w, r, cause)
		return
	}
	logStale(logger, cause, "players", at)
	writeJSON(w, http.StatusOK, staleList(view(items), at), logger)
}

func serveTeamsStale[T any](h *Handler, w http.ResponseWriter, r *http.Request, cause error, view func([]teams.TeamStats) []T) {
	if !h.canServeStale(w, r, cause) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	stats, at, ok := h.lastTeams()
	if !ok {
		h.refreshFailed(w, r, cause)
		return
	}
	logStale(logger, cause, "teams", at)
	writeJSON(w, http.StatusOK, staleList(view(stats), at), logger)
}

func (h *Handler) lastPlayers() ([]players.Player, time.Time, bool) {
	if h.store == nil {
		return nil, time.Time{}, false
	}
	return h.store.ListPlayers()
}

func (h *Handler) lastTeams() ([]teams.TeamStats, time.Time, bool) {
	if h.store == nil {
		return nil, time.Time{}, false
	}
	return h.store.ListTeams()
}

// canServeStale reports whether cause is a sheet fetch or parse failure, the
// only failures last-known data stands in for. Anything else answers 500.
func (h *Handler) canServeStale(w http.ResponseWriter, r *http.Request, cause error) bool {
	if providers.IsSourceError(cause) {
		return true
	}
	logger := loggerFromContext(r, h.logger)
	logging.Error(logger, "auction lookup failed", cause)
	writeError(w, r, http.StatusInternalServerError, "internal error", logger)
	return false
}

func (h *Handler) refreshFailed(w http.ResponseWriter, r *http.Request, err error) {
	logger := loggerFromContext(r, h.logger)
	logging.Error(logger, "auction refresh failed", err)
	writeError(w, r, http.StatusBadGateway, "auction data unavailable", logger)
}

func logStale(logger *slog.Logger, cause error, dataset string, at time.Time, args ...any) {
	args = append(args,
		slog.String(logging.FieldDataset, dataset),
		slog.Time("stored_at", at),
		slog.Any("error", cause),
	)
	logging.Warn(logger, "serving last known data", args...)
}
