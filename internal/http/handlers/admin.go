package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/auction-sheets-service/internal/domain/teams"
	"github.com/preston-bernstein/auction-sheets-service/internal/http/requestutil"
	"github.com/preston-bernstein/auction-sheets-service/internal/logging"
	"github.com/preston-bernstein/auction-sheets-service/internal/poller"
	"github.com/preston-bernstein/auction-sheets-service/internal/timeutil"
)

// AdminService is what the admin endpoints drive on the auction service.
type AdminService interface {
	ClearCache()
	Refresh(ctx context.Context) (teams.Snapshot, error)
}

// AdminHandler exposes token-guarded maintenance endpoints.
type AdminHandler struct {
	svc    AdminService
	writer poller.SnapshotWriter
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. writer may be nil when snapshots are disabled.
func NewAdminHandler(svc AdminService, writer poller.SnapshotWriter, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		svc:    svc,
		writer: writer,
		token:  token,
		logger: logger,
	}
}

// ClearCache drops the player and team caches so the next read refetches the sheet.
func (h *AdminHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	h.svc.ClearCache()
	logging.Info(logger, "admin cache cleared")
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"}, logger)
}

// RefreshSnapshot clears the caches, runs a fresh reconciliation and writes it to disk.
func (h *AdminHandler) RefreshSnapshot(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.writer == nil {
		writeError(w, r, http.StatusServiceUnavailable, "snapshot writer not configured", logger)
		return
	}

	h.svc.ClearCache()
	snap, err := h.svc.Refresh(r.Context())
	if err != nil {
		logging.Error(logger, "admin snapshot refresh failed", err)
		writeError(w, r, http.StatusBadGateway, "failed to refresh auction data", logger)
		return
	}
	date := timeutil.FormatDate(snap.GeneratedAt.UTC())
	if err := h.writer.WriteAuctionSnapshot(snap); err != nil {
		logging.Error(logger, "admin snapshot write failed", err, slog.String(logging.FieldDate, date))
		writeError(w, r, http.StatusInternalServerError, "failed to write snapshot", logger)
		return
	}

	logging.Info(logger, "admin snapshot written",
		slog.String(logging.FieldDate, date),
		slog.Int("players", len(snap.Players)),
		slog.Int("teams", len(snap.Teams)),
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"date":    date,
		"players": len(snap.Players),
		"teams":   len(snap.Teams),
		"status":  "ok",
	}, logger)
}

func (h *AdminHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if h.token != "" {
		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if ok && subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1 {
			return true
		}
	}
	logger := loggerFromContext(r, h.logger)
	logging.Warn(logger, "admin unauthorized",
		slog.String(logging.FieldPath, r.URL.Path),
		slog.String(logging.FieldClientIP, requestutil.ClientIP(r)),
	)
	writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
	return false
}
