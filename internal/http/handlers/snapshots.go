package handlers

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/auction-sheets-service/internal/logging"
	"github.com/preston-bernstein/auction-sheets-service/internal/snapshots"
	"github.com/preston-bernstein/auction-sheets-service/internal/timeutil"
)

// SnapshotHandler serves the dated auction snapshots written by the poller.
type SnapshotHandler struct {
	store  snapshots.Store
	logger *slog.Logger
}

// NewSnapshotHandler constructs a SnapshotHandler over store.
func NewSnapshotHandler(store snapshots.Store, logger *slog.Logger) *SnapshotHandler {
	return &SnapshotHandler{store: store, logger: logger}
}

// Manifest lists the snapshot dates on disk.
func (h *SnapshotHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	m, err := h.store.Manifest()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, r, http.StatusNotFound, "no snapshots", logger)
			return
		}
		logging.Error(logger, "snapshot manifest read failed", err)
		writeError(w, r, http.StatusInternalServerError, "snapshot manifest unavailable", logger)
		return
	}
	writeJSON(w, http.StatusOK, m, logger)
}

// Latest returns the most recent snapshot.
func (h *SnapshotHandler) Latest(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	snap, err := h.store.LoadLatest()
	if err != nil {
		h.loadFailed(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, snap, logger)
}

// ByDate returns the snapshot written on the given UTC date.
func (h *SnapshotHandler) ByDate(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	date := chi.URLParam(r, "date")
	if _, err := timeutil.ParseDate(date); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
		return
	}
	snap, err := h.store.LoadAuction(date)
	if err != nil {
		h.loadFailed(w, r, err, date)
		return
	}
	writeJSON(w, http.StatusOK, snap, logger)
}

func (h *SnapshotHandler) loadFailed(w http.ResponseWriter, r *http.Request, err error, date string) {
	logger := loggerFromContext(r, h.logger)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, snapshots.ErrNoSnapshots) {
		writeError(w, r, http.StatusNotFound, "snapshot not found", logger)
		return
	}
	logging.Error(logger, "snapshot load failed", err, slog.String(logging.FieldDate, date))
	writeError(w, r, http.StatusInternalServerError, "snapshot unavailable", logger)
}
