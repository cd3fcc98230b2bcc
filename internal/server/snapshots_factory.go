package server

import (
	"errors"
	"log/slog"

	"github.com/preston-bernstein/auction-sheets-service/internal/config"
	"github.com/preston-bernstein/auction-sheets-service/internal/logging"
	"github.com/preston-bernstein/auction-sheets-service/internal/snapshots"
	"github.com/preston-bernstein/auction-sheets-service/internal/store"
	"github.com/preston-bernstein/auction-sheets-service/internal/timeutil"
)

type snapshotComponents struct {
	store  snapshots.Store
	writer *snapshots.Writer
}

// buildSnapshots wires disk snapshots when a directory is configured and
// seeds memoryStore with the most recent one so a cold start can serve stale data.
func buildSnapshots(cfg config.Config, memoryStore *store.MemoryStore, logger *slog.Logger) snapshotComponents {
	if !cfg.Snapshots.Enabled() {
		return snapshotComponents{}
	}
	basePath := cfg.Snapshots.Dir
	fsStore := snapshots.NewFSStore(basePath)

	snap, err := fsStore.LoadLatest()
	switch {
	case err == nil:
		memoryStore.Restore(snap)
		logging.Info(logger, "restored auction snapshot",
			slog.String(logging.FieldDate, timeutil.FormatDate(snap.GeneratedAt.UTC())),
			slog.Int("players", len(snap.Players)),
			slog.Int("teams", len(snap.Teams)),
		)
	case errors.Is(err, snapshots.ErrNoSnapshots):
		logging.Debug(logger, "no auction snapshot to restore", slog.String("dir", basePath))
	default:
		logging.Warn(logger, "auction snapshot restore failed", slog.String("dir", basePath), "error", err)
	}

	return snapshotComponents{
		store:  fsStore,
		writer: snapshots.NewWriter(basePath, cfg.Snapshots.RetentionDays),
	}
}
