package testutil

import (
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/auction-sheets-service/internal/snapshots"
	"github.com/preston-bernstein/auction-sheets-service/internal/timeutil"
)

// NewTempWriter returns a snapshot writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention)
}

// WriteSnapshot writes SampleSnapshot generated at the given time.
func WriteSnapshot(t *testing.T, w *snapshots.Writer, at time.Time) {
	t.Helper()
	if err := writeSnapshotPayload(w, at); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", at, err)
	}
}

func writeSnapshotPayload(w *snapshots.Writer, at time.Time) error {
	if w == nil {
		return errors.New("nil snapshot writer")
	}
	return w.WriteAuctionSnapshot(SampleSnapshot(at))
}

// SnapshotPath returns the expected file path for a snapshot generated at at.
func SnapshotPath(w *snapshots.Writer, at time.Time) string {
	return snapshots.AuctionSnapshotPath(w.BasePath(), timeutil.FormatDate(at.UTC()))
}
