package snapshots

import (
	"os"
	"testing"
	"time"

	"github.com/preston-bernstein/auction-sheets-service/internal/domain/players"
	"github.com/preston-bernstein/auction-sheets-service/internal/domain/teams"
	"github.com/preston-bernstein/auction-sheets-service/internal/timeutil"
)

func simpleSnapshot(at time.Time) teams.Snapshot {
	return teams.Snapshot{
		GeneratedAt: at,
		Players:     []players.Player{{Name: "Virat Kohli", Status: players.StatusSold, Team: "Royal Strikers", SoldPrice: 10}},
		Teams:       []teams.TeamStats{{TeamID: "royalstrik", TeamName: "Royal Strikers"}},
	}
}

func writeSnapshot(t *testing.T, w *Writer, snap teams.Snapshot) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil")
	}
	if err := w.WriteAuctionSnapshot(snap); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", snap.GeneratedAt, err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, at time.Time) {
	t.Helper()
	path := AuctionSnapshotPath(w.BasePath(), timeutil.FormatDate(at.UTC()))
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected snapshot for %s to be written: %v", at, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
