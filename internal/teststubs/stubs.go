package teststubs

import (
	"context"
	"fmt"
	"io/fs"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/auction-sheets-service/internal/domain/teams"
	"github.com/preston-bernstein/auction-sheets-service/internal/snapshots"
	"github.com/preston-bernstein/auction-sheets-service/internal/timeutil"
)

// StubRefresher is a test double for poller.Refresher.
type StubRefresher struct {
	mu       sync.Mutex
	Snapshot teams.Snapshot
	Err      error
	Calls    atomic.Int32
	Notify   chan struct{}
}

// Refresh returns the configured snapshot and error while tracking calls.
func (s *StubRefresher) Refresh(ctx context.Context) (teams.Snapshot, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Snapshot, s.Err
}

// SetErr swaps the error returned by later calls.
func (s *StubRefresher) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Err = err
}

// StubSnapshotStore is a test double for snapshots.Store.
type StubSnapshotStore struct {
	Snapshots   map[string]teams.Snapshot // keyed by date
	ManifestVal snapshots.Manifest
	LoadErr     error
	ManifestErr error
}

// LoadAuction returns the snapshot for date if present.
func (s *StubSnapshotStore) LoadAuction(date string) (teams.Snapshot, error) {
	if s.LoadErr != nil {
		return teams.Snapshot{}, s.LoadErr
	}
	snap, ok := s.Snapshots[date]
	if !ok {
		return teams.Snapshot{}, fmt.Errorf("snapshot %s: %w", date, fs.ErrNotExist)
	}
	return snap, nil
}

// LoadLatest returns the snapshot with the greatest date key.
func (s *StubSnapshotStore) LoadLatest() (teams.Snapshot, error) {
	if s.LoadErr != nil {
		return teams.Snapshot{}, s.LoadErr
	}
	latest := ""
	for date := range s.Snapshots {
		if date > latest {
			latest = date
		}
	}
	if latest == "" {
		return teams.Snapshot{}, snapshots.ErrNoSnapshots
	}
	return s.Snapshots[latest], nil
}

// Manifest returns the configured manifest.
func (s *StubSnapshotStore) Manifest() (snapshots.Manifest, error) {
	if s.ManifestErr != nil {
		return snapshots.Manifest{}, s.ManifestErr
	}
	return s.ManifestVal, nil
}

// StubSnapshotWriter is a test double for poller.SnapshotWriter.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written map[string]teams.Snapshot // keyed by date
	Err     error
}

// WriteAuctionSnapshot records the snapshot for verification in tests.
func (w *StubSnapshotWriter) WriteAuctionSnapshot(snapshot teams.Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	if w.Written == nil {
		w.Written = make(map[string]teams.Snapshot)
	}
	w.Written[timeutil.FormatDate(snapshot.GeneratedAt.UTC())] = snapshot
	return nil
}

// Get returns the snapshot written for date.
func (w *StubSnapshotWriter) Get(date string) (teams.Snapshot, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	snap, ok := w.Written[date]
	return snap, ok
}
