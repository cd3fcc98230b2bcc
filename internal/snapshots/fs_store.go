package snapshots

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/preston-bernstein/auction-sheets-service/internal/domain/teams"
	"github.com/preston-bernstein/auction-sheets-service/internal/timeutil"
)

// ErrNoSnapshots is returned when no auction snapshot has been written yet.
var ErrNoSnapshots = errors.New("no auction snapshots")

// Store defines how snapshots are loaded.
type Store interface {
	LoadAuction(date string) (teams.Snapshot, error)
	LoadLatest() (teams.Snapshot, error)
	Manifest() (Manifest, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadAuction reads the snapshot for the given date (YYYY-MM-DD) from
// {basePath}/auction/{date}.json.
func (s *FSStore) LoadAuction(date string) (teams.Snapshot, error) {
	if s == nil {
		return teams.Snapshot{}, errors.New("snapshot store not configured")
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return teams.Snapshot{}, err
	}
	var snap teams.Snapshot
	if err := s.decodeFile(AuctionSnapshotPath(s.basePath, date), &snap); err != nil {
		return teams.Snapshot{}, err
	}
	return snap, nil
}

// LoadLatest reads the most recent dated snapshot on disk.
func (s *FSStore) LoadLatest() (teams.Snapshot, error) {
	if s == nil {
		return teams.Snapshot{}, errors.New("snapshot store not configured")
	}
	dates, err := listDates(s.basePath)
	if err != nil {
		return teams.Snapshot{}, err
	}
	for i := len(dates) - 1; i >= 0; i-- {
		if _, err := timeutil.ParseDate(dates[i]); err != nil {
			continue
		}
		return s.LoadAuction(dates[i])
	}
	return teams.Snapshot{}, ErrNoSnapshots
}

// Manifest reads the manifest written alongside the snapshots.
func (s *FSStore) Manifest() (Manifest, error) {
	if s == nil {
		return Manifest{}, errors.New("snapshot store not configured")
	}
	var m Manifest
	if err := s.decodeFile(ManifestPath(s.basePath), &m); err != nil {
		return Manifest{}, err
	}
	if m.Auction.Dates == nil {
		m.Auction.Dates = []string{}
	}
	return m, nil
}

func (s *FSStore) decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
