package store

import (
	"slices"
	"sync"
	"time"

	"github.com/preston-bernstein/auction-sheets-service/internal/domain/players"
	"github.com/preston-bernstein/auction-sheets-service/internal/domain/teams"
)

// MemoryStore keeps the last successfully reconciled players and teams.
type MemoryStore struct {
	mu        sync.RWMutex
	players   []players.Player
	teams     []teams.TeamStats
	teamIndex map[string]int
	playersAt time.Time
	teamsAt   time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{teamIndex: make(map[string]int)}
}

// ListPlayers returns a copy of the stored players, when they were stored, and
// whether anything has been stored yet.
func (s *MemoryStore) ListPlayers() ([]players.Player, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.playersAt.IsZero() {
		return nil, time.Time{}, false
	}
	return slices.Clone(s.players), s.playersAt, true
}

// ListTeams returns a copy of the stored team stats in sheet order.
func (s *MemoryStore) ListTeams() ([]teams.TeamStats, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.teamsAt.IsZero() {
		return nil, time.Time{}, false
	}
	return slices.Clone(s.teams), s.teamsAt, true
}

// GetTeam retrieves stored team stats by team id.
func (s *MemoryStore) GetTeam(id string) (teams.TeamStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.teamIndex[id]
	if !ok {
		return teams.TeamStats{}, false
	}
	return s.teams[idx], true
}

// SetPlayers replaces the stored players.
func (s *MemoryStore) SetPlayers(items []players.Player, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players = slices.Clone(items)
	if s.players == nil {
		s.players = []players.Player{}
	}
	s.playersAt = at
}

// SetTeams replaces the stored team stats.
func (s *MemoryStore) SetTeams(items []teams.TeamStats, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teams = slices.Clone(items)
	if s.teams == nil {
		s.teams = []teams.TeamStats{}
	}
	s.teamIndex = make(map[string]int, len(items))
	for i, t := range s.teams {
		if _, dup := s.teamIndex[t.TeamID]; !dup {
			s.teamIndex[t.TeamID] = i
		}
	}
	s.teamsAt = at
}

// Restore loads a previously persisted snapshot.
func (s *MemoryStore) Restore(snap teams.Snapshot) {
	at := snap.GeneratedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	s.SetPlayers(snap.Players, at)
	s.SetTeams(snap.Teams, at)
}
