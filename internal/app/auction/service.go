package auction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/auction-sheets-service/internal/cache"
	"github.com/preston-bernstein/auction-sheets-service/internal/domain/players"
	"github.com/preston-bernstein/auction-sheets-service/internal/domain/teams"
	"github.com/preston-bernstein/auction-sheets-service/internal/logging"
	"github.com/preston-bernstein/auction-sheets-service/internal/metrics"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers"
	"github.com/preston-bernstein/auction-sheets-service/internal/reconcile"
	"github.com/preston-bernstein/auction-sheets-service/internal/sheets"
)

// Cache dataset labels.
const (
	DatasetPlayers = "players"
	DatasetTeams   = "teams"
)

// ErrTeamNotFound is returned for a team id absent from the budget sheet.
var ErrTeamNotFound = errors.New("team not found")

// Store receives every successful refresh.
type Store interface {
	SetPlayers(items []players.Player, at time.Time)
	SetTeams(items []teams.TeamStats, at time.Time)
}

// Tabs lists the candidate tabs tried for each dataset, in order.
type Tabs struct {
	Catalogue []providers.Tab
	Auction   []providers.Tab
	Teams     []providers.Tab
}

// Config wires a Service.
type Config struct {
	Source     providers.SheetSource
	Tabs       Tabs
	HomeNation string
	CacheTTL   time.Duration
	Store      Store
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
	Now        func() time.Time
}

// Service serves reconciled auction data behind independent player and team caches.
type Service struct {
	locator    *sheets.Locator
	tabs       Tabs
	homeNation string
	store      Store
	logger     *slog.Logger
	metrics    *metrics.Recorder
	now        func() time.Time

	players *cache.TTL[[]players.Player]
	teams   *cache.TTL[[]teams.TeamStats]
}

// NewService constructs a Service from cfg.
func NewService(cfg Config) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	homeNation := cfg.HomeNation
	if homeNation == "" {
		homeNation = reconcile.DefaultHomeNation
	}
	return &Service{
		locator:    sheets.NewLocator(cfg.Source, cfg.Logger, cfg.Metrics),
		tabs:       cfg.Tabs,
		homeNation: homeNation,
		store:      cfg.Store,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		now:        now,
		players:    cache.New[[]players.Player](cfg.CacheTTL, cache.WithClock(now)),
		teams:      cache.New[[]teams.TeamStats](cfg.CacheTTL, cache.WithClock(now)),
	}
}

// Players returns every catalogue player joined with its auction record, in
// catalogue order.
func (s *Service) Players(ctx context.Context) ([]players.Player, error) {
	items, hit, err := s.players.Get(ctx, s.loadPlayers)
	s.metrics.RecordCacheLookup(DatasetPlayers, hit)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// TeamStats returns the team budget rows with points recomputed from the
// current players, in sheet order.
func (s *Service) TeamStats(ctx context.Context) ([]teams.TeamStats, error) {
	items, hit, err := s.teams.Get(ctx, s.loadTeams)
	s.metrics.RecordCacheLookup(DatasetTeams, hit)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Leaderboard returns team stats in ranking order.
func (s *Service) Leaderboard(ctx context.Context) ([]teams.TeamStats, error) {
	stats, err := s.TeamStats(ctx)
	if err != nil {
		return nil, err
	}
	return reconcile.Rank(stats), nil
}

// SoldPlayersByTeam returns the sold players whose buyer matches the team's
// id or name. Unknown ids yield ErrTeamNotFound.
func (s *Service) SoldPlayersByTeam(ctx context.Context, teamID string) ([]players.Player, error) {
	team, err := s.team(ctx, teamID)
	if err != nil {
		return nil, err
	}
	roster, err := s.Players(ctx)
	if err != nil {
		return nil, err
	}
	return reconcile.SoldTo(roster, team), nil
}

// UnsoldPlayers returns the unsold players in catalogue order.
func (s *Service) UnsoldPlayers(ctx context.Context) ([]players.Player, error) {
	roster, err := s.Players(ctx)
	if err != nil {
		return nil, err
	}
	return reconcile.Unsold(roster), nil
}

// TeamSummaries returns the compact team listing.
func (s *Service) TeamSummaries(ctx context.Context) ([]teams.TeamSummary, error) {
	stats, err := s.TeamStats(ctx)
	if err != nil {
		return nil, err
	}
	return reconcile.Summaries(stats), nil
}

// TeamStanding returns one team with its leaderboard rank.
func (s *Service) TeamStanding(ctx context.Context, teamID string) (teams.TeamStanding, error) {
	stats, err := s.TeamStats(ctx)
	if err != nil {
		return teams.TeamStanding{}, err
	}
	for _, standing := range reconcile.Standings(stats) {
		if standing.TeamID == teamID {
			return standing, nil
		}
	}
	return teams.TeamStanding{}, ErrTeamNotFound
}

// Refresh runs the leaderboard path (warming both caches) and returns the
// resulting players and teams as one snapshot.
func (s *Service) Refresh(ctx context.Context) (teams.Snapshot, error) {
	board, err := s.Leaderboard(ctx)
	if err != nil {
		return teams.Snapshot{}, err
	}
	roster, err := s.Players(ctx)
	if err != nil {
		return teams.Snapshot{}, err
	}
	return teams.Snapshot{
		GeneratedAt: s.now().UTC(),
		Players:     roster,
		Teams:       board,
	}, nil
}

// ClearCache drops both cached datasets so the next call refetches.
func (s *Service) ClearCache() {
	s.players.Invalidate()
	s.teams.Invalidate()
	logging.Info(s.logger, "auction caches cleared")
}

func (s *Service) team(ctx context.Context, teamID string) (teams.TeamStats, error) {
	stats, err := s.TeamStats(ctx)
	if err != nil {
		return teams.TeamStats{}, err
	}
	for _, t := range stats {
		if t.TeamID == teamID {
			return t, nil
		}
	}
	return teams.TeamStats{}, ErrTeamNotFound
}

func (s *Service) loadPlayers(ctx context.Context) ([]players.Player, error) {
	catalogue, err := s.locate(ctx, sheets.CatalogueContract, s.tabs.Catalogue)
	if err != nil {
		return nil, err
	}
	auction, err := s.locate(ctx, sheets.AuctionContract, s.tabs.Auction)
	if err != nil {
		return nil, err
	}

	roster := reconcile.Players(catalogue, auction, s.homeNation)
	logging.Info(logging.FromContext(ctx, s.logger), "players reconciled",
		slog.Int(logging.FieldCount, len(roster)),
		slog.Int("auction_rows", auction.Len()),
	)
	if s.store != nil {
		s.store.SetPlayers(roster, s.now().UTC())
	}
	return roster, nil
}

func (s *Service) loadTeams(ctx context.Context) ([]teams.TeamStats, error) {
	budget, err := s.locate(ctx, sheets.TeamContract, s.tabs.Teams)
	if err != nil {
		return nil, err
	}
	roster, err := s.Players(ctx)
	if err != nil {
		return nil, err
	}

	stats := reconcile.Teams(budget, roster)
	logging.Info(logging.FromContext(ctx, s.logger), "teams aggregated",
		slog.Int(logging.FieldCount, len(stats)),
	)
	if s.store != nil {
		s.store.SetTeams(stats, s.now().UTC())
	}
	return stats, nil
}

// locate resolves a dataset's tab. A readable workbook without a matching
// tab is a confirmed-empty dataset rather than a failure.
func (s *Service) locate(ctx context.Context, contract sheets.Contract, candidates []providers.Tab) (providers.Table, error) {
	match, err := s.locator.Locate(ctx, contract, candidates)
	if errors.Is(err, sheets.ErrNoMatchingSheet) {
		return providers.Table{}, nil
	}
	if err != nil {
		return providers.Table{}, err
	}
	return match.Table, nil
}
