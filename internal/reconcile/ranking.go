package reconcile

import (
	"cmp"
	"slices"

	"golang.org/x/text/cases"

	"github.com/preston-bernstein/auction-sheets-service/internal/domain/teams"
)

// Rank returns a new slice ordered for the leaderboard: points descending,
// then funds remaining descending, then team name ignoring case. Raw name and
// team id break any remaining tie so the order is total.
func Rank(stats []teams.TeamStats) []teams.TeamStats {
	fold := cases.Fold()
	ranked := slices.Clone(stats)
	if ranked == nil {
		ranked = []teams.TeamStats{}
	}
	slices.SortStableFunc(ranked, func(a, b teams.TeamStats) int {
		if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
			return c
		}
		if c := cmp.Compare(b.FundsRemaining, a.FundsRemaining); c != 0 {
			return c
		}
		if c := cmp.Compare(fold.String(a.TeamName), fold.String(b.TeamName)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.TeamName, b.TeamName); c != 0 {
			return c
		}
		return cmp.Compare(a.TeamID, b.TeamID)
	})
	return ranked
}

// Standings ranks stats and numbers them from 1.
func Standings(stats []teams.TeamStats) []teams.TeamStanding {
	ranked := Rank(stats)
	out := make([]teams.TeamStanding, len(ranked))
	for i, s := range ranked {
		out[i] = teams.TeamStanding{Rank: i + 1, TeamStats: s}
	}
	return out
}
