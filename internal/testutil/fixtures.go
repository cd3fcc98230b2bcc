package testutil

import (
	"time"

	"github.com/preston-bernstein/auction-sheets-service/internal/domain/players"
	"github.com/preston-bernstein/auction-sheets-service/internal/domain/teams"
)

// SamplePlayer returns a player fixture. A non-empty team with a positive
// price makes the player sold.
func SamplePlayer(name, team string, soldPrice int64, points int) players.Player {
	return players.Player{
		Name:      name,
		Team:      team,
		Role:      "Batter",
		Nation:    "India",
		BasePrice: 2_000_000,
		SoldPrice: soldPrice,
		Status:    players.DeriveStatus(soldPrice, team),
		Points:    points,
	}
}

// SampleTeam returns a team fixture with the given id and name.
func SampleTeam(id, name string, points int) teams.TeamStats {
	return teams.TeamStats{
		TeamID:         id,
		TeamName:       name,
		TotalSpent:     100_000_000,
		FundsRemaining: 900_000_000,
		PlayersCount:   1,
		TotalPoints:    points,
	}
}

// SampleSnapshot builds a small snapshot generated at the given time.
func SampleSnapshot(at time.Time) teams.Snapshot {
	return teams.Snapshot{
		GeneratedAt: at,
		Players: []players.Player{
			SamplePlayer("Virat Kohli", "Royal Strikers", 150_000_000, 95),
			SamplePlayer("Rashid Khan", "", 0, 90),
		},
		Teams: []teams.TeamStats{SampleTeam("royalstrik", "Royal Strikers", 95)},
	}
}
