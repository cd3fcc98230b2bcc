package teams

import (
	"time"

	"github.com/preston-bernstein/auction-sheets-service/internal/domain/players"
)

// TeamStats is one team-budget row with points recomputed from sold players.
type TeamStats struct {
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	TotalSpent     int64  `json:"totalSpent"`
	FundsRemaining int64  `json:"fundsRemaining"`
	PlayersCount   int    `json:"playersCount"`
	OverseasCount  int    `json:"overseasCount"`
	TotalPoints    int    `json:"totalPoints"`
}

// TeamSummary is the compact team listing used by pickers and headers.
type TeamSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Initials        string `json:"initials"`
	FundsRemaining  int64  `json:"fundsRemaining"`
	OverseasPlayers int    `json:"overseasPlayers"`
	TotalPlayers    int    `json:"totalPlayers"`
}

// TeamStanding pairs a team with its 1-based leaderboard position.
type TeamStanding struct {
	Rank int `json:"rank"`
	TeamStats
}

// Snapshot is one complete reconciliation result.
type Snapshot struct {
	GeneratedAt time.Time        `json:"generatedAt"`
	Players     []players.Player `json:"players"`
	Teams       []TeamStats      `json:"teams"`
}
