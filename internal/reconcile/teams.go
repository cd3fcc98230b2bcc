package reconcile

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/preston-bernstein/auction-sheets-service/internal/domain/players"
	"github.com/preston-bernstein/auction-sheets-service/internal/domain/teams"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers"
	"github.com/preston-bernstein/auction-sheets-service/internal/sheets"
)

const maxTeamIDLen = 10

// TeamID slugs a team name: lower-cased ASCII letters and digits only, at
// most ten characters.
func TeamID(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			if sb.Len() == maxTeamIDLen {
				break
			}
		}
	}
	return sb.String()
}

// teamIDs hands out slugs, suffixing later collisions with 2, 3, ...
type teamIDs struct {
	seen map[string]bool
}

func (t *teamIDs) next(name string) string {
	base := TeamID(name)
	if base == "" {
		return ""
	}
	if !t.seen[base] {
		t.seen[base] = true
		return base
	}
	for n := 2; ; n++ {
		suffix := strconv.Itoa(n)
		stem := base
		if len(stem)+len(suffix) > maxTeamIDLen {
			stem = stem[:maxTeamIDLen-len(suffix)]
		}
		id := stem + suffix
		if !t.seen[id] {
			t.seen[id] = true
			return id
		}
	}
}

// Teams parses the team budget tab and recomputes each team's points from the
// sold players. Rows without a team name are skipped.
func Teams(budget providers.Table, roster []players.Player) []teams.TeamStats {
	out := make([]teams.TeamStats, 0, len(budget.Rows))
	if len(budget.Headers) == 0 {
		return out
	}

	ids := &teamIDs{seen: make(map[string]bool)}
	b := sheets.TeamSchema.Bind(budget.Headers)
	for _, row := range budget.Rows {
		name := b.Get(row, sheets.FieldTeamName)
		if name == "" {
			continue
		}
		team := teams.TeamStats{
			TeamID:         ids.next(name),
			TeamName:       name,
			TotalSpent:     CleanPrice(b.Get(row, sheets.FieldTotalSpent)),
			FundsRemaining: CleanPrice(b.Get(row, sheets.FieldRemainingBudget)),
			PlayersCount:   parseCount(b.Get(row, sheets.FieldTotalPlayers)),
			OverseasCount:  parseCount(b.Get(row, sheets.FieldForeignPlayers)),
		}
		for _, p := range roster {
			if BelongsTo(p, team.TeamID, team.TeamName) {
				team.TotalPoints += p.Points
			}
		}
		out = append(out, team)
	}
	return out
}

// BelongsTo reports whether p is a sold player whose buyer field contains the
// team's slug or full name, ignoring case.
func BelongsTo(p players.Player, teamID, teamName string) bool {
	if !p.Sold() {
		return false
	}
	buyer := strings.ToLower(p.Team)
	if name := strings.ToLower(strings.TrimSpace(teamName)); name != "" && strings.Contains(buyer, name) {
		return true
	}
	id := strings.ToLower(teamID)
	return id != "" && strings.Contains(buyer, id)
}

// SoldTo returns the sold players belonging to team, in input order.
func SoldTo(roster []players.Player, team teams.TeamStats) []players.Player {
	out := make([]players.Player, 0)
	for _, p := range roster {
		if BelongsTo(p, team.TeamID, team.TeamName) {
			out = append(out, p)
		}
	}
	return out
}

// Initials upper-cases the first letter of each word in name.
func Initials(name string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		sb.WriteRune(unicode.ToUpper(r))
	}
	return sb.String()
}

// Summaries projects team stats into the compact listing shape.
func Summaries(stats []teams.TeamStats) []teams.TeamSummary {
	out := make([]teams.TeamSummary, 0, len(stats))
	for _, s := range stats {
		out = append(out, teams.TeamSummary{
			ID:              s.TeamID,
			Name:            s.TeamName,
			Initials:        Initials(s.TeamName),
			FundsRemaining:  s.FundsRemaining,
			OverseasPlayers: s.OverseasCount,
			TotalPlayers:    s.PlayersCount,
		})
	}
	return out
}
