package sheets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Player Name", "player name"},
		{"  PLAYER   NAME ", "player name"},
		{"🏏 Player Name", "player name"},
		{"Base Prize (₹)", "base prize"},
		{"Final Bid Price (in ₹ Cr)", "final bid price"},
		{"₹ Total Spent", "total spent"},
		{"Remaining Budget 💰", "remaining budget"},
		{"Batting S.R.", "batting sr"},
		{"T20-Matches", "t20 matches"},
		{"foreign_players", "foreign players"},
		{"Bought By 👨🏽‍💼", "bought by"},
		{"Status ✅️", "status"},
		{"Teams & Budget", "teams budget"},
		{"Age (yrs", "age yrs"},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, NormalizeHeader(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeHeaderIsIdempotent(t *testing.T) {
	inputs := []string{
		"🏏 Player Name", "Base Prize (₹)", "((nested) groups)", "Batting S.R.",
		"Ünïcödé Nàme", "ΣΟΦΟΣ", "T20_Matches / Innings", "  ", "Foreign Players (🌍)",
		"Age (yrs", "a)b(c", "Points*", "İstanbul",
	}
	for _, in := range inputs {
		once := NormalizeHeader(in)
		require.Equal(t, once, NormalizeHeader(once), "input %q", in)
	}
}

func TestNormalizeHeaders(t *testing.T) {
	got := NormalizeHeaders([]string{"Team Name", "Total Spent (₹)"})
	require.Equal(t, []string{"team name", "total spent"}, got)
}
