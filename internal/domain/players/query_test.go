package players

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func roster() []Player {
	items := []Player{
		{Name: "Virat Kohli", Team: "Royal Strikers", Role: "Batter", Nation: "India", SoldPrice: 150_000_000, Points: 95},
		{Name: "Jos Buttler", Team: "Desert Kings", Role: "Wicketkeeper", Nation: "England", SoldPrice: 125_000_000, Points: 88},
		{Name: "Rashid Khan", Role: "Bowler", Nation: "Afghanistan", Points: 90},
		{Name: "ab de Villiers", Team: "Royal Strikers", Role: "Batter", Nation: "South Africa", SoldPrice: 90_000_000, Points: 80},
	}
	for i := range items {
		items[i].OriginalIndex = i
		items[i].Status = DeriveStatus(items[i].SoldPrice, items[i].Team)
	}
	return items
}

func names(items []Player) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Name)
	}
	return out
}

func TestParseQueryDefaults(t *testing.T) {
	q, err := ParseQuery("", "", "")
	require.NoError(t, err)
	require.Equal(t, Query{Sort: SortSheet}, q)
}

func TestParseQueryNormalizes(t *testing.T) {
	q, err := ParseQuery(" Sold ", "POINTS", " Kohli ")
	require.NoError(t, err)
	require.Equal(t, StatusSold, q.Status)
	require.Equal(t, SortPoints, q.Sort)
	require.Equal(t, "kohli", q.Search)
}

func TestParseQueryRejectsUnknownValues(t *testing.T) {
	_, err := ParseQuery("retained", "", "")
	require.ErrorContains(t, err, "invalid status")
	_, err = ParseQuery("", "age", "")
	require.ErrorContains(t, err, "invalid sort")
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	items := roster()
	sorted := Query{Sort: SortName}.Apply(items)
	require.Equal(t, "ab de Villiers", sorted[0].Name)
	require.Equal(t, "Virat Kohli", items[0].Name)
}

func TestApplySheetOrderUsesOriginalIndex(t *testing.T) {
	items := roster()
	items[0], items[3] = items[3], items[0]
	out := Query{Sort: SortSheet}.Apply(items)
	require.Equal(t, []string{"Virat Kohli", "Jos Buttler", "Rashid Khan", "ab de Villiers"}, names(out))
}

func TestApplyTiesKeepSheetOrder(t *testing.T) {
	items := roster()
	for i := range items {
		items[i].Points = 50
	}
	out := Query{Sort: SortPoints}.Apply(items)
	require.Equal(t, names(roster()), names(out))
}

func TestApplyFilters(t *testing.T) {
	out := Query{Sort: SortPrice, Status: StatusSold}.Apply(roster())
	require.Equal(t, []string{"Virat Kohli", "Jos Buttler", "ab de Villiers"}, names(out))

	out = Query{Sort: SortSheet, Search: "england"}.Apply(roster())
	require.Equal(t, []string{"Jos Buttler"}, names(out))

	out = Query{Sort: SortSheet, Search: "royal"}.Apply(roster())
	require.Equal(t, []string{"Virat Kohli", "ab de Villiers"}, names(out))
}
