package sheets

import "strings"

// Column binds a logical field to the header keys that may spell it.
// Keys are matched against normalized headers: an exact match on any key wins,
// otherwise the first header (in sheet order) containing a key is used.
// WholeWord restricts containment to whole words so "age" does not match "images".
type Column struct {
	Field     string
	Keys      []string
	WholeWord bool
}

// Schema is an ordered set of column bindings for one dataset.
type Schema []Column

// Binding maps a schema's fields to column positions in a particular table.
type Binding struct {
	index map[string]int
}

// Bind resolves each column against headers. Fields with no matching header are absent.
func (s Schema) Bind(headers []string) Binding {
	normalized := NormalizeHeaders(headers)
	b := Binding{index: make(map[string]int, len(s))}
	for _, col := range s {
		if idx := findColumn(normalized, col.Keys, col.WholeWord); idx >= 0 {
			b.index[col.Field] = idx
		}
	}
	return b
}

// Has reports whether field resolved to a column.
func (b Binding) Has(field string) bool {
	_, ok := b.index[field]
	return ok
}

// Get returns the trimmed cell for field in row, or "" when the field is
// unbound or the row is too short.
func (b Binding) Get(row []string, field string) string {
	idx, ok := b.index[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func findColumn(normalized []string, keys []string, wholeWord bool) int {
	for _, key := range keys {
		key = NormalizeHeader(key)
		for i, h := range normalized {
			if h == key {
				return i
			}
		}
	}
	for _, key := range keys {
		key = NormalizeHeader(key)
		if key == "" {
			continue
		}
		for i, h := range normalized {
			if wholeWord {
				if containsWords(h, key) {
					return i
				}
			} else if strings.Contains(h, key) {
				return i
			}
		}
	}
	return -1
}

// containsWords reports whether the word sequence key appears in h on word boundaries.
func containsWords(h, key string) bool {
	return strings.Contains(" "+h+" ", " "+key+" ")
}

// Field names shared by the reconciliation schemas.
const (
	FieldPlayerName       = "player_name"
	FieldCountry          = "country"
	FieldRole             = "role"
	FieldAge              = "age"
	FieldBasePrice        = "base_price"
	FieldEvaluationPoints = "evaluation_points"
	FieldImages           = "images"
	FieldT20Matches       = "t20_matches"

	FieldFinalBid = "final_bid"
	FieldBoughtBy = "bought_by"
	FieldStatus   = "status"
	FieldPoints   = "points"

	FieldTeamName        = "team_name"
	FieldTotalSpent      = "total_spent"
	FieldRemainingBudget = "remaining_budget"
	FieldTotalPlayers    = "total_players"
	FieldForeignPlayers  = "foreign_players"
)

// CatalogueSchema maps the player catalogue tab.
var CatalogueSchema = Schema{
	{Field: FieldPlayerName, Keys: []string{"player name", "player", "name"}},
	{Field: FieldCountry, Keys: []string{"country", "nation", "nationality"}},
	{Field: FieldRole, Keys: []string{"role", "playing role"}},
	{Field: FieldAge, Keys: []string{"age"}, WholeWord: true},
	{Field: FieldBasePrice, Keys: []string{"base price", "base prize"}},
	{Field: FieldEvaluationPoints, Keys: []string{"evaluation points", "evaluation"}},
	{Field: FieldImages, Keys: []string{"images", "image"}},
	{Field: FieldT20Matches, Keys: []string{"t20 matches"}},
}

// AuctionSchema maps the auction results tab.
var AuctionSchema = Schema{
	{Field: FieldPlayerName, Keys: []string{"player name", "player"}},
	{Field: FieldFinalBid, Keys: []string{"final bid price", "final bid", "sold price", "sold for"}},
	{Field: FieldBoughtBy, Keys: []string{"bought by", "sold to", "buyer"}},
	{Field: FieldStatus, Keys: []string{"status"}, WholeWord: true},
	{Field: FieldPoints, Keys: []string{"points"}, WholeWord: true},
}

// TeamSchema maps the team budget tab.
var TeamSchema = Schema{
	{Field: FieldTeamName, Keys: []string{"team name", "team"}},
	{Field: FieldTotalSpent, Keys: []string{"total spent", "spent"}},
	{Field: FieldRemainingBudget, Keys: []string{"remaining budget", "remaining", "funds"}},
	{Field: FieldTotalPlayers, Keys: []string{"total players", "total player", "players bought"}},
	{Field: FieldForeignPlayers, Keys: []string{"foreign players", "overseas players", "foreign", "overseas"}},
}
