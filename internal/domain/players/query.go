package players

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Sort orders accepted by Query.
const (
	SortSheet  = "sheet"
	SortName   = "name"
	SortPrice  = "price"
	SortPoints = "points"
)

// Query filters and orders a player list.
type Query struct {
	Status Status
	Sort   string
	Search string
}

// ParseQuery validates raw status, sort and search values. Blank values keep
// the defaults: every status, sheet order, no search.
func ParseQuery(status, sort, search string) (Query, error) {
	q := Query{Sort: SortSheet}

	switch status = strings.ToLower(strings.TrimSpace(status)); status {
	case "":
	case string(StatusSold), string(StatusUnsold):
		q.Status = Status(status)
	default:
		return Query{}, fmt.Errorf("invalid status %q (expected sold or unsold)", status)
	}

	switch sort = strings.ToLower(strings.TrimSpace(sort)); sort {
	case "":
	case SortSheet, SortName, SortPrice, SortPoints:
		q.Sort = sort
	default:
		return Query{}, fmt.Errorf("invalid sort %q (expected sheet, name, price or points)", sort)
	}

	q.Search = cases.Fold().String(strings.TrimSpace(search))
	return q, nil
}

// Apply filters then sorts a copy of items. Sorting is stable on sheet order.
func (q Query) Apply(items []Player) []Player {
	fold := cases.Fold()
	out := make([]Player, 0, len(items))
	for _, p := range items {
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if q.Search != "" && !matchesSearch(fold, p, q.Search) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b Player) int {
		switch q.Sort {
		case SortName:
			return cmp.Compare(fold.String(a.Name), fold.String(b.Name))
		case SortPrice:
			return cmp.Compare(b.SoldPrice, a.SoldPrice)
		case SortPoints:
			return cmp.Compare(b.Points, a.Points)
		default:
			return cmp.Compare(a.OriginalIndex, b.OriginalIndex)
		}
	})
	return out
}

func matchesSearch(fold cases.Caser, p Player, needle string) bool {
	for _, field := range []string{p.Name, p.Role, p.Nation, p.Team} {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}
