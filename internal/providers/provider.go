package providers

import (
	"context"
	"fmt"
	"strings"
)

// Tab addresses a single tab of a spreadsheet, either by its numeric GID or by its title.
type Tab struct {
	GID  string
	Name string
}

// GID addresses a tab by numeric id.
func GID(id string) Tab { return Tab{GID: id} }

// Named addresses a tab by its title.
func Named(name string) Tab { return Tab{Name: name} }

// ByName reports whether the tab is addressed by title.
func (t Tab) ByName() bool { return t.Name != "" }

// String renders the tab in the same "gid:<n>" / "name:<title>" form ParseTab accepts.
func (t Tab) String() string {
	if t.ByName() {
		return "name:" + t.Name
	}
	return "gid:" + t.GID
}

// ParseTab parses "gid:<n>" or "name:<title>". A bare value is treated as a GID
// when it is all digits and as a title otherwise.
func ParseTab(spec string) (Tab, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Tab{}, fmt.Errorf("empty tab spec")
	}
	kind, value, found := strings.Cut(spec, ":")
	if found {
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(kind)) {
		case "gid":
			if !isDigits(value) {
				return Tab{}, fmt.Errorf("tab %q: gid must be numeric", spec)
			}
			return GID(value), nil
		case "name":
			if value == "" {
				return Tab{}, fmt.Errorf("tab %q: name required", spec)
			}
			return Named(value), nil
		}
	}
	if isDigits(spec) {
		return GID(spec), nil
	}
	return Named(spec), nil
}

// ParseTabs parses every spec, failing on the first invalid one.
func ParseTabs(specs []string) ([]Tab, error) {
	tabs := make([]Tab, 0, len(specs))
	for _, spec := range specs {
		tab, err := ParseTab(spec)
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, tab)
	}
	return tabs, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Table is a parsed tab: the header row and the data rows beneath it.
// Rows may be shorter or longer than Headers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (t Table) Len() int { return len(t.Rows) }

// SheetSource fetches tabs of a spreadsheet as tables.
type SheetSource interface {
	FetchTab(ctx context.Context, tab Tab) (Table, error)
}
