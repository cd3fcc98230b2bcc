package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/auction-sheets-service/internal/logging"
	"github.com/preston-bernstein/auction-sheets-service/internal/metrics"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers"
)

// ErrNoMatchingSheet is returned when every readable candidate tab failed the contract.
var ErrNoMatchingSheet = errors.New("no matching sheet")

// Contract describes the header shape a dataset's tab must have.
// All keys are compared by containment against normalized headers.
type Contract struct {
	Dataset  string
	Required []string
	AnyOf    []string
	NoneOf   []string
}

// Satisfied reports whether headers meet the contract.
func (c Contract) Satisfied(headers []string) bool {
	normalized := NormalizeHeaders(headers)
	for _, key := range c.Required {
		if !anyContains(normalized, key) {
			return false
		}
	}
	if len(c.AnyOf) > 0 {
		found := false
		for _, key := range c.AnyOf {
			if anyContains(normalized, key) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, key := range c.NoneOf {
		if anyContains(normalized, key) {
			return false
		}
	}
	return true
}

func anyContains(normalized []string, key string) bool {
	key = NormalizeHeader(key)
	for _, h := range normalized {
		if strings.Contains(h, key) {
			return true
		}
	}
	return false
}

// Columns only the player catalogue carries. A tab showing any of them is the
// catalogue, whatever else it contains.
var catalogueOnlyColumns = []string{"t20 matches", "batting sr", "strike rate"}

// Dataset names, also used as metric and log labels.
const (
	DatasetCatalogue = "catalogue"
	DatasetAuction   = "auction"
	DatasetTeams     = "teams"
)

var (
	CatalogueContract = Contract{
		Dataset:  DatasetCatalogue,
		Required: []string{"player name", "country", "role"},
	}
	AuctionContract = Contract{
		Dataset:  DatasetAuction,
		Required: []string{"player name"},
		AnyOf:    []string{"final bid", "bought by", "status"},
		NoneOf:   catalogueOnlyColumns,
	}
	TeamContract = Contract{
		Dataset:  DatasetTeams,
		Required: []string{"team name"},
		AnyOf:    []string{"total spent", "remaining budget"},
		NoneOf:   catalogueOnlyColumns,
	}
)

// Match is the tab a Locator settled on.
type Match struct {
	Tab   providers.Tab
	Table providers.Table
}

// Locator tries candidate tabs in order until one satisfies a contract.
type Locator struct {
	source  providers.SheetSource
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewLocator constructs a Locator over source.
func NewLocator(source providers.SheetSource, logger *slog.Logger, recorder *metrics.Recorder) *Locator {
	return &Locator{source: source, logger: logger, metrics: recorder}
}

// Locate returns the first candidate whose headers satisfy contract. A matching
// tab with no data rows is still a match.
//
// Candidates the upstream reports as nonexistent (400/404) are skipped quietly.
// If nothing matched and every other candidate was readable, the result wraps
// ErrNoMatchingSheet. If any candidate failed for another reason (transport,
// 5xx, HTML page, malformed CSV) those errors are returned instead, since the
// right tab may have been among them.
func (l *Locator) Locate(ctx context.Context, contract Contract, candidates []providers.Tab) (Match, error) {
	logger := logging.FromContext(ctx, l.logger)
	var failures []error

	for _, tab := range candidates {
		table, err := l.source.FetchTab(ctx, tab)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Match{}, ctxErr
			}
			if providers.IsNotFound(err) {
				logging.Debug(logger, "candidate tab missing",
					slog.String(logging.FieldDataset, contract.Dataset),
					slog.String(logging.FieldTab, tab.String()),
				)
				continue
			}
			failures = append(failures, err)
			continue
		}
		if contract.Satisfied(table.Headers) {
			logging.Debug(logger, "sheet located",
				slog.String(logging.FieldDataset, contract.Dataset),
				slog.String(logging.FieldTab, tab.String()),
				slog.Int(logging.FieldCount, table.Len()),
			)
			return Match{Tab: tab, Table: table}, nil
		}
	}

	if len(failures) > 0 {
		return Match{}, fmt.Errorf("locate %s: %w", contract.Dataset, errors.Join(failures...))
	}

	l.metrics.RecordLocatorMiss(contract.Dataset)
	logging.Warn(logger, "no candidate tab matched",
		slog.String(logging.FieldDataset, contract.Dataset),
		slog.Int(logging.FieldCount, len(candidates)),
	)
	return Match{}, fmt.Errorf("locate %s: %w", contract.Dataset, ErrNoMatchingSheet)
}
