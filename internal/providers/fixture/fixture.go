package fixture

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/preston-bernstein/auction-sheets-service/internal/providers"
)

// Default tab contents, laid out like the live auction workbook.
const (
	CatalogueCSV = `Player Name,Country,Role,Age,Base Prize (₹),Evaluation Points,Images,T20 Matches,Batting SR
Virat Kohli,India,Batter,36,"₹2,00,00,000",95,kohli.png,380,137.5
Jos Buttler,England,Wicketkeeper,34,"₹1,50,00,000",88,buttler.png,410,145.2
Rashid Khan,Afghanistan,Bowler,26,"₹1,00,00,000",90,rashid.png,430,
Yashasvi Jaiswal,India,Batter,23,"₹50,00,000",70,jaiswal.png,60,150.1
Pat Cummins,Australia,Bowler,31,"₹2,00,00,000",85,cummins.png,120,
Ruturaj Gaikwad,,Batter,28,"₹75,00,000",72,,110,135.9
`
	AuctionCSV = `🏏 Player Name,Final Bid Price (₹),Bought By,Status,Points
Virat Kohli,"₹15,00,00,000",Royal Strikers,✅ Sold,95
Jos Buttler,"₹12,50,00,000",Desert Kings,🏆 SOLD,
Rashid Khan,,,❌ Unsold,
Pat Cummins,"₹9,00,00,000",Royal Strikers,Sold,80
`
	TeamsCSV = `Team Name,Total Spent (₹),Remaining Budget (₹),Total Players,Foreign Players
Royal Strikers,"₹24,00,00,000","₹76,00,00,000",2,1
Desert Kings,"₹12,50,00,000","₹87,50,00,000",1,1
Coastal Titans,0,"₹1,00,00,00,000",0,0
`
)

// Provider serves an in-memory workbook, useful for local runs and tests.
type Provider struct {
	mu   sync.RWMutex
	tabs map[providers.Tab]string
}

// New creates a provider holding the default workbook: the catalogue at GID 0
// and the auction and team tabs by name.
func New() *Provider {
	return NewWorkbook(map[providers.Tab]string{
		providers.GID("0"):                  CatalogueCSV,
		providers.Named("Auctioneer Sheet"): AuctionCSV,
		providers.Named("Teams & Budget"):   TeamsCSV,
	})
}

// NewWorkbook creates a provider serving the given CSV bodies.
func NewWorkbook(tabs map[providers.Tab]string) *Provider {
	copied := make(map[providers.Tab]string, len(tabs))
	for tab, body := range tabs {
		copied[tab] = body
	}
	return &Provider{tabs: copied}
}

// Set replaces (or adds) a tab's CSV body.
func (p *Provider) Set(tab providers.Tab, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tabs[tab] = body
}

// Remove drops a tab so later fetches fail as if it did not exist.
func (p *Provider) Remove(tab providers.Tab) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.tabs, tab)
}

// FetchTab parses the stored CSV for tab.
func (p *Provider) FetchTab(ctx context.Context, tab providers.Tab) (providers.Table, error) {
	if err := ctx.Err(); err != nil {
		return providers.Table{}, &providers.FetchError{Tab: tab, Err: err}
	}

	p.mu.RLock()
	body, ok := p.tabs[tab]
	p.mu.RUnlock()
	if !ok {
		return providers.Table{}, &providers.FetchError{Tab: tab, StatusCode: http.StatusNotFound, Message: "tab not found"}
	}

	table, err := providers.ParseCSV(strings.NewReader(body))
	if err != nil {
		return providers.Table{}, &providers.ParseError{Tab: tab, Err: err}
	}
	return table, nil
}
