package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/auction-sheets-service/internal/metrics"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers/fixture"
)

const catalogueHeader = "Player Name,Country,Role,T20 Matches,Batting SR\n"

func TestContractSatisfied(t *testing.T) {
	require.True(t, AuctionContract.Satisfied([]string{"🏏 Player Name", "Final Bid Price (₹)"}))
	require.True(t, AuctionContract.Satisfied([]string{"Player Name", "Status"}))
	require.False(t, AuctionContract.Satisfied([]string{"Player Name", "Country"}), "missing any-of column")
	require.False(t, AuctionContract.Satisfied([]string{"Player Name", "Status", "T20 Matches"}), "catalogue column present")
	require.False(t, AuctionContract.Satisfied([]string{"Status", "Bought By"}), "missing required column")

	require.True(t, TeamContract.Satisfied([]string{"Team Name", "Remaining Budget (₹)"}))
	require.False(t, TeamContract.Satisfied([]string{"Team Name", "Remaining Budget", "Strike Rate"}))

	require.True(t, CatalogueContract.Satisfied([]string{"Player Name", "Country", "Role", "Age"}))
	require.False(t, CatalogueContract.Satisfied([]string{"Player Name", "Role"}))
}

func TestLocateReturnsFirstMatchingCandidate(t *testing.T) {
	src := fixture.NewWorkbook(map[providers.Tab]string{
		providers.GID("1"): catalogueHeader + "A,India,Batter,10,120\n",
		providers.GID("2"): "Player Name,Bought By,Status\nA,Royal Strikers,Sold\n",
		providers.GID("3"): "Player Name,Final Bid\nB,100\n",
	})
	loc := NewLocator(src, nil, nil)

	match, err := loc.Locate(context.Background(), AuctionContract,
		[]providers.Tab{providers.Named("Auctioneer Sheet"), providers.GID("1"), providers.GID("2"), providers.GID("3")})
	require.NoError(t, err)
	require.Equal(t, providers.GID("2"), match.Tab)
	require.Equal(t, 1, match.Table.Len())
}

func TestLocateAcceptsEmptyMatchingTab(t *testing.T) {
	src := fixture.NewWorkbook(map[providers.Tab]string{
		providers.Named("Teams & Budget"): "Team Name,Total Spent,Remaining Budget\n",
	})

	match, err := NewLocator(src, nil, nil).Locate(context.Background(), TeamContract,
		[]providers.Tab{providers.Named("Teams & Budget")})
	require.NoError(t, err)
	require.Equal(t, 0, match.Table.Len())
}

func TestLocateNoMatchingSheet(t *testing.T) {
	src := fixture.NewWorkbook(map[providers.Tab]string{
		providers.GID("0"): catalogueHeader + "A,India,Batter,10,120\n",
	})
	rec := metrics.NewRecorder()

	_, err := NewLocator(src, nil, rec).Locate(context.Background(), AuctionContract,
		[]providers.Tab{providers.GID("0"), providers.GID("7")})
	require.ErrorIs(t, err, ErrNoMatchingSheet)
	require.Equal(t, 1, rec.Dataset(DatasetAuction).LocatorMisses)
}

func TestLocateNoCandidates(t *testing.T) {
	_, err := NewLocator(fixture.NewWorkbook(nil), nil, nil).Locate(context.Background(), TeamContract, nil)
	require.ErrorIs(t, err, ErrNoMatchingSheet)
}

type failingSource struct {
	err   error
	inner providers.SheetSource
	fail  providers.Tab
}

func (s failingSource) FetchTab(ctx context.Context, tab providers.Tab) (providers.Table, error) {
	if tab == s.fail {
		return providers.Table{}, s.err
	}
	return s.inner.FetchTab(ctx, tab)
}

func TestLocateSkipsFailedCandidateInFavourOfLaterMatch(t *testing.T) {
	src := failingSource{
		err:  &providers.FetchError{Tab: providers.Named("Auctioneer Sheet"), StatusCode: 503},
		fail: providers.Named("Auctioneer Sheet"),
		inner: fixture.NewWorkbook(map[providers.Tab]string{
			providers.GID("5"): "Player Name,Final Bid\n",
		}),
	}

	match, err := NewLocator(src, nil, nil).Locate(context.Background(), AuctionContract,
		[]providers.Tab{providers.Named("Auctioneer Sheet"), providers.GID("5")})
	require.NoError(t, err)
	require.Equal(t, providers.GID("5"), match.Tab)
}

func TestLocateSurfacesFailuresWhenNothingMatched(t *testing.T) {
	src := failingSource{
		err:   &providers.FetchError{Tab: providers.Named("Teams & Budget"), Message: "received HTML page instead of CSV"},
		fail:  providers.Named("Teams & Budget"),
		inner: fixture.NewWorkbook(map[providers.Tab]string{providers.GID("0"): catalogueHeader}),
	}

	_, err := NewLocator(src, nil, nil).Locate(context.Background(), TeamContract,
		[]providers.Tab{providers.Named("Teams & Budget"), providers.GID("0"), providers.GID("9")})
	require.Error(t, err)
	require.ErrorIs(t, err, providers.ErrFetchFailed)
	require.False(t, errors.Is(err, ErrNoMatchingSheet))
}

func TestLocateStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocator(fixture.New(), nil, nil).Locate(ctx, CatalogueContract, []providers.Tab{providers.GID("0")})
	require.ErrorIs(t, err, context.Canceled)
}
