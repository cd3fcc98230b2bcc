package gsheets

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/preston-bernstein/auction-sheets-service/internal/metrics"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers"
)

func newTestClient(rt http.RoundTripper, rec *metrics.Recorder) *Client {
	return NewClient(Config{
		BaseURL:    "http://sheets.example.com/d/",
		SheetID:    "sheet-1",
		HTTPClient: &http.Client{Transport: rt},
		Metrics:    rec,
	})
}

func textResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestFetchTabByGIDUsesExportEndpoint(t *testing.T) {
	var requested []string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		requested = append(requested, req.URL.String())
		return textResponse(http.StatusOK, "Player Name,Country,Role\nVirat Kohli,India,Batter\n"), nil
	})

	table, err := newTestClient(rt, nil).FetchTab(context.Background(), providers.GID("0"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(requested) != 1 {
		t.Fatalf("expected a single request, got %v", requested)
	}
	if requested[0] != "http://sheets.example.com/d/sheet-1/export?format=csv&gid=0" {
		t.Fatalf("unexpected export url %s", requested[0])
	}
	if table.Len() != 1 || table.Rows[0][0] != "Virat Kohli" {
		t.Fatalf("unexpected table %+v", table)
	}
}

func TestFetchTabByNameUsesGvizEndpoint(t *testing.T) {
	var requested string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		requested = req.URL.String()
		if got := req.URL.Query().Get("sheet"); got != "Teams & Budget" {
			t.Fatalf("expected decoded sheet name, got %q", got)
		}
		return textResponse(http.StatusOK, "Team Name,Total Spent\n"), nil
	})

	if _, err := newTestClient(rt, nil).FetchTab(context.Background(), providers.Named("Teams & Budget")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := "http://sheets.example.com/d/sheet-1/gviz/tq?tqx=out:csv&sheet=Teams%20%26%20Budget"
	if requested != want {
		t.Fatalf("expected %s, got %s", want, requested)
	}
}

func TestFetchTabFallsBackToBackupOnStatus(t *testing.T) {
	var paths []string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		paths = append(paths, req.URL.Path)
		if strings.HasSuffix(req.URL.Path, "/export") {
			return textResponse(http.StatusBadRequest, "bad gid"), nil
		}
		if got := req.URL.Query().Get("gid"); got != "5" {
			t.Fatalf("expected gid on backup url, got %q", got)
		}
		return textResponse(http.StatusOK, "Player Name,Final Bid Price\n"), nil
	})
	rec := metrics.NewRecorder()

	table, err := newTestClient(rt, rec).FetchTab(context.Background(), providers.GID("5"))
	if err != nil {
		t.Fatalf("expected backup to succeed, got %v", err)
	}
	if len(paths) != 2 || paths[1] != "/d/sheet-1/gviz/tq" {
		t.Fatalf("expected export then gviz, got %v", paths)
	}
	if len(table.Headers) != 2 {
		t.Fatalf("expected headers from backup, got %+v", table)
	}
	if got := rec.Tab("gid:5").Fallbacks; got != 1 {
		t.Fatalf("expected fallback recorded, got %d", got)
	}
}

func TestFetchTabByNameDoesNotFallBack(t *testing.T) {
	calls := 0
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return textResponse(http.StatusNotFound, ""), nil
	})

	_, err := newTestClient(rt, nil).FetchTab(context.Background(), providers.Named("Auctioneer Sheet"))
	if !errors.Is(err, providers.ErrFetchFailed) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected no backup attempt for named tab, got %d calls", calls)
	}
	fe, _ := providers.AsFetchError(err)
	if fe.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404 on error, got %d", fe.StatusCode)
	}
}

func TestFetchTabTransportErrorSkipsBackup(t *testing.T) {
	calls := 0
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return nil, errors.New("dial tcp: connection refused")
	})

	_, err := newTestClient(rt, nil).FetchTab(context.Background(), providers.GID("0"))
	if !errors.Is(err, providers.ErrFetchFailed) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt on transport error, got %d", calls)
	}
}

func TestFetchTabRejectsHTMLPage(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return textResponse(http.StatusOK, "\n  <!DOCTYPE html><html><head><title>Sign in - Google Accounts</title></head><body></body></html>"), nil
	})

	_, err := newTestClient(rt, nil).FetchTab(context.Background(), providers.GID("0"))
	if !errors.Is(err, providers.ErrFetchFailed) {
		t.Fatalf("expected HTML to be a fetch failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "Sign in - Google Accounts") {
		t.Fatalf("expected page title in error, got %q", err.Error())
	}
}

func TestFetchTabMalformedCSVIsParseError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return textResponse(http.StatusOK, "Player Name,Country\n\"Virat,India\n"), nil
	})

	_, err := newTestClient(rt, nil).FetchTab(context.Background(), providers.GID("0"))
	if !errors.Is(err, providers.ErrParseFailed) {
		t.Fatalf("expected parse failure, got %v", err)
	}
}

func TestFetchTabRejectsOversizedBody(t *testing.T) {
	calls := 0
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		header := strings.NewReader("Player Name,Country,Role\n")
		rows := io.LimitReader(&rowReader{}, maxBodyBytes)
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(io.MultiReader(header, rows)),
			Header:     make(http.Header),
		}, nil
	})

	table, err := newTestClient(rt, nil).FetchTab(context.Background(), providers.GID("0"))
	if !errors.Is(err, providers.ErrFetchFailed) {
		t.Fatalf("expected fetch failure for oversized body, got %v (rows=%d)", err, table.Len())
	}
	if !strings.Contains(err.Error(), "size limit") {
		t.Fatalf("expected size limit message, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected no backup request for oversized body, got %d calls", calls)
	}
}

func TestFetchTabAcceptsBodyAtLimit(t *testing.T) {
	header := "Player Name,Country,Role\n"
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		rows := io.LimitReader(&rowReader{}, int64(maxBodyBytes-len(header)))
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(io.MultiReader(strings.NewReader(header), rows)),
			Header:     make(http.Header),
		}, nil
	})

	_, err := newTestClient(rt, nil).FetchTab(context.Background(), providers.GID("0"))
	if errors.Is(err, providers.ErrFetchFailed) {
		t.Fatalf("expected body at the limit to be read, got %v", err)
	}
}

// rowReader streams an endless run of identical CSV rows.
type rowReader struct{ off int }

func (r *rowReader) Read(p []byte) (int, error) {
	const row = "Player,India,Batter\n"
	for i := range p {
		p[i] = row[r.off%len(row)]
		r.off++
	}
	return len(p), nil
}

func TestFetchTabWithoutSheetID(t *testing.T) {
	client := NewClient(Config{})
	_, err := client.FetchTab(context.Background(), providers.GID("0"))
	if !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestFetchTabHonoursCancelledContext(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, req.Context().Err()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(rt, nil).FetchTab(ctx, providers.GID("0"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation to surface, got %v", err)
	}
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
