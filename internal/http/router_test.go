package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/auction-sheets-service/internal/http/handlers"
	"github.com/preston-bernstein/auction-sheets-service/internal/http/middleware"
	"github.com/preston-bernstein/auction-sheets-service/internal/snapshots"
	"github.com/preston-bernstein/auction-sheets-service/internal/testutil"
)

func newTestRouter(t *testing.T, cfg RouterConfig) http.Handler {
	t.Helper()
	svc, ms := testutil.NewAuctionService(nil)
	if cfg.Handler == nil {
		cfg.Handler = handlers.NewHandler(svc, ms, nil, nil)
	}
	return NewRouter(cfg)
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newTestRouter(t, RouterConfig{})

	cases := map[string]int{
		"/health":                   http.StatusOK,
		"/ready":                    http.StatusOK,
		"/players":                  http.StatusOK,
		"/players?status=sold":      http.StatusOK,
		"/players?sort=age":         http.StatusBadRequest,
		"/players/unsold":           http.StatusOK,
		"/teams":                    http.StatusOK,
		"/teams/summary":            http.StatusOK,
		"/teams/royalstrik":         http.StatusOK,
		"/teams/royalstrik/players": http.StatusOK,
		"/teams/nobody":             http.StatusNotFound,
		"/leaderboard":              http.StatusOK,
	}

	for path, expected := range cases {
		rr := testutil.Serve(router, http.MethodGet, path, nil)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
		if rr.Header().Get("X-Request-ID") == "" {
			t.Fatalf("route %s missing request id header", path)
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(t, RouterConfig{})

	rr := testutil.Serve(router, http.MethodGet, "/does-not-exist", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	require.Equal(t, "not found", body["error"])
	require.NotEmpty(t, body["requestId"])
}

func TestRouterWrongMethodReturns405(t *testing.T) {
	router := newTestRouter(t, RouterConfig{})
	rr := testutil.Serve(router, http.MethodPost, "/leaderboard", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}

func TestRouterOptionalRoutesAbsentByDefault(t *testing.T) {
	router := newTestRouter(t, RouterConfig{})
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodPost, "/admin/cache/clear", nil), http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/snapshots", nil), http.StatusNotFound)
}

func TestRouterAdminRoutes(t *testing.T) {
	svc, _ := testutil.NewAuctionService(nil)
	router := newTestRouter(t, RouterConfig{
		Admin: handlers.NewAdminHandler(svc, nil, "secret", nil),
	})

	testutil.AssertStatus(t, testutil.Serve(router, http.MethodPost, "/admin/cache/clear", nil), http.StatusUnauthorized)

	req := httptest.NewRequest(http.MethodPost, "/admin/cache/clear", nil)
	req.Header.Set("Authorization", "Bearer secret")
	testutil.AssertStatus(t, testutil.ServeRequest(router, req), http.StatusOK)

	req = httptest.NewRequest(http.MethodPost, "/admin/snapshots/refresh", nil)
	req.Header.Set("Authorization", "Bearer secret")
	testutil.AssertStatus(t, testutil.ServeRequest(router, req), http.StatusServiceUnavailable)
}

func TestRouterSnapshotRoutes(t *testing.T) {
	writer := testutil.NewTempWriter(t, 3)
	router := newTestRouter(t, RouterConfig{
		Snapshots: handlers.NewSnapshotHandler(snapshots.NewFSStore(writer.BasePath()), nil),
	})

	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/snapshots/latest", nil), http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/snapshots/not-a-date", nil), http.StatusBadRequest)
}

func TestRouterRateLimitsAPIButNotHealth(t *testing.T) {
	router := newTestRouter(t, RouterConfig{RateLimiter: middleware.NewIPRateLimiter(0.001, 1)})

	send := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "203.0.113.9:5555"
		return testutil.ServeRequest(router, req).Code
	}
	require.Equal(t, http.StatusOK, send("/leaderboard"))
	require.Equal(t, http.StatusTooManyRequests, send("/leaderboard"))
	require.Equal(t, http.StatusOK, send("/health"))
}

func TestRouterCORSPreflight(t *testing.T) {
	router := newTestRouter(t, RouterConfig{CORSOrigins: []string{"http://localhost:5173"}})
	req := httptest.NewRequest(http.MethodOptions, "/players", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := testutil.ServeRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)
	require.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}
