package gsheets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/auction-sheets-service/internal/logging"
	"github.com/preston-bernstein/auction-sheets-service/internal/metrics"
	"github.com/preston-bernstein/auction-sheets-service/internal/providers"
)

// Config controls how the client reaches the public CSV export endpoints.
type Config struct {
	BaseURL    string
	SheetID    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// Client fetches tabs of a publicly shared Google spreadsheet as CSV.
type Client struct {
	baseURL    string
	sheetID    string
	httpClient httpDoer
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		sheetID:    strings.TrimSpace(cfg.SheetID),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
}

// FetchTab downloads and parses a tab. Tabs addressed by GID fall back once to
// the gviz endpoint when the export endpoint answers with a non-2xx status.
func (c *Client) FetchTab(ctx context.Context, tab providers.Tab) (providers.Table, error) {
	if c.sheetID == "" {
		return providers.Table{}, &providers.FetchError{Tab: tab, Message: "sheet id not configured", Err: providers.ErrProviderUnavailable}
	}

	var (
		body []byte
		err  error
	)
	if tab.ByName() {
		body, err = c.get(ctx, tab, c.namedURL(tab.Name))
	} else {
		body, err = c.get(ctx, tab, c.exportURL(tab.GID))
		if fetchErr, ok := providers.AsFetchError(err); ok && fetchErr.StatusCode != 0 {
			logging.Warn(logging.FromContext(ctx, c.logger), "export endpoint failed, trying backup",
				slog.String(logging.FieldTab, tab.String()),
				slog.Int(logging.FieldStatusCode, fetchErr.StatusCode),
			)
			c.metrics.RecordFallback(tab.String())
			body, err = c.get(ctx, tab, c.backupURL(tab.GID))
		}
	}
	if err != nil {
		return providers.Table{}, err
	}

	if looksLikeHTML(body) {
		msg := "received HTML page instead of CSV"
		if title := pageTitle(body); title != "" {
			msg = fmt.Sprintf("%s (%s)", msg, title)
		}
		return providers.Table{}, &providers.FetchError{Tab: tab, Message: msg}
	}

	table, err := providers.ParseCSV(bytes.NewReader(body))
	if err != nil {
		return providers.Table{}, &providers.ParseError{Tab: tab, Err: err}
	}
	return table, nil
}

func (c *Client) get(ctx context.Context, tab providers.Tab, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &providers.FetchError{Tab: tab, URL: target, Err: err}
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &providers.FetchError{Tab: tab, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyBytes))
		msg := "unexpected status"
		if !looksLikeHTML(snippet) {
			if s := strings.TrimSpace(string(snippet)); s != "" {
				msg = fmt.Sprintf("unexpected status: %s", s)
			}
		}
		return nil, &providers.FetchError{Tab: tab, URL: target, StatusCode: resp.StatusCode, Message: msg}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &providers.FetchError{Tab: tab, URL: target, Err: err}
	}
	if len(body) > maxBodyBytes {
		return nil, &providers.FetchError{Tab: tab, URL: target, Message: "response exceeds size limit"}
	}
	return body, nil
}

func (c *Client) exportURL(gid string) string {
	return fmt.Sprintf("%s/%s/export?format=csv&gid=%s", c.baseURL, url.PathEscape(c.sheetID), encodeComponent(gid))
}

func (c *Client) backupURL(gid string) string {
	return c.gvizURL("gid", gid)
}

func (c *Client) namedURL(name string) string {
	return c.gvizURL("sheet", name)
}

func (c *Client) gvizURL(key, value string) string {
	return fmt.Sprintf("%s/%s/gviz/tq?tqx=out:csv&%s=%s", c.baseURL, url.PathEscape(c.sheetID), key, encodeComponent(value))
}

// encodeComponent escapes a query value with %20 for spaces, which gviz expects.
func encodeComponent(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
