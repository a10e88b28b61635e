// Package feed provides the Polymarket Gamma API market data client.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/sirclawson/polymarket-cli/internal/errors"
	"github.com/sirclawson/polymarket-cli/internal/logging"
	"github.com/sirclawson/polymarket-cli/internal/models"
)

// DefaultBaseURL is the public Gamma API endpoint.
const DefaultBaseURL = "https://gamma-api.polymarket.com"

// DefaultTimeout bounds each feed request.
const DefaultTimeout = 15 * time.Second

// ListOptions controls a market listing query.
type ListOptions struct {
	Limit      int
	Order      string // e.g. "volume24hr"
	Ascending  bool
	ActiveOnly bool
	Closed     bool
}

// DefaultListOptions returns the standard listing query: active
// markets ordered by 24h volume, descending.
func DefaultListOptions(limit int) ListOptions {
	return ListOptions{
		Limit:      limit,
		Order:      "volume24hr",
		Ascending:  false,
		ActiveOnly: true,
		Closed:     false,
	}
}

// MarketFeed defines the market data capability consumed by the
// scanner and the ledger.
type MarketFeed interface {
	ListMarkets(ctx context.Context, opts ListOptions) ([]models.Market, error)
	GetMarket(ctx context.Context, slug string) (*models.Market, error)
}

// Client implements MarketFeed against the Gamma REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// ClientConfig holds feed client configuration.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// NewClient creates a new Gamma API client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     cfg.Logger,
	}
}

// ListMarkets fetches markets matching the given listing options.
func (c *Client) ListMarkets(ctx context.Context, opts ListOptions) ([]models.Market, error) {
	params := url.Values{}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Order != "" {
		params.Set("order", opts.Order)
	}
	params.Set("ascending", strconv.FormatBool(opts.Ascending))
	params.Set("active", strconv.FormatBool(opts.ActiveOnly))
	params.Set("closed", strconv.FormatBool(opts.Closed))

	records, err := c.fetchMarkets(ctx, params, "")
	if err != nil {
		return nil, err
	}

	markets := make([]models.Market, 0, len(records))
	for _, r := range records {
		markets = append(markets, r.toMarket())
	}
	return markets, nil
}

// GetMarket fetches a single market by slug. Returns
// ErrMarketNotFound when the feed yields no record.
func (c *Client) GetMarket(ctx context.Context, slug string) (*models.Market, error) {
	params := url.Values{}
	params.Set("slug", slug)
	params.Set("limit", "1")

	records, err := c.fetchMarkets(ctx, params, slug)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.NewFeedError("/markets", slug, http.StatusOK, apperrors.ErrMarketNotFound)
	}

	m := records[0].toMarket()
	return &m, nil
}

func (c *Client) fetchMarkets(ctx context.Context, params url.Values, slug string) ([]marketRecord, error) {
	endpoint := c.baseURL + "/markets"
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, apperrors.NewFeedError("/markets", slug, 0, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	logging.LogFeedCall(c.logger, "/markets", time.Since(start), err)
	if err != nil {
		return nil, apperrors.NewFeedError("/markets", slug, 0,
			fmt.Errorf("%w: %v", apperrors.ErrNetworkFailure, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewFeedError("/markets", slug, resp.StatusCode,
			fmt.Errorf("%w: unexpected status %d", apperrors.ErrNetworkFailure, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewFeedError("/markets", slug, resp.StatusCode,
			fmt.Errorf("%w: %v", apperrors.ErrNetworkFailure, err))
	}

	var records []marketRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, apperrors.NewFeedError("/markets", slug, resp.StatusCode,
			fmt.Errorf("decoding response: %w", err))
	}

	return records, nil
}
