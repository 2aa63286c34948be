// Package quotes provides a client for the external price feed used by the
// scheduled stock-price refresh.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is the minimal quote source consumed by the refresh job. The
// interface exists so tests can substitute a mock feed.
type Client interface {
	GetQuote(ctx context.Context, ticker string) (float64, error)
}

// FeedClient fetches current prices from a JSON quote feed.
type FeedClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFeedClient creates a quote feed client for the given base URL.
// Requests time out after 10 seconds; the feed is best-effort and the caller
// treats failures as "quote unavailable".
func NewFeedClient(baseURL string) *FeedClient {
	return &FeedClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// quoteResponse is the feed's per-ticker payload.
type quoteResponse struct {
	Ticker string  `json:"ticker"`
	Price  float64 `json:"price"`
}

// GetQuote fetches the current price for one ticker.
// Returns an error for transport failures, non-200 responses, and
// non-positive prices; the caller decides whether to keep the stale quote.
func (c *FeedClient) GetQuote(ctx context.Context, ticker string) (float64, error) {
	endpoint := fmt.Sprintf("%s/quote/%s", c.baseURL, url.PathEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("quote request failed for %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quote feed returned %d for %s", resp.StatusCode, ticker)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read quote response for %s: %w", ticker, err)
	}

	var quote quoteResponse
	if err := json.Unmarshal(body, &quote); err != nil {
		return 0, fmt.Errorf("failed to parse quote response for %s: %w", ticker, err)
	}

	if quote.Price <= 0 {
		return 0, fmt.Errorf("quote feed returned non-positive price %v for %s", quote.Price, ticker)
	}

	return quote.Price, nil
}
