// Package serpapi fetches marketplace listings from the SerpAPI Google Shopping engine.
package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/productpulse/internal/domain"
	"github.com/aristath/productpulse/internal/modules/market"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the SerpAPI search endpoint
const DefaultBaseURL = "https://serpapi.com/search"

// DefaultResultLimit caps the number of shopping results requested
const DefaultResultLimit = 5

// ErrMissingAPIKey is returned when the client has no API key
var ErrMissingAPIKey = errors.New("serpapi: missing API key")

// Client implements domain.ListingFetcher over SerpAPI
type Client struct {
	baseURL string
	apiKey  string
	limit   int
	client  *http.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewClient creates a client; baseURL defaults to DefaultBaseURL
func NewClient(apiKey, baseURL string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		limit:   DefaultResultLimit,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		log:     log.With().Str("client", "serpapi").Logger(),
	}
}

// FetchListings searches Google Shopping for the product and returns the
// parsed observations in result order.
func (c *Client) FetchListings(ctx context.Context, product domain.ProductInfo) ([]domain.PriceObservation, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	query := market.BuildQuery(product)
	if query == "" {
		return nil, fmt.Errorf("serpapi: empty search query")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("engine", "google_shopping")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("hl", "en")
	params.Set("num", strconv.Itoa(c.limit))
	if product.MarketRegion != "" {
		params.Set("gl", strings.ToLower(product.MarketRegion))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("serpapi: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		market.ShoppingResponse
		Error string `json:"error,omitempty"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("serpapi: decode response: %w", err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("serpapi error: %s", payload.Error)
	}

	observations := market.ParseShoppingResults(payload.ShoppingResponse)
	c.log.Info().
		Str("query", query).
		Int("results", len(payload.ShoppingResults)).
		Int("observations", len(observations)).
		Msg("Fetched shopping listings")

	return observations, nil
}
