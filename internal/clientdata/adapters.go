package clientdata

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/aristath/productpulse/internal/domain"
	"github.com/aristath/productpulse/internal/modules/market"
	"github.com/rs/zerolog"
)

// narrativeEntry is the stored form of a narrator response
type narrativeEntry struct {
	Text      string    `msgpack:"text"`
	CreatedAt time.Time `msgpack:"created_at"`
}

// NarrativeCache stores narrator responses in the narratives table
type NarrativeCache struct {
	repo *Repository
}

// NewNarrativeCache creates a narrative cache backed by repo
func NewNarrativeCache(repo *Repository) *NarrativeCache {
	return &NarrativeCache{repo: repo}
}

// Get returns a fresh cached response
func (c *NarrativeCache) Get(key string) (string, bool, error) {
	var entry narrativeEntry
	ok, err := c.repo.GetIfFresh(TableNarratives, key, &entry)
	if err != nil || !ok {
		return "", false, err
	}
	return entry.Text, true, nil
}

// Put stores a response for ttl
func (c *NarrativeCache) Put(key, text string, ttl time.Duration) error {
	return c.repo.Store(TableNarratives, key, narrativeEntry{Text: text, CreatedAt: time.Now().UTC()}, ttl)
}

// listingEntry is the stored form of a fetched listing
type listingEntry struct {
	Seller string   `msgpack:"seller"`
	Price  *float64 `msgpack:"price"`
}

// CachedFetcher serves recent listings from the listings table and falls back
// to stale entries when the upstream fetcher fails.
type CachedFetcher struct {
	upstream domain.ListingFetcher
	repo     *Repository
	ttl      time.Duration
	log      zerolog.Logger
}

// NewCachedFetcher wraps upstream with a listings cache
func NewCachedFetcher(upstream domain.ListingFetcher, repo *Repository, ttl time.Duration, log zerolog.Logger) *CachedFetcher {
	return &CachedFetcher{
		upstream: upstream,
		repo:     repo,
		ttl:      ttl,
		log:      log.With().Str("component", "listing_cache").Logger(),
	}
}

// FetchListings implements domain.ListingFetcher
func (f *CachedFetcher) FetchListings(ctx context.Context, product domain.ProductInfo) ([]domain.PriceObservation, error) {
	key := listingKey(product)

	var cached []listingEntry
	if ok, err := f.repo.GetIfFresh(TableListings, key, &cached); err != nil {
		f.log.Warn().Err(err).Msg("Listing cache read failed")
	} else if ok {
		f.log.Debug().Str("key", key).Msg("Listing cache hit")
		return fromEntries(cached), nil
	}

	observations, err := f.upstream.FetchListings(ctx, product)
	if err != nil {
		var stale []listingEntry
		if ok, staleErr := f.repo.Get(TableListings, key, &stale); staleErr == nil && ok {
			f.log.Warn().Err(err).Msg("Fetch failed, serving stale listings")
			return fromEntries(stale), nil
		}
		return nil, err
	}

	if err := f.repo.Store(TableListings, key, toEntries(observations), f.ttl); err != nil {
		f.log.Warn().Err(err).Msg("Listing cache write failed")
	}
	return observations, nil
}

func listingKey(product domain.ProductInfo) string {
	query := strings.ToLower(market.BuildQuery(product)) + "|" + strings.ToLower(product.MarketRegion)
	sum := sha256.Sum256([]byte(query))
	return hex.EncodeToString(sum[:])
}

func toEntries(observations []domain.PriceObservation) []listingEntry {
	entries := make([]listingEntry, len(observations))
	for i, o := range observations {
		entries[i] = listingEntry{Seller: o.Seller, Price: o.Price}
	}
	return entries
}

func fromEntries(entries []listingEntry) []domain.PriceObservation {
	observations := make([]domain.PriceObservation, len(entries))
	for i, e := range entries {
		observations[i] = domain.PriceObservation{Seller: e.Seller, Price: e.Price}
	}
	return observations
}
