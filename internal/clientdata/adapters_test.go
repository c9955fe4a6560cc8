package clientdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aristath/productpulse/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNarrativeCache(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cache := NewNarrativeCache(NewRepository(db))

	_, ok, err := cache.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put("k", "- Looks cheap", time.Hour))
	text, ok, err := cache.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "- Looks cheap", text)

	require.NoError(t, cache.Put("expired", "old", -time.Minute))
	_, ok, err = cache.Get("expired")
	require.NoError(t, err)
	assert.False(t, ok)
}

type stubFetcher struct {
	calls int
	obs   []domain.PriceObservation
	err   error
}

func (s *stubFetcher) FetchListings(ctx context.Context, product domain.ProductInfo) ([]domain.PriceObservation, error) {
	s.calls++
	return s.obs, s.err
}

func TestCachedFetcher(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	price := 99.0
	upstream := &stubFetcher{obs: []domain.PriceObservation{{Seller: "Amazon", Price: &price}, {Seller: "Ghost"}}}
	fetcher := NewCachedFetcher(upstream, NewRepository(db), time.Hour, zerolog.Nop())
	product := domain.ProductInfo{ProductName: "Pixel 8"}

	first, err := fetcher.FetchListings(context.Background(), product)
	require.NoError(t, err)
	second, err := fetcher.FetchListings(context.Background(), product)
	require.NoError(t, err)

	assert.Equal(t, 1, upstream.calls)
	assert.Equal(t, first, second)
	assert.Nil(t, second[1].Price)
}

func TestCachedFetcher_ServesStaleOnError(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewRepository(db)
	price := 10.0
	upstream := &stubFetcher{obs: []domain.PriceObservation{{Seller: "Walmart", Price: &price}}}
	product := domain.ProductInfo{ProductName: "Kettle"}

	_, err := NewCachedFetcher(upstream, repo, -time.Minute, zerolog.Nop()).FetchListings(context.Background(), product)
	require.NoError(t, err)

	upstream.err = errors.New("quota exceeded")
	got, err := NewCachedFetcher(upstream, repo, time.Hour, zerolog.Nop()).FetchListings(context.Background(), product)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Walmart", got[0].Seller)
	assert.Equal(t, 2, upstream.calls)
}

func TestCachedFetcher_PropagatesErrorWithoutCache(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	upstream := &stubFetcher{err: errors.New("down")}
	_, err := NewCachedFetcher(upstream, NewRepository(db), time.Hour, zerolog.Nop()).
		FetchListings(context.Background(), domain.ProductInfo{ProductName: "Kettle"})
	assert.EqualError(t, err, "down")
}
