package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockListingFetcher struct{}

func (mockListingFetcher) FetchListings(ctx context.Context, product ProductInfo) ([]PriceObservation, error) {
	return nil, nil
}

// TestListingFetcherInterface verifies the interface contract compiles
func TestListingFetcherInterface(t *testing.T) {
	var _ ListingFetcher = mockListingFetcher{}
}

func TestNarratorFunc(t *testing.T) {
	var n Narrator = NarratorFunc(func(ctx context.Context, prompt string) (string, error) {
		if prompt == "" {
			return "", errors.New("empty prompt")
		}
		return "echo: " + prompt, nil
	})

	text, err := n.Generate(context.Background(), "hello")
	assert.NoError(t, err)
	assert.Equal(t, "echo: hello", text)

	_, err = n.Generate(context.Background(), "")
	assert.Error(t, err)
}
