package domain

import "context"

// Narrator turns a prompt into free text.
// It is the boundary to the external narrative generator; the pipeline
// never depends on what the text says, only that it can be split into lines.
type Narrator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ListingFetcher retrieves raw marketplace observations for a product.
// Implementations own query construction and network retrieval.
type ListingFetcher interface {
	FetchListings(ctx context.Context, product ProductInfo) ([]PriceObservation, error)
}

// NarratorFunc adapts a plain function to the Narrator interface
type NarratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f(ctx, prompt)
func (f NarratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
