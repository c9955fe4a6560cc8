package clientdata

import "time"

// TTL constants for cached data.
// These are added to time.Now() when storing to calculate expires_at.
const (
	// Narratives are deterministic for a given prompt; the prompt already embeds the prices
	TTLNarrative = 24 * time.Hour

	// Listings go stale quickly as sellers reprice
	TTLListings = 30 * time.Minute
)
