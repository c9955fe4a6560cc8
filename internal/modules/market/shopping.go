package market

import (
	"strings"

	"github.com/aristath/productpulse/internal/domain"
)

// UnknownSeller names listings whose source could not be determined
const UnknownSeller = "Unknown Seller"

// ShoppingResult is one entry of a Google Shopping style search response
type ShoppingResult struct {
	Title             string `json:"title,omitempty"`
	Source            string `json:"source,omitempty"`
	Seller            string `json:"seller,omitempty"`
	ExtractedPrice    any    `json:"extracted_price,omitempty"`
	Price             any    `json:"price,omitempty"`
	ExtractedOldPrice any    `json:"extracted_old_price,omitempty"`
	Link              string `json:"link,omitempty"`
}

// ShoppingResponse is the subset of the search payload the parser reads
type ShoppingResponse struct {
	ShoppingResults []ShoppingResult `json:"shopping_results"`
}

// ParseShoppingResults maps search results to observations.
// The seller falls back from source to seller to UnknownSeller; the price falls
// back from extracted_price to price to extracted_old_price. Results without a
// parsable price are skipped.
func ParseShoppingResults(resp ShoppingResponse) []domain.PriceObservation {
	observations := make([]domain.PriceObservation, 0, len(resp.ShoppingResults))
	for _, item := range resp.ShoppingResults {
		seller := firstNonEmpty(item.Source, item.Seller, UnknownSeller)

		price := ParsePrice(firstPresent(item.ExtractedPrice, item.Price, item.ExtractedOldPrice))
		if price == nil {
			continue
		}

		observations = append(observations, domain.PriceObservation{
			Seller: seller,
			Price:  price,
		})
	}
	return observations
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// firstPresent returns the first value that is neither nil, zero nor an empty string
func firstPresent(values ...any) any {
	for _, v := range values {
		switch t := v.(type) {
		case nil:
			continue
		case string:
			if strings.TrimSpace(t) == "" {
				continue
			}
		case float64:
			if t == 0 {
				continue
			}
		}
		return v
	}
	return nil
}
