// Package market normalizes raw marketplace listings into price observations
// and aggregates them into the statistics consumed by the analysis stages.
package market

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/aristath/productpulse/internal/domain"
	"github.com/aristath/productpulse/pkg/formulas"
	"github.com/shopspring/decimal"
)

// nonPriceChars matches everything except digits and the decimal point
var nonPriceChars = regexp.MustCompile(`[^\d.]`)

// ParsePrice converts a raw price value to a float.
//
// Numbers are taken as-is. Strings such as "$1,099.00" are normalized by
// stripping every character that is not a digit or a decimal point before
// parsing. Empty or unparsable strings, values outside the float64 range,
// NaN and all other types yield nil.
func ParsePrice(raw any) *float64 {
	switch v := raw.(type) {
	case nil:
		return nil
	case float64:
		return finitePrice(v)
	case float32:
		return finitePrice(float64(v))
	case int:
		return finitePrice(float64(v))
	case int64:
		return finitePrice(float64(v))
	case json.Number:
		return ParsePrice(v.String())
	case string:
		cleaned := nonPriceChars.ReplaceAllString(v, "")
		if cleaned == "" {
			return nil
		}
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return nil
		}
		// Inexact is expected for most decimals; only overflow is rejected
		f, _ := d.Float64()
		return finitePrice(f)
	default:
		return nil
	}
}

func finitePrice(v float64) *float64 {
	if !formulas.IsFinite(v) {
		return nil
	}
	return domain.Float(v)
}

// RawPrice accepts a JSON number, string or null and normalizes it with ParsePrice
type RawPrice struct {
	Value *float64
}

// UnmarshalJSON implements json.Unmarshaler
func (p *RawPrice) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Value = ParsePrice(raw)
	return nil
}

// MarshalJSON implements json.Marshaler
func (p RawPrice) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Value)
}

// RawListing is a (seller, price) pair as supplied by the fetch collaborator
type RawListing struct {
	Seller string   `json:"seller"`
	Price  RawPrice `json:"price"`
}

// NormalizeListings converts raw listings to observations, preserving source order.
// Seller names are trimmed; invalid prices become nil rather than being dropped,
// so that source rank stays aligned with the original listing order.
func NormalizeListings(listings []RawListing) []domain.PriceObservation {
	observations := make([]domain.PriceObservation, 0, len(listings))
	for _, l := range listings {
		observations = append(observations, domain.PriceObservation{
			Seller: strings.TrimSpace(l.Seller),
			Price:  l.Price.Value,
		})
	}
	return observations
}
