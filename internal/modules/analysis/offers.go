package analysis

import (
	"errors"
	"math"
	"strings"

	"github.com/aristath/productpulse/internal/domain"
	"github.com/aristath/productpulse/pkg/formulas"
)

// Offer scoring weights
const (
	WeightPriceScore       = 0.45
	WeightSellerConfidence = 0.35
	WeightRankScore        = 0.20

	// OverpricedRatio drops offers above this multiple of the average
	OverpricedRatio = 1.3
)

// ErrNoValidOffer is returned when no observation survives filtering
var ErrNoValidOffer = errors.New("no valid offer")

// SellerRegistry holds the seller allow-lists used for seller confidence.
// Names are matched as lowercase substrings of the seller name.
type SellerRegistry struct {
	Trusted      []string
	Refurbishers []string
}

// DefaultSellerRegistry returns the built-in allow-lists
func DefaultSellerRegistry() SellerRegistry {
	return SellerRegistry{
		Trusted:      []string{"amazon", "walmart", "bestbuy", "flipkart"},
		Refurbishers: []string{"reebelo", "cashify", "backmarket"},
	}
}

// SellerReputation carries optional external reputation data for a seller
type SellerReputation struct {
	Rating  *float64
	Reviews *int
}

// Confidence scores a seller in [0, 1]: 0.9 trusted, 0.7 refurbisher, 0.5 otherwise,
// plus 0.1 each for a rating of at least 4.5 and at least 1000 reviews.
func (r SellerRegistry) Confidence(seller string, rep SellerReputation) float64 {
	name := strings.ToLower(seller)

	score := 0.5
	switch {
	case containsAny(name, r.Trusted):
		score = 0.9
	case containsAny(name, r.Refurbishers):
		score = 0.7
	}

	if rep.Rating != nil && *rep.Rating >= 4.5 {
		score += 0.1
	}
	if rep.Reviews != nil && *rep.Reviews >= 1000 {
		score += 0.1
	}

	return math.Min(score, 1.0)
}

func containsAny(name string, candidates []string) bool {
	for _, c := range candidates {
		if c != "" && strings.Contains(name, c) {
			return true
		}
	}
	return false
}

// RankScore favours listings near the top of the source results.
// A rank of zero means unranked.
func RankScore(rank int) float64 {
	if rank <= 0 {
		return 0.4
	}
	return math.Max(1-float64(rank-1)*0.1, 0.2)
}

// PriceScore is 1 at or below the lowest price, 0.5 at or above the average
// and linear in between.
func PriceScore(price float64, lowest, average *float64) float64 {
	if lowest != nil && price <= *lowest {
		return 1.0
	}
	if average == nil || lowest == nil || price >= *average {
		return 0.5
	}
	score := formulas.Round(1-(price-*lowest)/(*average-*lowest)*0.5, 3)
	if !formulas.IsFinite(score) {
		return 0.5
	}
	return score
}

// OfferRanker selects the best offer from ordered observations
type OfferRanker struct {
	sellers SellerRegistry
}

// NewOfferRanker creates a ranker using the given seller allow-lists
func NewOfferRanker(sellers SellerRegistry) *OfferRanker {
	return &OfferRanker{sellers: sellers}
}

// SelectBestOffer scores every surviving observation and returns the highest.
// Source rank is the 1-based position in observations. Ties keep the earliest offer.
func (r *OfferRanker) SelectBestOffer(observations []domain.PriceObservation, average *float64) (*BestOffer, error) {
	lowest := lowestPrice(observations)

	var best *BestOffer
	bestScore := -1.0

	for i, o := range observations {
		rank := i + 1
		if !usable(o.Price) || strings.TrimSpace(o.Seller) == "" {
			continue
		}
		price := *o.Price
		if usable(average) && price > *average*OverpricedRatio {
			continue
		}

		sellerConfidence := r.sellers.Confidence(o.Seller, SellerReputation{})
		score := WeightPriceScore*PriceScore(price, lowest, average) +
			WeightSellerConfidence*sellerConfidence +
			WeightRankScore*RankScore(rank)

		if score > bestScore {
			bestScore = score
			best = &BestOffer{
				Seller:           o.Seller,
				Price:            price,
				Condition:        conditionFor(o.Seller),
				SellerConfidence: formulas.Round(sellerConfidence, 2),
				SourceRank:       rank,
				Score:            formulas.Round(score, 4),
			}
		}
	}

	if best == nil {
		return nil, ErrNoValidOffer
	}
	return best, nil
}

func lowestPrice(observations []domain.PriceObservation) *float64 {
	var lowest *float64
	for _, o := range observations {
		if !usable(o.Price) {
			continue
		}
		if lowest == nil || *o.Price < *lowest {
			lowest = domain.Float(*o.Price)
		}
	}
	return lowest
}

func conditionFor(seller string) Condition {
	if strings.Contains(strings.ToLower(seller), "refurb") {
		return ConditionRefurbished
	}
	return ConditionUnknown
}
