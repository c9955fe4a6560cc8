package market

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aristath/productpulse/internal/domain"
)

// BuildQuery flattens the product metadata into a single search query.
// Attribute maps are walked in key order so the query is stable across runs.
func BuildQuery(p domain.ProductInfo) string {
	var words []string
	for _, v := range []any{
		p.ProductName,
		p.Brand,
		p.Model,
		p.Category,
		p.Attributes,
		p.Condition,
		p.MarketRegion,
		p.AdditionalContext,
		p.SearchKeywords,
	} {
		words = append(words, flatten(v)...)
	}
	return strings.Join(strings.Fields(strings.Join(words, " ")), " ")
}

func flatten(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		var words []string
		for _, item := range v {
			words = append(words, flatten(item)...)
		}
		return words
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var words []string
		for _, k := range keys {
			words = append(words, flatten(v[k])...)
		}
		return words
	default:
		return []string{fmt.Sprint(v)}
	}
}
