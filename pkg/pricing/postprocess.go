package pricing

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/selection"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/types"
)

// Derive applies price filtering and price sorting to an already resolved
// product list, filter first, then a stable sort so equally priced products
// keep the resolver's ordering. No network round trip happens here.
func Derive(products []types.Product, price selection.PriceRange, sortBy types.Sort) []types.Product {
	result := make([]types.Product, 0, len(products))
	for _, product := range products {
		if price.Min != nil && product.SellingPrice < *price.Min {
			continue
		}
		if price.Max != nil && product.SellingPrice > *price.Max {
			continue
		}
		result = append(result, product)
	}

	switch sortBy {
	case types.SortAscending:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].SellingPrice < result[j].SellingPrice
		})
	case types.SortDescending:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].SellingPrice > result[j].SellingPrice
		})
	}
	return result
}

// ParseBound converts raw price input into an optional bound. Anything that
// is not a finite number fails open and is treated as unset, a bad bound
// must never exclude the whole catalog.
func ParseBound(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}
