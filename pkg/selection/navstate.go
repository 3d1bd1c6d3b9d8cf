package selection

import (
	"net/url"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/taxonomy"
)

// Only category and subcategory live in navigation state, brand, spec and
// price filters are session-local.
const (
	navCategoryKey    = "category"
	navSubcategoryKey = "subcategory"
)

// EncodeNav serializes the bookmarkable part of a selection into URL query
// parameters.
func EncodeNav(s Selection) url.Values {
	values := url.Values{}
	for cat := range s.Categories {
		values.Set(navCategoryKey, cat)
		break
	}
	for sub := range s.Subcategories {
		values.Set(navSubcategoryKey, sub)
		break
	}
	return values
}

// DecodeNav seeds a fresh selection from navigation state. A subcategory
// implies its parent category even when the URL only carries one of the two.
func DecodeNav(values url.Values, reg *taxonomy.Registry) Selection {
	return ClearAll(NavPreserve(values), reg)
}

// NavPreserve extracts the navigation seed from URL query parameters.
func NavPreserve(values url.Values) Preserve {
	return Preserve{
		Category:    values.Get(navCategoryKey),
		Subcategory: values.Get(navSubcategoryKey),
	}
}
