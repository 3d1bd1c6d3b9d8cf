package selection

import (
	"maps"
	"slices"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/resolve"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/taxonomy"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/types"
)

// PriceRange bounds are optional, nil means unset.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

func (p PriceRange) IsZero() bool {
	return p.Min == nil && p.Max == nil
}

// Selection is what the shopper has currently chosen. Mutation operations
// return a new Selection so the controller can diff old against new.
type Selection struct {
	Categories    map[string]struct{}
	Subcategories map[string]struct{}
	Brands        map[string]struct{}
	SpecFilters   map[string]map[string]struct{}
	Price         PriceRange
	Sort          types.Sort
}

func New() Selection {
	return Selection{
		Categories:    map[string]struct{}{},
		Subcategories: map[string]struct{}{},
		Brands:        map[string]struct{}{},
		SpecFilters:   map[string]map[string]struct{}{},
	}
}

func (s Selection) clone() Selection {
	next := Selection{
		Categories:    maps.Clone(s.Categories),
		Subcategories: maps.Clone(s.Subcategories),
		Brands:        maps.Clone(s.Brands),
		SpecFilters:   make(map[string]map[string]struct{}, len(s.SpecFilters)),
		Price:         s.Price,
		Sort:          s.Sort,
	}
	for key, values := range s.SpecFilters {
		next.SpecFilters[key] = maps.Clone(values)
	}
	return next
}

func (s Selection) HasCategory(value string) bool {
	_, ok := s.Categories[value]
	return ok
}

func (s Selection) HasSubcategory(value string) bool {
	_, ok := s.Subcategories[value]
	return ok
}

func (s Selection) HasBrand(value string) bool {
	_, ok := s.Brands[value]
	return ok
}

func (s Selection) HasSpecValue(key, value string) bool {
	values, ok := s.SpecFilters[key]
	if !ok {
		return false
	}
	_, ok = values[value]
	return ok
}

// ToggleCategory replaces the driving category, or clears it when the same
// value is toggled again. Subcategories not owned by the new category drop.
func ToggleCategory(s Selection, value string, reg *taxonomy.Registry) Selection {
	next := s.clone()
	if s.HasCategory(value) {
		next.Categories = map[string]struct{}{}
		for sub := range next.Subcategories {
			if reg.BelongsTo(sub, value) {
				delete(next.Subcategories, sub)
			}
		}
		return next
	}
	next.Categories = map[string]struct{}{value: {}}
	for sub := range next.Subcategories {
		if !reg.BelongsTo(sub, value) {
			delete(next.Subcategories, sub)
		}
	}
	return next
}

// ToggleSubcategory replaces the driving subcategory and auto-selects its
// parent category, or clears the subcategory when toggled again.
func ToggleSubcategory(s Selection, value string, reg *taxonomy.Registry) Selection {
	next := s.clone()
	if s.HasSubcategory(value) {
		next.Subcategories = map[string]struct{}{}
		return next
	}
	next.Subcategories = map[string]struct{}{value: {}}
	if parent, ok := reg.ParentCategoryOf(value); ok {
		next.Categories = map[string]struct{}{parent: {}}
	}
	return next
}

// ToggleBrand is a plain set toggle, brands are independently multi-select.
func ToggleBrand(s Selection, value string) Selection {
	next := s.clone()
	if s.HasBrand(value) {
		delete(next.Brands, value)
	} else {
		next.Brands[value] = struct{}{}
	}
	return next
}

// ToggleSpecValue toggles one value inside a spec key, removing the key
// entirely when its last value goes.
func ToggleSpecValue(s Selection, key, value string) Selection {
	next := s.clone()
	if s.HasSpecValue(key, value) {
		delete(next.SpecFilters[key], value)
		if len(next.SpecFilters[key]) == 0 {
			delete(next.SpecFilters, key)
		}
		return next
	}
	values, ok := next.SpecFilters[key]
	if !ok {
		values = map[string]struct{}{}
		next.SpecFilters[key] = values
	}
	values[value] = struct{}{}
	return next
}

// SetPriceRange replaces the price interval. An inverted range is repaired
// by clamping the lower bound down to the upper bound.
func SetPriceRange(s Selection, min, max *float64) Selection {
	next := s.clone()
	if min != nil && max != nil && *min > *max {
		clamped := *max
		min = &clamped
	}
	next.Price = PriceRange{Min: min, Max: max}
	return next
}

func SetSort(s Selection, sort types.Sort) Selection {
	next := s.clone()
	next.Sort = sort
	return next
}

// Preserve names the navigation seed ClearAll keeps. Subcategory wins over
// category when both are set.
type Preserve struct {
	Category    string
	Subcategory string
}

// ClearAll resets every filter, then re-applies the navigation seed.
func ClearAll(preserve Preserve, reg *taxonomy.Registry) Selection {
	next := New()
	if preserve.Subcategory != "" {
		next.Subcategories[preserve.Subcategory] = struct{}{}
		if parent, ok := reg.ParentCategoryOf(preserve.Subcategory); ok {
			next.Categories[parent] = struct{}{}
		} else if preserve.Category != "" {
			next.Categories[preserve.Category] = struct{}{}
		}
		return next
	}
	if preserve.Category != "" {
		next.Categories[preserve.Category] = struct{}{}
	}
	return next
}

func Equal(a, b Selection) bool {
	if !maps.Equal(a.Categories, b.Categories) ||
		!maps.Equal(a.Subcategories, b.Subcategories) ||
		!maps.Equal(a.Brands, b.Brands) {
		return false
	}
	if len(a.SpecFilters) != len(b.SpecFilters) {
		return false
	}
	for key, values := range a.SpecFilters {
		other, ok := b.SpecFilters[key]
		if !ok || !maps.Equal(values, other) {
			return false
		}
	}
	return floatEqual(a.Price.Min, b.Price.Min) &&
		floatEqual(a.Price.Max, b.Price.Max) &&
		a.Sort == b.Sort
}

func floatEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// TriggersResolution reports whether the change between two selections
// requires a new facet resolution. Price and sort are post-processing only.
func TriggersResolution(old, next Selection) bool {
	if maps.Equal(old.Categories, next.Categories) &&
		maps.Equal(old.Subcategories, next.Subcategories) &&
		maps.Equal(old.Brands, next.Brands) &&
		specsEqual(old.SpecFilters, next.SpecFilters) {
		return false
	}
	return true
}

func specsEqual(a, b map[string]map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for key, values := range a {
		other, ok := b[key]
		if !ok || !maps.Equal(values, other) {
			return false
		}
	}
	return true
}

// Request builds the resolution payload. Values are emitted sorted so the
// request is deterministic, which keeps response caching effective.
func (s Selection) Request() *resolve.Request {
	req := resolve.NewRequest()
	req.Category = sortedKeys(s.Categories)
	req.Subcategory = sortedKeys(s.Subcategories)
	req.BrandName = sortedKeys(s.Brands)
	for key, values := range s.SpecFilters {
		req.Specifications[key] = sortedKeys(values)
	}
	return req
}

func sortedKeys(set map[string]struct{}) []string {
	keys := slices.Collect(maps.Keys(set))
	if keys == nil {
		keys = []string{}
	}
	slices.Sort(keys)
	return keys
}
