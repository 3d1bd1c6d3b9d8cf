package taxonomy

import "sync"

type Subcategory struct {
	Id    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type Category struct {
	Id            string        `json:"id"`
	Label         string        `json:"label"`
	Value         string        `json:"value"`
	Subcategories []Subcategory `json:"subcategories"`
}

// SpecField describes one technical specification shown for a subcategory.
// Order matters, the storefront renders fields in schema order.
type SpecField struct {
	Name         string `json:"name"`
	DisplayLabel string `json:"displayLabel"`
}

// Registry holds the static category taxonomy and the per-subcategory
// specification schemas. Lookups on unknown subcategories return empty
// results, never errors, so unschematized subcategories render as plain
// pass-through filters.
type Registry struct {
	mu         sync.RWMutex
	categories []Category
	specs      map[string][]SpecField
	parents    map[string]string
}

func NewRegistry(categories []Category, specs map[string][]SpecField) *Registry {
	r := &Registry{
		specs: specs,
	}
	r.replace(categories)
	if r.specs == nil {
		r.specs = map[string][]SpecField{}
	}
	return r
}

func (r *Registry) replace(categories []Category) {
	parents := make(map[string]string)
	for _, cat := range categories {
		for _, sub := range cat.Subcategories {
			parents[sub.Value] = cat.Value
		}
	}
	r.categories = categories
	r.parents = parents
}

func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.categories
}

// SpecFieldsFor returns the ordered specification schema for a subcategory,
// or an empty slice when none is registered.
func (r *Registry) SpecFieldsFor(subcategoryValue string) []SpecField {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fields, ok := r.specs[subcategoryValue]
	if !ok {
		return []SpecField{}
	}
	return fields
}

// ParentCategoryOf resolves the owning category of a subcategory value.
func (r *Registry) ParentCategoryOf(subcategoryValue string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	parent, ok := r.parents[subcategoryValue]
	return parent, ok
}

// BelongsTo reports whether a subcategory is owned by the given category.
func (r *Registry) BelongsTo(subcategoryValue, categoryValue string) bool {
	parent, ok := r.ParentCategoryOf(subcategoryValue)
	return ok && parent == categoryValue
}

// SpecSchemas returns a copy of every registered schema, for snapshots.
func (r *Registry) SpecSchemas() map[string][]SpecField {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]SpecField, len(r.specs))
	for subcategory, fields := range r.specs {
		out[subcategory] = fields
	}
	return out
}

// UpdateCategories swaps the taxonomy, used by the admin surface.
func (r *Registry) UpdateCategories(categories []Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replace(categories)
}

// UpdateSpecFields replaces the schema of one subcategory.
func (r *Registry) UpdateSpecFields(subcategoryValue string, fields []SpecField) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(fields) == 0 {
		delete(r.specs, subcategoryValue)
		return
	}
	r.specs[subcategoryValue] = fields
}
