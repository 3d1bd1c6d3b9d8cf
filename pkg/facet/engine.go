package facet

import (
	"context"
	"log"
	"sync"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/common"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/resolve"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/taxonomy"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/types"
)

// Engine is the server side of the facet resolution contract. It keeps one
// inverted index per filterable dimension and answers resolution requests
// with the matching products plus the facet values still selectable.
type Engine struct {
	mu          sync.RWMutex
	registry    *taxonomy.Registry
	products    map[uint]*types.Product
	order       []uint
	category    *KeyField
	subcategory *KeyField
	brand       *KeyField
	specs       map[string]*KeyField
	queue       *common.QueueHandler[*types.Product]
}

func NewEngine(registry *taxonomy.Registry) *Engine {
	e := &Engine{
		registry:    registry,
		products:    map[uint]*types.Product{},
		order:       []uint{},
		category:    NewKeyField("category"),
		subcategory: NewKeyField("subcategory"),
		brand:       NewKeyField("brandName"),
		specs:       map[string]*KeyField{},
	}
	e.queue = common.NewQueueHandler(e.processBatch, 250)
	return e
}

func (e *Engine) processBatch(products []*types.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, product := range products {
		if product.IsDeleted() {
			e.removeLocked(product.Id)
		} else {
			e.upsertLocked(product)
		}
	}
}

// Close stops the background indexing worker.
func (e *Engine) Close() {
	e.queue.Close()
}

// HandleProduct queues a catalog change for background indexing.
func (e *Engine) HandleProduct(product *types.Product) {
	e.queue.Add(product)
}

// Upsert indexes a product synchronously, used at load time and by tests.
func (e *Engine) Upsert(product *types.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.upsertLocked(product)
}

// Remove drops a product and all its value links.
func (e *Engine) Remove(id uint) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.removeLocked(id)
}

func (e *Engine) upsertLocked(product *types.Product) {
	if existing, ok := e.products[product.Id]; ok {
		e.unlinkLocked(existing)
	} else {
		e.order = append(e.order, product.Id)
	}
	stored := *product
	e.products[product.Id] = &stored
	e.category.Add(stored.Category, stored.Id)
	e.subcategory.Add(stored.Subcategory, stored.Id)
	e.brand.Add(stored.BrandName, stored.Id)
	for key, value := range stored.Attributes {
		field, ok := e.specs[key]
		if !ok {
			field = NewKeyField(key)
			e.specs[key] = field
		}
		field.Add(value, stored.Id)
	}
}

func (e *Engine) removeLocked(id uint) {
	existing, ok := e.products[id]
	if !ok {
		return
	}
	e.unlinkLocked(existing)
	delete(e.products, id)
	for i, orderedId := range e.order {
		if orderedId == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

func (e *Engine) unlinkLocked(product *types.Product) {
	e.category.Remove(product.Category, product.Id)
	e.subcategory.Remove(product.Subcategory, product.Id)
	e.brand.Remove(product.BrandName, product.Id)
	for key, value := range product.Attributes {
		if field, ok := e.specs[key]; ok {
			field.Remove(value, product.Id)
			if field.Len() == 0 {
				delete(e.specs, key)
			}
		}
	}
}

func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.products)
}

// Resolve implements resolve.Resolver. Dimensions combine with AND, values
// inside one dimension with OR. The returned spec facets only carry keys
// belonging to subcategories actually present in the matched set.
func (e *Engine) Resolve(_ context.Context, req *resolve.Request) (*resolve.Response, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	matched := e.matchLocked(req)

	response := resolve.EmptyResponse()
	subcategoriesSeen := map[string]struct{}{}
	for _, id := range e.order {
		if matched != nil && !matched.Has(id) {
			continue
		}
		product := e.products[id]
		response.Products = append(response.Products, *product)
		subcategoriesSeen[product.Subcategory] = struct{}{}
	}

	response.Filters.Brands = e.brand.ValuesIn(matched)
	e.collectSpecFacetsLocked(matched, subcategoriesSeen, &response.Filters)
	return response, nil
}

func (e *Engine) matchLocked(req *resolve.Request) types.IdList {
	var matched types.IdList

	intersect := func(ids types.IdList) {
		if ids == nil {
			return
		}
		if matched == nil {
			matched = ids
			return
		}
		matched.Intersect(ids)
	}

	intersect(e.category.Match(req.Category))
	intersect(e.subcategory.Match(req.Subcategory))
	intersect(e.brand.Match(req.BrandName))
	for key, values := range req.Specifications {
		field, ok := e.specs[key]
		if !ok {
			// Constraint on a key no product carries matches nothing.
			log.Printf("resolve: unknown spec key %q", key)
			return types.IdList{}
		}
		intersect(field.Match(values))
	}
	return matched
}

func (e *Engine) collectSpecFacetsLocked(matched types.IdList, subcategories map[string]struct{}, filters *resolve.Filters) {
	for subcategory := range subcategories {
		for _, schemaField := range e.registry.SpecFieldsFor(subcategory) {
			if _, done := filters.Specifications[schemaField.Name]; done {
				continue
			}
			field, ok := e.specs[schemaField.Name]
			if !ok {
				continue
			}
			values := field.ValuesIn(matched)
			if len(values) > 0 {
				filters.Specifications[schemaField.Name] = values
			}
		}
	}
}
