package catalog

import (
	"fmt"
	"log"
	"sync"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/types"
)

// Repository is the in-memory catalog of record. Every change fans out to
// the registered handlers (facet engine, messaging publisher, snapshots).
type Repository struct {
	mu       sync.RWMutex
	products map[uint]*types.Product
	order    []uint
	handlers []types.ProductHandler
}

func NewRepository(handlers ...types.ProductHandler) *Repository {
	return &Repository{
		products: map[uint]*types.Product{},
		order:    []uint{},
		handlers: handlers,
	}
}

func (r *Repository) AddHandler(handler types.ProductHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, handler)
}

func (r *Repository) Upsert(product *types.Product) error {
	if product.Id == 0 {
		return fmt.Errorf("product id is required")
	}
	r.mu.Lock()
	if _, ok := r.products[product.Id]; !ok {
		r.order = append(r.order, product.Id)
	}
	stored := *product
	r.products[product.Id] = &stored
	handlers := r.handlers
	r.mu.Unlock()

	for _, handler := range handlers {
		handler.HandleProduct(product)
	}
	return nil
}

func (r *Repository) UpsertAll(products []*types.Product) error {
	for _, product := range products {
		if err := r.Upsert(product); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) Delete(id uint) bool {
	r.mu.Lock()
	existing, ok := r.products[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	delete(r.products, id)
	for i, orderedId := range r.order {
		if orderedId == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	handlers := r.handlers
	r.mu.Unlock()

	tombstone := *existing
	tombstone.Deleted = true
	for _, handler := range handlers {
		handler.HandleProduct(&tombstone)
	}
	return true
}

func (r *Repository) Get(id uint) (*types.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, false
	}
	copied := *product
	return &copied, true
}

// All returns products in insertion order.
func (r *Repository) All() []types.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make([]types.Product, 0, len(r.order))
	for _, id := range r.order {
		ret = append(ret, *r.products[id])
	}
	return ret
}

func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products)
}

// HandleProduct lets the repository itself sit behind a messaging listener
// on consuming replicas.
func (r *Repository) HandleProduct(product *types.Product) {
	if product.IsDeleted() {
		r.Delete(product.Id)
		return
	}
	if err := r.Upsert(product); err != nil {
		log.Printf("Dropping invalid product from listener: %v", err)
	}
}
