package quotes

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/types"
)

// QuoteExporter renders a quote into a downloadable document.
type QuoteExporter interface {
	Export(ctx context.Context, q *Quote, w io.Writer) error
}

// ImageStore resolves product images referenced from quote documents.
type ImageStore interface {
	ImageUrl(productId uint) (string, error)
}

// CartStore lets a quote be turned back into a shopping cart.
type CartStore interface {
	CreateCart(ctx context.Context, lines []QuoteLine) (string, error)
}

type QuoteLine struct {
	ProductId uint    `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type Quote struct {
	Id         string      `json:"id"`
	ClientId   string      `json:"clientId"`
	Lines      []QuoteLine `json:"lines"`
	Notes      string      `json:"notes,omitempty"`
	Created    time.Time   `json:"created"`
	TotalPrice float64     `json:"totalPrice"`
}

type Store struct {
	mu     sync.RWMutex
	quotes map[string]*Quote
}

func NewStore() *Store {
	return &Store{quotes: map[string]*Quote{}}
}

// Create assigns the quote an id, stamps it and totals the lines.
func (s *Store) Create(clientId string, lines []QuoteLine, notes string) (*Quote, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("quote needs at least one line")
	}
	total := 0.0
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("invalid quantity %d for product %d", l.Quantity, l.ProductId)
		}
		total += l.UnitPrice * float64(l.Quantity)
	}
	q := &Quote{
		Id:         uuid.NewString(),
		ClientId:   clientId,
		Lines:      lines,
		Notes:      notes,
		Created:    time.Now(),
		TotalPrice: total,
	}
	s.mu.Lock()
	s.quotes[q.Id] = q
	s.mu.Unlock()
	return q, nil
}

func (s *Store) Get(id string) (*Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotes[id]
	return q, ok
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quotes[id]; !ok {
		return false
	}
	delete(s.quotes, id)
	return true
}

// All returns quotes newest first.
func (s *Store) All() []*Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		result = append(result, q)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Created.After(result[j].Created)
	})
	return result
}

// LineFromProduct builds a quote line priced from the current catalog.
func LineFromProduct(p types.Product, quantity int) QuoteLine {
	return QuoteLine{
		ProductId: p.Id,
		Name:      p.Name,
		Quantity:  quantity,
		UnitPrice: p.SellingPrice,
	}
}
