package resolve

import (
	"context"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/types"
)

// Request is the wire form of a facet resolution. Empty slices and an empty
// specifications map mean "no constraint on this dimension". Price and sort
// never travel here, they are applied client-side after resolution.
type Request struct {
	Category       []string            `json:"category"`
	Subcategory    []string            `json:"subcategory"`
	BrandName      []string            `json:"brandName"`
	Specifications map[string][]string `json:"specifications"`
}

func NewRequest() *Request {
	return &Request{
		Category:       []string{},
		Subcategory:    []string{},
		BrandName:      []string{},
		Specifications: map[string][]string{},
	}
}

func (r *Request) IsEmpty() bool {
	return len(r.Category) == 0 && len(r.Subcategory) == 0 &&
		len(r.BrandName) == 0 && len(r.Specifications) == 0
}

// Filters carries the still-selectable facet values for the matched set.
type Filters struct {
	Brands         []string            `json:"brands"`
	Specifications map[string][]string `json:"specifications"`
}

func EmptyFilters() Filters {
	return Filters{
		Brands:         []string{},
		Specifications: map[string][]string{},
	}
}

type Response struct {
	Products []types.Product `json:"products"`
	Filters  Filters         `json:"filters"`
}

// EmptyResponse is what the controller substitutes on any transport or
// service failure, browsing degrades to "no results" instead of crashing.
func EmptyResponse() *Response {
	return &Response{
		Products: []types.Product{},
		Filters:  EmptyFilters(),
	}
}

type Resolver interface {
	Resolve(ctx context.Context, req *Request) (*Response, error)
}
