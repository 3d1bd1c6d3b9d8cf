package facet

import (
	"context"
	"testing"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/resolve"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/taxonomy"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/types"
)

func testEngine() *Engine {
	e := NewEngine(taxonomy.Default())
	e.Upsert(&types.Product{
		Id: 1, Category: "informatica", Subcategory: "notebooks", BrandName: "A",
		SellingPrice: 1000000,
		Attributes:   map[string]string{"processor": "i5", "memory": "8GB"},
	})
	e.Upsert(&types.Product{
		Id: 2, Category: "informatica", Subcategory: "notebooks", BrandName: "B",
		SellingPrice: 1200000,
		Attributes:   map[string]string{"processor": "i5", "memory": "16GB"},
	})
	e.Upsert(&types.Product{
		Id: 3, Category: "informatica", Subcategory: "notebooks", BrandName: "A",
		SellingPrice: 1800000,
		Attributes:   map[string]string{"processor": "i7", "memory": "16GB"},
	})
	e.Upsert(&types.Product{
		Id: 4, Category: "perifericos", Subcategory: "monitores", BrandName: "C",
		SellingPrice: 900000,
		Attributes:   map[string]string{"monitorSize": "27", "monitorPanel": "IPS"},
	})
	return e
}

func TestResolve_EmptyRequestMatchesAll(t *testing.T) {
	e := testEngine()

	res, err := e.Resolve(context.Background(), resolve.NewRequest())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(res.Products) != 4 {
		t.Errorf("Expected 4 products but got %d", len(res.Products))
	}
	if len(res.Filters.Brands) != 3 {
		t.Errorf("Expected brands [A B C] but got %v", res.Filters.Brands)
	}
}

func TestResolve_AndOrComposition(t *testing.T) {
	e := testEngine()

	req := resolve.NewRequest()
	req.BrandName = []string{"A"}
	req.Specifications["processor"] = []string{"i5"}

	res, err := e.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(res.Products) != 1 || res.Products[0].Id != 1 {
		t.Errorf("Expected only product 1 but got %v", res.Products)
	}
}

func TestResolve_OrWithinDimension(t *testing.T) {
	e := testEngine()

	req := resolve.NewRequest()
	req.Specifications["processor"] = []string{"i5", "i7"}

	res, _ := e.Resolve(context.Background(), req)
	if len(res.Products) != 3 {
		t.Errorf("Expected 3 products for processor i5||i7 but got %d", len(res.Products))
	}
}

func TestResolve_NoSpecKeyLeak(t *testing.T) {
	e := testEngine()

	req := resolve.NewRequest()
	req.Subcategory = []string{"notebooks"}

	res, _ := e.Resolve(context.Background(), req)
	if _, ok := res.Filters.Specifications["monitorSize"]; ok {
		t.Error("Expected monitor spec keys to be absent from a notebooks result")
	}
	if _, ok := res.Filters.Specifications["processor"]; !ok {
		t.Errorf("Expected processor facet but got %v", res.Filters.Specifications)
	}
	if len(res.Filters.Brands) != 2 {
		t.Errorf("Expected brands [A B] but got %v", res.Filters.Brands)
	}
}

func TestResolve_FacetsNarrowWithSelection(t *testing.T) {
	e := testEngine()

	req := resolve.NewRequest()
	req.Specifications["processor"] = []string{"i7"}

	res, _ := e.Resolve(context.Background(), req)
	memory, ok := res.Filters.Specifications["memory"]
	if !ok || len(memory) != 1 || memory[0] != "16GB" {
		t.Errorf("Expected memory narrowed to [16GB] but got %v", memory)
	}
}

func TestResolve_UnknownSpecKeyMatchesNothing(t *testing.T) {
	e := testEngine()

	req := resolve.NewRequest()
	req.Specifications["nonexistent"] = []string{"x"}

	res, _ := e.Resolve(context.Background(), req)
	if len(res.Products) != 0 {
		t.Errorf("Expected no products but got %d", len(res.Products))
	}
}

func TestUpsertReplacesValueLinks(t *testing.T) {
	e := testEngine()

	e.Upsert(&types.Product{
		Id: 1, Category: "informatica", Subcategory: "notebooks", BrandName: "D",
		SellingPrice: 1100000,
		Attributes:   map[string]string{"processor": "i9"},
	})

	req := resolve.NewRequest()
	req.Specifications["processor"] = []string{"i5"}
	res, _ := e.Resolve(context.Background(), req)
	if len(res.Products) != 1 || res.Products[0].Id != 2 {
		t.Errorf("Expected old value links replaced, got %v", res.Products)
	}
}

func TestRemove(t *testing.T) {
	e := testEngine()
	e.Remove(4)

	res, _ := e.Resolve(context.Background(), resolve.NewRequest())
	if len(res.Products) != 3 {
		t.Errorf("Expected 3 products after removal but got %d", len(res.Products))
	}
	for _, b := range res.Filters.Brands {
		if b == "C" {
			t.Error("Expected brand C gone after removing its only product")
		}
	}
}

func TestResolve_PreservesInsertionOrder(t *testing.T) {
	e := testEngine()

	res, _ := e.Resolve(context.Background(), resolve.NewRequest())
	expected := []uint{1, 2, 3, 4}
	for i, p := range res.Products {
		if p.Id != expected[i] {
			t.Errorf("Expected insertion order %v but got product %d at %d", expected, p.Id, i)
			break
		}
	}
}
