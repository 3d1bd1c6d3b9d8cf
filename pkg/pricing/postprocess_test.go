package pricing

import (
	"testing"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/selection"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/types"
)

func ptr(v float64) *float64 { return &v }

func testProducts() []types.Product {
	return []types.Product{
		{Id: 1, Name: "Notebook A", SellingPrice: 1000000},
		{Id: 2, Name: "Notebook B", SellingPrice: 2000001},
		{Id: 3, Name: "Notebook C", SellingPrice: 1500000},
		{Id: 4, Name: "Notebook D", SellingPrice: 1500000},
	}
}

func TestDerive_PriceBoundary(t *testing.T) {
	price := selection.PriceRange{Min: ptr(1000000), Max: ptr(2000000)}

	result := Derive(testProducts(), price, types.SortNone)

	for _, p := range result {
		if p.Id == 2 {
			t.Error("Expected product priced 2000001 to be excluded")
		}
	}
	found := false
	for _, p := range result {
		if p.Id == 1 {
			found = true
		}
	}
	if !found {
		t.Error("Expected product priced exactly 1000000 to be included")
	}
}

func TestDerive_SortStability(t *testing.T) {
	result := Derive(testProducts(), selection.PriceRange{}, types.SortAscending)

	for i, p := range result {
		if p.Id == 3 {
			if i+1 >= len(result) || result[i+1].Id != 4 {
				t.Errorf("Expected equally priced products to keep resolver order, got %v", result)
			}
		}
	}

	desc := Derive(testProducts(), selection.PriceRange{}, types.SortDescending)
	if desc[0].Id != 2 {
		t.Errorf("Expected most expensive first but got id %d", desc[0].Id)
	}
	for i, p := range desc {
		if p.Id == 3 {
			if i+1 >= len(desc) || desc[i+1].Id != 4 {
				t.Errorf("Expected equally priced products to keep resolver order, got %v", desc)
			}
		}
	}
}

func TestDerive_NoSortPreservesOrder(t *testing.T) {
	result := Derive(testProducts(), selection.PriceRange{}, types.SortNone)

	expected := []uint{1, 2, 3, 4}
	for i, p := range result {
		if p.Id != expected[i] {
			t.Errorf("Expected resolver ordering preserved, got %v", result)
			break
		}
	}
}

func TestDerive_Idempotent(t *testing.T) {
	price := selection.PriceRange{Min: ptr(1000000)}

	once := Derive(testProducts(), price, types.SortAscending)
	twice := Derive(once, price, types.SortAscending)

	if len(once) != len(twice) {
		t.Fatalf("Expected idempotent derivation, got %d then %d items", len(once), len(twice))
	}
	for i := range once {
		if once[i].Id != twice[i].Id {
			t.Errorf("Expected identical order on reapplication, got %v vs %v", once, twice)
			break
		}
	}
}

func TestParseBound(t *testing.T) {
	if v := ParseBound("1500000"); v == nil || *v != 1500000 {
		t.Errorf("Expected 1500000 but got %v", v)
	}
	if v := ParseBound(" 99.5 "); v == nil || *v != 99.5 {
		t.Errorf("Expected 99.5 but got %v", v)
	}
	for _, raw := range []string{"", "abc", "NaN", "+Inf", "12abc"} {
		if v := ParseBound(raw); v != nil {
			t.Errorf("Expected %q to fail open but got %v", raw, *v)
		}
	}
}
