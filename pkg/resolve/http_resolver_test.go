package resolve

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/types"
)

func TestHTTPResolver_Resolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST but got %s", r.Method)
		}
		req := &Request{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if len(req.BrandName) != 1 || req.BrandName[0] != "Dell" {
			t.Errorf("Expected brandName [Dell] but got %v", req.BrandName)
		}
		json.NewEncoder(w).Encode(&Response{
			Products: []types.Product{{Id: 1, BrandName: "Dell"}},
			Filters:  Filters{Brands: []string{"Dell"}, Specifications: map[string][]string{}},
		})
	}))
	defer srv.Close()

	resolver := NewHTTPResolver(srv.URL)
	req := NewRequest()
	req.BrandName = []string{"Dell"}

	res, err := resolver.Resolve(context.Background(), req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(res.Products) != 1 || res.Products[0].Id != 1 {
		t.Errorf("Expected one product with id 1 but got %v", res.Products)
	}
	if len(res.Filters.Brands) != 1 {
		t.Errorf("Expected one brand facet but got %v", res.Filters.Brands)
	}
}

func TestHTTPResolver_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	resolver := NewHTTPResolver(srv.URL)
	_, err := resolver.Resolve(context.Background(), NewRequest())
	if err == nil {
		t.Fatal("Expected error for non-success status")
	}
}
