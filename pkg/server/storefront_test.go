package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/catalog"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/facet"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/resolve"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/taxonomy"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/types"
)

func newTestStorefront(t *testing.T) (*StorefrontServer, *catalog.Repository) {
	t.Helper()
	registry := taxonomy.Default()
	engine := facet.NewEngine(registry)
	repo := catalog.NewRepository(engine)
	products := []*types.Product{
		{Id: 1, Name: "Notebook Dell", Category: "informatica", Subcategory: "notebooks", BrandName: "Dell", SellingPrice: 4500000,
			Attributes: map[string]string{"processor": "Intel Core i5", "memory": "16GB"}},
		{Id: 2, Name: "Notebook HP", Category: "informatica", Subcategory: "notebooks", BrandName: "HP", SellingPrice: 3800000,
			Attributes: map[string]string{"processor": "AMD Ryzen 5", "memory": "8GB"}},
		{Id: 3, Name: "Monitor LG", Category: "perifericos", Subcategory: "monitores", BrandName: "LG", SellingPrice: 1200000,
			Attributes: map[string]string{"screenSize": "27"}},
	}
	if err := repo.UpsertAll(products); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// Indexing runs through the queue, force it before serving.
	for _, p := range products {
		engine.Upsert(p)
	}
	return &StorefrontServer{
		Registry: registry,
		Resolver: engine,
		Repo:     repo,
	}, repo
}

func doFilter(t *testing.T, srv *StorefrontServer, req *resolve.Request) *resolve.Response {
	t.Helper()
	body, _ := json.Marshal(req)
	r := httptest.NewRequest(http.MethodPost, "/api/filter", bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.NewMux().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", w.Code)
	}
	res := resolve.EmptyResponse()
	if err := json.Unmarshal(w.Body.Bytes(), res); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return res
}

func TestFilterPost(t *testing.T) {
	srv, _ := newTestStorefront(t)
	req := resolve.NewRequest()
	req.Subcategory = []string{"notebooks"}
	req.BrandName = []string{"Dell"}

	res := doFilter(t, srv, req)
	if len(res.Products) != 1 || res.Products[0].Id != 1 {
		t.Errorf("Expected product 1 but got %+v", res.Products)
	}
	if len(res.Filters.Brands) != 1 || res.Filters.Brands[0] != "Dell" {
		t.Errorf("Expected brand facet [Dell] but got %v", res.Filters.Brands)
	}
}

func TestFilterGetQuery(t *testing.T) {
	srv, _ := newTestStorefront(t)
	r := httptest.NewRequest(http.MethodGet, "/api/filter?subcategory=notebooks&spec=memory:16GB||32GB", nil)
	w := httptest.NewRecorder()
	srv.NewMux().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", w.Code)
	}
	res := resolve.EmptyResponse()
	if err := json.Unmarshal(w.Body.Bytes(), res); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(res.Products) != 1 || res.Products[0].Id != 1 {
		t.Errorf("Expected product 1 but got %+v", res.Products)
	}
}

func TestFilterSetsSessionCookie(t *testing.T) {
	srv, _ := newTestStorefront(t)
	r := httptest.NewRequest(http.MethodGet, "/api/filter", nil)
	w := httptest.NewRecorder()
	srv.NewMux().ServeHTTP(w, r)
	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "sid" {
			found = true
		}
	}
	if !found {
		t.Error("Expected a sid cookie on first visit")
	}
}

func TestProductLookup(t *testing.T) {
	srv, _ := newTestStorefront(t)
	r := httptest.NewRequest(http.MethodGet, "/api/products/3", nil)
	w := httptest.NewRecorder()
	srv.NewMux().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", w.Code)
	}
	product := &types.Product{}
	if err := json.Unmarshal(w.Body.Bytes(), product); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if product.Name != "Monitor LG" {
		t.Errorf("Expected Monitor LG but got %s", product.Name)
	}

	w = httptest.NewRecorder()
	srv.NewMux().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/99", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 but got %d", w.Code)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	srv, _ := newTestStorefront(t)
	r := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	w := httptest.NewRecorder()
	srv.NewMux().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", w.Code)
	}
	categories := []taxonomy.Category{}
	if err := json.Unmarshal(w.Body.Bytes(), &categories); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(categories) == 0 {
		t.Error("Expected categories in response")
	}
}

func TestSpecSchemaEndpoint(t *testing.T) {
	srv, _ := newTestStorefront(t)
	r := httptest.NewRequest(http.MethodGet, "/api/spec-schema/notebooks", nil)
	w := httptest.NewRecorder()
	srv.NewMux().ServeHTTP(w, r)
	fields := []taxonomy.SpecField{}
	if err := json.Unmarshal(w.Body.Bytes(), &fields); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(fields) == 0 {
		t.Error("Expected a schema for notebooks")
	}

	w = httptest.NewRecorder()
	srv.NewMux().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/spec-schema/gabinetes", nil))
	if body := w.Body.String(); body != "[]" {
		t.Errorf("Expected empty schema but got %s", body)
	}
}

func TestFilterOptionsPreflight(t *testing.T) {
	srv, _ := newTestStorefront(t)
	r := httptest.NewRequest(http.MethodOptions, "/api/filter", nil)
	r.Header.Set("Origin", "https://bluetec.com.py")
	w := httptest.NewRecorder()
	srv.NewMux().ServeHTTP(w, r)
	if w.Code != http.StatusAccepted {
		t.Errorf("Expected status 202 but got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "https://bluetec.com.py" {
		t.Error("Expected origin to be mirrored")
	}
}
