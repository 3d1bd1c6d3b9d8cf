package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/catalog"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/clients"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/quotes"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/storage"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/taxonomy"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/types"
)

func newTestAdmin(t *testing.T) *AdminWebServer {
	t.Helper()
	return &AdminWebServer{
		Registry: taxonomy.Default(),
		Repo:     catalog.NewRepository(),
		Storage:  storage.NewDiskStorage(t.TempDir()),
		Quotes:   quotes.NewStore(),
		Clients:  clients.NewStore(),
		Auth:     &MockAuth{},
	}
}

func TestProductUpsertAndDelete(t *testing.T) {
	ws := newTestAdmin(t)
	mux := ws.NewMux()

	body := `[{"id":5,"name":"Mouse Logitech","category":"perifericos","subcategory":"mouses","brandName":"Logitech","sellingPrice":150000}]`
	r := httptest.NewRequest(http.MethodPost, "/admin/products", strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", w.Code)
	}
	if ws.Repo.Count() != 1 {
		t.Errorf("Expected 1 product but got %d", ws.Repo.Count())
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/products/5", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", w.Code)
	}
	if ws.Repo.Count() != 0 {
		t.Errorf("Expected empty catalog but got %d products", ws.Repo.Count())
	}
}

func TestProductUpsertRejectsMissingId(t *testing.T) {
	ws := newTestAdmin(t)
	r := httptest.NewRequest(http.MethodPost, "/admin/products", strings.NewReader(`[{"name":"no id"}]`))
	w := httptest.NewRecorder()
	ws.NewMux().ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 but got %d", w.Code)
	}
}

func TestSpecSchemaUpdate(t *testing.T) {
	ws := newTestAdmin(t)
	body := `[{"name":"fanSize","displayLabel":"Tamaño de ventilador"}]`
	r := httptest.NewRequest(http.MethodPut, "/admin/spec-schema/gabinetes", strings.NewReader(body))
	w := httptest.NewRecorder()
	ws.NewMux().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", w.Code)
	}
	fields := ws.Registry.SpecFieldsFor("gabinetes")
	if len(fields) != 1 || fields[0].Name != "fanSize" {
		t.Errorf("Expected fanSize schema but got %+v", fields)
	}
}

func TestQuoteCreateRepricesFromCatalog(t *testing.T) {
	ws := newTestAdmin(t)
	if err := ws.Repo.Upsert(&types.Product{Id: 9, Name: "Teclado", SellingPrice: 300000}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	client, _ := ws.Clients.Create(clients.Client{Name: "ACME SA"})

	payload, _ := json.Marshal(quoteRequest{
		ClientId: client.Id,
		Lines:    []quotes.QuoteLine{{ProductId: 9, Quantity: 2, UnitPrice: 1}},
	})
	r := httptest.NewRequest(http.MethodPost, "/admin/quotes", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	ws.NewMux().ServeHTTP(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201 but got %d", w.Code)
	}
	quote := &quotes.Quote{}
	if err := json.Unmarshal(w.Body.Bytes(), quote); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if quote.TotalPrice != 600000 {
		t.Errorf("Expected catalog-priced total 600000 but got %v", quote.TotalPrice)
	}
}

func TestClientCrud(t *testing.T) {
	ws := newTestAdmin(t)
	mux := ws.NewMux()

	r := httptest.NewRequest(http.MethodPost, "/admin/clients", strings.NewReader(`{"name":"ACME SA","ruc":"80012345-6"}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201 but got %d", w.Code)
	}
	created := &clients.Client{}
	if err := json.Unmarshal(w.Body.Bytes(), created); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/admin/clients/"+created.Id, strings.NewReader(`{"name":"ACME S.A.","ruc":"80012345-6"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", w.Code)
	}
	updated, ok := ws.Clients.Get(created.Id)
	if !ok || updated.Name != "ACME S.A." {
		t.Errorf("Expected updated name but got %+v", updated)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/clients/"+created.Id, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", w.Code)
	}
	if _, ok = ws.Clients.Get(created.Id); ok {
		t.Error("Expected client to be deleted")
	}
}

func TestSaveWritesSnapshot(t *testing.T) {
	ws := newTestAdmin(t)
	if err := ws.Repo.Upsert(&types.Product{Id: 1, Name: "Notebook"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, "/admin/save", nil)
	w := httptest.NewRecorder()
	ws.NewMux().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", w.Code)
	}

	loaded := catalog.NewRepository()
	if err := ws.Storage.LoadProducts(loaded); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if loaded.Count() != 1 {
		t.Errorf("Expected 1 product in snapshot but got %d", loaded.Count())
	}
}
