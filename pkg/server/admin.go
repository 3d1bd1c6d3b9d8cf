package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/catalog"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/clients"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/quotes"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/storage"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/taxonomy"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/types"
)

// AdminWebServer is the write side: product and taxonomy maintenance,
// customer register and quotes. All routes sit behind Auth.Middleware.
type AdminWebServer struct {
	Registry *taxonomy.Registry
	Repo     *catalog.Repository
	Storage  *storage.DiskStorage
	Quotes   *quotes.Store
	Clients  *clients.Store
	Auth     AuthHandler
}

func (ws *AdminWebServer) HandleProductUpsert(w http.ResponseWriter, r *http.Request) {
	items := []*types.Product{}
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := ws.Repo.UpsertAll(items); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Printf("Upserted %d products", len(items))
	w.WriteHeader(http.StatusOK)
}

func (ws *AdminWebServer) HandleProductDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	if !ws.Repo.Delete(uint(id)) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (ws *AdminWebServer) HandleTaxonomyUpdate(w http.ResponseWriter, r *http.Request) {
	categories := []taxonomy.Category{}
	if err := json.NewDecoder(r.Body).Decode(&categories); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ws.Registry.UpdateCategories(categories)
	if ws.Storage != nil {
		if err := ws.Storage.SaveTaxonomy(categories); err != nil {
			log.Printf("Failed to snapshot taxonomy: %v", err)
		}
	}
	w.WriteHeader(http.StatusOK)
}

func (ws *AdminWebServer) HandleSpecSchemaUpdate(w http.ResponseWriter, r *http.Request) {
	subcategory := r.PathValue("subcategory")
	fields := []taxonomy.SpecField{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ws.Registry.UpdateSpecFields(subcategory, fields)
	if ws.Storage != nil {
		if err := ws.Storage.SaveSpecSchemas(ws.Registry.SpecSchemas()); err != nil {
			log.Printf("Failed to snapshot spec schemas: %v", err)
		}
	}
	w.WriteHeader(http.StatusOK)
}

func (ws *AdminWebServer) HandleSave(w http.ResponseWriter, r *http.Request) {
	if ws.Storage == nil {
		http.Error(w, "no storage configured", http.StatusServiceUnavailable)
		return
	}
	if err := ws.Storage.SaveProducts(ws.Repo.All()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type quoteRequest struct {
	ClientId string             `json:"clientId"`
	Lines    []quotes.QuoteLine `json:"lines"`
	Notes    string             `json:"notes"`
}

func (ws *AdminWebServer) HandleQuoteCreate(w http.ResponseWriter, r *http.Request) {
	req := quoteRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// Reprice lines from the live catalog so a stale client cannot quote
	// old prices.
	for i, line := range req.Lines {
		if product, ok := ws.Repo.Get(line.ProductId); ok {
			req.Lines[i] = quotes.LineFromProduct(*product, line.Quantity)
		}
	}
	quote, err := ws.Quotes.Create(req.ClientId, req.Lines, req.Notes)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defaultHeaders(w, r, "0")
	w.WriteHeader(http.StatusCreated)
	writeJson(w, quote)
}

func (ws *AdminWebServer) HandleQuotes(w http.ResponseWriter, r *http.Request) {
	defaultHeaders(w, r, "0")
	w.WriteHeader(http.StatusOK)
	writeJson(w, ws.Quotes.All())
}

func (ws *AdminWebServer) HandleQuote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if r.Method == http.MethodDelete {
		if !ws.Quotes.Delete(id) {
			http.Error(w, "quote not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		return
	}
	quote, ok := ws.Quotes.Get(id)
	if !ok {
		http.Error(w, "quote not found", http.StatusNotFound)
		return
	}
	defaultHeaders(w, r, "0")
	w.WriteHeader(http.StatusOK)
	writeJson(w, quote)
}

func (ws *AdminWebServer) HandleClients(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		client := clients.Client{}
		if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		created, err := ws.Clients.Create(client)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defaultHeaders(w, r, "0")
		w.WriteHeader(http.StatusCreated)
		writeJson(w, created)
		return
	}
	defaultHeaders(w, r, "0")
	w.WriteHeader(http.StatusOK)
	writeJson(w, ws.Clients.All())
}

func (ws *AdminWebServer) HandleClient(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	switch r.Method {
	case http.MethodDelete:
		if !ws.Clients.Delete(id) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case http.MethodPut:
		client := clients.Client{}
		if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		client.Id = id
		if err := ws.Clients.Update(client); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	default:
		client, ok := ws.Clients.Get(id)
		if !ok {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		defaultHeaders(w, r, "0")
		w.WriteHeader(http.StatusOK)
		writeJson(w, client)
	}
}

func (ws *AdminWebServer) NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/auth/login", ws.Auth.Login)
	mux.HandleFunc("/admin/auth/logout", ws.Auth.Logout)
	mux.HandleFunc("/admin/auth/callback", ws.Auth.AuthCallback)
	mux.HandleFunc("/admin/auth/user", ws.Auth.User)

	mux.HandleFunc("POST /admin/products", ws.Auth.Middleware(ws.HandleProductUpsert))
	mux.HandleFunc("DELETE /admin/products/{id}", ws.Auth.Middleware(ws.HandleProductDelete))
	mux.HandleFunc("PUT /admin/taxonomy", ws.Auth.Middleware(ws.HandleTaxonomyUpdate))
	mux.HandleFunc("PUT /admin/spec-schema/{subcategory}", ws.Auth.Middleware(ws.HandleSpecSchemaUpdate))
	mux.HandleFunc("POST /admin/save", ws.Auth.Middleware(ws.HandleSave))

	mux.HandleFunc("POST /admin/quotes", ws.Auth.Middleware(ws.HandleQuoteCreate))
	mux.HandleFunc("GET /admin/quotes", ws.Auth.Middleware(ws.HandleQuotes))
	mux.HandleFunc("/admin/quotes/{id}", ws.Auth.Middleware(ws.HandleQuote))

	mux.HandleFunc("/admin/clients", ws.Auth.Middleware(ws.HandleClients))
	mux.HandleFunc("/admin/clients/{id}", ws.Auth.Middleware(ws.HandleClient))
	return mux
}
