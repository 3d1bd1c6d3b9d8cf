package server

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/cache"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/catalog"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/common"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/resolve"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/taxonomy"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/tracking"
)

var (
	noResolutions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bluetec_resolutions_total",
		Help: "The total number of processed filter resolutions",
	})
	noResolutionErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bluetec_resolution_errors_total",
		Help: "The total number of failed filter resolutions",
	})
	noCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bluetec_filter_cache_hits_total",
		Help: "The total number of filter responses served from cache",
	})
)

// StorefrontServer exposes the shopper-facing API: the facet resolution
// endpoint, the category tree and product lookups.
type StorefrontServer struct {
	Registry *taxonomy.Registry
	Resolver resolve.Resolver
	Repo     *catalog.Repository
	Cache    *cache.Cache
	Tracking tracking.Tracking
}

const filterCacheTtl = 5 * time.Minute

func (ws *StorefrontServer) HandleFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		RespondToOptions(w, r)
		return
	}
	sessionId := common.HandleSessionCookie(ws.Tracking, w, r)

	req, err := GetFilterRequestFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	noResolutions.Inc()

	var key string
	if ws.Cache != nil {
		key, err = cache.RequestKey("filter", req)
		if err == nil {
			cached := resolve.EmptyResponse()
			if ws.Cache.Get(key, cached) == nil {
				noCacheHits.Inc()
				defaultHeaders(w, r, "120")
				w.WriteHeader(http.StatusOK)
				writeJson(w, cached)
				return
			}
		}
	}

	res, err := ws.Resolver.Resolve(r.Context(), req)
	if err != nil {
		// Degrade to an empty result, the storefront renders "no
		// products found" instead of an error page.
		noResolutionErrors.Inc()
		log.Printf("Filter resolution failed: %v", err)
		defaultHeaders(w, r, "0")
		w.WriteHeader(http.StatusOK)
		writeJson(w, resolve.EmptyResponse())
		return
	}

	if ws.Tracking != nil {
		go ws.Tracking.TrackFilter(sessionId, req, len(res.Products), r)
	}
	if ws.Cache != nil && key != "" {
		if err := ws.Cache.Set(key, res, filterCacheTtl); err != nil {
			log.Printf("Failed to cache filter response: %v", err)
		}
	}

	defaultHeaders(w, r, "120")
	w.WriteHeader(http.StatusOK)
	writeJson(w, res)
}

func (ws *StorefrontServer) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		RespondToOptions(w, r)
		return
	}
	publicHeaders(w, r, "1200")
	w.WriteHeader(http.StatusOK)
	writeJson(w, ws.Registry.Categories())
}

func (ws *StorefrontServer) HandleSpecSchema(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		RespondToOptions(w, r)
		return
	}
	subcategory := r.PathValue("subcategory")
	publicHeaders(w, r, "1200")
	w.WriteHeader(http.StatusOK)
	writeJson(w, ws.Registry.SpecFieldsFor(subcategory))
}

func (ws *StorefrontServer) HandleProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		RespondToOptions(w, r)
		return
	}
	sessionId := common.HandleSessionCookie(ws.Tracking, w, r)

	id, err := strconv.ParseUint(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	product, ok := ws.Repo.Get(uint(id))
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if ws.Tracking != nil {
		go ws.Tracking.TrackProductView(sessionId, product.Id)
	}
	defaultHeaders(w, r, "600")
	w.WriteHeader(http.StatusOK)
	writeJson(w, product)
}

func (ws *StorefrontServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (ws *StorefrontServer) NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/filter", ws.HandleFilter)
	mux.HandleFunc("/api/categories", ws.HandleCategories)
	mux.HandleFunc("/api/spec-schema/{subcategory}", ws.HandleSpecSchema)
	mux.HandleFunc("/api/products/{id}", ws.HandleProduct)
	mux.HandleFunc("/health", ws.HandleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeJson(w http.ResponseWriter, data any) {
	bytes, err := sonic.Marshal(data)
	if err != nil {
		log.Printf("Error encoding response: %v", err)
		return
	}
	if _, err = w.Write(bytes); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
