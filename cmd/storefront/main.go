package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/cache"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/catalog"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/common"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/facet"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/messaging"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/server"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/storage"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/taxonomy"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/tracking"
)

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func main() {
	dataPath := envOr("DATA_PATH", "data")
	listenAddress := envOr("LISTEN_ADDRESS", ":8080")
	country := envOr("COUNTRY", "py")

	registry := taxonomy.Default()
	diskStorage := storage.NewDiskStorage(dataPath)
	if err := diskStorage.LoadTaxonomy(registry); err != nil {
		log.Printf("Could not load taxonomy snapshot: %v", err)
	}

	engine := facet.NewEngine(registry)
	repo := catalog.NewRepository(engine)
	if err := diskStorage.LoadProducts(repo); err != nil {
		log.Printf("Could not load product snapshot: %v", err)
	}
	log.Printf("Catalog ready with %d products", repo.Count())

	var trk tracking.Tracking
	if rabbitUrl, ok := os.LookupEnv("RABBIT_URL"); ok {
		sync, err := messaging.NewCatalogSync(messaging.RabbitConfig{
			Url:    rabbitUrl,
			VHost:  os.Getenv("RABBIT_VHOST"),
			Prefix: envOr("RABBIT_PREFIX", "bluetec"),
		})
		if err != nil {
			log.Fatalf("Failed to connect to rabbitmq: %v", err)
		}
		defer sync.Close()
		if err := sync.Listen(registry, repo); err != nil {
			log.Fatalf("Failed to start catalog listener: %v", err)
		}
		log.Printf("Listening for catalog changes")

		rabbitTracking, err := tracking.NewRabbitTracking(rabbitUrl, country)
		if err != nil {
			log.Printf("Failed to connect to rabbitmq for tracking: %v", err)
		} else {
			trk = rabbitTracking
			defer rabbitTracking.Close()
		}
	}

	var responseCache *cache.Cache
	if redisAddr, ok := os.LookupEnv("REDIS_URL"); ok {
		responseCache = cache.NewCache(redisAddr, os.Getenv("REDIS_PASSWORD"), 0)
		defer responseCache.Close()
	}

	ws := &server.StorefrontServer{
		Registry: registry,
		Resolver: engine,
		Repo:     repo,
		Cache:    responseCache,
		Tracking: trk,
	}

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       30 * time.Second,
		Write:      30 * time.Second,
		Idle:       120 * time.Second,
		Shutdown:   10 * time.Second,
		Hook:       5 * time.Second,
	})
	httpServer := common.NewServerWithTimeouts(nil, timeouts)
	httpServer.Addr = listenAddress
	httpServer.Handler = ws.NewMux()

	common.RunServerWithShutdown(httpServer, "storefront", timeouts.Shutdown, timeouts.Hook,
		func(ctx context.Context) error {
			return diskStorage.SaveProducts(repo.All())
		})
}
