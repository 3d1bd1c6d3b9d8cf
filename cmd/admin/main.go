package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/catalog"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/clients"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/common"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/messaging"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/quotes"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/server"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/storage"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/taxonomy"
)

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func main() {
	dataPath := envOr("DATA_PATH", "data")
	listenAddress := envOr("LISTEN_ADDRESS", ":8081")

	registry := taxonomy.Default()
	diskStorage := storage.NewDiskStorage(dataPath)
	if err := diskStorage.LoadTaxonomy(registry); err != nil {
		log.Printf("Could not load taxonomy snapshot: %v", err)
	}

	repo := catalog.NewRepository()
	if err := diskStorage.LoadProducts(repo); err != nil {
		log.Printf("Could not load product snapshot: %v", err)
	}
	log.Printf("Catalog ready with %d products", repo.Count())

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
		// Every change made here fans out to the storefront replicas.
		repo.AddHandler(sync)
	}

	var auth server.AuthHandler
	googleAuth, err := server.NewGoogleAuth()
	if err != nil {
		if os.Getenv("ADMIN_INSECURE") == "" {
			log.Fatalf("Google auth not configured: %v", err)
		}
		log.Printf("ADMIN_INSECURE set, using mock auth: %v", err)
		auth = &server.MockAuth{}
	} else {
		auth = googleAuth
	}

	ws := &server.AdminWebServer{
		Registry: registry,
		Repo:     repo,
		Storage:  diskStorage,
		Quotes:   quotes.NewStore(),
		Clients:  clients.NewStore(),
		Auth:     auth,
	}

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       60 * time.Second,
		Write:      60 * time.Second,
		Idle:       120 * time.Second,
		Shutdown:   10 * time.Second,
		Hook:       5 * time.Second,
	})
	httpServer := common.NewServerWithTimeouts(nil, timeouts)
	httpServer.Addr = listenAddress
	httpServer.Handler = ws.NewMux()

	common.RunServerWithShutdown(httpServer, "admin", timeouts.Shutdown, timeouts.Hook,
		func(ctx context.Context) error {
			return diskStorage.SaveProducts(repo.All())
		})
}
