package messaging

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Jomachado2002/bluetec2-sub000/pkg/taxonomy"
	"github.com/Jomachado2002/bluetec2-sub000/pkg/types"
)

// CatalogSync fans catalog changes out over rabbitmq. The admin process
// publishes, storefront replicas consume, so every replica's facet engine
// sees the same catalog without sharing storage.
type CatalogSync struct {
	config     RabbitConfig
	connection *amqp.Connection
}

func NewCatalogSync(config RabbitConfig) (*CatalogSync, error) {
	if config.Prefix == "" {
		config.Prefix = "bluetec"
	}
	s := &CatalogSync{config: config}
	if err := s.connect(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CatalogSync) connect() error {
	conn, err := amqp.DialConfig(s.config.Url, amqp.Config{Vhost: s.config.VHost})
	if err != nil {
		return err
	}
	s.connection = conn
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	for _, topic := range []ChangeTopic{ProductsUpserted, ProductsDeleted, TaxonomyChanged} {
		if err := DefineTopic(ch, s.config.Prefix, topic); err != nil {
			return err
		}
	}
	return nil
}

func (s *CatalogSync) Close() error {
	return s.connection.Close()
}

// HandleProduct implements types.ProductHandler so the sync can sit directly
// in the catalog repository's handler chain on the publishing side.
func (s *CatalogSync) HandleProduct(product *types.Product) {
	var err error
	if product.IsDeleted() {
		err = SendChange(s.connection, s.config.Prefix, ProductsDeleted, product.Id)
	} else {
		err = SendChange(s.connection, s.config.Prefix, ProductsUpserted, []*types.Product{product})
	}
	if err != nil {
		log.Printf("Error publishing product change: %v", err)
	}
}

func (s *CatalogSync) PublishUpserted(products []*types.Product) error {
	return SendChange(s.connection, s.config.Prefix, ProductsUpserted, products)
}

func (s *CatalogSync) PublishTaxonomy(categories []taxonomy.Category) error {
	return SendChange(s.connection, s.config.Prefix, TaxonomyChanged, categories)
}

// Listen consumes catalog changes and feeds them into the given handlers.
func (s *CatalogSync) Listen(registry *taxonomy.Registry, handlers ...types.ProductHandler) error {
	upsertCh, err := s.connection.Channel()
	if err != nil {
		return err
	}
	err = ListenToTopic(upsertCh, s.config.Prefix, ProductsUpserted, func(d amqp.Delivery) error {
		products := []*types.Product{}
		if err := json.Unmarshal(d.Body, &products); err != nil {
			return err
		}
		for _, product := range products {
			for _, handler := range handlers {
				handler.HandleProduct(product)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	deleteCh, err := s.connection.Channel()
	if err != nil {
		return err
	}
	err = ListenToTopic(deleteCh, s.config.Prefix, ProductsDeleted, func(d amqp.Delivery) error {
		var id uint
		if err := json.Unmarshal(d.Body, &id); err != nil {
			return err
		}
		tombstone := &types.Product{Id: id, Deleted: true}
		for _, handler := range handlers {
			handler.HandleProduct(tombstone)
		}
		return nil
	})
	if err != nil {
		return err
	}

	taxonomyCh, err := s.connection.Channel()
	if err != nil {
		return err
	}
	return ListenToTopic(taxonomyCh, s.config.Prefix, TaxonomyChanged, func(d amqp.Delivery) error {
		categories := []taxonomy.Category{}
		if err := json.Unmarshal(d.Body, &categories); err != nil {
			return err
		}
		registry.UpdateCategories(categories)
		log.Printf("Taxonomy updated, %d categories", len(categories))
		return nil
	})
}
