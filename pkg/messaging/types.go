package messaging

type ChangeTopic string

const (
	ProductsUpserted ChangeTopic = "product_upserted"
	ProductsDeleted  ChangeTopic = "product_deleted"
	TaxonomyChanged  ChangeTopic = "taxonomy_changed"
)

type RabbitConfig struct {
	Url    string
	VHost  string
	Prefix string
}
