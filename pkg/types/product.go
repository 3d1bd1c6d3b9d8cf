package types

// Product is the catalog unit everything else filters over. Attributes is
// sparse, it only carries the specification fields that apply to the
// product's subcategory.
type Product struct {
	Id           uint              `json:"id"`
	Name         string            `json:"name,omitempty"`
	Category     string            `json:"category"`
	Subcategory  string            `json:"subcategory"`
	BrandName    string            `json:"brandName"`
	SellingPrice float64           `json:"sellingPrice"`
	Attributes   map[string]string `json:"attributes,omitempty"`
	Deleted      bool              `json:"deleted,omitempty"`
}

func (p *Product) GetId() uint {
	return p.Id
}

func (p *Product) IsDeleted() bool {
	return p.Deleted
}

// ProductHandler is implemented by everything that keeps derived state from
// the catalog (facet engine, messaging publishers, snapshots).
type ProductHandler interface {
	HandleProduct(product *Product)
}
