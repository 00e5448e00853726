package models

import "fmt"

// Retailer is the fixed retailer name stamped on every variant.
const Retailer = "Byggmakker"

// Store is a per-store price entry nested under a variant. The price is
// copied from the variant's price record, not looked up per store;
// scraped_at is not populated by the pricing join.
type Store struct {
	StoreID   string  `json:"storeId" bson:"storeId"`
	StoreName string  `json:"store_name" bson:"store_name"`
	Price     float64 `json:"price" bson:"price"`
	ScrapedAt string  `json:"scraped_at" bson:"scraped_at"`
}

// Validate checks the fields required of a store entry.
func (s *Store) Validate() error {
	if s.StoreID == "" {
		return fmt.Errorf("store missing storeId")
	}
	if s.StoreName == "" {
		return fmt.Errorf("store %s: missing store_name", s.StoreID)
	}
	return nil
}

// Variant is one sellable variation of a product, built from a single
// price record plus the product's description and identifier entry.
type Variant struct {
	Retailer        string   `json:"retailer" bson:"retailer"`
	Brand           string   `json:"brand" bson:"brand"`
	URLProduct      string   `json:"url_product" bson:"url_product"`
	RetailUnit      string   `json:"retail_unit" bson:"retail_unit"`
	RetailPriceUnit string   `json:"retail_price_unit" bson:"retail_price_unit"`
	EANCodes        []string `json:"ean_codes" bson:"ean_codes"`
	NOBBCodes       []string `json:"nobb_codes" bson:"nobb_codes"`
	Categories      []string `json:"categories" bson:"categories"`
	Stores          []Store  `json:"stores" bson:"stores"`
}

// Validate checks the variant and every nested store entry.
func (v *Variant) Validate() error {
	if v.Retailer == "" {
		return fmt.Errorf("variant missing retailer")
	}
	if len(v.EANCodes) == 0 {
		return fmt.Errorf("variant missing ean_codes")
	}
	if len(v.NOBBCodes) == 0 {
		return fmt.Errorf("variant %s: missing nobb_codes", v.EANCodes[0])
	}
	if v.URLProduct == "" {
		return fmt.Errorf("variant %s: missing url_product", v.EANCodes[0])
	}
	for i := range v.Stores {
		if err := v.Stores[i].Validate(); err != nil {
			return fmt.Errorf("variant %s: %w", v.EANCodes[0], err)
		}
	}
	return nil
}

// Product is the top-level document inserted into the products collection,
// one per entry of the identifier file.
type Product struct {
	Created       string    `json:"created" bson:"created"`
	Updated       string    `json:"updated" bson:"updated"`
	BaseName      string    `json:"base_name" bson:"base_name"`
	BaseCategory  []string  `json:"base_category" bson:"base_category"`
	BaseUnit      string    `json:"base_unit" bson:"base_unit"`
	BasePriceUnit string    `json:"base_price_unit" bson:"base_price_unit"`
	NOBBCodes     []string  `json:"nobb_codes" bson:"nobb_codes"`
	EANCodes      []string  `json:"ean_codes" bson:"ean_codes"`
	BaseImages    []Image   `json:"base_images" bson:"base_images"`
	Variants      []Variant `json:"variants" bson:"variants"`
}

// Validate checks the document and every nested variant, returning an
// error that names the offending product or variant.
func (p *Product) Validate() error {
	if len(p.EANCodes) == 0 {
		return fmt.Errorf("product missing ean_codes")
	}
	ean := p.EANCodes[0]
	if p.BaseName == "" {
		return fmt.Errorf("product %s: missing base_name", ean)
	}
	if len(p.NOBBCodes) == 0 {
		return fmt.Errorf("product %s: missing nobb_codes", ean)
	}
	if p.Created == "" || p.Updated == "" {
		return fmt.Errorf("product %s: missing created/updated timestamps", ean)
	}
	for i := range p.Variants {
		if err := p.Variants[i].Validate(); err != nil {
			return fmt.Errorf("product %s: %w", ean, err)
		}
	}
	return nil
}
