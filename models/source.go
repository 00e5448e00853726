package models

import "fmt"

// StoreInfo is one entry of the store directory file.
type StoreInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NetContent is the net content measurement of a product (e.g. 2.22 M2).
type NetContent struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

// Dimension is a single gross dimension with its localized unit.
type Dimension struct {
	Unit          string  `json:"unit"`
	Value         float64 `json:"value"`
	UnitCode      string  `json:"unitCode"`
	UnitLocalized string  `json:"unitLocalized"`
}

// GrossDimensions holds the outer package dimensions.
type GrossDimensions struct {
	Width  Dimension `json:"width"`
	Height Dimension `json:"height"`
	Length Dimension `json:"length"`
}

// Measurements groups net content and gross dimensions.
type Measurements struct {
	NetContent      NetContent      `json:"netContent"`
	GrossDimensions GrossDimensions `json:"grossDimensions"`
}

// Image is a product image reference ("PRODUCT" type marks main images).
type Image struct {
	URL  string `json:"url" bson:"url"`
	Type string `json:"type" bson:"type"`
}

// DescriptionCategory is one sales category a product belongs to.
type DescriptionCategory struct {
	SalesCategoryIdentifier string `json:"salesCategoryIdentifier"`
	Name                    string `json:"name"`
	URL                     string `json:"url"`
}

// ProductDescription is one record of the product description file,
// keyed by EAN. At most one description per EAN is expected.
type ProductDescription struct {
	EAN          string                `json:"ean"`
	ID           string                `json:"id"` // NOBB code
	Name         string                `json:"name"`
	BrandName    string                `json:"brandName"`
	Measurements Measurements          `json:"measurements"`
	Images       []Image               `json:"images"`
	Categories   []DescriptionCategory `json:"categories"`
	RelatedEANs  []string              `json:"relatedEans"`
}

// Validate checks the fields every downstream join step depends on.
func (d *ProductDescription) Validate() error {
	if d.EAN == "" {
		return fmt.Errorf("product description missing ean")
	}
	if d.ID == "" {
		return fmt.Errorf("product description %s: missing nobb code (id)", d.EAN)
	}
	if d.Name == "" {
		return fmt.Errorf("product description %s: missing name", d.EAN)
	}
	return nil
}

// CategoryNames returns the category names in source order.
func (d *ProductDescription) CategoryNames() []string {
	names := make([]string, 0, len(d.Categories))
	for _, c := range d.Categories {
		names = append(names, c.Name)
	}
	return names
}

// ProductIdentifier maps an EAN (id) to the canonical product page URL.
type ProductIdentifier struct {
	ID   string `json:"id"`
	Link string `json:"link"`
}

// PriceRecord is one (ean, store) price observation. The source file is a
// list of per-store lists of these records.
type PriceRecord struct {
	EAN                          string   `json:"ean"`
	Type                         string   `json:"type"`
	BasePrice                    float64  `json:"basePrice"`
	SalesUnitLocalized           string   `json:"salesUnitLocalized"`
	UnitAmount                   float64  `json:"unitAmount"`
	CampaignPrice                *float64 `json:"campaignPrice"`
	Scales                       []string `json:"scales"`
	ComparisonPrice              float64  `json:"comparisonPrice"`
	ComparisonPriceUnit          string   `json:"comparisonPriceUnit"`
	ComparisonPriceUnitLocalized string   `json:"comparisonPriceUnitLocalized"`
	DisplayCodePCU               int      `json:"displayCodePCU"`
	PriceValidUntil              string   `json:"priceValidUntil"`
	Qualifier                    string   `json:"qualifier"`
	Price                        float64  `json:"price"`
	BasePriceUnit                string   `json:"basePriceUnit"`
	BasePriceUnitLocalized       string   `json:"basePriceUnitLocalized"`
	SalesUnit                    string   `json:"salesUnit"`
	VATPercentage                float64  `json:"vatPercentage"`
	CampaignID                   string   `json:"campaignId"`
	CampaignTag                  string   `json:"campaignTag"`
	StoreID                      string   `json:"storeId"`
}
