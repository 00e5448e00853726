package services

import (
	"errors"
	"fmt"
	"time"

	"byggmakker-scraper/models"
	"byggmakker-scraper/utils"
)

// Pipeline joins the four input collections into nested
// Product → Variant → Store documents.
type Pipeline struct {
	logger *utils.Logger
}

// NewPipeline creates a Pipeline with the given logger.
func NewPipeline(logger *utils.Logger) *Pipeline {
	return &Pipeline{logger: logger}
}

// index holds the lookup tables built once per run. The price source is a
// list of per-store lists; flattening preserves store-group order, then
// in-group order, so output is deterministic.
type index struct {
	descByEAN   map[string]*models.ProductDescription
	linkByEAN   map[string]string
	pricesByEAN map[string][]models.PriceRecord
	storesByID  map[string][]models.StoreInfo
}

func buildIndex(
	identifiers []models.ProductIdentifier,
	descriptions []models.ProductDescription,
	priceGroups [][]models.PriceRecord,
	stores []models.StoreInfo,
) *index {
	idx := &index{
		descByEAN:   make(map[string]*models.ProductDescription, len(descriptions)),
		linkByEAN:   make(map[string]string, len(identifiers)),
		pricesByEAN: make(map[string][]models.PriceRecord),
		storesByID:  make(map[string][]models.StoreInfo, len(stores)),
	}

	// First match wins, as the source data promises one description per ean.
	for i := range descriptions {
		d := &descriptions[i]
		if _, exists := idx.descByEAN[d.EAN]; !exists {
			idx.descByEAN[d.EAN] = d
		}
	}

	for _, id := range identifiers {
		if _, exists := idx.linkByEAN[id.ID]; !exists {
			idx.linkByEAN[id.ID] = id.Link
		}
	}

	for _, group := range priceGroups {
		for _, rec := range group {
			idx.pricesByEAN[rec.EAN] = append(idx.pricesByEAN[rec.EAN], rec)
		}
	}

	// Store ids should be unique, but the directory is not trusted to
	// guarantee it; every match is kept in directory order.
	for _, s := range stores {
		idx.storesByID[s.ID] = append(idx.storesByID[s.ID], s)
	}

	return idx
}

// Process builds one Product per identifier entry, in input order.
// A product whose ean has no matching description is an error, never a
// partial document; such errors are collected and joined, and the
// documents that did build cleanly are still returned so the caller can
// decide whether to proceed.
func (p *Pipeline) Process(
	identifiers []models.ProductIdentifier,
	descriptions []models.ProductDescription,
	priceGroups [][]models.PriceRecord,
	stores []models.StoreInfo,
) ([]*models.Product, error) {
	idx := buildIndex(identifiers, descriptions, priceGroups, stores)

	products := make([]*models.Product, 0, len(identifiers))
	var errs []error

	for _, id := range identifiers {
		product, err := p.buildProduct(id.ID, idx)
		if err != nil {
			p.logger.Error("[pipeline] %v", err)
			errs = append(errs, err)
			continue
		}
		products = append(products, product)
	}

	p.logger.Info("[pipeline] Built %d/%d products", len(products), len(identifiers))
	return products, errors.Join(errs...)
}

func (p *Pipeline) buildProduct(ean string, idx *index) (*models.Product, error) {
	desc, ok := idx.descByEAN[ean]
	if !ok {
		return nil, fmt.Errorf("product %s: no matching product description", ean)
	}
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("product %s: %w", ean, err)
	}

	variants := make([]models.Variant, 0, len(idx.pricesByEAN[ean]))
	for _, rec := range idx.pricesByEAN[ean] {
		variants = append(variants, buildVariant(ean, desc, &rec, idx))
	}

	// Local time with UTC offset; created and updated are equal because
	// this pipeline only ever creates documents.
	now := time.Now().Format(time.RFC3339)

	product := &models.Product{
		Created:       now,
		Updated:       now,
		BaseName:      desc.Name,
		BaseCategory:  desc.CategoryNames(),
		BaseUnit:      desc.Measurements.NetContent.Unit,
		BasePriceUnit: "", // no source field maps to it
		NOBBCodes:     []string{desc.ID},
		EANCodes:      []string{ean},
		BaseImages:    desc.Images,
		Variants:      variants,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

func buildVariant(ean string, desc *models.ProductDescription, rec *models.PriceRecord, idx *index) models.Variant {
	variant := models.Variant{
		Retailer:        models.Retailer,
		Brand:           desc.BrandName,
		URLProduct:      idx.linkByEAN[ean],
		RetailUnit:      rec.SalesUnitLocalized,
		RetailPriceUnit: rec.ComparisonPriceUnit,
		EANCodes:        []string{ean},
		NOBBCodes:       []string{desc.ID},
		Categories:      desc.CategoryNames(),
		Stores:          make([]models.Store, 0, 1),
	}

	// Every directory entry matching the record's store id gets the
	// record's price; per-store price divergence is never computed.
	for _, s := range idx.storesByID[rec.StoreID] {
		variant.Stores = append(variant.Stores, models.Store{
			StoreID:   s.ID,
			StoreName: s.Name,
			Price:     rec.Price,
			ScrapedAt: "", // availability scraping does not feed back into pricing
		})
	}

	return variant
}
