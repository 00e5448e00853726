package storage

import "byggmakker-scraper/models"

// ProductWriter is the interface any document sink must satisfy. Write
// persists the whole batch in one call.
type ProductWriter interface {
	Write(products []*models.Product) error
	Close() error
}
