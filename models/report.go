package models

// SyncReport holds the computed summary over one normalized batch.
type SyncReport struct {
	TotalProducts     int
	TotalVariants     int
	TotalStoreEntries int

	ProductsWithoutVariants int

	AveragePrice  float64
	MinPrice      float64
	MaxPrice      float64
	MostExpensive *Product

	VariantsByRetailUnit map[string]int
	ProductsByCategory   map[string]int
}
