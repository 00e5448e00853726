package services

import (
	"fmt"
	"sort"
	"strings"

	"byggmakker-scraper/models"
	"byggmakker-scraper/utils"
)

// ReportService computes and prints a summary of one sync batch.
type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

func (s *ReportService) Generate(products []*models.Product) *models.SyncReport {
	report := &models.SyncReport{
		VariantsByRetailUnit: make(map[string]int),
		ProductsByCategory:   make(map[string]int),
	}

	if len(products) == 0 {
		return report
	}

	report.TotalProducts = len(products)

	var priced []float64
	for _, p := range products {
		if len(p.Variants) == 0 {
			report.ProductsWithoutVariants++
		}
		if len(p.BaseCategory) > 0 {
			report.ProductsByCategory[p.BaseCategory[0]]++
		}

		for i := range p.Variants {
			v := &p.Variants[i]
			report.TotalVariants++
			if v.RetailUnit != "" {
				report.VariantsByRetailUnit[v.RetailUnit]++
			}

			for _, st := range v.Stores {
				report.TotalStoreEntries++
				if st.Price <= 0 {
					continue
				}
				priced = append(priced, st.Price)
				if st.Price > report.MaxPrice {
					report.MaxPrice = st.Price
					report.MostExpensive = p
				}
			}
		}
	}

	// Price stats over store entries with price > 0
	if len(priced) > 0 {
		report.MinPrice = priced[0]
		var total float64
		for _, price := range priced {
			total += price
			if price < report.MinPrice {
				report.MinPrice = price
			}
		}
		report.AveragePrice = round2(total / float64(len(priced)))
		report.MinPrice = round2(report.MinPrice)
		report.MaxPrice = round2(report.MaxPrice)
	}

	return report
}

func (s *ReportService) Print(r *models.SyncReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 BYGGMAKKER SYNC REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Products      : \033[1m%d\033[0m\n", r.TotalProducts)
	fmt.Printf("  Variants      : \033[1m%d\033[0m\n", r.TotalVariants)
	fmt.Printf("  Store entries : \033[1m%d\033[0m\n", r.TotalStoreEntries)
	if r.ProductsWithoutVariants > 0 {
		fmt.Printf("  Without variants : \033[1m%d\033[0m\n", r.ProductsWithoutVariants)
	}
	fmt.Println()

	// Price stats
	fmt.Printf("\033[1;33m  Price Statistics (store entries, NOK)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AveragePrice > 0 {
		fmt.Printf("  Average price : \033[1;32m%.2f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m%.2f\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m%.2f\033[0m\n", r.MaxPrice)
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	if r.MostExpensive != nil {
		fmt.Printf("\033[1;33m  Most Expensive Product\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(r.MostExpensive.BaseName, 50))
		if len(r.MostExpensive.EANCodes) > 0 {
			fmt.Printf("  EAN   : %s\n", r.MostExpensive.EANCodes[0])
		}
		fmt.Printf("  Price : \033[1;31m%.2f\033[0m\n", r.MaxPrice)
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Variants by Retail Unit\033[0m\n")
	fmt.Printf("  %s\n", thin)
	printCountMap(r.VariantsByRetailUnit)
	fmt.Println()

	fmt.Printf("\033[1;33m  Products by Category\033[0m\n")
	fmt.Printf("  %s\n", thin)
	printCountMap(r.ProductsByCategory)

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func printCountMap(m map[string]int) {
	if len(m) == 0 {
		fmt.Printf("  No data\n")
		return
	}

	type kv struct {
		key   string
		count int
	}
	var entries []kv
	for k, c := range m {
		entries = append(entries, kv{k, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})

	for _, e := range entries {
		bar := strings.Repeat("█", e.count)
		fmt.Printf("  %-30s %s (%d)\n", truncate(e.key, 28), bar, e.count)
	}
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
