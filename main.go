package main

import (
	"flag"
	"fmt"
	"os"

	"byggmakker-scraper/config"
	"byggmakker-scraper/models"
	"byggmakker-scraper/scraper/byggmakker"
	"byggmakker-scraper/services"
	"byggmakker-scraper/storage"
	"byggmakker-scraper/utils"
)

// go run . -mode=sync
// go run . -mode=availability
func main() {
	mode := flag.String("mode", "sync", "Run mode: 'sync' (normalize + load) or 'availability' (fetch availability files)")
	flag.Parse()

	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Byggmakker Scraping System starting ===")
	logger.Info("Config — category: %s/%s | concurrency: %d | timeout: %dms",
		cfg.CategoryL1, cfg.CategoryL2, cfg.MaxConcurrency, cfg.HTTPTimeoutMs)

	switch *mode {
	case "sync":
		runSync(cfg, logger)
	case "availability":
		runAvailability(cfg, logger)
	default:
		logger.Error("Unknown mode %q — use 'sync' or 'availability'", *mode)
		os.Exit(1)
	}
}

func runSync(cfg *config.Config, logger *utils.Logger) {
	logger.Info("Loading input files from %s...", cfg.CategoryDir())

	inputs, err := storage.LoadInputs(storage.InputPaths{
		StoreInfo:    cfg.StoreInfoPath,
		Descriptions: cfg.DescriptionsPath(),
		Identifiers:  cfg.IdentifiersPath(),
		Prices:       cfg.PricesPath(),
	})
	if err != nil {
		logger.Error("Failed to load input files: %v", err)
		os.Exit(1)
	}

	logger.Info("Loaded %d identifiers, %d descriptions, %d price groups, %d stores",
		len(inputs.Identifiers), len(inputs.Descriptions), len(inputs.PriceGroups), len(inputs.Stores))

	pipeline := services.NewPipeline(logger)
	products, err := pipeline.Process(inputs.Identifiers, inputs.Descriptions, inputs.PriceGroups, inputs.Stores)
	if err != nil {
		logger.Error("Normalization failed — not inserting a partial batch: %v", err)
		os.Exit(1)
	}

	if len(products) == 0 {
		logger.Error("No products were built. Exiting.")
		os.Exit(1)
	}

	mongoWriter, err := storage.NewMongoWriter(cfg.MongoURI, cfg.MongoDB, cfg.MongoCollection, logger)
	if err != nil {
		logger.Error("Failed to connect to MongoDB: %v", err)
		os.Exit(1)
	}
	defer mongoWriter.Close()

	if err := mongoWriter.Write(products); err != nil {
		logger.Error("MongoDB write failed: %v", err)
		os.Exit(1)
	}

	logger.Info("Inserted %d products into %s.%s", len(products), cfg.MongoDB, cfg.MongoCollection)

	reportSvc := services.NewReportService(logger)
	reportSvc.Print(reportSvc.Generate(products))

	fmt.Printf("  Done. %d products → MongoDB (%s.%s)\n\n",
		len(products), cfg.MongoDB, cfg.MongoCollection)
}

func runAvailability(cfg *config.Config, logger *utils.Logger) {
	var identifiers []models.ProductIdentifier
	if err := storage.LoadJSONFile(cfg.IdentifiersPath(), &identifiers); err != nil {
		logger.Error("Failed to load product identifiers: %v", err)
		os.Exit(1)
	}

	codes := make([]string, 0, len(identifiers))
	for _, id := range identifiers {
		codes = append(codes, id.ID)
	}

	scraper, err := byggmakker.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to create availability scraper: %v", err)
		os.Exit(1)
	}

	logger.Info("Scraping availability for %s/%s started", cfg.CategoryL1, cfg.CategoryL2)
	scraper.Fetch(codes)
	logger.Info("Scraping availability for %s/%s finished", cfg.CategoryL1, cfg.CategoryL2)
}
