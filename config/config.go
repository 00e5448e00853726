package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// defaultUserAgents is the pool the availability scraper picks from when
// USER_AGENTS is not set. Injected into the scraper at construction.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	MongoURI        string
	MongoDB         string
	MongoCollection string

	DataDir       string
	CategoryL1    string
	CategoryL2    string
	StoreInfoPath string

	AvailabilityBaseURL string
	MaxConcurrency      int
	HTTPTimeoutMs       int
	RateLimitMs         int
	UserAgents          []string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		MongoURI:        getEnv("MONGODB_URI", ""),
		MongoDB:         getEnv("MONGODB_DB", "byggmakker"),
		MongoCollection: getEnv("MONGODB_COLLECTION", "products"),

		DataDir:       getEnv("DATA_DIR", "data"),
		CategoryL1:    getEnv("CATEGORY_L1", "gulv"),
		CategoryL2:    getEnv("CATEGORY_L2", "laminatgulv"),
		StoreInfoPath: getEnv("STORE_INFO_PATH", "store_info.json"),

		AvailabilityBaseURL: getEnv("AVAILABILITY_BASE_URL", "https://www.byggmakker.no/api/availability/"),
		MaxConcurrency:      getEnvInt("MAX_CONCURRENCY", 20),
		HTTPTimeoutMs:       getEnvInt("HTTP_TIMEOUT_MS", 60000),
		RateLimitMs:         getEnvInt("RATE_LIMIT_MS", 0),
		UserAgents:          getEnvList("USER_AGENTS", defaultUserAgents),
	}
}

// CategoryDir returns the data directory for the configured category pair,
// e.g. data/gulv/laminatgulv.
func (c *Config) CategoryDir() string {
	return filepath.Join(c.DataDir, c.CategoryL1, c.CategoryL2)
}

// DescriptionsPath is the product description input file.
func (c *Config) DescriptionsPath() string {
	return filepath.Join(c.CategoryDir(), "product_description.json")
}

// IdentifiersPath is the product identifier input file.
func (c *Config) IdentifiersPath() string {
	return filepath.Join(c.CategoryDir(), "products_ids.json")
}

// PricesPath is the per-store price records input file.
func (c *Config) PricesPath() string {
	return filepath.Join(c.CategoryDir(), "prices", "product_prices.json")
}

// AvailabilityDir is the output directory for availability files.
func (c *Config) AvailabilityDir() string {
	return filepath.Join(c.CategoryDir(), "availability")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}

	var items []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
