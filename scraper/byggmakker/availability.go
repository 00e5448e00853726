package byggmakker

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"byggmakker-scraper/config"
	"byggmakker-scraper/utils"
)

// AvailabilityScraper fetches per-product availability JSON from the
// Byggmakker API and writes one pretty-printed file per product code.
type AvailabilityScraper struct {
	baseURL   string
	outDir    string
	userAgent string
	logger    *utils.Logger
	pool      *utils.WorkerPool
	seen      *utils.CodeSet
	client    *http.Client
}

// New creates a ready-to-use AvailabilityScraper. One User-Agent is
// picked from the configured pool per scraper instance, and the output
// directory tree is created if absent.
func New(cfg *config.Config, logger *utils.Logger) (*AvailabilityScraper, error) {
	userAgent := ""
	if len(cfg.UserAgents) > 0 {
		userAgent = cfg.UserAgents[rand.Intn(len(cfg.UserAgents))]
	}

	outDir := cfg.AvailabilityDir()
	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return nil, fmt.Errorf("availability: create output dir %q: %w", outDir, err)
		}
		logger.Info("[availability] Created directory: %s", outDir)
	}

	return &AvailabilityScraper{
		baseURL:   cfg.AvailabilityBaseURL,
		outDir:    outDir,
		userAgent: userAgent,
		logger:    logger,
		pool:      utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		seen:      utils.NewCodeSet(),
		client:    &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond},
	}, nil
}

// Fetch retrieves availability for every product code and blocks until
// the whole batch has completed. Failures are isolated per code: they are
// logged and leave no output file, but never abort sibling fetches.
func (s *AvailabilityScraper) Fetch(codes []string) {
	s.logger.Info("[availability] Fetching %d product codes from %s", len(codes), s.baseURL)

	for _, code := range codes {
		if !s.seen.Add(code) {
			s.logger.Debug("[availability] Duplicate code skipped: %s", code)
			continue
		}

		code := code
		s.pool.Submit(func() {
			s.fetchOne(code)
		})
	}

	s.pool.Wait()
	s.logger.Info("[availability] Batch finished — %d unique codes", s.seen.Size())
}

func (s *AvailabilityScraper) fetchOne(code string) {
	url := s.baseURL + code

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		s.logger.Error("[availability] Product %s: build request for %s: %v", code, url, err)
		return
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("[availability] Product %s: fetch %s: %v", code, url, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("[availability] Product %s: %s returned status %d", code, url, resp.StatusCode)
		return
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		s.logger.Error("[availability] Product %s: decode %s: %v", code, url, err)
		return
	}

	if err := s.writeFile(code, payload); err != nil {
		s.logger.Error("[availability] Product %s: %v", code, err)
	}
}

// writeFile persists the payload pretty-printed, with non-ASCII and HTML
// characters left unescaped.
func (s *AvailabilityScraper) writeFile(code string, payload any) error {
	path := filepath.Join(s.outDir, code+"_availability.json")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
