package byggmakker

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"byggmakker-scraper/config"
	"byggmakker-scraper/utils"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		DataDir:             t.TempDir(),
		CategoryL1:          "gulv",
		CategoryL2:          "laminatgulv",
		AvailabilityBaseURL: baseURL,
		MaxConcurrency:      5,
		HTTPTimeoutMs:       5000,
		UserAgents:          []string{"test-agent/1.0"},
	}
}

func TestFetchWritesOneFilePerCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimPrefix(r.URL.Path, "/")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ean":"` + code + `","stores":[{"name":"Oslo Økern","available":true}]}`))
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL+"/")
	s, err := New(cfg, utils.NewLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	codes := []string{"111", "222", "333"}
	s.Fetch(codes)

	for _, code := range codes {
		path := filepath.Join(cfg.AvailabilityDir(), code+"_availability.json")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected output file for %s: %v", code, err)
		}
		if !strings.Contains(string(data), `"ean": "`+code+`"`) {
			t.Errorf("file for %s is not pretty-printed with its payload:\n%s", code, data)
		}
		// Non-ASCII must be preserved unescaped.
		if !strings.Contains(string(data), "Økern") {
			t.Errorf("file for %s escaped non-ASCII content:\n%s", code, data)
		}
	}
}

func TestFetchIsolatesFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimPrefix(r.URL.Path, "/")
		switch code {
		case "broken":
			w.WriteHeader(http.StatusInternalServerError)
		case "garbled":
			w.Write([]byte(`{"ean": not json`))
		default:
			w.Write([]byte(`{"ean":"` + code + `"}`))
		}
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL+"/")
	s, err := New(cfg, utils.NewLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Fetch must not panic or abort the batch on per-item failures.
	s.Fetch([]string{"111", "broken", "garbled", "222"})

	for _, code := range []string{"111", "222"} {
		path := filepath.Join(cfg.AvailabilityDir(), code+"_availability.json")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("sibling fetch %s should have succeeded: %v", code, err)
		}
	}
	for _, code := range []string{"broken", "garbled"} {
		path := filepath.Join(cfg.AvailabilityDir(), code+"_availability.json")
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("failed fetch %s must leave no output file", code)
		}
	}
}

func TestFetchSkipsDuplicateCodes(t *testing.T) {
	var mu sync.Mutex
	hits := make(map[string]int)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimPrefix(r.URL.Path, "/")
		mu.Lock()
		hits[code]++
		mu.Unlock()
		w.Write([]byte(`{"ean":"` + code + `"}`))
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL+"/")
	s, err := New(cfg, utils.NewLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	s.Fetch([]string{"111", "111", "111"})

	if hits["111"] != 1 {
		t.Errorf("duplicate code fetched %d times, want 1", hits["111"])
	}
}

func TestFetchSendsConfiguredUserAgent(t *testing.T) {
	var mu sync.Mutex
	var agents []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		agents = append(agents, r.Header.Get("User-Agent"))
		mu.Unlock()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL+"/")
	cfg.UserAgents = []string{"only-agent/2.0"}

	s, err := New(cfg, utils.NewLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	s.Fetch([]string{"111", "222"})

	for _, ua := range agents {
		if ua != "only-agent/2.0" {
			t.Errorf("User-Agent: got %q, want the injected pool entry", ua)
		}
	}
}

func TestNewCreatesOutputDirectory(t *testing.T) {
	cfg := testConfig(t, "http://unused/")

	if _, err := New(cfg, utils.NewLogger()); err != nil {
		t.Fatalf("New: %v", err)
	}

	info, err := os.Stat(cfg.AvailabilityDir())
	if err != nil || !info.IsDir() {
		t.Errorf("availability dir was not created: %v", err)
	}
}
