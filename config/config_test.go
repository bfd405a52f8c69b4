package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "SCRAPE_TIMEOUT", "DISCUSSION_TIMEOUT", "SCRAPING_ENABLED",
		"SCRAPE_MODE", "CORS_ALLOWED_ORIGINS", "NUMBEO_BASE_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "3001" {
		t.Errorf("Port: got %q, want %q", cfg.Port, "3001")
	}
	if cfg.ScrapeTimeout != 15*time.Second {
		t.Errorf("ScrapeTimeout: got %v, want 15s", cfg.ScrapeTimeout)
	}
	if cfg.DiscussionTimeout != 5*time.Second {
		t.Errorf("DiscussionTimeout: got %v, want 5s", cfg.DiscussionTimeout)
	}
	if !cfg.ScrapingEnabled {
		t.Error("ScrapingEnabled should default to true")
	}
	if cfg.ScrapeMode != ScrapeModeHTTP {
		t.Errorf("ScrapeMode: got %q, want %q", cfg.ScrapeMode, ScrapeModeHTTP)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("CORSAllowedOrigins: got %v, want [*]", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SCRAPE_TIMEOUT", "2500")
	t.Setenv("DISCUSSION_TIMEOUT", "1s")
	t.Setenv("SCRAPING_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("NUMBEO_BASE_URL", "http://localhost:9999/")

	cfg := Load()

	if cfg.Addr() != ":8080" {
		t.Errorf("Addr: got %q, want %q", cfg.Addr(), ":8080")
	}
	if cfg.ScrapeTimeout != 2500*time.Millisecond {
		t.Errorf("ScrapeTimeout: got %v, want 2.5s", cfg.ScrapeTimeout)
	}
	if cfg.DiscussionTimeout != time.Second {
		t.Errorf("DiscussionTimeout: got %v, want 1s", cfg.DiscussionTimeout)
	}
	if cfg.ScrapingEnabled {
		t.Error("ScrapingEnabled should be false")
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Errorf("CORSAllowedOrigins: got %v, want 2 entries", cfg.CORSAllowedOrigins)
	}
	if cfg.NumbeoBaseURL != "http://localhost:9999" {
		t.Errorf("NumbeoBaseURL: got %q", cfg.NumbeoBaseURL)
	}
}
