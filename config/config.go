package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port     string
	LogLevel string
	GinMode  string

	NumbeoBaseURL      string
	RedditSearchURL    string
	ScrapeTimeout      time.Duration
	DiscussionTimeout  time.Duration
	ScrapingEnabled    bool
	DiscussionsEnabled bool
	ScrapeMode         string
	ChromeBin          string

	CORSAllowedOrigins []string

	FallbackCSVPath string
	FallbackDSN     string
}

// Scrape modes.
const (
	ScrapeModeHTTP    = "http"
	ScrapeModeBrowser = "browser"
)

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		Port:     getEnv("PORT", "3001"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		GinMode:  getEnv("GIN_MODE", "release"),

		NumbeoBaseURL:      strings.TrimRight(getEnv("NUMBEO_BASE_URL", "https://www.numbeo.com"), "/"),
		RedditSearchURL:    getEnv("REDDIT_SEARCH_URL", "https://www.reddit.com/search.json"),
		ScrapeTimeout:      getEnvDuration("SCRAPE_TIMEOUT", 15*time.Second),
		DiscussionTimeout:  getEnvDuration("DISCUSSION_TIMEOUT", 5*time.Second),
		ScrapingEnabled:    getEnvBool("SCRAPING_ENABLED", true),
		DiscussionsEnabled: getEnvBool("DISCUSSIONS_ENABLED", true),
		ScrapeMode:         strings.ToLower(getEnv("SCRAPE_MODE", ScrapeModeHTTP)),
		ChromeBin:          getEnv("CHROME_BIN", ""),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		FallbackCSVPath: getEnv("FALLBACK_CSV_PATH", ""),
		FallbackDSN:     getEnv("FALLBACK_DSN", ""),
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
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

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("15s") or a bare number of
// milliseconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if ms := getEnvInt(key, -1); ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
