package numbeo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"costofliving/models"
	"costofliving/utils"
)

// ErrEmptySlug means the city name had nothing left to build a URL from.
var ErrEmptySlug = errors.New("numbeo: empty city slug")

// Scraper pulls cost-of-living tables for a city.
type Scraper struct {
	baseURL string
	fetcher PageFetcher
	logger  *utils.Logger
}

// New creates a Scraper that fetches pages under baseURL.
func New(baseURL string, fetcher PageFetcher, logger *utils.Logger) *Scraper {
	return &Scraper{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
		logger:  logger,
	}
}

// CostPageURL returns the cost page address for a slug.
func (s *Scraper) CostPageURL(slug string) string {
	return s.baseURL + "/cost-of-living/in/" + slug
}

// ScrapeCity fetches and scans the cost page for slug. It fails with
// ErrNoTables or ErrNoPriceRows when the page yields nothing usable.
func (s *Scraper) ScrapeCity(ctx context.Context, slug string) (*models.ScanResult, error) {
	if slug == "" {
		return nil, ErrEmptySlug
	}

	pageURL := s.CostPageURL(slug)
	s.logger.Debug("[numbeo] Fetching %s", pageURL)

	doc, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	result, err := Scan(doc)
	if err != nil {
		return result, fmt.Errorf("scan %s: %w", pageURL, err)
	}
	if len(result.Raw) == 0 {
		return result, fmt.Errorf("scan %s: %w", pageURL, ErrNoPriceRows)
	}

	s.logger.Info("[numbeo] %s: %d tables, %d price rows, %d categories",
		slug, result.TablesFound, len(result.Raw), len(result.Categories))
	return result, nil
}
