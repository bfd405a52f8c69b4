package services

import (
	"context"
	"strings"
	"time"

	"costofliving/models"
	"costofliving/utils"
)

// PriceScraper fetches and scans the cost page for a city slug.
type PriceScraper interface {
	ScrapeCity(ctx context.Context, slug string) (*models.ScanResult, error)
}

// DiscussionSearcher finds community threads about a city.
type DiscussionSearcher interface {
	Search(ctx context.Context, city string) ([]models.Discussion, error)
}

// CostServiceOptions wires a CostService. A nil Scraper or Discussions
// disables that source.
type CostServiceOptions struct {
	Scraper           PriceScraper
	Discussions       DiscussionSearcher
	Fallback          FallbackLookup
	ScrapeTimeout     time.Duration
	DiscussionTimeout time.Duration
	Logger            *utils.Logger
}

// CostService runs the full lookup for a city: scrape and discussion search
// in parallel, then fallback and assembly.
type CostService struct {
	scraper           PriceScraper
	discussions       DiscussionSearcher
	assembler         *Assembler
	scrapeTimeout     time.Duration
	discussionTimeout time.Duration
	logger            *utils.Logger
}

// NewCostService creates a CostService.
func NewCostService(opts CostServiceOptions) *CostService {
	if opts.ScrapeTimeout <= 0 {
		opts.ScrapeTimeout = 15 * time.Second
	}
	if opts.DiscussionTimeout <= 0 {
		opts.DiscussionTimeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}
	return &CostService{
		scraper:           opts.Scraper,
		discussions:       opts.Discussions,
		assembler:         NewAssembler(opts.Fallback),
		scrapeTimeout:     opts.ScrapeTimeout,
		discussionTimeout: opts.DiscussionTimeout,
		logger:            opts.Logger,
	}
}

// Lookup returns the cost breakdown for city. Fetch failures degrade to the
// fallback table and an empty discussion list; the only error a caller
// should expect is *CityNotFoundError.
func (s *CostService) Lookup(ctx context.Context, city string) (*models.CostResult, error) {
	city = strings.TrimSpace(city)
	slug := CitySlug(city)

	var (
		scraped     models.CategoryMap
		discussions []models.Discussion
	)

	pool := utils.NewWorkerPool(2)
	pool.Submit(func() {
		scraped = s.scrape(ctx, city, slug)
	})
	pool.Submit(func() {
		discussions = s.searchDiscussions(ctx, city)
	})
	pool.Wait()

	result, err := s.assembler.Assemble(city, scraped, discussions)
	if err != nil {
		s.logger.Warn("[costs] %q: %v", city, err)
		return nil, err
	}

	s.logger.Info("[costs] %q resolved (%s, %d discussions)", city, result.DataQuality, len(result.Discussions))
	return result, nil
}

func (s *CostService) scrape(ctx context.Context, city, slug string) (cats models.CategoryMap) {
	if s.scraper == nil {
		return nil
	}
	if slug == "" {
		s.logger.Warn("[costs] %q has no usable slug, skipping scrape", city)
		return nil
	}
	defer s.recoverJob("scrape", city)

	ctx, cancel := context.WithTimeout(ctx, s.scrapeTimeout)
	defer cancel()

	result, err := s.scraper.ScrapeCity(ctx, slug)
	if err != nil {
		s.logger.Warn("[costs] scrape %q failed, using fallback: %v", slug, err)
		return nil
	}
	if result == nil {
		return nil
	}
	if _, ok := result.Categories.Get(models.HousingCenter); !ok {
		s.logger.Warn("[costs] scrape %q found %d rows but no city-centre rent", slug, len(result.Raw))
	}
	return result.Categories
}

func (s *CostService) searchDiscussions(ctx context.Context, city string) []models.Discussion {
	if s.discussions == nil || city == "" {
		return nil
	}
	defer s.recoverJob("discussions", city)

	ctx, cancel := context.WithTimeout(ctx, s.discussionTimeout)
	defer cancel()

	found, err := s.discussions.Search(ctx, city)
	if err != nil {
		s.logger.Warn("[costs] discussion search for %q failed: %v", city, err)
		return nil
	}
	return found
}

// recoverJob keeps a panicking fetch from taking the process down; the
// source is treated as having returned nothing.
func (s *CostService) recoverJob(job, city string) {
	if r := recover(); r != nil {
		s.logger.Error("[costs] %s for %q panicked: %v", job, city, r)
	}
}
