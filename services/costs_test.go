package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costofliving/models"
	"costofliving/services"
	"costofliving/storage"
)

type stubScraper struct {
	result *models.ScanResult
	err    error
	delay  time.Duration
	panics bool
	slugs  []string
}

func (s *stubScraper) ScrapeCity(ctx context.Context, slug string) (*models.ScanResult, error) {
	s.slugs = append(s.slugs, slug)
	if s.panics {
		panic("scraper exploded")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.result, s.err
}

type stubSearcher struct {
	found []models.Discussion
	err   error
	delay time.Duration
	calls int32
}

func (s *stubSearcher) Search(ctx context.Context, _ string) ([]models.Discussion, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.found, s.err
}

func newService(scraper services.PriceScraper, searcher services.DiscussionSearcher) *services.CostService {
	return services.NewCostService(services.CostServiceOptions{
		Scraper:           scraper,
		Discussions:       searcher,
		Fallback:          storage.NewFallbackTable(),
		ScrapeTimeout:     200 * time.Millisecond,
		DiscussionTimeout: 100 * time.Millisecond,
	})
}

func assertNewYorkFallback(t *testing.T, r *models.CostResult) {
	t.Helper()
	c := r.Categories
	assert.Equal(t, 3500.0, c.Housing.CityCenter)
	assert.Equal(t, 2500.0, c.Housing.Outside)
	assert.Equal(t, 400.0, c.Groceries.Monthly)
	assert.Equal(t, 127.0, c.Transportation.Monthly)
	assert.Equal(t, 150.0, c.Utilities.Monthly)
	assert.Equal(t, 200.0, c.Entertainment.Monthly)
	assert.Equal(t, "estimated", r.DataQuality)
}

func TestLookupNewYorkWithScrapingDisabled(t *testing.T) {
	svc := newService(nil, nil)

	r, err := svc.Lookup(context.Background(), "new york")
	require.NoError(t, err)
	assertNewYorkFallback(t, r)
	assert.Equal(t, "USD", r.Currency)
	assert.Empty(t, r.Discussions)
}

func TestLookupNewYorkWithScrapeFailing(t *testing.T) {
	scraper := &stubScraper{err: errors.New("connection refused")}
	svc := newService(scraper, nil)

	r, err := svc.Lookup(context.Background(), "new york")
	require.NoError(t, err)
	assertNewYorkFallback(t, r)
	assert.Equal(t, []string{"new-york"}, scraper.slugs)
}

func TestLookupScrapeTimeoutDegradesToFallback(t *testing.T) {
	scraper := &stubScraper{
		delay:  time.Second,
		result: &models.ScanResult{Categories: models.CategoryMap{models.HousingCenter: 1}},
	}
	svc := newService(scraper, nil)

	start := time.Now()
	r, err := svc.Lookup(context.Background(), "new york")
	require.NoError(t, err)
	assert.True(t, time.Since(start) < 900*time.Millisecond, "scrape timeout not honored")
	assertNewYorkFallback(t, r)
}

func TestLookupScraperPanicDegradesToFallback(t *testing.T) {
	svc := newService(&stubScraper{panics: true}, nil)

	r, err := svc.Lookup(context.Background(), "new york")
	require.NoError(t, err)
	assertNewYorkFallback(t, r)
}

func TestLookupUsesLiveData(t *testing.T) {
	scraper := &stubScraper{result: &models.ScanResult{
		Categories: models.CategoryMap{
			models.HousingCenter:  4000,
			models.HousingOutside: 2800,
			models.MealRestaurant: 25,
			models.Transportation: 132,
			models.Utilities:      180.6,
		},
		Raw: []models.RawPriceRow{{Label: "x", Price: 1}},
	}}
	searcher := &stubSearcher{found: []models.Discussion{{Title: "Moving to NYC", Subreddit: "nyc"}}}
	svc := newService(scraper, searcher)

	r, err := svc.Lookup(context.Background(), "New York, NY")
	require.NoError(t, err)
	assert.Equal(t, "live", r.DataQuality)
	assert.Equal(t, []string{"New-York"}, scraper.slugs)
	assert.Equal(t, 4000.0, r.Categories.Housing.CityCenter)
	assert.Equal(t, 500.0, r.Categories.Groceries.Monthly)
	assert.Equal(t, 250.0, r.Categories.Entertainment.Monthly)
	assert.Equal(t, 181.0, r.Categories.Utilities.Monthly)
	require.Len(t, r.Discussions, 1)
	assert.Len(t, r.Sources, 2)
}

func TestLookupDiscussionFailureIsNotFatal(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("503")}
	svc := newService(nil, searcher)

	r, err := svc.Lookup(context.Background(), "London")
	require.NoError(t, err)
	assert.Empty(t, r.Discussions)
	assert.Equal(t, int32(1), atomic.LoadInt32(&searcher.calls))
}

func TestLookupDiscussionTimeoutIsNotFatal(t *testing.T) {
	searcher := &stubSearcher{delay: time.Second, found: []models.Discussion{{Title: "late"}}}
	svc := newService(nil, searcher)

	r, err := svc.Lookup(context.Background(), "London")
	require.NoError(t, err)
	assert.Empty(t, r.Discussions)
}

func TestLookupUnknownCity(t *testing.T) {
	svc := newService(&stubScraper{err: errors.New("404")}, &stubSearcher{})

	r, err := svc.Lookup(context.Background(), "Nowhereville")
	assert.Nil(t, r)

	var nf *services.CityNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.NotEmpty(t, nf.Suggestion)
	assert.NotEmpty(t, nf.Tip)
}

func TestLookupEmptySlugSkipsScrape(t *testing.T) {
	scraper := &stubScraper{}
	svc := newService(scraper, nil)

	_, err := svc.Lookup(context.Background(), "!!!")
	assert.Error(t, err)
	assert.Empty(t, scraper.slugs)
}

func TestLookupIsIdempotent(t *testing.T) {
	svc := newService(nil, nil)

	first, err := svc.Lookup(context.Background(), "new york")
	require.NoError(t, err)
	second, err := svc.Lookup(context.Background(), "new york")
	require.NoError(t, err)
	assert.Equal(t, first.Categories, second.Categories)
}
