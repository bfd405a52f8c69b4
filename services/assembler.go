package services

import (
	"math"
	"strings"
	"time"

	"costofliving/models"
)

const (
	currencyUSD = "USD"

	// MaxDiscussions caps the discussion references attached to a result.
	MaxDiscussions = 5

	qualityLive      = "live"
	qualityEstimated = "estimated"

	sourceLive        = "Numbeo (live data)"
	sourceEstimated   = "Estimated from regional averages"
	sourceDiscussions = "Reddit community discussions"
)

// Display labels for the five output categories.
const (
	LabelHousing        = "Housing (1BR Apartment)"
	LabelGroceries      = "Groceries"
	LabelTransportation = "Transportation (Monthly Pass)"
	LabelUtilities      = "Utilities (Basic)"
	LabelEntertainment  = "Entertainment"
)

// FallbackLookup resolves a normalized city key to reference figures.
type FallbackLookup interface {
	Lookup(key string) (models.FallbackRecord, bool)
}

// Assembler picks a data source for a city and shapes the final result.
type Assembler struct {
	fallback FallbackLookup
	now      func() time.Time
}

// NewAssembler creates an Assembler backed by the given fallback table.
func NewAssembler(fallback FallbackLookup) *Assembler {
	return &Assembler{fallback: fallback, now: time.Now}
}

// Resolve returns the category map to build the result from. Scraped data is
// used only when it carries a positive city-centre housing price; otherwise
// the fallback table is consulted. live reports which source won.
func (a *Assembler) Resolve(city string, scraped models.CategoryMap) (cats models.CategoryMap, live bool, err error) {
	if _, ok := positive(scraped, models.HousingCenter); ok {
		return scraped, true, nil
	}

	if a.fallback == nil {
		return nil, false, newCityNotFoundError(city)
	}
	rec, ok := a.fallback.Lookup(FallbackKey(city))
	if !ok {
		return nil, false, newCityNotFoundError(city)
	}
	return rec.Categories(), false, nil
}

// Assemble resolves the data source, backfills gaps and builds the result.
func (a *Assembler) Assemble(city string, scraped models.CategoryMap, discussions []models.Discussion) (*models.CostResult, error) {
	cats, live, err := a.Resolve(city, scraped)
	if err != nil {
		return nil, err
	}
	return a.build(city, cats, live, discussions), nil
}

func (a *Assembler) build(city string, cats models.CategoryMap, live bool, discussions []models.Discussion) *models.CostResult {
	meal, mealKnown := positive(cats, models.MealRestaurant)

	result := &models.CostResult{
		City:        strings.TrimSpace(city),
		Currency:    currencyUSD,
		LastUpdated: a.now().UTC(),
		Categories: models.CostCategories{
			Housing: models.HousingCost{
				Label:      LabelHousing,
				CityCenter: valueOr(cats, models.HousingCenter, DefaultHousingCenter),
				Outside:    valueOr(cats, models.HousingOutside, DefaultHousingOutside),
			},
			Groceries: models.MonthlyCost{
				Label:   LabelGroceries,
				Monthly: EstimateGroceries(meal, mealKnown),
			},
			Transportation: models.MonthlyCost{
				Label:   LabelTransportation,
				Monthly: valueOr(cats, models.Transportation, DefaultTransportation),
			},
			Utilities: models.MonthlyCost{
				Label:   LabelUtilities,
				Monthly: valueOr(cats, models.Utilities, DefaultUtilities),
			},
			Entertainment: models.MonthlyCost{
				Label:   LabelEntertainment,
				Monthly: EstimateEntertainment(meal, mealKnown),
			},
		},
		Discussions: capDiscussions(discussions),
	}

	if live {
		result.DataQuality = qualityLive
		result.Sources = []string{sourceLive}
	} else {
		result.DataQuality = qualityEstimated
		result.Sources = []string{sourceEstimated}
	}
	if len(result.Discussions) > 0 {
		result.Sources = append(result.Sources, sourceDiscussions)
	}
	return result
}

// positive treats zero and negative prices as missing.
func positive(cats models.CategoryMap, c models.Category) (float64, bool) {
	v, ok := cats.Get(c)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

func valueOr(cats models.CategoryMap, c models.Category, def float64) float64 {
	if v, ok := positive(cats, c); ok {
		return math.Round(v)
	}
	return def
}

func capDiscussions(in []models.Discussion) []models.Discussion {
	if len(in) > MaxDiscussions {
		in = in[:MaxDiscussions]
	}
	out := make([]models.Discussion, len(in))
	copy(out, in)
	return out
}
