package models

import "time"

// Category is one of the fixed cost categories a price row can be classified into.
type Category string

const (
	HousingCenter  Category = "housingCenter"
	HousingOutside Category = "housingOutside"
	MealRestaurant Category = "mealRestaurant"
	Transportation Category = "transportation"
	Utilities      Category = "utilities"
)

// RawPriceRow is a labeled price pulled from a scraped table, classified or not.
type RawPriceRow struct {
	Label string
	Price float64
}

// CategoryMap holds at most one value per category. A missing key means the
// category was not found.
type CategoryMap map[Category]float64

// Get returns the value for c and whether it is present.
func (m CategoryMap) Get(c Category) (float64, bool) {
	v, ok := m[c]
	return v, ok
}

// ScanResult is the outcome of one pass over a scraped document.
type ScanResult struct {
	Categories  CategoryMap
	Raw         []RawPriceRow
	TablesFound int
}

// FallbackRecord holds pre-vetted monthly figures for a known city.
type FallbackRecord struct {
	Housing   float64
	Outside   float64
	Meal      float64
	Transport float64
	Utilities float64
}

// Categories maps the record onto the same shape the scanner produces.
func (r FallbackRecord) Categories() CategoryMap {
	return CategoryMap{
		HousingCenter:  r.Housing,
		HousingOutside: r.Outside,
		MealRestaurant: r.Meal,
		Transportation: r.Transport,
		Utilities:      r.Utilities,
	}
}

// FallbackEntry pairs a normalized city key with its record. Used by the
// CSV and PostgreSQL fallback sources.
type FallbackEntry struct {
	Key    string
	Record FallbackRecord
}

// Discussion is a community thread about living costs in a city.
type Discussion struct {
	Title     string `json:"title"`
	Subreddit string `json:"subreddit"`
	URL       string `json:"url"`
	Score     int    `json:"score"`
	Comments  int    `json:"comments"`
}

// HousingCost is the housing category entry; it carries two amounts.
type HousingCost struct {
	Label      string  `json:"label"`
	CityCenter float64 `json:"cityCenter"`
	Outside    float64 `json:"outside"`
}

// MonthlyCost is a single-amount category entry.
type MonthlyCost struct {
	Label   string  `json:"label"`
	Monthly float64 `json:"monthly"`
}

// CostCategories is the fixed five-category output schema.
type CostCategories struct {
	Housing        HousingCost `json:"housing"`
	Groceries      MonthlyCost `json:"groceries"`
	Transportation MonthlyCost `json:"transportation"`
	Utilities      MonthlyCost `json:"utilities"`
	Entertainment  MonthlyCost `json:"entertainment"`
}

// CostResult is the externally visible answer for one city lookup.
type CostResult struct {
	City        string         `json:"city"`
	Currency    string         `json:"currency"`
	LastUpdated time.Time      `json:"lastUpdated"`
	DataQuality string         `json:"dataQuality"`
	Categories  CostCategories `json:"categories"`
	Sources     []string       `json:"sources"`
	Discussions []Discussion   `json:"discussions"`
}
