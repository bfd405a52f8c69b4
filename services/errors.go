package services

import (
	"fmt"
	"strings"
)

// ExampleCities are known-good lookups offered when a city cannot be resolved.
var ExampleCities = []string{"New York", "San Francisco", "London", "Tokyo", "Berlin"}

// CityNotFoundError is returned when neither scraping nor the fallback table
// produced data for a city.
type CityNotFoundError struct {
	City       string
	Suggestion string
	Tip        string
	Examples   []string
}

func (e *CityNotFoundError) Error() string {
	return fmt.Sprintf("no cost of living data for %q", e.City)
}

func newCityNotFoundError(city string) *CityNotFoundError {
	suggestion := fmt.Sprintf("Try one of these cities: %s", strings.Join(ExampleCities, ", "))
	if strings.Contains(strings.ToLower(city), "mountain") {
		suggestion = `Try "Mountain View" without the state suffix, or a nearby major city such as San Francisco`
	}
	return &CityNotFoundError{
		City:       city,
		Suggestion: suggestion,
		Tip:        "Use the plain English city name, e.g. \"Los Angeles\" or \"Paris\"",
		Examples:   ExampleCities,
	}
}
