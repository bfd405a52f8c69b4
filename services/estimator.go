package services

import "math"

// Defaults used when a category is still missing after scrape and fallback.
const (
	DefaultGroceries      = 400
	DefaultMealPrice      = 15
	DefaultHousingCenter  = 1200
	DefaultHousingOutside = 800
	DefaultTransportation = 70
	DefaultUtilities      = 150
)

// mealsPerMonth is the number of meals groceries stand in for; groceries
// cost a third of eating the same meals out.
const mealsPerMonth = 60

// EstimateGroceries approximates monthly groceries from an inexpensive
// restaurant meal price. A non-positive price counts as unknown.
func EstimateGroceries(mealPrice float64, known bool) float64 {
	if !known || mealPrice <= 0 {
		return DefaultGroceries
	}
	return math.Round(mealPrice * mealsPerMonth / 3)
}

// EstimateEntertainment approximates monthly entertainment spend as ten
// restaurant meals.
func EstimateEntertainment(mealPrice float64, known bool) float64 {
	if !known || mealPrice <= 0 {
		mealPrice = DefaultMealPrice
	}
	return math.Round(mealPrice * 10)
}
