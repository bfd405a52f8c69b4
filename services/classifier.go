package services

import (
	"regexp"

	"costofliving/models"
)

var (
	oneBedroomRe     = regexp.MustCompile(`(?i)\b(?:1|one)[\s-]*bed(?:room)?s?\b`)
	cityCentreRe     = regexp.MustCompile(`(?i)city\s*cent(?:re|er)`)
	outsideCentreRe  = regexp.MustCompile(`(?i)outside\s+(?:of\s+)?(?:the\s+)?(?:city\s+)?cent(?:re|er)`)
	mealRe           = regexp.MustCompile(`(?i)meal`)
	inexpensiveRe    = regexp.MustCompile(`(?i)inexpensive|cheap`)
	restaurantRe     = regexp.MustCompile(`(?i)restaurant`)
	monthlyPassRe    = regexp.MustCompile(`(?i)monthly\s+pass|public\s+transport`)
	basicUtilitiesRe = regexp.MustCompile(`(?i)basic\s+utilities`)
	electricityRe    = regexp.MustCompile(`(?i)electricity`)
	heatingRe        = regexp.MustCompile(`(?i)heating`)
	coolingRe        = regexp.MustCompile(`(?i)cooling`)
)

// classifierRule assigns category to every label accepted by match.
type classifierRule struct {
	category models.Category
	match    func(label string) bool
}

func allOf(res ...*regexp.Regexp) func(string) bool {
	return func(s string) bool {
		for _, re := range res {
			if !re.MatchString(s) {
				return false
			}
		}
		return true
	}
}

func anyOf(preds ...func(string) bool) func(string) bool {
	return func(s string) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}

// rules are evaluated in order; the first match wins.
var rules = []classifierRule{
	// "Outside of City Centre" also mentions the city centre.
	{models.HousingCenter, func(s string) bool {
		return allOf(oneBedroomRe, cityCentreRe)(s) && !outsideCentreRe.MatchString(s)
	}},
	{models.HousingOutside, allOf(oneBedroomRe, outsideCentreRe)},
	{models.MealRestaurant, allOf(mealRe, inexpensiveRe, restaurantRe)},
	{models.Transportation, allOf(monthlyPassRe)},
	{models.Utilities, anyOf(allOf(basicUtilitiesRe), allOf(electricityRe, heatingRe, coolingRe))},
}

// Classify returns the cost category for a table row label. The second
// return value is false when no rule matches.
func Classify(label string) (models.Category, bool) {
	for _, r := range rules {
		if r.match(label) {
			return r.category, true
		}
	}
	return "", false
}
