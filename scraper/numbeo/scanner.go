package numbeo

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"costofliving/models"
	"costofliving/services"
)

var (
	// ErrNoTables means the document had no table elements at all.
	ErrNoTables = errors.New("numbeo: no tables in document")
	// ErrNoPriceRows means tables were present but no row had a label and a price.
	ErrNoPriceRows = errors.New("numbeo: no price rows found")
)

// priceTableSelector lists the table layouts the cost page is known to use.
// If none are present every table in the document is scanned.
const priceTableSelector = "table.data_wide_table, table.table_builder_with_value_explanation"

// Scan walks every row of every candidate table, collecting labeled prices
// and classifying them. A later row overwrites an earlier one for the same
// category. ErrNoTables is returned, along with an empty result, when the
// document contains no tables.
func Scan(doc *goquery.Document) (*models.ScanResult, error) {
	result := &models.ScanResult{Categories: make(models.CategoryMap)}

	tables := doc.Find(priceTableSelector)
	if tables.Length() == 0 {
		tables = doc.Find("table")
	}
	result.TablesFound = tables.Length()
	if result.TablesFound == 0 {
		return result, ErrNoTables
	}

	tables.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Children().Filter("td, th")
		if cells.Length() < 2 {
			return
		}

		label := normaliseText(cells.Eq(0).Text())
		price, ok := services.ParsePrice(cells.Eq(1).Text())
		if label == "" || !ok {
			return
		}

		result.Raw = append(result.Raw, models.RawPriceRow{Label: label, Price: price})
		if cat, ok := services.Classify(label); ok {
			result.Categories[cat] = price
		}
	})

	return result, nil
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
