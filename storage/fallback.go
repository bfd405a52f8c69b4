package storage

import (
	"fmt"
	"sort"

	"costofliving/models"
)

type seedCity struct {
	keys   []string
	record models.FallbackRecord
}

// seedCities is the compiled-in reference data. Each city is registered under
// its plain key plus common variants; keys are already normalized
// (lowercase, no whitespace, no commas).
var seedCities = []seedCity{
	{[]string{"newyork", "newyorkcity", "newyorkny", "nyc"}, models.FallbackRecord{Housing: 3500, Outside: 2500, Meal: 20, Transport: 127, Utilities: 150}},
	{[]string{"sanfrancisco", "sanfranciscoca", "sf"}, models.FallbackRecord{Housing: 3200, Outside: 2600, Meal: 20, Transport: 81, Utilities: 160}},
	{[]string{"losangeles", "losangelesca", "la"}, models.FallbackRecord{Housing: 2500, Outside: 2000, Meal: 18, Transport: 100, Utilities: 170}},
	{[]string{"chicago", "chicagoil"}, models.FallbackRecord{Housing: 2100, Outside: 1500, Meal: 17, Transport: 75, Utilities: 140}},
	{[]string{"boston", "bostonma"}, models.FallbackRecord{Housing: 2900, Outside: 2200, Meal: 20, Transport: 90, Utilities: 170}},
	{[]string{"seattle", "seattlewa"}, models.FallbackRecord{Housing: 2300, Outside: 1800, Meal: 20, Transport: 99, Utilities: 180}},
	{[]string{"austin", "austintx"}, models.FallbackRecord{Housing: 1800, Outside: 1400, Meal: 15, Transport: 41, Utilities: 160}},
	{[]string{"miami", "miamifl"}, models.FallbackRecord{Housing: 2500, Outside: 1900, Meal: 18, Transport: 112, Utilities: 170}},
	{[]string{"denver", "denverco"}, models.FallbackRecord{Housing: 1900, Outside: 1500, Meal: 17, Transport: 114, Utilities: 150}},
	{[]string{"washington", "washingtondc", "washingtond.c.", "dc"}, models.FallbackRecord{Housing: 2400, Outside: 1900, Meal: 20, Transport: 64, Utilities: 160}},
	{[]string{"mountainview", "mountainviewca"}, models.FallbackRecord{Housing: 3000, Outside: 2500, Meal: 20, Transport: 80, Utilities: 150}},
	{[]string{"sandiego", "sandiegoca"}, models.FallbackRecord{Housing: 2500, Outside: 2000, Meal: 18, Transport: 72, Utilities: 150}},
	{[]string{"london", "londonuk", "londonengland"}, models.FallbackRecord{Housing: 2400, Outside: 1600, Meal: 18, Transport: 200, Utilities: 250}},
	{[]string{"paris", "parisfrance"}, models.FallbackRecord{Housing: 1300, Outside: 950, Meal: 15, Transport: 91, Utilities: 200}},
	{[]string{"berlin", "berlingermany"}, models.FallbackRecord{Housing: 1200, Outside: 850, Meal: 13, Transport: 55, Utilities: 290}},
	{[]string{"tokyo", "tokyojapan"}, models.FallbackRecord{Housing: 1000, Outside: 600, Meal: 8, Transport: 75, Utilities: 160}},
	{[]string{"sydney", "sydneyaustralia"}, models.FallbackRecord{Housing: 2300, Outside: 1700, Meal: 18, Transport: 120, Utilities: 190}},
	{[]string{"toronto", "torontoon", "torontocanada"}, models.FallbackRecord{Housing: 1950, Outside: 1650, Meal: 17, Transport: 115, Utilities: 130}},
	{[]string{"singapore"}, models.FallbackRecord{Housing: 2800, Outside: 1800, Meal: 10, Transport: 90, Utilities: 150}},
	{[]string{"amsterdam", "amsterdamnetherlands"}, models.FallbackRecord{Housing: 1900, Outside: 1450, Meal: 20, Transport: 100, Utilities: 230}},
}

// FallbackTable is an immutable map from normalized city key to reference
// figures. It is safe for concurrent use.
type FallbackTable struct {
	records map[string]models.FallbackRecord
}

// NewFallbackTable builds a table from the compiled-in seed data with the
// given extra entries layered on top, later entries winning.
func NewFallbackTable(extra ...[]models.FallbackEntry) *FallbackTable {
	records := make(map[string]models.FallbackRecord)
	for _, c := range seedCities {
		for _, k := range c.keys {
			records[k] = c.record
		}
	}
	for _, batch := range extra {
		for _, e := range batch {
			if e.Key == "" {
				continue
			}
			records[e.Key] = e.Record
		}
	}
	return &FallbackTable{records: records}
}

// Lookup returns the record for an exact normalized key.
func (t *FallbackTable) Lookup(key string) (models.FallbackRecord, bool) {
	rec, ok := t.records[key]
	return rec, ok
}

// Len returns the number of registered keys.
func (t *FallbackTable) Len() int {
	return len(t.records)
}

// Entries returns every key and record, sorted by key.
func (t *FallbackTable) Entries() []models.FallbackEntry {
	out := make([]models.FallbackEntry, 0, len(t.records))
	for k, r := range t.records {
		out = append(out, models.FallbackEntry{Key: k, Record: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// LoadFallbackTable builds a table from the seed data plus every source, in
// order. Each source is closed once read.
func LoadFallbackTable(sources ...FallbackSource) (*FallbackTable, error) {
	batches := make([][]models.FallbackEntry, 0, len(sources))
	for _, src := range sources {
		entries, err := src.LoadFallback()
		_ = src.Close()
		if err != nil {
			return nil, fmt.Errorf("load fallback: %w", err)
		}
		batches = append(batches, entries)
	}
	return NewFallbackTable(batches...), nil
}
