package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"costofliving/models"
	"costofliving/services"
)

var csvHeader = []string{"city", "housing", "outside", "meal", "transport", "utilities"}

// CSVWriter exports fallback entries to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteFallback appends one row per entry.
func (c *CSVWriter) WriteFallback(entries []models.FallbackEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range entries {
		r := e.Record
		row := []string{
			e.Key,
			formatAmount(r.Housing),
			formatAmount(r.Outside),
			formatAmount(r.Meal),
			formatAmount(r.Transport),
			formatAmount(r.Utilities),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

// CSVSource reads fallback entries from a CSV file with the same layout
// CSVWriter produces. City names are normalized into lookup keys.
type CSVSource struct {
	file *os.File
}

// NewCSVSource opens the CSV file at path.
func NewCSVSource(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	return &CSVSource{file: f}, nil
}

// LoadFallback reads every row. A header row is skipped if present.
func (s *CSVSource) LoadFallback() ([]models.FallbackEntry, error) {
	r := csv.NewReader(s.file)
	r.FieldsPerRecord = len(csvHeader)
	r.TrimLeadingSpace = true

	var entries []models.FallbackEntry
	for line := 1; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read line %d: %w", line, err)
		}
		if line == 1 && row[0] == csvHeader[0] {
			continue
		}

		entry, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Close closes the underlying file.
func (s *CSVSource) Close() error {
	return s.file.Close()
}

func parseRow(row []string) (models.FallbackEntry, error) {
	key := services.FallbackKey(row[0])
	if key == "" {
		return models.FallbackEntry{}, errors.New("empty city")
	}

	var vals [5]float64
	for i := range vals {
		v, err := strconv.ParseFloat(row[i+1], 64)
		if err != nil {
			return models.FallbackEntry{}, fmt.Errorf("column %s: %w", csvHeader[i+1], err)
		}
		vals[i] = v
	}

	return models.FallbackEntry{
		Key: key,
		Record: models.FallbackRecord{
			Housing:   vals[0],
			Outside:   vals[1],
			Meal:      vals[2],
			Transport: vals[3],
			Utilities: vals[4],
		},
	}, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
