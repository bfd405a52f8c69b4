package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"costofliving/models"
)

func TestCSVExportThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "fallback.csv")

	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := w.WriteFallback(NewFallbackTable().Entries()); err != nil {
		t.Fatalf("WriteFallback: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	src, err := NewCSVSource(path)
	if err != nil {
		t.Fatalf("NewCSVSource: %v", err)
	}
	table, err := LoadFallbackTable(src)
	if err != nil {
		t.Fatalf("LoadFallbackTable: %v", err)
	}
	if table.Len() != NewFallbackTable().Len() {
		t.Errorf("Len: got %d, want %d", table.Len(), NewFallbackTable().Len())
	}
}

func TestCSVSourceNormalizesCityNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.csv")
	data := "city,housing,outside,meal,transport,utilities\n" +
		"\"Lisbon, Portugal\",1100,800,12.5,40,120\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := NewCSVSource(path)
	if err != nil {
		t.Fatalf("NewCSVSource: %v", err)
	}
	defer src.Close()

	entries, err := src.LoadFallback()
	if err != nil {
		t.Fatalf("LoadFallback: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries: got %d, want 1", len(entries))
	}
	want := models.FallbackEntry{
		Key:    "lisbonportugal",
		Record: models.FallbackRecord{Housing: 1100, Outside: 800, Meal: 12.5, Transport: 40, Utilities: 120},
	}
	if entries[0] != want {
		t.Errorf("entry: got %+v, want %+v", entries[0], want)
	}
}

func TestCSVSourceRejectsBadRows(t *testing.T) {
	tests := map[string]string{
		"bad number": "porto,abc,1,1,1,1\n",
		"empty city": " ,1,1,1,1,1\n",
		"short row":  "porto,1,1\n",
	}

	for name, data := range tests {
		path := filepath.Join(t.TempDir(), "bad.csv")
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		src, err := NewCSVSource(path)
		if err != nil {
			t.Fatalf("%s: NewCSVSource: %v", name, err)
		}
		_, err = src.LoadFallback()
		src.Close()
		if err == nil || !strings.Contains(err.Error(), "line 1") {
			t.Errorf("%s: got err %v, want a line 1 error", name, err)
		}
	}
}

func TestNewCSVSourceMissingFile(t *testing.T) {
	if _, err := NewCSVSource(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
