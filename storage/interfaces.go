package storage

import "costofliving/models"

// FallbackSource is any backend that can supply extra fallback entries at
// process start.
type FallbackSource interface {
	LoadFallback() ([]models.FallbackEntry, error)
	Close() error
}

// FallbackWriter is any backend the fallback table can be exported to.
type FallbackWriter interface {
	WriteFallback(entries []models.FallbackEntry) error
	Close() error
}
