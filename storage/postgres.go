package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"costofliving/models"
)

// PostgresStore keeps extra fallback reference data in PostgreSQL. It is
// read once at process start; lookups never hit the database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresStore.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS fallback_costs (
			city_key   VARCHAR(128)  PRIMARY KEY,
			housing    NUMERIC(10,2) NOT NULL,
			outside    NUMERIC(10,2) NOT NULL,
			meal       NUMERIC(10,2) NOT NULL,
			transport  NUMERIC(10,2) NOT NULL,
			utilities  NUMERIC(10,2) NOT NULL,
			updated_at TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);
	`)
	return err
}

// WriteFallback upserts entries in batches.
func (ps *PostgresStore) WriteFallback(entries []models.FallbackEntry) error {
	const batchSize = 50
	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := ps.upsertBatch(entries[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (ps *PostgresStore) upsertBatch(batch []models.FallbackEntry) error {
	query, args := buildUpsert(batch)
	if _, err := ps.db.Exec(query, args...); err != nil {
		return fmt.Errorf("postgres: upsert: %w", err)
	}
	return nil
}

func buildUpsert(batch []models.FallbackEntry) (string, []interface{}) {
	const cols = 6
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, e := range batch {
		base := idx * cols
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6))
		r := e.Record
		valueArgs = append(valueArgs,
			e.Key, r.Housing, r.Outside, r.Meal, r.Transport, r.Utilities)
	}

	query := fmt.Sprintf(`
		INSERT INTO fallback_costs (city_key, housing, outside, meal, transport, utilities)
		VALUES %s
		ON CONFLICT (city_key) DO UPDATE SET
			housing = EXCLUDED.housing,
			outside = EXCLUDED.outside,
			meal = EXCLUDED.meal,
			transport = EXCLUDED.transport,
			utilities = EXCLUDED.utilities,
			updated_at = NOW()
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

// LoadFallback reads every stored entry.
func (ps *PostgresStore) LoadFallback() ([]models.FallbackEntry, error) {
	rows, err := ps.db.Query(`
		SELECT city_key, housing, outside, meal, transport, utilities
		FROM fallback_costs
		ORDER BY city_key
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: load fallback: %w", err)
	}
	defer rows.Close()

	var entries []models.FallbackEntry
	for rows.Next() {
		var e models.FallbackEntry
		r := &e.Record
		if err := rows.Scan(&e.Key, &r.Housing, &r.Outside, &r.Meal, &r.Transport, &r.Utilities); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
