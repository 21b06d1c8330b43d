package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema backing the route cache.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        path JSONB NOT NULL,
        distance_text TEXT NOT NULL,
        duration_text TEXT NOT NULL,
        distance_meters INTEGER NOT NULL,
        duration_seconds INTEGER NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_route_cache_destination
    ON route_cache(destination);
	`

	statements := []string{
		createRouteCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// ClearRouteCache removes all cached routes. Used by the maintenance CLI.
func ClearRouteCache(db *sql.DB) (int64, error) {
	if db == nil {
		return 0, errors.New("clear route cache: DB is nil")
	}

	res, err := db.Exec(`DELETE FROM route_cache;`)
	if err != nil {
		return 0, fmt.Errorf("clear route cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear route cache: rows affected: %w", err)
	}

	return n, nil
}
