package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// InitDatabase opens the Postgres connection used for search-history
// persistence.
func InitDatabase(databaseURL string) error {
	if databaseURL == "" {
		return fmt.Errorf("database connection string is required")
	}

	var err error
	DB, err = sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %v", err)
	}

	log.Println("Successfully connected to database")
	return nil
}

// CreateTables creates the search-history table if it does not exist.
func CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS search_history (
			id SERIAL PRIMARY KEY,
			query TEXT NOT NULL,
			quotes JSONB NOT NULL,
			searched_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_search_history_query ON search_history (query)`,
		`CREATE INDEX IF NOT EXISTS idx_search_history_time ON search_history (searched_at DESC)`,
	}

	for _, query := range queries {
		if _, err := DB.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %v", err)
		}
	}

	return nil
}

// CloseDatabase closes the database connection.
func CloseDatabase() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
