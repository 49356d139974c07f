package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"pricescout/database"
	"pricescout/models"
)

// SearchRecord is one persisted search with its quotes.
type SearchRecord struct {
	ID         int                 `json:"id"`
	Query      string              `json:"query"`
	Quotes     []models.PriceQuote `json:"quotes"`
	SearchedAt time.Time           `json:"searched_at"`
}

// SearchRepository persists completed searches for later inspection.
type SearchRepository struct{}

// NewSearchRepository creates a search repository backed by the shared
// database handle.
func NewSearchRepository() *SearchRepository {
	return &SearchRepository{}
}

// SaveSearch stores the query with its quotes as JSONB.
func (r *SearchRepository) SaveSearch(query string, quotes []models.PriceQuote) error {
	payload, err := json.Marshal(quotes)
	if err != nil {
		return fmt.Errorf("failed to encode quotes: %v", err)
	}

	_, err = database.DB.Exec(
		`INSERT INTO search_history (query, quotes) VALUES ($1, $2)`,
		query, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save search: %v", err)
	}
	return nil
}

// RecentSearches returns the most recent persisted searches, newest first.
func (r *SearchRepository) RecentSearches(limit int) ([]SearchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := database.DB.Query(
		`SELECT id, query, quotes, searched_at FROM search_history ORDER BY searched_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query search history: %v", err)
	}
	defer rows.Close()

	var records []SearchRecord
	for rows.Next() {
		var record SearchRecord
		var payload []byte
		if err := rows.Scan(&record.ID, &record.Query, &payload, &record.SearchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search record: %v", err)
		}
		if err := json.Unmarshal(payload, &record.Quotes); err != nil {
			return nil, fmt.Errorf("failed to decode quotes: %v", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
