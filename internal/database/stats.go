package database

import (
	"database/sql"
	"fmt"
)

type WardrobeStats struct {
	TotalItems     int            `json:"total_items"`
	TotalOutfits   int            `json:"total_outfits"`
	TotalTrips     int            `json:"total_trips"`
	Favorites      int            `json:"favorites"`
	ByCategory     map[string]int `json:"by_category"`
	MostWornItemID string         `json:"most_worn_item_id,omitempty"`
	MostWornName   string         `json:"most_worn_name,omitempty"`
	MostWornCount  int            `json:"most_worn_count"`
}

func GetWardrobeStats(db *sql.DB, userID int) (*WardrobeStats, error) {
	stats := &WardrobeStats{ByCategory: make(map[string]int)}

	err := db.QueryRow(`SELECT COUNT(*) FROM wardrobe_items WHERE user_id = ?`, userID).Scan(&stats.TotalItems)
	if err != nil {
		return nil, fmt.Errorf("failed to get item count: %w", err)
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM outfits WHERE user_id = ?`, userID).Scan(&stats.TotalOutfits)
	if err != nil {
		return nil, fmt.Errorf("failed to get outfit count: %w", err)
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM trip_plans WHERE user_id = ?`, userID).Scan(&stats.TotalTrips)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip count: %w", err)
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM wardrobe_items WHERE user_id = ? AND is_favorite = TRUE`, userID).Scan(&stats.Favorites)
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite count: %w", err)
	}

	rows, err := db.Query(`SELECT category, COUNT(*) FROM wardrobe_items WHERE user_id = ? GROUP BY category`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		stats.ByCategory[category] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}

	mostWornQuery := `
		SELECT id, name, wear_count
		FROM wardrobe_items
		WHERE user_id = ? AND wear_count > 0
		ORDER BY wear_count DESC
		LIMIT 1
	`

	err = db.QueryRow(mostWornQuery, userID).Scan(&stats.MostWornItemID, &stats.MostWornName, &stats.MostWornCount)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get most worn item: %w", err)
	}

	return stats, nil
}
