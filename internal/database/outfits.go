package database

import (
	"database/sql"
	"fmt"
	"time"

	"wardrobeiq/internal/models"

	"github.com/google/uuid"
)

// CreateOutfit persists an explicitly saved outfit. Generated recommendations
// are never auto-persisted; this is only called from the save-outfit action.
func CreateOutfit(db *sql.DB, userID int, outfit models.Outfit) (*models.Outfit, error) {
	outfit.ID = uuid.New().String()
	outfit.UserID = userID

	items, err := encodeJSON(outfit.Items)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO outfits (id, user_id, name, items, occasion, season,
		                     weather_temperature, weather_condition, is_favorite, rating)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = db.Exec(query, outfit.ID, userID, outfit.Name, items, outfit.Occasion,
		outfit.Season, outfit.Weather.Temperature, outfit.Weather.Condition,
		outfit.IsFavorite, outfit.Rating)
	if err != nil {
		return nil, fmt.Errorf("failed to create outfit: %w", err)
	}

	outfit.CreatedAt = time.Now()
	outfit.UpdatedAt = time.Now()

	return &outfit, nil
}

func GetOutfits(db *sql.DB, userID, page, limit int) ([]models.Outfit, int, error) {
	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM outfits WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count outfits: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	query := `
		SELECT id, user_id, COALESCE(name, ''), items, occasion, season,
		       weather_temperature, COALESCE(weather_condition, ''),
		       is_favorite, worn_count, rating, created_at, updated_at
		FROM outfits
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.Query(query, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query outfits: %w", err)
	}
	defer rows.Close()

	var outfits []models.Outfit
	for rows.Next() {
		var outfit models.Outfit
		var items string
		var rating sql.NullInt64

		err := rows.Scan(
			&outfit.ID,
			&outfit.UserID,
			&outfit.Name,
			&items,
			&outfit.Occasion,
			&outfit.Season,
			&outfit.Weather.Temperature,
			&outfit.Weather.Condition,
			&outfit.IsFavorite,
			&outfit.WornCount,
			&rating,
			&outfit.CreatedAt,
			&outfit.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan outfit: %w", err)
		}

		if err := decodeJSON(items, &outfit.Items); err != nil {
			return nil, 0, err
		}
		if rating.Valid {
			r := int(rating.Int64)
			outfit.Rating = &r
		}

		outfits = append(outfits, outfit)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating outfits: %w", err)
	}

	return outfits, total, nil
}
