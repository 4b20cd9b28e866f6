package database

import (
	"database/sql"
	"fmt"
	"time"

	"wardrobeiq/internal/models"

	"github.com/google/uuid"
)

// ItemFilter narrows GetItems; zero values mean "no constraint".
type ItemFilter struct {
	Category string
	Color    string
	Type     string
	Season   string
	Page     int
	Limit    int
}

func CreateItem(db *sql.DB, userID int, item models.WardrobeItem) (*models.WardrobeItem, error) {
	item.ID = uuid.New().String()
	item.UserID = userID

	secondary, err := encodeJSON(item.Color.Secondary)
	if err != nil {
		return nil, err
	}
	season, err := encodeJSON(item.Season)
	if err != nil {
		return nil, err
	}
	occasion, err := encodeJSON(item.Occasion)
	if err != nil {
		return nil, err
	}
	tags, err := encodeJSON(item.Tags)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO wardrobe_items (id, user_id, name, type, category, color_primary, color_secondary,
		                            fabric, brand, size, season, occasion, image_url, tags, is_favorite)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = db.Exec(query, item.ID, userID, item.Name, item.Type, item.Category,
		item.Color.Primary, secondary, item.Fabric, item.Brand, item.Size,
		season, occasion, item.ImageURL, tags, item.IsFavorite)
	if err != nil {
		return nil, fmt.Errorf("failed to create wardrobe item: %w", err)
	}

	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	return &item, nil
}

const itemColumns = `id, user_id, name, type, category, color_primary, color_secondary,
	COALESCE(fabric, ''), COALESCE(brand, ''), COALESCE(size, ''), season, occasion,
	COALESCE(image_url, ''), tags, is_favorite, wear_count, last_worn, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*models.WardrobeItem, error) {
	item := &models.WardrobeItem{}
	var secondary, season, occasion, tags string
	var lastWorn sql.NullTime

	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Name,
		&item.Type,
		&item.Category,
		&item.Color.Primary,
		&secondary,
		&item.Fabric,
		&item.Brand,
		&item.Size,
		&season,
		&occasion,
		&item.ImageURL,
		&tags,
		&item.IsFavorite,
		&item.WearCount,
		&lastWorn,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeJSON(secondary, &item.Color.Secondary); err != nil {
		return nil, err
	}
	if err := decodeJSON(season, &item.Season); err != nil {
		return nil, err
	}
	if err := decodeJSON(occasion, &item.Occasion); err != nil {
		return nil, err
	}
	if err := decodeJSON(tags, &item.Tags); err != nil {
		return nil, err
	}
	if lastWorn.Valid {
		item.LastWorn = &lastWorn.Time
	}

	return item, nil
}

// GetItems returns one page of a user's wardrobe plus the unpaginated total.
func GetItems(db *sql.DB, userID int, filter ItemFilter) ([]models.WardrobeItem, int, error) {
	where := "WHERE user_id = ?"
	args := []interface{}{userID}

	if filter.Category != "" {
		where += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Type != "" {
		where += " AND type = ?"
		args = append(args, filter.Type)
	}
	if filter.Color != "" {
		where += " AND color_primary LIKE ?"
		args = append(args, "%"+filter.Color+"%")
	}
	if filter.Season != "" {
		// season is a JSON array column; match the quoted element
		where += " AND season LIKE ?"
		args = append(args, `%"`+filter.Season+`"%`)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM wardrobe_items " + where
	if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count wardrobe items: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	query := fmt.Sprintf("SELECT %s FROM wardrobe_items %s ORDER BY created_at DESC LIMIT ? OFFSET ?", itemColumns, where)
	args = append(args, limit, (page-1)*limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query wardrobe items: %w", err)
	}
	defer rows.Close()

	var items []models.WardrobeItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan wardrobe item: %w", err)
		}
		items = append(items, *item)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating wardrobe items: %w", err)
	}

	return items, total, nil
}

// GetAllItems loads a user's entire wardrobe, unfiltered. The recommendation
// and trip heuristics operate on this in-memory slice.
func GetAllItems(db *sql.DB, userID int) ([]models.WardrobeItem, error) {
	query := fmt.Sprintf("SELECT %s FROM wardrobe_items WHERE user_id = ? ORDER BY created_at DESC", itemColumns)

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wardrobe items: %w", err)
	}
	defer rows.Close()

	var items []models.WardrobeItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wardrobe item: %w", err)
		}
		items = append(items, *item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wardrobe items: %w", err)
	}

	return items, nil
}

func GetItem(db *sql.DB, userID int, itemID string) (*models.WardrobeItem, error) {
	query := fmt.Sprintf("SELECT %s FROM wardrobe_items WHERE id = ? AND user_id = ?", itemColumns)

	item, err := scanItem(db.QueryRow(query, itemID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query wardrobe item: %w", err)
	}

	return item, nil
}

func UpdateItem(db *sql.DB, userID int, itemID string, updated models.WardrobeItem) error {
	secondary, err := encodeJSON(updated.Color.Secondary)
	if err != nil {
		return err
	}
	season, err := encodeJSON(updated.Season)
	if err != nil {
		return err
	}
	occasion, err := encodeJSON(updated.Occasion)
	if err != nil {
		return err
	}
	tags, err := encodeJSON(updated.Tags)
	if err != nil {
		return err
	}

	query := `
		UPDATE wardrobe_items
		SET name = ?, type = ?, category = ?, color_primary = ?, color_secondary = ?,
		    fabric = ?, brand = ?, size = ?, season = ?, occasion = ?, image_url = ?,
		    tags = ?, is_favorite = ?, wear_count = ?, last_worn = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?
	`

	result, err := db.Exec(query, updated.Name, updated.Type, updated.Category,
		updated.Color.Primary, secondary, updated.Fabric, updated.Brand, updated.Size,
		season, occasion, updated.ImageURL, tags, updated.IsFavorite,
		updated.WearCount, updated.LastWorn, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to update wardrobe item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// CountItemReferences reports how many saved outfits and trip packing lists
// still reference the item. Outfit items and packing lists are JSON columns,
// so the check matches on the quoted item id.
func CountItemReferences(db *sql.DB, userID int, itemID string) (int, error) {
	pattern := `%"` + itemID + `"%`

	var outfitRefs int
	err := db.QueryRow(`SELECT COUNT(*) FROM outfits WHERE user_id = ? AND items LIKE ?`, userID, pattern).Scan(&outfitRefs)
	if err != nil {
		return 0, fmt.Errorf("failed to count outfit references: %w", err)
	}

	var tripRefs int
	err = db.QueryRow(`SELECT COUNT(*) FROM trip_plans WHERE user_id = ? AND (packing_list LIKE ? OR outfits LIKE ?)`,
		userID, pattern, pattern).Scan(&tripRefs)
	if err != nil {
		return 0, fmt.Errorf("failed to count trip references: %w", err)
	}

	return outfitRefs + tripRefs, nil
}

func DeleteItem(db *sql.DB, userID int, itemID string) error {
	return DeleteItemWithForce(db, userID, itemID, false)
}

// DeleteItemWithForce deletes an item. Deletion is rejected while saved outfits
// or trip plans reference the item, unless force is set; a forced delete leaves
// the referencing documents untouched (their embedded copies keep name and
// category, only the live item reference dangles).
func DeleteItemWithForce(db *sql.DB, userID int, itemID string, force bool) error {
	refs, err := CountItemReferences(db, userID, itemID)
	if err != nil {
		return err
	}

	if refs > 0 && !force {
		return fmt.Errorf("cannot delete item referenced by %d saved outfit(s) or trip plan(s)", refs)
	}

	result, err := db.Exec(`DELETE FROM wardrobe_items WHERE id = ? AND user_id = ?`, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete wardrobe item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
