package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a record does not exist or is not owned by the
// requesting user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("not found")

func Initialize(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate creates the schema. List-valued and nested fields are stored as JSON
// text so every entity is written as a single row; multi-step aggregates such
// as a trip plan with its outfits and packing list commit atomically as one
// document insert.
func Migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			preferences TEXT NOT NULL DEFAULT '{}',
			location TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS wardrobe_items (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			category TEXT NOT NULL,
			color_primary TEXT NOT NULL,
			color_secondary TEXT NOT NULL DEFAULT '[]',
			fabric TEXT,
			brand TEXT,
			size TEXT,
			season TEXT NOT NULL DEFAULT '["spring","summer","fall","winter"]',
			occasion TEXT NOT NULL DEFAULT '["casual"]',
			image_url TEXT,
			tags TEXT NOT NULL DEFAULT '[]',
			is_favorite BOOLEAN DEFAULT FALSE,
			wear_count INTEGER DEFAULT 0,
			last_worn DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS outfits (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			name TEXT,
			items TEXT NOT NULL DEFAULT '[]',
			occasion TEXT NOT NULL,
			season TEXT NOT NULL,
			weather_temperature INTEGER DEFAULT 0,
			weather_condition TEXT,
			is_favorite BOOLEAN DEFAULT FALSE,
			worn_count INTEGER DEFAULT 0,
			rating INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS trip_plans (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			destination TEXT NOT NULL,
			start_date DATETIME NOT NULL,
			end_date DATETIME NOT NULL,
			trip_type TEXT NOT NULL,
			activities TEXT NOT NULL DEFAULT '[]',
			weather_avg_temp INTEGER DEFAULT 0,
			weather_conditions TEXT NOT NULL DEFAULT '[]',
			outfits TEXT NOT NULL DEFAULT '[]',
			packing_list TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			data TEXT NOT NULL DEFAULT '{}',
			read BOOLEAN DEFAULT FALSE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_wardrobe_items_user_id ON wardrobe_items(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_wardrobe_items_category ON wardrobe_items(user_id, category)`,
		`CREATE INDEX IF NOT EXISTS idx_outfits_user_id ON outfits(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_trip_plans_user_id ON trip_plans(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_unread ON notifications(user_id, read)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}

// encodeJSON marshals a JSON column value; nil slices encode as their empty form.
func encodeJSON(v interface{}) (string, error) {
	bytes, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON column: %w", err)
	}
	return string(bytes), nil
}

func decodeJSON(raw string, v interface{}) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("failed to decode JSON column: %w", err)
	}
	return nil
}
