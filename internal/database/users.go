package database

import (
	"database/sql"
	"fmt"
	"time"

	"wardrobeiq/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func CreateUser(db *sql.DB, name, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	prefs, err := encodeJSON(models.Preferences{Style: "casual"})
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (name, email, password_hash, preferences, location)
		VALUES (?, ?, ?, ?, '{}')
	`

	result, err := db.Exec(query, name, email, string(hashedPassword), prefs)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID: %w", err)
	}

	user := &models.User{
		ID:           int(id),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Preferences:  models.Preferences{Style: "casual"},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	return user, nil
}

func GetUserByID(db *sql.DB, userID int) (*models.User, error) {
	user := &models.User{}
	var prefs, location string

	query := `
		SELECT id, name, email, password_hash, preferences, location, created_at, updated_at
		FROM users
		WHERE id = ?
	`

	err := db.QueryRow(query, userID).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&prefs,
		&location,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if err := decodeJSON(prefs, &user.Preferences); err != nil {
		return nil, err
	}
	if err := decodeJSON(location, &user.Location); err != nil {
		return nil, err
	}

	return user, nil
}

func AuthenticateUser(db *sql.DB, email, password string) (*models.User, error) {
	user := &models.User{}
	var prefs, location string

	query := `
		SELECT id, name, email, password_hash, preferences, location, created_at, updated_at
		FROM users
		WHERE email = ?
	`

	err := db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&prefs,
		&location,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("invalid email or password")
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := decodeJSON(prefs, &user.Preferences); err != nil {
		return nil, err
	}
	if err := decodeJSON(location, &user.Location); err != nil {
		return nil, err
	}

	return user, nil
}

func UpdateUserProfile(db *sql.DB, userID int, name string, preferences models.Preferences, location models.Location) error {
	prefs, err := encodeJSON(preferences)
	if err != nil {
		return err
	}
	loc, err := encodeJSON(location)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET name = ?, preferences = ?, location = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := db.Exec(query, name, prefs, loc, userID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
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
