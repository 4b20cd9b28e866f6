package database

import (
	"database/sql"
	"fmt"
	"time"

	"wardrobeiq/internal/models"

	"github.com/google/uuid"
)

// TripPlanUpdate carries the mutable trip plan fields for a partial update.
// Nil fields are left unchanged.
type TripPlanUpdate struct {
	Destination *string
	StartDate   *time.Time
	EndDate     *time.Time
	TripType    *string
	Activities  *[]string
	Outfits     *[]models.DayOutfit
	PackingList *[]models.PackingEntry
}

// CreateTripPlan inserts a trip plan together with its generated outfits and
// packing list as one row.
func CreateTripPlan(db *sql.DB, userID int, plan models.TripPlan) (*models.TripPlan, error) {
	plan.ID = uuid.New().String()
	plan.UserID = userID

	activities, err := encodeJSON(plan.Activities)
	if err != nil {
		return nil, err
	}
	conditions, err := encodeJSON(plan.Weather.Conditions)
	if err != nil {
		return nil, err
	}
	outfits, err := encodeJSON(plan.Outfits)
	if err != nil {
		return nil, err
	}
	packingList, err := encodeJSON(plan.PackingList)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO trip_plans (id, user_id, destination, start_date, end_date, trip_type,
		                        activities, weather_avg_temp, weather_conditions, outfits, packing_list)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = db.Exec(query, plan.ID, userID, plan.Destination, plan.StartDate, plan.EndDate,
		plan.TripType, activities, plan.Weather.AvgTemp, conditions, outfits, packingList)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip plan: %w", err)
	}

	plan.CreatedAt = time.Now()
	plan.UpdatedAt = time.Now()

	return &plan, nil
}

const tripColumns = `id, user_id, destination, start_date, end_date, trip_type,
	activities, weather_avg_temp, weather_conditions, outfits, packing_list, created_at, updated_at`

func scanTripPlan(row rowScanner) (*models.TripPlan, error) {
	plan := &models.TripPlan{}
	var activities, conditions, outfits, packingList string

	err := row.Scan(
		&plan.ID,
		&plan.UserID,
		&plan.Destination,
		&plan.StartDate,
		&plan.EndDate,
		&plan.TripType,
		&activities,
		&plan.Weather.AvgTemp,
		&conditions,
		&outfits,
		&packingList,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeJSON(activities, &plan.Activities); err != nil {
		return nil, err
	}
	if err := decodeJSON(conditions, &plan.Weather.Conditions); err != nil {
		return nil, err
	}
	if err := decodeJSON(outfits, &plan.Outfits); err != nil {
		return nil, err
	}
	if err := decodeJSON(packingList, &plan.PackingList); err != nil {
		return nil, err
	}

	return plan, nil
}

func GetTripPlans(db *sql.DB, userID, page, limit int) ([]models.TripPlan, int, error) {
	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM trip_plans WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trip plans: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := fmt.Sprintf("SELECT %s FROM trip_plans WHERE user_id = ? ORDER BY start_date DESC LIMIT ? OFFSET ?", tripColumns)

	rows, err := db.Query(query, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query trip plans: %w", err)
	}
	defer rows.Close()

	var plans []models.TripPlan
	for rows.Next() {
		plan, err := scanTripPlan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan trip plan: %w", err)
		}
		plans = append(plans, *plan)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating trip plans: %w", err)
	}

	return plans, total, nil
}

func GetTripPlan(db *sql.DB, userID int, tripID string) (*models.TripPlan, error) {
	query := fmt.Sprintf("SELECT %s FROM trip_plans WHERE id = ? AND user_id = ?", tripColumns)

	plan, err := scanTripPlan(db.QueryRow(query, tripID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query trip plan: %w", err)
	}

	return plan, nil
}

func UpdateTripPlan(db *sql.DB, userID int, tripID string, update TripPlanUpdate) (*models.TripPlan, error) {
	set := "updated_at = CURRENT_TIMESTAMP"
	var args []interface{}

	if update.Destination != nil {
		set += ", destination = ?"
		args = append(args, *update.Destination)
	}
	if update.StartDate != nil {
		set += ", start_date = ?"
		args = append(args, *update.StartDate)
	}
	if update.EndDate != nil {
		set += ", end_date = ?"
		args = append(args, *update.EndDate)
	}
	if update.TripType != nil {
		set += ", trip_type = ?"
		args = append(args, *update.TripType)
	}
	if update.Activities != nil {
		encoded, err := encodeJSON(*update.Activities)
		if err != nil {
			return nil, err
		}
		set += ", activities = ?"
		args = append(args, encoded)
	}
	if update.Outfits != nil {
		encoded, err := encodeJSON(*update.Outfits)
		if err != nil {
			return nil, err
		}
		set += ", outfits = ?"
		args = append(args, encoded)
	}
	if update.PackingList != nil {
		encoded, err := encodeJSON(*update.PackingList)
		if err != nil {
			return nil, err
		}
		set += ", packing_list = ?"
		args = append(args, encoded)
	}

	query := fmt.Sprintf("UPDATE trip_plans SET %s WHERE id = ? AND user_id = ?", set)
	args = append(args, tripID, userID)

	result, err := db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update trip plan: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return GetTripPlan(db, userID, tripID)
}

func DeleteTripPlan(db *sql.DB, userID int, tripID string) error {
	result, err := db.Exec(`DELETE FROM trip_plans WHERE id = ? AND user_id = ?`, tripID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete trip plan: %w", err)
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
