package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jengzang/flightarcs-backend-go/internal/models"
)

const tripColumns = `id, user_id, origin_code, origin_lat, origin_lon,
		dest_code, dest_lat, dest_lon, distance_km, emissions_kg, created_at`

// TripRepository handles database operations for trips
type TripRepository struct {
	db *sql.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

// Create inserts a trip and fills in its ID and creation time
func (r *TripRepository) Create(t *models.Trip) error {
	res, err := r.db.Exec(`INSERT INTO trips
		(user_id, origin_code, origin_lat, origin_lon, dest_code, dest_lat, dest_lon, distance_km, emissions_kg)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.OriginCode, t.OriginLat, t.OriginLon,
		t.DestCode, t.DestLat, t.DestLon, t.DistanceKm, t.EmissionsKg,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get trip id: %w", err)
	}

	created, err := r.GetTripByID(t.UserID, id)
	if err != nil {
		return err
	}
	*t = *created
	return nil
}

// GetTrips retrieves trips with filtering and pagination
func (r *TripRepository) GetTrips(filter models.TripFilter) ([]models.Trip, int64, error) {
	conditions := []string{"user_id = ?"}
	args := []interface{}{filter.UserID}

	if filter.Origin != "" {
		conditions = append(conditions, "origin_code = ?")
		args = append(args, strings.ToUpper(filter.Origin))
	}
	if filter.Destination != "" {
		conditions = append(conditions, "dest_code = ?")
		args = append(args, strings.ToUpper(filter.Destination))
	}
	if filter.MinDistance > 0 {
		conditions = append(conditions, "distance_km >= ?")
		args = append(args, filter.MinDistance)
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM trips"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	filter.Normalize()
	query := "SELECT " + tripColumns + " FROM trips" + where + " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, filter.Offset())

	trips, err := r.query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

// GetAllTrips returns every trip of a user in creation order
func (r *TripRepository) GetAllTrips(userID int64) ([]models.Trip, error) {
	return r.query("SELECT "+tripColumns+" FROM trips WHERE user_id = ? ORDER BY id", userID)
}

// GetTripByID retrieves a single trip owned by userID
func (r *TripRepository) GetTripByID(userID, id int64) (*models.Trip, error) {
	var t models.Trip
	err := scanTrip(r.db.QueryRow("SELECT "+tripColumns+" FROM trips WHERE id = ? AND user_id = ?", id, userID), &t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &t, nil
}

// DeleteTrip removes a trip owned by userID
func (r *TripRepository) DeleteTrip(userID, id int64) error {
	res, err := r.db.Exec("DELETE FROM trips WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("trip %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *TripRepository) query(query string, args ...interface{}) ([]models.Trip, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	trips := []models.Trip{}
	for rows.Next() {
		var t models.Trip
		if err := scanTrip(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}
	return trips, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrip(row rowScanner, t *models.Trip) error {
	return row.Scan(
		&t.ID, &t.UserID, &t.OriginCode, &t.OriginLat, &t.OriginLon,
		&t.DestCode, &t.DestLat, &t.DestLon, &t.DistanceKm, &t.EmissionsKg, &t.CreatedAt,
	)
}
