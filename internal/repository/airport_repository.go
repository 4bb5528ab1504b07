package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jengzang/flightarcs-backend-go/internal/database"
	"github.com/jengzang/flightarcs-backend-go/internal/models"
)

const airportColumns = `iata, icao, name, city, country, latitude, longitude,
		altitude_m, type, scheduled_service`

const upsertAirportSQL = `INSERT INTO airports (` + airportColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(iata) DO UPDATE SET
		icao = excluded.icao,
		name = excluded.name,
		city = excluded.city,
		country = excluded.country,
		latitude = excluded.latitude,
		longitude = excluded.longitude,
		altitude_m = excluded.altitude_m,
		type = excluded.type,
		scheduled_service = excluded.scheduled_service`

// AirportRepository handles database operations for airports
type AirportRepository struct {
	db *sql.DB
}

// NewAirportRepository creates a new airport repository
func NewAirportRepository(db *sql.DB) *AirportRepository {
	return &AirportRepository{db: db}
}

// Upsert inserts or replaces a single airport
func (r *AirportRepository) Upsert(a models.Airport) error {
	if _, err := r.db.Exec(upsertAirportSQL, airportArgs(a)...); err != nil {
		return fmt.Errorf("failed to upsert airport %s: %w", a.IATA, err)
	}
	return nil
}

// UpsertBatch writes airports in one transaction per batchSize rows and
// returns how many were written
func (r *AirportRepository) UpsertBatch(airports []models.Airport, batchSize int) (int, error) {
	if batchSize < 1 {
		batchSize = 500
	}

	written := 0
	for start := 0; start < len(airports); start += batchSize {
		end := min(start+batchSize, len(airports))
		batch := airports[start:end]

		err := database.Transaction(r.db, func(tx *sql.Tx) error {
			stmt, err := tx.Prepare(upsertAirportSQL)
			if err != nil {
				return fmt.Errorf("failed to prepare upsert: %w", err)
			}
			defer stmt.Close()

			for _, a := range batch {
				if _, err := stmt.Exec(airportArgs(a)...); err != nil {
					return fmt.Errorf("failed to upsert airport %s: %w", a.IATA, err)
				}
			}
			return nil
		})
		if err != nil {
			return written, err
		}
		written += len(batch)
	}
	return written, nil
}

// GetByIATA retrieves an airport by its IATA code
func (r *AirportRepository) GetByIATA(code string) (*models.Airport, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var a models.Airport
	err := scanAirport(r.db.QueryRow("SELECT "+airportColumns+" FROM airports WHERE iata = ?", code), &a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("airport %q: %w", code, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get airport: %w", err)
	}
	return &a, nil
}

// Search finds airports whose IATA code, name or city starts with the
// query. Exact IATA matches sort first.
func (r *AirportRepository) Search(filter models.AirportFilter) ([]models.Airport, error) {
	var conditions []string
	var args []interface{}

	q := strings.TrimSpace(filter.Query)
	if q != "" {
		conditions = append(conditions, "(iata LIKE ? OR name LIKE ? OR city LIKE ?)")
		prefix := escapeLike(q) + "%"
		args = append(args, strings.ToUpper(escapeLike(q))+"%", prefix, prefix)
	}
	if filter.Country != "" {
		conditions = append(conditions, "country = ?")
		args = append(args, strings.ToUpper(filter.Country))
	}
	if filter.ScheduledOnly {
		conditions = append(conditions, "scheduled_service = 1")
	}

	query := "SELECT " + airportColumns + " FROM airports"
	if len(conditions) > 0 {
		// LIKE clauses use backslash escapes
		query += " WHERE " + strings.ReplaceAll(strings.Join(conditions, " AND "), "LIKE ?", `LIKE ? ESCAPE '\'`)
	}

	query += " ORDER BY CASE WHEN iata = ? THEN 0 ELSE 1 END, scheduled_service DESC, iata LIMIT ?"
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}
	args = append(args, strings.ToUpper(q), limit)

	return r.query(query, args...)
}

// GetAll returns every airport ordered by IATA code
func (r *AirportRepository) GetAll() ([]models.Airport, error) {
	return r.query("SELECT " + airportColumns + " FROM airports ORDER BY iata")
}

// Count returns the number of airports
func (r *AirportRepository) Count() (int64, error) {
	var n int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM airports").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count airports: %w", err)
	}
	return n, nil
}

// DeleteAll removes every airport
func (r *AirportRepository) DeleteAll() (int64, error) {
	res, err := r.db.Exec("DELETE FROM airports")
	if err != nil {
		return 0, fmt.Errorf("failed to delete airports: %w", err)
	}
	return res.RowsAffected()
}

// Clean deletes rows that can never be drawn: (0,0) coordinates, values
// outside valid ranges, or codes that are not three letters. It returns
// the number of deleted rows.
func (r *AirportRepository) Clean() (int64, error) {
	res, err := r.db.Exec(`DELETE FROM airports
		WHERE (latitude = 0 AND longitude = 0)
		OR latitude < -90 OR latitude > 90
		OR longitude < -180 OR longitude > 180
		OR length(iata) != 3`)
	if err != nil {
		return 0, fmt.Errorf("failed to clean airports: %w", err)
	}
	return res.RowsAffected()
}

func (r *AirportRepository) query(query string, args ...interface{}) ([]models.Airport, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query airports: %w", err)
	}
	defer rows.Close()

	airports := []models.Airport{}
	for rows.Next() {
		var a models.Airport
		if err := scanAirport(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan airport: %w", err)
		}
		airports = append(airports, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate airports: %w", err)
	}
	return airports, nil
}

func scanAirport(row rowScanner, a *models.Airport) error {
	return row.Scan(
		&a.IATA, &a.ICAO, &a.Name, &a.City, &a.Country,
		&a.Latitude, &a.Longitude, &a.AltitudeM, &a.Type, &a.ScheduledService,
	)
}

func airportArgs(a models.Airport) []interface{} {
	return []interface{}{
		strings.ToUpper(a.IATA), a.ICAO, a.Name, a.City, a.Country,
		a.Latitude, a.Longitude, a.AltitudeM, a.Type, a.ScheduledService,
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
