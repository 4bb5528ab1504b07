package models

import "time"

// Trip represents a recorded flight between two airports
type Trip struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id"`

	// Origin and destination
	OriginCode string  `json:"origin_code" db:"origin_code"`
	OriginLat  float64 `json:"origin_lat" db:"origin_lat"`
	OriginLon  float64 `json:"origin_lon" db:"origin_lon"`
	DestCode   string  `json:"dest_code" db:"dest_code"`
	DestLat    float64 `json:"dest_lat" db:"dest_lat"`
	DestLon    float64 `json:"dest_lon" db:"dest_lon"`

	// Trip characteristics
	DistanceKm  float64 `json:"distance_km" db:"distance_km"`
	EmissionsKg float64 `json:"emissions_kg" db:"emissions_kg"` // kg CO2

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateTripRequest is the body of POST /api/v1/trips
type CreateTripRequest struct {
	Origin      string `json:"origin" binding:"required,len=3"`
	Destination string `json:"destination" binding:"required,len=3"`
}

// TripsResponse represents a paginated response of trips
type TripsResponse struct {
	Data       []Trip `json:"data"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}

// NewTripsResponse wraps one page of trips. filter must be normalized.
func NewTripsResponse(trips []Trip, total int64, filter TripFilter) TripsResponse {
	pages := (total + int64(filter.PageSize) - 1) / int64(filter.PageSize)
	return TripsResponse{
		Data:       trips,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(pages),
	}
}

// TripSummary is the dashboard aggregate of a user's trips
type TripSummary struct {
	TripCount          int     `json:"trip_count"`
	TotalDistanceKm    float64 `json:"total_distance_km"`
	TotalEmissionsKg   float64 `json:"total_emissions_kg"`
	MeanEmissionsKg    float64 `json:"mean_emissions_kg"`
	MedianEmissionsKg  float64 `json:"median_emissions_kg"`
	P90EmissionsKg     float64 `json:"p90_emissions_kg"`
	LongestTripKm      float64 `json:"longest_trip_km"`
	AntimeridianTrips  int     `json:"antimeridian_trips"`
	TotalEmissionsText string  `json:"total_emissions_text"`
}
