package models

// Airport represents an airport that trips can start or end at
type Airport struct {
	IATA             string  `json:"iata" db:"iata"`
	ICAO             string  `json:"icao,omitempty" db:"icao"`
	Name             string  `json:"name" db:"name"`
	City             string  `json:"city,omitempty" db:"city"`
	Country          string  `json:"country,omitempty" db:"country"` // ISO 3166-1 alpha-2
	Latitude         float64 `json:"latitude" db:"latitude"`
	Longitude        float64 `json:"longitude" db:"longitude"`
	AltitudeM        float64 `json:"altitude_m" db:"altitude_m"`
	Type             string  `json:"type,omitempty" db:"type"` // large_airport, medium_airport, small_airport
	ScheduledService bool    `json:"scheduled_service" db:"scheduled_service"`
}

// Airport type constants (OurAirports vocabulary)
const (
	AirportTypeLarge        = "large_airport"
	AirportTypeMedium       = "medium_airport"
	AirportTypeSmall        = "small_airport"
	AirportTypeHeliport     = "heliport"
	AirportTypeSeaplaneBase = "seaplane_base"
	AirportTypeClosed       = "closed"
)
