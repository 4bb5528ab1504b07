package models

// Trip list paging limits
const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// TripFilter represents filter parameters for querying trips
type TripFilter struct {
	UserID      int64   `form:"-"`
	Origin      string  `form:"origin"`      // IATA code
	Destination string  `form:"destination"` // IATA code
	MinDistance float64 `form:"minDistance"` // Kilometers
	Page        int     `form:"page"`
	PageSize    int     `form:"pageSize"`
}

// Normalize clamps paging to page >= 1 and DefaultPageSize/MaxPageSize
func (f *TripFilter) Normalize() {
	f.Page = max(f.Page, 1)
	switch {
	case f.PageSize < 1:
		f.PageSize = DefaultPageSize
	case f.PageSize > MaxPageSize:
		f.PageSize = MaxPageSize
	}
}

// Offset is the number of rows skipped before the current page
func (f TripFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// AirportFilter represents filter parameters for searching airports
type AirportFilter struct {
	Query         string `form:"q"`       // prefix of IATA code, name or city
	Country       string `form:"country"` // ISO country code
	ScheduledOnly bool   `form:"scheduled"`
	Limit         int    `form:"limit"`
}

// MapFilter selects the trips drawn on a map
type MapFilter struct {
	Hide      string  `form:"hide"`                               // comma separated trip IDs
	Tolerance float64 `form:"tolerance" binding:"omitempty,gte=0"` // meters, polylines only
}
