package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTripFilter_Normalize(t *testing.T) {
	tests := []struct {
		name             string
		in               TripFilter
		page, size, skip int
	}{
		{"zero value", TripFilter{}, 1, DefaultPageSize, 0},
		{"too large", TripFilter{Page: 3, PageSize: 5000}, 3, MaxPageSize, 2 * MaxPageSize},
		{"negative page", TripFilter{Page: -2, PageSize: 10}, 1, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.in
			f.Normalize()
			assert.Equal(t, tt.page, f.Page)
			assert.Equal(t, tt.size, f.PageSize)
			assert.Equal(t, tt.skip, f.Offset())
		})
	}
}

func TestNewTripsResponse(t *testing.T) {
	f := TripFilter{Page: 2, PageSize: 10}
	assert.Equal(t, 3, NewTripsResponse(nil, 21, f).TotalPages)
	assert.Equal(t, 2, NewTripsResponse(nil, 20, f).TotalPages)
	assert.Equal(t, 0, NewTripsResponse(nil, 0, f).TotalPages)
}
