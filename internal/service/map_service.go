package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/flightarcs-backend-go/internal/flightpath"
	"github.com/jengzang/flightarcs-backend-go/internal/models"
	"github.com/jengzang/flightarcs-backend-go/internal/render"
	"github.com/jengzang/flightarcs-backend-go/internal/repository"
)

// MapService renders a user's trips and keeps their layer visibility
type MapService struct {
	trips *TripService
	users *repository.UserRepository
}

// NewMapService creates a new map service
func NewMapService(trips *TripService, users *repository.UserRepository) *MapService {
	return &MapService{trips: trips, users: users}
}

// GetLayers loads the saved layer state of a user
func (s *MapService) GetLayers(userID int64) (*render.LayerSet, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	layers := render.NewLayerSet()
	if user.SavedFilters == "" {
		return layers, nil
	}

	var filters models.MapFilters
	if err := json.Unmarshal([]byte(user.SavedFilters), &filters); err != nil {
		// A corrupt value only loses the hidden set
		slog.Warn("[MapService] ignoring unreadable saved filters", "user_id", userID, "error", err)
		return layers, nil
	}
	for _, id := range filters.HiddenTrips {
		layers.Hide(id)
	}
	return layers, nil
}

// SaveLayers stores which trips are hidden
func (s *MapService) SaveLayers(userID int64, hidden []int64) (*render.LayerSet, error) {
	layers := render.NewLayerSet(hidden...)
	raw, err := json.Marshal(models.MapFilters{HiddenTrips: layers.Hidden()})
	if err != nil {
		return nil, fmt.Errorf("failed to encode filters: %w", err)
	}
	if err := s.users.UpdateSavedFilters(userID, string(raw)); err != nil {
		return nil, err
	}
	return layers, nil
}

// visible resolves the geometries and layer state for a request. extra
// trips are hidden on top of the saved state.
func (s *MapService) visible(userID int64, extra []int64) ([]*flightpath.TripGeometry, *render.LayerSet, error) {
	layers, err := s.GetLayers(userID)
	if err != nil {
		return nil, nil, err
	}
	for _, id := range extra {
		layers.Hide(id)
	}

	geometries, err := s.trips.GetAllGeometries(userID)
	if err != nil {
		return nil, nil, err
	}
	return geometries, layers, nil
}

// GeoJSON returns all visible trips as a FeatureCollection
func (s *MapService) GeoJSON(userID int64, extraHidden []int64) (*geojson.FeatureCollection, error) {
	geometries, layers, err := s.visible(userID, extraHidden)
	if err != nil {
		return nil, err
	}
	return render.FeatureCollection(geometries, layers), nil
}

// Polylines returns encoded polylines of all visible trips, simplified to
// tolerance meters when it is positive.
func (s *MapService) Polylines(userID int64, extraHidden []int64, tolerance float64) ([]render.EncodedPath, error) {
	geometries, layers, err := s.visible(userID, extraHidden)
	if err != nil {
		return nil, err
	}
	paths := render.EncodePolylines(geometries, layers, tolerance)
	if paths == nil {
		paths = []render.EncodedPath{}
	}
	return paths, nil
}

// WriteKML writes all visible trips as a KML document
func (s *MapService) WriteKML(w io.Writer, userID int64, extraHidden []int64) error {
	geometries, layers, err := s.visible(userID, extraHidden)
	if err != nil {
		return err
	}
	return render.WriteKML(w, "Flights", geometries, layers)
}
