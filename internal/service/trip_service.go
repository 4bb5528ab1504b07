package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jengzang/flightarcs-backend-go/internal/flightpath"
	"github.com/jengzang/flightarcs-backend-go/internal/metrics"
	"github.com/jengzang/flightarcs-backend-go/internal/models"
	"github.com/jengzang/flightarcs-backend-go/internal/repository"
	"github.com/jengzang/flightarcs-backend-go/internal/spatial"
	"github.com/jengzang/flightarcs-backend-go/internal/stats"
)

// DefaultKgCO2PerKm is the flat per-passenger emissions factor
const DefaultKgCO2PerKm = 0.115

// TripService handles business logic for trips and their map geometry
type TripService struct {
	repo     *repository.TripRepository
	airports *repository.AirportRepository
	builder  *flightpath.Builder
	cache    *GeometryCache
	kgPerKm  float64
}

// NewTripService creates a new trip service
func NewTripService(
	repo *repository.TripRepository,
	airports *repository.AirportRepository,
	builder *flightpath.Builder,
	cache *GeometryCache,
	kgPerKm float64,
) *TripService {
	return &TripService{
		repo:     repo,
		airports: airports,
		builder:  builder,
		cache:    cache,
		kgPerKm:  kgPerKm,
	}
}

// EstimateEmissions returns kg CO2 for a flight of distanceKm
func (s *TripService) EstimateEmissions(distanceKm float64) float64 {
	return distanceKm * s.kgPerKm
}

// CreateTrip records a flight between two stored airports
func (s *TripService) CreateTrip(userID int64, req models.CreateTripRequest) (*models.Trip, error) {
	origin, err := s.lookupAirport(req.Origin)
	if err != nil {
		return nil, err
	}
	dest, err := s.lookupAirport(req.Destination)
	if err != nil {
		return nil, err
	}

	distance := spatial.HaversineDistance(origin.Latitude, origin.Longitude, dest.Latitude, dest.Longitude) / 1000
	trip := &models.Trip{
		UserID:      userID,
		OriginCode:  origin.IATA,
		OriginLat:   origin.Latitude,
		OriginLon:   origin.Longitude,
		DestCode:    dest.IATA,
		DestLat:     dest.Latitude,
		DestLon:     dest.Longitude,
		DistanceKm:  distance,
		EmissionsKg: s.EstimateEmissions(distance),
	}
	if err := s.repo.Create(trip); err != nil {
		return nil, err
	}

	metrics.TripsCreated.Inc()
	slog.Info("[TripService] trip created",
		"trip_id", trip.ID, "user_id", userID,
		"route", trip.OriginCode+"-"+trip.DestCode,
		"distance_km", distance,
	)
	return trip, nil
}

func (s *TripService) lookupAirport(code string) (*models.Airport, error) {
	a, err := s.airports.GetByIATA(code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAirport, strings.ToUpper(code))
	}
	return a, err
}

// GetTrips retrieves trips with filtering and pagination
func (s *TripService) GetTrips(filter models.TripFilter) ([]models.Trip, int64, error) {
	return s.repo.GetTrips(filter)
}

// GetTripByID retrieves a single trip by ID
func (s *TripService) GetTripByID(userID, id int64) (*models.Trip, error) {
	return s.repo.GetTripByID(userID, id)
}

// DeleteTrip removes a trip and its cached geometry
func (s *TripService) DeleteTrip(userID, id int64) error {
	trip, err := s.repo.GetTripByID(userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteTrip(userID, id); err != nil {
		return err
	}
	s.cache.Remove(toPathTrip(*trip))
	return nil
}

// GetSummary aggregates a user's trips for the dashboard
func (s *TripService) GetSummary(userID int64) (*models.TripSummary, error) {
	trips, err := s.repo.GetAllTrips(userID)
	if err != nil {
		return nil, err
	}

	emissions := make([]float64, 0, len(trips))
	distances := make([]float64, 0, len(trips))
	crossing := 0
	for _, t := range trips {
		emissions = append(emissions, t.EmissionsKg)
		distances = append(distances, t.DistanceKm)
		pt := toPathTrip(t)
		if spatial.CrossesAntimeridian(pt.Origin, pt.Destination) {
			crossing++
		}
	}

	e := stats.Summarize(emissions)
	d := stats.Summarize(distances)
	return &models.TripSummary{
		TripCount:          len(trips),
		TotalDistanceKm:    d.Sum,
		TotalEmissionsKg:   e.Sum,
		MeanEmissionsKg:    e.Mean,
		MedianEmissionsKg:  e.Median,
		P90EmissionsKg:     e.P90,
		LongestTripKm:      d.Max,
		AntimeridianTrips:  crossing,
		TotalEmissionsText: humanize.CommafWithDigits(e.Sum, 1) + " kg CO₂",
	}, nil
}

// GetTripGeometry returns the map geometry of one trip
func (s *TripService) GetTripGeometry(userID, id int64) (*flightpath.TripGeometry, error) {
	trip, err := s.repo.GetTripByID(userID, id)
	if err != nil {
		return nil, err
	}
	return s.geometry(toPathTrip(*trip))
}

// GetAllGeometries builds geometry for every trip of a user. Trips whose
// geometry cannot be built are logged and left out.
func (s *TripService) GetAllGeometries(userID int64) ([]*flightpath.TripGeometry, error) {
	trips, err := s.repo.GetAllTrips(userID)
	if err != nil {
		return nil, err
	}

	geometries := make([]*flightpath.TripGeometry, 0, len(trips))
	for _, t := range trips {
		g, err := s.geometry(toPathTrip(t))
		if err != nil {
			slog.Warn("[TripService] skipping trip geometry", "trip_id", t.ID, "error", err)
			continue
		}
		geometries = append(geometries, g)
	}
	return geometries, nil
}

func (s *TripService) geometry(trip flightpath.Trip) (*flightpath.TripGeometry, error) {
	if g, ok := s.cache.Get(trip); ok {
		return g, nil
	}

	start := time.Now()
	g, err := s.builder.Build(trip)
	metrics.ObserveBuild(start, err, err == nil && g.CrossesAntimeridian)
	if err != nil {
		return nil, err
	}

	s.cache.Add(trip, g)
	return g, nil
}

func toPathTrip(t models.Trip) flightpath.Trip {
	return flightpath.Trip{
		ID:          t.ID,
		Origin:      spatial.GeoPoint{Lat: t.OriginLat, Lon: t.OriginLon},
		Destination: spatial.GeoPoint{Lat: t.DestLat, Lon: t.DestLon},
		OriginCode:  t.OriginCode,
		DestCode:    t.DestCode,
		DistanceKm:  t.DistanceKm,
		EmissionsKg: t.EmissionsKg,
	}
}
