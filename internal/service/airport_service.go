package service

import (
	"fmt"
	"log/slog"

	"github.com/jengzang/flightarcs-backend-go/internal/airports"
	"github.com/jengzang/flightarcs-backend-go/internal/metrics"
	"github.com/jengzang/flightarcs-backend-go/internal/models"
	"github.com/jengzang/flightarcs-backend-go/internal/repository"
)

// AirportService handles airport lookup and bulk loading
type AirportService struct {
	repo *repository.AirportRepository
}

// NewAirportService creates a new airport service
func NewAirportService(repo *repository.AirportRepository) *AirportService {
	return &AirportService{repo: repo}
}

// Search finds airports for autocomplete
func (s *AirportService) Search(filter models.AirportFilter) ([]models.Airport, error) {
	return s.repo.Search(filter)
}

// GetAirport retrieves an airport by IATA code
func (s *AirportService) GetAirport(code string) (*models.Airport, error) {
	return s.repo.GetByIATA(code)
}

// EnsureSeeded loads the built-in airports into an empty table
func (s *AirportService) EnsureSeeded() error {
	count, err := s.repo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	n, err := s.repo.UpsertBatch(airports.Seed, 0)
	if err != nil {
		return fmt.Errorf("failed to seed airports: %w", err)
	}
	slog.Info("[AirportService] seeded airports", "count", n)
	return nil
}

// Import writes parsed airports. With replace set the table is emptied
// first.
func (s *AirportService) Import(list []models.Airport, replace bool) (int, error) {
	if replace {
		removed, err := s.repo.DeleteAll()
		if err != nil {
			return 0, err
		}
		slog.Info("[AirportService] cleared airports", "removed", removed)
	}

	n, err := s.repo.UpsertBatch(list, 500)
	metrics.AirportsImported.Add(float64(n))
	if err != nil {
		return n, fmt.Errorf("failed to import airports: %w", err)
	}
	slog.Info("[AirportService] imported airports", "count", n)
	return n, nil
}

// Count returns the number of stored airports
func (s *AirportService) Count() (int64, error) {
	return s.repo.Count()
}

// All returns every stored airport
func (s *AirportService) All() ([]models.Airport, error) {
	return s.repo.GetAll()
}

// Clean removes airports with unusable data
func (s *AirportService) Clean() (int64, error) {
	return s.repo.Clean()
}
