package flights

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/novikovva/aviapp/internal/domain"
	"github.com/novikovva/aviapp/internal/repository"
)

type FlightUseCase interface {
	Cities(ctx context.Context) ([]string, error)
	Airports(ctx context.Context, city string) ([]string, error)
	Search(ctx context.Context, departureAirport, arrivalAirport string, departureDate time.Time) ([]domain.FlightDetails, error)
	Airlines(ctx context.Context) ([]domain.Airline, error)
	List(ctx context.Context) ([]domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
}

// Cache holds reference data that changes rarely.
type Cache interface {
	GetCities(ctx context.Context) ([]string, error)
	SetCities(ctx context.Context, cities []string) error
	GetAirports(ctx context.Context, city string) ([]string, error)
	SetAirports(ctx context.Context, city string, airports []string) error
	GetAirlines(ctx context.Context) ([]domain.Airline, error)
	SetAirlines(ctx context.Context, airlines []domain.Airline) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
	log   *zap.Logger
}

func NewFlightService(repo repository.FlightRepository, cache Cache, log *zap.Logger) *FlightService {
	return &FlightService{repo: repo, cache: cache, log: log.With(zap.String("service", "flights"))}
}

func (s *FlightService) Cities(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCities(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	cities, err := s.repo.Cities(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetCities(ctx, cities); err != nil {
			s.log.Warn("cache cities failed", zap.Error(err))
		}
	}
	return cities, nil
}

func (s *FlightService) Airports(ctx context.Context, city string) ([]string, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAirports(ctx, city); err == nil && cached != nil {
			return cached, nil
		}
	}

	airports, err := s.repo.Airports(ctx, city)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetAirports(ctx, city, airports); err != nil {
			s.log.Warn("cache airports failed", zap.String("city", city), zap.Error(err))
		}
	}
	return airports, nil
}

func (s *FlightService) Search(ctx context.Context, departureAirport, arrivalAirport string, departureDate time.Time) ([]domain.FlightDetails, error) {
	return s.repo.Search(ctx, departureAirport, arrivalAirport, departureDate)
}

func (s *FlightService) Airlines(ctx context.Context) ([]domain.Airline, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAirlines(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	airlines, err := s.repo.Airlines(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetAirlines(ctx, airlines); err != nil {
			s.log.Warn("cache airlines failed", zap.Error(err))
		}
	}
	return airlines, nil
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	return s.repo.List(ctx)
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) error {
	return s.repo.Create(ctx, flight)
}

var _ FlightUseCase = (*FlightService)(nil)
