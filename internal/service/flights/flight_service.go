package flights

import (
	"context"

	"github.com/okravchuk/airport-service/internal/domain"
	"github.com/okravchuk/airport-service/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context, filter repository.FlightFilter) ([]domain.FlightListing, error)
	GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error)
	Create(ctx context.Context, flight *domain.Flight) error
}

type FlightService struct {
	repo repository.FlightRepository
}

func NewFlightService(repo repository.FlightRepository) *FlightService {
	return &FlightService{repo: repo}
}

// List always hits storage: availability must reflect committed bookings at
// query time, so flight listings are never served from a cache.
func (s *FlightService) List(ctx context.Context, filter repository.FlightFilter) ([]domain.FlightListing, error) {
	return s.repo.List(ctx, filter)
}

func (s *FlightService) GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	return s.repo.GetDetail(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) error {
	if err := flight.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, flight)
}

var _ FlightUseCase = (*FlightService)(nil)
