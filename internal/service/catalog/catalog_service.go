package catalog

import (
	"context"

	"github.com/okravchuk/airport-service/internal/domain"
	"github.com/okravchuk/airport-service/internal/repository"
)

type CatalogUseCase interface {
	ListAirports(ctx context.Context, closestBigCity string) ([]domain.Airport, error)
	CreateAirport(ctx context.Context, airport *domain.Airport) error
	ListRoutes(ctx context.Context, filter repository.RouteFilter) ([]domain.Route, error)
	CreateRoute(ctx context.Context, route *domain.Route) error
	ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error)
	CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error
	ListAirplanes(ctx context.Context, airplaneTypeID int64) ([]domain.Airplane, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
	CreateAirplane(ctx context.Context, airplane *domain.Airplane) error
	ListCrew(ctx context.Context) ([]domain.Crew, error)
	CreateCrew(ctx context.Context, crew *domain.Crew) error
}

// Cache holds the admin-managed reference lists. Unfiltered airport and
// route listings are served from it; every catalog write invalidates it.
type Cache interface {
	GetAirports(ctx context.Context) ([]domain.Airport, error)
	SetAirports(ctx context.Context, airports []domain.Airport) error
	GetRoutes(ctx context.Context) ([]domain.Route, error)
	SetRoutes(ctx context.Context, routes []domain.Route) error
	InvalidateCatalog(ctx context.Context) error
}

type CatalogService struct {
	airports  repository.AirportRepository
	routes    repository.RouteRepository
	airplanes repository.AirplaneRepository
	crew      repository.CrewRepository
	cache     Cache
}

func NewCatalogService(
	airports repository.AirportRepository,
	routes repository.RouteRepository,
	airplanes repository.AirplaneRepository,
	crew repository.CrewRepository,
	cache Cache,
) *CatalogService {
	return &CatalogService{
		airports:  airports,
		routes:    routes,
		airplanes: airplanes,
		crew:      crew,
		cache:     cache,
	}
}

func (s *CatalogService) ListAirports(ctx context.Context, closestBigCity string) ([]domain.Airport, error) {
	if closestBigCity == "" && s.cache != nil {
		if cached, err := s.cache.GetAirports(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	airports, err := s.airports.List(ctx, closestBigCity)
	if err != nil {
		return nil, err
	}
	if closestBigCity == "" && s.cache != nil {
		_ = s.cache.SetAirports(ctx, airports)
	}
	return airports, nil
}

func (s *CatalogService) CreateAirport(ctx context.Context, airport *domain.Airport) error {
	if airport.Name == "" {
		return &domain.FieldError{Field: "name", Message: "is required"}
	}
	if err := s.airports.Create(ctx, airport); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) ListRoutes(ctx context.Context, filter repository.RouteFilter) ([]domain.Route, error) {
	unfiltered := filter == repository.RouteFilter{}
	if unfiltered && s.cache != nil {
		if cached, err := s.cache.GetRoutes(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	routes, err := s.routes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if unfiltered && s.cache != nil {
		_ = s.cache.SetRoutes(ctx, routes)
	}
	return routes, nil
}

// CreateRoute rejects impossible physical configurations before they reach
// storage: a route may not loop back to its source.
func (s *CatalogService) CreateRoute(ctx context.Context, route *domain.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	if _, err := s.airports.GetByID(ctx, route.SourceID); err != nil {
		return err
	}
	if _, err := s.airports.GetByID(ctx, route.DestinationID); err != nil {
		return err
	}
	if err := s.routes.Create(ctx, route); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) ListAirplaneTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	return s.airplanes.ListTypes(ctx)
}

func (s *CatalogService) CreateAirplaneType(ctx context.Context, t *domain.AirplaneType) error {
	if t.Name == "" {
		return &domain.FieldError{Field: "name", Message: "is required"}
	}
	return s.airplanes.CreateType(ctx, t)
}

func (s *CatalogService) ListAirplanes(ctx context.Context, airplaneTypeID int64) ([]domain.Airplane, error) {
	return s.airplanes.List(ctx, airplaneTypeID)
}

func (s *CatalogService) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	return s.airplanes.GetByID(ctx, id)
}

func (s *CatalogService) CreateAirplane(ctx context.Context, airplane *domain.Airplane) error {
	if err := airplane.Validate(); err != nil {
		return err
	}
	return s.airplanes.Create(ctx, airplane)
}

func (s *CatalogService) ListCrew(ctx context.Context) ([]domain.Crew, error) {
	return s.crew.List(ctx)
}

func (s *CatalogService) CreateCrew(ctx context.Context, crew *domain.Crew) error {
	if crew.FirstName == "" || crew.LastName == "" {
		return &domain.FieldError{Field: "name", Message: "first and last name are required"}
	}
	return s.crew.Create(ctx, crew)
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateCatalog(ctx)
	}
}

var _ CatalogUseCase = (*CatalogService)(nil)
