package catalog

import (
	"context"
	"testing"

	"github.com/okravchuk/airport-service/internal/domain"
	"github.com/okravchuk/airport-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAirportRepository struct {
	mock.Mock
}

func (m *MockAirportRepository) List(ctx context.Context, closestBigCity string) ([]domain.Airport, error) {
	args := m.Called(ctx, closestBigCity)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) List(ctx context.Context, filter repository.RouteFilter) ([]domain.Route, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	args := m.Called(ctx, route)
	return args.Error(0)
}

type MockAirplaneRepository struct {
	mock.Mock
}

func (m *MockAirplaneRepository) ListTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AirplaneType), args.Error(1)
}

func (m *MockAirplaneRepository) CreateType(ctx context.Context, t *domain.AirplaneType) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockAirplaneRepository) List(ctx context.Context, airplaneTypeID int64) ([]domain.Airplane, error) {
	args := m.Called(ctx, airplaneTypeID)
	return args.Get(0).([]domain.Airplane), args.Error(1)
}

func (m *MockAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockAirplaneRepository) Create(ctx context.Context, airplane *domain.Airplane) error {
	args := m.Called(ctx, airplane)
	return args.Error(0)
}

type MockCrewRepository struct {
	mock.Mock
}

func (m *MockCrewRepository) List(ctx context.Context) ([]domain.Crew, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Crew), args.Error(1)
}

func (m *MockCrewRepository) Create(ctx context.Context, crew *domain.Crew) error {
	args := m.Called(ctx, crew)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	args := m.Called(ctx, airports)
	return args.Error(0)
}

func (m *MockCache) GetRoutes(ctx context.Context) ([]domain.Route, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockCache) SetRoutes(ctx context.Context, routes []domain.Route) error {
	args := m.Called(ctx, routes)
	return args.Error(0)
}

func (m *MockCache) InvalidateCatalog(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newService(airports *MockAirportRepository, routes *MockRouteRepository, airplanes *MockAirplaneRepository, crew *MockCrewRepository, cache *MockCache) *CatalogService {
	var c Cache
	if cache != nil {
		c = cache
	}
	return NewCatalogService(airports, routes, airplanes, crew, c)
}

func TestCatalogService_CreateRoute_SameSourceAndDestination(t *testing.T) {
	mockAirports := &MockAirportRepository{}
	mockRoutes := &MockRouteRepository{}
	service := newService(mockAirports, mockRoutes, &MockAirplaneRepository{}, &MockCrewRepository{}, nil)

	err := service.CreateRoute(context.Background(), &domain.Route{SourceID: 1, DestinationID: 1, Distance: 500})

	assert.ErrorIs(t, err, domain.ErrInvalidRoute)
	mockRoutes.AssertNotCalled(t, "Create")
}

func TestCatalogService_CreateRoute(t *testing.T) {
	mockAirports := &MockAirportRepository{}
	mockRoutes := &MockRouteRepository{}
	mockCache := &MockCache{}
	service := newService(mockAirports, mockRoutes, &MockAirplaneRepository{}, &MockCrewRepository{}, mockCache)

	ctx := context.Background()
	route := &domain.Route{SourceID: 1, DestinationID: 2, Distance: 500}
	mockAirports.On("GetByID", ctx, int64(1)).Return(&domain.Airport{ID: 1}, nil).Once()
	mockAirports.On("GetByID", ctx, int64(2)).Return(&domain.Airport{ID: 2}, nil).Once()
	mockRoutes.On("Create", ctx, route).Return(nil).Once()
	mockCache.On("InvalidateCatalog", ctx).Return(nil).Once()

	err := service.CreateRoute(ctx, route)

	assert.NoError(t, err)
	mockRoutes.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestCatalogService_CreateRoute_UnknownAirport(t *testing.T) {
	mockAirports := &MockAirportRepository{}
	mockRoutes := &MockRouteRepository{}
	service := newService(mockAirports, mockRoutes, &MockAirplaneRepository{}, &MockCrewRepository{}, nil)

	ctx := context.Background()
	mockAirports.On("GetByID", ctx, int64(1)).Return(nil, domain.ErrNotFound).Once()

	err := service.CreateRoute(ctx, &domain.Route{SourceID: 1, DestinationID: 2, Distance: 500})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockRoutes.AssertNotCalled(t, "Create")
}

func TestCatalogService_ListAirports_CacheHit(t *testing.T) {
	mockAirports := &MockAirportRepository{}
	mockCache := &MockCache{}
	service := newService(mockAirports, &MockRouteRepository{}, &MockAirplaneRepository{}, &MockCrewRepository{}, mockCache)

	ctx := context.Background()
	cached := []domain.Airport{{ID: 1, Name: "Sheremetyevo"}}
	mockCache.On("GetAirports", ctx).Return(cached, nil).Once()

	airports, err := service.ListAirports(ctx, "")

	assert.NoError(t, err)
	assert.Equal(t, cached, airports)
	mockAirports.AssertNotCalled(t, "List")
}

func TestCatalogService_ListAirports_FilterBypassesCache(t *testing.T) {
	mockAirports := &MockAirportRepository{}
	mockCache := &MockCache{}
	service := newService(mockAirports, &MockRouteRepository{}, &MockAirplaneRepository{}, &MockCrewRepository{}, mockCache)

	ctx := context.Background()
	fromDB := []domain.Airport{{ID: 2, Name: "Pulkovo", ClosestBigCity: "Saint Petersburg"}}
	mockAirports.On("List", ctx, "Petersburg").Return(fromDB, nil).Once()

	airports, err := service.ListAirports(ctx, "Petersburg")

	assert.NoError(t, err)
	assert.Equal(t, fromDB, airports)
	mockCache.AssertNotCalled(t, "GetAirports")
	mockCache.AssertNotCalled(t, "SetAirports")
}

func TestCatalogService_CreateAirplane_InvalidGeometry(t *testing.T) {
	mockAirplanes := &MockAirplaneRepository{}
	service := newService(&MockAirportRepository{}, &MockRouteRepository{}, mockAirplanes, &MockCrewRepository{}, nil)

	err := service.CreateAirplane(context.Background(), &domain.Airplane{Name: "Broken", Rows: 0, SeatsInRow: 4})

	var fieldErr *domain.FieldError
	assert.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "rows", fieldErr.Field)
	mockAirplanes.AssertNotCalled(t, "Create")
}

func TestCatalogService_CreateCrew_RequiresNames(t *testing.T) {
	mockCrew := &MockCrewRepository{}
	service := newService(&MockAirportRepository{}, &MockRouteRepository{}, &MockAirplaneRepository{}, mockCrew, nil)

	err := service.CreateCrew(context.Background(), &domain.Crew{FirstName: "Anna"})

	assert.Error(t, err)
	mockCrew.AssertNotCalled(t, "Create")
}
