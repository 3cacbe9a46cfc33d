package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okravchuk/airport-service/internal/domain"
	"github.com/okravchuk/airport-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context, filter repository.FlightFilter) ([]domain.FlightListing, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.FlightListing), args.Error(1)
}

func (m *MockFlightRepository) GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetail), args.Error(1)
}

func (m *MockFlightRepository) GetAirplaneForFlight(ctx context.Context, flightID int64) (*domain.Airplane, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airplane), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func newService(orders *MockOrderRepository, flights *MockFlightRepository, producer *MockProducer) *BookingService {
	return NewBookingService(orders, flights, producer, "orders", WithNotificationsTopic("notifications"))
}

func TestBookingService_CreateOrder_Success(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	mockProducer := &MockProducer{}
	service := newService(mockOrders, mockFlights, mockProducer)

	ctx := context.Background()
	airplane := &domain.Airplane{ID: 7, Rows: 10, SeatsInRow: 4}

	// Both tickets share one flight, so the airplane is resolved once.
	mockFlights.On("GetAirplaneForFlight", ctx, int64(4)).Return(airplane, nil).Once()
	mockOrders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Run(func(args mock.Arguments) {
		order := args.Get(1).(*domain.Order)
		order.ID = 12
		order.CreatedAt = time.Now()
		for i := range order.Tickets {
			order.Tickets[i].ID = int64(100 + i)
		}
	}).Return(nil).Once()
	mockProducer.On("Publish", ctx, "orders", mock.Anything, mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "notifications", mock.Anything, mock.Anything).Return(nil).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID: 3,
		Tickets: []domain.TicketRequest{
			{FlightID: 4, Row: 1, Seat: 1},
			{FlightID: 4, Row: 1, Seat: 2},
		},
	})

	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, int64(12), order.ID)
	assert.Equal(t, int64(3), order.UserID)
	assert.NotEmpty(t, order.Reference)
	assert.Len(t, order.Tickets, 2)

	mockOrders.AssertExpectations(t)
	mockFlights.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CreateOrder_Empty(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newService(mockOrders, mockFlights, &MockProducer{})

	order, err := service.CreateOrder(context.Background(), CreateOrderInput{UserID: 3})

	assert.Nil(t, order)
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
	mockOrders.AssertNotCalled(t, "Create")
}

func TestBookingService_CreateOrder_DuplicateSeatInRequest(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newService(mockOrders, mockFlights, &MockProducer{})

	ctx := context.Background()
	airplane := &domain.Airplane{ID: 7, Rows: 10, SeatsInRow: 4}
	mockFlights.On("GetAirplaneForFlight", ctx, int64(1)).Return(airplane, nil).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID: 3,
		Tickets: []domain.TicketRequest{
			{FlightID: 1, Row: 2, Seat: 3},
			{FlightID: 1, Row: 2, Seat: 3},
		},
	})

	assert.Nil(t, order)
	var ticketErr *TicketError
	assert.ErrorAs(t, err, &ticketErr)
	assert.Equal(t, 1, ticketErr.Index)
	var dupErr *domain.DuplicateSeatError
	assert.ErrorAs(t, err, &dupErr)

	// Nothing may be written when any entry is rejected.
	mockOrders.AssertNotCalled(t, "Create")
}

func TestBookingService_CreateOrder_RowOutOfRange(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newService(mockOrders, mockFlights, &MockProducer{})

	ctx := context.Background()
	airplane := &domain.Airplane{ID: 7, Rows: 10, SeatsInRow: 4}
	mockFlights.On("GetAirplaneForFlight", ctx, int64(4)).Return(airplane, nil).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID: 3,
		Tickets: []domain.TicketRequest{
			{FlightID: 4, Row: 1, Seat: 1},
			{FlightID: 4, Row: 11, Seat: 1},
		},
	})

	assert.Nil(t, order)
	var ticketErr *TicketError
	assert.ErrorAs(t, err, &ticketErr)
	assert.Equal(t, 1, ticketErr.Index)
	var rangeErr *domain.SeatRangeError
	assert.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "row", rangeErr.Field)
	assert.Equal(t, 10, rangeErr.Max)

	mockOrders.AssertNotCalled(t, "Create")
}

func TestBookingService_CreateOrder_FlightNotFound(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newService(mockOrders, mockFlights, &MockProducer{})

	ctx := context.Background()
	mockFlights.On("GetAirplaneForFlight", ctx, int64(99)).Return(nil, domain.ErrNotFound).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID:  3,
		Tickets: []domain.TicketRequest{{FlightID: 99, Row: 1, Seat: 1}},
	})

	assert.Nil(t, order)
	var ticketErr *TicketError
	assert.ErrorAs(t, err, &ticketErr)
	assert.Equal(t, 0, ticketErr.Index)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockOrders.AssertNotCalled(t, "Create")
}

func TestBookingService_CreateOrder_SeatTakenByConcurrentBooking(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	mockProducer := &MockProducer{}
	service := newService(mockOrders, mockFlights, mockProducer)

	ctx := context.Background()
	airplane := &domain.Airplane{ID: 7, Rows: 10, SeatsInRow: 4}
	mockFlights.On("GetAirplaneForFlight", ctx, int64(4)).Return(airplane, nil).Once()

	// The unique index rejects the second ticket's insert; the repository
	// reports which seat lost the race.
	taken := &domain.SeatTakenError{FlightID: 4, Row: 2, Seat: 2}
	mockOrders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(taken).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID: 3,
		Tickets: []domain.TicketRequest{
			{FlightID: 4, Row: 1, Seat: 1},
			{FlightID: 4, Row: 2, Seat: 2},
		},
	})

	assert.Nil(t, order)
	var ticketErr *TicketError
	assert.ErrorAs(t, err, &ticketErr)
	assert.Equal(t, 1, ticketErr.Index)
	var takenErr *domain.SeatTakenError
	assert.ErrorAs(t, err, &takenErr)

	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_CreateOrder_PublishFailureDoesNotFailBooking(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	mockProducer := &MockProducer{}
	service := newService(mockOrders, mockFlights, mockProducer)

	ctx := context.Background()
	airplane := &domain.Airplane{ID: 7, Rows: 10, SeatsInRow: 4}
	mockFlights.On("GetAirplaneForFlight", ctx, int64(4)).Return(airplane, nil).Once()
	mockOrders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	mockProducer.On("Publish", ctx, "orders", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	order, err := service.CreateOrder(ctx, CreateOrderInput{
		UserID:  3,
		Tickets: []domain.TicketRequest{{FlightID: 4, Row: 1, Seat: 1}},
	})

	assert.NoError(t, err)
	assert.NotNil(t, order)
}

func TestBookingService_ListOrders_ClampsPageSize(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newService(mockOrders, mockFlights, &MockProducer{})

	ctx := context.Background()
	mockOrders.On("ListByUser", ctx, int64(3), 100, 0).Return([]domain.Order{}, 0, nil).Once()

	page, err := service.ListOrders(ctx, 3, 1, 1000)

	assert.NoError(t, err)
	assert.Equal(t, 100, page.PageSize)
	mockOrders.AssertExpectations(t)
}

func TestBookingService_ListOrders_Defaults(t *testing.T) {
	mockOrders := &MockOrderRepository{}
	mockFlights := &MockFlightRepository{}
	service := newService(mockOrders, mockFlights, &MockProducer{})

	ctx := context.Background()
	orders := []domain.Order{{ID: 5, UserID: 3, Reference: "ref", CreatedAt: time.Now()}}
	mockOrders.On("ListByUser", ctx, int64(3), 10, 10).Return(orders, 11, nil).Once()

	page, err := service.ListOrders(ctx, 3, 2, 0)

	assert.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, 11, page.Total)
	assert.Len(t, page.Orders, 1)
	mockOrders.AssertExpectations(t)
}
