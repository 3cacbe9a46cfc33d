package booking

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/okravchuk/airport-service/internal/domain"
	"github.com/okravchuk/airport-service/internal/kafka"
	"github.com/okravchuk/airport-service/internal/repository"
)

type BookingUseCase interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64, page, pageSize int) (*OrderPage, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	orders             repository.OrderRepository
	flights            repository.FlightRepository
	producer           Producer
	ordersTopic        string
	notificationsTopic string
}

type CreateOrderInput struct {
	UserID  int64
	Tickets []domain.TicketRequest
}

// OrderPage is one page of a user's booking history.
type OrderPage struct {
	Orders   []domain.Order
	Total    int
	Page     int
	PageSize int
}

// TicketError ties a validation or conflict error to the index of the
// offending entry in the submitted ticket list.
type TicketError struct {
	Index int
	Err   error
}

func (e *TicketError) Error() string {
	return fmt.Sprintf("tickets[%d]: %v", e.Index, e.Err)
}

func (e *TicketError) Unwrap() error {
	return e.Err
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	orders repository.OrderRepository,
	flights repository.FlightRepository,
	producer Producer,
	ordersTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		orders:      orders,
		flights:     flights,
		producer:    producer,
		ordersTopic: ordersTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateOrder validates every requested seat against its flight's airplane
// geometry, rejects duplicates within the request, then commits the order
// and all tickets atomically. The pre-checks are a fast fail only: the final
// no-oversell guarantee is the unique (flight_id, row, seat) index, whose
// violation surfaces here as a SeatTakenError wrapped with the ticket index.
// Nothing is persisted unless every ticket commits.
func (s *BookingService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if len(input.Tickets) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	seen := make(map[domain.TicketRequest]struct{}, len(input.Tickets))
	airplanes := make(map[int64]*domain.Airplane)
	for i, req := range input.Tickets {
		if _, dup := seen[req]; dup {
			return nil, &TicketError{Index: i, Err: &domain.DuplicateSeatError{FlightID: req.FlightID, Row: req.Row, Seat: req.Seat}}
		}
		seen[req] = struct{}{}

		airplane, ok := airplanes[req.FlightID]
		if !ok {
			var err error
			airplane, err = s.flights.GetAirplaneForFlight(ctx, req.FlightID)
			if err != nil {
				return nil, &TicketError{Index: i, Err: err}
			}
			airplanes[req.FlightID] = airplane
		}

		if err := domain.ValidateTicket(req.Row, req.Seat, *airplane); err != nil {
			return nil, &TicketError{Index: i, Err: err}
		}
	}

	order := &domain.Order{
		UserID:    input.UserID,
		Reference: uuid.NewString(),
		Tickets:   make([]domain.Ticket, 0, len(input.Tickets)),
	}
	for _, req := range input.Tickets {
		order.Tickets = append(order.Tickets, domain.Ticket{FlightID: req.FlightID, Row: req.Row, Seat: req.Seat})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		if taken, ok := asSeatTaken(err); ok {
			return nil, &TicketError{Index: s.requestIndex(input.Tickets, taken), Err: taken}
		}
		return nil, err
	}

	if err := s.publish(ctx, "order_created", order); err != nil {
		log.Printf("failed to publish order_created event for order %s: %v", order.Reference, err)
	}
	return order, nil
}

func (s *BookingService) ListOrders(ctx context.Context, userID int64, page, pageSize int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	orders, total, err := s.orders.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Orders: orders, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, order *domain.Order) error {
	if s.producer == nil || s.ordersTopic == "" {
		return nil
	}
	event := kafka.OrderEvent{
		Type:      eventType,
		Reference: order.Reference,
		UserID:    order.UserID,
		CreatedAt: order.CreatedAt,
		Tickets:   make([]kafka.SeatEvent, 0, len(order.Tickets)),
	}
	for _, t := range order.Tickets {
		event.Tickets = append(event.Tickets, kafka.SeatEvent{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat})
	}
	if err := s.producer.Publish(ctx, s.ordersTopic, order.Reference, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, order.Reference, event)
	}
	return nil
}

func (s *BookingService) requestIndex(tickets []domain.TicketRequest, taken *domain.SeatTakenError) int {
	for i, req := range tickets {
		if req.FlightID == taken.FlightID && req.Row == taken.Row && req.Seat == taken.Seat {
			return i
		}
	}
	return 0
}

func asSeatTaken(err error) (*domain.SeatTakenError, bool) {
	var taken *domain.SeatTakenError
	if errors.As(err, &taken) {
		return taken, true
	}
	return nil, false
}

var _ BookingUseCase = (*BookingService)(nil)
