package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okravchuk/airport-service/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, int, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

// uniqueViolation is the SQLSTATE raised when an insert hits a unique index.
const uniqueViolation = "23505"

// Create writes the order row and every ticket row as one transaction.
// The unique index on tickets (flight_id, row, seat) is the authority on
// seat conflicts: when a concurrent order committed the same seat first,
// the insert fails, the whole transaction rolls back and the caller gets a
// SeatTakenError identifying the losing ticket.
func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO orders (user_id, reference) VALUES ($1, $2) RETURNING id, created_at`,
		order.UserID, order.Reference).Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	for i := range order.Tickets {
		t := &order.Tickets[i]
		t.OrderID = order.ID
		err := tx.QueryRow(ctx, `INSERT INTO tickets (flight_id, "row", seat, order_id) VALUES ($1, $2, $3, $4) RETURNING id`,
			t.FlightID, t.Row, t.Seat, t.OrderID).Scan(&t.ID)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return &domain.SeatTakenError{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat}
			}
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListByUser returns one page of the user's orders, newest first, with each
// ticket carrying a flight summary for receipt display. The second return
// value is the total number of the user's orders.
func (r *PGOrderRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, reference, created_at
		FROM orders
		WHERE user_id=$1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	index := make(map[int64]*domain.Order)
	ids := make([]int64, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Reference, &o.CreatedAt); err != nil {
			return nil, 0, err
		}
		o.Tickets = make([]domain.Ticket, 0)
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for i := range orders {
		index[orders[i].ID] = &orders[i]
	}
	if len(ids) == 0 {
		return orders, total, nil
	}

	ticketRows, err := r.db.Query(ctx, `
		SELECT t.id, t."row", t.seat, t.flight_id, t.order_id,
		       r.id, r.source_id, r.destination_id, r.distance, src.name, dst.name,
		       f.departure_time, f.arrival_time,
		       a.name, a.rows * a.seats_in_row,
		       a.rows * a.seats_in_row - (SELECT COUNT(*) FROM tickets tt WHERE tt.flight_id = f.id),
		       (SELECT COUNT(*) FROM flight_crew fc WHERE fc.flight_id = f.id)
		FROM tickets t
		JOIN flights f ON f.id = t.flight_id
		JOIN routes r ON r.id = f.route_id
		JOIN airports src ON src.id = r.source_id
		JOIN airports dst ON dst.id = r.destination_id
		JOIN airplanes a ON a.id = f.airplane_id
		WHERE t.order_id = ANY($1)
		ORDER BY t.order_id, t."row", t.seat`, ids)
	if err != nil {
		return nil, 0, err
	}
	defer ticketRows.Close()

	for ticketRows.Next() {
		var t domain.Ticket
		var fl domain.FlightListing
		if err := ticketRows.Scan(
			&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID,
			&fl.Route.ID, &fl.Route.SourceID, &fl.Route.DestinationID, &fl.Route.Distance, &fl.Route.SourceName, &fl.Route.DestinationName,
			&fl.DepartureTime, &fl.ArrivalTime,
			&fl.AirplaneName, &fl.AirplaneCapacity,
			&fl.TicketsAvailable, &fl.NumberOfCrew,
		); err != nil {
			return nil, 0, err
		}
		fl.ID = t.FlightID
		t.Flight = &fl
		if o, ok := index[t.OrderID]; ok {
			o.Tickets = append(o.Tickets, t)
		}
	}
	return orders, total, ticketRows.Err()
}

var _ OrderRepository = (*PGOrderRepository)(nil)
