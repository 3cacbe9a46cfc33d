package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okravchuk/airport-service/internal/domain"
)

// FlightFilter narrows flight listings. Zero values mean "no filter"; the
// date filters match on the calendar date of the timestamp.
type FlightFilter struct {
	AirplaneID    int64
	RouteID       int64
	DepartureDate *time.Time
	ArrivalDate   *time.Time
}

type FlightRepository interface {
	List(ctx context.Context, filter FlightFilter) ([]domain.FlightListing, error)
	GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error)
	GetAirplaneForFlight(ctx context.Context, flightID int64) (*domain.Airplane, error)
	Create(ctx context.Context, flight *domain.Flight) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// List counts availability and crew against committed state in the same
// query, so every successful booking is reflected immediately.
func (r *PGFlightRepository) List(ctx context.Context, filter FlightFilter) ([]domain.FlightListing, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.id,
		       r.id, r.source_id, r.destination_id, r.distance, src.name, dst.name,
		       f.departure_time, f.arrival_time,
		       a.name, a.rows * a.seats_in_row,
		       a.rows * a.seats_in_row - COUNT(DISTINCT t.id),
		       COUNT(DISTINCT fc.crew_id)
		FROM flights f
		JOIN routes r ON r.id = f.route_id
		JOIN airports src ON src.id = r.source_id
		JOIN airports dst ON dst.id = r.destination_id
		JOIN airplanes a ON a.id = f.airplane_id
		LEFT JOIN tickets t ON t.flight_id = f.id
		LEFT JOIN flight_crew fc ON fc.flight_id = f.id
		WHERE ($1 = 0 OR f.airplane_id = $1)
		  AND ($2 = 0 OR f.route_id = $2)
		  AND ($3::date IS NULL OR f.departure_time::date = $3::date)
		  AND ($4::date IS NULL OR f.arrival_time::date = $4::date)
		GROUP BY f.id, r.id, src.name, dst.name, a.id
		ORDER BY f.departure_time`,
		filter.AirplaneID, filter.RouteID, filter.DepartureDate, filter.ArrivalDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.FlightListing, 0)
	for rows.Next() {
		var f domain.FlightListing
		if err := rows.Scan(
			&f.ID,
			&f.Route.ID, &f.Route.SourceID, &f.Route.DestinationID, &f.Route.Distance, &f.Route.SourceName, &f.Route.DestinationName,
			&f.DepartureTime, &f.ArrivalTime,
			&f.AirplaneName, &f.AirplaneCapacity,
			&f.TicketsAvailable, &f.NumberOfCrew,
		); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	row := r.db.QueryRow(ctx, `
		SELECT f.id,
		       r.id, r.source_id, r.destination_id, r.distance, src.name, dst.name,
		       f.departure_time, f.arrival_time,
		       a.id, a.name, a.airplane_type_id, at.name, a.rows, a.seats_in_row
		FROM flights f
		JOIN routes r ON r.id = f.route_id
		JOIN airports src ON src.id = r.source_id
		JOIN airports dst ON dst.id = r.destination_id
		JOIN airplanes a ON a.id = f.airplane_id
		JOIN airplane_types at ON at.id = a.airplane_type_id
		WHERE f.id=$1`, id)

	var d domain.FlightDetail
	if err := row.Scan(
		&d.ID,
		&d.Route.ID, &d.Route.SourceID, &d.Route.DestinationID, &d.Route.Distance, &d.Route.SourceName, &d.Route.DestinationName,
		&d.DepartureTime, &d.ArrivalTime,
		&d.Airplane.ID, &d.Airplane.Name, &d.Airplane.AirplaneTypeID, &d.Airplane.AirplaneTypeName, &d.Airplane.Rows, &d.Airplane.SeatsInRow,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	seatRows, err := r.db.Query(ctx, `SELECT "row", seat FROM tickets WHERE flight_id=$1 ORDER BY "row", seat`, id)
	if err != nil {
		return nil, err
	}
	defer seatRows.Close()

	d.TakenPlaces = make([]domain.SeatRef, 0)
	for seatRows.Next() {
		var s domain.SeatRef
		if err := seatRows.Scan(&s.Row, &s.Seat); err != nil {
			return nil, err
		}
		d.TakenPlaces = append(d.TakenPlaces, s)
	}
	if err := seatRows.Err(); err != nil {
		return nil, err
	}

	crewRows, err := r.db.Query(ctx, `
		SELECT c.id, c.first_name, c.last_name
		FROM crew c
		JOIN flight_crew fc ON fc.crew_id = c.id
		WHERE fc.flight_id=$1
		ORDER BY c.last_name, c.first_name`, id)
	if err != nil {
		return nil, err
	}
	defer crewRows.Close()

	d.Crew = make([]domain.Crew, 0)
	for crewRows.Next() {
		var c domain.Crew
		if err := crewRows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		d.Crew = append(d.Crew, c)
	}
	return &d, crewRows.Err()
}

func (r *PGFlightRepository) GetAirplaneForFlight(ctx context.Context, flightID int64) (*domain.Airplane, error) {
	row := r.db.QueryRow(ctx, `
		SELECT a.id, a.name, a.airplane_type_id, at.name, a.rows, a.seats_in_row
		FROM airplanes a
		JOIN airplane_types at ON at.id = a.airplane_type_id
		JOIN flights f ON f.airplane_id = a.id
		WHERE f.id=$1`, flightID)
	var a domain.Airplane
	if err := row.Scan(&a.ID, &a.Name, &a.AirplaneTypeID, &a.AirplaneTypeName, &a.Rows, &a.SeatsInRow); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time) VALUES ($1, $2, $3, $4) RETURNING id`,
		flight.RouteID, flight.AirplaneID, flight.DepartureTime, flight.ArrivalTime).Scan(&flight.ID); err != nil {
		return err
	}

	for _, crewID := range flight.CrewIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO flight_crew (flight_id, crew_id) VALUES ($1, $2)`, flight.ID, crewID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
