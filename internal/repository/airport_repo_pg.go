package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okravchuk/airport-service/internal/domain"
)

type AirportRepository interface {
	List(ctx context.Context, closestBigCity string) ([]domain.Airport, error)
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	Create(ctx context.Context, airport *domain.Airport) error
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) List(ctx context.Context, closestBigCity string) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.name, a.closest_big_city,
		       COALESCE(array_agg(d.name ORDER BY d.name) FILTER (WHERE d.id IS NOT NULL), '{}')
		FROM airports a
		LEFT JOIN routes r ON r.source_id = a.id
		LEFT JOIN airports d ON d.id = r.destination_id
		WHERE $1 = '' OR a.closest_big_city ILIKE '%' || $1 || '%'
		GROUP BY a.id
		ORDER BY a.name`, closestBigCity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.ClosestBigCity, &a.RoutesTo); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, closest_big_city FROM airports WHERE id=$1`, id)
	var a domain.Airport
	if err := row.Scan(&a.ID, &a.Name, &a.ClosestBigCity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	return r.db.QueryRow(ctx, `INSERT INTO airports (name, closest_big_city) VALUES ($1, $2) RETURNING id`,
		airport.Name, airport.ClosestBigCity).Scan(&airport.ID)
}

var _ AirportRepository = (*PGAirportRepository)(nil)
