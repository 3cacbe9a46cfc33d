package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okravchuk/airport-service/internal/domain"
)

type RouteFilter struct {
	SourceID      int64
	DestinationID int64
}

type RouteRepository interface {
	List(ctx context.Context, filter RouteFilter) ([]domain.Route, error)
	Create(ctx context.Context, route *domain.Route) error
}

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

func (r *PGRouteRepository) List(ctx context.Context, filter RouteFilter) ([]domain.Route, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.source_id, r.destination_id, r.distance, src.name, dst.name
		FROM routes r
		JOIN airports src ON src.id = r.source_id
		JOIN airports dst ON dst.id = r.destination_id
		WHERE ($1 = 0 OR r.source_id = $1) AND ($2 = 0 OR r.destination_id = $2)
		ORDER BY r.id`, filter.SourceID, filter.DestinationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		var rt domain.Route
		if err := rows.Scan(&rt.ID, &rt.SourceID, &rt.DestinationID, &rt.Distance, &rt.SourceName, &rt.DestinationName); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}

func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	return r.db.QueryRow(ctx, `INSERT INTO routes (source_id, destination_id, distance) VALUES ($1, $2, $3) RETURNING id`,
		route.SourceID, route.DestinationID, route.Distance).Scan(&route.ID)
}

var _ RouteRepository = (*PGRouteRepository)(nil)
