package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okravchuk/airport-service/internal/domain"
)

type AirplaneRepository interface {
	ListTypes(ctx context.Context) ([]domain.AirplaneType, error)
	CreateType(ctx context.Context, t *domain.AirplaneType) error
	List(ctx context.Context, airplaneTypeID int64) ([]domain.Airplane, error)
	GetByID(ctx context.Context, id int64) (*domain.Airplane, error)
	Create(ctx context.Context, airplane *domain.Airplane) error
}

type PGAirplaneRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneRepository(db *pgxpool.Pool) AirplaneRepository {
	return &PGAirplaneRepository{db: db}
}

func (r *PGAirplaneRepository) ListTypes(ctx context.Context) ([]domain.AirplaneType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM airplane_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]domain.AirplaneType, 0)
	for rows.Next() {
		var t domain.AirplaneType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *PGAirplaneRepository) CreateType(ctx context.Context, t *domain.AirplaneType) error {
	return r.db.QueryRow(ctx, `INSERT INTO airplane_types (name) VALUES ($1) RETURNING id`, t.Name).Scan(&t.ID)
}

func (r *PGAirplaneRepository) List(ctx context.Context, airplaneTypeID int64) ([]domain.Airplane, error) {
	rows, err := r.db.Query(ctx, `
		SELECT a.id, a.name, a.airplane_type_id, at.name, a.rows, a.seats_in_row
		FROM airplanes a
		JOIN airplane_types at ON at.id = a.airplane_type_id
		WHERE $1 = 0 OR a.airplane_type_id = $1
		ORDER BY a.name`, airplaneTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		var a domain.Airplane
		if err := rows.Scan(&a.ID, &a.Name, &a.AirplaneTypeID, &a.AirplaneTypeName, &a.Rows, &a.SeatsInRow); err != nil {
			return nil, err
		}
		airplanes = append(airplanes, a)
	}
	return airplanes, rows.Err()
}

func (r *PGAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	row := r.db.QueryRow(ctx, `
		SELECT a.id, a.name, a.airplane_type_id, at.name, a.rows, a.seats_in_row
		FROM airplanes a
		JOIN airplane_types at ON at.id = a.airplane_type_id
		WHERE a.id=$1`, id)
	var a domain.Airplane
	if err := row.Scan(&a.ID, &a.Name, &a.AirplaneTypeID, &a.AirplaneTypeName, &a.Rows, &a.SeatsInRow); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGAirplaneRepository) Create(ctx context.Context, airplane *domain.Airplane) error {
	return r.db.QueryRow(ctx, `INSERT INTO airplanes (name, airplane_type_id, "rows", seats_in_row) VALUES ($1, $2, $3, $4) RETURNING id`,
		airplane.Name, airplane.AirplaneTypeID, airplane.Rows, airplane.SeatsInRow).Scan(&airplane.ID)
}

var _ AirplaneRepository = (*PGAirplaneRepository)(nil)
