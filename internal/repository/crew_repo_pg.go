package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okravchuk/airport-service/internal/domain"
)

type CrewRepository interface {
	List(ctx context.Context) ([]domain.Crew, error)
	Create(ctx context.Context, crew *domain.Crew) error
}

type PGCrewRepository struct {
	db *pgxpool.Pool
}

func NewCrewRepository(db *pgxpool.Pool) CrewRepository {
	return &PGCrewRepository{db: db}
}

func (r *PGCrewRepository) List(ctx context.Context) ([]domain.Crew, error) {
	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name FROM crew ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]domain.Crew, 0)
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		members = append(members, c)
	}
	return members, rows.Err()
}

func (r *PGCrewRepository) Create(ctx context.Context, crew *domain.Crew) error {
	return r.db.QueryRow(ctx, `INSERT INTO crew (first_name, last_name) VALUES ($1, $2) RETURNING id`,
		crew.FirstName, crew.LastName).Scan(&crew.ID)
}

var _ CrewRepository = (*PGCrewRepository)(nil)
