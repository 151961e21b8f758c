package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/repository"
)

type universityRepository struct {
	pool *pgxpool.Pool
}

// NewUniversityRepository instantiates a Postgres-backed university catalogue.
func NewUniversityRepository(pool *pgxpool.Pool) repository.UniversityRepository {
	return &universityRepository{pool: pool}
}

const universityColumns = `id, name, location, description, website, programs`

func (r *universityRepository) GetByID(ctx context.Context, id string) (*domain.University, error) {
	const query = `SELECT ` + universityColumns + ` FROM universities WHERE id = $1`

	university, err := scanUniversity(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUniversityNotFound
		}
		return nil, err
	}
	return university, nil
}

func (r *universityRepository) List(ctx context.Context) ([]domain.University, error) {
	const query = `SELECT ` + universityColumns + ` FROM universities ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var universities []domain.University
	for rows.Next() {
		university, err := scanUniversity(rows)
		if err != nil {
			return nil, err
		}
		universities = append(universities, *university)
	}
	return universities, rows.Err()
}

func scanUniversity(row pgx.Row) (*domain.University, error) {
	var university domain.University
	var programs []byte

	if err := row.Scan(
		&university.ID,
		&university.Name,
		&university.Location,
		&university.Description,
		&university.Website,
		&programs,
	); err != nil {
		return nil, err
	}

	university.Programs = unmarshalStrings(programs)
	return &university, nil
}
