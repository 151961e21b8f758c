package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/repository"
)

type internshipRepository struct {
	pool *pgxpool.Pool
}

// NewInternshipRepository instantiates a Postgres-backed internship repository.
func NewInternshipRepository(pool *pgxpool.Pool) repository.InternshipRepository {
	return &internshipRepository{pool: pool}
}

const internshipColumns = `id, organization_id, title, description, location, duration, skills, deadline, status, created_at`

func (r *internshipRepository) GetByID(ctx context.Context, id string) (*domain.Internship, error) {
	const query = `SELECT ` + internshipColumns + ` FROM internships WHERE id = $1`

	internship, err := scanInternship(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInternshipNotFound
		}
		return nil, err
	}
	return internship, nil
}

func (r *internshipRepository) List(ctx context.Context, filter repository.InternshipFilter) ([]domain.Internship, error) {
	query := `SELECT ` + internshipColumns + ` FROM internships WHERE 1=1`
	args := make([]interface{}, 0, 4)

	if filter.OrganizationID != "" {
		args = append(args, filter.OrganizationID)
		query += fmt.Sprintf(" AND organization_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var internships []domain.Internship
	for rows.Next() {
		internship, err := scanInternship(rows)
		if err != nil {
			return nil, err
		}
		internships = append(internships, *internship)
	}
	return internships, rows.Err()
}

func (r *internshipRepository) Create(ctx context.Context, internship *domain.Internship) error {
	if internship == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO internships (id, organization_id, title, description, location, duration, skills, deadline, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, NOW()))
	RETURNING created_at;
	`

	return r.pool.QueryRow(ctx, query,
		internship.ID,
		internship.OrganizationID,
		internship.Title,
		internship.Description,
		internship.Location,
		internship.Duration,
		marshalStrings(internship.Skills),
		nullTime(internship.Deadline),
		string(internship.Status),
		nullTime(internship.CreatedAt),
	).Scan(&internship.CreatedAt)
}

func (r *internshipRepository) UpdateStatus(ctx context.Context, id string, status domain.InternshipStatus) error {
	const query = `UPDATE internships SET status = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInternshipNotFound
	}
	return nil
}

func scanInternship(row pgx.Row) (*domain.Internship, error) {
	var internship domain.Internship
	var status string
	var skills []byte
	var deadline *time.Time

	if err := row.Scan(
		&internship.ID,
		&internship.OrganizationID,
		&internship.Title,
		&internship.Description,
		&internship.Location,
		&internship.Duration,
		&skills,
		&deadline,
		&status,
		&internship.CreatedAt,
	); err != nil {
		return nil, err
	}

	if deadline != nil {
		internship.Deadline = *deadline
	}
	internship.Skills = unmarshalStrings(skills)
	internship.Status = domain.InternshipStatus(status)
	return &internship, nil
}
