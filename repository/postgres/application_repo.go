package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/repository"
)

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates a Postgres-backed application repository.
func NewApplicationRepository(pool *pgxpool.Pool) repository.ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `id, internship_id, student_id, status, cover_letter, created_at, updated_at`

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	const query = `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	application, err := scanApplication(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return application, nil
}

func (r *applicationRepository) List(ctx context.Context, filter repository.ApplicationFilter) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE 1=1`
	args := make([]interface{}, 0, 5)

	if filter.StudentID != "" {
		args = append(args, filter.StudentID)
		query += fmt.Sprintf(" AND student_id = $%d", len(args))
	}
	if filter.InternshipID != "" {
		args = append(args, filter.InternshipID)
		query += fmt.Sprintf(" AND internship_id = $%d", len(args))
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

	var applications []domain.Application
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, *application)
	}
	return applications, rows.Err()
}

func (r *applicationRepository) Create(ctx context.Context, application *domain.Application) error {
	if application == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO applications (id, internship_id, student_id, status, cover_letter, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()), NOW())
	RETURNING created_at, updated_at;
	`

	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		application.ID,
		application.InternshipID,
		application.StudentID,
		string(application.Status),
		application.CoverLetter,
		nullTime(application.CreatedAt),
	).Scan(&createdAt, &updatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrApplicationDuplicate
		}
		return err
	}

	application.CreatedAt = createdAt
	application.UpdatedAt = updatedAt
	return nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	const query = `UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var application domain.Application
	var status string

	if err := row.Scan(
		&application.ID,
		&application.InternshipID,
		&application.StudentID,
		&status,
		&application.CoverLetter,
		&application.CreatedAt,
		&application.UpdatedAt,
	); err != nil {
		return nil, err
	}

	application.Status = domain.ApplicationStatus(status)
	return &application, nil
}
