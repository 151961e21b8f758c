package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, name, email, role, profile_image, phone, location, bio, verified, password_hash, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return r.scanUser(r.pool.QueryRow(ctx, query, strings.TrimSpace(email)))
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO users (id, name, email, role, profile_image, phone, location, bio, verified, password_hash, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, NOW()), NOW())
	RETURNING created_at, updated_at;
	`

	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		string(user.Role),
		user.ProfileImage,
		user.Phone,
		user.Location,
		user.Bio,
		user.Verified,
		user.PasswordHash,
		nullTime(user.CreatedAt),
	).Scan(&createdAt, &updatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrEmailTaken
		}
		return err
	}

	user.CreatedAt = createdAt
	user.UpdatedAt = updatedAt
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}

	// Role is immutable after creation, so it never appears in the SET list.
	const query = `
	UPDATE users
	SET name = $2,
		profile_image = $3,
		phone = $4,
		location = $5,
		bio = $6,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at;
	`

	var updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.ProfileImage,
		user.Phone,
		user.Location,
		user.Bio,
	).Scan(&updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return err
	}

	user.UpdatedAt = updatedAt
	return nil
}

func (r *userRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var role string

	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&role,
		&user.ProfileImage,
		&user.Phone,
		&user.Location,
		&user.Bio,
		&user.Verified,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	user.Role = domain.Role(role)
	return &user, nil
}
