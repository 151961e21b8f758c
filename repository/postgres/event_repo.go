package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/repository"
)

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates a Postgres-backed event repository.
func NewEventRepository(pool *pgxpool.Pool) repository.EventRepository {
	return &eventRepository{pool: pool}
}

const eventColumns = `id, organizer_id, title, description, date, location, event_type, status, created_at`

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	const query = `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) List(ctx context.Context, filter repository.EventFilter) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	args := make([]interface{}, 0, 4)

	if filter.OrganizerID != "" {
		args = append(args, filter.OrganizerID)
		query += fmt.Sprintf(" AND organizer_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY date ASC"
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

	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	if event == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO events (id, organizer_id, title, description, date, location, event_type, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, NOW()))
	RETURNING created_at;
	`

	return r.pool.QueryRow(ctx, query,
		event.ID,
		event.OrganizerID,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.EventType,
		string(event.Status),
		nullTime(event.CreatedAt),
	).Scan(&event.CreatedAt)
}

func (r *eventRepository) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) error {
	const query = `UPDATE events SET status = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var event domain.Event
	var status string

	if err := row.Scan(
		&event.ID,
		&event.OrganizerID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Location,
		&event.EventType,
		&status,
		&event.CreatedAt,
	); err != nil {
		return nil, err
	}

	event.Status = domain.EventStatus(status)
	return &event, nil
}
