package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/repository"
)

type UseCase struct {
	events repository.EventRepository
	logger *zap.Logger
}

func New(events repository.EventRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		events: events,
		logger: logger,
	}
}

func (uc *UseCase) List(ctx context.Context, filter repository.EventFilter) ([]domain.Event, error) {
	return uc.events.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Event, error) {
	return uc.events.GetByID(ctx, id)
}

// Create schedules an event hosted by the acting organization or university.
func (uc *UseCase) Create(ctx context.Context, actor *domain.Session, event *domain.Event) (*domain.Event, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	switch actor.Role {
	case domain.RoleOrganization, domain.RoleUniversity, domain.RoleAdmin:
	default:
		return nil, domain.ErrForbidden
	}
	if event == nil || event.Title == "" || event.Date.IsZero() {
		return nil, domain.ErrInvalidPayload
	}

	event.ID = uuid.NewString()
	if event.OrganizerID == "" {
		event.OrganizerID = actor.UserID
	}
	if event.Status == "" {
		event.Status = domain.EventUpcoming
	}
	event.CreatedAt = time.Now()

	if err := uc.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateStatus transitions an event. Only the organizer or an admin may do it.
func (uc *UseCase) UpdateStatus(ctx context.Context, actor *domain.Session, id string, status domain.EventStatus) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}

	event, err := uc.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdmin && event.OrganizerID != actor.UserID {
		return domain.ErrForbidden
	}

	return uc.events.UpdateStatus(ctx, id, status)
}
