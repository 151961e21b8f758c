package repository

import (
	"context"

	"github.com/islandscholars/backend/domain"
)

type EventFilter struct {
	OrganizerID string
	Status      domain.EventStatus
	Limit       int
	Offset      int
}

type EventRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, filter EventFilter) ([]domain.Event, error)
	Create(ctx context.Context, event *domain.Event) error
	UpdateStatus(ctx context.Context, id string, status domain.EventStatus) error
}
