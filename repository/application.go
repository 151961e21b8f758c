package repository

import (
	"context"

	"github.com/islandscholars/backend/domain"
)

type ApplicationFilter struct {
	StudentID    string
	InternshipID string
	Status       domain.ApplicationStatus
	Limit        int
	Offset       int
}

type ApplicationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context, filter ApplicationFilter) ([]domain.Application, error)
	// Create returns domain.ErrApplicationDuplicate when the student has
	// already applied to the internship.
	Create(ctx context.Context, application *domain.Application) error
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error
}
