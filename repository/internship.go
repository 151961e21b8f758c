package repository

import (
	"context"

	"github.com/islandscholars/backend/domain"
)

type InternshipFilter struct {
	OrganizationID string
	Status         domain.InternshipStatus
	Limit          int
	Offset         int
}

type InternshipRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Internship, error)
	List(ctx context.Context, filter InternshipFilter) ([]domain.Internship, error)
	Create(ctx context.Context, internship *domain.Internship) error
	UpdateStatus(ctx context.Context, id string, status domain.InternshipStatus) error
}
