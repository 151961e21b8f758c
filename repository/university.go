package repository

import (
	"context"

	"github.com/islandscholars/backend/domain"
)

type UniversityRepository interface {
	GetByID(ctx context.Context, id string) (*domain.University, error)
	List(ctx context.Context) ([]domain.University, error)
}
