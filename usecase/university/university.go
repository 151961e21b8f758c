package university

import (
	"context"

	"go.uber.org/zap"

	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/repository"
)

// UseCase serves the public university catalogue.
type UseCase struct {
	universities repository.UniversityRepository
	logger       *zap.Logger
}

func New(universities repository.UniversityRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		universities: universities,
		logger:       logger,
	}
}

func (uc *UseCase) List(ctx context.Context) ([]domain.University, error) {
	return uc.universities.List(ctx)
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.University, error) {
	return uc.universities.GetByID(ctx, id)
}
