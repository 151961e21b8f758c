package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/repository"
)

type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

func (uc *UseCase) Get(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// Update applies profile edits to the actor's own record. Role and email are
// immutable here; the repository ignores them on update.
func (uc *UseCase) Update(ctx context.Context, actor *domain.Session, updated *domain.User) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if updated == nil || updated.Name == "" {
		return nil, domain.ErrInvalidPayload
	}

	current, err := uc.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	current.Name = updated.Name
	current.ProfileImage = updated.ProfileImage
	current.Phone = updated.Phone
	current.Location = updated.Location
	current.Bio = updated.Bio

	if err := uc.users.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
