package internship

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/repository"
	"github.com/islandscholars/backend/usecase"
)

type UseCase struct {
	internships repository.InternshipRepository
	notifier    usecase.Notifier
	logger      *zap.Logger
}

func New(internships repository.InternshipRepository, notifier usecase.Notifier, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		internships: internships,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *UseCase) List(ctx context.Context, filter repository.InternshipFilter) ([]domain.Internship, error) {
	return uc.internships.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Internship, error) {
	return uc.internships.GetByID(ctx, id)
}

// Create publishes a new internship for the acting organization and tells
// students about it.
func (uc *UseCase) Create(ctx context.Context, actor *domain.Session, internship *domain.Internship) (*domain.Internship, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if actor.Role != domain.RoleOrganization && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if internship == nil || internship.Title == "" {
		return nil, domain.ErrInvalidPayload
	}

	internship.ID = uuid.NewString()
	if internship.OrganizationID == "" {
		internship.OrganizationID = actor.UserID
	}
	internship.Status = domain.InternshipOpen
	internship.CreatedAt = time.Now()

	if err := uc.internships.Create(ctx, internship); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		if _, err := uc.notifier.Add(ctx, domain.Notification{
			UserRole: domain.RoleStudent,
			Type:     domain.NotificationRecommendation,
			Title:    "New internship posted",
			Message:  internship.Title + " is now accepting applications",
		}); err != nil {
			uc.logger.Warn("internship fan-out failed", zap.Error(err))
		}
	}

	return internship, nil
}

// Close stops an internship from accepting applications. Only the owning
// organization or an admin may close it.
func (uc *UseCase) Close(ctx context.Context, actor *domain.Session, id string) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}

	internship, err := uc.internships.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdmin && internship.OrganizationID != actor.UserID {
		return domain.ErrForbidden
	}

	return uc.internships.UpdateStatus(ctx, id, domain.InternshipClosed)
}
