package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/repository"
	"github.com/islandscholars/backend/usecase"
)

type UseCase struct {
	applications repository.ApplicationRepository
	internships  repository.InternshipRepository
	notifier     usecase.Notifier
	logger       *zap.Logger
}

func New(
	applications repository.ApplicationRepository,
	internships repository.InternshipRepository,
	notifier usecase.Notifier,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		applications: applications,
		internships:  internships,
		notifier:     notifier,
		logger:       logger,
	}
}

// Apply submits a student's application against an open internship. One
// application per student and internship.
func (uc *UseCase) Apply(ctx context.Context, actor *domain.Session, internshipID, coverLetter string) (*domain.Application, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if actor.Role != domain.RoleStudent {
		return nil, domain.ErrForbidden
	}

	internship, err := uc.internships.GetByID(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	if !internship.AcceptsApplications(time.Now()) {
		return nil, domain.ErrInternshipClosed
	}

	application := &domain.Application{
		ID:           uuid.NewString(),
		InternshipID: internship.ID,
		StudentID:    actor.UserID,
		Status:       domain.ApplicationPending,
		CoverLetter:  coverLetter,
	}
	if err := uc.applications.Create(ctx, application); err != nil {
		return nil, err
	}

	uc.notify(ctx, domain.Notification{
		UserRole: domain.RoleOrganization,
		UserID:   internship.OrganizationID,
		Type:     domain.NotificationApplication,
		Title:    "New application received",
		Message:  fmt.Sprintf("A student applied to %s", internship.Title),
	})

	return application, nil
}

// List returns the applications the actor is allowed to see: students see
// their own, organizations see applications against their internships,
// admins see everything.
func (uc *UseCase) List(ctx context.Context, actor *domain.Session, filter repository.ApplicationFilter) ([]domain.Application, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}

	switch actor.Role {
	case domain.RoleStudent:
		filter.StudentID = actor.UserID
	case domain.RoleOrganization:
		if filter.InternshipID == "" {
			return nil, domain.ErrInvalidPayload
		}
		internship, err := uc.internships.GetByID(ctx, filter.InternshipID)
		if err != nil {
			return nil, err
		}
		if internship.OrganizationID != actor.UserID {
			return nil, domain.ErrForbidden
		}
	case domain.RoleAdmin:
		// unrestricted
	default:
		return nil, domain.ErrForbidden
	}

	return uc.applications.List(ctx, filter)
}

// UpdateStatus moves an application through its lifecycle and notifies the
// student of the decision.
func (uc *UseCase) UpdateStatus(ctx context.Context, actor *domain.Session, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}

	application, err := uc.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	internship, err := uc.internships.GetByID(ctx, application.InternshipID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && internship.OrganizationID != actor.UserID {
		return nil, domain.ErrForbidden
	}

	if err := uc.applications.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	application.Status = status
	application.UpdatedAt = time.Now()

	notificationType := domain.NotificationApplication
	if status == domain.ApplicationAccepted {
		notificationType = domain.NotificationSuccess
	}
	uc.notify(ctx, domain.Notification{
		UserRole: domain.RoleStudent,
		UserID:   application.StudentID,
		Type:     notificationType,
		Title:    "Application " + string(status),
		Message:  fmt.Sprintf("Your application for %s is now %s", internship.Title, status),
	})

	return application, nil
}

func (uc *UseCase) notify(ctx context.Context, n domain.Notification) {
	if uc.notifier == nil {
		return
	}
	if _, err := uc.notifier.Add(ctx, n); err != nil {
		uc.logger.Warn("application fan-out failed", zap.Error(err))
	}
}
