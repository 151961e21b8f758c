package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/islandscholars/backend/domain"
	"github.com/islandscholars/backend/repository"
)

// UseCase owns the notification list and its per-identity filtered view.
type UseCase struct {
	notifications repository.NotificationRepository
	logger        *zap.Logger
}

func New(notifications repository.NotificationRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		notifications: notifications,
		logger:        logger,
	}
}

// View is the filtered, read/unread snapshot for one identity.
type View struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unread_count"`
}

// VisibleFor filters the full list down to what the identity may see and
// counts its unread entries. A nil session sees an empty view.
func (uc *UseCase) VisibleFor(ctx context.Context, session *domain.Session) (*View, error) {
	view := &View{Notifications: []domain.Notification{}}
	if session == nil {
		return view, nil
	}

	all, err := uc.notifications.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, n := range all {
		if !n.VisibleTo(session) {
			continue
		}
		view.Notifications = append(view.Notifications, n)
		if !n.Read {
			view.UnreadCount++
		}
	}
	return view, nil
}

// MarkRead flips one visible notification to read. Repeated calls on the
// same id are no-ops; the unread count can never go negative because it is
// recomputed from the stored read flags.
func (uc *UseCase) MarkRead(ctx context.Context, session *domain.Session, id string) error {
	if session == nil {
		return domain.ErrUnauthorized
	}

	visible, err := uc.visibleByID(ctx, session, id)
	if err != nil {
		return err
	}
	if !visible {
		return domain.ErrNotificationNotFound
	}

	_, err = uc.notifications.MarkRead(ctx, id)
	return err
}

// MarkAllRead flips every notification currently visible to the identity.
func (uc *UseCase) MarkAllRead(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return domain.ErrUnauthorized
	}

	view, err := uc.VisibleFor(ctx, session)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(view.Notifications))
	for _, n := range view.Notifications {
		if !n.Read {
			ids = append(ids, n.ID)
		}
	}
	return uc.notifications.MarkManyRead(ctx, ids)
}

// Add fills in id, timestamp and the unread flag, then stores the record at
// the head of the list. The stored record is returned.
func (uc *UseCase) Add(ctx context.Context, partial domain.Notification) (*domain.Notification, error) {
	if !partial.UserRole.Valid() || partial.Title == "" {
		return nil, domain.ErrInvalidPayload
	}

	n := partial
	n.ID = uuid.NewString()
	n.Read = false
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	if n.Type == "" {
		n.Type = domain.NotificationAlert
	}

	if err := uc.notifications.Add(ctx, &n); err != nil {
		return nil, err
	}

	uc.logger.Debug("notification added",
		zap.String("id", n.ID),
		zap.String("role", string(n.UserRole)),
		zap.String("type", string(n.Type)))

	return &n, nil
}

func (uc *UseCase) visibleByID(ctx context.Context, session *domain.Session, id string) (bool, error) {
	all, err := uc.notifications.List(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range all {
		if n.ID == id {
			return n.VisibleTo(session), nil
		}
	}
	return false, nil
}
