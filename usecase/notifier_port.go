package usecase

import (
	"context"

	"github.com/islandscholars/backend/domain"
)

// Notifier abstracts notification fan-out so use cases stay decoupled from
// the notification store.
type Notifier interface {
	Add(ctx context.Context, partial domain.Notification) (*domain.Notification, error)
}
