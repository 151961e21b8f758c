package repository

import (
	"context"
	"time"

	"github.com/islandscholars/backend/domain"
)

type NotificationRepository interface {
	// Add stores a fully constructed notification at the head of the list.
	Add(ctx context.Context, n *domain.Notification) error
	// List returns all notifications in insertion order, newest first.
	List(ctx context.Context) ([]domain.Notification, error)
	// MarkRead flips read to true and reports whether the flag actually
	// changed, so callers can keep unread counts exact.
	MarkRead(ctx context.Context, id string) (bool, error)
	MarkManyRead(ctx context.Context, ids []string) error
	// Prune removes read notifications older than the cutoff and returns
	// how many were dropped.
	Prune(ctx context.Context, olderThan time.Time) (int, error)
	Size(ctx context.Context) (int, error)
}
