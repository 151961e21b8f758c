package repository

import (
	"context"

	"github.com/islandscholars/backend/domain"
)

type SessionRepository interface {
	// Get returns domain.ErrSessionNotFound for absent sessions and
	// domain.ErrSessionCorrupt for stored payloads that failed to decode.
	// A corrupt payload is removed from the store before returning.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}
