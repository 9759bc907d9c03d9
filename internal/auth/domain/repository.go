package domain

import (
	"context"
	"time"
)

type Repository interface {
	Insert(ctx context.Context, session Session) error
	FindByTokenHash(ctx context.Context, hash string) (*Session, error)
	Revoke(ctx context.Context, hash string, at time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) error
}
