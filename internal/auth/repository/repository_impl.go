package repository

import (
	"context"
	"errors"
	"time"

	"github.com/loanridge/loanridge/internal/auth/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, session domain.Session) error {
	return r.db.WithContext(ctx).Create(&session).Error
}

func (r *repository) FindByTokenHash(ctx context.Context, hash string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).Where("session_token_hash = ?", hash).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *repository) Revoke(ctx context.Context, hash string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Where("session_token_hash = ? AND revoked_at IS NULL", hash).
		Update("revoked_at", at).Error
}

func (r *repository) DeleteExpired(ctx context.Context, before time.Time) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&domain.Session{}).Error
}
