package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/loanridge/loanridge/internal/audit/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) Insert(ctx context.Context, record domain.RoleChangeRecord) error {
	return r.db.WithContext(ctx).Create(&record).Error
}

func (r *repository) ListByUser(ctx context.Context, userID snowflake.ID, limit int) ([]domain.RoleChangeRecord, error) {
	var records []domain.RoleChangeRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
