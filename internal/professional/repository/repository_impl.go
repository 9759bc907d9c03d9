package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/loanridge/loanridge/internal/professional/domain"
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

func (r *repository) Insert(ctx context.Context, professional domain.Professional) error {
	return r.db.WithContext(ctx).Create(&professional).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Professional, error) {
	var professional domain.Professional
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&professional).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &professional, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*domain.Professional, error) {
	var professional domain.Professional
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&professional).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &professional, nil
}

func (r *repository) Update(ctx context.Context, professional *domain.Professional) error {
	return r.db.WithContext(ctx).Save(professional).Error
}
