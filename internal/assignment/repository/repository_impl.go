package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/loanridge/loanridge/internal/assignment/domain"
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

func (r *repository) Insert(ctx context.Context, assignment domain.TeamAssignment) error {
	return r.db.WithContext(ctx).Create(&assignment).Error
}

func (r *repository) FindActive(ctx context.Context, clientID snowflake.ID, roleTag string) (*domain.TeamAssignment, error) {
	var assignment domain.TeamAssignment
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND role_tag = ? AND status = ?", clientID, roleTag, domain.StatusActive).
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *repository) FindActiveByPair(ctx context.Context, clientID, professionalID snowflake.ID) (*domain.TeamAssignment, error) {
	var assignment domain.TeamAssignment
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND professional_id = ? AND status = ?", clientID, professionalID, domain.StatusActive).
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// End flips the row to inactive. The status guard in the WHERE clause
// makes concurrent unassigns race-safe: only one caller observes a
// non-zero rows-affected count.
func (r *repository) End(ctx context.Context, assignment *domain.TeamAssignment, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.TeamAssignment{}).
		Where("id = ? AND status = ?", assignment.ID, domain.StatusActive).
		Updates(map[string]interface{}{
			"status":   domain.StatusInactive,
			"ended_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	assignment.Status = domain.StatusInactive
	assignment.EndedAt = &at
	return true, nil
}
