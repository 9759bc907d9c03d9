package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/loanridge/loanridge/internal/invitation/domain"
	"gorm.io/gorm"
)

var openStatuses = []domain.Status{domain.StatusPending, domain.StatusSent}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) Insert(ctx context.Context, invitation domain.Invitation) error {
	return r.db.WithContext(ctx).Create(&invitation).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Invitation, error) {
	var inv domain.Invitation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repository) FindByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	var inv domain.Invitation
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repository) FindOpenByEmail(ctx context.Context, inviterID snowflake.ID, email string) ([]domain.Invitation, error) {
	var invs []domain.Invitation
	err := r.db.WithContext(ctx).
		Where("professional_id = ? AND email = ? AND status IN ?", inviterID, email, openStatuses).
		Order("created_at DESC").
		Find(&invs).Error
	if err != nil {
		return nil, err
	}
	return invs, nil
}

func (r *repository) MarkSent(ctx context.Context, inv *domain.Invitation, emailSent, smsSent bool, sentAt time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":  domain.StatusSent,
		"sent_at": sentAt,
	}
	if emailSent {
		updates["email_sent"] = true
	}
	if smsSent {
		updates["sms_sent"] = true
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Invitation{}).
		Where("id = ? AND status IN ?", inv.ID, openStatuses).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	inv.Status = domain.StatusSent
	inv.SentAt = &sentAt
	inv.EmailSent = inv.EmailSent || emailSent
	inv.SMSSent = inv.SMSSent || smsSent
	return true, nil
}

func (r *repository) MarkRevoked(ctx context.Context, inv *domain.Invitation) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Invitation{}).
		Where("id = ? AND status IN ?", inv.ID, openStatuses).
		Update("status", domain.StatusRevoked)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	inv.Status = domain.StatusRevoked
	return true, nil
}

func (r *repository) MarkAccepted(ctx context.Context, inv *domain.Invitation, acceptedAt time.Time, contactID snowflake.ID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Invitation{}).
		Where("id = ? AND status = ?", inv.ID, domain.StatusSent).
		Updates(map[string]interface{}{
			"status":      domain.StatusAccepted,
			"accepted_at": acceptedAt,
			"contact_id":  contactID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	inv.Status = domain.StatusAccepted
	inv.AcceptedAt = &acceptedAt
	inv.ContactID = &contactID
	return true, nil
}

func (r *repository) List(ctx context.Context, inviterID snowflake.ID, status domain.Status, cursorID snowflake.ID, limit int) ([]domain.Invitation, error) {
	query := r.db.WithContext(ctx).
		Where("professional_id = ?", inviterID).
		Order("id DESC").
		Limit(limit)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if cursorID != 0 {
		query = query.Where("id < ?", cursorID)
	}

	var invs []domain.Invitation
	if err := query.Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}
