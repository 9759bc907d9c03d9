// Package seed bootstraps the records a fresh install needs before the
// first login.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/loanridge/loanridge/internal/auth/password"
	professionaldomain "github.com/loanridge/loanridge/internal/professional/domain"
	"github.com/loanridge/loanridge/internal/role"
	"gorm.io/gorm"
)

const (
	defaultAdminName     = "Loanridge Admin"
	defaultAdminEmail    = "admin@loanridge.local"
	defaultAdminPassword = "change-me-now"
)

// EnsureDefaultAdmin creates the initial admin professional when the
// directory is empty. Repeated startups are no-ops.
func EnsureDefaultAdmin(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&professionaldomain.Professional{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hash, err := password.Hash(defaultAdminPassword)
		if err != nil {
			return err
		}

		id := node.Generate()
		now := time.Now().UTC()
		admin := professionaldomain.Professional{
			ID:               id,
			Name:             defaultAdminName,
			Email:            defaultAdminEmail,
			Slug:             slug.Make(defaultAdminName) + "-" + id.String(),
			Role:             string(role.Admin),
			PasswordHash:     hash,
			VisibleToClients: false,
			Status:           professionaldomain.StatusActive,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		return tx.Create(&admin).Error
	})
}
