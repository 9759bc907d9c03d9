package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Insert(ctx context.Context, record RoleChangeRecord) error
	ListByUser(ctx context.Context, userID snowflake.ID, limit int) ([]RoleChangeRecord, error)
}
