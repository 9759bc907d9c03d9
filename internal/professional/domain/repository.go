package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Insert(ctx context.Context, professional Professional) error
	FindByID(ctx context.Context, id snowflake.ID) (*Professional, error)
	FindByEmail(ctx context.Context, email string) (*Professional, error)
	Update(ctx context.Context, professional *Professional) error
}
