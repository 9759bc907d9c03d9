package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Insert(ctx context.Context, assignment TeamAssignment) error
	FindActive(ctx context.Context, clientID snowflake.ID, roleTag string) (*TeamAssignment, error)
	End(ctx context.Context, assignment *TeamAssignment, at time.Time) (bool, error)
	FindActiveByPair(ctx context.Context, clientID, professionalID snowflake.ID) (*TeamAssignment, error)
}
