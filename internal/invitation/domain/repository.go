package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Insert(ctx context.Context, invitation Invitation) error
	FindByID(ctx context.Context, id snowflake.ID) (*Invitation, error)
	FindByCode(ctx context.Context, code string) (*Invitation, error)

	// FindOpenByEmail returns the inviter's non-terminal invitations
	// matching the normalized email.
	FindOpenByEmail(ctx context.Context, inviterID snowflake.ID, email string) ([]Invitation, error)

	// MarkSent records a delivery outcome. The guard only matches
	// pending or sent rows; false means the row raced into another
	// state.
	MarkSent(ctx context.Context, inv *Invitation, emailSent, smsSent bool, sentAt time.Time) (bool, error)

	// MarkRevoked transitions a pending or sent row to revoked.
	MarkRevoked(ctx context.Context, inv *Invitation) (bool, error)

	// MarkAccepted transitions a sent row to accepted and stamps the
	// resulting contact.
	MarkAccepted(ctx context.Context, inv *Invitation, acceptedAt time.Time, contactID snowflake.ID) (bool, error)

	List(ctx context.Context, inviterID snowflake.ID, status Status, cursorID snowflake.ID, limit int) ([]Invitation, error)
}
