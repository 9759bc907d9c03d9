package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusExpired  Status = "expired"
	StatusRevoked  Status = "revoked"
)

// IsTerminal reports whether no further transition may leave the status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusAccepted, StatusExpired, StatusRevoked:
		return true
	}
	return false
}

// Invitation is an offer to join a professional's network. While the
// status is pending or sent, the (professional_id, email, target_role)
// tuple is held unique by a partial index; terminal rows never block a
// re-invite.
type Invitation struct {
	ID             snowflake.ID                `gorm:"primaryKey" json:"id"`
	ProfessionalID snowflake.ID                `gorm:"not null;index" json:"professional_id"`
	Email          string                      `gorm:"type:text;not null" json:"email"`
	Name           string                      `gorm:"type:text" json:"name,omitempty"`
	Phone          string                      `gorm:"type:text" json:"phone,omitempty"`
	TargetRole     string                      `gorm:"type:text;not null" json:"target_role"`
	Channels       datatypes.JSONSlice[string] `gorm:"type:json" json:"channels"`
	Message        string                      `gorm:"type:text" json:"message,omitempty"`
	Code           string                      `gorm:"type:text;not null;uniqueIndex:ux_invitations_code" json:"code"`
	Status         Status                      `gorm:"type:text;not null;default:'pending'" json:"status"`
	EmailSent      bool                        `gorm:"not null;default:false" json:"email_sent"`
	SMSSent        bool                        `gorm:"column:sms_sent;not null;default:false" json:"sms_sent"`
	CreatedAt      time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	SentAt         *time.Time                  `gorm:"column:sent_at" json:"sent_at,omitempty"`
	AcceptedAt     *time.Time                  `gorm:"column:accepted_at" json:"accepted_at,omitempty"`
	ExpiresAt      time.Time                   `gorm:"not null" json:"expires_at"`
	ContactID      *snowflake.ID               `gorm:"column:contact_id" json:"contact_id,omitempty"`
}

// TableName sets the database table name.
func (Invitation) TableName() string { return "invitations" }

// Expired reports whether the invitation's lifetime has passed.
func (i Invitation) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}
