// Package domain contains the login session types.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Session is a persisted login session. Only the token hash is stored;
// the raw token lives in the client cookie.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	ProfessionalID   snowflake.ID `gorm:"column:professional_id;not null;index" json:"professional_id"`
	SessionTokenHash string       `gorm:"column:session_token_hash;type:text;not null;uniqueIndex:ux_sessions_token" json:"-"`
	UserAgent        string       `gorm:"type:text" json:"user_agent,omitempty"`
	IPAddress        string       `gorm:"type:text" json:"ip_address,omitempty"`
	ExpiresAt        time.Time    `gorm:"not null;index" json:"expires_at"`
	RevokedAt        *time.Time   `gorm:"column:revoked_at" json:"revoked_at,omitempty"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }
