// Package domain contains the role change audit trail models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// RoleChangeRecord is an immutable audit row for a role transition.
// Rows are append-only; nothing in the service updates or deletes them.
type RoleChangeRecord struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID    snowflake.ID `gorm:"not null;index" json:"user_id"`
	OldRole   string       `gorm:"type:text;not null" json:"old_role"`
	NewRole   string       `gorm:"type:text;not null" json:"new_role"`
	Reason    string       `gorm:"type:text" json:"reason"`
	ChangedBy snowflake.ID `gorm:"column:changed_by;not null;index" json:"changed_by"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (RoleChangeRecord) TableName() string { return "role_change_records" }
