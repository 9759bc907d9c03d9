// Package domain contains the team assignment models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Role tags a professional can hold on a client's team.
const (
	RoleTagRealtor              = "realtor"
	RoleTagMortgageProfessional = "mortgage_professional"
)

// TeamAssignment links a client to a professional under a role tag.
// Ending an assignment is a status transition; rows are never deleted.
// At most one assignment per (client, role tag) may be active, enforced
// by a partial unique index at the storage layer.
type TeamAssignment struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	ClientID       snowflake.ID `gorm:"not null;index" json:"client_id"`
	ProfessionalID snowflake.ID `gorm:"not null;index" json:"professional_id"`
	RoleTag        string       `gorm:"type:text;not null" json:"role_tag"`
	AssignedBy     snowflake.ID `gorm:"column:assigned_by;not null" json:"assigned_by"`
	Status         string       `gorm:"type:text;not null;default:'active'" json:"status"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	EndedAt        *time.Time   `gorm:"column:ended_at" json:"ended_at,omitempty"`
}

// TableName sets the database table name.
func (TeamAssignment) TableName() string { return "team_assignments" }
