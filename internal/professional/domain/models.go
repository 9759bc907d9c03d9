// Package domain contains the professional directory models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Professional is a registered network participant: an admin, realtor
// or mortgage professional.
type Professional struct {
	ID                  snowflake.ID `gorm:"primaryKey" json:"id"`
	Name                string       `gorm:"type:text;not null" json:"name"`
	Email               string       `gorm:"type:text;not null;uniqueIndex:ux_professionals_email" json:"email"`
	Phone               string       `gorm:"type:text" json:"phone,omitempty"`
	Company             string       `gorm:"type:text" json:"company,omitempty"`
	Slug                string       `gorm:"type:text;not null;uniqueIndex:ux_professionals_slug" json:"slug"`
	Role                string       `gorm:"type:text;not null" json:"role"`
	PasswordHash        string       `gorm:"type:text;not null" json:"-"`
	VisibleToClients    bool         `gorm:"not null;default:true" json:"visible_to_clients"`
	ShowcaseRole        string       `gorm:"type:text" json:"showcase_role,omitempty"`
	ShowcaseDescription string       `gorm:"type:text" json:"showcase_description,omitempty"`
	Status              string       `gorm:"type:text;not null;default:'active'" json:"status"`
	CreatedAt           time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Professional) TableName() string { return "professionals" }
