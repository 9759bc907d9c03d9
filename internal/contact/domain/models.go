// Package domain contains the unified contact read model and its sources.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// RelationshipType is the classified category of a unified contact.
type RelationshipType string

const (
	RelTeamMember     RelationshipType = "team_member"
	RelClient         RelationshipType = "client"
	RelRealtorPartner RelationshipType = "realtor_partner"
	RelLendingTeam    RelationshipType = "lending_team"
	RelAttorney       RelationshipType = "attorney"
	RelTitleCompany   RelationshipType = "title_company"
	RelInspector      RelationshipType = "inspector"
	RelAppraiser      RelationshipType = "appraiser"
	RelInsurance      RelationshipType = "insurance"
	RelContractor     RelationshipType = "contractor"
	RelOther          RelationshipType = "other"
)

// ContactType distinguishes professional network members from clients.
type ContactType string

const (
	TypeProfessional ContactType = "professional"
	TypeClient       ContactType = "client"
)

// Category is the UI-facing filter over classified contacts.
type Category string

const (
	CategoryAll     Category = ""
	CategoryClients Category = "clients"
	CategoryTeam    Category = "team"
	CategoryVendors Category = "vendors"
	CategoryPending Category = "pending"
)

// Source names the underlying record kind a contact was derived from.
type Source string

const (
	SourceMembership Source = "team_membership"
	SourceAssignment Source = "client_assignment"
	SourceManual     Source = "manual_contact"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Contact is the unified projection. It is never stored; it is recomputed
// from the three source tables on every uncached query.
type Contact struct {
	ID               snowflake.ID     `json:"id"`
	ContactType      ContactType      `json:"contact_type"`
	RelationshipType RelationshipType `json:"relationship_type"`
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone,omitempty"`
	Company          string           `json:"company,omitempty"`
	Status           string           `json:"status"`
	Source           Source           `json:"source"`
	CreatedAt        time.Time        `json:"created_at"`
}

// TeamMembership links two professionals in the same working network.
type TeamMembership struct {
	ID                   snowflake.ID `gorm:"primaryKey" json:"id"`
	ProfessionalID       snowflake.ID `gorm:"not null;index;uniqueIndex:ux_team_memberships_pair,priority:1" json:"professional_id"`
	MemberProfessionalID snowflake.ID `gorm:"not null;index;uniqueIndex:ux_team_memberships_pair,priority:2" json:"member_professional_id"`
	RelationshipType     string       `gorm:"type:text" json:"relationship_type,omitempty"`
	Status               string       `gorm:"type:text;not null;default:'active'" json:"status"`
	CreatedAt            time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (TeamMembership) TableName() string { return "team_memberships" }

// Client is a client profile record.
type Client struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Email     string       `gorm:"type:text;not null;index" json:"email"`
	Phone     string       `gorm:"type:text" json:"phone,omitempty"`
	Status    string       `gorm:"type:text;not null;default:'active'" json:"status"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }

// ManualContact is a contact entered by hand with a declared kind.
type ManualContact struct {
	ID                  snowflake.ID `gorm:"primaryKey" json:"id"`
	OwnerProfessionalID snowflake.ID `gorm:"not null;index" json:"owner_professional_id"`
	Name                string       `gorm:"type:text;not null" json:"name"`
	Email               string       `gorm:"type:text" json:"email,omitempty"`
	Phone               string       `gorm:"type:text" json:"phone,omitempty"`
	Company             string       `gorm:"type:text" json:"company,omitempty"`
	ContactKind         string       `gorm:"type:text" json:"contact_kind,omitempty"`
	RelationshipType    string       `gorm:"type:text" json:"relationship_type,omitempty"`
	Status              string       `gorm:"type:text;not null;default:'active'" json:"status"`
	CreatedAt           time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (ManualContact) TableName() string { return "manual_contacts" }
